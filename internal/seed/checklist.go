// Package seed contém os dados de referência do sistema: as 17 normas
// oficiales de verificación COSO e os dados de demonstração.
package seed

import "github.com/nebusis/controlcore-api/internal/domain/entities"

// ChecklistItems retorna os 17 itens de verificação, na ordem das normas.
// A contagem e os códigos são fixos; os testes garantem que não derivem.
func ChecklistItems() []entities.ChecklistItem {
	items := []entities.ChecklistItem{
		// COMPONENTE 1: AMBIENTE DE CONTROL
		{Code: "1.1", Requirement: "Integridad y valores éticos", VerificationQuestion: "¿La institución promueve la integridad, los valores éticos y un ambiente de honestidad, transparencia y cumplimiento?", ComponentType: entities.ComponentAmbienteControl},
		{Code: "1.2", Requirement: "Supervisión del sistema de control interno", VerificationQuestion: "¿La alta dirección supervisa activamente el diseño, implementación y mantenimiento del sistema de control interno?", ComponentType: entities.ComponentAmbienteControl},
		{Code: "1.3", Requirement: "Estructura organizacional", VerificationQuestion: "¿La entidad tiene una estructura formalmente definida, coherente con sus objetivos y funciones?", ComponentType: entities.ComponentAmbienteControl},
		{Code: "1.4", Requirement: "Políticas y prácticas de recursos humanos", VerificationQuestion: "¿La administración promueve la competencia del personal mediante políticas claras de contratación, evaluación, capacitación y sanción?", ComponentType: entities.ComponentAmbienteControl},
		{Code: "1.5", Requirement: "Evaluación del ambiente de control", VerificationQuestion: "¿La institución evalúa periódicamente si su cultura, estructura y prácticas apoyan el control interno?", ComponentType: entities.ComponentAmbienteControl},

		// COMPONENTE 2: VALORACIÓN Y ADMINISTRACIÓN DE RIESGOS
		{Code: "2.1", Requirement: "Establecimiento de objetivos institucionales", VerificationQuestion: "¿La entidad define objetivos claros y coherentes con su mandato legal y su planificación estratégica?", ComponentType: entities.ComponentEvaluacionRiesgos},
		{Code: "2.2", Requirement: "Identificación de eventos de riesgo", VerificationQuestion: "¿Se identifican eventos internos y externos que puedan afectar el logro de los objetivos institucionales?", ComponentType: entities.ComponentEvaluacionRiesgos},
		{Code: "2.3", Requirement: "Evaluación de riesgos", VerificationQuestion: "¿Los riesgos se analizan considerando su probabilidad e impacto?", ComponentType: entities.ComponentEvaluacionRiesgos},
		{Code: "2.4", Requirement: "Respuesta a los riesgos", VerificationQuestion: "¿La entidad establece respuestas apropiadas para mitigar, aceptar, transferir o evitar los riesgos identificados?", ComponentType: entities.ComponentEvaluacionRiesgos},

		// COMPONENTE 3: ACTIVIDADES DE CONTROL
		{Code: "3.1", Requirement: "Diseño e implementación de controles", VerificationQuestion: "¿Se establecen controles que aseguren la ejecución efectiva y eficiente de las operaciones?", ComponentType: entities.ComponentActividadesControl},
		{Code: "3.2", Requirement: "Controles sobre tecnología de la información", VerificationQuestion: "¿La entidad implementa controles para proteger la integridad, confidencialidad y disponibilidad de la información?", ComponentType: entities.ComponentActividadesControl},
		{Code: "3.3", Requirement: "Documentación de políticas y procedimientos", VerificationQuestion: "¿Las actividades y controles clave están documentados y actualizados?", ComponentType: entities.ComponentActividadesControl},

		// COMPONENTE 4: INFORMACIÓN Y COMUNICACIÓN
		{Code: "4.1", Requirement: "Calidad de la información", VerificationQuestion: "¿La información es completa, oportuna, precisa y accesible para quienes la necesiten?", ComponentType: entities.ComponentInformacionComunicacion},
		{Code: "4.2", Requirement: "Comunicación interna", VerificationQuestion: "¿Fluye adecuadamente la información entre los distintos niveles jerárquicos y funciones?", ComponentType: entities.ComponentInformacionComunicacion},
		{Code: "4.3", Requirement: "Comunicación externa", VerificationQuestion: "¿La entidad asegura la comunicación eficaz con sus partes interesadas externas?", ComponentType: entities.ComponentInformacionComunicacion},

		// COMPONENTE 5: MONITOREO Y EVALUACIÓN
		{Code: "5.1", Requirement: "Supervisión continua del control interno", VerificationQuestion: "¿Se establecen mecanismos para supervisar el cumplimiento de los controles?", ComponentType: entities.ComponentSupervision},
		{Code: "5.2", Requirement: "Evaluaciones independientes y seguimiento a recomendaciones", VerificationQuestion: "¿Se realizan auditorías internas o externas y se da seguimiento efectivo a sus recomendaciones?", ComponentType: entities.ComponentSupervision},
	}

	for i := range items {
		items[i].StandardNumber = i + 1
	}
	return items
}
