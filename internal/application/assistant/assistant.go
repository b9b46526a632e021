// Package assistant responde preguntas sobre COSO, analisa brechas em
// documentos institucionais e fornece as plantillas de informes CGR. Tudo
// aqui é substituição de template; não há modelo de linguagem envolvido.
package assistant

import (
	"fmt"
	"strings"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
)

type Assistant struct{}

func New() *Assistant {
	return &Assistant{}
}

var componentAnswers = []struct {
	keyword string
	answer  string
}{
	{
		"ambiente de control",
		"El Ambiente de Control establece el tono de la organización e influye en la conciencia de control de su personal. Es la base de todos los demás componentes del control interno.",
	},
	{
		"evaluación de riesgos",
		"La Evaluación de Riesgos identifica y analiza los riesgos relevantes para el logro de los objetivos, formando una base para determinar cómo deben administrarse los riesgos.",
	},
	{
		"actividades de control",
		"Las Actividades de Control son las políticas y procedimientos que ayudan a asegurar que se ejecuten las directrices de la administración.",
	},
	{
		"información y comunicación",
		"Los sistemas de Información y Comunicación identifican, capturan y comunican información pertinente en forma y tiempo que permitan cumplir a cada empleado con sus responsabilidades.",
	},
	{
		"supervisión",
		"La Supervisión es un proceso que evalúa la calidad del funcionamiento del control interno en el tiempo y permite al sistema reaccionar dinámicamente.",
	},
}

// Chat responde por coincidencia de palabras clave sobre los cinco
// componentes COSO. Mensajes sin coincidencia reciben la respuesta general.
func (a *Assistant) Chat(message string) string {
	lowered := strings.ToLower(message)
	reply := "Gracias por tu pregunta sobre COSO. "
	for _, entry := range componentAnswers {
		if strings.Contains(lowered, entry.keyword) {
			return reply + entry.answer
		}
	}
	return reply + "Puedo ayudarte con información sobre los 5 componentes de COSO basados en COSO 2013: Ambiente de Control, Evaluación de Riesgos, Actividades de Control, Información y Comunicación, y Supervisión."
}

// Elementos que cada tipo de documento debería cubrir según las normas
// básicas de control interno.
var expectedElements = map[string][]string{
	"creation_law":       {"objeto institucional", "atribuciones", "estructura de gobierno"},
	"regulations":        {"procedimientos internos", "responsabilidades por unidad", "régimen disciplinario"},
	"sector_regulations": {"normativa sectorial aplicable", "entes reguladores", "obligaciones de reporte"},
	"organigram":         {"líneas de autoridad", "segregación de funciones", "unidades de control"},
	"control_reports":    {"hallazgos", "recomendaciones", "plan de acción"},
	"instructions":       {"alcance", "responsables", "vigencia"},
	"policies":           {"objetivo de la política", "alcance institucional", "mecanismo de revisión"},
	"procedures":         {"pasos del procedimiento", "responsables por paso", "registros generados"},
	"other_documents":    {"contexto institucional"},
}

// Analyze produce el resultado de análisis de brechas para un documento.
// El documento con descripción se considera mejor cubierto.
func (a *Assistant) Analyze(document entities.InstitutionDocument) entities.AnalysisResult {
	expected := expectedElements[document.DocumentType]
	if expected == nil {
		expected = expectedElements["other_documents"]
	}

	// Sin el contenido real del archivo, la cobertura se estima por los
	// metadatos disponibles.
	covered := []string{expected[0]}
	gaps := append([]string{}, expected[1:]...)
	if document.Description != nil && *document.Description != "" && len(gaps) > 0 {
		covered = append(covered, gaps[0])
		gaps = gaps[1:]
	}

	recommendations := make([]string, 0, len(gaps)+1)
	for _, gap := range gaps {
		recommendations = append(recommendations, fmt.Sprintf("Documentar formalmente: %s", gap))
	}
	recommendations = append(recommendations, "Revisar el documento con la unidad de control interno")

	return entities.AnalysisResult{
		Summary:         fmt.Sprintf("Análisis de brechas del documento \"%s\" (%s): %d elemento(s) cubierto(s), %d brecha(s) identificada(s).", document.OriginalName, document.DocumentType, len(covered), len(gaps)),
		CoveredElements: covered,
		Gaps:            gaps,
		Recommendations: recommendations,
	}
}

// CgrTemplate describe una plantilla de informe para el órgano de control.
type CgrTemplate struct {
	Type        string   `json:"type"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Fields      []string `json:"fields"`
	Frequency   string   `json:"frequency"`
}

// CgrTemplates devuelve las tres plantillas oficiales de informe.
func (a *Assistant) CgrTemplates() []CgrTemplate {
	return []CgrTemplate{
		{
			Type:        "cumplimiento",
			Name:        "Informe de Cumplimiento COSO",
			Description: "Informe trimestral sobre el cumplimiento de las normas básicas de control interno",
			Fields:      []string{"ambiente_control", "evaluacion_riesgos", "actividades_control", "informacion_comunicacion", "supervision"},
			Frequency:   "trimestral",
		},
		{
			Type:        "autoevaluacion",
			Name:        "Autoevaluación del Sistema de Control Interno",
			Description: "Evaluación anual del sistema de control interno institucional",
			Fields:      []string{"fortalezas", "debilidades", "plan_mejoras", "recursos_necesarios"},
			Frequency:   "anual",
		},
		{
			Type:        "seguimiento",
			Name:        "Seguimiento de Recomendaciones",
			Description: "Informe de seguimiento a recomendaciones de auditoría interna y externa",
			Fields:      []string{"recomendaciones_pendientes", "recomendaciones_implementadas", "cronograma_implementacion"},
			Frequency:   "semestral",
		},
	}
}

// DefaultCgrReportData es el contenido inicial de un informe creado sin
// datos: un borrador que el usuario edita antes de enviar.
func (a *Assistant) DefaultCgrReportData(reportPeriod string) *entities.CgrReportData {
	return &entities.CgrReportData{
		Componentes: map[string]entities.CgrComponentResult{
			entities.ComponentAmbienteControl:         {Score: 85, Status: "implementado"},
			entities.ComponentEvaluacionRiesgos:       {Score: 78, Status: "en_progreso"},
			entities.ComponentActividadesControl:      {Score: 92, Status: "implementado"},
			entities.ComponentInformacionComunicacion: {Score: 75, Status: "en_progreso"},
			entities.ComponentSupervision:             {Score: 88, Status: "implementado"},
		},
		ResumenEjecutivo: "Resumen del cumplimiento COSO para el período " + reportPeriod,
		Recomendaciones: []string{
			"Fortalecer controles en información y comunicación",
			"Completar evaluación de riesgos pendiente",
			"Implementar seguimiento trimestral",
		},
	}
}
