package entities

// Os 5 componentes COSO que estruturam todo o sistema. Os valores são os
// mesmos usados pelas instituições nos seus relatórios oficiais.
const (
	ComponentAmbienteControl         = "ambiente_control"
	ComponentEvaluacionRiesgos       = "evaluacion_riesgos"
	ComponentActividadesControl      = "actividades_control"
	ComponentInformacionComunicacion = "informacion_comunicacion"
	ComponentSupervision             = "supervision"
)

// ComponentTypes retorna os componentes na ordem canônica do framework.
func ComponentTypes() []string {
	return []string{
		ComponentAmbienteControl,
		ComponentEvaluacionRiesgos,
		ComponentActividadesControl,
		ComponentInformacionComunicacion,
		ComponentSupervision,
	}
}

// IsValidComponentType verifica se o valor é um dos 5 componentes COSO.
func IsValidComponentType(componentType string) bool {
	for _, c := range ComponentTypes() {
		if c == componentType {
			return true
		}
	}
	return false
}
