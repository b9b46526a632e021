package entities

import "time"

// Ciclo de vida de um informe CGR: draft -> submitted -> approved.
const (
	CgrStatusDraft     = "draft"
	CgrStatusSubmitted = "submitted"
	CgrStatusApproved  = "approved"
)

// CgrComponentResult é a avaliação de um componente dentro do informe.
type CgrComponentResult struct {
	Score  int    `json:"score"`
	Status string `json:"status"` // implementado, en_progreso, pendiente
}

// CgrReportData é o conteúdo tipado de um informe de auditoría. A forma é
// fixa o suficiente para merecer tipos; só Componentes é aberto por chave.
type CgrReportData struct {
	Componentes      map[string]CgrComponentResult `json:"componentes"`
	ResumenEjecutivo string                        `json:"resumen_ejecutivo"`
	Recomendaciones  []string                      `json:"recomendaciones"`
}

// CgrReport é um informe formal de auditoría enviado ao órgão de controle.
type CgrReport struct {
	ID            int            `json:"id" gorm:"primaryKey"`
	InstitutionID int            `json:"institutionId" gorm:"not null;index"`
	ReportType    string         `json:"reportType" gorm:"not null"`   // cumplimiento, autoevaluacion, seguimiento
	ReportPeriod  string         `json:"reportPeriod" gorm:"not null"` // "2024-Q1", "2024-Annual"
	ReportData    *CgrReportData `json:"reportData" gorm:"serializer:json"`
	GeneratedByID int            `json:"generatedById" gorm:"not null"`
	Status        string         `json:"status" gorm:"not null;default:draft"`
	SubmittedAt   *time.Time     `json:"submittedAt"`
	CreatedAt     time.Time      `json:"createdAt"`
	UpdatedAt     time.Time      `json:"updatedAt"`
}
