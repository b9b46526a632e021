package entities

import "time"

// Tipos de atividade registrados no feed de auditoria.
const (
	ActivityWorkflowCreated   = "workflow_created"
	ActivityWorkflowUpdated   = "workflow_updated"
	ActivityWorkflowCompleted = "workflow_completed"
	ActivityEvidenceUploaded  = "evidence_uploaded"
	ActivityDocumentUploaded  = "document_uploaded"
	ActivityChecklistResponse = "checklist_response"
)

// Activity é um registro append-only do feed de eventos. Nunca é alterada
// após a criação; consultas retornam da mais recente para a mais antiga.
type Activity struct {
	ID            int       `json:"id" gorm:"primaryKey"`
	Type          string    `json:"type" gorm:"not null"`
	Description   string    `json:"description" gorm:"not null"`
	UserID        int       `json:"userId" gorm:"not null"`
	WorkflowID    *int      `json:"workflowId"`
	InstitutionID int       `json:"institutionId" gorm:"not null;index"`
	CreatedAt     time.Time `json:"createdAt" gorm:"index"`
}
