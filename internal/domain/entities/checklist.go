package entities

import "time"

// ChecklistItem é uma das 17 perguntas padrão de verificação COSO.
// Dados de referência estáticos, semeados uma única vez.
type ChecklistItem struct {
	ID                   int       `json:"id" gorm:"primaryKey"`
	Code                 string    `json:"code" gorm:"uniqueIndex;not null"` // "1.1" .. "5.2"
	Requirement          string    `json:"requirement" gorm:"not null"`
	VerificationQuestion string    `json:"verificationQuestion" gorm:"not null"`
	ComponentType        string    `json:"componentType" gorm:"not null;index"`
	StandardNumber       int       `json:"standardNumber" gorm:"default:1"` // 1-17
	CreatedAt            time.Time `json:"createdAt"`
}

// Situações possíveis de uma resposta de verificação.
const (
	ResponseStatusPending      = "pending"
	ResponseStatusCompliant    = "cumple"
	ResponseStatusNonCompliant = "no_cumple"
	ResponseStatusPartial      = "parcialmente"
)

// ChecklistResponse liga um item de verificação a um workflow específico.
// No máximo uma resposta por par (item, workflow) — invariante garantida
// pela camada de armazenamento nos dois backends.
type ChecklistResponse struct {
	ID                int        `json:"id" gorm:"primaryKey"`
	ChecklistItemID   int        `json:"checklistItemId" gorm:"not null;uniqueIndex:idx_responses_item_workflow"`
	WorkflowID        int        `json:"workflowId" gorm:"not null;uniqueIndex:idx_responses_item_workflow"`
	InstitutionID     int        `json:"institutionId" gorm:"not null;index"`
	Response          string     `json:"response"`
	Status            string     `json:"status" gorm:"not null;default:pending"`
	LinkedDocumentIDs []int      `json:"linkedDocumentIds" gorm:"serializer:json"`
	LinkedEvidenceIDs []int      `json:"linkedEvidenceIds" gorm:"serializer:json"`
	RespondedByID     *int       `json:"respondedById"`
	RespondedAt       *time.Time `json:"respondedAt"`
	ReviewedByID      *int       `json:"reviewedById"`
	ReviewedAt        *time.Time `json:"reviewedAt"`
	ReviewComments    string     `json:"reviewComments"`
	CreatedAt         time.Time  `json:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"`
}
