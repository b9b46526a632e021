package entities

import "time"

// Tipos de alerta emitidos pelo motor de alertas.
const (
	AlertTypeDeadlineApproaching = "deadline_approaching"
	AlertTypeOverdue             = "overdue"
	AlertTypeReviewRequired      = "review_required"
	AlertTypeHighPriority        = "high_priority"
)

// Prioridades de alerta, nos valores usados pelos relatórios oficiais.
const (
	PriorityAlta  = "alta"
	PriorityMedia = "media"
	PriorityBaja  = "baja"
)

// AlertNotification é uma notificação derivada de prazos de workflows e
// limiares de conformidade. Alertas resolvidos são desativados, não apagados.
type AlertNotification struct {
	ID            int        `json:"id" gorm:"primaryKey"`
	Title         string     `json:"title" gorm:"not null"`
	Description   string     `json:"description" gorm:"not null"`
	Type          string     `json:"type" gorm:"not null;index:idx_alerts_workflow_type"`
	Priority      string     `json:"priority" gorm:"not null;default:media"`
	InstitutionID int        `json:"institutionId" gorm:"not null;index"`
	WorkflowID    *int       `json:"workflowId" gorm:"index:idx_alerts_workflow_type"`
	AssignedToID  *int       `json:"assignedToId"`
	DueDate       *time.Time `json:"dueDate"`
	IsActive      bool       `json:"isActive" gorm:"default:true;index:idx_alerts_workflow_type"`
	EmailSent     bool       `json:"emailSent" gorm:"default:false"`
	EmailSentAt   *time.Time `json:"emailSentAt"`
	CreatedAt     time.Time  `json:"createdAt"`
}
