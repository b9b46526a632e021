package entities

import "time"

// Status de um fluxo de trabalho. Campo linear, não é uma máquina de estados
// estrita: "observed" e "under_review" exigem acompanhamento posterior.
const (
	WorkflowStatusNotStarted  = "not_started"
	WorkflowStatusInProgress  = "in_progress"
	WorkflowStatusUnderReview = "under_review"
	WorkflowStatusCompleted   = "completed"
	WorkflowStatusObserved    = "observed"
)

// Workflow representa o processo de implementação de um componente COSO
// dentro de uma instituição.
type Workflow struct {
	ID            int        `json:"id" gorm:"primaryKey"`
	Name          string     `json:"name" gorm:"not null"`
	Description   string     `json:"description"`
	ComponentType string     `json:"componentType" gorm:"not null;index"`
	Status        string     `json:"status" gorm:"not null;default:not_started"`
	Progress      int        `json:"progress" gorm:"default:0"` // 0-100
	InstitutionID int        `json:"institutionId" gorm:"not null;index"`
	AssignedToID  *int       `json:"assignedToId"`
	DueDate       *time.Time `json:"dueDate"`
	CompletedAt   *time.Time `json:"completedAt"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// Status de um passo de fluxo de trabalho.
const (
	StepStatusPending    = "pending"
	StepStatusInProgress = "in_progress"
	StepStatusCompleted  = "completed"
)

// WorkflowStep pertence a exatamente um workflow; Order define apenas a
// sequência de exibição, não uma ordem obrigatória de conclusão.
type WorkflowStep struct {
	ID           int        `json:"id" gorm:"primaryKey"`
	WorkflowID   int        `json:"workflowId" gorm:"not null;index"`
	Name         string     `json:"name" gorm:"not null"`
	Description  string     `json:"description"`
	Order        int        `json:"order" gorm:"column:step_order;not null"`
	Status       string     `json:"status" gorm:"not null;default:pending"`
	AssignedToID *int       `json:"assignedToId"`
	DueDate      *time.Time `json:"dueDate"`
	CompletedAt  *time.Time `json:"completedAt"`
	CreatedAt    time.Time  `json:"createdAt"`
}

// Evidence é um arquivo anexado a um passo como prova de execução.
type Evidence struct {
	ID             int       `json:"id" gorm:"primaryKey"`
	WorkflowStepID int       `json:"workflowStepId" gorm:"not null;index"`
	FileName       string    `json:"fileName" gorm:"not null"`
	FilePath       string    `json:"filePath" gorm:"not null"`
	FileSize       int       `json:"fileSize"`
	MimeType       string    `json:"mimeType"`
	UploadedByID   int       `json:"uploadedById" gorm:"not null"`
	CreatedAt      time.Time `json:"createdAt"`
}
