package entities

import "time"

// InstitutionalPlan é um plano estratégico (PEI) ou operacional (POA)
// arquivado pela instituição.
type InstitutionalPlan struct {
	ID            int        `json:"id" gorm:"primaryKey"`
	InstitutionID int        `json:"institutionId" gorm:"not null;index"`
	PlanType      string     `json:"planType" gorm:"not null"` // PEI, POA
	PlanName      string     `json:"planName" gorm:"not null"`
	FileName      string     `json:"fileName" gorm:"not null"`
	FilePath      string     `json:"filePath" gorm:"not null"`
	FileSize      int        `json:"fileSize"`
	MimeType      string     `json:"mimeType"`
	UploadedByID  int        `json:"uploadedById" gorm:"not null"`
	Status        string     `json:"status" gorm:"not null;default:active"` // active, archived, draft
	ValidFrom     *time.Time `json:"validFrom"`
	ValidTo       *time.Time `json:"validTo"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}
