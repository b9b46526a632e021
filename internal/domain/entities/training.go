package entities

import "time"

// TrainingRecord é o histórico de capacitação de um funcionário em temas de
// controle interno.
type TrainingRecord struct {
	ID                  int        `json:"id" gorm:"primaryKey"`
	UserID              int        `json:"userId" gorm:"not null;index"`
	InstitutionID       int        `json:"institutionId" gorm:"not null;index"`
	TrainingTitle       string     `json:"trainingTitle" gorm:"not null"`
	TrainingType        string     `json:"trainingType" gorm:"not null"`  // curso, taller, seminario, certificacion
	TrainingTopic       string     `json:"trainingTopic" gorm:"not null"` // control_interno, auditoria, riesgos, compliance
	Provider            string     `json:"provider"`
	Duration            int        `json:"duration"` // horas
	CompletionDate      *time.Time `json:"completionDate"`
	CertificateFileName string     `json:"certificateFileName"`
	CertificateFilePath string     `json:"certificateFilePath"`
	CertificateFileSize int        `json:"certificateFileSize"`
	CertificateMimeType string     `json:"certificateMimeType"`
	Status              string     `json:"status" gorm:"not null;default:completed"` // completed, in_progress, planned
	CreatedAt           time.Time  `json:"createdAt"`
	UpdatedAt           time.Time  `json:"updatedAt"`
}
