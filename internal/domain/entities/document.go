package entities

import "time"

// Tipos de documento institucional aceitos no repositório documental.
var DocumentTypes = []string{
	"creation_law",
	"regulations",
	"sector_regulations",
	"organigram",
	"control_reports",
	"instructions",
	"policies",
	"procedures",
	"other_documents",
}

// IsValidDocumentType verifica o tipo contra a enumeração fixa.
func IsValidDocumentType(documentType string) bool {
	for _, t := range DocumentTypes {
		if t == documentType {
			return true
		}
	}
	return false
}

// AnalysisResult é o resultado tipado da análise de lacunas de conformidade
// de um documento. Substitui o blob JSON aberto da versão anterior.
type AnalysisResult struct {
	Summary         string   `json:"summary"`
	CoveredElements []string `json:"coveredElements"`
	Gaps            []string `json:"gaps"`
	Recommendations []string `json:"recommendations"`
}

// InstitutionDocument é um documento de suporte anexado à instituição
// (leis de criação, regulamentos, organogramas, políticas...).
type InstitutionDocument struct {
	ID             int             `json:"id" gorm:"primaryKey"`
	InstitutionID  int             `json:"institutionId" gorm:"not null;index"`
	FileName       string          `json:"fileName" gorm:"not null"`
	OriginalName   string          `json:"originalName" gorm:"not null"`
	FilePath       string          `json:"filePath" gorm:"not null"`
	FileSize       int             `json:"fileSize" gorm:"not null"`
	MimeType       string          `json:"mimeType" gorm:"not null"`
	DocumentType   string          `json:"documentType" gorm:"not null"`
	Description    *string         `json:"description"`
	UploadedByID   int             `json:"uploadedById" gorm:"not null"`
	AnalyzedAt     *time.Time      `json:"analyzedAt"`
	AnalysisResult *AnalysisResult `json:"analysisResult" gorm:"serializer:json"`
	CreatedAt      time.Time       `json:"createdAt"`
}
