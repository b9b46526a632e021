package entities

import "time"

// Institution é o tenant do sistema: toda entidade que não pertence
// diretamente a um usuário é particionada por InstitutionID.
type Institution struct {
	ID                int       `json:"id" gorm:"primaryKey"`
	Name              string    `json:"name" gorm:"not null"`
	Type              string    `json:"type" gorm:"not null"` // ministry, direction, department
	LegalBasis        string    `json:"legalBasis"`
	SectorRegulations []string  `json:"sectorRegulations" gorm:"serializer:json"`
	Size              string    `json:"size" gorm:"not null"` // large, medium, small
	LogoURL           *string   `json:"logoUrl"`
	CreatedAt         time.Time `json:"createdAt"`
}
