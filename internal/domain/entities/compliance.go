package entities

import "time"

// ComplianceScore guarda a nota 0-100 de um componente COSO por instituição.
// No máximo uma linha viva por par (instituição, componente): atualizações
// sobrescrevem, nunca acumulam histórico.
type ComplianceScore struct {
	ID            int       `json:"id" gorm:"primaryKey"`
	InstitutionID int       `json:"institutionId" gorm:"not null;uniqueIndex:idx_scores_inst_component"`
	ComponentType string    `json:"componentType" gorm:"not null;uniqueIndex:idx_scores_inst_component"`
	Score         int       `json:"score" gorm:"not null"`
	CalculatedAt  time.Time `json:"calculatedAt"`
}
