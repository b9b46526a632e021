// Package database implementa o contrato Storage sobre Postgres via GORM.
package database

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

type Storage struct {
	db *gorm.DB
}

var _ repositories.Storage = (*Storage)(nil)

func NewStorage(db *gorm.DB) *Storage {
	return &Storage{db: db}
}

// translateErr converte o sentinel do GORM para o sentinel do contrato.
func translateErr(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return repositories.ErrNotFound
	}
	return err
}

// Users

func (s *Storage) GetUser(ctx context.Context, id int) (entities.User, error) {
	var user entities.User
	err := s.db.WithContext(ctx).First(&user, id).Error
	return user, translateErr(err)
}

func (s *Storage) GetUserByEmail(ctx context.Context, email string) (entities.User, error) {
	var user entities.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error
	return user, translateErr(err)
}

func (s *Storage) CreateUser(ctx context.Context, user *entities.User) error {
	return s.db.WithContext(ctx).Create(user).Error
}

func (s *Storage) UpdateUser(ctx context.Context, id int, updates repositories.UserUpdate) (entities.User, error) {
	fields := map[string]interface{}{}
	if updates.FirstName != nil {
		fields["first_name"] = *updates.FirstName
	}
	if updates.LastName != nil {
		fields["last_name"] = *updates.LastName
	}
	if updates.Role != nil {
		fields["role"] = *updates.Role
	}
	if updates.SupervisorID != nil {
		fields["supervisor_id"] = *updates.SupervisorID
	}
	if updates.EmailNotifications != nil {
		fields["email_notifications"] = *updates.EmailNotifications
	}
	if updates.PasswordHash != nil {
		fields["password_hash"] = *updates.PasswordHash
	}
	return applyUpdate[entities.User](ctx, s.db, id, fields)
}

func (s *Storage) GetUsersByInstitution(ctx context.Context, institutionID int) ([]entities.User, error) {
	users := []entities.User{}
	err := s.db.WithContext(ctx).Where("institution_id = ?", institutionID).Order("id").Find(&users).Error
	return users, err
}

// applyUpdate mescla os campos informados e devolve o registro atualizado.
// Registro ausente vira ErrNotFound, nunca um update silencioso de zero linhas.
func applyUpdate[T any](ctx context.Context, db *gorm.DB, id int, fields map[string]interface{}) (T, error) {
	var record T
	if err := db.WithContext(ctx).First(&record, id).Error; err != nil {
		return record, translateErr(err)
	}
	if len(fields) > 0 {
		if err := db.WithContext(ctx).Model(&record).Updates(fields).Error; err != nil {
			return record, err
		}
	}
	err := db.WithContext(ctx).First(&record, id).Error
	return record, translateErr(err)
}

// Institutions

func (s *Storage) GetInstitution(ctx context.Context, id int) (entities.Institution, error) {
	var institution entities.Institution
	err := s.db.WithContext(ctx).First(&institution, id).Error
	return institution, translateErr(err)
}

func (s *Storage) GetAllInstitutions(ctx context.Context) ([]entities.Institution, error) {
	institutions := []entities.Institution{}
	err := s.db.WithContext(ctx).Order("id").Find(&institutions).Error
	return institutions, err
}

func (s *Storage) CreateInstitution(ctx context.Context, institution *entities.Institution) error {
	return s.db.WithContext(ctx).Create(institution).Error
}

func (s *Storage) UpdateInstitution(ctx context.Context, id int, updates repositories.InstitutionUpdate) (entities.Institution, error) {
	fields := map[string]interface{}{}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.LegalBasis != nil {
		fields["legal_basis"] = *updates.LegalBasis
	}
	if updates.LogoURL != nil {
		fields["logo_url"] = *updates.LogoURL
	}
	return applyUpdate[entities.Institution](ctx, s.db, id, fields)
}

// Workflows

func (s *Storage) GetWorkflow(ctx context.Context, id int) (entities.Workflow, error) {
	var workflow entities.Workflow
	err := s.db.WithContext(ctx).First(&workflow, id).Error
	return workflow, translateErr(err)
}

func (s *Storage) GetWorkflowsByInstitution(ctx context.Context, institutionID int) ([]entities.Workflow, error) {
	workflows := []entities.Workflow{}
	err := s.db.WithContext(ctx).Where("institution_id = ?", institutionID).Order("id").Find(&workflows).Error
	return workflows, err
}

func (s *Storage) CreateWorkflow(ctx context.Context, workflow *entities.Workflow) error {
	if workflow.Status == "" {
		workflow.Status = entities.WorkflowStatusNotStarted
	}
	return s.db.WithContext(ctx).Create(workflow).Error
}

func (s *Storage) UpdateWorkflow(ctx context.Context, id int, updates repositories.WorkflowUpdate) (entities.Workflow, error) {
	fields := map[string]interface{}{}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.Status != nil {
		fields["status"] = *updates.Status
	}
	if updates.Progress != nil {
		fields["progress"] = *updates.Progress
	}
	if updates.AssignedToID != nil {
		fields["assigned_to_id"] = *updates.AssignedToID
	}
	if updates.DueDate != nil {
		fields["due_date"] = *updates.DueDate
	}
	if updates.CompletedAt != nil {
		fields["completed_at"] = *updates.CompletedAt
	}
	return applyUpdate[entities.Workflow](ctx, s.db, id, fields)
}

// Workflow steps

func (s *Storage) GetWorkflowStep(ctx context.Context, id int) (entities.WorkflowStep, error) {
	var step entities.WorkflowStep
	err := s.db.WithContext(ctx).First(&step, id).Error
	return step, translateErr(err)
}

func (s *Storage) GetWorkflowSteps(ctx context.Context, workflowID int) ([]entities.WorkflowStep, error) {
	steps := []entities.WorkflowStep{}
	err := s.db.WithContext(ctx).Where("workflow_id = ?", workflowID).Order("step_order").Find(&steps).Error
	return steps, err
}

func (s *Storage) CreateWorkflowStep(ctx context.Context, step *entities.WorkflowStep) error {
	if step.Status == "" {
		step.Status = entities.StepStatusPending
	}
	return s.db.WithContext(ctx).Create(step).Error
}

func (s *Storage) UpdateWorkflowStep(ctx context.Context, id int, updates repositories.WorkflowStepUpdate) (entities.WorkflowStep, error) {
	fields := map[string]interface{}{}
	if updates.Name != nil {
		fields["name"] = *updates.Name
	}
	if updates.Description != nil {
		fields["description"] = *updates.Description
	}
	if updates.Status != nil {
		fields["status"] = *updates.Status
	}
	if updates.AssignedToID != nil {
		fields["assigned_to_id"] = *updates.AssignedToID
	}
	if updates.DueDate != nil {
		fields["due_date"] = *updates.DueDate
	}
	if updates.CompletedAt != nil {
		fields["completed_at"] = *updates.CompletedAt
	}
	return applyUpdate[entities.WorkflowStep](ctx, s.db, id, fields)
}

// Evidence

func (s *Storage) GetEvidenceByStep(ctx context.Context, stepID int) ([]entities.Evidence, error) {
	evidence := []entities.Evidence{}
	err := s.db.WithContext(ctx).Where("workflow_step_id = ?", stepID).Order("id").Find(&evidence).Error
	return evidence, err
}

func (s *Storage) GetEvidence(ctx context.Context, id int) (entities.Evidence, error) {
	var evidence entities.Evidence
	err := s.db.WithContext(ctx).First(&evidence, id).Error
	return evidence, translateErr(err)
}

func (s *Storage) CreateEvidence(ctx context.Context, evidence *entities.Evidence) error {
	return s.db.WithContext(ctx).Create(evidence).Error
}

// Activities

func (s *Storage) GetRecentActivities(ctx context.Context, institutionID, limit int) ([]entities.Activity, error) {
	activities := []entities.Activity{}
	query := s.db.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("created_at DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	err := query.Find(&activities).Error
	return activities, err
}

func (s *Storage) CreateActivity(ctx context.Context, activity *entities.Activity) error {
	return s.db.WithContext(ctx).Create(activity).Error
}

// Compliance scores

func (s *Storage) GetComplianceScores(ctx context.Context, institutionID int) ([]entities.ComplianceScore, error) {
	scores := []entities.ComplianceScore{}
	err := s.db.WithContext(ctx).Where("institution_id = ?", institutionID).Order("id").Find(&scores).Error
	return scores, err
}

// UpsertComplianceScore usa ON CONFLICT sobre o índice único
// (institution_id, component_type): chamadas concorrentes para o mesmo par
// nunca geram duas linhas.
func (s *Storage) UpsertComplianceScore(ctx context.Context, institutionID int, componentType string, score int) (entities.ComplianceScore, error) {
	record := entities.ComplianceScore{
		InstitutionID: institutionID,
		ComponentType: componentType,
		Score:         score,
		CalculatedAt:  time.Now(),
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "institution_id"}, {Name: "component_type"}},
		DoUpdates: clause.AssignmentColumns([]string{"score", "calculated_at"}),
	}).Create(&record).Error
	if err != nil {
		return entities.ComplianceScore{}, err
	}

	var stored entities.ComplianceScore
	err = s.db.WithContext(ctx).
		Where("institution_id = ? AND component_type = ?", institutionID, componentType).
		First(&stored).Error
	return stored, translateErr(err)
}

// Institution documents

func (s *Storage) GetInstitutionDocument(ctx context.Context, id int) (entities.InstitutionDocument, error) {
	var document entities.InstitutionDocument
	err := s.db.WithContext(ctx).First(&document, id).Error
	return document, translateErr(err)
}

func (s *Storage) GetInstitutionDocuments(ctx context.Context, institutionID int) ([]entities.InstitutionDocument, error) {
	documents := []entities.InstitutionDocument{}
	err := s.db.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("created_at DESC, id DESC").
		Find(&documents).Error
	return documents, err
}

func (s *Storage) GetInstitutionDocumentsByType(ctx context.Context, institutionID int, documentType string) ([]entities.InstitutionDocument, error) {
	documents := []entities.InstitutionDocument{}
	err := s.db.WithContext(ctx).
		Where("institution_id = ? AND document_type = ?", institutionID, documentType).
		Order("created_at DESC, id DESC").
		Find(&documents).Error
	return documents, err
}

func (s *Storage) CreateInstitutionDocument(ctx context.Context, document *entities.InstitutionDocument) error {
	return s.db.WithContext(ctx).Create(document).Error
}

func (s *Storage) SetDocumentAnalysis(ctx context.Context, id int, result entities.AnalysisResult, analyzedAt time.Time) (entities.InstitutionDocument, error) {
	var document entities.InstitutionDocument
	if err := s.db.WithContext(ctx).First(&document, id).Error; err != nil {
		return entities.InstitutionDocument{}, translateErr(err)
	}
	document.AnalysisResult = &result
	document.AnalyzedAt = &analyzedAt
	if err := s.db.WithContext(ctx).Save(&document).Error; err != nil {
		return entities.InstitutionDocument{}, err
	}
	return document, nil
}

func (s *Storage) DeleteInstitutionDocument(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&entities.InstitutionDocument{}, id)
	return result.RowsAffected > 0, result.Error
}
