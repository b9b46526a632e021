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

// Checklist items

func (s *Storage) GetChecklistItems(ctx context.Context) ([]entities.ChecklistItem, error) {
	items := []entities.ChecklistItem{}
	err := s.db.WithContext(ctx).Order("standard_number").Find(&items).Error
	return items, err
}

func (s *Storage) GetChecklistItemsByComponent(ctx context.Context, componentType string) ([]entities.ChecklistItem, error) {
	items := []entities.ChecklistItem{}
	err := s.db.WithContext(ctx).
		Where("component_type = ?", componentType).
		Order("standard_number").
		Find(&items).Error
	return items, err
}

func (s *Storage) GetChecklistItem(ctx context.Context, id int) (entities.ChecklistItem, error) {
	var item entities.ChecklistItem
	err := s.db.WithContext(ctx).First(&item, id).Error
	return item, translateErr(err)
}

func (s *Storage) CreateChecklistItem(ctx context.Context, item *entities.ChecklistItem) error {
	return s.db.WithContext(ctx).Create(item).Error
}

// Checklist responses

func (s *Storage) GetChecklistResponses(ctx context.Context, workflowID int) ([]entities.ChecklistResponse, error) {
	responses := []entities.ChecklistResponse{}
	err := s.db.WithContext(ctx).
		Where("workflow_id = ?", workflowID).
		Order("checklist_item_id").
		Find(&responses).Error
	return responses, err
}

func (s *Storage) GetChecklistResponse(ctx context.Context, checklistItemID, workflowID int) (entities.ChecklistResponse, error) {
	var response entities.ChecklistResponse
	err := s.db.WithContext(ctx).
		Where("checklist_item_id = ? AND workflow_id = ?", checklistItemID, workflowID).
		First(&response).Error
	return response, translateErr(err)
}

// UpsertChecklistResponse grava a resposta do par (item, workflow),
// substituindo a existente via ON CONFLICT sobre o índice único.
func (s *Storage) UpsertChecklistResponse(ctx context.Context, response *entities.ChecklistResponse) error {
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "checklist_item_id"}, {Name: "workflow_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"response", "status", "linked_document_ids", "linked_evidence_ids",
			"responded_by_id", "responded_at", "updated_at",
		}),
	}).Create(response).Error
	if err != nil {
		return err
	}

	// Recarrega para devolver o ID e o CreatedAt originais quando o conflito
	// resolveu por update em vez de insert.
	var stored entities.ChecklistResponse
	err = s.db.WithContext(ctx).
		Where("checklist_item_id = ? AND workflow_id = ?", response.ChecklistItemID, response.WorkflowID).
		First(&stored).Error
	if err != nil {
		return translateErr(err)
	}
	*response = stored
	return nil
}

func (s *Storage) UpdateChecklistResponse(ctx context.Context, id int, updates repositories.ChecklistResponseUpdate) (entities.ChecklistResponse, error) {
	fields := map[string]interface{}{}
	if updates.Response != nil {
		fields["response"] = *updates.Response
	}
	if updates.Status != nil {
		fields["status"] = *updates.Status
	}
	if updates.RespondedByID != nil {
		fields["responded_by_id"] = *updates.RespondedByID
	}
	if updates.RespondedAt != nil {
		fields["responded_at"] = *updates.RespondedAt
	}
	if updates.ReviewedByID != nil {
		fields["reviewed_by_id"] = *updates.ReviewedByID
	}
	if updates.ReviewedAt != nil {
		fields["reviewed_at"] = *updates.ReviewedAt
	}
	if updates.ReviewComments != nil {
		fields["review_comments"] = *updates.ReviewComments
	}

	var response entities.ChecklistResponse
	if err := s.db.WithContext(ctx).First(&response, id).Error; err != nil {
		return response, translateErr(err)
	}
	// Campos serializados passam pelo Save para acionar o serializer JSON.
	if updates.LinkedDocumentIDs != nil {
		response.LinkedDocumentIDs = *updates.LinkedDocumentIDs
	}
	if updates.LinkedEvidenceIDs != nil {
		response.LinkedEvidenceIDs = *updates.LinkedEvidenceIDs
	}
	if updates.LinkedDocumentIDs != nil || updates.LinkedEvidenceIDs != nil {
		if err := s.db.WithContext(ctx).Save(&response).Error; err != nil {
			return response, err
		}
	}
	if len(fields) > 0 {
		if err := s.db.WithContext(ctx).Model(&response).Updates(fields).Error; err != nil {
			return response, err
		}
	}
	err := s.db.WithContext(ctx).First(&response, id).Error
	return response, translateErr(err)
}

// Alert notifications

func (s *Storage) GetActiveAlerts(ctx context.Context, institutionID int, workflowID *int) ([]entities.AlertNotification, error) {
	alerts := []entities.AlertNotification{}
	query := s.db.WithContext(ctx).
		Where("institution_id = ? AND is_active = ?", institutionID, true)
	if workflowID != nil {
		query = query.Where("workflow_id = ?", *workflowID)
	}
	err := query.Order("created_at DESC, id DESC").Find(&alerts).Error
	return alerts, err
}

// EnsureActiveAlert verifica e cria dentro de uma transação para que duas
// varreduras concorrentes não dupliquem o mesmo alerta.
func (s *Storage) EnsureActiveAlert(ctx context.Context, alert *entities.AlertNotification) (bool, error) {
	created := false
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing entities.AlertNotification
		query := tx.Where("type = ? AND is_active = ?", alert.Type, true)
		if alert.WorkflowID != nil {
			query = query.Where("workflow_id = ?", *alert.WorkflowID)
		} else {
			query = query.Where("workflow_id IS NULL AND institution_id = ?", alert.InstitutionID)
		}
		err := query.First(&existing).Error
		if err == nil {
			*alert = existing
			return nil
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}
		alert.IsActive = true
		if err := tx.Create(alert).Error; err != nil {
			return err
		}
		created = true
		return nil
	})
	return created, err
}

func (s *Storage) MarkAlertEmailSent(ctx context.Context, alertID int, sentAt time.Time) error {
	result := s.db.WithContext(ctx).
		Model(&entities.AlertNotification{}).
		Where("id = ?", alertID).
		Updates(map[string]interface{}{"email_sent": true, "email_sent_at": sentAt})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	return nil
}

func (s *Storage) DeactivateAlert(ctx context.Context, alertID int) (bool, error) {
	result := s.db.WithContext(ctx).
		Model(&entities.AlertNotification{}).
		Where("id = ? AND is_active = ?", alertID, true).
		Update("is_active", false)
	return result.RowsAffected > 0, result.Error
}

// Institutional plans

func (s *Storage) GetInstitutionalPlans(ctx context.Context, institutionID int) ([]entities.InstitutionalPlan, error) {
	plans := []entities.InstitutionalPlan{}
	err := s.db.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("created_at DESC, id DESC").
		Find(&plans).Error
	return plans, err
}

func (s *Storage) CreateInstitutionalPlan(ctx context.Context, plan *entities.InstitutionalPlan) error {
	return s.db.WithContext(ctx).Create(plan).Error
}

func (s *Storage) UpdateInstitutionalPlan(ctx context.Context, id int, updates repositories.InstitutionalPlanUpdate) (entities.InstitutionalPlan, error) {
	fields := map[string]interface{}{}
	if updates.PlanName != nil {
		fields["plan_name"] = *updates.PlanName
	}
	if updates.Status != nil {
		fields["status"] = *updates.Status
	}
	if updates.ValidFrom != nil {
		fields["valid_from"] = *updates.ValidFrom
	}
	if updates.ValidTo != nil {
		fields["valid_to"] = *updates.ValidTo
	}
	return applyUpdate[entities.InstitutionalPlan](ctx, s.db, id, fields)
}

func (s *Storage) DeleteInstitutionalPlan(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&entities.InstitutionalPlan{}, id)
	return result.RowsAffected > 0, result.Error
}

// Training records

func (s *Storage) GetTrainingRecords(ctx context.Context, institutionID int) ([]entities.TrainingRecord, error) {
	records := []entities.TrainingRecord{}
	err := s.db.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("created_at DESC, id DESC").
		Find(&records).Error
	return records, err
}

func (s *Storage) CreateTrainingRecord(ctx context.Context, record *entities.TrainingRecord) error {
	return s.db.WithContext(ctx).Create(record).Error
}

func (s *Storage) UpdateTrainingRecord(ctx context.Context, id int, updates repositories.TrainingRecordUpdate) (entities.TrainingRecord, error) {
	fields := map[string]interface{}{}
	if updates.TrainingTitle != nil {
		fields["training_title"] = *updates.TrainingTitle
	}
	if updates.Provider != nil {
		fields["provider"] = *updates.Provider
	}
	if updates.Duration != nil {
		fields["duration"] = *updates.Duration
	}
	if updates.CompletionDate != nil {
		fields["completion_date"] = *updates.CompletionDate
	}
	if updates.Status != nil {
		fields["status"] = *updates.Status
	}
	return applyUpdate[entities.TrainingRecord](ctx, s.db, id, fields)
}

func (s *Storage) DeleteTrainingRecord(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&entities.TrainingRecord{}, id)
	return result.RowsAffected > 0, result.Error
}

// CGR reports

func (s *Storage) GetCgrReport(ctx context.Context, id int) (entities.CgrReport, error) {
	var report entities.CgrReport
	err := s.db.WithContext(ctx).First(&report, id).Error
	return report, translateErr(err)
}

func (s *Storage) GetCgrReports(ctx context.Context, institutionID int) ([]entities.CgrReport, error) {
	reports := []entities.CgrReport{}
	err := s.db.WithContext(ctx).
		Where("institution_id = ?", institutionID).
		Order("created_at DESC, id DESC").
		Find(&reports).Error
	return reports, err
}

func (s *Storage) CreateCgrReport(ctx context.Context, report *entities.CgrReport) error {
	if report.Status == "" {
		report.Status = entities.CgrStatusDraft
	}
	return s.db.WithContext(ctx).Create(report).Error
}

func (s *Storage) UpdateCgrReport(ctx context.Context, id int, updates repositories.CgrReportUpdate) (entities.CgrReport, error) {
	var report entities.CgrReport
	if err := s.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return report, translateErr(err)
	}
	if updates.ReportPeriod != nil {
		report.ReportPeriod = *updates.ReportPeriod
	}
	if updates.ReportData != nil {
		report.ReportData = updates.ReportData
	}
	if updates.Status != nil {
		report.Status = *updates.Status
	}
	if err := s.db.WithContext(ctx).Save(&report).Error; err != nil {
		return report, err
	}
	return report, nil
}

func (s *Storage) DeleteCgrReport(ctx context.Context, id int) (bool, error) {
	result := s.db.WithContext(ctx).Delete(&entities.CgrReport{}, id)
	return result.RowsAffected > 0, result.Error
}

func (s *Storage) SubmitCgrReport(ctx context.Context, id int) (entities.CgrReport, error) {
	var report entities.CgrReport
	if err := s.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return report, translateErr(err)
	}
	now := time.Now()
	report.Status = entities.CgrStatusSubmitted
	report.SubmittedAt = &now
	if err := s.db.WithContext(ctx).Save(&report).Error; err != nil {
		return report, err
	}
	return report, nil
}

func (s *Storage) ApproveCgrReport(ctx context.Context, id int) (entities.CgrReport, error) {
	var report entities.CgrReport
	if err := s.db.WithContext(ctx).First(&report, id).Error; err != nil {
		return report, translateErr(err)
	}
	report.Status = entities.CgrStatusApproved
	if err := s.db.WithContext(ctx).Save(&report).Error; err != nil {
		return report, err
	}
	return report, nil
}
