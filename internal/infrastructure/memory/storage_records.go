package memory

import (
	"context"
	"sort"
	"time"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

// Checklist items

func (s *Storage) GetChecklistItems(_ context.Context) ([]entities.ChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := []entities.ChecklistItem{}
	for _, item := range s.items {
		items = append(items, item)
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StandardNumber < items[j].StandardNumber })
	return items, nil
}

func (s *Storage) GetChecklistItemsByComponent(_ context.Context, componentType string) ([]entities.ChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	items := []entities.ChecklistItem{}
	for _, item := range s.items {
		if item.ComponentType == componentType {
			items = append(items, item)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].StandardNumber < items[j].StandardNumber })
	return items, nil
}

func (s *Storage) GetChecklistItem(_ context.Context, id int) (entities.ChecklistItem, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	item, ok := s.items[id]
	if !ok {
		return entities.ChecklistItem{}, repositories.ErrNotFound
	}
	return item, nil
}

func (s *Storage) CreateChecklistItem(_ context.Context, item *entities.ChecklistItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	item.ID = s.nextItemID
	s.nextItemID++
	stampCreated(&item.CreatedAt)
	s.items[item.ID] = *item
	return nil
}

// Checklist responses

func (s *Storage) GetChecklistResponses(_ context.Context, workflowID int) ([]entities.ChecklistResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	responses := []entities.ChecklistResponse{}
	for _, response := range s.responses {
		if response.WorkflowID == workflowID {
			responses = append(responses, response)
		}
	}
	sort.Slice(responses, func(i, j int) bool { return responses[i].ID < responses[j].ID })
	return responses, nil
}

func (s *Storage) GetChecklistResponse(_ context.Context, checklistItemID, workflowID int) (entities.ChecklistResponse, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, response := range s.responses {
		if response.ChecklistItemID == checklistItemID && response.WorkflowID == workflowID {
			return response, nil
		}
	}
	return entities.ChecklistResponse{}, repositories.ErrNotFound
}

// UpsertChecklistResponse garante no máximo uma resposta por par
// (item, workflow): a busca e a escrita acontecem sob o mesmo lock.
func (s *Storage) UpsertChecklistResponse(_ context.Context, response *entities.ChecklistResponse) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.responses {
		if existing.ChecklistItemID == response.ChecklistItemID && existing.WorkflowID == response.WorkflowID {
			response.ID = existing.ID
			response.CreatedAt = existing.CreatedAt
			response.UpdatedAt = time.Now()
			s.responses[id] = *response
			return nil
		}
	}
	response.ID = s.nextResponseID
	s.nextResponseID++
	stampCreated(&response.CreatedAt)
	response.UpdatedAt = response.CreatedAt
	s.responses[response.ID] = *response
	return nil
}

func (s *Storage) UpdateChecklistResponse(_ context.Context, id int, updates repositories.ChecklistResponseUpdate) (entities.ChecklistResponse, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	response, ok := s.responses[id]
	if !ok {
		return entities.ChecklistResponse{}, repositories.ErrNotFound
	}
	if updates.Response != nil {
		response.Response = *updates.Response
	}
	if updates.Status != nil {
		response.Status = *updates.Status
	}
	if updates.LinkedDocumentIDs != nil {
		response.LinkedDocumentIDs = *updates.LinkedDocumentIDs
	}
	if updates.LinkedEvidenceIDs != nil {
		response.LinkedEvidenceIDs = *updates.LinkedEvidenceIDs
	}
	if updates.RespondedByID != nil {
		response.RespondedByID = updates.RespondedByID
	}
	if updates.RespondedAt != nil {
		response.RespondedAt = updates.RespondedAt
	}
	if updates.ReviewedByID != nil {
		response.ReviewedByID = updates.ReviewedByID
	}
	if updates.ReviewedAt != nil {
		response.ReviewedAt = updates.ReviewedAt
	}
	if updates.ReviewComments != nil {
		response.ReviewComments = *updates.ReviewComments
	}
	response.UpdatedAt = time.Now()
	s.responses[id] = response
	return response, nil
}

// Alert notifications

func (s *Storage) GetActiveAlerts(_ context.Context, institutionID int, workflowID *int) ([]entities.AlertNotification, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	alerts := []entities.AlertNotification{}
	for _, alert := range s.alerts {
		if !alert.IsActive || alert.InstitutionID != institutionID {
			continue
		}
		if workflowID != nil && (alert.WorkflowID == nil || *alert.WorkflowID != *workflowID) {
			continue
		}
		alerts = append(alerts, alert)
	}
	sort.Slice(alerts, func(i, j int) bool { return alerts[i].ID < alerts[j].ID })
	return alerts, nil
}

// EnsureActiveAlert mantém a idempotência do motor de alertas: existência e
// inserção sob o mesmo lock, nunca dois alertas ativos do mesmo tipo para o
// mesmo workflow.
func (s *Storage) EnsureActiveAlert(_ context.Context, alert *entities.AlertNotification) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if alert.WorkflowID != nil {
		for _, existing := range s.alerts {
			if existing.IsActive && existing.Type == alert.Type &&
				existing.WorkflowID != nil && *existing.WorkflowID == *alert.WorkflowID {
				*alert = existing
				return false, nil
			}
		}
	}
	alert.ID = s.nextAlertID
	s.nextAlertID++
	alert.IsActive = true
	stampCreated(&alert.CreatedAt)
	s.alerts[alert.ID] = *alert
	return true, nil
}

func (s *Storage) MarkAlertEmailSent(_ context.Context, alertID int, sentAt time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert, ok := s.alerts[alertID]
	if !ok {
		return repositories.ErrNotFound
	}
	alert.EmailSent = true
	alert.EmailSentAt = &sentAt
	s.alerts[alertID] = alert
	return nil
}

func (s *Storage) DeactivateAlert(_ context.Context, alertID int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	alert, ok := s.alerts[alertID]
	if !ok {
		return false, nil
	}
	alert.IsActive = false
	s.alerts[alertID] = alert
	return true, nil
}

// Institutional plans

func (s *Storage) GetInstitutionalPlans(_ context.Context, institutionID int) ([]entities.InstitutionalPlan, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	plans := []entities.InstitutionalPlan{}
	for _, plan := range s.plans {
		if plan.InstitutionID == institutionID {
			plans = append(plans, plan)
		}
	}
	sort.Slice(plans, func(i, j int) bool { return plans[i].ID > plans[j].ID })
	return plans, nil
}

func (s *Storage) CreateInstitutionalPlan(_ context.Context, plan *entities.InstitutionalPlan) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan.ID = s.nextPlanID
	s.nextPlanID++
	stampCreated(&plan.CreatedAt)
	stampCreated(&plan.UpdatedAt)
	if plan.Status == "" {
		plan.Status = "active"
	}
	s.plans[plan.ID] = *plan
	return nil
}

func (s *Storage) UpdateInstitutionalPlan(_ context.Context, id int, updates repositories.InstitutionalPlanUpdate) (entities.InstitutionalPlan, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	plan, ok := s.plans[id]
	if !ok {
		return entities.InstitutionalPlan{}, repositories.ErrNotFound
	}
	if updates.PlanName != nil {
		plan.PlanName = *updates.PlanName
	}
	if updates.Status != nil {
		plan.Status = *updates.Status
	}
	if updates.ValidFrom != nil {
		plan.ValidFrom = updates.ValidFrom
	}
	if updates.ValidTo != nil {
		plan.ValidTo = updates.ValidTo
	}
	plan.UpdatedAt = time.Now()
	s.plans[id] = plan
	return plan, nil
}

func (s *Storage) DeleteInstitutionalPlan(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.plans[id]; !ok {
		return false, nil
	}
	delete(s.plans, id)
	return true, nil
}

// Training records

func (s *Storage) GetTrainingRecords(_ context.Context, institutionID int) ([]entities.TrainingRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	records := []entities.TrainingRecord{}
	for _, record := range s.trainings {
		if record.InstitutionID == institutionID {
			records = append(records, record)
		}
	}
	sort.Slice(records, func(i, j int) bool { return records[i].ID > records[j].ID })
	return records, nil
}

func (s *Storage) CreateTrainingRecord(_ context.Context, record *entities.TrainingRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	record.ID = s.nextTrainingID
	s.nextTrainingID++
	stampCreated(&record.CreatedAt)
	stampCreated(&record.UpdatedAt)
	if record.Status == "" {
		record.Status = "completed"
	}
	s.trainings[record.ID] = *record
	return nil
}

func (s *Storage) UpdateTrainingRecord(_ context.Context, id int, updates repositories.TrainingRecordUpdate) (entities.TrainingRecord, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	record, ok := s.trainings[id]
	if !ok {
		return entities.TrainingRecord{}, repositories.ErrNotFound
	}
	if updates.TrainingTitle != nil {
		record.TrainingTitle = *updates.TrainingTitle
	}
	if updates.Provider != nil {
		record.Provider = *updates.Provider
	}
	if updates.Duration != nil {
		record.Duration = *updates.Duration
	}
	if updates.CompletionDate != nil {
		record.CompletionDate = updates.CompletionDate
	}
	if updates.Status != nil {
		record.Status = *updates.Status
	}
	record.UpdatedAt = time.Now()
	s.trainings[id] = record
	return record, nil
}

func (s *Storage) DeleteTrainingRecord(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.trainings[id]; !ok {
		return false, nil
	}
	delete(s.trainings, id)
	return true, nil
}

// CGR reports

func (s *Storage) GetCgrReport(_ context.Context, id int) (entities.CgrReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	report, ok := s.cgrReports[id]
	if !ok {
		return entities.CgrReport{}, repositories.ErrNotFound
	}
	return report, nil
}

func (s *Storage) GetCgrReports(_ context.Context, institutionID int) ([]entities.CgrReport, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	reports := []entities.CgrReport{}
	for _, report := range s.cgrReports {
		if report.InstitutionID == institutionID {
			reports = append(reports, report)
		}
	}
	sort.Slice(reports, func(i, j int) bool { return reports[i].ID > reports[j].ID })
	return reports, nil
}

func (s *Storage) CreateCgrReport(_ context.Context, report *entities.CgrReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	report.ID = s.nextCgrID
	s.nextCgrID++
	stampCreated(&report.CreatedAt)
	stampCreated(&report.UpdatedAt)
	if report.Status == "" {
		report.Status = entities.CgrStatusDraft
	}
	s.cgrReports[report.ID] = *report
	return nil
}

func (s *Storage) UpdateCgrReport(_ context.Context, id int, updates repositories.CgrReportUpdate) (entities.CgrReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.cgrReports[id]
	if !ok {
		return entities.CgrReport{}, repositories.ErrNotFound
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
	report.UpdatedAt = time.Now()
	s.cgrReports[id] = report
	return report, nil
}

func (s *Storage) DeleteCgrReport(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.cgrReports[id]; !ok {
		return false, nil
	}
	delete(s.cgrReports, id)
	return true, nil
}

func (s *Storage) SubmitCgrReport(_ context.Context, id int) (entities.CgrReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.cgrReports[id]
	if !ok {
		return entities.CgrReport{}, repositories.ErrNotFound
	}
	now := time.Now()
	report.Status = entities.CgrStatusSubmitted
	report.SubmittedAt = &now
	report.UpdatedAt = now
	s.cgrReports[id] = report
	return report, nil
}

func (s *Storage) ApproveCgrReport(_ context.Context, id int) (entities.CgrReport, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	report, ok := s.cgrReports[id]
	if !ok {
		return entities.CgrReport{}, repositories.ErrNotFound
	}
	report.Status = entities.CgrStatusApproved
	report.UpdatedAt = time.Now()
	s.cgrReports[id] = report
	return report, nil
}
