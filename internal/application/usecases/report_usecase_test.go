package usecases

import (
	"context"
	"testing"
	"time"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/infrastructure/memory"
)

func newReportFixture(t *testing.T) (*ReportUseCase, *memory.Storage, int) {
	t.Helper()
	store := memory.NewStorage()
	ctx := context.Background()

	institution := entities.Institution{Name: "Ministerio de Prueba", Type: "ministerio"}
	if err := store.CreateInstitution(ctx, &institution); err != nil {
		t.Fatalf("CreateInstitution: %v", err)
	}
	return NewReportUseCase(store), store, institution.ID
}

func addWorkflow(t *testing.T, store *memory.Storage, institutionID int, component, status string, progress int) entities.Workflow {
	t.Helper()
	workflow := entities.Workflow{
		Name:          "Flujo " + component,
		ComponentType: component,
		Status:        status,
		Progress:      progress,
		InstitutionID: institutionID,
	}
	if err := store.CreateWorkflow(context.Background(), &workflow); err != nil {
		t.Fatalf("CreateWorkflow: %v", err)
	}
	return workflow
}

func TestDashboardStatsEmptyInstitution(t *testing.T) {
	uc, _, institutionID := newReportFixture(t)

	stats, err := uc.GetDashboardStats(context.Background(), institutionID)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats != (DashboardStats{}) {
		t.Errorf("stats = %+v, want todo en cero", stats)
	}
}

func TestDashboardStatsCountsAndRoundsProgress(t *testing.T) {
	uc, store, institutionID := newReportFixture(t)

	addWorkflow(t, store, institutionID, entities.ComponentAmbienteControl, entities.WorkflowStatusCompleted, 100)
	addWorkflow(t, store, institutionID, entities.ComponentEvaluacionRiesgos, entities.WorkflowStatusCompleted, 100)
	addWorkflow(t, store, institutionID, entities.ComponentActividadesControl, entities.WorkflowStatusInProgress, 50)
	addWorkflow(t, store, institutionID, entities.ComponentSupervision, entities.WorkflowStatusNotStarted, 0)

	stats, err := uc.GetDashboardStats(context.Background(), institutionID)
	if err != nil {
		t.Fatalf("GetDashboardStats: %v", err)
	}
	if stats.ActiveWorkflows != 1 {
		t.Errorf("activeWorkflows = %d, want 1", stats.ActiveWorkflows)
	}
	if stats.CompletedWorkflows != 2 {
		t.Errorf("completedWorkflows = %d, want 2", stats.CompletedWorkflows)
	}
	if stats.UnderReview != 0 {
		t.Errorf("underReview = %d, want 0", stats.UnderReview)
	}
	// (100+100+50+0)/4 = 62.5, redondeado a 63.
	if stats.OverallProgress != 63 {
		t.Errorf("overallProgress = %d, want 63", stats.OverallProgress)
	}
}

func TestComplianceReportAveragesScores(t *testing.T) {
	uc, store, institutionID := newReportFixture(t)
	ctx := context.Background()

	if _, err := store.UpsertComplianceScore(ctx, institutionID, entities.ComponentAmbienteControl, 80); err != nil {
		t.Fatalf("UpsertComplianceScore: %v", err)
	}
	if _, err := store.UpsertComplianceScore(ctx, institutionID, entities.ComponentSupervision, 65); err != nil {
		t.Fatalf("UpsertComplianceScore: %v", err)
	}
	addWorkflow(t, store, institutionID, entities.ComponentAmbienteControl, entities.WorkflowStatusInProgress, 40)

	report, err := uc.GenerateComplianceReport(ctx, institutionID)
	if err != nil {
		t.Fatalf("GenerateComplianceReport: %v", err)
	}
	if report.ReportType != "compliance" {
		t.Errorf("reportType = %q", report.ReportType)
	}
	// (80+65)/2 = 72.5, redondeado a 73.
	if report.Summary.OverallCompliance != 73 {
		t.Errorf("overallCompliance = %d, want 73", report.Summary.OverallCompliance)
	}
	if report.Summary.TotalWorkflows != 1 || report.Summary.ActiveWorkflows != 1 {
		t.Errorf("summary = %+v", report.Summary)
	}
	if len(report.ComponentCompliance) != 2 {
		t.Errorf("componentCompliance = %d filas, want 2", len(report.ComponentCompliance))
	}
	if report.Institution.Name != "Ministerio de Prueba" {
		t.Errorf("institution.name = %q", report.Institution.Name)
	}
}

func TestProgressReportEstimatesCompletion(t *testing.T) {
	uc, store, institutionID := newReportFixture(t)

	due := time.Date(2024, 6, 10, 0, 0, 0, 0, time.UTC)
	workflow := entities.Workflow{
		Name:          "Flujo con prazo",
		ComponentType: entities.ComponentAmbienteControl,
		Status:        entities.WorkflowStatusInProgress,
		InstitutionID: institutionID,
		DueDate:       &due,
	}
	if err := store.CreateWorkflow(context.Background(), &workflow); err != nil {
		t.Fatalf("CreateWorkflow: %v", err)
	}
	addWorkflow(t, store, institutionID, entities.ComponentSupervision, entities.WorkflowStatusNotStarted, 0)

	report, err := uc.GenerateProgressReport(context.Background(), institutionID)
	if err != nil {
		t.Fatalf("GenerateProgressReport: %v", err)
	}
	if len(report.Workflows) != 2 {
		t.Fatalf("workflows = %d, want 2", len(report.Workflows))
	}

	var withDue, withoutDue *ProgressWorkflow
	for i := range report.Workflows {
		if report.Workflows[i].ID == workflow.ID {
			withDue = &report.Workflows[i]
		} else {
			withoutDue = &report.Workflows[i]
		}
	}
	if withDue == nil || withDue.EstimatedCompletion == nil {
		t.Fatal("falta la estimación del workflow con prazo")
	}
	want := due.Add(7 * 24 * time.Hour)
	if !withDue.EstimatedCompletion.Equal(want) {
		t.Errorf("estimatedCompletion = %v, want %v", withDue.EstimatedCompletion, want)
	}
	if withoutDue == nil || withoutDue.EstimatedCompletion != nil {
		t.Error("workflow sin prazo no debe tener estimación")
	}
}

func TestPerformanceReportCompletionMetrics(t *testing.T) {
	uc, store, institutionID := newReportFixture(t)
	ctx := context.Background()

	created := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	due := created.Add(10 * 24 * time.Hour)

	onTimeDone := created.Add(8 * 24 * time.Hour)
	onTime := entities.Workflow{
		Name:          "A tiempo",
		ComponentType: entities.ComponentAmbienteControl,
		Status:        entities.WorkflowStatusCompleted,
		Progress:      100,
		InstitutionID: institutionID,
		DueDate:       &due,
		CompletedAt:   &onTimeDone,
		CreatedAt:     created,
	}
	if err := store.CreateWorkflow(ctx, &onTime); err != nil {
		t.Fatalf("CreateWorkflow: %v", err)
	}

	delayedDone := created.Add(14 * 24 * time.Hour)
	delayed := entities.Workflow{
		Name:          "Atrasado",
		ComponentType: entities.ComponentAmbienteControl,
		Status:        entities.WorkflowStatusCompleted,
		Progress:      100,
		InstitutionID: institutionID,
		DueDate:       &due,
		CompletedAt:   &delayedDone,
		CreatedAt:     created,
	}
	if err := store.CreateWorkflow(ctx, &delayed); err != nil {
		t.Fatalf("CreateWorkflow: %v", err)
	}
	addWorkflow(t, store, institutionID, entities.ComponentSupervision, entities.WorkflowStatusInProgress, 30)

	report, err := uc.GeneratePerformanceReport(ctx, institutionID)
	if err != nil {
		t.Fatalf("GeneratePerformanceReport: %v", err)
	}
	if report.Metrics.TotalWorkflows != 3 || report.Metrics.CompletedWorkflows != 2 {
		t.Errorf("metrics = %+v", report.Metrics)
	}
	// Duraciones de 8 y 14 días: promedio 11.
	if report.Metrics.AverageCompletionDays != 11 {
		t.Errorf("averageCompletionDays = %d, want 11", report.Metrics.AverageCompletionDays)
	}
	if report.Metrics.OnTimeCompletion != 1 || report.Metrics.DelayedCompletion != 1 {
		t.Errorf("onTime=%d delayed=%d, want 1 y 1", report.Metrics.OnTimeCompletion, report.Metrics.DelayedCompletion)
	}

	rates := map[string]ComponentPerformance{}
	for _, perf := range report.ComponentPerformance {
		rates[perf.Component] = perf
	}
	if got := rates[entities.ComponentAmbienteControl]; got.CompletionRate != 100 {
		t.Errorf("ambiente_control completionRate = %d, want 100", got.CompletionRate)
	}
	if got := rates[entities.ComponentSupervision]; got.CompletionRate != 0 {
		t.Errorf("supervision completionRate = %d, want 0", got.CompletionRate)
	}
}

func TestRiskReportClassifiesAreasAndOverdues(t *testing.T) {
	uc, store, institutionID := newReportFixture(t)
	ctx := context.Background()

	if _, err := store.UpsertComplianceScore(ctx, institutionID, entities.ComponentAmbienteControl, 45); err != nil {
		t.Fatalf("UpsertComplianceScore: %v", err)
	}
	if _, err := store.UpsertComplianceScore(ctx, institutionID, entities.ComponentSupervision, 65); err != nil {
		t.Fatalf("UpsertComplianceScore: %v", err)
	}
	if _, err := store.UpsertComplianceScore(ctx, institutionID, entities.ComponentActividadesControl, 75); err != nil {
		t.Fatalf("UpsertComplianceScore: %v", err)
	}

	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return now }

	overdueDate := now.Add(-5 * 24 * time.Hour)
	overdue := entities.Workflow{
		Name:          "Vencido",
		ComponentType: entities.ComponentAmbienteControl,
		Status:        entities.WorkflowStatusInProgress,
		InstitutionID: institutionID,
		DueDate:       &overdueDate,
	}
	if err := store.CreateWorkflow(ctx, &overdue); err != nil {
		t.Fatalf("CreateWorkflow: %v", err)
	}
	mitigation := addWorkflow(t, store, institutionID, entities.ComponentEvaluacionRiesgos, entities.WorkflowStatusInProgress, 60)

	report, err := uc.GenerateRiskReport(ctx, institutionID)
	if err != nil {
		t.Fatalf("GenerateRiskReport: %v", err)
	}

	levels := map[string]string{}
	for _, area := range report.RiskAssessment.HighRiskAreas {
		levels[area.Component] = area.RiskLevel
	}
	if len(levels) != 2 {
		t.Fatalf("highRiskAreas = %d, want 2 (el score 75 queda fuera)", len(levels))
	}
	if levels[entities.ComponentAmbienteControl] != "alto" {
		t.Errorf("score 45 → nivel %q, want alto", levels[entities.ComponentAmbienteControl])
	}
	if levels[entities.ComponentSupervision] != "medio" {
		t.Errorf("score 65 → nivel %q, want medio", levels[entities.ComponentSupervision])
	}

	if len(report.RiskAssessment.OverdueWorkflows) != 1 {
		t.Fatalf("overdueWorkflows = %d, want 1", len(report.RiskAssessment.OverdueWorkflows))
	}
	if got := report.RiskAssessment.OverdueWorkflows[0].DaysOverdue; got != 5 {
		t.Errorf("daysOverdue = %d, want 5", got)
	}

	if len(report.RiskAssessment.RiskMitigation) != 1 {
		t.Fatalf("riskMitigation = %d, want 1", len(report.RiskAssessment.RiskMitigation))
	}
	if got := report.RiskAssessment.RiskMitigation[0]; got.ID != mitigation.ID || got.ImplementationStatus != "en_progreso" {
		t.Errorf("riskMitigation = %+v", got)
	}
	if len(report.Recommendations) != 4 {
		t.Errorf("recommendations = %d, want 4", len(report.Recommendations))
	}
}

func TestTrainingStatsAggregates(t *testing.T) {
	uc, store, institutionID := newReportFixture(t)
	ctx := context.Background()

	records := []entities.TrainingRecord{
		{UserID: 1, InstitutionID: institutionID, TrainingTitle: "Curso COSO", TrainingType: "curso", TrainingTopic: "control_interno", Duration: 8, Status: "completed"},
		{UserID: 1, InstitutionID: institutionID, TrainingTitle: "Taller de riesgos", TrainingType: "taller", TrainingTopic: "riesgos", Duration: 4, Status: "in_progress"},
		{UserID: 2, InstitutionID: institutionID, TrainingTitle: "Seminario", TrainingType: "seminario", TrainingTopic: "control_interno", Duration: 2, Status: "completed"},
	}
	for i := range records {
		if err := store.CreateTrainingRecord(ctx, &records[i]); err != nil {
			t.Fatalf("CreateTrainingRecord: %v", err)
		}
	}

	stats, err := uc.GetTrainingStats(ctx, institutionID)
	if err != nil {
		t.Fatalf("GetTrainingStats: %v", err)
	}
	if stats.TotalTrainings != 3 || stats.CompletedTrainings != 2 || stats.InProgressTrainings != 1 {
		t.Errorf("stats = %+v", stats)
	}
	if stats.TotalHours != 14 {
		t.Errorf("totalHours = %d, want 14", stats.TotalHours)
	}
	if stats.TopicDistribution["control_interno"] != 2 || stats.TopicDistribution["riesgos"] != 1 {
		t.Errorf("topicDistribution = %v", stats.TopicDistribution)
	}
}
