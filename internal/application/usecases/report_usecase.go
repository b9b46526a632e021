package usecases

import (
	"context"
	"math"
	"time"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
)

// ReportUseCase calcula os indicadores do painel e monta os quatro informes
// institucionais. Toda a aritmética acontece aqui; o storage só fornece dados.
type ReportUseCase struct {
	storage repositories.Storage
	now     func() time.Time
}

func NewReportUseCase(storage repositories.Storage) *ReportUseCase {
	return &ReportUseCase{storage: storage, now: time.Now}
}

// DashboardStats são os contadores do painel principal.
type DashboardStats struct {
	ActiveWorkflows    int `json:"activeWorkflows"`
	CompletedWorkflows int `json:"completedWorkflows"`
	UnderReview        int `json:"underReview"`
	OverallProgress    int `json:"overallProgress"`
}

// GetDashboardStats conta os workflows por situação e calcula o progresso
// geral como média aritmética arredondada. Sem workflows, tudo é zero.
func (uc *ReportUseCase) GetDashboardStats(ctx context.Context, institutionID int) (DashboardStats, error) {
	workflows, err := uc.storage.GetWorkflowsByInstitution(ctx, institutionID)
	if err != nil {
		return DashboardStats{}, err
	}

	stats := DashboardStats{}
	totalProgress := 0
	for _, w := range workflows {
		switch w.Status {
		case entities.WorkflowStatusInProgress:
			stats.ActiveWorkflows++
		case entities.WorkflowStatusCompleted:
			stats.CompletedWorkflows++
		case entities.WorkflowStatusUnderReview:
			stats.UnderReview++
		}
		totalProgress += w.Progress
	}
	if len(workflows) > 0 {
		stats.OverallProgress = roundToInt(float64(totalProgress) / float64(len(workflows)))
	}
	return stats, nil
}

func roundToInt(v float64) int {
	return int(math.Round(v))
}

// Informe de cumplimiento

type ComplianceReport struct {
	ReportType          string                `json:"reportType"`
	GeneratedAt         time.Time             `json:"generatedAt"`
	Institution         ReportInstitution     `json:"institution"`
	Summary             ComplianceSummary     `json:"summary"`
	ComponentCompliance []ComponentCompliance `json:"componentCompliance"`
	Workflows           []ReportWorkflow      `json:"workflows"`
}

type ReportInstitution struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Type string `json:"type"`
}

type ComplianceSummary struct {
	OverallCompliance  int `json:"overallCompliance"`
	TotalWorkflows     int `json:"totalWorkflows"`
	CompletedWorkflows int `json:"completedWorkflows"`
	ActiveWorkflows    int `json:"activeWorkflows"`
	UnderReview        int `json:"underReview"`
}

type ComponentCompliance struct {
	Component    string    `json:"component"`
	Score        int       `json:"score"`
	CalculatedAt time.Time `json:"calculatedAt"`
}

type ReportWorkflow struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Component   string     `json:"component"`
	Status      string     `json:"status"`
	Progress    int        `json:"progress"`
	DueDate     *time.Time `json:"dueDate"`
	CompletedAt *time.Time `json:"completedAt"`
}

func (uc *ReportUseCase) GenerateComplianceReport(ctx context.Context, institutionID int) (ComplianceReport, error) {
	institution, err := uc.storage.GetInstitution(ctx, institutionID)
	if err != nil {
		return ComplianceReport{}, err
	}
	workflows, err := uc.storage.GetWorkflowsByInstitution(ctx, institutionID)
	if err != nil {
		return ComplianceReport{}, err
	}
	scores, err := uc.storage.GetComplianceScores(ctx, institutionID)
	if err != nil {
		return ComplianceReport{}, err
	}
	stats, err := uc.GetDashboardStats(ctx, institutionID)
	if err != nil {
		return ComplianceReport{}, err
	}

	overall := 0
	if len(scores) > 0 {
		sum := 0
		for _, s := range scores {
			sum += s.Score
		}
		overall = roundToInt(float64(sum) / float64(len(scores)))
	}

	report := ComplianceReport{
		ReportType:  "compliance",
		GeneratedAt: uc.now(),
		Institution: ReportInstitution{ID: institution.ID, Name: institution.Name, Type: institution.Type},
		Summary: ComplianceSummary{
			OverallCompliance:  overall,
			TotalWorkflows:     len(workflows),
			CompletedWorkflows: stats.CompletedWorkflows,
			ActiveWorkflows:    stats.ActiveWorkflows,
			UnderReview:        stats.UnderReview,
		},
		ComponentCompliance: make([]ComponentCompliance, 0, len(scores)),
		Workflows:           make([]ReportWorkflow, 0, len(workflows)),
	}
	for _, s := range scores {
		report.ComponentCompliance = append(report.ComponentCompliance, ComponentCompliance{
			Component:    s.ComponentType,
			Score:        s.Score,
			CalculatedAt: s.CalculatedAt,
		})
	}
	for _, w := range workflows {
		report.Workflows = append(report.Workflows, ReportWorkflow{
			ID:          w.ID,
			Name:        w.Name,
			Component:   w.ComponentType,
			Status:      w.Status,
			Progress:    w.Progress,
			DueDate:     w.DueDate,
			CompletedAt: w.CompletedAt,
		})
	}
	return report, nil
}

// Informe de progreso

type ProgressReport struct {
	ReportType       string             `json:"reportType"`
	GeneratedAt      time.Time          `json:"generatedAt"`
	Workflows        []ProgressWorkflow `json:"workflows"`
	RecentActivities []ProgressActivity `json:"recentActivities"`
}

type ProgressWorkflow struct {
	ID                  int        `json:"id"`
	Name                string     `json:"name"`
	Component           string     `json:"component"`
	Status              string     `json:"status"`
	Progress            int        `json:"progress"`
	AssignedTo          *int       `json:"assignedTo"`
	StartDate           time.Time  `json:"startDate"`
	DueDate             *time.Time `json:"dueDate"`
	CompletedAt         *time.Time `json:"completedAt"`
	EstimatedCompletion *time.Time `json:"estimatedCompletion"`
}

type ProgressActivity struct {
	Type        string    `json:"type"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
	UserID      int       `json:"userId"`
	WorkflowID  *int      `json:"workflowId"`
}

func (uc *ReportUseCase) GenerateProgressReport(ctx context.Context, institutionID int) (ProgressReport, error) {
	workflows, err := uc.storage.GetWorkflowsByInstitution(ctx, institutionID)
	if err != nil {
		return ProgressReport{}, err
	}
	activities, err := uc.storage.GetRecentActivities(ctx, institutionID, 50)
	if err != nil {
		return ProgressReport{}, err
	}

	report := ProgressReport{
		ReportType:       "progress",
		GeneratedAt:      uc.now(),
		Workflows:        make([]ProgressWorkflow, 0, len(workflows)),
		RecentActivities: make([]ProgressActivity, 0, len(activities)),
	}
	for _, w := range workflows {
		// A estimativa de conclusão é o prazo mais uma semana de folga.
		var estimated *time.Time
		if w.DueDate != nil {
			e := w.DueDate.Add(7 * 24 * time.Hour)
			estimated = &e
		}
		report.Workflows = append(report.Workflows, ProgressWorkflow{
			ID:                  w.ID,
			Name:                w.Name,
			Component:           w.ComponentType,
			Status:              w.Status,
			Progress:            w.Progress,
			AssignedTo:          w.AssignedToID,
			StartDate:           w.CreatedAt,
			DueDate:             w.DueDate,
			CompletedAt:         w.CompletedAt,
			EstimatedCompletion: estimated,
		})
	}
	for _, a := range activities {
		report.RecentActivities = append(report.RecentActivities, ProgressActivity{
			Type:        a.Type,
			Description: a.Description,
			CreatedAt:   a.CreatedAt,
			UserID:      a.UserID,
			WorkflowID:  a.WorkflowID,
		})
	}
	return report, nil
}

// Informe de rendimiento

type PerformanceReport struct {
	ReportType           string                 `json:"reportType"`
	GeneratedAt          time.Time              `json:"generatedAt"`
	Metrics              PerformanceMetrics     `json:"metrics"`
	ComponentPerformance []ComponentPerformance `json:"componentPerformance"`
	ActivityTrends       []ActivityTrend        `json:"activityTrends"`
}

type PerformanceMetrics struct {
	TotalWorkflows        int `json:"totalWorkflows"`
	CompletedWorkflows    int `json:"completedWorkflows"`
	AverageCompletionDays int `json:"averageCompletionDays"`
	OnTimeCompletion      int `json:"onTimeCompletion"`
	DelayedCompletion     int `json:"delayedCompletion"`
}

type ComponentPerformance struct {
	Component          string `json:"component"`
	TotalWorkflows     int    `json:"totalWorkflows"`
	CompletedWorkflows int    `json:"completedWorkflows"`
	CompletionRate     int    `json:"completionRate"`
}

type ActivityTrend struct {
	Date  time.Time `json:"date"`
	Type  string    `json:"type"`
	Count int       `json:"count"`
}

func (uc *ReportUseCase) GeneratePerformanceReport(ctx context.Context, institutionID int) (PerformanceReport, error) {
	workflows, err := uc.storage.GetWorkflowsByInstitution(ctx, institutionID)
	if err != nil {
		return PerformanceReport{}, err
	}
	activities, err := uc.storage.GetRecentActivities(ctx, institutionID, 100)
	if err != nil {
		return PerformanceReport{}, err
	}

	var completed []entities.Workflow
	for _, w := range workflows {
		if w.Status == entities.WorkflowStatusCompleted {
			completed = append(completed, w)
		}
	}

	metrics := PerformanceMetrics{
		TotalWorkflows:     len(workflows),
		CompletedWorkflows: len(completed),
	}
	if len(completed) > 0 {
		var totalDuration time.Duration
		for _, w := range completed {
			if w.CompletedAt != nil {
				totalDuration += w.CompletedAt.Sub(w.CreatedAt)
			}
		}
		average := totalDuration / time.Duration(len(completed))
		metrics.AverageCompletionDays = roundToInt(average.Hours() / 24)
	}
	for _, w := range completed {
		if w.DueDate == nil || w.CompletedAt == nil {
			continue
		}
		if w.CompletedAt.After(*w.DueDate) {
			metrics.DelayedCompletion++
		} else {
			metrics.OnTimeCompletion++
		}
	}

	report := PerformanceReport{
		ReportType:  "performance",
		GeneratedAt: uc.now(),
		Metrics:     metrics,
	}
	for _, component := range entities.ComponentTypes() {
		perf := ComponentPerformance{Component: component}
		for _, w := range workflows {
			if w.ComponentType != component {
				continue
			}
			perf.TotalWorkflows++
			if w.Status == entities.WorkflowStatusCompleted {
				perf.CompletedWorkflows++
			}
		}
		if perf.TotalWorkflows > 0 {
			perf.CompletionRate = roundToInt(float64(perf.CompletedWorkflows) / float64(perf.TotalWorkflows) * 100)
		}
		report.ComponentPerformance = append(report.ComponentPerformance, perf)
	}
	trendLimit := len(activities)
	if trendLimit > 30 {
		trendLimit = 30
	}
	for _, a := range activities[:trendLimit] {
		report.ActivityTrends = append(report.ActivityTrends, ActivityTrend{
			Date:  a.CreatedAt,
			Type:  a.Type,
			Count: 1,
		})
	}
	return report, nil
}

// Informe de riesgos

// Limiares de risco sobre a nota de conformidade do componente.
const (
	riskScoreThreshold = 70
	highRiskThreshold  = 50
)

type RiskReport struct {
	ReportType      string         `json:"reportType"`
	GeneratedAt     time.Time      `json:"generatedAt"`
	RiskAssessment  RiskAssessment `json:"riskAssessment"`
	Recommendations []string       `json:"recommendations"`
}

type RiskAssessment struct {
	HighRiskAreas    []RiskArea        `json:"highRiskAreas"`
	OverdueWorkflows []OverdueWorkflow `json:"overdueWorkflows"`
	RiskMitigation   []RiskMitigation  `json:"riskMitigation"`
}

type RiskArea struct {
	Component string `json:"component"`
	Score     int    `json:"score"`
	RiskLevel string `json:"riskLevel"`
}

type OverdueWorkflow struct {
	ID          int        `json:"id"`
	Name        string     `json:"name"`
	Component   string     `json:"component"`
	DueDate     *time.Time `json:"dueDate"`
	DaysOverdue int        `json:"daysOverdue"`
}

type RiskMitigation struct {
	ID                   int    `json:"id"`
	Name                 string `json:"name"`
	Status               string `json:"status"`
	Progress             int    `json:"progress"`
	ImplementationStatus string `json:"implementationStatus"`
}

func (uc *ReportUseCase) GenerateRiskReport(ctx context.Context, institutionID int) (RiskReport, error) {
	workflows, err := uc.storage.GetWorkflowsByInstitution(ctx, institutionID)
	if err != nil {
		return RiskReport{}, err
	}
	scores, err := uc.storage.GetComplianceScores(ctx, institutionID)
	if err != nil {
		return RiskReport{}, err
	}

	now := uc.now()
	assessment := RiskAssessment{
		HighRiskAreas:    []RiskArea{},
		OverdueWorkflows: []OverdueWorkflow{},
		RiskMitigation:   []RiskMitigation{},
	}

	for _, s := range scores {
		if s.Score >= riskScoreThreshold {
			continue
		}
		level := "medio"
		if s.Score < highRiskThreshold {
			level = "alto"
		}
		assessment.HighRiskAreas = append(assessment.HighRiskAreas, RiskArea{
			Component: s.ComponentType,
			Score:     s.Score,
			RiskLevel: level,
		})
	}

	for _, w := range workflows {
		if w.DueDate == nil || w.Status == entities.WorkflowStatusCompleted || !now.After(*w.DueDate) {
			continue
		}
		assessment.OverdueWorkflows = append(assessment.OverdueWorkflows, OverdueWorkflow{
			ID:          w.ID,
			Name:        w.Name,
			Component:   w.ComponentType,
			DueDate:     w.DueDate,
			DaysOverdue: int(now.Sub(*w.DueDate).Hours() / 24),
		})
	}

	for _, w := range workflows {
		if w.ComponentType != entities.ComponentEvaluacionRiesgos {
			continue
		}
		implementation := "pendiente"
		switch w.Status {
		case entities.WorkflowStatusCompleted:
			implementation = "implementado"
		case entities.WorkflowStatusInProgress:
			implementation = "en_progreso"
		}
		assessment.RiskMitigation = append(assessment.RiskMitigation, RiskMitigation{
			ID:                   w.ID,
			Name:                 w.Name,
			Status:               w.Status,
			Progress:             w.Progress,
			ImplementationStatus: implementation,
		})
	}

	return RiskReport{
		ReportType:     "risk",
		GeneratedAt:    now,
		RiskAssessment: assessment,
		Recommendations: []string{
			"Priorizar flujos de trabajo con cumplimiento menor al 70%",
			"Implementar controles adicionales en áreas de alto riesgo",
			"Establecer seguimiento quincenal para flujos atrasados",
			"Revisar y actualizar evaluaciones de riesgo trimestralmente",
		},
	}, nil
}

// Estatísticas de capacitação

type TrainingStats struct {
	TotalTrainings      int            `json:"totalTrainings"`
	CompletedTrainings  int            `json:"completedTrainings"`
	InProgressTrainings int            `json:"inProgressTrainings"`
	TotalHours          int            `json:"totalHours"`
	TopicDistribution   map[string]int `json:"topicDistribution"`
}

func (uc *ReportUseCase) GetTrainingStats(ctx context.Context, institutionID int) (TrainingStats, error) {
	records, err := uc.storage.GetTrainingRecords(ctx, institutionID)
	if err != nil {
		return TrainingStats{}, err
	}

	stats := TrainingStats{TopicDistribution: map[string]int{}}
	for _, r := range records {
		stats.TotalTrainings++
		switch r.Status {
		case "completed":
			stats.CompletedTrainings++
		case "in_progress":
			stats.InProgressTrainings++
		}
		stats.TotalHours += r.Duration
		stats.TopicDistribution[r.TrainingTopic]++
	}
	return stats, nil
}
