package repositories

import (
	"context"
	"errors"
	"time"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
)

// ErrNotFound sinaliza registro ausente. A camada HTTP traduz para 404;
// nenhuma operação de leitura retorna erro genérico para linha inexistente.
var ErrNotFound = errors.New("registro não encontrado")

// UserUpdate contém os campos mutáveis de um usuário. Ponteiro nil = não altera.
type UserUpdate struct {
	FirstName          *string
	LastName           *string
	Role               *string
	SupervisorID       *int
	EmailNotifications *bool
	PasswordHash       *string
}

// InstitutionUpdate contém os campos mutáveis de uma instituição.
type InstitutionUpdate struct {
	Name       *string
	LegalBasis *string
	LogoURL    *string
}

// WorkflowUpdate contém os campos mutáveis de um workflow.
type WorkflowUpdate struct {
	Name         *string
	Description  *string
	Status       *string
	Progress     *int
	AssignedToID *int
	DueDate      *time.Time
	CompletedAt  *time.Time
}

// WorkflowStepUpdate contém os campos mutáveis de um passo.
type WorkflowStepUpdate struct {
	Name         *string
	Description  *string
	Status       *string
	AssignedToID *int
	DueDate      *time.Time
	CompletedAt  *time.Time
}

// ChecklistResponseUpdate contém os campos mutáveis de uma resposta.
type ChecklistResponseUpdate struct {
	Response          *string
	Status            *string
	LinkedDocumentIDs *[]int
	LinkedEvidenceIDs *[]int
	RespondedByID     *int
	RespondedAt       *time.Time
	ReviewedByID      *int
	ReviewedAt        *time.Time
	ReviewComments    *string
}

// InstitutionalPlanUpdate contém os campos mutáveis de um plano.
type InstitutionalPlanUpdate struct {
	PlanName  *string
	Status    *string
	ValidFrom *time.Time
	ValidTo   *time.Time
}

// TrainingRecordUpdate contém os campos mutáveis de um registro de capacitação.
type TrainingRecordUpdate struct {
	TrainingTitle  *string
	Provider       *string
	Duration       *int
	CompletionDate *time.Time
	Status         *string
}

// CgrReportUpdate contém os campos mutáveis de um informe CGR.
type CgrReportUpdate struct {
	ReportPeriod *string
	ReportData   *entities.CgrReportData
	Status       *string
}

// Storage é o contrato único de persistência sobre todas as entidades.
// Duas implementações satisfazem o contrato com comportamento observável
// idêntico: o backend em memória (demos e testes) e o backend Postgres/GORM.
type Storage interface {
	// Users
	GetUser(ctx context.Context, id int) (entities.User, error)
	GetUserByEmail(ctx context.Context, email string) (entities.User, error)
	CreateUser(ctx context.Context, user *entities.User) error
	UpdateUser(ctx context.Context, id int, updates UserUpdate) (entities.User, error)
	GetUsersByInstitution(ctx context.Context, institutionID int) ([]entities.User, error)

	// Institutions
	GetInstitution(ctx context.Context, id int) (entities.Institution, error)
	GetAllInstitutions(ctx context.Context) ([]entities.Institution, error)
	CreateInstitution(ctx context.Context, institution *entities.Institution) error
	UpdateInstitution(ctx context.Context, id int, updates InstitutionUpdate) (entities.Institution, error)

	// Workflows
	GetWorkflow(ctx context.Context, id int) (entities.Workflow, error)
	GetWorkflowsByInstitution(ctx context.Context, institutionID int) ([]entities.Workflow, error)
	CreateWorkflow(ctx context.Context, workflow *entities.Workflow) error
	UpdateWorkflow(ctx context.Context, id int, updates WorkflowUpdate) (entities.Workflow, error)

	// Workflow steps
	GetWorkflowStep(ctx context.Context, id int) (entities.WorkflowStep, error)
	GetWorkflowSteps(ctx context.Context, workflowID int) ([]entities.WorkflowStep, error)
	CreateWorkflowStep(ctx context.Context, step *entities.WorkflowStep) error
	UpdateWorkflowStep(ctx context.Context, id int, updates WorkflowStepUpdate) (entities.WorkflowStep, error)

	// Evidence
	GetEvidenceByStep(ctx context.Context, stepID int) ([]entities.Evidence, error)
	GetEvidence(ctx context.Context, id int) (entities.Evidence, error)
	CreateEvidence(ctx context.Context, evidence *entities.Evidence) error

	// Activities (append-only, mais recentes primeiro)
	GetRecentActivities(ctx context.Context, institutionID, limit int) ([]entities.Activity, error)
	CreateActivity(ctx context.Context, activity *entities.Activity) error

	// Compliance scores: upsert atômico por (instituição, componente)
	GetComplianceScores(ctx context.Context, institutionID int) ([]entities.ComplianceScore, error)
	UpsertComplianceScore(ctx context.Context, institutionID int, componentType string, score int) (entities.ComplianceScore, error)

	// Institution documents
	GetInstitutionDocument(ctx context.Context, id int) (entities.InstitutionDocument, error)
	GetInstitutionDocuments(ctx context.Context, institutionID int) ([]entities.InstitutionDocument, error)
	GetInstitutionDocumentsByType(ctx context.Context, institutionID int, documentType string) ([]entities.InstitutionDocument, error)
	CreateInstitutionDocument(ctx context.Context, document *entities.InstitutionDocument) error
	SetDocumentAnalysis(ctx context.Context, id int, result entities.AnalysisResult, analyzedAt time.Time) (entities.InstitutionDocument, error)
	DeleteInstitutionDocument(ctx context.Context, id int) (bool, error)

	// Checklist items (dados de referência, 17 itens)
	GetChecklistItems(ctx context.Context) ([]entities.ChecklistItem, error)
	GetChecklistItemsByComponent(ctx context.Context, componentType string) ([]entities.ChecklistItem, error)
	GetChecklistItem(ctx context.Context, id int) (entities.ChecklistItem, error)
	CreateChecklistItem(ctx context.Context, item *entities.ChecklistItem) error

	// Checklist responses: única por (item, workflow)
	GetChecklistResponses(ctx context.Context, workflowID int) ([]entities.ChecklistResponse, error)
	GetChecklistResponse(ctx context.Context, checklistItemID, workflowID int) (entities.ChecklistResponse, error)
	UpsertChecklistResponse(ctx context.Context, response *entities.ChecklistResponse) error
	UpdateChecklistResponse(ctx context.Context, id int, updates ChecklistResponseUpdate) (entities.ChecklistResponse, error)

	// Alert notifications
	GetActiveAlerts(ctx context.Context, institutionID int, workflowID *int) ([]entities.AlertNotification, error)
	// EnsureActiveAlert cria o alerta somente se não existir alerta ativo do
	// mesmo tipo para o mesmo workflow. Atômico por backend; retorna se criou.
	EnsureActiveAlert(ctx context.Context, alert *entities.AlertNotification) (bool, error)
	MarkAlertEmailSent(ctx context.Context, alertID int, sentAt time.Time) error
	DeactivateAlert(ctx context.Context, alertID int) (bool, error)

	// Institutional plans
	GetInstitutionalPlans(ctx context.Context, institutionID int) ([]entities.InstitutionalPlan, error)
	CreateInstitutionalPlan(ctx context.Context, plan *entities.InstitutionalPlan) error
	UpdateInstitutionalPlan(ctx context.Context, id int, updates InstitutionalPlanUpdate) (entities.InstitutionalPlan, error)
	DeleteInstitutionalPlan(ctx context.Context, id int) (bool, error)

	// Training records
	GetTrainingRecords(ctx context.Context, institutionID int) ([]entities.TrainingRecord, error)
	CreateTrainingRecord(ctx context.Context, record *entities.TrainingRecord) error
	UpdateTrainingRecord(ctx context.Context, id int, updates TrainingRecordUpdate) (entities.TrainingRecord, error)
	DeleteTrainingRecord(ctx context.Context, id int) (bool, error)

	// CGR reports
	GetCgrReport(ctx context.Context, id int) (entities.CgrReport, error)
	GetCgrReports(ctx context.Context, institutionID int) ([]entities.CgrReport, error)
	CreateCgrReport(ctx context.Context, report *entities.CgrReport) error
	UpdateCgrReport(ctx context.Context, id int, updates CgrReportUpdate) (entities.CgrReport, error)
	DeleteCgrReport(ctx context.Context, id int) (bool, error)
	SubmitCgrReport(ctx context.Context, id int) (entities.CgrReport, error)
	ApproveCgrReport(ctx context.Context, id int) (entities.CgrReport, error)
}
