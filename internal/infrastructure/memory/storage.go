// Package memory implementa o contrato Storage sobre mapas em processo.
// Usado em demos e testes; os dados não sobrevivem ao restart.
package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/seed"
)

type Storage struct {
	mu sync.RWMutex

	users        map[int]entities.User
	institutions map[int]entities.Institution
	workflows    map[int]entities.Workflow
	steps        map[int]entities.WorkflowStep
	evidence     map[int]entities.Evidence
	activities   map[int]entities.Activity
	scores       map[int]entities.ComplianceScore
	documents    map[int]entities.InstitutionDocument
	items        map[int]entities.ChecklistItem
	responses    map[int]entities.ChecklistResponse
	alerts       map[int]entities.AlertNotification
	plans        map[int]entities.InstitutionalPlan
	trainings    map[int]entities.TrainingRecord
	cgrReports   map[int]entities.CgrReport

	// Contadores monotônicos por tipo de entidade.
	nextUserID     int
	nextInstID     int
	nextWorkflowID int
	nextStepID     int
	nextEvidenceID int
	nextActivityID int
	nextScoreID    int
	nextDocumentID int
	nextItemID     int
	nextResponseID int
	nextAlertID    int
	nextPlanID     int
	nextTrainingID int
	nextCgrID      int
}

var _ repositories.Storage = (*Storage)(nil)

// NewStorage cria o backend em memória já com os 17 itens de verificação
// semeados. Dados de demonstração ficam a cargo de SeedDemo.
func NewStorage() *Storage {
	s := &Storage{
		users:        make(map[int]entities.User),
		institutions: make(map[int]entities.Institution),
		workflows:    make(map[int]entities.Workflow),
		steps:        make(map[int]entities.WorkflowStep),
		evidence:     make(map[int]entities.Evidence),
		activities:   make(map[int]entities.Activity),
		scores:       make(map[int]entities.ComplianceScore),
		documents:    make(map[int]entities.InstitutionDocument),
		items:        make(map[int]entities.ChecklistItem),
		responses:    make(map[int]entities.ChecklistResponse),
		alerts:       make(map[int]entities.AlertNotification),
		plans:        make(map[int]entities.InstitutionalPlan),
		trainings:    make(map[int]entities.TrainingRecord),
		cgrReports:   make(map[int]entities.CgrReport),

		nextUserID: 1, nextInstID: 1, nextWorkflowID: 1, nextStepID: 1,
		nextEvidenceID: 1, nextActivityID: 1, nextScoreID: 1, nextDocumentID: 1,
		nextItemID: 1, nextResponseID: 1, nextAlertID: 1, nextPlanID: 1,
		nextTrainingID: 1, nextCgrID: 1,
	}

	now := time.Now()
	for _, item := range seed.ChecklistItems() {
		item.ID = s.nextItemID
		s.nextItemID++
		item.CreatedAt = now
		s.items[item.ID] = item
	}
	return s
}

func stampCreated(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

// Users

func (s *Storage) GetUser(_ context.Context, id int) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	user, ok := s.users[id]
	if !ok {
		return entities.User{}, repositories.ErrNotFound
	}
	return user, nil
}

func (s *Storage) GetUserByEmail(_ context.Context, email string) (entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, user := range s.users {
		if user.Email == email {
			return user, nil
		}
	}
	return entities.User{}, repositories.ErrNotFound
}

func (s *Storage) CreateUser(_ context.Context, user *entities.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	user.ID = s.nextUserID
	s.nextUserID++
	stampCreated(&user.CreatedAt)
	stampCreated(&user.UpdatedAt)
	s.users[user.ID] = *user
	return nil
}

func (s *Storage) UpdateUser(_ context.Context, id int, updates repositories.UserUpdate) (entities.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	user, ok := s.users[id]
	if !ok {
		return entities.User{}, repositories.ErrNotFound
	}
	if updates.FirstName != nil {
		user.FirstName = *updates.FirstName
	}
	if updates.LastName != nil {
		user.LastName = *updates.LastName
	}
	if updates.Role != nil {
		user.Role = *updates.Role
	}
	if updates.SupervisorID != nil {
		user.SupervisorID = updates.SupervisorID
	}
	if updates.EmailNotifications != nil {
		user.EmailNotifications = *updates.EmailNotifications
	}
	if updates.PasswordHash != nil {
		user.PasswordHash = *updates.PasswordHash
	}
	user.UpdatedAt = time.Now()
	s.users[id] = user
	return user, nil
}

func (s *Storage) GetUsersByInstitution(_ context.Context, institutionID int) ([]entities.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	users := []entities.User{}
	for _, user := range s.users {
		if user.InstitutionID != nil && *user.InstitutionID == institutionID {
			users = append(users, user)
		}
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// Institutions

func (s *Storage) GetInstitution(_ context.Context, id int) (entities.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	inst, ok := s.institutions[id]
	if !ok {
		return entities.Institution{}, repositories.ErrNotFound
	}
	return inst, nil
}

func (s *Storage) GetAllInstitutions(_ context.Context) ([]entities.Institution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	institutions := []entities.Institution{}
	for _, inst := range s.institutions {
		institutions = append(institutions, inst)
	}
	sort.Slice(institutions, func(i, j int) bool { return institutions[i].ID < institutions[j].ID })
	return institutions, nil
}

func (s *Storage) CreateInstitution(_ context.Context, institution *entities.Institution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	institution.ID = s.nextInstID
	s.nextInstID++
	stampCreated(&institution.CreatedAt)
	s.institutions[institution.ID] = *institution
	return nil
}

func (s *Storage) UpdateInstitution(_ context.Context, id int, updates repositories.InstitutionUpdate) (entities.Institution, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inst, ok := s.institutions[id]
	if !ok {
		return entities.Institution{}, repositories.ErrNotFound
	}
	if updates.Name != nil {
		inst.Name = *updates.Name
	}
	if updates.LegalBasis != nil {
		inst.LegalBasis = *updates.LegalBasis
	}
	if updates.LogoURL != nil {
		inst.LogoURL = updates.LogoURL
	}
	s.institutions[id] = inst
	return inst, nil
}

// Workflows

func (s *Storage) GetWorkflow(_ context.Context, id int) (entities.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	workflow, ok := s.workflows[id]
	if !ok {
		return entities.Workflow{}, repositories.ErrNotFound
	}
	return workflow, nil
}

func (s *Storage) GetWorkflowsByInstitution(_ context.Context, institutionID int) ([]entities.Workflow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	workflows := []entities.Workflow{}
	for _, workflow := range s.workflows {
		if workflow.InstitutionID == institutionID {
			workflows = append(workflows, workflow)
		}
	}
	sort.Slice(workflows, func(i, j int) bool { return workflows[i].ID < workflows[j].ID })
	return workflows, nil
}

func (s *Storage) CreateWorkflow(_ context.Context, workflow *entities.Workflow) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	workflow.ID = s.nextWorkflowID
	s.nextWorkflowID++
	stampCreated(&workflow.CreatedAt)
	stampCreated(&workflow.UpdatedAt)
	if workflow.Status == "" {
		workflow.Status = entities.WorkflowStatusNotStarted
	}
	s.workflows[workflow.ID] = *workflow
	return nil
}

func (s *Storage) UpdateWorkflow(_ context.Context, id int, updates repositories.WorkflowUpdate) (entities.Workflow, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	workflow, ok := s.workflows[id]
	if !ok {
		return entities.Workflow{}, repositories.ErrNotFound
	}
	if updates.Name != nil {
		workflow.Name = *updates.Name
	}
	if updates.Description != nil {
		workflow.Description = *updates.Description
	}
	if updates.Status != nil {
		workflow.Status = *updates.Status
	}
	if updates.Progress != nil {
		workflow.Progress = *updates.Progress
	}
	if updates.AssignedToID != nil {
		workflow.AssignedToID = updates.AssignedToID
	}
	if updates.DueDate != nil {
		workflow.DueDate = updates.DueDate
	}
	if updates.CompletedAt != nil {
		workflow.CompletedAt = updates.CompletedAt
	}
	workflow.UpdatedAt = time.Now()
	s.workflows[id] = workflow
	return workflow, nil
}

// Workflow steps

func (s *Storage) GetWorkflowStep(_ context.Context, id int) (entities.WorkflowStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	step, ok := s.steps[id]
	if !ok {
		return entities.WorkflowStep{}, repositories.ErrNotFound
	}
	return step, nil
}

func (s *Storage) GetWorkflowSteps(_ context.Context, workflowID int) ([]entities.WorkflowStep, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	steps := []entities.WorkflowStep{}
	for _, step := range s.steps {
		if step.WorkflowID == workflowID {
			steps = append(steps, step)
		}
	}
	sort.Slice(steps, func(i, j int) bool { return steps[i].Order < steps[j].Order })
	return steps, nil
}

func (s *Storage) CreateWorkflowStep(_ context.Context, step *entities.WorkflowStep) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	step.ID = s.nextStepID
	s.nextStepID++
	stampCreated(&step.CreatedAt)
	if step.Status == "" {
		step.Status = entities.StepStatusPending
	}
	s.steps[step.ID] = *step
	return nil
}

func (s *Storage) UpdateWorkflowStep(_ context.Context, id int, updates repositories.WorkflowStepUpdate) (entities.WorkflowStep, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	step, ok := s.steps[id]
	if !ok {
		return entities.WorkflowStep{}, repositories.ErrNotFound
	}
	if updates.Name != nil {
		step.Name = *updates.Name
	}
	if updates.Description != nil {
		step.Description = *updates.Description
	}
	if updates.Status != nil {
		step.Status = *updates.Status
	}
	if updates.AssignedToID != nil {
		step.AssignedToID = updates.AssignedToID
	}
	if updates.DueDate != nil {
		step.DueDate = updates.DueDate
	}
	if updates.CompletedAt != nil {
		step.CompletedAt = updates.CompletedAt
	}
	s.steps[id] = step
	return step, nil
}

// Evidence

func (s *Storage) GetEvidenceByStep(_ context.Context, stepID int) ([]entities.Evidence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	result := []entities.Evidence{}
	for _, ev := range s.evidence {
		if ev.WorkflowStepID == stepID {
			result = append(result, ev)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}

func (s *Storage) GetEvidence(_ context.Context, id int) (entities.Evidence, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ev, ok := s.evidence[id]
	if !ok {
		return entities.Evidence{}, repositories.ErrNotFound
	}
	return ev, nil
}

func (s *Storage) CreateEvidence(_ context.Context, evidence *entities.Evidence) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	evidence.ID = s.nextEvidenceID
	s.nextEvidenceID++
	stampCreated(&evidence.CreatedAt)
	s.evidence[evidence.ID] = *evidence
	return nil
}

// Activities

func (s *Storage) GetRecentActivities(_ context.Context, institutionID, limit int) ([]entities.Activity, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	activities := []entities.Activity{}
	for _, activity := range s.activities {
		if activity.InstitutionID == institutionID {
			activities = append(activities, activity)
		}
	}
	sort.Slice(activities, func(i, j int) bool {
		if activities[i].CreatedAt.Equal(activities[j].CreatedAt) {
			return activities[i].ID > activities[j].ID
		}
		return activities[i].CreatedAt.After(activities[j].CreatedAt)
	})
	if limit > 0 && len(activities) > limit {
		activities = activities[:limit]
	}
	return activities, nil
}

func (s *Storage) CreateActivity(_ context.Context, activity *entities.Activity) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	activity.ID = s.nextActivityID
	s.nextActivityID++
	stampCreated(&activity.CreatedAt)
	s.activities[activity.ID] = *activity
	return nil
}

// Compliance scores

func (s *Storage) GetComplianceScores(_ context.Context, institutionID int) ([]entities.ComplianceScore, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	scores := []entities.ComplianceScore{}
	for _, score := range s.scores {
		if score.InstitutionID == institutionID {
			scores = append(scores, score)
		}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].ID < scores[j].ID })
	return scores, nil
}

// UpsertComplianceScore faz a verificação de existência e a escrita sob o
// mesmo lock: duas chamadas concorrentes para o mesmo par nunca geram duas
// linhas.
func (s *Storage) UpsertComplianceScore(_ context.Context, institutionID int, componentType string, score int) (entities.ComplianceScore, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, existing := range s.scores {
		if existing.InstitutionID == institutionID && existing.ComponentType == componentType {
			existing.Score = score
			existing.CalculatedAt = time.Now()
			s.scores[id] = existing
			return existing, nil
		}
	}
	created := entities.ComplianceScore{
		ID:            s.nextScoreID,
		InstitutionID: institutionID,
		ComponentType: componentType,
		Score:         score,
		CalculatedAt:  time.Now(),
	}
	s.nextScoreID++
	s.scores[created.ID] = created
	return created, nil
}

// Institution documents

func (s *Storage) GetInstitutionDocument(_ context.Context, id int) (entities.InstitutionDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	doc, ok := s.documents[id]
	if !ok {
		return entities.InstitutionDocument{}, repositories.ErrNotFound
	}
	return doc, nil
}

func (s *Storage) GetInstitutionDocuments(_ context.Context, institutionID int) ([]entities.InstitutionDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterDocuments(func(doc entities.InstitutionDocument) bool {
		return doc.InstitutionID == institutionID
	}), nil
}

func (s *Storage) GetInstitutionDocumentsByType(_ context.Context, institutionID int, documentType string) ([]entities.InstitutionDocument, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.filterDocuments(func(doc entities.InstitutionDocument) bool {
		return doc.InstitutionID == institutionID && doc.DocumentType == documentType
	}), nil
}

// filterDocuments exige o RLock do chamador; retorna mais recentes primeiro.
func (s *Storage) filterDocuments(keep func(entities.InstitutionDocument) bool) []entities.InstitutionDocument {
	docs := []entities.InstitutionDocument{}
	for _, doc := range s.documents {
		if keep(doc) {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool {
		if docs[i].CreatedAt.Equal(docs[j].CreatedAt) {
			return docs[i].ID > docs[j].ID
		}
		return docs[i].CreatedAt.After(docs[j].CreatedAt)
	})
	return docs
}

func (s *Storage) CreateInstitutionDocument(_ context.Context, document *entities.InstitutionDocument) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	document.ID = s.nextDocumentID
	s.nextDocumentID++
	stampCreated(&document.CreatedAt)
	s.documents[document.ID] = *document
	return nil
}

func (s *Storage) SetDocumentAnalysis(_ context.Context, id int, result entities.AnalysisResult, analyzedAt time.Time) (entities.InstitutionDocument, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	doc, ok := s.documents[id]
	if !ok {
		return entities.InstitutionDocument{}, repositories.ErrNotFound
	}
	doc.AnalysisResult = &result
	doc.AnalyzedAt = &analyzedAt
	s.documents[id] = doc
	return doc, nil
}

func (s *Storage) DeleteInstitutionDocument(_ context.Context, id int) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.documents[id]; !ok {
		return false, nil
	}
	delete(s.documents, id)
	return true, nil
}
