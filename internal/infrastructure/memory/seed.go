package memory

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
)

type demoUser struct {
	email     string
	password  string
	firstName string
	lastName  string
}

// Usuários de demonstração. As senhas só existem aqui para gerar os hashes
// bcrypt na carga inicial; o login compara sempre contra o hash.
var demoUsers = []demoUser{
	{"ana.rodriguez@hacienda.gob.do", "nobaci2024", "Ana", "Rodríguez"},
	{"aquezada@qsiglobalventures.com", "demo2024", "Antonia", "Quezada"},
	{"calvarado@nebusis.com", "admin2024", "Celso", "Alvarado"},
	{"dzambrano@nebusis.com", "admin2024", "David", "Zambrano"},
	{"ymontoya@qsiglobalventures.com", "video2024", "Yerardy", "Montoya"},
}

// SeedDemo carrega a instituição modelo, os usuários de demonstração e um
// conjunto pequeno de workflows, atividades e notas de conformidade.
func (s *Storage) SeedDemo(ctx context.Context) error {
	institution := entities.Institution{
		Name:              "Ministerio de Hacienda",
		Type:              "ministry",
		LegalBasis:        "Ley 10-07",
		SectorRegulations: []string{"COSO", "COSO 2013"},
		Size:              "large",
	}
	if err := s.CreateInstitution(ctx, &institution); err != nil {
		return err
	}

	var firstUser entities.User
	for i, demo := range demoUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(demo.password), bcrypt.DefaultCost)
		if err != nil {
			return fmt.Errorf("gerando hash de senha para %s: %w", demo.email, err)
		}
		user := entities.User{
			Email:              demo.email,
			PasswordHash:       string(hash),
			FirstName:          demo.firstName,
			LastName:           demo.lastName,
			Role:               entities.RoleAdmin,
			InstitutionID:      &institution.ID,
			EmailNotifications: true,
		}
		if err := s.CreateUser(ctx, &user); err != nil {
			return err
		}
		if i == 0 {
			firstUser = user
		}
	}

	due1 := time.Date(2024, 2, 28, 0, 0, 0, 0, time.UTC)
	done1 := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	due2 := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	due3 := time.Date(2024, 3, 30, 0, 0, 0, 0, time.UTC)

	workflows := []entities.Workflow{
		{
			Name:          "Ambiente de Control",
			Description:   "Implementación de políticas y procedimientos de ambiente de control",
			ComponentType: entities.ComponentAmbienteControl,
			Status:        entities.WorkflowStatusCompleted,
			Progress:      100,
			InstitutionID: institution.ID,
			AssignedToID:  &firstUser.ID,
			DueDate:       &due1,
			CompletedAt:   &done1,
			CreatedAt:     time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:          "Evaluación de Riesgos",
			Description:   "Identificación y análisis de riesgos operativos",
			ComponentType: entities.ComponentEvaluacionRiesgos,
			Status:        entities.WorkflowStatusInProgress,
			Progress:      75,
			InstitutionID: institution.ID,
			AssignedToID:  &firstUser.ID,
			DueDate:       &due2,
			CreatedAt:     time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
		},
		{
			Name:          "Actividades de Control",
			Description:   "Establecimiento de controles operativos",
			ComponentType: entities.ComponentActividadesControl,
			Status:        entities.WorkflowStatusNotStarted,
			Progress:      0,
			InstitutionID: institution.ID,
			DueDate:       &due3,
			CreatedAt:     time.Date(2024, 2, 10, 0, 0, 0, 0, time.UTC),
		},
	}
	for i := range workflows {
		if err := s.CreateWorkflow(ctx, &workflows[i]); err != nil {
			return err
		}
	}

	activities := []entities.Activity{
		{
			Type:          entities.ActivityWorkflowCompleted,
			Description:   `completó el flujo de trabajo "Ambiente de Control"`,
			UserID:        firstUser.ID,
			WorkflowID:    &workflows[0].ID,
			InstitutionID: institution.ID,
			CreatedAt:     time.Now().Add(-2 * time.Hour),
		},
		{
			Type:          entities.ActivityEvidenceUploaded,
			Description:   `subió evidencia para "Evaluación de Riesgos"`,
			UserID:        firstUser.ID,
			WorkflowID:    &workflows[1].ID,
			InstitutionID: institution.ID,
			CreatedAt:     time.Now().Add(-4 * time.Hour),
		},
	}
	for i := range activities {
		if err := s.CreateActivity(ctx, &activities[i]); err != nil {
			return err
		}
	}

	if _, err := s.UpsertComplianceScore(ctx, institution.ID, entities.ComponentAmbienteControl, 100); err != nil {
		return err
	}
	if _, err := s.UpsertComplianceScore(ctx, institution.ID, entities.ComponentEvaluacionRiesgos, 75); err != nil {
		return err
	}
	return nil
}
