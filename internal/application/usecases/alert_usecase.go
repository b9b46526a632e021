package usecases

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/infrastructure/email"
)

// Horizonte de antecipação de prazos do motor de alertas.
const (
	approachingWindow = 7 * 24 * time.Hour
	urgentWindow      = 3 * 24 * time.Hour
)

// AlertUseCase deriva alertas dos prazos dos workflows e despacha os avisos
// por email. Pode rodar quantas vezes for preciso: a deduplicação é garantida
// no storage e falha de email nunca derruba a varredura.
type AlertUseCase struct {
	storage repositories.Storage
	sender  email.Sender
	now     func() time.Time
}

func NewAlertUseCase(storage repositories.Storage, sender email.Sender) *AlertUseCase {
	return &AlertUseCase{storage: storage, sender: sender, now: time.Now}
}

// CheckResult resume uma varredura de alertas.
type CheckResult struct {
	AlertsCreated int `json:"alertsCreated"`
	EmailsSent    int `json:"emailsSent"`
	EmailFailures int `json:"emailFailures"`
}

// CheckAndSendAlerts varre os workflows da instituição, cria os alertas de
// prazo que ainda não existem e envia os emails pendentes.
func (uc *AlertUseCase) CheckAndSendAlerts(ctx context.Context, institutionID int) (CheckResult, error) {
	workflows, err := uc.storage.GetWorkflowsByInstitution(ctx, institutionID)
	if err != nil {
		return CheckResult{}, err
	}

	result := CheckResult{}
	now := uc.now()

	for i := range workflows {
		workflow := workflows[i]
		if workflow.DueDate == nil || workflow.Status == entities.WorkflowStatusCompleted {
			continue
		}

		alert, ok := uc.buildDeadlineAlert(workflow, now)
		if !ok {
			continue
		}
		created, err := uc.storage.EnsureActiveAlert(ctx, &alert)
		if err != nil {
			return result, err
		}
		if created {
			result.AlertsCreated++
		}
	}

	sent, failed, err := uc.dispatchPendingEmails(ctx, institutionID)
	if err != nil {
		return result, err
	}
	result.EmailsSent = sent
	result.EmailFailures = failed
	return result, nil
}

// buildDeadlineAlert decide tipo e prioridade a partir do prazo. Workflows
// fora do horizonte de 7 dias não geram alerta.
func (uc *AlertUseCase) buildDeadlineAlert(workflow entities.Workflow, now time.Time) (entities.AlertNotification, bool) {
	due := *workflow.DueDate
	remaining := due.Sub(now)

	var alertType, priority, title, description string
	switch {
	case now.After(due):
		daysOverdue := int(now.Sub(due).Hours() / 24)
		alertType = entities.AlertTypeOverdue
		priority = entities.PriorityAlta
		title = fmt.Sprintf("Flujo de trabajo vencido: %s", workflow.Name)
		description = fmt.Sprintf("El flujo de trabajo \"%s\" venció hace %d día(s) y aún no ha sido completado.", workflow.Name, daysOverdue)
	case remaining <= approachingWindow:
		daysLeft := int(remaining.Hours() / 24)
		alertType = entities.AlertTypeDeadlineApproaching
		priority = entities.PriorityMedia
		if remaining <= urgentWindow {
			priority = entities.PriorityAlta
		}
		title = fmt.Sprintf("Fecha límite próxima: %s", workflow.Name)
		description = fmt.Sprintf("El flujo de trabajo \"%s\" vence en %d día(s).", workflow.Name, daysLeft)
	default:
		return entities.AlertNotification{}, false
	}

	workflowID := workflow.ID
	return entities.AlertNotification{
		Title:         title,
		Description:   description,
		Type:          alertType,
		Priority:      priority,
		InstitutionID: workflow.InstitutionID,
		WorkflowID:    &workflowID,
		AssignedToID:  workflow.AssignedToID,
		DueDate:       workflow.DueDate,
		IsActive:      true,
	}, true
}

// dispatchPendingEmails envia os alertas ativos ainda sem email. Falha de
// envio é registrada e o alerta fica pendente para a próxima varredura.
func (uc *AlertUseCase) dispatchPendingEmails(ctx context.Context, institutionID int) (sent, failed int, err error) {
	alerts, err := uc.storage.GetActiveAlerts(ctx, institutionID, nil)
	if err != nil {
		return 0, 0, err
	}

	for _, alert := range alerts {
		if alert.EmailSent || alert.AssignedToID == nil {
			continue
		}
		user, err := uc.storage.GetUser(ctx, *alert.AssignedToID)
		if err != nil {
			log.Printf("alertas: usuario %d no encontrado para alerta %d: %v", *alert.AssignedToID, alert.ID, err)
			continue
		}
		if !user.EmailNotifications {
			continue
		}

		data := email.AlertEmailData{
			RecipientEmail: user.Email,
			RecipientName:  user.FullName(),
			AlertTitle:     alert.Title,
			AlertMessage:   alert.Description,
			Priority:       alert.Priority,
		}
		if alert.WorkflowID != nil {
			if workflow, err := uc.storage.GetWorkflow(ctx, *alert.WorkflowID); err == nil {
				data.WorkflowName = workflow.Name
			}
		}
		if alert.DueDate != nil {
			data.DueDate = alert.DueDate.Format("02/01/2006")
		}

		if err := uc.sender.SendAlert(ctx, data); err != nil {
			log.Printf("alertas: fallo enviando email del alerta %d: %v", alert.ID, err)
			failed++
			continue
		}
		if err := uc.storage.MarkAlertEmailSent(ctx, alert.ID, uc.now()); err != nil {
			return sent, failed, err
		}
		sent++
	}
	return sent, failed, nil
}

// SendTestAlert dispara um email de prueba para validar la configuración.
func (uc *AlertUseCase) SendTestAlert(ctx context.Context, recipientEmail, recipientName string) error {
	data := email.AlertEmailData{
		RecipientEmail: recipientEmail,
		RecipientName:  recipientName,
		AlertTitle:     "Alerta de prueba del sistema",
		AlertMessage:   "Este es un mensaje de prueba para verificar la configuración de notificaciones por correo.",
		Priority:       entities.PriorityMedia,
		WorkflowName:   "Flujo de prueba",
		DueDate:        uc.now().Format("02/01/2006"),
	}
	return uc.sender.SendAlert(ctx, data)
}
