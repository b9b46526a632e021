package email

import (
	"context"
	"fmt"

	"github.com/sendgrid/sendgrid-go"
	"github.com/sendgrid/sendgrid-go/helpers/mail"
)

// SendGridSender envia os avisos via API do SendGrid.
type SendGridSender struct {
	client    *sendgrid.Client
	fromEmail string
	fromName  string
}

var _ Sender = (*SendGridSender)(nil)

func NewSendGridSender(apiKey, fromEmail string) *SendGridSender {
	return &SendGridSender{
		client:    sendgrid.NewSendClient(apiKey),
		fromEmail: fromEmail,
		fromName:  "ControlCore",
	}
}

func (s *SendGridSender) SendAlert(ctx context.Context, data AlertEmailData) error {
	from := mail.NewEmail(s.fromName, s.fromEmail)
	to := mail.NewEmail(data.RecipientName, data.RecipientEmail)
	subject := fmt.Sprintf("[%s] %s", priorityLabel(data.Priority), data.AlertTitle)

	plain := fmt.Sprintf(
		"Hola %s,\n\n%s\n\nFlujo de trabajo: %s\nFecha límite: %s\nPrioridad: %s\n\nAcceda al sistema para más detalles.",
		data.RecipientName, data.AlertMessage, data.WorkflowName, data.DueDate, priorityLabel(data.Priority),
	)
	html := fmt.Sprintf(
		"<p>Hola %s,</p><p>%s</p><ul><li><strong>Flujo de trabajo:</strong> %s</li><li><strong>Fecha límite:</strong> %s</li><li><strong>Prioridad:</strong> %s</li></ul><p>Acceda al sistema para más detalles.</p>",
		data.RecipientName, data.AlertMessage, data.WorkflowName, data.DueDate, priorityLabel(data.Priority),
	)

	message := mail.NewSingleEmail(from, subject, to, plain, html)
	resp, err := s.client.SendWithContext(ctx, message)
	if err != nil {
		return fmt.Errorf("sending alert email: %w", err)
	}
	if resp.StatusCode >= 400 {
		return fmt.Errorf("sendgrid returned status %d", resp.StatusCode)
	}
	return nil
}

func priorityLabel(priority string) string {
	switch priority {
	case "alta":
		return "ALTA"
	case "media":
		return "MEDIA"
	default:
		return "BAJA"
	}
}
