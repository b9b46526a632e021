// Package email envia as notificações de alerta por correio eletrônico.
package email

import "context"

// AlertEmailData é o conteúdo de um aviso de alerta.
type AlertEmailData struct {
	RecipientEmail string
	RecipientName  string
	AlertTitle     string
	AlertMessage   string
	Priority       string
	WorkflowName   string
	DueDate        string
}

// Sender abstrai o provedor de email. A implementação real usa SendGrid; os
// testes usam um sender em memória.
type Sender interface {
	SendAlert(ctx context.Context, data AlertEmailData) error
}

// NopSender descarta todos os emails. Usado quando SENDGRID_API_KEY não está
// configurada, para que o motor de alertas continue operando sem envio.
type NopSender struct{}

func (NopSender) SendAlert(ctx context.Context, data AlertEmailData) error { return nil }
