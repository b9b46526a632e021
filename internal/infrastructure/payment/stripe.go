// Package payment cria as intenções de pagamento de licenças via Stripe.
package payment

import (
	"errors"
	"fmt"
	"math"

	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentintent"
)

// ErrAmountTooSmall rejeita valores abaixo do mínimo aceito pelo Stripe.
var ErrAmountTooSmall = errors.New("el monto mínimo es 0.50 USD")

// Service encapsula o cliente Stripe. A chave é global no SDK, então um único
// Service por processo.
type Service struct {
	configured bool
}

func NewService(secretKey string) *Service {
	if secretKey == "" {
		return &Service{}
	}
	stripe.Key = secretKey
	return &Service{configured: true}
}

// Configured indica se há chave Stripe carregada. Sem chave o endpoint de
// pagamento responde 503 em vez de falhar na chamada externa.
func (s *Service) Configured() bool {
	return s.configured
}

// CreatePaymentIntent registra a intenção e devolve o client secret que o
// front usa para concluir o pagamento. O valor chega em dólares e vai ao
// Stripe em centavos.
func (s *Service) CreatePaymentIntent(amountUSD float64, description string) (string, error) {
	if amountUSD < 0.50 {
		return "", ErrAmountTooSmall
	}
	amountCents := int64(math.Round(amountUSD * 100))

	params := &stripe.PaymentIntentParams{
		Amount:   stripe.Int64(amountCents),
		Currency: stripe.String(string(stripe.CurrencyUSD)),
		AutomaticPaymentMethods: &stripe.PaymentIntentAutomaticPaymentMethodsParams{
			Enabled: stripe.Bool(true),
		},
	}
	if description != "" {
		params.Description = stripe.String(description)
	}

	intent, err := paymentintent.New(params)
	if err != nil {
		return "", fmt.Errorf("creating payment intent: %w", err)
	}
	return intent.ClientSecret, nil
}
