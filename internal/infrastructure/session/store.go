// Package session guarda os tokens opacos de sessão emitidos no login.
// O token nunca carrega dados do usuário; tudo que a API sabe sobre uma
// sessão vive do lado do servidor e morre no logout ou na expiração.
package session

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"time"
)

// DefaultTTL é a vida útil padrão de uma sessão.
const DefaultTTL = 8 * time.Hour

// ErrSessionNotFound cobre token inexistente, expirado ou revogado. A camada
// HTTP não distingue os três casos.
var ErrSessionNotFound = errors.New("sessão não encontrada")

// Store é o contrato de armazenamento de sessões. Duas implementações:
// em memória (processo único) e Redis (múltiplas instâncias).
type Store interface {
	// Create emite um token novo associado ao usuário.
	Create(ctx context.Context, userID int) (string, error)
	// Get resolve o token para o usuário dono da sessão.
	Get(ctx context.Context, token string) (int, error)
	// Delete revoga o token. Revogar token inexistente não é erro.
	Delete(ctx context.Context, token string) error
}

// newToken gera 32 bytes de aleatoriedade criptográfica em hex (64 chars).
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}

// TTLFromEnv interpreta SESSION_TTL_HOURS; valores ausentes ou inválidos
// caem no padrão de 8 horas.
func TTLFromEnv(raw string) time.Duration {
	if raw == "" {
		return DefaultTTL
	}
	d, err := time.ParseDuration(raw + "h")
	if err != nil || d <= 0 {
		return DefaultTTL
	}
	return d
}
