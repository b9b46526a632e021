package usecases

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/domain/repositories"
	"github.com/nebusis/controlcore-api/internal/infrastructure/session"
)

// ErrInvalidCredentials cobre email desconhecido e senha errada com a mesma
// mensagem, para não revelar quais contas existem.
var ErrInvalidCredentials = errors.New("credenciales inválidas")

// AuthUseCase autentica usuários e administra as sessões opacas.
type AuthUseCase struct {
	storage  repositories.Storage
	sessions session.Store
}

func NewAuthUseCase(storage repositories.Storage, sessions session.Store) *AuthUseCase {
	return &AuthUseCase{storage: storage, sessions: sessions}
}

// Login valida as credenciais contra o hash bcrypt e emite um token novo.
func (uc *AuthUseCase) Login(ctx context.Context, email, password string) (entities.User, string, error) {
	user, err := uc.storage.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return entities.User{}, "", ErrInvalidCredentials
		}
		return entities.User{}, "", err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return entities.User{}, "", ErrInvalidCredentials
	}

	token, err := uc.sessions.Create(ctx, user.ID)
	if err != nil {
		return entities.User{}, "", err
	}
	return user, token, nil
}

// Authenticate resolve um token de sessão para o usuário dono dela.
func (uc *AuthUseCase) Authenticate(ctx context.Context, token string) (entities.User, error) {
	userID, err := uc.sessions.Get(ctx, token)
	if err != nil {
		return entities.User{}, err
	}
	user, err := uc.storage.GetUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Usuário removido depois do login; a sessão não vale mais.
			return entities.User{}, session.ErrSessionNotFound
		}
		return entities.User{}, err
	}
	return user, nil
}

// Logout revoga o token. Token já revogado ou desconhecido não é erro.
func (uc *AuthUseCase) Logout(ctx context.Context, token string) error {
	return uc.sessions.Delete(ctx, token)
}
