package usecases

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/nebusis/controlcore-api/internal/domain/entities"
	"github.com/nebusis/controlcore-api/internal/infrastructure/memory"
	"github.com/nebusis/controlcore-api/internal/infrastructure/session"
)

func newAuthFixture(t *testing.T) (*AuthUseCase, *memory.Storage) {
	t.Helper()
	store := memory.NewStorage()
	sessions := session.NewMemoryStore(time.Hour)
	t.Cleanup(sessions.Close)

	hash, err := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("generando hash: %v", err)
	}
	user := entities.User{
		Email:        "maria.perez@ejemplo.gob.do",
		PasswordHash: string(hash),
		FirstName:    "María",
		LastName:     "Pérez",
		Role:         entities.RoleAdmin,
	}
	if err := store.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}
	return NewAuthUseCase(store, sessions), store
}

func TestLoginSuccess(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	user, token, err := auth.Login(ctx, "maria.perez@ejemplo.gob.do", "secreta123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if token == "" {
		t.Fatal("token vacío")
	}
	if user.Email != "maria.perez@ejemplo.gob.do" {
		t.Errorf("email = %q", user.Email)
	}

	authenticated, err := auth.Authenticate(ctx, token)
	if err != nil {
		t.Fatalf("Authenticate: %v", err)
	}
	if authenticated.ID != user.ID {
		t.Errorf("usuario autenticado %d, want %d", authenticated.ID, user.ID)
	}
}

func TestLoginRejectsWrongPasswordAndUnknownEmail(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	_, _, errWrongPassword := auth.Login(ctx, "maria.perez@ejemplo.gob.do", "incorrecta")
	_, _, errUnknownEmail := auth.Login(ctx, "nadie@ejemplo.gob.do", "secreta123")

	// O mesmo erro nos dois casos: a resposta não revela quais contas existem.
	if !errors.Is(errWrongPassword, ErrInvalidCredentials) {
		t.Errorf("senha errada: %v, want ErrInvalidCredentials", errWrongPassword)
	}
	if !errors.Is(errUnknownEmail, ErrInvalidCredentials) {
		t.Errorf("email desconhecido: %v, want ErrInvalidCredentials", errUnknownEmail)
	}
}

func TestLogoutRevokesToken(t *testing.T) {
	auth, _ := newAuthFixture(t)
	ctx := context.Background()

	_, token, err := auth.Login(ctx, "maria.perez@ejemplo.gob.do", "secreta123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if err := auth.Logout(ctx, token); err != nil {
		t.Fatalf("Logout: %v", err)
	}

	if _, err := auth.Authenticate(ctx, token); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("Authenticate después de logout = %v, want ErrSessionNotFound", err)
	}

	// Logout repetido é idempotente.
	if err := auth.Logout(ctx, token); err != nil {
		t.Errorf("segundo Logout: %v", err)
	}
}

func TestAuthenticateExpiredSession(t *testing.T) {
	store := memory.NewStorage()
	sessions := session.NewMemoryStore(10 * time.Millisecond)
	t.Cleanup(sessions.Close)

	hash, _ := bcrypt.GenerateFromPassword([]byte("secreta123"), bcrypt.MinCost)
	user := entities.User{Email: "x@ejemplo.gob.do", PasswordHash: string(hash), FirstName: "X", LastName: "Y"}
	if err := store.CreateUser(context.Background(), &user); err != nil {
		t.Fatalf("CreateUser: %v", err)
	}

	auth := NewAuthUseCase(store, sessions)
	_, token, err := auth.Login(context.Background(), "x@ejemplo.gob.do", "secreta123")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}

	time.Sleep(20 * time.Millisecond)

	if _, err := auth.Authenticate(context.Background(), token); !errors.Is(err, session.ErrSessionNotFound) {
		t.Errorf("sesión expirada = %v, want ErrSessionNotFound", err)
	}
}
