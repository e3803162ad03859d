package ports

import (
	"context"

	"github.com/ValiCoder/courseboard/internal/core/domain"
)

// RegisterInput carries a self-service registration request. Role is untrusted
// input and collapsed onto the registration allow-list by the service.
type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

type AuthService interface {
	Register(ctx context.Context, in RegisterInput) (*domain.User, error)
	// Login verifies the credential (upgrading legacy plaintext storage on
	// first match) and establishes a new session on success.
	Login(ctx context.Context, email, password string) (*domain.Session, *domain.User, error)
	Logout(ctx context.Context, sessionID string) error
}
