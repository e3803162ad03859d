package ports

import (
	"context"

	"github.com/ValiCoder/courseboard/internal/core/domain"
)

// CreateUserInput carries an admin-initiated account creation. Password and
// Role are optional; the service applies the documented defaults.
type CreateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UpdateUserInput carries a partial account update. Empty fields are left
// unchanged. Role is applied only when the acting identity is an admin.
type UpdateUserInput struct {
	Name     string
	Email    string
	Password string
	Role     string
}

// UserService defines use-case operations over accounts. Every method takes
// the acting identity and applies the admin-vs-owner authorization policy.
type UserService interface {
	List(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.User, error)
	Create(ctx context.Context, actor *domain.User, in CreateUserInput) (*domain.User, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateUserInput) (*domain.User, error)
	// Delete removes the account and cascades to every course it owns.
	Delete(ctx context.Context, actor *domain.User, id string) error
}
