package ports

import (
	"context"

	"github.com/ValiCoder/courseboard/internal/core/domain"
)

// SessionStore persists session records keyed by opaque session id. Expiry is
// store-managed; a missing or expired id resolves to ErrSessionNotFound.
type SessionStore interface {
	// Issue creates a new session bound to userID and returns it.
	Issue(ctx context.Context, userID string) (*domain.Session, error)
	// Resolve returns the userId claim held by the given session id.
	Resolve(ctx context.Context, sessionID string) (string, error)
	// Destroy invalidates the session. Destroying an unknown id is not an error.
	Destroy(ctx context.Context, sessionID string) error
}
