package ports

import (
	"context"

	"github.com/ValiCoder/courseboard/internal/core/domain"
)

// CourseFilter scopes list queries. OwnerID is enforced by the service layer:
// empty means no filter (admin), non-empty scopes the query to one owner.
type CourseFilter struct {
	OwnerID string
}

// CourseRepository defines persistence operations for courses.
type CourseRepository interface {
	Create(ctx context.Context, course *domain.Course) (*domain.Course, error)
	FindByID(ctx context.Context, id string) (*domain.Course, error)
	List(ctx context.Context, filter CourseFilter) ([]*domain.Course, error)
	Update(ctx context.Context, course *domain.Course) error
	Delete(ctx context.Context, id string) error
	// DeleteByOwner removes every course owned by ownerID and returns the
	// number of documents deleted. Used by the account-deletion cascade.
	DeleteByOwner(ctx context.Context, ownerID string) (int64, error)
}
