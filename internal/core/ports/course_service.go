package ports

import (
	"context"

	"github.com/ValiCoder/courseboard/internal/core/domain"
)

// CreateCourseInput carries a course creation request. OwnerID is honored only
// for admin actors; everyone else becomes the owner themselves.
type CreateCourseInput struct {
	Name    string
	Topic   string
	OwnerID string
}

// UpdateCourseInput carries a partial course update. Empty fields are left
// unchanged.
type UpdateCourseInput struct {
	Name  string
	Topic string
}

// CourseService defines use-case operations over courses with the
// admin-vs-owner authorization policy applied.
type CourseService interface {
	List(ctx context.Context, actor *domain.User) ([]*domain.Course, error)
	Get(ctx context.Context, actor *domain.User, id string) (*domain.Course, error)
	Create(ctx context.Context, actor *domain.User, in CreateCourseInput) (*domain.Course, error)
	Update(ctx context.Context, actor *domain.User, id string, in UpdateCourseInput) (*domain.Course, error)
	Delete(ctx context.Context, actor *domain.User, id string) error
}
