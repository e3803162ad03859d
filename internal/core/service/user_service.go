package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ValiCoder/courseboard/internal/api/metrics"
	"github.com/ValiCoder/courseboard/internal/core/domain"
	"github.com/ValiCoder/courseboard/internal/core/ports"
)

// defaultPassword is assigned to admin-created accounts with no password set.
const defaultPassword = "changeme"

// CleanupQueue receives owner ids whose courses still need deleting after the
// inline cascade failed.
type CleanupQueue interface {
	Sweep(ownerID string)
}

// UserService implements account CRUD with the admin-vs-owner policy.
//
// Single-user routes check ownership against the raw id before any lookup, so
// a non-admin probing a foreign id always sees 403 and learns nothing about
// whether the account exists.
type UserService struct {
	users   ports.UserRepository
	courses ports.CourseRepository
	cleanup CleanupQueue
	log     zerolog.Logger
}

func NewUserService(users ports.UserRepository, courses ports.CourseRepository, cleanup CleanupQueue, log zerolog.Logger) *UserService {
	return &UserService{users: users, courses: courses, cleanup: cleanup, log: log}
}

func (s *UserService) List(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}
	return s.users.List(ctx)
}

func (s *UserService) Get(ctx context.Context, actor *domain.User, id string) (*domain.User, error) {
	if !actor.CanManage(id) {
		return nil, domain.ErrForbidden
	}
	return s.users.FindByID(ctx, id)
}

func (s *UserService) Create(ctx context.Context, actor *domain.User, in ports.CreateUserInput) (*domain.User, error) {
	if !actor.IsAdmin() {
		return nil, domain.ErrForbidden
	}

	password := in.Password
	if password == "" {
		password = defaultPassword
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	// API-created accounts default to the plain user role.
	role := domain.RoleUser
	if r, ok := domain.ParseRole(in.Role); ok {
		role = r
	}

	now := time.Now().UTC()
	user := &domain.User{
		Name:         in.Name,
		Email:        in.Email,
		PasswordHash: string(hash),
		Role:         role,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("user_id", created.ID).Str("role", string(role)).Str("created_by", actor.ID).Msg("user created")
	return created, nil
}

// Update applies a partial update. A role change submitted by a non-admin is
// silently dropped while the rest of the update still applies.
func (s *UserService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateUserInput) (*domain.User, error) {
	if !actor.CanManage(id) {
		return nil, domain.ErrForbidden
	}

	user, err := s.users.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if in.Name != "" {
		user.Name = in.Name
	}
	if in.Email != "" {
		user.Email = in.Email
	}
	if in.Password != "" {
		hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if in.Role != "" && actor.IsAdmin() {
		if r, ok := domain.ParseRole(in.Role); ok {
			user.Role = r
		}
	}
	user.UpdatedAt = time.Now().UTC()

	if err := s.users.Update(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Delete removes the account, then sweeps its courses. The two operations are
// independent; when the inline sweep fails, the owner id is handed to the
// cleanup queue so orphaned courses are removed by a retried background sweep.
func (s *UserService) Delete(ctx context.Context, actor *domain.User, id string) error {
	if !actor.CanManage(id) {
		return domain.ErrForbidden
	}

	if err := s.users.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("user_id", id).Str("deleted_by", actor.ID).Msg("user deleted")

	deleted, err := s.courses.DeleteByOwner(ctx, id)
	if err != nil {
		s.log.Error().Err(err).Str("owner_id", id).Msg("inline course cascade failed, scheduling sweep")
		s.cleanup.Sweep(id)
		return nil
	}
	metrics.CascadeSweepsTotal.WithLabelValues("inline").Inc()
	s.log.Info().Str("owner_id", id).Int64("deleted", deleted).Msg("owned courses deleted")
	return nil
}
