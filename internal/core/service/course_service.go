package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/ValiCoder/courseboard/internal/core/domain"
	"github.com/ValiCoder/courseboard/internal/core/ports"
)

// CourseService implements course CRUD with owner scoping.
//
// Single-course routes load the document before the ownership check, so a
// missing course answers 404 even to a non-owner while an existing one
// answers 403. An authenticated caller can learn that a course id exists,
// but nothing more.
type CourseService struct {
	courses ports.CourseRepository
	users   ports.UserRepository
	log     zerolog.Logger
}

func NewCourseService(courses ports.CourseRepository, users ports.UserRepository, log zerolog.Logger) *CourseService {
	return &CourseService{courses: courses, users: users, log: log}
}

// List returns every course for admins and the owned subset for everyone else.
func (s *CourseService) List(ctx context.Context, actor *domain.User) ([]*domain.Course, error) {
	filter := ports.CourseFilter{}
	if !actor.IsAdmin() {
		filter.OwnerID = actor.ID
	}
	return s.courses.List(ctx, filter)
}

func (s *CourseService) Get(ctx context.Context, actor *domain.User, id string) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(course.OwnerID) {
		return nil, domain.ErrForbidden
	}
	return course, nil
}

// Create makes the caller the owner. An admin may create on behalf of another
// user; a non-admin's owner_id is ignored. The owner must resolve to an
// existing account at creation time.
func (s *CourseService) Create(ctx context.Context, actor *domain.User, in ports.CreateCourseInput) (*domain.Course, error) {
	owner := actor.ID
	if in.OwnerID != "" && actor.IsAdmin() {
		if _, err := s.users.FindByID(ctx, in.OwnerID); err != nil {
			return nil, err
		}
		owner = in.OwnerID
	}

	now := time.Now().UTC()
	course := &domain.Course{
		Name:      in.Name,
		Topic:     in.Topic,
		OwnerID:   owner,
		CreatedAt: now,
		UpdatedAt: now,
	}

	created, err := s.courses.Create(ctx, course)
	if err != nil {
		return nil, err
	}
	s.log.Info().Str("course_id", created.ID).Str("owner_id", owner).Msg("course created")
	return created, nil
}

func (s *CourseService) Update(ctx context.Context, actor *domain.User, id string, in ports.UpdateCourseInput) (*domain.Course, error) {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(course.OwnerID) {
		return nil, domain.ErrForbidden
	}

	if in.Name != "" {
		course.Name = in.Name
	}
	if in.Topic != "" {
		course.Topic = in.Topic
	}
	course.UpdatedAt = time.Now().UTC()

	if err := s.courses.Update(ctx, course); err != nil {
		return nil, err
	}
	return course, nil
}

func (s *CourseService) Delete(ctx context.Context, actor *domain.User, id string) error {
	course, err := s.courses.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if !actor.CanManage(course.OwnerID) {
		return domain.ErrForbidden
	}
	if err := s.courses.Delete(ctx, id); err != nil {
		return err
	}
	s.log.Info().Str("course_id", id).Str("deleted_by", actor.ID).Msg("course deleted")
	return nil
}
