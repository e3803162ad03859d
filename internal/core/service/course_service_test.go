package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/ValiCoder/courseboard/internal/core/domain"
	"github.com/ValiCoder/courseboard/internal/core/ports"
)

func newCourseService(courses *stubCourseRepo, users *stubUserRepo) *CourseService {
	return NewCourseService(courses, users, zerolog.Nop())
}

func TestCourseService_List_Scoping(t *testing.T) {
	courses := newStubCourseRepo()
	courses.Create(context.Background(), &domain.Course{Name: "go", OwnerID: "u1"})
	courses.Create(context.Background(), &domain.Course{Name: "rust", OwnerID: "u1"})
	courses.Create(context.Background(), &domain.Course{Name: "sql", OwnerID: "u2"})
	svc := newCourseService(courses, newStubUserRepo())

	mine, err := svc.List(context.Background(), learnerActor("u1"))
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(mine) != 2 {
		t.Fatalf("expected 2 owned courses, got %d", len(mine))
	}
	for _, c := range mine {
		if c.OwnerID != "u1" {
			t.Fatalf("foreign course leaked into list: %+v", c)
		}
	}

	all, err := svc.List(context.Background(), adminActor())
	if err != nil {
		t.Fatalf("admin list failed: %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("expected 3 courses for admin, got %d", len(all))
	}
}

func TestCourseService_Get(t *testing.T) {
	courses := newStubCourseRepo()
	owned, _ := courses.Create(context.Background(), &domain.Course{Name: "go", OwnerID: "u1"})
	svc := newCourseService(courses, newStubUserRepo())

	got, err := svc.Get(context.Background(), learnerActor("u1"), owned.ID)
	if err != nil {
		t.Fatalf("owner get failed: %v", err)
	}
	if got.ID != owned.ID {
		t.Fatalf("unexpected course: %+v", got)
	}

	if _, err := svc.Get(context.Background(), learnerActor("u2"), owned.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden for non-owner, got %v", err)
	}

	// the document is loaded first; a missing id is 404 for everyone
	if _, err := svc.Get(context.Background(), learnerActor("u2"), "missing"); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}

	if _, err := svc.Get(context.Background(), adminActor(), owned.ID); err != nil {
		t.Fatalf("admin get failed: %v", err)
	}
}

func TestCourseService_Create(t *testing.T) {
	courses := newStubCourseRepo()
	users := newStubUserRepo()
	target := users.seed(&domain.User{Email: "target@example.com", Role: domain.RoleLearner})
	svc := newCourseService(courses, users)

	created, err := svc.Create(context.Background(), learnerActor("u1"), ports.CreateCourseInput{Name: "go", Topic: "lang"})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if created.OwnerID != "u1" {
		t.Fatalf("caller is not the owner: %+v", created)
	}

	// a non-admin's owner_id is ignored
	sneaky, err := svc.Create(context.Background(), learnerActor("u1"), ports.CreateCourseInput{Name: "x", OwnerID: target.ID})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if sneaky.OwnerID != "u1" {
		t.Fatalf("non-admin reassigned ownership: %+v", sneaky)
	}

	onBehalf, err := svc.Create(context.Background(), adminActor(), ports.CreateCourseInput{Name: "y", OwnerID: target.ID})
	if err != nil {
		t.Fatalf("admin create on behalf failed: %v", err)
	}
	if onBehalf.OwnerID != target.ID {
		t.Fatalf("admin owner_id not honoured: %+v", onBehalf)
	}

	if _, err := svc.Create(context.Background(), adminActor(), ports.CreateCourseInput{Name: "z", OwnerID: "missing"}); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound for unknown owner, got %v", err)
	}
}

func TestCourseService_Update(t *testing.T) {
	courses := newStubCourseRepo()
	owned, _ := courses.Create(context.Background(), &domain.Course{Name: "go", Topic: "lang", OwnerID: "u1"})
	svc := newCourseService(courses, newStubUserRepo())

	updated, err := svc.Update(context.Background(), learnerActor("u1"), owned.ID, ports.UpdateCourseInput{Name: "go 2"})
	if err != nil {
		t.Fatalf("owner update failed: %v", err)
	}
	if updated.Name != "go 2" || updated.Topic != "lang" {
		t.Fatalf("partial update wrong: %+v", updated)
	}

	if _, err := svc.Update(context.Background(), learnerActor("u2"), owned.ID, ports.UpdateCourseInput{Name: "stolen"}); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if courses.courses[owned.ID].Name != "go 2" {
		t.Fatalf("forbidden update modified the course")
	}

	if _, err := svc.Update(context.Background(), learnerActor("u1"), "missing", ports.UpdateCourseInput{Name: "x"}); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}

func TestCourseService_Delete(t *testing.T) {
	courses := newStubCourseRepo()
	owned, _ := courses.Create(context.Background(), &domain.Course{Name: "go", OwnerID: "u1"})
	svc := newCourseService(courses, newStubUserRepo())

	if err := svc.Delete(context.Background(), learnerActor("u2"), owned.ID); !errors.Is(err, domain.ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
	if _, ok := courses.courses[owned.ID]; !ok {
		t.Fatalf("forbidden delete removed the course")
	}

	if err := svc.Delete(context.Background(), learnerActor("u1"), owned.ID); err != nil {
		t.Fatalf("owner delete failed: %v", err)
	}
	if len(courses.courses) != 0 {
		t.Fatalf("course not deleted")
	}

	if err := svc.Delete(context.Background(), learnerActor("u1"), owned.ID); !errors.Is(err, domain.ErrCourseNotFound) {
		t.Fatalf("expected ErrCourseNotFound, got %v", err)
	}
}
