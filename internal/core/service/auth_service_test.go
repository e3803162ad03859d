package service

import (
	"context"
	"errors"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/ValiCoder/courseboard/internal/core/domain"
	"github.com/ValiCoder/courseboard/internal/core/ports"
)

// --- Stubs shared by the service tests in this package ---

type stubUserRepo struct {
	users  map[string]*domain.User
	nextID int

	updatePasswordErr error
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.nextID++
	created := cloneUser(user)
	created.ID = "u" + strconv.Itoa(r.nextID)
	r.users[created.ID] = cloneUser(created)
	return created, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	if u, ok := r.users[id]; ok {
		return cloneUser(u), nil
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	users := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		users = append(users, cloneUser(u))
	}
	return users, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) error {
	if _, ok := r.users[user.ID]; !ok {
		return domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return nil
}

func (r *stubUserRepo) UpdatePassword(_ context.Context, id, passwordHash string) error {
	if r.updatePasswordErr != nil {
		return r.updatePasswordErr
	}
	u, ok := r.users[id]
	if !ok {
		return domain.ErrUserNotFound
	}
	u.PasswordHash = passwordHash
	return nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

// seed inserts a user directly, bypassing Create's duplicate check.
func (r *stubUserRepo) seed(u *domain.User) *domain.User {
	r.nextID++
	clone := cloneUser(u)
	if clone.ID == "" {
		clone.ID = "u" + strconv.Itoa(r.nextID)
	}
	r.users[clone.ID] = clone
	return cloneUser(clone)
}

type stubSessionStore struct {
	sessions map[string]string
	nextID   int
	issueErr error
}

func newStubSessionStore() *stubSessionStore {
	return &stubSessionStore{sessions: make(map[string]string)}
}

func (s *stubSessionStore) Issue(_ context.Context, userID string) (*domain.Session, error) {
	if s.issueErr != nil {
		return nil, s.issueErr
	}
	s.nextID++
	id := "sess" + strconv.Itoa(s.nextID)
	s.sessions[id] = userID
	return &domain.Session{ID: id, UserID: userID, ExpiresAt: time.Now().Add(domain.SessionTTL)}, nil
}

func (s *stubSessionStore) Resolve(_ context.Context, sessionID string) (string, error) {
	if userID, ok := s.sessions[sessionID]; ok {
		return userID, nil
	}
	return "", domain.ErrSessionNotFound
}

func (s *stubSessionStore) Destroy(_ context.Context, sessionID string) error {
	delete(s.sessions, sessionID)
	return nil
}

type stubCourseRepo struct {
	courses map[string]*domain.Course
	nextID  int

	deleteByOwnerErr error
}

func newStubCourseRepo() *stubCourseRepo {
	return &stubCourseRepo{courses: make(map[string]*domain.Course)}
}

func cloneCourse(c *domain.Course) *domain.Course {
	if c == nil {
		return nil
	}
	clone := *c
	return &clone
}

func (r *stubCourseRepo) Create(_ context.Context, course *domain.Course) (*domain.Course, error) {
	r.nextID++
	created := cloneCourse(course)
	created.ID = "c" + strconv.Itoa(r.nextID)
	r.courses[created.ID] = cloneCourse(created)
	return created, nil
}

func (r *stubCourseRepo) FindByID(_ context.Context, id string) (*domain.Course, error) {
	if c, ok := r.courses[id]; ok {
		return cloneCourse(c), nil
	}
	return nil, domain.ErrCourseNotFound
}

func (r *stubCourseRepo) List(_ context.Context, filter ports.CourseFilter) ([]*domain.Course, error) {
	var courses []*domain.Course
	for _, c := range r.courses {
		if filter.OwnerID == "" || c.OwnerID == filter.OwnerID {
			courses = append(courses, cloneCourse(c))
		}
	}
	return courses, nil
}

func (r *stubCourseRepo) Update(_ context.Context, course *domain.Course) error {
	if _, ok := r.courses[course.ID]; !ok {
		return domain.ErrCourseNotFound
	}
	r.courses[course.ID] = cloneCourse(course)
	return nil
}

func (r *stubCourseRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.courses[id]; !ok {
		return domain.ErrCourseNotFound
	}
	delete(r.courses, id)
	return nil
}

func (r *stubCourseRepo) DeleteByOwner(_ context.Context, ownerID string) (int64, error) {
	if r.deleteByOwnerErr != nil {
		return 0, r.deleteByOwnerErr
	}
	var deleted int64
	for id, c := range r.courses {
		if c.OwnerID == ownerID {
			delete(r.courses, id)
			deleted++
		}
	}
	return deleted, nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash password: %v", err)
	}
	return string(hash)
}

// --- Register ---

func TestAuthService_Register_Success(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubSessionStore(), zerolog.Nop())

	user, err := svc.Register(context.Background(), ports.RegisterInput{
		Name: "alice", Email: "alice@example.com", Password: "pass123", Role: "teacher",
	})
	if err != nil {
		t.Fatalf("Register returned error: %v", err)
	}
	if user.PasswordHash == "pass123" {
		t.Fatalf("expected password to be hashed")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("pass123")); err != nil {
		t.Fatalf("stored hash does not match password: %v", err)
	}
	if user.Role != domain.RoleTeacher {
		t.Fatalf("unexpected role: %s", user.Role)
	}
}

func TestAuthService_Register_RoleAllowList(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubSessionStore(), zerolog.Nop())

	cases := []struct {
		requested string
		want      domain.Role
	}{
		{"teacher", domain.RoleTeacher},
		{"learner", domain.RoleLearner},
		{"admin", domain.RoleLearner},
		{"superuser", domain.RoleLearner},
		{"", domain.RoleLearner},
	}
	for i, tc := range cases {
		user, err := svc.Register(context.Background(), ports.RegisterInput{
			Name: "bob", Email: "bob" + strconv.Itoa(i) + "@example.com", Password: "pass", Role: tc.requested,
		})
		if err != nil {
			t.Fatalf("register %q failed: %v", tc.requested, err)
		}
		if user.Role != tc.want {
			t.Fatalf("role %q: expected %s, got %s", tc.requested, tc.want, user.Role)
		}
	}
}

func TestAuthService_Register_Duplicate(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubSessionStore(), zerolog.Nop())

	in := ports.RegisterInput{Name: "carol", Email: "carol@example.com", Password: "pass"}
	if _, err := svc.Register(context.Background(), in); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if _, err := svc.Register(context.Background(), in); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}
	if len(repo.users) != 1 {
		t.Fatalf("expected one account, got %d", len(repo.users))
	}
}

// --- Login ---

func TestAuthService_Login_Success(t *testing.T) {
	repo := newStubUserRepo()
	sessions := newStubSessionStore()
	svc := NewAuthService(repo, sessions, zerolog.Nop())

	seeded := repo.seed(&domain.User{
		Name: "dave", Email: "dave@example.com",
		PasswordHash: mustHash(t, "s3cret"), Role: domain.RoleLearner,
	})

	sess, user, err := svc.Login(context.Background(), "dave@example.com", "s3cret")
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != seeded.ID {
		t.Fatalf("unexpected user: %+v", user)
	}
	if sess == nil || sess.UserID != seeded.ID {
		t.Fatalf("session not bound to user: %+v", sess)
	}
	if got := sessions.sessions[sess.ID]; got != seeded.ID {
		t.Fatalf("session store holds %q, want %q", got, seeded.ID)
	}
}

func TestAuthService_Login_WrongPassword(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubSessionStore(), zerolog.Nop())

	repo.seed(&domain.User{Email: "eve@example.com", PasswordHash: mustHash(t, "goodpass")})

	if _, _, err := svc.Login(context.Background(), "eve@example.com", "badpass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_UnknownEmailIndistinguishable(t *testing.T) {
	svc := NewAuthService(newStubUserRepo(), newStubSessionStore(), zerolog.Nop())

	// an unknown account must answer exactly like a wrong password
	if _, _, err := svc.Login(context.Background(), "ghost@example.com", "pass"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestAuthService_Login_LegacyMigration(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubSessionStore(), zerolog.Nop())

	seeded := repo.seed(&domain.User{
		Email: "frank@example.com", PasswordHash: "plaintextpass", Role: domain.RoleLearner,
	})

	// first login matches the legacy plaintext and migrates storage
	if _, _, err := svc.Login(context.Background(), "frank@example.com", "plaintextpass"); err != nil {
		t.Fatalf("legacy login failed: %v", err)
	}

	stored := repo.users[seeded.ID].PasswordHash
	if stored == "plaintextpass" {
		t.Fatalf("credential was not migrated")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(stored), []byte("plaintextpass")); err != nil {
		t.Fatalf("migrated hash does not verify: %v", err)
	}

	// second login succeeds through hashed verification
	if _, _, err := svc.Login(context.Background(), "frank@example.com", "plaintextpass"); err != nil {
		t.Fatalf("post-migration login failed: %v", err)
	}
	if repo.users[seeded.ID].PasswordHash != stored {
		t.Fatalf("credential changed again on hashed login")
	}
}

func TestAuthService_Login_LegacyMismatch(t *testing.T) {
	repo := newStubUserRepo()
	svc := NewAuthService(repo, newStubSessionStore(), zerolog.Nop())

	seeded := repo.seed(&domain.User{Email: "gina@example.com", PasswordHash: "plaintextpass"})

	if _, _, err := svc.Login(context.Background(), "gina@example.com", "wrong"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if repo.users[seeded.ID].PasswordHash != "plaintextpass" {
		t.Fatalf("failed login must not touch the stored credential")
	}
}

func TestAuthService_Login_MigrationPersistFailure(t *testing.T) {
	repo := newStubUserRepo()
	repo.updatePasswordErr = errors.New("write failed")
	svc := NewAuthService(repo, newStubSessionStore(), zerolog.Nop())

	repo.seed(&domain.User{Email: "hank@example.com", PasswordHash: "plaintextpass"})

	// the session must not be established when the upgrade cannot be persisted
	if _, _, err := svc.Login(context.Background(), "hank@example.com", "plaintextpass"); err == nil {
		t.Fatalf("expected error when migration persist fails")
	}
}

// --- Logout ---

func TestAuthService_Logout(t *testing.T) {
	sessions := newStubSessionStore()
	svc := NewAuthService(newStubUserRepo(), sessions, zerolog.Nop())

	sessions.sessions["sess1"] = "u1"
	if err := svc.Logout(context.Background(), "sess1"); err != nil {
		t.Fatalf("logout failed: %v", err)
	}
	if _, ok := sessions.sessions["sess1"]; ok {
		t.Fatalf("session not destroyed")
	}
}
