package domain

import (
	"errors"
	"time"
)

// Role classifies what an account is allowed to do.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleTeacher Role = "teacher"
	RoleLearner Role = "learner"
	RoleUser    Role = "user"
)

var ErrUserNotFound = errors.New("user not found")
var ErrUserExists = errors.New("user already exists")
var ErrInvalidCredentials = errors.New("invalid email or password")
var ErrForbidden = errors.New("access forbidden")

// ParseRole maps s to a known role, reporting whether it matched.
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleAdmin, RoleTeacher, RoleLearner, RoleUser:
		return Role(s), true
	}
	return "", false
}

// ParseRegistrationRole maps an untrusted registration role onto the closed
// set of self-assignable roles. Anything outside the allow-list collapses to
// RoleLearner; admin is never self-assignable.
func ParseRegistrationRole(s string) Role {
	switch Role(s) {
	case RoleTeacher, RoleLearner:
		return Role(s)
	default:
		return RoleLearner
	}
}

// User models an account in the system.
//
// PasswordHash normally holds a bcrypt hash, but accounts created before
// hashing was introduced may still carry the raw credential; those are
// upgraded in place on their next successful login.
type User struct {
	ID           string    `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// IsAdmin reports whether the user holds the admin role.
func (u *User) IsAdmin() bool {
	return u != nil && u.Role == RoleAdmin
}

// CanManage reports whether the user may act on a resource owned by ownerID.
// Admins may act on anything, everyone else only on what they own.
func (u *User) CanManage(ownerID string) bool {
	if u == nil {
		return false
	}
	return u.IsAdmin() || u.ID == ownerID
}
