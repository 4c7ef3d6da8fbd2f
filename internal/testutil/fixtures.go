package testutil

import (
	"fmt"
	"sync/atomic"
	"time"

	"github.com/alexanderramin/codeforge/internal/domain"
)

var testUserCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithEmail(e string) UserOption {
	return func(u *domain.User) {
		u.Email = e
	}
}

func WithInactive() UserOption {
	return func(u *domain.User) {
		u.Active = false
	}
}

// NewTestUser returns an unsaved user record with a unique username.
func NewTestUser(opts ...UserOption) *domain.User {
	n := testUserCounter.Add(1)
	u := &domain.User{
		Username:  fmt.Sprintf("user%03d", n),
		Email:     fmt.Sprintf("user%03d@example.com", n),
		FullName:  fmt.Sprintf("Test User %d", n),
		Role:      domain.RoleDeveloper,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Project options
type ProjectOption func(*domain.Project)

func WithProjectStatus(s string) ProjectOption {
	return func(p *domain.Project) {
		p.Status = s
	}
}

func WithLanguage(lang string) ProjectOption {
	return func(p *domain.Project) {
		p.Language = lang
	}
}

func WithLinesOfCode(n int) ProjectOption {
	return func(p *domain.Project) {
		p.LinesOfCode = n
	}
}

// NewTestProject returns an unsaved project owned by the given user.
func NewTestProject(userID, name string, opts ...ProjectOption) *domain.Project {
	p := &domain.Project{
		UserID:      userID,
		Name:        name,
		Description: "test project",
		Language:    "Python",
		Framework:   "Flask",
		Status:      "draft",
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}
