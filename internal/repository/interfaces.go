package repository

import (
	"context"
	"errors"

	"github.com/alexanderramin/codeforge/internal/domain"
)

var (
	// ErrNotFound indicates the requested record does not exist or is
	// inactive.
	ErrNotFound = errors.New("record not found")

	// ErrUsernameTaken indicates a username collision on user creation.
	ErrUsernameTaken = errors.New("username already exists")

	// ErrInvalidCredentials indicates a failed username/password check.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

// NewUser carries the fields needed to create an account.
type NewUser struct {
	Username string
	Password string
	Email    string
	FullName string
	Role     domain.Role
}

// UserRepo stores accounts.
type UserRepo interface {
	Create(ctx context.Context, u NewUser) (*domain.User, error)
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	GetByUsername(ctx context.Context, username string) (*domain.User, error)
	UpdateEmail(ctx context.Context, username, email string) error
	UpdateFullName(ctx context.Context, username, fullName string) error
	UpdateRole(ctx context.Context, username string, role domain.Role) error
	List(ctx context.Context) ([]*domain.User, error)
	Count(ctx context.Context) (int, error)
}

// SessionRepo stores server-side login sessions.
type SessionRepo interface {
	Create(ctx context.Context, userID, ipAddress, userAgent string) (string, error)
	Validate(ctx context.Context, token string) (*domain.Session, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context) (int64, error)
}

// ProjectUpdate is a partial update; nil fields are left unchanged.
type ProjectUpdate struct {
	Name        *string
	Description *string
	Language    *string
	Framework   *string
	Status      *string
	LinesOfCode *int
	FilesCount  *int
}

// ProjectRepo stores saved generation projects.
type ProjectRepo interface {
	Create(ctx context.Context, p *domain.Project) (int64, error)
	GetByID(ctx context.Context, id int64, userID string) (*domain.Project, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.Project, error)
	Update(ctx context.Context, id int64, userID string, upd ProjectUpdate) (bool, error)
	Delete(ctx context.Context, id int64, userID string) (bool, error)
	Stats(ctx context.Context, userID string) (domain.ProjectStats, error)
	TotalCount(ctx context.Context) (int, error)
}
