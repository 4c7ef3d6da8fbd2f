package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/codeforge/internal/db"
	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/google/uuid"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(q db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: q}
}

func (r *SQLiteUserRepo) Create(ctx context.Context, u NewUser) (*domain.User, error) {
	user := &domain.User{
		ID:        uuid.NewString(),
		Username:  u.Username,
		Email:     u.Email,
		FullName:  u.FullName,
		Role:      u.Role,
		Active:    true,
		CreatedAt: time.Now().UTC(),
	}

	query := `INSERT INTO users (id, username, password_hash, email, full_name, role, is_active, created_at)
		VALUES (?, ?, ?, ?, ?, ?, 1, ?)`
	_, err := r.db.ExecContext(ctx, query,
		user.ID,
		user.Username,
		hashPassword(u.Password),
		user.Email,
		user.FullName,
		user.Role.StorageKey(),
		user.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("inserting user: %w", err)
	}
	return user, nil
}

func (r *SQLiteUserRepo) Authenticate(ctx context.Context, username, password string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, email, full_name, role, is_active, created_at, last_login
		FROM users WHERE username = ? AND is_active = 1`
	row := r.db.QueryRowContext(ctx, query, username)

	var storedHash string
	user, err := r.scanUser(row, &storedHash)
	if err != nil {
		return nil, ErrInvalidCredentials
	}
	if storedHash != hashPassword(password) {
		return nil, ErrInvalidCredentials
	}

	if _, err := r.db.ExecContext(ctx,
		`UPDATE users SET last_login = ? WHERE id = ?`, nowUTC(), user.ID); err != nil {
		return nil, fmt.Errorf("updating last login: %w", err)
	}
	return user, nil
}

func (r *SQLiteUserRepo) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `SELECT id, username, password_hash, email, full_name, role, is_active, created_at, last_login
		FROM users WHERE username = ? AND is_active = 1`
	row := r.db.QueryRowContext(ctx, query, username)

	var storedHash string
	user, err := r.scanUser(row, &storedHash)
	if err != nil {
		return nil, err
	}
	return user, nil
}

func (r *SQLiteUserRepo) UpdateEmail(ctx context.Context, username, email string) error {
	return r.updateField(ctx, username, "email", email)
}

func (r *SQLiteUserRepo) UpdateFullName(ctx context.Context, username, fullName string) error {
	return r.updateField(ctx, username, "full_name", fullName)
}

func (r *SQLiteUserRepo) UpdateRole(ctx context.Context, username string, role domain.Role) error {
	return r.updateField(ctx, username, "role", role.StorageKey())
}

func (r *SQLiteUserRepo) updateField(ctx context.Context, username, column, value string) error {
	// column is always one of the fixed names above, never user input.
	query := fmt.Sprintf(`UPDATE users SET %s = ? WHERE username = ? AND is_active = 1`, column)
	res, err := r.db.ExecContext(ctx, query, value, username)
	if err != nil {
		return fmt.Errorf("updating user %s: %w", column, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking update result: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	query := `SELECT id, username, password_hash, email, full_name, role, is_active, created_at, last_login
		FROM users ORDER BY created_at DESC`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	var users []*domain.User
	for rows.Next() {
		var (
			u          domain.User
			storedHash string
			roleStr    string
			activeInt  int
			createdAt  string
			lastLogin  sql.NullString
		)
		if err := rows.Scan(&u.ID, &u.Username, &storedHash, &u.Email, &u.FullName,
			&roleStr, &activeInt, &createdAt, &lastLogin); err != nil {
			return nil, fmt.Errorf("scanning user: %w", err)
		}
		u.Role = domain.ParseRole(roleStr)
		u.Active = intToBool(activeInt)
		u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
		u.LastLogin = parseNullableTime(lastLogin, time.RFC3339)
		users = append(users, &u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (r *SQLiteUserRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM users`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting users: %w", err)
	}
	return n, nil
}

// EnsureDefaults seeds the stock demo accounts if they are missing.
// Safe to call on every startup.
func (r *SQLiteUserRepo) EnsureDefaults(ctx context.Context) error {
	defaults := []NewUser{
		{Username: "user001", Password: "pswd001", Email: "user001@example.com", FullName: "User 001", Role: domain.RoleDeveloper},
		{Username: "admin", Password: "admin123", Email: "admin@codeforge.dev", FullName: "System Administrator", Role: domain.RoleSystemAnalyst},
		{Username: "student", Password: "student123", Email: "student@edu.com", FullName: "Test Student", Role: domain.RoleStudent},
	}
	for _, u := range defaults {
		if _, err := r.GetByUsername(ctx, u.Username); err == nil {
			continue
		}
		if _, err := r.Create(ctx, u); err != nil {
			return fmt.Errorf("seeding user %s: %w", u.Username, err)
		}
	}
	return nil
}

func (r *SQLiteUserRepo) scanUser(row *sql.Row, storedHash *string) (*domain.User, error) {
	var (
		u         domain.User
		roleStr   string
		activeInt int
		createdAt string
		lastLogin sql.NullString
	)
	err := row.Scan(&u.ID, &u.Username, storedHash, &u.Email, &u.FullName,
		&roleStr, &activeInt, &createdAt, &lastLogin)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}
	u.Role = domain.ParseRole(roleStr)
	u.Active = intToBool(activeInt)
	u.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	u.LastLogin = parseNullableTime(lastLogin, time.RFC3339)
	return &u, nil
}
