package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/alexanderramin/codeforge/internal/db"
	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/google/uuid"
)

// sessionTTL bounds how long a login session stays valid.
const sessionTTL = 8 * time.Hour

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(q db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: q}
}

func (r *SQLiteSessionRepo) Create(ctx context.Context, userID, ipAddress, userAgent string) (string, error) {
	token := uuid.NewString()
	query := `INSERT INTO user_sessions (token, user_id, login_time, ip_address, user_agent)
		VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query, token, userID, nowUTC(), ipAddress, userAgent)
	if err != nil {
		return "", fmt.Errorf("inserting session: %w", err)
	}
	return token, nil
}

// Validate looks up a live session and the account it belongs to.
// Sessions older than sessionTTL are treated as missing.
func (r *SQLiteSessionRepo) Validate(ctx context.Context, token string) (*domain.Session, error) {
	query := `SELECT s.token, s.user_id, u.username, u.email, u.full_name, u.role,
			s.login_time, s.ip_address, s.user_agent
		FROM user_sessions s
		JOIN users u ON u.id = s.user_id
		WHERE s.token = ?
			AND u.is_active = 1
			AND datetime(s.login_time, '+8 hours') > datetime('now')`
	row := r.db.QueryRowContext(ctx, query, token)

	var (
		s         domain.Session
		roleStr   string
		loginTime string
	)
	err := row.Scan(&s.Token, &s.UserID, &s.Username, &s.Email, &s.FullName,
		&roleStr, &loginTime, &s.IPAddress, &s.UserAgent)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning session: %w", err)
	}
	s.Role = domain.ParseRole(roleStr)
	s.LoginTime, _ = time.Parse(time.RFC3339, loginTime)
	return &s, nil
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM user_sessions WHERE token = ?`, token); err != nil {
		return fmt.Errorf("deleting session: %w", err)
	}
	return nil
}

// DeleteExpired removes sessions past their TTL and reports how many
// were dropped.
func (r *SQLiteSessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM user_sessions WHERE datetime(login_time, '+8 hours') <= datetime('now')`)
	if err != nil {
		return 0, fmt.Errorf("deleting expired sessions: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("counting deleted sessions: %w", err)
	}
	return n, nil
}
