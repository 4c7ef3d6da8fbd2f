package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/codeforge/internal/db"
	"github.com/alexanderramin/codeforge/internal/domain"
)

// SQLiteProjectRepo implements ProjectRepo using a SQLite database.
type SQLiteProjectRepo struct {
	db db.DBTX
}

// NewSQLiteProjectRepo creates a new SQLiteProjectRepo.
func NewSQLiteProjectRepo(q db.DBTX) *SQLiteProjectRepo {
	return &SQLiteProjectRepo{db: q}
}

func (r *SQLiteProjectRepo) Create(ctx context.Context, p *domain.Project) (int64, error) {
	now := nowUTC()
	if p.Status == "" {
		p.Status = "draft"
	}
	query := `INSERT INTO projects (user_id, name, description, language, framework, status,
			lines_of_code, files_count, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	res, err := r.db.ExecContext(ctx, query,
		p.UserID, p.Name, p.Description, p.Language, p.Framework, p.Status,
		p.LinesOfCode, p.FilesCount, now, now)
	if err != nil {
		return 0, fmt.Errorf("inserting project: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("reading project id: %w", err)
	}
	p.ID = id
	return id, nil
}

func (r *SQLiteProjectRepo) GetByID(ctx context.Context, id int64, userID string) (*domain.Project, error) {
	query := `SELECT id, user_id, name, description, language, framework, status,
			lines_of_code, files_count, created_at, updated_at
		FROM projects WHERE id = ? AND user_id = ?`
	row := r.db.QueryRowContext(ctx, query, id, userID)

	p, err := scanProject(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("scanning project: %w", err)
	}
	return p, nil
}

func (r *SQLiteProjectRepo) ListByUser(ctx context.Context, userID string) ([]*domain.Project, error) {
	query := `SELECT id, user_id, name, description, language, framework, status,
			lines_of_code, files_count, created_at, updated_at
		FROM projects WHERE user_id = ? ORDER BY updated_at DESC`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing projects: %w", err)
	}
	defer rows.Close()

	var projects []*domain.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("scanning project: %w", err)
		}
		projects = append(projects, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating projects: %w", err)
	}
	return projects, nil
}

// Update applies the non-nil fields of upd and reports whether a row
// matched. An empty update is a no-op that reports false.
func (r *SQLiteProjectRepo) Update(ctx context.Context, id int64, userID string, upd ProjectUpdate) (bool, error) {
	var (
		sets []string
		args []any
	)
	add := func(column string, value any) {
		sets = append(sets, column+" = ?")
		args = append(args, value)
	}
	if upd.Name != nil {
		add("name", *upd.Name)
	}
	if upd.Description != nil {
		add("description", *upd.Description)
	}
	if upd.Language != nil {
		add("language", *upd.Language)
	}
	if upd.Framework != nil {
		add("framework", *upd.Framework)
	}
	if upd.Status != nil {
		add("status", *upd.Status)
	}
	if upd.LinesOfCode != nil {
		add("lines_of_code", *upd.LinesOfCode)
	}
	if upd.FilesCount != nil {
		add("files_count", *upd.FilesCount)
	}
	if len(sets) == 0 {
		return false, nil
	}
	add("updated_at", nowUTC())

	query := fmt.Sprintf(`UPDATE projects SET %s WHERE id = ? AND user_id = ?`,
		strings.Join(sets, ", "))
	args = append(args, id, userID)

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("updating project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking update result: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteProjectRepo) Delete(ctx context.Context, id int64, userID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM projects WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return false, fmt.Errorf("deleting project: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("checking delete result: %w", err)
	}
	return n > 0, nil
}

func (r *SQLiteProjectRepo) Stats(ctx context.Context, userID string) (domain.ProjectStats, error) {
	query := `SELECT COUNT(*),
			COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(CASE WHEN status = 'draft' THEN 1 ELSE 0 END), 0),
			COALESCE(SUM(lines_of_code), 0)
		FROM projects WHERE user_id = ?`
	var stats domain.ProjectStats
	err := r.db.QueryRowContext(ctx, query, userID).Scan(
		&stats.TotalProjects, &stats.CompletedProjects, &stats.DraftProjects, &stats.TotalLines)
	if err != nil {
		return domain.ProjectStats{}, fmt.Errorf("computing project stats: %w", err)
	}
	return stats, nil
}

func (r *SQLiteProjectRepo) TotalCount(ctx context.Context) (int, error) {
	var n int
	if err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM projects`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting projects: %w", err)
	}
	return n, nil
}

func scanProject(scan func(dest ...any) error) (*domain.Project, error) {
	var (
		p         domain.Project
		createdAt string
		updatedAt string
	)
	err := scan(&p.ID, &p.UserID, &p.Name, &p.Description, &p.Language, &p.Framework,
		&p.Status, &p.LinesOfCode, &p.FilesCount, &createdAt, &updatedAt)
	if err != nil {
		return nil, err
	}
	p.CreatedAt, _ = time.Parse(time.RFC3339, createdAt)
	p.UpdatedAt, _ = time.Parse(time.RFC3339, updatedAt)
	return &p, nil
}
