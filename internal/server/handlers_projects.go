package server

import (
	"context"
	"errors"
	"math/rand"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/alexanderramin/codeforge/internal/repository"
)

type projectPayload struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Framework   string `json:"framework"`
	Status      string `json:"status"`
	LinesOfCode int    `json:"lines_of_code"`
	FilesCount  int    `json:"files_count"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

func projectToPayload(p *domain.Project) projectPayload {
	return projectPayload{
		ID:          p.ID,
		Name:        p.Name,
		Description: p.Description,
		Language:    p.Language,
		Framework:   p.Framework,
		Status:      p.Status,
		LinesOfCode: p.LinesOfCode,
		FilesCount:  p.FilesCount,
		CreatedAt:   p.CreatedAt.Format(time.RFC3339),
		UpdatedAt:   p.UpdatedAt.Format(time.RFC3339),
	}
}

// seedDemoProjects creates the two starter projects every new account
// gets, with synthetic size metrics.
func seedDemoProjects(ctx context.Context, projects repository.ProjectRepo, userID string) error {
	demos := []*domain.Project{
		{
			UserID:      userID,
			Name:        "First Application",
			Description: "Welcome to CodeForge! This is your first project.",
			Language:    "Python",
			Framework:   "None",
			Status:      "completed",
			LinesOfCode: 100 + rand.Intn(401),
			FilesCount:  2 + rand.Intn(9),
		},
		{
			UserID:      userID,
			Name:        "Demo API",
			Description: "A sample REST API to learn from",
			Language:    "TypeScript",
			Framework:   "Express.js",
			Status:      "draft",
			LinesOfCode: 100 + rand.Intn(401),
			FilesCount:  2 + rand.Intn(9),
		},
	}
	for _, p := range demos {
		if _, err := projects.Create(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) projectIDFromURL(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, "projectID"), 10, 64)
	if err != nil {
		s.writeMessage(w, http.StatusBadRequest, false, "invalid project id")
		return 0, false
	}
	return id, true
}

func (s *Server) handleListProjects(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	list, err := s.projects.ListByUser(r.Context(), sess.UserID)
	if err != nil {
		s.logger.Error("listing projects", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "internal server error")
		return
	}
	stats, err := s.projects.Stats(r.Context(), sess.UserID)
	if err != nil {
		s.logger.Error("computing project stats", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "internal server error")
		return
	}

	payload := make([]projectPayload, 0, len(list))
	for _, p := range list {
		payload = append(payload, projectToPayload(p))
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":  true,
		"projects": payload,
		"stats": map[string]int{
			"total_projects":     stats.TotalProjects,
			"completed_projects": stats.CompletedProjects,
			"draft_projects":     stats.DraftProjects,
			"total_lines":        stats.TotalLines,
		},
	})
}

type createProjectRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Language    string `json:"language"`
	Framework   string `json:"framework"`
	Status      string `json:"status"`
}

func (s *Server) handleCreateProject(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	var req createProjectRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	for field, value := range map[string]string{
		"name":      req.Name,
		"language":  req.Language,
		"framework": req.Framework,
	} {
		if strings.TrimSpace(value) == "" {
			s.writeMessage(w, http.StatusBadRequest, false, "field '"+field+"' is required")
			return
		}
	}

	project := &domain.Project{
		UserID:      sess.UserID,
		Name:        strings.TrimSpace(req.Name),
		Description: strings.TrimSpace(req.Description),
		Language:    strings.TrimSpace(req.Language),
		Framework:   strings.TrimSpace(req.Framework),
		Status:      req.Status,
		// Size metrics are synthetic until real artifacts are persisted.
		LinesOfCode: 100 + rand.Intn(1401),
		FilesCount:  3 + rand.Intn(18),
	}
	id, err := s.projects.Create(r.Context(), project)
	if err != nil {
		s.logger.Error("creating project", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "failed to create project")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success":    true,
		"message":    "project created",
		"project_id": id,
	})
}

func (s *Server) handleGetProject(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	id, ok := s.projectIDFromURL(w, r)
	if !ok {
		return
	}

	project, err := s.projects.GetByID(r.Context(), id, sess.UserID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.writeMessage(w, http.StatusNotFound, false, "project not found")
			return
		}
		s.logger.Error("loading project", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"project": projectToPayload(project),
	})
}

type updateProjectRequest struct {
	Name        *string `json:"name"`
	Description *string `json:"description"`
	Language    *string `json:"language"`
	Framework   *string `json:"framework"`
	Status      *string `json:"status"`
}

func (s *Server) handleUpdateProject(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	id, ok := s.projectIDFromURL(w, r)
	if !ok {
		return
	}

	var req updateProjectRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	trim := func(p *string) *string {
		if p == nil {
			return nil
		}
		v := strings.TrimSpace(*p)
		return &v
	}
	upd := repository.ProjectUpdate{
		Name:        trim(req.Name),
		Description: trim(req.Description),
		Language:    trim(req.Language),
		Framework:   trim(req.Framework),
		Status:      trim(req.Status),
	}
	if upd.Name == nil && upd.Description == nil && upd.Language == nil &&
		upd.Framework == nil && upd.Status == nil {
		s.writeMessage(w, http.StatusBadRequest, false, "no fields to update")
		return
	}

	updated, err := s.projects.Update(r.Context(), id, sess.UserID, upd)
	if err != nil {
		s.logger.Error("updating project", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "internal server error")
		return
	}
	if !updated {
		s.writeMessage(w, http.StatusNotFound, false, "project not found")
		return
	}
	s.writeMessage(w, http.StatusOK, true, "project updated")
}

func (s *Server) handleDeleteProject(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())
	id, ok := s.projectIDFromURL(w, r)
	if !ok {
		return
	}

	deleted, err := s.projects.Delete(r.Context(), id, sess.UserID)
	if err != nil {
		s.logger.Error("deleting project", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "internal server error")
		return
	}
	if !deleted {
		s.writeMessage(w, http.StatusNotFound, false, "project not found")
		return
	}
	s.writeMessage(w, http.StatusOK, true, "project deleted")
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	totalUsers, err := s.users.Count(r.Context())
	if err != nil {
		s.logger.Error("counting users", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "internal server error")
		return
	}
	totalProjects, err := s.projects.TotalCount(r.Context())
	if err != nil {
		s.logger.Error("counting projects", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "internal server error")
		return
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"stats": map[string]int{
			"total_users":    totalUsers,
			"total_projects": totalProjects,
		},
	})
}
