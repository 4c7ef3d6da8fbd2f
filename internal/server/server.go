package server

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/alexanderramin/codeforge/internal/db"
	"github.com/alexanderramin/codeforge/internal/pipeline"
	"github.com/alexanderramin/codeforge/internal/repository"
)

// Server exposes the JSON API over a chi router.
type Server struct {
	users    repository.UserRepo
	sessions repository.SessionRepo
	projects repository.ProjectRepo
	uow      db.UnitOfWork
	pipeline *pipeline.Orchestrator
	logger   *slog.Logger
	cookie   string
}

// Config wires the server's collaborators.
type Config struct {
	Users      repository.UserRepo
	Sessions   repository.SessionRepo
	Projects   repository.ProjectRepo
	UnitOfWork db.UnitOfWork
	Pipeline   *pipeline.Orchestrator
	Logger     *slog.Logger
	CookieName string
}

// New creates a Server. Logger defaults to slog.Default, the cookie name
// to "codeforge_session".
func New(cfg Config) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	cookie := cfg.CookieName
	if cookie == "" {
		cookie = "codeforge_session"
	}
	return &Server{
		users:    cfg.Users,
		sessions: cfg.Sessions,
		projects: cfg.Projects,
		uow:      cfg.UnitOfWork,
		pipeline: cfg.Pipeline,
		logger:   logger,
		cookie:   cookie,
	}
}

// Router builds the HTTP route tree.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)

	r.Route("/api", func(r chi.Router) {
		r.Post("/login", s.handleLogin)
		r.Post("/register", s.handleRegister)
		r.Get("/check_auth", s.handleCheckAuth)
		r.Get("/stats", s.handleStats)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/logout", s.handleLogout)
			r.Post("/generate", s.handleGenerate)
			r.Post("/update_profile", s.handleUpdateProfile)
			r.Post("/update_role", s.handleUpdateRole)

			r.Get("/projects", s.handleListProjects)
			r.Post("/projects", s.handleCreateProject)
			r.Get("/projects/{projectID}", s.handleGetProject)
			r.Put("/projects/{projectID}", s.handleUpdateProject)
			r.Delete("/projects/{projectID}", s.handleDeleteProject)
		})
	})

	return r
}
