package server

import (
	"context"
	"errors"
	"net/http"
	"regexp"
	"strings"

	"github.com/alexanderramin/codeforge/internal/db"
	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/alexanderramin/codeforge/internal/repository"
)

var (
	usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9_.-]{3,20}$`)
	emailPattern    = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)
)

type userPayload struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

func userToPayload(u *domain.User) userPayload {
	return userPayload{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		FullName: u.FullName,
		Role:     u.Role.StorageKey(),
	}
}

type loginRequest struct {
	Username   string `json:"username"`
	Password   string `json:"password"`
	RememberMe bool   `json:"rememberMe"`
}

type loginResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	User    userPayload `json:"user"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		s.writeMessage(w, http.StatusBadRequest, false, "please fill in all fields")
		return
	}

	user, err := s.users.Authenticate(r.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, repository.ErrInvalidCredentials) {
			s.writeMessage(w, http.StatusUnauthorized, false, "invalid username or password")
			return
		}
		s.logger.Error("authenticating user", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "internal server error")
		return
	}

	token, err := s.sessions.Create(r.Context(), user.ID, r.RemoteAddr, r.UserAgent())
	if err != nil {
		s.logger.Error("creating session", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "internal server error")
		return
	}
	s.setSessionCookie(w, token, req.RememberMe)

	s.logger.Info("user logged in", "username", user.Username)
	s.writeJSON(w, http.StatusOK, loginResponse{
		Success: true,
		Message: "login successful",
		User:    userToPayload(user),
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(s.cookie); err == nil && cookie.Value != "" {
		if err := s.sessions.Delete(r.Context(), cookie.Value); err != nil {
			s.logger.Error("deleting session", "error", err)
		}
	}
	s.clearSessionCookie(w)
	s.writeMessage(w, http.StatusOK, true, "logged out")
}

type checkAuthResponse struct {
	Authenticated bool         `json:"authenticated"`
	User          *userPayload `json:"user,omitempty"`
}

func (s *Server) handleCheckAuth(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(s.cookie)
	if err != nil || cookie.Value == "" {
		s.writeJSON(w, http.StatusOK, checkAuthResponse{Authenticated: false})
		return
	}

	sess, err := s.sessions.Validate(r.Context(), cookie.Value)
	if err != nil {
		s.writeJSON(w, http.StatusOK, checkAuthResponse{Authenticated: false})
		return
	}

	s.writeJSON(w, http.StatusOK, checkAuthResponse{
		Authenticated: true,
		User: &userPayload{
			ID:       sess.UserID,
			Username: sess.Username,
			Email:    sess.Email,
			FullName: sess.FullName,
			Role:     sess.Role.StorageKey(),
		},
	})
}

type registerRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	required := map[string]string{
		"username":         strings.TrimSpace(req.Username),
		"email":            strings.TrimSpace(req.Email),
		"password":         req.Password,
		"confirm_password": req.ConfirmPassword,
		"role":             strings.TrimSpace(req.Role),
	}
	for _, field := range []string{"username", "email", "password", "confirm_password", "role"} {
		if required[field] == "" {
			s.writeMessage(w, http.StatusBadRequest, false, "field '"+field+"' is required")
			return
		}
	}

	switch {
	case req.Password != req.ConfirmPassword:
		s.writeMessage(w, http.StatusBadRequest, false, "passwords do not match")
		return
	case !usernamePattern.MatchString(req.Username):
		s.writeMessage(w, http.StatusBadRequest, false,
			"username must be 3-20 characters (latin letters, digits, _ . -)")
		return
	case !emailPattern.MatchString(req.Email):
		s.writeMessage(w, http.StatusBadRequest, false, "enter a valid email address")
		return
	case len(req.Password) < 6:
		s.writeMessage(w, http.StatusBadRequest, false, "password must be at least 6 characters")
		return
	}

	err := s.uow.WithinTx(r.Context(), func(ctx context.Context, tx db.DBTX) error {
		users := repository.NewSQLiteUserRepo(tx)
		user, err := users.Create(ctx, repository.NewUser{
			Username: req.Username,
			Password: req.Password,
			Email:    req.Email,
			FullName: req.FullName,
			Role:     domain.ParseRole(req.Role),
		})
		if err != nil {
			return err
		}
		return seedDemoProjects(ctx, repository.NewSQLiteProjectRepo(tx), user.ID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrUsernameTaken) {
			s.writeMessage(w, http.StatusBadRequest, false, "username already exists")
			return
		}
		s.logger.Error("registering user", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "failed to create user")
		return
	}

	s.logger.Info("user registered", "username", req.Username)
	s.writeMessage(w, http.StatusOK, true, "registration successful, you can now log in")
}
