package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/alexanderramin/codeforge/internal/repository"
)

type updateProfileRequest struct {
	Field string `json:"field"`
	Value string `json:"value"`
}

func (s *Server) handleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	var req updateProfileRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	req.Value = strings.TrimSpace(req.Value)
	if req.Field == "" || req.Value == "" {
		s.writeMessage(w, http.StatusBadRequest, false, "field and value are required")
		return
	}

	var err error
	switch req.Field {
	case "email":
		if !emailPattern.MatchString(req.Value) {
			s.writeMessage(w, http.StatusBadRequest, false, "enter a valid email address")
			return
		}
		err = s.users.UpdateEmail(r.Context(), sess.Username, req.Value)
	case "full_name":
		err = s.users.UpdateFullName(r.Context(), sess.Username, req.Value)
	default:
		s.writeMessage(w, http.StatusBadRequest, false, "field is not editable")
		return
	}
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.writeMessage(w, http.StatusNotFound, false, "user not found")
			return
		}
		s.logger.Error("updating profile", "field", req.Field, "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "failed to update profile")
		return
	}

	s.writeMessage(w, http.StatusOK, true, "profile updated")
}

type updateRoleRequest struct {
	Role string `json:"role"`
}

func (s *Server) handleUpdateRole(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	var req updateRoleRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	key := strings.ToUpper(strings.TrimSpace(req.Role))
	switch key {
	case "DEVELOPER", "SYSTEM_ANALYST", "STUDENT":
	default:
		s.writeMessage(w, http.StatusBadRequest, false, "invalid role")
		return
	}

	if err := s.users.UpdateRole(r.Context(), sess.Username, domain.ParseRole(key)); err != nil {
		s.logger.Error("updating role", "error", err)
		s.writeMessage(w, http.StatusInternalServerError, false, "failed to update role")
		return
	}

	s.writeMessage(w, http.StatusOK, true, "role updated")
}
