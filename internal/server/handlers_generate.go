package server

import (
	"errors"
	"net/http"

	"github.com/alexanderramin/codeforge/internal/pipeline"
)

func (s *Server) handleGenerate(w http.ResponseWriter, r *http.Request) {
	sess, _ := sessionFromContext(r.Context())

	var req pipeline.GenerationRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	principal := pipeline.Principal{
		Username: sess.Username,
		Role:     sess.Role,
	}
	result, err := s.pipeline.HandleGeneration(r.Context(), req, principal)
	if err != nil {
		if errors.Is(err, pipeline.ErrEmptyRequirement) {
			s.writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
			return
		}
		var internal *pipeline.InternalError
		if errors.As(err, &internal) {
			s.writeJSON(w, http.StatusInternalServerError, errorResponse{
				Error:     internal.Message,
				Traceback: internal.Trace,
			})
			return
		}
		s.logger.Error("generation failed", "error", err)
		s.writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
		return
	}

	s.writeJSON(w, http.StatusOK, result)
}
