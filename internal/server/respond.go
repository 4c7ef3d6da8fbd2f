package server

import (
	"encoding/json"
	"net/http"
)

// messageResponse is the {success, message} envelope used by most
// mutating endpoints.
type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

// errorResponse is the {error} envelope used by the generation endpoint.
type errorResponse struct {
	Error     string `json:"error"`
	Traceback string `json:"traceback,omitempty"`
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("writing response", "error", err)
	}
}

func (s *Server) writeMessage(w http.ResponseWriter, status int, success bool, message string) {
	s.writeJSON(w, status, messageResponse{Success: success, Message: message})
}

// decodeJSON parses the request body into v. A malformed body gets a 400
// and the caller should return.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		s.writeMessage(w, http.StatusBadRequest, false, "invalid JSON body")
		return false
	}
	return true
}
