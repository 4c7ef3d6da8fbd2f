package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/alexanderramin/codeforge/internal/domain"
	"github.com/alexanderramin/codeforge/internal/repository"
)

type sessionKey struct{}

func withSession(ctx context.Context, s *domain.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// sessionFromContext returns the authenticated session stored by
// requireAuth.
func sessionFromContext(ctx context.Context) (*domain.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(*domain.Session)
	return s, ok
}

// requireAuth resolves the session cookie against the session store and
// attaches the session to the request context. Missing, unknown, or
// expired tokens get a 401.
func (s *Server) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(s.cookie)
		if err != nil || cookie.Value == "" {
			s.writeMessage(w, http.StatusUnauthorized, false, "authentication required")
			return
		}

		sess, err := s.sessions.Validate(r.Context(), cookie.Value)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				s.clearSessionCookie(w)
				s.writeMessage(w, http.StatusUnauthorized, false, "authentication required")
				return
			}
			s.logger.Error("validating session", "error", err)
			s.writeMessage(w, http.StatusInternalServerError, false, "internal server error")
			return
		}

		next.ServeHTTP(w, r.WithContext(withSession(r.Context(), sess)))
	})
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, remember bool) {
	cookie := &http.Cookie{
		Name:     s.cookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	}
	if remember {
		cookie.MaxAge = 8 * 60 * 60
	}
	http.SetCookie(w, cookie)
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     s.cookie,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
}
