package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"alphinex-backend-go/internal/services"
)

type contextKey string

const ctxSession contextKey = "session"

const SessionCookieName = "alphinex_session"

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimSpace(strings.TrimPrefix(auth, "Bearer "))
	}
	if cookie, err := r.Cookie(SessionCookieName); err == nil {
		return cookie.Value
	}
	return ""
}

// WithSession attaches the caller's session when the request carries a valid
// token. Requests without one pass through as anonymous.
func WithSession(tokens services.TokenService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenStr := bearerToken(r)
			if tokenStr == "" {
				next.ServeHTTP(w, r)
				return
			}
			session, err := tokens.ParseSessionToken(tokenStr)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}
			ctx := context.WithValue(r.Context(), ctxSession, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireSession rejects anonymous requests before the handler runs, as well
// as sessions whose user is gone or has changed credentials since sign-in.
func (s *Server) RequireSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		session, ok := CurrentSession(r)
		if !ok {
			WriteError(w, http.StatusUnauthorized, services.KindUnauthorized, "Unauthorized")
			return
		}
		if _, err := services.CheckSession(r.Context(), s.DB, session); err != nil {
			s.writeServiceError(w, r, err)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func CurrentSession(r *http.Request) (services.Session, bool) {
	session, ok := r.Context().Value(ctxSession).(services.Session)
	return session, ok
}

func isAuthenticated(r *http.Request) bool {
	_, ok := CurrentSession(r)
	return ok
}

func (s *Server) setSessionCookie(w http.ResponseWriter, token string, expires time.Time) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expires,
		MaxAge:   int(time.Until(expires).Seconds()),
		HttpOnly: true,
		Secure:   s.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *Server) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.Config.CookieSecure,
		SameSite: http.SameSiteLaxMode,
	})
}
