package httpapi

import (
	"net/http"
	"time"

	"alphinex-backend-go/internal/models"
	"alphinex-backend-go/internal/services"

	"go.uber.org/zap"
)

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type SessionResponse struct {
	Token     string      `json:"token,omitempty"`
	ExpiresAt time.Time   `json:"expiresAt"`
	User      models.User `json:"user"`
}

func (s *Server) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	user, err := services.Authenticate(r.Context(), s.DB, s.Tokens, req.Email, req.Password)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	token, exp, err := s.Tokens.CreateSessionToken(user.ID, user.Email, user.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.setSessionCookie(w, token, exp)
	s.Logger.Info("admin login", zap.String("userId", user.ID))
	WriteJSON(w, http.StatusOK, SessionResponse{Token: token, ExpiresAt: exp, User: user})
}

func (s *Server) Logout(w http.ResponseWriter, r *http.Request) {
	s.clearSessionCookie(w)
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true})
}

// Session returns the signed-in user, or 401 when the token no longer maps to one.
func (s *Server) Session(w http.ResponseWriter, r *http.Request) {
	session, _ := CurrentSession(r)
	user, err := services.CheckSession(r.Context(), s.DB, session)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, http.StatusOK, SessionResponse{ExpiresAt: session.ExpiresAt, User: user})
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"currentPassword"`
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}

func (s *Server) ChangePassword(w http.ResponseWriter, r *http.Request) {
	var req ChangePasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.NewPassword != req.ConfirmPassword {
		s.writeServiceError(w, r, services.ErrValidation("confirmPassword", "Password confirmation does not match"))
		return
	}
	session, _ := CurrentSession(r)
	err := services.ChangePassword(r.Context(), s.DB, s.Tokens, session.UserID, req.CurrentPassword, req.NewPassword)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	// Older tokens stop working now, so the caller gets a fresh cookie.
	token, exp, err := s.Tokens.CreateSessionToken(session.UserID, session.Email, session.Name)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	s.setSessionCookie(w, token, exp)
	s.Logger.Info("password changed", zap.String("userId", session.UserID))
	w.WriteHeader(http.StatusNoContent)
}
