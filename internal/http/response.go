package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"alphinex-backend-go/internal/services"

	"go.uber.org/zap"
)

// ErrorResponse is the single error envelope returned by every endpoint.
type ErrorResponse struct {
	Kind    string `json:"kind"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, kind, message string) {
	WriteJSON(w, status, ErrorResponse{Kind: kind, Message: message})
}

// writeServiceError maps err onto the envelope. Errors outside the service
// taxonomy are logged and reported as a generic 500.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	if serr, ok := services.AsServiceError(err); ok {
		if serr.Err != nil || serr.Status >= http.StatusInternalServerError {
			s.Logger.Warn("request failed",
				zap.String("path", r.URL.Path),
				zap.String("kind", serr.Kind),
				zap.Error(err))
		}
		WriteJSON(w, serr.Status, ErrorResponse{Kind: serr.Kind, Message: serr.Message, Field: serr.Field})
		return
	}
	s.Logger.Error("internal error", zap.String("method", r.Method), zap.String("path", r.URL.Path), zap.Error(err))
	WriteError(w, http.StatusInternalServerError, services.KindInternal, "Internal server error")
}

// reply writes payload with status, or the error envelope when err is set.
func (s *Server) reply(w http.ResponseWriter, r *http.Request, status int, payload interface{}, err error) {
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	WriteJSON(w, status, payload)
}

// decodeJSON reads a single JSON object into dst, rejecting unknown fields.
// It writes the 400 response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		message := "Invalid payload"
		if errors.Is(err, io.EOF) {
			message = "Request body is required"
		} else if field, ok := strings.CutPrefix(err.Error(), "json: unknown field "); ok {
			message = "Unknown field " + field
		}
		WriteError(w, http.StatusBadRequest, services.KindValidation, message)
		return false
	}
	if dec.More() {
		WriteError(w, http.StatusBadRequest, services.KindValidation, "Request body must contain a single JSON object")
		return false
	}
	return true
}
