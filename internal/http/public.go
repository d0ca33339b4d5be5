package httpapi

import (
	"context"
	"net/http"
	"strings"
	"time"

	"alphinex-backend-go/internal/services"
)

type VisitCountResponse struct {
	Total int64 `json:"total"`
}

type HealthResponse struct {
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

func (s *Server) TrackVisit(w http.ResponseWriter, r *http.Request) {
	var in services.VisitInput
	if r.ContentLength != 0 && !decodeJSON(w, r, &in) {
		return
	}
	in.Path = trimPtr(in.Path, 255)
	in.Referrer = trimPtr(in.Referrer, 512)
	err := services.RecordVisit(r.Context(), s.DB, trimString(r.RemoteAddr, 64), trimString(r.Header.Get("User-Agent"), 512), in)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) VisitCount(w http.ResponseWriter, r *http.Request) {
	total, err := services.CountVisits(r.Context(), s.DB)
	s.reply(w, r, http.StatusOK, VisitCountResponse{Total: total}, err)
}

// Healthz pings the database.
func (s *Server) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
	defer cancel()
	if err := s.DB.PingContext(ctx); err != nil {
		WriteJSON(w, http.StatusServiceUnavailable, HealthResponse{OK: false, Error: err.Error()})
		return
	}
	WriteJSON(w, http.StatusOK, HealthResponse{OK: true})
}

func (s *Server) AdminStats(w http.ResponseWriter, r *http.Request) {
	stats, err := services.LoadDashboardStats(r.Context(), s.DB)
	s.reply(w, r, http.StatusOK, stats, err)
}

func trimString(value string, maxLen int) string {
	trimmed := strings.TrimSpace(value)
	if len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

func trimPtr(value *string, maxLen int) *string {
	if value == nil {
		return nil
	}
	trimmed := trimString(*value, maxLen)
	return &trimmed
}
