package httpapi

import (
	"net/http"
	"strconv"

	"alphinex-backend-go/internal/services"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

type MetricsHistoryResponse struct {
	Items []services.MetricSample `json:"items"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func (s *Server) MetricsHistory(w http.ResponseWriter, r *http.Request) {
	limit, err := strconv.Atoi(r.URL.Query().Get("limit"))
	if err != nil || limit < 1 {
		limit = 120
	}
	if limit > 500 {
		limit = 500
	}
	items, err := services.LatestMetrics(r.Context(), s.DB, limit)
	s.reply(w, r, http.StatusOK, MetricsHistoryResponse{Items: items}, err)
}

// MetricsSocket streams samples to the admin dashboard. Browsers cannot set
// headers on websocket requests, so the session token may come as ?token=.
func (s *Server) MetricsSocket(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = bearerToken(r)
	}
	session, err := s.Tokens.ParseSessionToken(token)
	if err != nil {
		WriteError(w, http.StatusUnauthorized, services.KindUnauthorized, "Unauthorized")
		return
	}
	if _, err := services.CheckSession(r.Context(), s.DB, session); err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Logger.Debug("websocket upgrade failed", zap.Error(err))
		return
	}
	s.MetricsHub.Add(conn)
	defer func() {
		s.MetricsHub.Remove(conn)
		_ = conn.Close()
	}()
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
