package handlers

import (
	"log/slog"
	"net/http"

	"github.com/Dosada05/event-manager/middleware"
	"github.com/Dosada05/event-manager/realtime"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub      *realtime.Hub
	auth     middleware.Authenticator
	upgrader websocket.Upgrader
	logger   *slog.Logger
}

// NewWebSocketHandler accepts connections from allowedOrigins; an empty list or "*"
// accepts any origin.
func NewWebSocketHandler(hub *realtime.Hub, auth middleware.Authenticator, allowedOrigins []string, logger *slog.Logger) *WebSocketHandler {
	return &WebSocketHandler{
		hub:  hub,
		auth: auth,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
		logger: logger,
	}
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 {
		return func(*http.Request) bool { return true }
	}
	set := make(map[string]bool, len(allowed))
	for _, o := range allowed {
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		set[o] = true
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		return origin == "" || set[origin]
	}
}

// ServeAlerts godoc
// @Summary Live alert stream
// @Tags alerts
// @Description Upgrades to a websocket that receives {type:"alert.created", payload} messages for the token's user. Browsers cannot set headers on websocket requests, so the token goes in the query string.
// @Param token query string true "Session token"
// @Success 101
// @Failure 401 {object} map[string]string
// @Router /ws/alerts [get]
func (h *WebSocketHandler) ServeAlerts(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("token")
	if token == "" {
		token = middleware.BearerToken(r)
	}
	if token == "" {
		unauthorizedResponse(w, r, "missing token")
		return
	}

	session, err := h.auth.Authenticate(r.Context(), token)
	if err != nil {
		status, ok := statusForServiceError(err)
		if !ok {
			serverErrorResponse(w, r, err)
			return
		}
		errorResponse(w, r, status, err.Error())
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error.
		h.logger.WarnContext(r.Context(), "websocket upgrade failed", slog.String("user_id", session.UserID), slog.Any("error", err))
		return
	}

	client := realtime.NewClient(h.hub, conn, realtime.UserRoom(session.UserID))
	if !h.hub.Join(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()

	h.logger.DebugContext(r.Context(), "alert stream opened", slog.String("user_id", session.UserID))
}
