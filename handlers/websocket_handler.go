package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"slices"

	"github.com/Dosada05/ohm-scoreboard/live"
	"github.com/Dosada05/ohm-scoreboard/models"
	"github.com/Dosada05/ohm-scoreboard/services"
	"github.com/gorilla/websocket"
)

type WebSocketHandler struct {
	hub                *live.Hub
	leaderboardService *services.LeaderboardService
	upgrader           websocket.Upgrader
}

// NewWebSocketHandler accepts connections from allowedOrigins; "*" allows any origin.
func NewWebSocketHandler(hub *live.Hub, ls *services.LeaderboardService, allowedOrigins []string) *WebSocketHandler {
	return &WebSocketHandler{
		hub:                hub,
		leaderboardService: ls,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

// ServeLeaderboard godoc
// @Summary Подписка на обновления таблицы лидеров (WebSocket)
// @Tags leaderboard
// @Description После подключения клиент получает текущую таблицу, затем сообщение LEADERBOARD_UPDATED после каждого принятого результата.
// @Success 101 "Switching Protocols"
// @Router /ws/leaderboard [get]
func (h *WebSocketHandler) ServeLeaderboard(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already replied with an HTTP error.
		slog.WarnContext(r.Context(), "websocket upgrade failed", slog.Any("error", err))
		return
	}

	client := live.NewClient(h.hub, conn, models.LeaderboardRoom)

	if msg, err := h.leaderboardService.CurrentMessage(r.Context()); err != nil {
		slog.WarnContext(r.Context(), "failed to load initial leaderboard for websocket client", slog.Any("error", err))
	} else if payload, err := json.Marshal(msg); err == nil {
		client.Send <- payload
	}

	if !h.hub.Subscribe(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

func originChecker(allowed []string) func(r *http.Request) bool {
	if len(allowed) == 0 || slices.Contains(allowed, "*") {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		// non-browser clients send no Origin
		return origin == "" || slices.Contains(allowed, origin)
	}
}
