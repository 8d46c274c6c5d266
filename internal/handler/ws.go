package handler

import (
	"log/slog"
	"net/http"

	ws "github.com/coder/websocket"

	"github.com/ramhdi/vimana2/internal/websocket"
)

// WSHandler upgrades authenticated requests to the realtime update feed.
type WSHandler struct {
	hub    *websocket.Hub
	logger *slog.Logger
}

func NewWSHandler(hub *websocket.Hub, logger *slog.Logger) *WSHandler {
	return &WSHandler{hub: hub, logger: logger}
}

func (h *WSHandler) Serve(w http.ResponseWriter, r *http.Request) {
	conn, err := ws.Accept(w, r, nil)
	if err != nil {
		h.logger.Warn("websocket accept", "error", err)
		return
	}
	defer conn.CloseNow()

	client := websocket.NewClient(h.hub, conn)
	client.Run(r.Context())

	conn.Close(ws.StatusNormalClosure, "")
}
