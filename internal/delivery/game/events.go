package game

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 5 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = pongWait * 9 / 10
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleEvents godoc
// @Summary Поток состояний доски
// @Description WebSocket: сначала текущее состояние, затем событие после каждого изменения
// @Tags game
// @Param gameID path string true "ID игры"
// @Router /games/{gameID}/events [get]
func (g *GameHandler) HandleEvents(w http.ResponseWriter, r *http.Request) {
	gameID := chi.URLParam(r, "gameID")

	events, unsubscribe, err := g.gameUC.Subscribe(r.Context(), gameID)
	if err != nil {
		g.writeError(w, "HandleEvents", err)
		return
	}
	defer unsubscribe()

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already answered the client
		g.log.Errorf("HandleEvents: upgrade error: %v", err)
		return
	}
	defer conn.Close()

	g.log.Infof("renderer subscribed to game %s", gameID)

	// the read side only exists to process control frames and notice a closed client
	closed := make(chan struct{})
	conn.SetReadLimit(512)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	go func() {
		defer close(closed)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	ticker := time.NewTicker(pingPeriod)
	defer ticker.Stop()

	for {
		select {
		case ev, ok := <-events:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = conn.WriteMessage(websocket.CloseMessage,
					websocket.FormatCloseMessage(websocket.CloseGoingAway, "game closed"))
				return
			}
			if err := conn.WriteJSON(ev); err != nil {
				g.log.Errorf("HandleEvents: write error: %v", err)
				return
			}
		case <-ticker.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-closed:
			g.log.Infof("renderer left game %s", gameID)
			return
		}
	}
}
