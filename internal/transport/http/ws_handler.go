package http

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"trivia-gauntlet/internal/app"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleLeaderboardFeed streams a leaderboard snapshot on connect and after
// every accepted submission, until the client goes away.
func handleLeaderboardFeed(logger *slog.Logger, scores *app.ScoreService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		updates, cancel, err := scores.Subscribe(r.Context())
		if err != nil {
			writeError(w, http.StatusInternalServerError, "internal error")
			return
		}

		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			cancel()
			logger.Error("ws upgrade failed", "err", err)
			return
		}

		done := make(chan struct{})
		go func() {
			// Reads only serve to detect the client closing.
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		defer conn.Close()
		defer cancel()
		for {
			select {
			case update, ok := <-updates:
				if !ok {
					return
				}
				if err := conn.WriteJSON(update); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	}
}
