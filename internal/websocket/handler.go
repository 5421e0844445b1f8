package websocket

import (
	"log"
	"net/http"

	ws "github.com/coder/websocket"

	"carelink/internal/auth"
)

// HandleWebSocket returns an HTTP handler that upgrades authenticated
// connections to WebSocket and runs them as Hub clients keyed by username.
func HandleWebSocket(hub *Hub) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		username := auth.Username(r.Context())
		if username == "" {
			http.Error(w, "login required", http.StatusUnauthorized)
			return
		}

		conn, err := ws.Accept(w, r, &ws.AcceptOptions{
			InsecureSkipVerify: true, // Origin is enforced by the CORS layer in front
		})
		if err != nil {
			log.Printf("websocket: accept: %v", err)
			return
		}

		client := NewClient(hub, conn, username)
		client.Run(r.Context())
	}
}
