package ws

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"nhooyr.io/websocket"

	"github.com/spectrumparty/backend/internal/hub"
	"github.com/spectrumparty/backend/internal/room"
	"github.com/spectrumparty/backend/internal/types"
)

// Read deadline per frame. Clients heartbeat well inside this, so an idle
// expiry means the peer is gone.
const readTimeout = 90 * time.Second

// Handler upgrades a client onto a room's snapshot stream. The room code
// is required (the routing layer must guarantee one); the player id is the
// client's stable identity and may be absent for spectators. Subscribing
// creates the room if it does not exist yet.
func Handler(h *hub.Hub, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")
		if code == "" {
			http.Error(w, "missing code", http.StatusBadRequest)
			return
		}
		playerID := r.URL.Query().Get("player")

		reply := make(chan *room.Room, 1)
		h.Inbox() <- hub.EnsureRoom{Code: code, Reply: reply}
		rm := <-reply
		if rm == nil {
			http.Error(w, "room unavailable", http.StatusServiceUnavailable)
			return
		}

		conn, err := websocket.Accept(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close(websocket.StatusNormalClosure, "bye")

		out := make(chan room.Snapshot, 8)
		clientID := uuid.NewString()

		rm.Inbox() <- room.Join{ClientID: clientID, PlayerID: playerID, Outbox: out}
		defer func() { rm.Inbox() <- room.Leave{ClientID: clientID} }()

		log = log.With(zap.String("room", code), zap.String("client", clientID))

		// Writer goroutine
		writeCtx, writeCancel := context.WithCancel(r.Context())
		defer writeCancel()
		go func() {
			for snap := range out {
				msg := types.ServerMessage{Type: "stateSnapshot", Version: snap.Version, State: &snap.State}
				payload, _ := json.Marshal(msg)
				ctx, cancel := context.WithTimeout(writeCtx, 3*time.Second)
				_ = conn.Write(ctx, websocket.MessageText, payload)
				cancel()
			}
		}()

		// Reader loop
		for {
			ctx, cancel := context.WithTimeout(r.Context(), readTimeout)
			_, data, err := conn.Read(ctx)
			cancel()
			if err != nil {
				switch websocket.CloseStatus(err) {
				case websocket.StatusNormalClosure, websocket.StatusGoingAway:
					return
				}
				return
			}

			var cm types.ClientMessage
			if err := json.Unmarshal(data, &cm); err != nil {
				writeError(r.Context(), conn, "bad json")
				continue
			}

			switch cm.Type {
			case "setState":
				if cm.Patch == nil {
					writeError(r.Context(), conn, "missing patch")
					continue
				}
				rm.Inbox() <- room.SetState{PlayerID: playerID, Patch: *cm.Patch}
			case "heartbeat":
				rm.Inbox() <- room.Heartbeat{PlayerID: playerID}
			default:
				log.Debug("unknown message type", zap.String("type", cm.Type))
				writeError(r.Context(), conn, "unknown type")
			}
		}
	}
}

func writeError(ctx context.Context, conn *websocket.Conn, msg string) {
	payload, _ := json.Marshal(types.ServerMessage{Type: "error", Error: msg})
	wctx, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	_ = conn.Write(wctx, websocket.MessageText, payload)
}
