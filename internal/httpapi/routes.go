package httpapi

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/spectrumparty/backend/internal/hub"
	"github.com/spectrumparty/backend/internal/ws"
)

func SetupRoutes(h *hub.Hub, baseURL string, log *zap.Logger) http.Handler {
	r := chi.NewRouter()

	// Public routes
	r.Post("/rooms", CreateRoom(h, log))
	r.Get("/rooms/{code}", GetRoomState(h))
	r.Get("/rooms/{code}/qr", RoomQR(baseURL))
	r.Get("/healthz", Healthz)
	r.Get("/ws", ws.Handler(h, log))
	return r
}
