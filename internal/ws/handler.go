package ws

import (
	"net/http"
	"strings"

	"jobfinder/internal/delivery/http/middleware"
	"jobfinder/internal/pkg/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/adaptor"
	"github.com/gorilla/websocket"
)

type Handler struct {
	hub      *Hub
	logger   *logger.Logger
	upgrader websocket.Upgrader
}

// NewHandler accepts connections from the given origins; "*" or an empty list allows any.
func NewHandler(hub *Hub, allowedOrigins []string, log *logger.Logger) *Handler {
	return &Handler{
		hub:    hub,
		logger: log,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     originChecker(allowedOrigins),
		},
	}
}

func (h *Handler) RegisterRoutes(r fiber.Router) {
	r.Get("/applications/:userId", h.HandleApplicationsWS)
}

func (h *Handler) HandleApplicationsWS(c fiber.Ctx) error {
	if h == nil || h.hub == nil {
		return fiber.ErrServiceUnavailable
	}

	// Params is backed by the request buffer; the client outlives the request.
	userID := strings.Clone(strings.TrimSpace(c.Params("userId")))
	if userID == "" {
		return middleware.NewAppError(fiber.StatusBadRequest, "userId is required", nil)
	}
	if err := middleware.RequireSameUser(c, userID); err != nil {
		return err
	}
	if !strings.EqualFold(c.Get(fiber.HeaderUpgrade), "websocket") {
		return middleware.NewAppError(fiber.StatusUpgradeRequired, "Websocket upgrade required", nil)
	}

	fiberHandler := adaptor.HTTPHandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		conn, err := h.upgrader.Upgrade(w, r, nil)
		if err != nil {
			h.logger.Warn("ws upgrade failed", "user_id", userID, "err", err)
			return
		}

		client := NewClient(h.hub, conn, userID)
		h.hub.Register(client)
		go client.WritePump()
		go client.ReadPump()
	})

	return fiberHandler(c)
}

func originChecker(allowed []string) func(r *http.Request) bool {
	set := make(map[string]struct{}, len(allowed))
	for _, o := range allowed {
		o = strings.TrimRight(strings.TrimSpace(o), "/")
		if o == "*" {
			return func(*http.Request) bool { return true }
		}
		if o != "" {
			set[strings.ToLower(o)] = struct{}{}
		}
	}
	if len(set) == 0 {
		return func(*http.Request) bool { return true }
	}
	return func(r *http.Request) bool {
		origin := r.Header.Get("Origin")
		if origin == "" {
			return true
		}
		_, ok := set[strings.ToLower(strings.TrimRight(origin, "/"))]
		return ok
	}
}
