package handlers

import (
	"context"
	"encoding/json"
	"sync"

	"github.com/campaign-tracker/backend/internal/auth"
	"github.com/campaign-tracker/backend/internal/events"
	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// wsConn is the part of *websocket.Conn the hub writes to.
type wsConn interface {
	WriteMessage(messageType int, data []byte) error
}

// WSHub pushes campaign events to the WebSocket connections of the campaign
// owner. It holds no campaign data of its own.
type WSHub struct {
	issuer      *auth.Issuer
	subscriber  events.Subscriber
	log         *zap.Logger
	mu          sync.RWMutex
	connections map[uuid.UUID][]wsConn
}

func NewWSHub(issuer *auth.Issuer, subscriber events.Subscriber, log *zap.Logger) *WSHub {
	return &WSHub{
		issuer:      issuer,
		subscriber:  subscriber,
		log:         log,
		connections: make(map[uuid.UUID][]wsConn),
	}
}

// Start subscribes to campaign events until ctx is cancelled.
func (h *WSHub) Start(ctx context.Context) error {
	return h.subscriber.Subscribe(ctx, events.ChannelCampaign, h.dispatch)
}

func (h *WSHub) dispatch(event events.Event) {
	if !event.Valid() {
		h.log.Warn("campaign event without owner", zap.String("type", event.Type))
		return
	}
	h.SendToUser(event.Payload.OwnerID, event)
}

func (h *WSHub) SendToUser(userID uuid.UUID, event events.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()

	for _, conn := range h.connections[userID] {
		if err := conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.log.Debug("ws write failed", zap.String("user_id", userID.String()), zap.Error(err))
		}
	}
}

func (h *WSHub) register(userID uuid.UUID, conn wsConn) {
	h.mu.Lock()
	h.connections[userID] = append(h.connections[userID], conn)
	h.mu.Unlock()
}

func (h *WSHub) unregister(userID uuid.UUID, conn wsConn) {
	h.mu.Lock()
	defer h.mu.Unlock()

	conns := h.connections[userID]
	for i, c := range conns {
		if c == conn {
			h.connections[userID] = append(conns[:i], conns[i+1:]...)
			break
		}
	}
	if len(h.connections[userID]) == 0 {
		delete(h.connections, userID)
	}
}

// WSUpgradeMiddleware checks for websocket upgrade
func WSUpgradeMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	}
}

func (h *WSHub) HandleWS(conn *websocket.Conn) {
	tokenStr := conn.Query("token")
	if tokenStr == "" {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"missing token"}`))
		conn.Close()
		return
	}

	claims, err := h.issuer.Parse(tokenStr, auth.TokenTypeAccess)
	if err != nil {
		_ = conn.WriteMessage(websocket.TextMessage, []byte(`{"error":"invalid token"}`))
		conn.Close()
		return
	}

	userID := claims.UserID
	h.register(userID, conn)
	defer func() {
		h.unregister(userID, conn)
		conn.Close()
	}()

	// Read loop (keep alive / pings)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
}
