package realtime

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/YOHANNES7766/AmenApp/common"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const readTimeout = 60 * time.Second

// Authorizer gates channel subscriptions: a user may join a conversation's
// channel only as one of its participants.
type Authorizer interface {
	AuthorizeSubscription(ctx context.Context, userID, conversationID int64) error
}

// Handler exposes the websocket endpoint.
type Handler struct {
	hub        *Hub
	authorizer Authorizer
	logger     *zap.Logger
}

func NewHandler(hub *Hub, authorizer Authorizer, logger *zap.Logger) *Handler {
	return &Handler{
		hub:        hub,
		authorizer: authorizer,
		logger:     logger,
	}
}

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// CORS policy is enforced by the HTTP layer; the socket accepts the
		// same origins.
		return true
	},
}

type inboundFrame struct {
	Type           string `json:"type"`
	ConversationID int64  `json:"conversation_id"`
}

type ackFrame struct {
	Type    string `json:"type"`
	Channel string `json:"channel,omitempty"`
}

type errorFrame struct {
	Type  string `json:"type"`
	Kind  string `json:"kind"`
	Error string `json:"error"`
}

// Serve upgrades the request and processes subscribe/unsubscribe frames
// until the client disconnects. Runs behind the auth middleware.
func (h *Handler) Serve(c *gin.Context) {
	userID := common.CurrentUserID(c)

	ws, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade already wrote the response.
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := NewClient(userID, ws)
	h.hub.Attach(client)
	defer func() {
		h.hub.Detach(client)
		client.Close(websocket.CloseNormalClosure, "session closed")
	}()

	ws.SetReadLimit(1 << 16)
	_ = ws.SetReadDeadline(time.Now().Add(readTimeout))
	ws.SetPongHandler(func(string) error {
		return ws.SetReadDeadline(time.Now().Add(readTimeout))
	})

	h.sendFrame(client, ackFrame{Type: "connected"})

	for {
		_, raw, err := ws.ReadMessage()
		if err != nil {
			return
		}

		var frame inboundFrame
		if err := json.Unmarshal(raw, &frame); err != nil {
			h.sendFrame(client, errorFrame{Type: "error", Kind: "validation", Error: "malformed frame"})
			continue
		}

		switch frame.Type {
		case "subscribe":
			if err := h.authorizer.AuthorizeSubscription(c.Request.Context(), userID, frame.ConversationID); err != nil {
				h.sendFrame(client, errorFrame{
					Type:  "error",
					Kind:  string(common.KindOf(err)),
					Error: "subscription denied",
				})
				continue
			}
			h.hub.Subscribe(frame.ConversationID, client)
			h.sendFrame(client, ackFrame{Type: "subscribed", Channel: ChannelName(frame.ConversationID)})
		case "unsubscribe":
			h.hub.Unsubscribe(frame.ConversationID, client)
			h.sendFrame(client, ackFrame{Type: "unsubscribed", Channel: ChannelName(frame.ConversationID)})
		default:
			h.sendFrame(client, errorFrame{Type: "error", Kind: "validation", Error: "unknown frame type"})
		}
	}
}

func (h *Handler) sendFrame(client *Client, frame interface{}) {
	payload, err := json.Marshal(frame)
	if err != nil {
		return
	}
	if err := client.Send(payload); err != nil {
		h.logger.Warn("websocket send failed", zap.String("client", client.ID), zap.Error(err))
	}
}
