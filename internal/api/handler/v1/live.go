package v1

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/yizeng/gab/gin/gorm/raffle/internal/api/handler/v1/response"
	"github.com/yizeng/gab/gin/gorm/raffle/internal/domain"
)

const (
	liveWriteWait  = 10 * time.Second
	livePongWait   = 60 * time.Second
	livePingPeriod = (livePongWait * 9) / 10
	liveSendBuffer = 16
)

type liveEvent struct {
	Type string                `json:"type"`
	Draw response.DrawResponse `json:"draw"`
}

type liveClient struct {
	conn   *websocket.Conn
	send   chan []byte
	userID uint
}

// LiveHandler pushes every completed draw to the connected managers.
type LiveHandler struct {
	upgrader   websocket.Upgrader
	uSvc       UserService
	clients    map[*liveClient]struct{}
	broadcast  chan []byte
	register   chan *liveClient
	unregister chan *liveClient
	done       chan struct{}
}

func NewLiveHandler(uSvc UserService, allowedOrigins []string) *LiveHandler {
	origins := make(map[string]struct{}, len(allowedOrigins))
	for _, o := range allowedOrigins {
		origins[o] = struct{}{}
	}

	return &LiveHandler{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin: func(r *http.Request) bool {
				origin := r.Header.Get("Origin")
				if origin == "" || len(origins) == 0 {
					return true
				}
				_, ok := origins[origin]
				return ok
			},
		},
		uSvc:       uSvc,
		clients:    make(map[*liveClient]struct{}),
		broadcast:  make(chan []byte, liveSendBuffer),
		register:   make(chan *liveClient),
		unregister: make(chan *liveClient),
		done:       make(chan struct{}),
	}
}

// Run owns the client set until ctx is done.
func (h *LiveHandler) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			close(h.done)
			for client := range h.clients {
				delete(h.clients, client)
				close(client.send)
			}
			return
		case client := <-h.register:
			h.clients[client] = struct{}{}
		case client := <-h.unregister:
			if _, ok := h.clients[client]; ok {
				delete(h.clients, client)
				close(client.send)
			}
		case message := <-h.broadcast:
			for client := range h.clients {
				select {
				case client.send <- message:
				default:
					delete(h.clients, client)
					close(client.send)
				}
			}
		}
	}
}

// Announce never blocks the caller; events are dropped when the hub falls behind.
func (h *LiveHandler) Announce(result domain.DrawResult) {
	message, err := json.Marshal(liveEvent{
		Type: "draw",
		Draw: response.NewDrawResponse(result),
	})
	if err != nil {
		zap.L().Error("failed to encode draw event", zap.Error(err))
		return
	}

	select {
	case h.broadcast <- message:
	default:
		zap.L().Warn("live feed is full, draw event dropped", zap.Uint("gift_id", result.GiftID))
	}
}

// HandleWebSocket godoc
// @Summary      Live draw feed
// @Description  Upgrades to a WebSocket that receives a message for every completed draw.
// @Tags         reports
// @Success      101  {string}  string  "Switching Protocols to WebSocket"
// @Failure      401  {object}  response.Err
// @Failure      403  {object}  response.Err
// @Router       /Reports/live [get]
// @Security     BearerAuth
func (h *LiveHandler) HandleWebSocket(ctx *gin.Context) {
	user, respErr := getUserFromContext(ctx, h.uSvc)
	if respErr != nil {
		response.RenderErr(ctx, respErr)
		return
	}

	conn, err := h.upgrader.Upgrade(ctx.Writer, ctx.Request, nil)
	if err != nil {
		zap.L().Info("websocket upgrade failed", zap.Uint("user_id", user.ID), zap.Error(err))
		return
	}

	client := &liveClient{
		conn:   conn,
		send:   make(chan []byte, liveSendBuffer),
		userID: user.ID,
	}
	select {
	case h.register <- client:
	case <-h.done:
		conn.Close()
		return
	}

	go client.writePump()
	go client.readPump(h)
}

func (c *liveClient) writePump() {
	ticker := time.NewTicker(livePingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(liveWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump only watches for the connection going away; the feed is one-way.
func (c *liveClient) readPump(h *LiveHandler) {
	defer func() {
		select {
		case h.unregister <- c:
		case <-h.done:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(512)
	_ = c.conn.SetReadDeadline(time.Now().Add(livePongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(livePongWait))
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				zap.L().Info("live feed connection closed", zap.Uint("user_id", c.userID), zap.Error(err))
			}
			return
		}
	}
}
