package orderControllers

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/Raj-baniya/copy-of-Giftology/models"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	sendBuffer = 16
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// client is one admin screen. Only its writer goroutine touches conn for writing.
type client struct {
	conn *websocket.Conn
	send chan []byte
}

// Hub pushes newly placed orders to every connected admin screen.
// Publish never waits on a client; a screen that falls behind is disconnected.
type Hub struct {
	mu      sync.Mutex
	clients map[*client]bool
	log     zerolog.Logger
}

func NewHub(log zerolog.Logger) *Hub {
	return &Hub{clients: make(map[*client]bool), log: log}
}

// GET /admin/orders/ws
func (h *Hub) OrderWebSocketHandler(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		return
	}

	cl := &client{conn: conn, send: make(chan []byte, sendBuffer)}
	h.mu.Lock()
	h.clients[cl] = true
	h.mu.Unlock()

	go h.write(cl)

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
	h.mu.Lock()
	h.drop(cl)
	h.mu.Unlock()
}

func (h *Hub) write(cl *client) {
	defer cl.conn.Close()
	for data := range cl.send {
		_ = cl.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := cl.conn.WriteMessage(websocket.TextMessage, data); err != nil {
			h.mu.Lock()
			h.drop(cl)
			h.mu.Unlock()
			return
		}
	}
}

// drop must be called with h.mu held.
func (h *Hub) drop(cl *client) {
	if !h.clients[cl] {
		return
	}
	delete(h.clients, cl)
	close(cl.send)
}

func (h *Hub) Clients() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Publish broadcasts o without its payment proof.
func (h *Hub) Publish(o models.Order) {
	data, err := json.Marshal(gin.H{"type": "new_order", "order": o})
	if err != nil {
		h.log.Warn().Err(err).Str("order_id", o.ID).Msg("could not encode order for broadcast")
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for cl := range h.clients {
		select {
		case cl.send <- data:
		default:
			h.log.Warn().Str("order_id", o.ID).Msg("dropping admin feed client that is not keeping up")
			h.drop(cl)
		}
	}
}
