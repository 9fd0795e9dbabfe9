package ws

import (
	"net/http"
	"sync"
	"time"

	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/logging"
	"github.com/GriffinCanCode/PocketOS/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/PocketOS/internal/render"
	"github.com/GriffinCanCode/PocketOS/internal/shared/id"
	"github.com/bytedance/sonic"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10
	sendBuffer = 256
	maxInbound = 4096
)

// Message types
const (
	TypeRender = "render"
	TypeState  = "state"
	TypePing   = "ping"
	TypePong   = "pong"
	TypeError  = "error"
)

// Message is the envelope for everything on the stream
type Message struct {
	Type      string        `json:"type"`
	Event     *render.Event `json:"event,omitempty"`
	State     any           `json:"state,omitempty"`
	Message   string        `json:"message,omitempty"`
	Timestamp int64         `json:"timestamp"`
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Hub fans render events out to connected clients. It is a render.Sink;
// Render never blocks, and clients that fall behind are disconnected.
type Hub struct {
	mu       sync.Mutex
	clients  map[*client]struct{}
	closed   bool
	snapshot func() any
	metrics  *monitoring.Metrics
	logger   *logging.Logger
}

type client struct {
	id   id.ConnectionID
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func (c *client) close() {
	c.once.Do(func() { close(c.send) })
}

// NewHub creates a hub. snapshot supplies the state sent to each client
// on connect and on request.
func NewHub(snapshot func() any, metrics *monitoring.Metrics, logger *logging.Logger) *Hub {
	return &Hub{
		clients:  make(map[*client]struct{}),
		snapshot: snapshot,
		metrics:  metrics,
		logger:   logger.Component("ws"),
	}
}

// Render broadcasts one event
func (h *Hub) Render(e render.Event) {
	data, err := encode(Message{Type: TypeRender, Event: &e, Timestamp: e.At.Unix()})
	if err != nil {
		h.logger.Error("encode render event", zap.String("kind", string(e.Kind)), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	for c := range h.clients {
		select {
		case c.send <- data:
			h.metrics.RecordWSMessage("out", TypeRender)
		default:
			h.logger.Warn("client too slow, disconnecting", zap.Stringer("conn", c.id))
			h.removeLocked(c)
		}
	}
}

// Len returns the number of connected clients
func (h *Hub) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.clients)
}

// Close disconnects every client and refuses new ones
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.closed = true
	for c := range h.clients {
		h.removeLocked(c)
	}
}

// HandleConnection upgrades the request and streams render events until
// the client goes away.
func (h *Hub) HandleConnection(c *gin.Context) {
	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.logger.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	cl := &client{id: id.NewConnectionID(), conn: conn, send: make(chan []byte, sendBuffer)}
	if !h.add(cl) {
		conn.Close()
		return
	}
	h.logger.Info("client connected", zap.Stringer("conn", cl.id))

	go h.writePump(cl)
	h.sendState(cl)
	h.readPump(cl)
}

func (h *Hub) add(c *client) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.clients[c] = struct{}{}
	h.metrics.IncWSConnections()
	return true
}

func (h *Hub) remove(c *client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
}

func (h *Hub) removeLocked(c *client) {
	if _, ok := h.clients[c]; !ok {
		return
	}
	delete(h.clients, c)
	c.close()
	h.metrics.DecWSConnections()
}

// enqueue queues one message for c, dropping the client if it is full
func (h *Hub) enqueue(c *client, msg Message) {
	data, err := encode(msg)
	if err != nil {
		h.logger.Error("encode message", zap.String("type", msg.Type), zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.clients[c]; !ok {
		return
	}
	select {
	case c.send <- data:
		h.metrics.RecordWSMessage("out", msg.Type)
	default:
		h.removeLocked(c)
	}
}

func (h *Hub) sendState(c *client) {
	var state any
	if h.snapshot != nil {
		state = h.snapshot()
	}
	h.enqueue(c, Message{Type: TypeState, State: state, Timestamp: time.Now().Unix()})
}

func (h *Hub) readPump(c *client) {
	defer func() {
		h.remove(c)
		c.conn.Close()
		h.logger.Info("client disconnected", zap.Stringer("conn", c.id))
	}()

	c.conn.SetReadLimit(maxInbound)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.logger.Debug("websocket read error", zap.Stringer("conn", c.id), zap.Error(err))
			}
			return
		}

		var msg Message
		if err := sonic.Unmarshal(data, &msg); err != nil {
			h.enqueue(c, Message{Type: TypeError, Message: "malformed message", Timestamp: time.Now().Unix()})
			continue
		}
		h.metrics.RecordWSMessage("in", msg.Type)

		switch msg.Type {
		case TypePing:
			h.enqueue(c, Message{Type: TypePong, Timestamp: time.Now().Unix()})
		case TypeState:
			h.sendState(c)
		default:
			h.enqueue(c, Message{Type: TypeError, Message: "unknown message type", Timestamp: time.Now().Unix()})
		}
	}
}

func (h *Hub) writePump(c *client) {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case data, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

func encode(msg Message) ([]byte, error) {
	return sonic.Marshal(msg)
}
