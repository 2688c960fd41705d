package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"

	"github.com/bestball/drafttrack/go/internal/events"
)

// Config holds WebSocket connection settings.
type Config struct {
	WriteTimeout    time.Duration
	PingInterval    time.Duration
	SendBufferSize  int
	ReadBufferSize  int
	WriteBufferSize int
	CheckOrigin     func(r *http.Request) bool
}

func DefaultConfig() Config {
	return Config{
		WriteTimeout:    10 * time.Second,
		PingInterval:    30 * time.Second,
		SendBufferSize:  64,
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			// Extension clients send chrome-extension:// origins; CORS
			// policy is enforced at the HTTP layer.
			return true
		},
	}
}

// Broadcaster fans recorded-pick events out to draft-board clients watching
// a draft over WebSocket. It implements events.Publisher so it can sit next
// to the JetStream publisher in a fanout.
type Broadcaster struct {
	mu          sync.RWMutex
	connections map[string]map[*connection]bool // keyed by external draft id

	upgrader websocket.Upgrader
	config   Config
}

type connection struct {
	draftID string
	conn    *websocket.Conn
	send    chan []byte
}

func NewBroadcaster(config Config) *Broadcaster {
	return &Broadcaster{
		connections: make(map[string]map[*connection]bool),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  config.ReadBufferSize,
			WriteBufferSize: config.WriteBufferSize,
			CheckOrigin:     config.CheckOrigin,
		},
		config: config,
	}
}

// HandleWS upgrades GET /api/live?draftId=... to a WebSocket subscription
// for one draft's events.
func (b *Broadcaster) HandleWS(w http.ResponseWriter, r *http.Request) {
	draftID := r.URL.Query().Get("draftId")
	if draftID == "" {
		http.Error(w, "draftId is required", http.StatusBadRequest)
		return
	}

	ws, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := &connection{
		draftID: draftID,
		conn:    ws,
		send:    make(chan []byte, b.config.SendBufferSize),
	}
	b.register(c)

	log.Info().Str("draft_id", draftID).Msg("draft board client connected")

	go b.writePump(c)
	go b.readPump(c)
}

// Publish sends the event to every client watching its draft. A slow client
// loses the message rather than blocking the pick path.
func (b *Broadcaster) Publish(ctx context.Context, event events.DraftEvent) error {
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}

	b.mu.RLock()
	defer b.mu.RUnlock()
	for c := range b.connections[event.DraftID] {
		select {
		case c.send <- data:
		default:
			log.Warn().Str("draft_id", event.DraftID).Msg("dropping event for slow client")
		}
	}
	return nil
}

func (b *Broadcaster) register(c *connection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.connections[c.draftID] == nil {
		b.connections[c.draftID] = make(map[*connection]bool)
	}
	b.connections[c.draftID][c] = true
}

func (b *Broadcaster) unregister(c *connection) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if conns, ok := b.connections[c.draftID]; ok {
		if conns[c] {
			delete(conns, c)
			close(c.send)
			if len(conns) == 0 {
				delete(b.connections, c.draftID)
			}
		}
	}
}

func (b *Broadcaster) writePump(c *connection) {
	ticker := time.NewTicker(b.config.PingInterval)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case msg, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(b.config.WriteTimeout))
			if !ok {
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(b.config.WriteTimeout))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// readPump drains client frames so pong handling works and closes get seen.
func (b *Broadcaster) readPump(c *connection) {
	defer func() {
		b.unregister(c)
		c.conn.Close()
		log.Info().Str("draft_id", c.draftID).Msg("draft board client disconnected")
	}()

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}
