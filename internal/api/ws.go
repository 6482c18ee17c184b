package api

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"encore/internal/game"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	wsWriteWait  = 10 * time.Second
	wsPingPeriod = 30 * time.Second
	wsSendBuffer = 8
)

// Local-only transport; cross-origin checks add nothing here.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(*http.Request) bool { return true },
}

// hub fans full state snapshots out to every connected client. Broadcast
// only; the websocket carries no client-to-server intents, those go over
// HTTP like everything else.
type hub struct {
	log     *slog.Logger
	mu      sync.Mutex
	clients map[string]*wsClient
}

type wsClient struct {
	id   string
	conn *websocket.Conn
	send chan []byte
}

func newHub(logger *slog.Logger) *hub {
	return &hub{log: logger, clients: make(map[string]*wsClient)}
}

func (h *hub) handleUpgrade(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("websocket upgrade failed", "err", err)
		return
	}
	c := &wsClient{
		id:   uuid.NewString(),
		conn: conn,
		send: make(chan []byte, wsSendBuffer),
	}
	h.mu.Lock()
	h.clients[c.id] = c
	h.mu.Unlock()
	h.log.Debug("websocket client connected", "client", c.id)

	go h.writePump(c)
	go h.readPump(c)
}

func (h *hub) remove(c *wsClient) {
	h.mu.Lock()
	if _, ok := h.clients[c.id]; ok {
		delete(h.clients, c.id)
		close(c.send)
	}
	h.mu.Unlock()
	_ = c.conn.Close()
}

// readPump discards inbound frames; it exists to notice the peer going away.
func (h *hub) readPump(c *wsClient) {
	defer h.remove(c)
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			h.log.Debug("websocket client gone", "client", c.id)
			return
		}
	}
}

func (h *hub) writePump(c *wsClient) {
	ticker := time.NewTicker(wsPingPeriod)
	defer func() {
		ticker.Stop()
		_ = c.conn.Close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(wsWriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}

// broadcastState serializes one snapshot and queues it on every client. Slow
// clients drop frames rather than block the store's notify path.
func (h *hub) broadcastState(s game.State) {
	body, err := json.Marshal(map[string]any{"type": "state", "state": s})
	if err != nil {
		h.log.Error("snapshot marshal failed", "err", err)
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, c := range h.clients {
		select {
		case c.send <- body:
		default:
			h.log.Debug("dropping frame for slow client", "client", c.id)
		}
	}
}
