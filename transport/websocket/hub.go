package websocket

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gridgames/arena/game/engine"
	"github.com/gridgames/arena/internal/log"
)

var logger = log.WithComponent("websocket")

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer.
	maxMessageSize = 512
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// Allow all origins in development
		// TODO: Configure this for production
		return true
	},
}

// Message represents a WebSocket message
type Message struct {
	MatchID    string             `json:"match_id"`
	MatchState *engine.MatchState `json:"match_state,omitempty"`
	Event      string             `json:"event,omitempty"`
	Data       interface{}        `json:"data,omitempty"`
}

// Client represents a WebSocket spectator connection
type Client struct {
	hub     *Hub
	conn    *websocket.Conn
	send    chan []byte
	matchID string
}

// Hub maintains the set of active spectators and broadcasts match state.
// All map access happens on the Run goroutine; producers only touch the
// channels, so BroadcastToMatch is safe from any goroutine.
type Hub struct {
	// Registered clients by match ID
	matches map[string]map[*Client]bool

	// Outbound messages to fan out
	broadcast chan *Message

	// Register requests from clients
	register chan *Client

	// Unregister requests from clients
	unregister chan *Client
}

// NewHub creates a new WebSocket hub
func NewHub() *Hub {
	return &Hub{
		matches:    make(map[string]map[*Client]bool),
		broadcast:  make(chan *Message, engine.WebSocketBufferSize),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run starts the hub's event loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.registerClient(client)

		case client := <-h.unregister:
			h.unregisterClient(client)

		case message := <-h.broadcast:
			h.broadcastMessage(message)
		}
	}
}

// ServeWS handles WebSocket requests from spectators
func (h *Hub) ServeWS(w http.ResponseWriter, r *http.Request, matchID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	client := &Client{
		hub:     h,
		conn:    conn,
		send:    make(chan []byte, engine.WebSocketBufferSize),
		matchID: matchID,
	}

	client.hub.register <- client

	// Start client goroutines
	go client.writePump()
	go client.readPump()
}

// BroadcastToMatch sends a match state update to all spectators of a
// match. It never blocks: if the hub is saturated the update is dropped.
func (h *Hub) BroadcastToMatch(matchID string, state *engine.MatchState) {
	message := &Message{
		MatchID:    matchID,
		MatchState: state,
		Event:      "state_update",
	}

	select {
	case h.broadcast <- message:
	default:
		logger.Warn().Str("match_id", matchID).Msg("broadcast queue full, dropping state update")
	}
}

// BroadcastEvent sends a custom event to all spectators of a match
func (h *Hub) BroadcastEvent(matchID string, event string, data interface{}) {
	message := &Message{
		MatchID: matchID,
		Event:   event,
		Data:    data,
	}

	select {
	case h.broadcast <- message:
	default:
		logger.Warn().Str("match_id", matchID).Str("event", event).Msg("broadcast queue full, dropping event")
	}
}

// registerClient adds a spectator to a match
func (h *Hub) registerClient(client *Client) {
	if h.matches[client.matchID] == nil {
		h.matches[client.matchID] = make(map[*Client]bool)
	}
	h.matches[client.matchID][client] = true

	logger.Debug().
		Str("match_id", client.matchID).
		Int("clients", len(h.matches[client.matchID])).
		Msg("spectator registered")
}

// unregisterClient removes a spectator from a match
func (h *Hub) unregisterClient(client *Client) {
	if clients, ok := h.matches[client.matchID]; ok {
		if _, ok := clients[client]; ok {
			delete(clients, client)
			close(client.send)

			// Clean up empty matches
			if len(clients) == 0 {
				delete(h.matches, client.matchID)
			}

			logger.Debug().
				Str("match_id", client.matchID).
				Int("clients", len(clients)).
				Msg("spectator unregistered")
		}
	}
}

// broadcastMessage sends a message to all spectators of a match
func (h *Hub) broadcastMessage(message *Message) {
	data, err := json.Marshal(message)
	if err != nil {
		logger.Error().Err(err).Msg("failed to marshal broadcast message")
		return
	}

	if clients, ok := h.matches[message.MatchID]; ok {
		for client := range clients {
			select {
			case client.send <- data:
			default:
				// Client's send channel is full, close it
				h.unregisterClient(client)
			}
		}
	}
}

// readPump pumps messages from the WebSocket connection to the hub
func (c *Client) readPump() {
	defer func() {
		c.hub.unregister <- c
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		// We don't process incoming messages from spectators currently
		// Just keep the connection alive
		_, _, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				logger.Warn().Err(err).Msg("websocket read error")
			}
			break
		}
	}
}

// writePump pumps messages from the hub to the WebSocket connection
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// The hub closed the channel
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			w, err := c.conn.NextWriter(websocket.TextMessage)
			if err != nil {
				return
			}
			w.Write(message)

			// Add queued messages to the current WebSocket message
			n := len(c.send)
			for i := 0; i < n; i++ {
				w.Write([]byte{'\n'})
				w.Write(<-c.send)
			}

			if err := w.Close(); err != nil {
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
