package websockets

import (
	"sync"
	"time"

	"coutupro/internal/logger"
	. "coutupro/internal/models"

	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

const (
	MessageTypeAlert = "alert"
	writeTimeout     = 5 * time.Second
)

type Message struct {
	ID        string    `json:"id"`
	Type      string    `json:"type"`
	Data      any       `json:"data,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// conn is the part of a websocket connection the manager uses.
type conn interface {
	ReadMessage() (int, []byte, error)
	WriteJSON(v any) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type client struct {
	conn conn
	mu   sync.Mutex
}

func (c *client) send(message Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeTimeout)); err != nil {
		return err
	}
	return c.conn.WriteJSON(message)
}

type Manager struct {
	mu      sync.RWMutex
	clients map[string]*client
	log     logger.Logger
}

func New() *Manager {
	return &Manager{
		clients: make(map[string]*client),
		log:     logger.New("websockets"),
	}
}

// HandleWebSocket keeps c registered until the peer disconnects. Inbound
// messages are ignored.
func (m *Manager) HandleWebSocket(c *websocket.Conn) {
	m.serve(c)
}

func (m *Manager) serve(c conn) {
	log := m.log.Function("serve")

	id := m.register(c)
	defer m.unregister(id)

	for {
		if _, _, err := c.ReadMessage(); err != nil {
			log.Debug("connection closed", "clientID", id, "error", err)
			return
		}
	}
}

func (m *Manager) register(c conn) string {
	id := uuid.NewString()

	m.mu.Lock()
	m.clients[id] = &client{conn: c}
	total := len(m.clients)
	m.mu.Unlock()

	m.log.Function("register").Debug("client connected", "clientID", id, "clients", total)
	return id
}

func (m *Manager) unregister(id string) {
	m.mu.Lock()
	c, ok := m.clients[id]
	delete(m.clients, id)
	m.mu.Unlock()

	if ok {
		_ = c.conn.Close()
	}
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) BroadcastAlert(alert Alert) {
	m.Broadcast(Message{
		ID:        uuid.NewString(),
		Type:      MessageTypeAlert,
		Data:      alert,
		Timestamp: time.Now().UTC(),
	})
}

// Broadcast sends message to every connected client and drops the ones
// that fail to receive it.
func (m *Manager) Broadcast(message Message) {
	log := m.log.Function("Broadcast")

	m.mu.RLock()
	targets := make(map[string]*client, len(m.clients))
	for id, c := range m.clients {
		targets[id] = c
	}
	m.mu.RUnlock()

	for id, c := range targets {
		if err := c.send(message); err != nil {
			log.Warn("dropping client after failed send", "clientID", id, "error", err)
			m.unregister(id)
		}
	}
}
