package ws

import (
	"sync"

	"gigflow_backend/internal/logger"
	"gigflow_backend/internal/services/dto"
)

// Manager tracks the active websocket clients per user and delivers events
// to all connections of a given user. It implements services.Notifier.
type Manager struct {
	clients    map[string]map[*Client]bool // userID -> connections
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.addClient(client)
		case client := <-m.unregister:
			m.removeClient(client)
		}
	}
}

func (m *Manager) Register(client *Client) {
	m.register <- client
}

func (m *Manager) Unregister(client *Client) {
	m.unregister <- client
}

func (m *Manager) addClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, ok := m.clients[client.UserID]
	if !ok {
		conns = make(map[*Client]bool)
		m.clients[client.UserID] = conns
	}
	conns[client] = true
	logger.Debug("ws client registered", "user_id", client.UserID, "connections", len(conns))
}

func (m *Manager) removeClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	conns, ok := m.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := conns[client]; !ok {
		return
	}

	delete(conns, client)
	close(client.Send)
	if len(conns) == 0 {
		delete(m.clients, client.UserID)
	}
	logger.Debug("ws client unregistered", "user_id", client.UserID, "connections", len(conns))
}

// Push sends the event to every active connection of the user. Delivery is
// best-effort: a connection with a full send buffer is dropped rather than
// blocking the caller.
func (m *Manager) Push(userID string, event dto.WSEvent) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients[userID] {
		select {
		case client.Send <- event:
		default:
			go m.Unregister(client)
			logger.Warn("ws client dropped: send buffer full", "user_id", userID)
		}
	}
}

// IsConnected reports whether the user has at least one active connection.
func (m *Manager) IsConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients[userID]) > 0
}

// ClientCount returns the total number of active connections.
func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	total := 0
	for _, conns := range m.clients {
		total += len(conns)
	}
	return total
}
