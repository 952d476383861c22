package ws

import (
	"strings"
	"sync"

	"github.com/Juantrevi/next-match/internal/logger"
	"github.com/Juantrevi/next-match/internal/realtime"
)

// OutgoingEvent is the envelope written to subscribed connections.
type OutgoingEvent struct {
	Channel string      `json:"channel"`
	Event   string      `json:"event"`
	Payload interface{} `json:"payload"`
}

// Manager is the websocket hub. Connections subscribe to named channels;
// services publish events without knowing who is listening. Implements
// realtime.Publisher.
type Manager struct {
	clients    map[*Client]bool
	channels   map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	publish    chan OutgoingEvent
	mu         sync.RWMutex
}

var _ realtime.Publisher = (*Manager)(nil)

func NewManager() *Manager {
	return &Manager{
		clients:    make(map[*Client]bool),
		channels:   make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		publish:    make(chan OutgoingEvent, 256),
	}
}

func (m *Manager) Run() {
	for {
		select {
		case client := <-m.register:
			m.mu.Lock()
			m.clients[client] = true
			m.mu.Unlock()
			logger.Debug("websocket client connected", "user_id", client.UserID, "total", m.ClientCount())

		case client := <-m.unregister:
			m.removeClient(client)

		case event := <-m.publish:
			m.fanOut(event)
		}
	}
}

// Publish queues an event for every subscriber of the channel. Never blocks
// the caller; if the hub is saturated the event is dropped and logged.
func (m *Manager) Publish(channel, event string, payload interface{}) {
	select {
	case m.publish <- OutgoingEvent{Channel: channel, Event: event, Payload: payload}:
	default:
		logger.Warn("websocket publish queue full, dropping event", "channel", channel, "event", event)
	}
}

// Subscribe attaches the client to a channel after authorization.
func (m *Manager) Subscribe(client *Client, channel string) bool {
	if !CanSubscribe(client.UserID, channel) {
		logger.Warn("websocket subscription denied", "user_id", client.UserID, "channel", channel)
		return false
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.channels[channel] == nil {
		m.channels[channel] = make(map[*Client]bool)
	}
	m.channels[channel][client] = true
	return true
}

func (m *Manager) Unsubscribe(client *Client, channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.dropSubscription(client, channel)
}

// IsUserConnected reports whether any connection for the user is open.
func (m *Manager) IsUserConnected(userID string) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	for client := range m.clients {
		if client.UserID == userID {
			return true
		}
	}
	return false
}

// ConnectedUserIDs returns the distinct users with an open connection.
func (m *Manager) ConnectedUserIDs() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	seen := make(map[string]bool)
	var ids []string
	for client := range m.clients {
		if !seen[client.UserID] {
			seen[client.UserID] = true
			ids = append(ids, client.UserID)
		}
	}
	return ids
}

func (m *Manager) ClientCount() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) fanOut(event OutgoingEvent) {
	m.mu.RLock()
	subscribers := make([]*Client, 0, len(m.channels[event.Channel]))
	for client := range m.channels[event.Channel] {
		subscribers = append(subscribers, client)
	}
	m.mu.RUnlock()

	for _, client := range subscribers {
		select {
		case client.Send <- event:
		default:
			// The client cannot keep up; drop the connection.
			go func(c *Client) { m.unregister <- c }(client)
		}
	}
}

func (m *Manager) removeClient(client *Client) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.clients[client]; !ok {
		return
	}

	for channel := range m.channels {
		m.dropSubscription(client, channel)
	}
	close(client.Send)
	delete(m.clients, client)
	logger.Debug("websocket client disconnected", "user_id", client.UserID, "total", len(m.clients))
}

// dropSubscription assumes the caller holds the write lock.
func (m *Manager) dropSubscription(client *Client, channel string) {
	subs, ok := m.channels[channel]
	if !ok {
		return
	}
	delete(subs, client)
	if len(subs) == 0 {
		delete(m.channels, channel)
	}
}

// CanSubscribe authorizes a channel for a user: their own private channel,
// or a conversation channel they are one end of. User ids contain hyphens,
// so the pair channel is matched by prefix and suffix rather than splitting.
func CanSubscribe(userID, channel string) bool {
	if channel == realtime.ChannelForUser(userID) {
		return true
	}

	const pairPrefix = "private-chat-"
	if !strings.HasPrefix(channel, pairPrefix) {
		return false
	}

	pair := strings.TrimPrefix(channel, pairPrefix)
	return strings.HasPrefix(pair, userID+"-") || strings.HasSuffix(pair, "-"+userID)
}
