package ws

import (
	"encoding/json"
	"strings"
	"sync"
	"time"

	"jobfinder/internal/domain/application"
	"jobfinder/internal/pkg/logger"
)

// ApplicationEvent is the wire form of application.Event.
type ApplicationEvent struct {
	Type          string `json:"type"`
	ApplicationID string `json:"application_id"`
	Timestamp     string `json:"timestamp"`
}

// Hub fans application events out to every connection of the owning user.
type Hub struct {
	mutex   sync.RWMutex
	clients map[string]map[*Client]struct{}
	logger  *logger.Logger
}

func NewHub(log *logger.Logger) *Hub {
	return &Hub{
		clients: make(map[string]map[*Client]struct{}),
		logger:  log,
	}
}

func (h *Hub) Register(client *Client) {
	if h == nil || client == nil {
		return
	}
	h.mutex.Lock()
	set, ok := h.clients[client.userID]
	if !ok {
		set = make(map[*Client]struct{})
		h.clients[client.userID] = set
	}
	set[client] = struct{}{}
	total := len(set)
	h.mutex.Unlock()

	h.logger.Debug("ws connected", "user_id", client.userID, "user_clients", total)
}

func (h *Hub) Unregister(client *Client) {
	if h == nil || client == nil {
		return
	}
	if h.remove(client) {
		h.logger.Debug("ws disconnected", "user_id", client.userID)
	}
}

// remove closes client.send exactly once.
func (h *Hub) remove(client *Client) bool {
	h.mutex.Lock()
	defer h.mutex.Unlock()

	set, ok := h.clients[client.userID]
	if !ok {
		return false
	}
	if _, ok := set[client]; !ok {
		return false
	}
	delete(set, client)
	client.closeSend()
	if len(set) == 0 {
		delete(h.clients, client.userID)
	}
	return true
}

// Publish never blocks: a client whose buffer is full is dropped.
func (h *Hub) Publish(evt application.Event) {
	if h == nil {
		return
	}
	userID := strings.TrimSpace(evt.UserID)
	if userID == "" {
		return
	}

	at := evt.At
	if at.IsZero() {
		at = time.Now()
	}
	b, err := json.Marshal(ApplicationEvent{
		Type:          string(evt.Type),
		ApplicationID: evt.ApplicationID.String(),
		Timestamp:     at.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}

	h.mutex.RLock()
	snapshot := make([]*Client, 0, len(h.clients[userID]))
	for c := range h.clients[userID] {
		snapshot = append(snapshot, c)
	}
	h.mutex.RUnlock()

	var slow []*Client
	for _, c := range snapshot {
		if !c.trySend(b) {
			slow = append(slow, c)
		}
	}
	for _, c := range slow {
		if h.remove(c) {
			h.logger.Warn("ws client dropped", "user_id", userID, "reason", "buffer_full")
		}
	}
}

func (h *Hub) ClientCount(userID string) int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return len(h.clients[userID])
}
