package realtime

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"taskassistant/internal/models"
)

const EventTaskCreated = "task_created"

type Event struct {
	Type string       `json:"type"`
	Task *models.Task `json:"task,omitempty"`
	At   time.Time    `json:"at"`
}

// TaskHub fans task events out to each user's open websocket streams.
type TaskHub struct {
	mu    sync.RWMutex
	users map[string]map[*Conn]struct{}
	log   *zap.Logger
}

func NewTaskHub(log *zap.Logger) *TaskHub {
	if log == nil {
		log = zap.NewNop()
	}
	return &TaskHub{
		users: make(map[string]map[*Conn]struct{}),
		log:   log.Named("hub"),
	}
}

func (h *TaskHub) Register(userID string, conn *Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.users[userID] == nil {
		h.users[userID] = make(map[*Conn]struct{})
	}
	h.users[userID][conn] = struct{}{}
}

func (h *TaskHub) Unregister(userID string, conn *Conn) {
	h.mu.Lock()
	if conns, ok := h.users[userID]; ok {
		delete(conns, conn)
		if len(conns) == 0 {
			delete(h.users, userID)
		}
	}
	h.mu.Unlock()
	_ = conn.Close()
}

func (h *TaskHub) Subscribers(userID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.users[userID])
}

func (h *TaskHub) Publish(userID string, ev Event) {
	h.mu.RLock()
	conns := make([]*Conn, 0, len(h.users[userID]))
	for c := range h.users[userID] {
		conns = append(conns, c)
	}
	h.mu.RUnlock()

	for _, c := range conns {
		if err := c.WriteJSON(ev); err != nil {
			h.log.Warn("[hub][publish][err]", zap.String("user_id", userID), zap.Error(err))
			h.Unregister(userID, c)
		}
	}
}

// TaskCreated publishes a task_created event.
func (h *TaskHub) TaskCreated(userID string, task *models.Task) {
	h.Publish(userID, Event{Type: EventTaskCreated, Task: task, At: time.Now().UTC()})
}
