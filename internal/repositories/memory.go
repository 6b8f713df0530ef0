package repositories

import (
	"context"
	"sort"
	"sync"

	"taskassistant/internal/models"
)

// MemoryStore keeps users, tasks and chat messages in process memory. It
// backs local runs without a database and the service tests. Values are
// copied in and out so callers never share slices with the store.
type MemoryStore struct {
	mu       sync.RWMutex
	users    map[string]models.User
	tasks    map[string]models.Task
	messages map[string][]models.ChatMessage
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		users:    make(map[string]models.User),
		tasks:    make(map[string]models.Task),
		messages: make(map[string][]models.ChatMessage),
	}
}

func (s *MemoryStore) Tasks() TaskRepository { return memoryTasks{s} }
func (s *MemoryStore) Users() UserRepository { return memoryUsers{s} }
func (s *MemoryStore) Chat() ChatRepository  { return memoryChat{s} }

func cloneTask(t models.Task) models.Task {
	subs := make([]models.Subtask, len(t.Subtasks))
	copy(subs, t.Subtasks)
	t.Subtasks = subs
	return t
}

type memoryTasks struct{ s *MemoryStore }

func (m memoryTasks) Store(_ context.Context, task *models.Task) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (m memoryTasks) FindByID(_ context.Context, id string) (*models.Task, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	t, ok := m.s.tasks[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := cloneTask(t)
	return &out, nil
}

func (m memoryTasks) FindByUser(_ context.Context, userID string) ([]models.Task, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	out := []models.Task{}
	for _, t := range m.s.tasks {
		if t.UserID == userID {
			out = append(out, cloneTask(t))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (m memoryTasks) Update(_ context.Context, task *models.Task) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.tasks[task.ID]; !ok {
		return ErrNotFound
	}
	m.s.tasks[task.ID] = cloneTask(*task)
	return nil
}

func (m memoryTasks) Delete(_ context.Context, id string) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	if _, ok := m.s.tasks[id]; !ok {
		return ErrNotFound
	}
	delete(m.s.tasks, id)
	return nil
}

type memoryUsers struct{ s *MemoryStore }

func (m memoryUsers) Create(_ context.Context, user *models.User) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	m.s.users[user.ID] = *user
	return nil
}

func (m memoryUsers) GetByID(_ context.Context, id string) (*models.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	u, ok := m.s.users[id]
	if !ok {
		return nil, ErrNotFound
	}
	return &u, nil
}

func (m memoryUsers) GetByUsername(_ context.Context, username string) (*models.User, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	var found *models.User
	for _, u := range m.s.users {
		if u.Username != username {
			continue
		}
		if found == nil || u.CreatedAt.Before(found.CreatedAt) {
			u := u
			found = &u
		}
	}
	if found == nil {
		return nil, ErrNotFound
	}
	return found, nil
}

type memoryChat struct{ s *MemoryStore }

func (m memoryChat) Append(_ context.Context, msgs ...models.ChatMessage) error {
	m.s.mu.Lock()
	defer m.s.mu.Unlock()
	for _, msg := range msgs {
		m.s.messages[msg.UserID] = append(m.s.messages[msg.UserID], msg)
	}
	return nil
}

func (m memoryChat) ListByUser(_ context.Context, userID string, limit int) ([]models.ChatMessage, error) {
	m.s.mu.RLock()
	defer m.s.mu.RUnlock()
	all := m.s.messages[userID]
	if limit > 0 && len(all) > limit {
		all = all[len(all)-limit:]
	}
	out := make([]models.ChatMessage, len(all))
	copy(out, all)
	return out, nil
}
