package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskassistant/internal/llm"
	"taskassistant/internal/models"
	"taskassistant/internal/repositories"
	"taskassistant/internal/utils"
)

// TaskNotifier is told about tasks created on a user's behalf by the
// assistant.
type TaskNotifier interface {
	TaskCreated(userID string, task *models.Task)
}

type ChatOptions struct {
	// HistoryLimit is how many past messages are sent to the model.
	HistoryLimit  int
	MaxToolRounds int
	// Background drains queued requests after the reply is returned.
	Background   bool
	DrainTimeout time.Duration
}

type ChatResult struct {
	Response     string        `json:"response"`
	CreatedTasks []models.Task `json:"created_tasks"`
	// Queued counts requests left to a background drain.
	Queued int `json:"queued"`
}

type ChatService interface {
	Chat(ctx context.Context, userID, message string) (*ChatResult, error)
	History(ctx context.Context, userID string) ([]models.ChatMessage, error)
	// Close waits for background drains to finish.
	Close()
}

type chatService struct {
	llm        *llm.Client
	users      repositories.UserRepository
	chats      repositories.ChatRepository
	tasks      TaskService
	decomposer DecompositionService
	notifier   TaskNotifier
	queue      *PendingQueue
	opts       ChatOptions
	log        *zap.Logger
	now        func() time.Time

	mu      sync.Mutex
	history map[string][]models.ChatMessage
	closed  bool
	drains  sync.WaitGroup
}

func NewChatService(
	client *llm.Client,
	users repositories.UserRepository,
	chats repositories.ChatRepository,
	tasks TaskService,
	decomposer DecompositionService,
	notifier TaskNotifier,
	opts ChatOptions,
	log *zap.Logger,
) ChatService {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.HistoryLimit <= 0 {
		opts.HistoryLimit = 10
	}
	if opts.MaxToolRounds <= 0 {
		opts.MaxToolRounds = 3
	}
	if opts.DrainTimeout <= 0 {
		opts.DrainTimeout = 2 * time.Minute
	}
	return &chatService{
		llm:        client,
		users:      users,
		chats:      chats,
		tasks:      tasks,
		decomposer: decomposer,
		notifier:   notifier,
		queue:      NewPendingQueue(),
		opts:       opts,
		log:        log.Named("chat"),
		now:        time.Now,
		history:    make(map[string][]models.ChatMessage),
	}
}

var chatTools = []llm.Tool{
	{
		Name:        "create_task",
		Description: "Create a single task for the user.",
		Params: []llm.ToolParam{
			{Name: "title", Description: "Short task title", Required: true},
			{Name: "description", Description: "Optional details"},
			{Name: "priority", Description: "Task priority", Enum: []string{"low", "medium", "high"}},
			{Name: "deadline", Description: "YYYY-MM-DD or YYYY-MM-DDTHH:MM"},
		},
	},
	{
		Name:        "decompose_task",
		Description: "Break a larger goal into a task with subtasks.",
		Params: []llm.ToolParam{
			{Name: "text", Description: "The user's description of the goal", Required: true},
		},
	},
}

func (s *chatService) Chat(ctx context.Context, userID, message string) (*ChatResult, error) {
	message = strings.TrimSpace(message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := s.now().UTC()
	past := s.recent(ctx, userID)

	msgs := make([]llm.Message, 0, len(past)+1)
	for _, m := range past {
		role := llm.RoleUser
		if m.Role == models.RoleAssistant {
			role = llm.RoleAssistant
		}
		msgs = append(msgs, llm.Message{Role: role, Content: m.Content})
	}
	msgs = append(msgs, llm.Message{Role: llm.RoleUser, Content: message})

	reply := s.converse(ctx, userID, chatSystemPrompt(now), msgs)

	s.remember(ctx, userID,
		models.ChatMessage{ID: uuid.NewString(), UserID: userID, Role: models.RoleUser, Content: message, CreatedAt: now},
		models.ChatMessage{ID: uuid.NewString(), UserID: userID, Role: models.RoleAssistant, Content: reply, CreatedAt: s.now().UTC()},
	)

	result := &ChatResult{Response: reply, CreatedTasks: []models.Task{}}
	if n := s.queue.Count(userID); n > 0 && s.startBackgroundDrain(userID) {
		result.Queued = n
		return result, nil
	}
	result.CreatedTasks = s.drain(ctx, userID)
	return result, nil
}

// converse runs the tool loop and returns the final reply text.
func (s *chatService) converse(ctx context.Context, userID, system string, msgs []llm.Message) string {
	var acks []string
	for round := 0; ; round++ {
		resp := s.llm.Chat(ctx, llm.ChatRequest{System: system, Messages: msgs, Tools: chatTools})
		if resp.Degraded || len(resp.ToolCalls) == 0 || round >= s.opts.MaxToolRounds {
			reply := strings.TrimSpace(resp.Content)
			if reply == "" {
				reply = strings.Join(acks, " ")
			}
			if reply == "" {
				reply = "Done."
			}
			return reply
		}

		msgs = append(msgs, llm.Message{Role: llm.RoleAssistant, Content: resp.Content, ToolCalls: resp.ToolCalls})
		for _, call := range resp.ToolCalls {
			out := s.runTool(userID, call)
			acks = append(acks, out)
			msgs = append(msgs, llm.Message{
				Role:       llm.RoleTool,
				Content:    out,
				ToolCallID: call.ID,
				ToolName:   call.Name,
			})
		}
	}
}

// runTool enqueues the request and returns the acknowledgement shown to
// the model. Tasks are created later by drain.
func (s *chatService) runTool(userID string, call llm.ToolCall) string {
	arg := func(name string) string {
		v, ok := call.Arguments[name]
		if !ok || v == nil {
			return ""
		}
		return strings.TrimSpace(fmt.Sprint(v))
	}

	req := models.PendingTaskRequest{UserID: userID, EnqueuedAt: s.now().UTC()}
	var ack string
	switch call.Name {
	case "create_task":
		req.Kind = models.PendingCreate
		req.Title = arg("title")
		if req.Title == "" {
			return "Error: title is required."
		}
		req.Description = arg("description")
		req.Priority = arg("priority")
		req.Deadline = arg("deadline")
		ack = fmt.Sprintf("Task '%s' has been queued for creation.", req.Title)
	case "decompose_task":
		req.Kind = models.PendingDecompose
		req.Text = arg("text")
		if req.Text == "" {
			return "Error: text is required."
		}
		ack = fmt.Sprintf("I'll break down '%s' into subtasks for you.", req.Text)
	default:
		s.log.Warn("[chat][tool][unknown]", zap.String("tool", call.Name))
		return fmt.Sprintf("Error: unknown tool %q.", call.Name)
	}

	s.queue.Enqueue(req)
	s.log.Info("[chat][tool][queued]", zap.String("tool", call.Name), zap.String("user_id", userID))
	return ack
}

func (s *chatService) startBackgroundDrain(userID string) bool {
	if !s.opts.Background {
		return false
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return false
	}
	s.drains.Add(1)
	go func() {
		defer s.drains.Done()
		ctx, cancel := context.WithTimeout(context.Background(), s.opts.DrainTimeout)
		defer cancel()
		s.drain(ctx, userID)
	}()
	return true
}

// drain materializes the user's queued requests. A failed request is
// logged and skipped; earlier ones stay persisted.
func (s *chatService) drain(ctx context.Context, userID string) []models.Task {
	created := []models.Task{}
	for _, req := range s.queue.Drain(userID) {
		var (
			task *models.Task
			err  error
		)
		switch req.Kind {
		case models.PendingCreate:
			in := models.TaskCreate{
				Title:    req.Title,
				Deadline: utils.ParseDeadline(req.Deadline),
				Priority: models.NormalizePriority(req.Priority),
			}
			if req.Description != "" {
				desc := req.Description
				in.Description = &desc
			}
			task, err = s.tasks.Create(ctx, userID, in)
		case models.PendingDecompose:
			task, err = s.decomposer.Decompose(ctx, req.Text, userID)
		}
		if err != nil {
			s.log.Error("[chat][drain][err]", zap.String("kind", string(req.Kind)), zap.String("user_id", userID), zap.Error(err))
			continue
		}
		created = append(created, *task)
		if s.notifier != nil {
			s.notifier.TaskCreated(userID, task)
		}
	}
	if len(created) > 0 {
		s.log.Info("[chat][drain][ok]", zap.String("user_id", userID), zap.Int("created", len(created)))
	}
	return created
}

// recent returns the last HistoryLimit messages, loading them from the
// repository on first use.
func (s *chatService) recent(ctx context.Context, userID string) []models.ChatMessage {
	s.mu.Lock()
	h, ok := s.history[userID]
	s.mu.Unlock()
	if !ok && s.chats != nil {
		loaded, err := s.chats.ListByUser(ctx, userID, s.opts.HistoryLimit)
		if err != nil {
			s.log.Warn("[chat][history][err]", zap.String("user_id", userID), zap.Error(err))
		}
		s.mu.Lock()
		if _, ok := s.history[userID]; !ok {
			s.history[userID] = loaded
		}
		h = s.history[userID]
		s.mu.Unlock()
	}
	out := make([]models.ChatMessage, len(h))
	copy(out, h)
	return out
}

func (s *chatService) remember(ctx context.Context, userID string, msgs ...models.ChatMessage) {
	s.mu.Lock()
	h := append(s.history[userID], msgs...)
	if len(h) > s.opts.HistoryLimit {
		h = append([]models.ChatMessage(nil), h[len(h)-s.opts.HistoryLimit:]...)
	}
	s.history[userID] = h
	s.mu.Unlock()

	if s.chats == nil {
		return
	}
	if err := s.chats.Append(ctx, msgs...); err != nil {
		s.log.Error("[chat][history][append][err]", zap.String("user_id", userID), zap.Error(err))
	}
}

func (s *chatService) History(ctx context.Context, userID string) ([]models.ChatMessage, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if s.chats == nil {
		return s.recent(ctx, userID), nil
	}
	return s.chats.ListByUser(ctx, userID, 0)
}

func (s *chatService) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
	s.drains.Wait()
}
