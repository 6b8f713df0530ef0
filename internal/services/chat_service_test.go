package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap/zaptest"

	"taskassistant/internal/llm"
	"taskassistant/internal/models"
	"taskassistant/internal/repositories"
)

type chatFixture struct {
	svc      *chatService
	store    *repositories.MemoryStore
	notifier *recordingNotifier
}

func newChatFixture(t *testing.T, client *llm.Client, opts ChatOptions) chatFixture {
	t.Helper()
	store := repositories.NewMemoryStore()
	seedUser(t, store, "u1")
	log := zaptest.NewLogger(t)

	// decomposition and support see an offline client so they fall back
	offline := offlineClient(t)
	tasks := NewTaskService(store.Tasks(), store.Users(), NewSupportService(offline, log), log)
	decomposer := NewDecompositionService(offline, store.Tasks(), store.Users(), log)
	notifier := &recordingNotifier{}

	svc := NewChatService(client, store.Users(), store.Chat(), tasks, decomposer, notifier, opts, log).(*chatService)
	return chatFixture{svc: svc, store: store, notifier: notifier}
}

func toolCall(id, name string, args map[string]any) *llm.ChatResponse {
	return &llm.ChatResponse{ToolCalls: []llm.ToolCall{{ID: id, Name: name, Arguments: args}}}
}

func TestChat_UnavailableWithoutKey(t *testing.T) {
	f := newChatFixture(t, offlineClient(t), ChatOptions{})
	ctx := context.Background()

	res, err := f.svc.Chat(ctx, "u1", "hello")
	require.NoError(t, err)
	assert.Equal(t, llm.UnavailableMessage, res.Response)
	assert.Empty(t, res.CreatedTasks)

	history, err := f.svc.History(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, models.RoleUser, history[0].Role)
	assert.Equal(t, llm.UnavailableMessage, history[1].Content)
}

func TestChat_UnknownUserAndEmptyMessage(t *testing.T) {
	f := newChatFixture(t, offlineClient(t), ChatOptions{})

	_, err := f.svc.Chat(context.Background(), "ghost", "hi")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = f.svc.History(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrUserNotFound)
	_, err = f.svc.Chat(context.Background(), "u1", "  ")
	assert.ErrorIs(t, err, ErrInvalidInput)
}

func TestChat_CreateTaskToolSyncDrain(t *testing.T) {
	p := &scriptedProvider{chats: []*llm.ChatResponse{
		toolCall("c1", "create_task", map[string]any{"title": "Buy milk", "priority": "high", "deadline": "2025-06-03"}),
		{Content: "Added it to your list!"},
	}}
	f := newChatFixture(t, newTestClient(t, p), ChatOptions{})

	res, err := f.svc.Chat(context.Background(), "u1", "remind me to buy milk tomorrow")
	require.NoError(t, err)
	assert.Equal(t, "Added it to your list!", res.Response)
	require.Len(t, res.CreatedTasks, 1)

	task := res.CreatedTasks[0]
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, models.PriorityHigh, task.Priority)
	require.NotNil(t, task.Deadline)
	assert.Equal(t, time.Date(2025, 6, 3, 23, 59, 59, 0, time.UTC), *task.Deadline)
	assert.Equal(t, 1, f.notifier.count())
	assert.Zero(t, f.svc.queue.Len())

	// the second model call sees the tool result
	require.Len(t, p.chatReqs, 2)
	last := p.chatReqs[1].Messages[len(p.chatReqs[1].Messages)-1]
	assert.Equal(t, llm.RoleTool, last.Role)
	assert.Equal(t, "c1", last.ToolCallID)
	assert.Equal(t, "Task 'Buy milk' has been queued for creation.", last.Content)

	stored, err := f.store.Tasks().FindByUser(context.Background(), "u1")
	require.NoError(t, err)
	assert.Len(t, stored, 1)
}

func TestChat_DecomposeToolUsesFallbackPlan(t *testing.T) {
	p := &scriptedProvider{chats: []*llm.ChatResponse{
		toolCall("c1", "decompose_task", map[string]any{"text": "organize a team offsite"}),
		{Content: ""},
	}}
	f := newChatFixture(t, newTestClient(t, p), ChatOptions{})

	res, err := f.svc.Chat(context.Background(), "u1", "help me organize a team offsite")
	require.NoError(t, err)
	assert.Equal(t, "I'll break down 'organize a team offsite' into subtasks for you.", res.Response)
	require.Len(t, res.CreatedTasks, 1)
	assert.Equal(t, "organize a team offsite", res.CreatedTasks[0].Title)
	assert.Len(t, res.CreatedTasks[0].Subtasks, 1)
}

func TestChat_ToolErrorsAndRoundLimit(t *testing.T) {
	p := &scriptedProvider{chats: []*llm.ChatResponse{
		toolCall("a", "create_task", map[string]any{}),
		toolCall("b", "launch_rocket", nil),
		toolCall("c", "create_task", map[string]any{"title": "one"}),
		{ToolCalls: []llm.ToolCall{{ID: "d", Name: "create_task", Arguments: map[string]any{"title": "never"}}}, Content: "stopping here"},
	}}
	f := newChatFixture(t, newTestClient(t, p), ChatOptions{MaxToolRounds: 3})

	res, err := f.svc.Chat(context.Background(), "u1", "go")
	require.NoError(t, err)
	assert.Equal(t, "stopping here", res.Response)
	assert.Len(t, p.chatReqs, 4)

	var titles []string
	for _, task := range res.CreatedTasks {
		titles = append(titles, task.Title)
	}
	assert.Equal(t, []string{"one"}, titles)

	toolOut := func(req int) string {
		msgs := p.chatReqs[req].Messages
		return msgs[len(msgs)-1].Content
	}
	assert.Equal(t, "Error: title is required.", toolOut(1))
	assert.Contains(t, toolOut(2), "unknown tool")
}

func TestChat_HistoryWindow(t *testing.T) {
	p := &scriptedProvider{}
	f := newChatFixture(t, newTestClient(t, p), ChatOptions{HistoryLimit: 4})
	ctx := context.Background()

	for i := 0; i < 4; i++ {
		_, err := f.svc.Chat(ctx, "u1", fmt.Sprintf("msg %d", i))
		require.NoError(t, err)
	}
	last := p.chatReqs[len(p.chatReqs)-1]
	var got []string
	for _, m := range last.Messages {
		got = append(got, m.Content)
	}
	want := []string{"msg 1", "ok", "msg 2", "ok", "msg 3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("context window mismatch (-want +got):\n%s", diff)
	}
	assert.Contains(t, last.System, "create_task")

	full, err := f.svc.History(ctx, "u1")
	require.NoError(t, err)
	assert.Len(t, full, 8)
}

func TestChat_HistorySeededFromRepository(t *testing.T) {
	p := &scriptedProvider{}
	f := newChatFixture(t, newTestClient(t, p), ChatOptions{})
	require.NoError(t, f.store.Chat().Append(context.Background(),
		models.ChatMessage{UserID: "u1", Role: models.RoleUser, Content: "earlier"},
		models.ChatMessage{UserID: "u1", Role: models.RoleAssistant, Content: "reply"},
	))

	_, err := f.svc.Chat(context.Background(), "u1", "now")
	require.NoError(t, err)
	msgs := p.chatReqs[0].Messages
	require.Len(t, msgs, 3)
	assert.Equal(t, "earlier", msgs[0].Content)
	assert.Equal(t, llm.RoleAssistant, msgs[1].Role)
}

func TestChat_BackgroundDrainFinishesOnClose(t *testing.T) {
	defer goleak.VerifyNone(t)

	p := &scriptedProvider{chats: []*llm.ChatResponse{
		toolCall("c1", "create_task", map[string]any{"title": "Water plants"}),
		{Content: "On it."},
	}}
	f := newChatFixture(t, newTestClient(t, p), ChatOptions{Background: true, DrainTimeout: 5 * time.Second})

	res, err := f.svc.Chat(context.Background(), "u1", "water the plants")
	require.NoError(t, err)
	assert.Equal(t, "On it.", res.Response)
	assert.Empty(t, res.CreatedTasks)
	assert.Equal(t, 1, res.Queued)

	f.svc.Close()

	stored, err := f.store.Tasks().FindByUser(context.Background(), "u1")
	require.NoError(t, err)
	require.Len(t, stored, 1)
	assert.Equal(t, "Water plants", stored[0].Title)
	assert.Equal(t, 1, f.notifier.count())
}

func TestPendingQueue_ConcurrentDrainsHandOutOnce(t *testing.T) {
	q := NewPendingQueue()
	const n = 200
	for i := 0; i < n; i++ {
		q.Enqueue(models.PendingTaskRequest{Kind: models.PendingCreate, UserID: "u1", Title: fmt.Sprint(i)})
		q.Enqueue(models.PendingTaskRequest{Kind: models.PendingCreate, UserID: "u2", Title: fmt.Sprint(i)})
	}

	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]int{}
	)
	for w := 0; w < 8; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for _, r := range q.Drain("u1") {
				mu.Lock()
				seen[r.Title]++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Len(t, seen, n)
	for title, c := range seen {
		assert.Equal(t, 1, c, title)
	}
	assert.Equal(t, n, q.Count("u2"))
	assert.Zero(t, q.Count("u1"))

	u2 := q.Drain("u2")
	require.Len(t, u2, n)
	assert.Equal(t, "0", u2[0].Title, "drain keeps enqueue order")
	assert.Zero(t, q.Len())
}
