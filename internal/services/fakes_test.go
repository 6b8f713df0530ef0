package services

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap/zaptest"

	"taskassistant/internal/llm"
	"taskassistant/internal/models"
	"taskassistant/internal/repositories"
)

var errUpstream = errors.New("upstream down")

// scriptedProvider replays canned completions and chat replies. The last
// entry repeats once the script runs out.
type scriptedProvider struct {
	mu          sync.Mutex
	completions []string
	completeErr error
	chats       []*llm.ChatResponse
	// gate, when set, blocks Complete until closed.
	gate chan struct{}

	completeCalls int
	chatReqs      []llm.ChatRequest
	prompts       []string
}

func (p *scriptedProvider) Name() string            { return "scripted" }
func (p *scriptedProvider) DegradedMessage() string { return "degraded" }

func (p *scriptedProvider) Complete(ctx context.Context, req llm.CompletionRequest) (string, error) {
	if p.gate != nil {
		select {
		case <-p.gate:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.completeCalls++
	p.prompts = append(p.prompts, req.Prompt)
	if p.completeErr != nil {
		return "", p.completeErr
	}
	if len(p.completions) == 0 {
		return "", nil
	}
	out := p.completions[0]
	if len(p.completions) > 1 {
		p.completions = p.completions[1:]
	}
	return out, nil
}

func (p *scriptedProvider) Chat(_ context.Context, req llm.ChatRequest) (*llm.ChatResponse, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	msgs := make([]llm.Message, len(req.Messages))
	copy(msgs, req.Messages)
	req.Messages = msgs
	p.chatReqs = append(p.chatReqs, req)
	if len(p.chats) == 0 {
		return &llm.ChatResponse{Content: "ok"}, nil
	}
	out := p.chats[0]
	if len(p.chats) > 1 {
		p.chats = p.chats[1:]
	}
	return out, nil
}

func (p *scriptedProvider) calls() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.completeCalls
}

func newTestClient(t *testing.T, p llm.Provider) *llm.Client {
	t.Helper()
	return llm.NewClient(p, llm.ClientOptions{APIKey: "test-key", Timeout: 5 * time.Second}, zaptest.NewLogger(t))
}

func offlineClient(t *testing.T) *llm.Client {
	t.Helper()
	return llm.NewClient(nil, llm.ClientOptions{}, zaptest.NewLogger(t))
}

func fixedClock(at time.Time) func() time.Time {
	return func() time.Time { return at }
}

// seedUser stores a user in the memory store and returns its id.
func seedUser(t *testing.T, store *repositories.MemoryStore, id string) string {
	t.Helper()
	err := store.Users().Create(context.Background(), &models.User{ID: id, Username: id, CreatedAt: time.Now()})
	if err != nil {
		t.Fatal(err)
	}
	return id
}

type recordingNotifier struct {
	mu    sync.Mutex
	tasks []string
}

func (n *recordingNotifier) TaskCreated(_ string, task *models.Task) {
	n.mu.Lock()
	n.tasks = append(n.tasks, task.ID)
	n.mu.Unlock()
}

func (n *recordingNotifier) count() int {
	n.mu.Lock()
	defer n.mu.Unlock()
	return len(n.tasks)
}
