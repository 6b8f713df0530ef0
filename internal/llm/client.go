// Package llm talks to hosted completion and chat models. Every call is a
// single attempt: failures are logged and turned into a degraded text
// payload so request flows always complete.
package llm

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// UnavailableMessage is shown in chat when no API key is configured.
const UnavailableMessage = "The AI assistant is currently unavailable because no API key is configured. You can still create and manage tasks manually."

var ErrNotConfigured = errors.New("llm: api key not configured")

type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
	RoleTool      Role = "tool"
)

// Sampling holds request-level model parameters. Zero values fall back to
// the client defaults.
type Sampling struct {
	Model       string
	MaxTokens   int
	Temperature float64
	TopP        float64
	TopK        int
}

func (s Sampling) merge(def Sampling) Sampling {
	if s.Model == "" {
		s.Model = def.Model
	}
	if s.MaxTokens == 0 {
		s.MaxTokens = def.MaxTokens
	}
	if s.Temperature == 0 {
		s.Temperature = def.Temperature
	}
	if s.TopP == 0 {
		s.TopP = def.TopP
	}
	if s.TopK == 0 {
		s.TopK = def.TopK
	}
	return s
}

type CompletionRequest struct {
	Prompt string
	Sampling
}

type ToolParam struct {
	Name        string
	Type        string // "string" unless set
	Description string
	Required    bool
	Enum        []string
}

type Tool struct {
	Name        string
	Description string
	Params      []ToolParam
}

type ToolCall struct {
	ID        string
	Name      string
	Arguments map[string]any
}

type Message struct {
	Role    Role
	Content string
	// assistant turns that requested tools
	ToolCalls []ToolCall
	// tool results
	ToolCallID string
	ToolName   string
}

type ChatRequest struct {
	System   string
	Messages []Message
	Tools    []Tool
	Sampling
}

type ChatResponse struct {
	Content   string
	ToolCalls []ToolCall
	// Degraded is set when the reply is a canned message, not model output.
	Degraded bool
}

// Provider is one hosted LLM backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error)
	// DegradedMessage is returned to callers instead of an error.
	DegradedMessage() string
}

type ClientOptions struct {
	APIKey   string
	Defaults Sampling
	Timeout  time.Duration
}

// Client is the fail-soft entry point used by services.
type Client struct {
	provider Provider
	hasKey   bool
	defaults Sampling
	timeout  time.Duration
	log      *zap.Logger
}

func NewClient(provider Provider, opts ClientOptions, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}
	if opts.Timeout <= 0 {
		opts.Timeout = 60 * time.Second
	}
	return &Client{
		provider: provider,
		hasKey:   provider != nil && opts.APIKey != "",
		defaults: opts.Defaults,
		timeout:  opts.Timeout,
		log:      log.Named("llm"),
	}
}

// Available reports whether an API key is configured.
func (c *Client) Available() bool {
	return c != nil && c.hasKey
}

func (c *Client) degraded() string {
	if c.provider == nil {
		return "AI service is not configured."
	}
	return c.provider.DegradedMessage()
}

// Complete returns raw model text, or the provider's degraded message on
// any failure. It never returns an error.
func (c *Client) Complete(ctx context.Context, req CompletionRequest) string {
	text, err := c.TryComplete(ctx, req)
	if err != nil {
		return c.degraded()
	}
	return text
}

// TryComplete is Complete for callers that substitute their own default.
// Failures are already logged.
func (c *Client) TryComplete(ctx context.Context, req CompletionRequest) (string, error) {
	if !c.Available() {
		c.log.Warn("[llm][complete][skip] not configured")
		return "", ErrNotConfigured
	}
	req.Sampling = req.Sampling.merge(c.defaults)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	started := time.Now()
	text, err := c.provider.Complete(ctx, req)
	if err != nil {
		c.log.Error("[llm][complete][err]",
			zap.String("provider", c.provider.Name()),
			zap.String("model", req.Model),
			zap.Duration("elapsed", time.Since(started)),
			zap.Error(err))
		return "", err
	}
	c.log.Debug("[llm][complete][ok]",
		zap.String("provider", c.provider.Name()),
		zap.Int("chars", len(text)),
		zap.Duration("elapsed", time.Since(started)))
	return text, nil
}

// Chat runs one chat turn. Without an API key the reply is
// UnavailableMessage; provider failures yield the degraded message.
func (c *Client) Chat(ctx context.Context, req ChatRequest) *ChatResponse {
	if !c.Available() {
		return &ChatResponse{Content: UnavailableMessage, Degraded: true}
	}
	req.Sampling = req.Sampling.merge(c.defaults)

	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	resp, err := c.provider.Chat(ctx, req)
	if err != nil {
		c.log.Error("[llm][chat][err]",
			zap.String("provider", c.provider.Name()),
			zap.String("model", req.Model),
			zap.Error(err))
		return &ChatResponse{Content: c.degraded(), Degraded: true}
	}
	return resp
}
