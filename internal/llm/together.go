package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
)

const DefaultTogetherURL = "https://api.together.xyz/v1"

// TogetherProvider calls the Together.ai completion and OpenAI-compatible
// chat endpoints.
type TogetherProvider struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewTogetherProvider(apiKey, baseURL string, client *http.Client) *TogetherProvider {
	if baseURL == "" {
		baseURL = DefaultTogetherURL
	}
	if client == nil {
		client = &http.Client{}
	}
	return &TogetherProvider{
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  client,
	}
}

func (p *TogetherProvider) Name() string { return "together" }

func (p *TogetherProvider) DegradedMessage() string {
	return "I'm having trouble reaching the Together AI service right now. Please try again in a moment."
}

type togetherCompletionRequest struct {
	Model       string  `json:"model"`
	Prompt      string  `json:"prompt"`
	MaxTokens   int     `json:"max_tokens"`
	Temperature float64 `json:"temperature"`
	TopP        float64 `json:"top_p"`
	TopK        int     `json:"top_k,omitempty"`
}

type togetherCompletionResponse struct {
	Choices []struct {
		Text string `json:"text"`
	} `json:"choices"`
}

func (p *TogetherProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	body := togetherCompletionRequest{
		Model:       req.Model,
		Prompt:      req.Prompt,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		TopK:        req.TopK,
	}
	var out togetherCompletionResponse
	if err := p.post(ctx, "/completions", body, &out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", fmt.Errorf("together: empty choices")
	}
	return strings.TrimSpace(out.Choices[0].Text), nil
}

type togetherMessage struct {
	Role       string             `json:"role"`
	Content    string             `json:"content"`
	ToolCalls  []togetherToolCall `json:"tool_calls,omitempty"`
	ToolCallID string             `json:"tool_call_id,omitempty"`
	Name       string             `json:"name,omitempty"`
}

type togetherToolCall struct {
	ID       string `json:"id"`
	Type     string `json:"type"`
	Function struct {
		Name      string `json:"name"`
		Arguments string `json:"arguments"`
	} `json:"function"`
}

type togetherTool struct {
	Type     string `json:"type"`
	Function struct {
		Name        string         `json:"name"`
		Description string         `json:"description"`
		Parameters  map[string]any `json:"parameters"`
	} `json:"function"`
}

type togetherChatRequest struct {
	Model       string            `json:"model"`
	Messages    []togetherMessage `json:"messages"`
	Tools       []togetherTool    `json:"tools,omitempty"`
	MaxTokens   int               `json:"max_tokens"`
	Temperature float64           `json:"temperature"`
	TopP        float64           `json:"top_p"`
	TopK        int               `json:"top_k,omitempty"`
}

type togetherChatResponse struct {
	Choices []struct {
		Message togetherMessage `json:"message"`
	} `json:"choices"`
}

func (p *TogetherProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	body := togetherChatRequest{
		Model:       req.Model,
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		TopP:        req.TopP,
		TopK:        req.TopK,
	}
	if req.System != "" {
		body.Messages = append(body.Messages, togetherMessage{Role: string(RoleSystem), Content: req.System})
	}
	for _, m := range req.Messages {
		tm := togetherMessage{Role: string(m.Role), Content: m.Content, ToolCallID: m.ToolCallID}
		if m.Role == RoleTool {
			tm.Name = m.ToolName
		}
		for _, tc := range m.ToolCalls {
			args, _ := json.Marshal(tc.Arguments)
			var call togetherToolCall
			call.ID = tc.ID
			call.Type = "function"
			call.Function.Name = tc.Name
			call.Function.Arguments = string(args)
			tm.ToolCalls = append(tm.ToolCalls, call)
		}
		body.Messages = append(body.Messages, tm)
	}
	for _, t := range req.Tools {
		var tt togetherTool
		tt.Type = "function"
		tt.Function.Name = t.Name
		tt.Function.Description = t.Description
		tt.Function.Parameters = jsonSchema(t.Params)
		body.Tools = append(body.Tools, tt)
	}

	var out togetherChatResponse
	if err := p.post(ctx, "/chat/completions", body, &out); err != nil {
		return nil, err
	}
	if len(out.Choices) == 0 {
		return nil, fmt.Errorf("together: empty choices")
	}
	msg := out.Choices[0].Message
	resp := &ChatResponse{Content: strings.TrimSpace(msg.Content)}
	for _, tc := range msg.ToolCalls {
		args := map[string]any{}
		if tc.Function.Arguments != "" {
			if err := json.Unmarshal([]byte(tc.Function.Arguments), &args); err != nil {
				return nil, fmt.Errorf("together: tool %s arguments: %w", tc.Function.Name, err)
			}
		}
		resp.ToolCalls = append(resp.ToolCalls, ToolCall{ID: tc.ID, Name: tc.Function.Name, Arguments: args})
	}
	return resp, nil
}

func (p *TogetherProvider) post(ctx context.Context, path string, in, out any) error {
	b, err := json.Marshal(in)
	if err != nil {
		return fmt.Errorf("together: encode request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+path, bytes.NewReader(b))
	if err != nil {
		return fmt.Errorf("together: build request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+p.apiKey)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("together: %s: %w", path, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("together: read body: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("together: %s: status=%d body=%s", path, resp.StatusCode, truncate(string(respBody), 300))
	}
	if err := json.Unmarshal(respBody, out); err != nil {
		return fmt.Errorf("together: decode envelope: %w", err)
	}
	return nil
}

// jsonSchema renders tool parameters as a JSON-schema object.
func jsonSchema(params []ToolParam) map[string]any {
	props := map[string]any{}
	required := []string{}
	for _, p := range params {
		typ := p.Type
		if typ == "" {
			typ = "string"
		}
		prop := map[string]any{"type": typ, "description": p.Description}
		if len(p.Enum) > 0 {
			prop["enum"] = p.Enum
		}
		props[p.Name] = prop
		if p.Required {
			required = append(required, p.Name)
		}
	}
	return map[string]any{
		"type":       "object",
		"properties": props,
		"required":   required,
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
