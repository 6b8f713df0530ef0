package llm

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"
)

const DefaultGeminiModel = "gemini-2.0-flash"

// GeminiProvider uses the Gemini API through the genai SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

func NewGeminiProvider(ctx context.Context, apiKey, model string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, ErrNotConfigured
	}
	if model == "" {
		model = DefaultGeminiModel
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create GenAI client: %w", err)
	}
	return &GeminiProvider{client: client, model: model}, nil
}

func (p *GeminiProvider) Name() string { return "gemini" }

func (p *GeminiProvider) DegradedMessage() string {
	return "I'm having trouble reaching the Gemini service right now. Please try again in a moment."
}

func (p *GeminiProvider) modelFor(s Sampling) string {
	// completion defaults name Together models; Gemini keeps its own
	if s.Model == "" || !strings.HasPrefix(s.Model, "gemini") {
		return p.model
	}
	return s.Model
}

func generationConfig(s Sampling) *genai.GenerateContentConfig {
	cfg := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(s.MaxTokens),
	}
	if s.Temperature > 0 {
		cfg.Temperature = genai.Ptr(float32(s.Temperature))
	}
	if s.TopP > 0 {
		cfg.TopP = genai.Ptr(float32(s.TopP))
	}
	if s.TopK > 0 {
		cfg.TopK = genai.Ptr(float32(s.TopK))
	}
	return cfg
}

func (p *GeminiProvider) Complete(ctx context.Context, req CompletionRequest) (string, error) {
	contents := []*genai.Content{
		genai.NewContentFromText(req.Prompt, genai.RoleUser),
	}
	resp, err := p.client.Models.GenerateContent(ctx, p.modelFor(req.Sampling), contents, generationConfig(req.Sampling))
	if err != nil {
		return "", fmt.Errorf("gemini: generate: %w", err)
	}
	text := strings.TrimSpace(resp.Text())
	if text == "" {
		return "", fmt.Errorf("gemini: empty response")
	}
	return text, nil
}

func (p *GeminiProvider) Chat(ctx context.Context, req ChatRequest) (*ChatResponse, error) {
	cfg := generationConfig(req.Sampling)
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	if len(req.Tools) > 0 {
		decls := make([]*genai.FunctionDeclaration, 0, len(req.Tools))
		for _, t := range req.Tools {
			decls = append(decls, &genai.FunctionDeclaration{
				Name:        t.Name,
				Description: t.Description,
				Parameters:  geminiSchema(t.Params),
			})
		}
		cfg.Tools = []*genai.Tool{{FunctionDeclarations: decls}}
	}

	contents := geminiContents(req.Messages)

	resp, err := p.client.Models.GenerateContent(ctx, p.modelFor(req.Sampling), contents, cfg)
	if err != nil {
		return nil, fmt.Errorf("gemini: generate: %w", err)
	}

	out := &ChatResponse{Content: strings.TrimSpace(resp.Text())}
	for i, fc := range resp.FunctionCalls() {
		id := fc.ID
		if id == "" {
			id = fmt.Sprintf("%s-%d", fc.Name, i)
		}
		out.ToolCalls = append(out.ToolCalls, ToolCall{ID: id, Name: fc.Name, Arguments: fc.Args})
	}
	return out, nil
}

// geminiContents converts the transcript. Consecutive tool results become
// one user turn, matching the model turn that requested them.
func geminiContents(msgs []Message) []*genai.Content {
	contents := make([]*genai.Content, 0, len(msgs))
	for i, m := range msgs {
		switch m.Role {
		case RoleAssistant:
			parts := []*genai.Part{}
			if m.Content != "" {
				parts = append(parts, genai.NewPartFromText(m.Content))
			}
			for _, tc := range m.ToolCalls {
				parts = append(parts, genai.NewPartFromFunctionCall(tc.Name, tc.Arguments))
			}
			contents = append(contents, genai.NewContentFromParts(parts, genai.RoleModel))
		case RoleTool:
			part := genai.NewPartFromFunctionResponse(m.ToolName, map[string]any{"result": m.Content})
			if i > 0 && msgs[i-1].Role == RoleTool {
				last := contents[len(contents)-1]
				last.Parts = append(last.Parts, part)
				continue
			}
			contents = append(contents, genai.NewContentFromParts([]*genai.Part{part}, genai.RoleUser))
		default:
			contents = append(contents, genai.NewContentFromText(m.Content, genai.RoleUser))
		}
	}
	return contents
}

func geminiSchema(params []ToolParam) *genai.Schema {
	s := &genai.Schema{
		Type:       genai.TypeObject,
		Properties: map[string]*genai.Schema{},
	}
	for _, p := range params {
		prop := &genai.Schema{Type: genai.TypeString, Description: p.Description, Enum: p.Enum}
		if p.Type == "integer" {
			prop.Type = genai.TypeInteger
		}
		s.Properties[p.Name] = prop
		if p.Required {
			s.Required = append(s.Required, p.Name)
		}
	}
	return s
}
