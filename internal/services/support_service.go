package services

import (
	"context"
	"fmt"
	"math"
	"strings"
	"time"

	"go.uber.org/zap"

	"taskassistant/internal/llm"
)

// DefaultSupportMessage is used whenever the model cannot be reached.
const DefaultSupportMessage = "You're making great progress! Keep going, you've got this."

// SupportService writes a short encouraging note for a task.
type SupportService interface {
	Generate(ctx context.Context, title string, deadline *time.Time) string
}

type supportService struct {
	llm *llm.Client
	log *zap.Logger
	now func() time.Time
}

func NewSupportService(client *llm.Client, log *zap.Logger) SupportService {
	if log == nil {
		log = zap.NewNop()
	}
	return &supportService{llm: client, log: log.Named("support"), now: time.Now}
}

func (s *supportService) Generate(ctx context.Context, title string, deadline *time.Time) string {
	prompt := fmt.Sprintf(`Write one or two warm, encouraging sentences for someone working on the task %q.
%s
Be specific to the task, positive and brief. Reply with the message only.`, title, s.deadlineContext(deadline))

	text, err := s.llm.TryComplete(ctx, llm.CompletionRequest{
		Prompt:   prompt,
		Sampling: llm.Sampling{MaxTokens: 100},
	})
	text = strings.Trim(strings.TrimSpace(text), `"`)
	if err != nil || text == "" {
		return DefaultSupportMessage
	}
	return text
}

func (s *supportService) deadlineContext(deadline *time.Time) string {
	if deadline == nil {
		return "There is no fixed deadline."
	}
	days := int(math.Floor(deadline.Sub(s.now()).Hours() / 24))
	switch {
	case days < 0:
		return fmt.Sprintf("The task is past due by %d day(s), so acknowledge the pressure kindly.", -days)
	case days == 0:
		return "The task is due today."
	case days == 1:
		return "The task is due tomorrow."
	default:
		return fmt.Sprintf("The task is due in %d days.", days)
	}
}
