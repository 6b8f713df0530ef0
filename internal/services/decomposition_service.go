package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskassistant/internal/llm"
	"taskassistant/internal/models"
	"taskassistant/internal/repositories"
	"taskassistant/internal/utils"
)

// DecompositionService turns free text into a task with subtasks.
type DecompositionService interface {
	// Decompose analyzes text and persists the resulting task.
	Decompose(ctx context.Context, text, userID string) (*models.Task, error)
	// Analyze returns the model's breakdown without persisting anything.
	Analyze(ctx context.Context, text string) Decomposition
}

type decompositionService struct {
	llm   *llm.Client
	tasks repositories.TaskRepository
	users repositories.UserRepository
	log   *zap.Logger
	now   func() time.Time
}

func NewDecompositionService(client *llm.Client, tasks repositories.TaskRepository, users repositories.UserRepository, log *zap.Logger) DecompositionService {
	if log == nil {
		log = zap.NewNop()
	}
	return &decompositionService{
		llm:   client,
		tasks: tasks,
		users: users,
		log:   log.Named("decompose"),
		now:   time.Now,
	}
}

func (s *decompositionService) Decompose(ctx context.Context, text, userID string) (*models.Task, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, fmt.Errorf("%w: text is required", ErrInvalidInput)
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	d := s.Analyze(ctx, text)
	task := s.buildTask(userID, text, d)

	if err := s.tasks.Store(ctx, task); err != nil {
		s.log.Error("[decompose][store][err]", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.log.Info("[decompose][ok]",
		zap.String("task_id", task.ID),
		zap.Int("subtasks", len(task.Subtasks)),
		zap.Bool("fallback", d.Fallback))
	return task, nil
}

func (s *decompositionService) Analyze(ctx context.Context, text string) Decomposition {
	raw := s.llm.Complete(ctx, llm.CompletionRequest{Prompt: decompositionPrompt(text, s.now().UTC())})

	obj, usedFallback := llm.ExtractOr(raw, llm.TaskFallback(text))
	var d Decomposition
	if err := json.Unmarshal(obj, &d); err != nil {
		s.log.Warn("[decompose][decode][err]", zap.Error(err))
		d = fallbackDecomposition(text)
		usedFallback = true
	}
	d.Fallback = usedFallback

	kept := d.Subtasks[:0]
	for _, st := range d.Subtasks {
		if !st.empty() {
			kept = append(kept, st)
		}
	}
	d.Subtasks = kept
	if len(d.Subtasks) == 0 {
		d.Subtasks = []SubtaskDraft{{Kind: SubtaskLegacyDescriptionOnly, Description: llm.FallbackSubtask}}
	}
	return d
}

func fallbackDecomposition(text string) Decomposition {
	b, _ := json.Marshal(llm.TaskFallback(text))
	var d Decomposition
	_ = json.Unmarshal(b, &d)
	return d
}

func (s *decompositionService) buildTask(userID, text string, d Decomposition) *models.Task {
	now := s.now().UTC()
	taskID := uuid.NewString()

	title := d.Title.String()
	if title == "" {
		title = text
	}
	desc := text
	support := d.EmotionalSupport.String()
	if support == "" {
		support = llm.FallbackSupport
	}

	subtasks := make([]models.Subtask, 0, len(d.Subtasks))
	for i, draft := range d.Subtasks {
		subtasks = append(subtasks, models.Subtask{
			ID:          uuid.NewString(),
			TaskID:      taskID,
			Title:       draft.DisplayTitle(),
			Description: draft.Description,
			Deadline:    utils.ParseDeadline(draft.Deadline),
			Order:       i,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}

	return &models.Task{
		ID:               taskID,
		UserID:           userID,
		Title:            title,
		Description:      &desc,
		Deadline:         utils.ParseDeadline(d.Deadline.String()),
		Priority:         models.NormalizePriority(d.Priority.String()),
		Subtasks:         subtasks,
		EmotionalSupport: &support,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
}
