package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"taskassistant/internal/models"
	"taskassistant/internal/repositories"
)

// TaskService manages tasks and their embedded subtasks.
//
// Completion flows both ways: completing a task completes every subtask,
// and any subtask change recomputes the task flag from its subtasks.
type TaskService interface {
	Create(ctx context.Context, userID string, in models.TaskCreate) (*models.Task, error)
	Get(ctx context.Context, id string) (*models.Task, error)
	ListByUser(ctx context.Context, userID string) ([]models.Task, error)
	Update(ctx context.Context, id string, upd models.TaskUpdate) (*models.Task, error)
	Delete(ctx context.Context, id string) error

	AddSubtask(ctx context.Context, taskID string, in models.SubtaskCreate) (*models.Task, error)
	UpdateSubtask(ctx context.Context, taskID, subtaskID string, upd models.SubtaskUpdate) (*models.Task, error)
	DeleteSubtask(ctx context.Context, taskID, subtaskID string) (*models.Task, error)

	// RefreshSupport regenerates the task's encouragement text.
	RefreshSupport(ctx context.Context, taskID string) (*models.Task, error)
}

type taskService struct {
	repo    repositories.TaskRepository
	users   repositories.UserRepository
	support SupportService
	log     *zap.Logger
	now     func() time.Time
}

func NewTaskService(repo repositories.TaskRepository, users repositories.UserRepository, support SupportService, log *zap.Logger) TaskService {
	if log == nil {
		log = zap.NewNop()
	}
	return &taskService{
		repo:    repo,
		users:   users,
		support: support,
		log:     log.Named("tasks"),
		now:     time.Now,
	}
}

func (s *taskService) Create(ctx context.Context, userID string, in models.TaskCreate) (*models.Task, error) {
	title := strings.TrimSpace(in.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidInput)
	}
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	now := s.now().UTC()
	task := &models.Task{
		ID:          uuid.NewString(),
		UserID:      userID,
		Title:       title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Priority:    models.NormalizePriority(string(in.Priority)),
		Subtasks:    []models.Subtask{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s.support != nil {
		msg := s.support.Generate(ctx, task.Title, task.Deadline)
		task.EmotionalSupport = &msg
	}

	if err := s.repo.Store(ctx, task); err != nil {
		s.log.Error("[task][create][err]", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	s.log.Info("[task][create][ok]", zap.String("task_id", task.ID), zap.String("user_id", userID))
	return task, nil
}

func (s *taskService) Get(ctx context.Context, id string) (*models.Task, error) {
	t, err := s.repo.FindByID(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return nil, ErrTaskNotFound
	}
	return t, err
}

func (s *taskService) ListByUser(ctx context.Context, userID string) ([]models.Task, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	return s.repo.FindByUser(ctx, userID)
}

func (s *taskService) Update(ctx context.Context, id string, upd models.TaskUpdate) (*models.Task, error) {
	task, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	now := s.now().UTC()

	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			return nil, fmt.Errorf("%w: title must not be empty", ErrInvalidInput)
		}
		task.Title = title
	}
	if upd.Description != nil {
		task.Description = upd.Description
	}
	switch {
	case upd.Deadline != nil:
		task.Deadline = upd.Deadline
	case upd.ClearDeadline:
		task.Deadline = nil
	}
	if upd.Priority != nil {
		task.Priority = models.NormalizePriority(string(*upd.Priority))
	}
	if upd.Completed != nil {
		task.Completed = *upd.Completed
		if task.Completed {
			for i := range task.Subtasks {
				if !task.Subtasks[i].Completed {
					task.Subtasks[i].Completed = true
					task.Subtasks[i].UpdatedAt = now
				}
			}
		}
	}
	task.UpdatedAt = now

	return task, s.save(ctx, task, "update")
}

func (s *taskService) Delete(ctx context.Context, id string) error {
	err := s.repo.Delete(ctx, id)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrTaskNotFound
	}
	if err != nil {
		s.log.Error("[task][delete][err]", zap.String("task_id", id), zap.Error(err))
		return err
	}
	s.log.Info("[task][delete][ok]", zap.String("task_id", id))
	return nil
}

// AddSubtask appends a subtask and returns the parent task; the new
// subtask is last in Subtasks. A zero Order places it last; an empty title
// falls back to the description.
func (s *taskService) AddSubtask(ctx context.Context, taskID string, in models.SubtaskCreate) (*models.Task, error) {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	title := strings.TrimSpace(in.Title)
	if title == "" {
		title = strings.TrimSpace(in.Description)
	}
	if title == "" {
		return nil, fmt.Errorf("%w: title or description is required", ErrInvalidInput)
	}
	order := in.Order
	if order == 0 {
		order = len(task.Subtasks)
	}

	now := s.now().UTC()
	sub := models.Subtask{
		ID:          uuid.NewString(),
		TaskID:      task.ID,
		Title:       title,
		Description: in.Description,
		Deadline:    in.Deadline,
		Order:       order,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	task.Subtasks = append(task.Subtasks, sub)
	task.UpdatedAt = now

	if err := s.save(ctx, task, "subtask_add"); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *taskService) UpdateSubtask(ctx context.Context, taskID, subtaskID string, upd models.SubtaskUpdate) (*models.Task, error) {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	i := task.FindSubtask(subtaskID)
	if i < 0 {
		return nil, ErrSubtaskNotFound
	}
	now := s.now().UTC()
	sub := &task.Subtasks[i]

	if upd.Description != nil {
		sub.Description = *upd.Description
	}
	if upd.Title != nil {
		title := strings.TrimSpace(*upd.Title)
		if title == "" {
			title = strings.TrimSpace(sub.Description)
		}
		if title == "" {
			return nil, fmt.Errorf("%w: title or description is required", ErrInvalidInput)
		}
		sub.Title = title
	}
	if upd.Completed != nil {
		sub.Completed = *upd.Completed
	}
	if upd.Deadline != nil {
		sub.Deadline = upd.Deadline
	}
	if upd.Order != nil {
		sub.Order = *upd.Order
	}
	sub.UpdatedAt = now

	task.Completed = task.AllSubtasksCompleted()
	task.UpdatedAt = now

	return task, s.save(ctx, task, "subtask_update")
}

func (s *taskService) DeleteSubtask(ctx context.Context, taskID, subtaskID string) (*models.Task, error) {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	i := task.FindSubtask(subtaskID)
	if i < 0 {
		return nil, ErrSubtaskNotFound
	}
	task.Subtasks = append(task.Subtasks[:i], task.Subtasks[i+1:]...)
	if len(task.Subtasks) > 0 {
		task.Completed = task.AllSubtasksCompleted()
	}
	task.UpdatedAt = s.now().UTC()

	return task, s.save(ctx, task, "subtask_delete")
}

func (s *taskService) RefreshSupport(ctx context.Context, taskID string) (*models.Task, error) {
	task, err := s.Get(ctx, taskID)
	if err != nil {
		return nil, err
	}
	msg := DefaultSupportMessage
	if s.support != nil {
		msg = s.support.Generate(ctx, task.Title, task.Deadline)
	}
	task.EmotionalSupport = &msg
	task.UpdatedAt = s.now().UTC()

	return task, s.save(ctx, task, "support")
}

func (s *taskService) save(ctx context.Context, task *models.Task, op string) error {
	err := s.repo.Update(ctx, task)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrTaskNotFound
	}
	if err != nil {
		s.log.Error("[task]["+op+"][err]", zap.String("task_id", task.ID), zap.Error(err))
		return err
	}
	s.log.Info("[task]["+op+"][ok]", zap.String("task_id", task.ID))
	return nil
}

func (s *taskService) requireUser(ctx context.Context, userID string) error {
	if s.users == nil {
		return nil
	}
	_, err := s.users.GetByID(ctx, userID)
	if errors.Is(err, repositories.ErrNotFound) {
		return ErrUserNotFound
	}
	return err
}
