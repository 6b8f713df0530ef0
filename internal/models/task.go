// internal/models/task.go
package models

import (
	"strings"
	"time"
)

type TaskPriority string

const (
	PriorityLow    TaskPriority = "low"
	PriorityMedium TaskPriority = "medium"
	PriorityHigh   TaskPriority = "high"
)

// NormalizePriority coerces free-form input (LLM output, request bodies)
// into one of the known priorities. Unknown values become medium.
func NormalizePriority(raw string) TaskPriority {
	switch TaskPriority(strings.ToLower(strings.TrimSpace(raw))) {
	case PriorityLow:
		return PriorityLow
	case PriorityHigh:
		return PriorityHigh
	default:
		return PriorityMedium
	}
}

// Task is a user's top-level unit of work. Subtasks are embedded and
// persisted together with the task.
type Task struct {
	ID               string       `json:"id"`
	UserID           string       `json:"user_id"`
	Title            string       `json:"title"`
	Description      *string      `json:"description,omitempty"`
	Deadline         *time.Time   `json:"deadline,omitempty"`
	Priority         TaskPriority `json:"priority"`
	Completed        bool         `json:"completed"`
	Subtasks         []Subtask    `json:"subtasks"`
	EmotionalSupport *string      `json:"emotional_support,omitempty"`
	CreatedAt        time.Time    `json:"created_at"`
	UpdatedAt        time.Time    `json:"updated_at"`
}

// Subtask is an ordered, independently completable step of a Task.
// Order is not guaranteed to be unique or gap-free.
type Subtask struct {
	ID          string     `json:"id"`
	TaskID      string     `json:"task_id"`
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Deadline    *time.Time `json:"deadline,omitempty"`
	Order       int        `json:"order"`
	Completed   bool       `json:"completed"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DisplayTitle falls back to the description for subtasks created before
// titles existed.
func (s Subtask) DisplayTitle() string {
	if strings.TrimSpace(s.Title) != "" {
		return s.Title
	}
	return s.Description
}

// FindSubtask returns the index of the subtask with the given id, or -1.
func (t *Task) FindSubtask(id string) int {
	for i := range t.Subtasks {
		if t.Subtasks[i].ID == id {
			return i
		}
	}
	return -1
}

// AllSubtasksCompleted reports false for a task without subtasks.
func (t *Task) AllSubtasksCompleted() bool {
	if len(t.Subtasks) == 0 {
		return false
	}
	for _, s := range t.Subtasks {
		if !s.Completed {
			return false
		}
	}
	return true
}

// TaskCreate is the input for a manually created task.
type TaskCreate struct {
	Title       string
	Description *string
	Deadline    *time.Time
	Priority    TaskPriority
}

// TaskUpdate carries a partial update; nil fields are left untouched.
type TaskUpdate struct {
	Title       *string
	Description *string
	Deadline    *time.Time
	// ClearDeadline removes the deadline when no new one is given.
	ClearDeadline bool
	Priority      *TaskPriority
	Completed     *bool
}

type SubtaskCreate struct {
	Title       string
	Description string
	Deadline    *time.Time
	Order       int
}

type SubtaskUpdate struct {
	Title       *string
	Description *string
	Completed   *bool
	Deadline    *time.Time
	Order       *int
}
