package models

import "time"

type ChatRole string

const (
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ChatMessage is one entry of a user's conversation with the assistant.
type ChatMessage struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

// PendingKind tells how a queued request is materialized into a Task.
type PendingKind string

const (
	PendingCreate    PendingKind = "create"
	PendingDecompose PendingKind = "decompose"
)

// PendingTaskRequest is produced by an assistant tool call and turned into
// a persisted Task when the queue is drained.
type PendingTaskRequest struct {
	Kind        PendingKind
	UserID      string
	Title       string
	Description string
	Priority    string
	Deadline    string
	// Text is the natural-language input for decomposition requests.
	Text       string
	EnqueuedAt time.Time
}
