package models

import (
	"fmt"
	"time"
)

type UserStatistics struct {
	UserID                string               `json:"user_id"`
	TotalTasks            int                  `json:"total_tasks"`
	CompletedTasks        int                  `json:"completed_tasks"`
	PendingTasks          int                  `json:"pending_tasks"`
	TotalSubtasks         int                  `json:"total_subtasks"`
	CompletedSubtasks     int                  `json:"completed_subtasks"`
	TaskCompletionRate    float64              `json:"task_completion_rate"`
	SubtaskCompletionRate float64              `json:"subtask_completion_rate"`
	OverdueTasks          int                  `json:"overdue_tasks"`
	UpcomingDeadlines     int                  `json:"upcoming_deadlines"`
	TasksByPriority       map[TaskPriority]int `json:"tasks_by_priority"`
	RecentActivity        RecentActivity       `json:"recent_activity"`
	GeneratedAt           time.Time            `json:"generated_at"`
}

type RecentActivity struct {
	WindowDays     int `json:"window_days"`
	TasksCreated   int `json:"tasks_created"`
	TasksCompleted int `json:"tasks_completed"`
}

// Fingerprint is the coarse feedback cache key. Different users with the
// same counters share a key.
func (s *UserStatistics) Fingerprint() string {
	return fmt.Sprintf("%d_%d_%d_%d", s.TotalTasks, s.CompletedTasks, s.TotalSubtasks, s.CompletedSubtasks)
}

type Feedback struct {
	Summary      string   `json:"summary"`
	Insights     []string `json:"insights"`
	Suggestions  []string `json:"suggestions"`
	Motivation   string   `json:"motivation"`
	Achievements []string `json:"achievements"`
	GrowthAreas  []string `json:"growth_areas"`
}

type FeedbackResponse struct {
	UserID      string          `json:"user_id"`
	Feedback    Feedback        `json:"feedback"`
	Statistics  *UserStatistics `json:"statistics"`
	Cached      bool            `json:"cached"`
	GeneratedAt time.Time       `json:"generated_at"`
}
