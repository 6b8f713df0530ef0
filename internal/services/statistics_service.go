package services

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"math"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"taskassistant/internal/llm"
	"taskassistant/internal/models"
	"taskassistant/internal/repositories"
)

const activityWindowDays = 7

type StatisticsService interface {
	UserStatistics(ctx context.Context, userID string) (*models.UserStatistics, error)
	// Feedback returns coaching text for the user's statistics. Results
	// are cached by statistics fingerprint.
	Feedback(ctx context.Context, userID string) (*models.FeedbackResponse, error)
}

type statisticsService struct {
	tasks repositories.TaskRepository
	users repositories.UserRepository
	llm   *llm.Client
	cache *FeedbackCache
	group singleflight.Group
	log   *zap.Logger
	now   func() time.Time
}

func NewStatisticsService(tasks repositories.TaskRepository, users repositories.UserRepository, client *llm.Client, cache *FeedbackCache, log *zap.Logger) StatisticsService {
	if log == nil {
		log = zap.NewNop()
	}
	if cache == nil {
		cache = NewFeedbackCache(time.Hour, nil)
	}
	return &statisticsService{
		tasks: tasks,
		users: users,
		llm:   client,
		cache: cache,
		log:   log.Named("statistics"),
		now:   time.Now,
	}
}

func (s *statisticsService) UserStatistics(ctx context.Context, userID string) (*models.UserStatistics, error) {
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	tasks, err := s.tasks.FindByUser(ctx, userID)
	if err != nil {
		s.log.Error("[stats][list][err]", zap.String("user_id", userID), zap.Error(err))
		return nil, err
	}
	return computeStatistics(userID, tasks, s.now().UTC()), nil
}

func computeStatistics(userID string, tasks []models.Task, now time.Time) *models.UserStatistics {
	st := &models.UserStatistics{
		UserID: userID,
		TasksByPriority: map[models.TaskPriority]int{
			models.PriorityLow:    0,
			models.PriorityMedium: 0,
			models.PriorityHigh:   0,
		},
		RecentActivity: models.RecentActivity{WindowDays: activityWindowDays},
		GeneratedAt:    now,
	}
	windowStart := now.AddDate(0, 0, -activityWindowDays)
	windowEnd := now.AddDate(0, 0, activityWindowDays)

	for _, t := range tasks {
		st.TotalTasks++
		if t.Completed {
			st.CompletedTasks++
		}
		st.TasksByPriority[models.NormalizePriority(string(t.Priority))]++

		for _, sub := range t.Subtasks {
			st.TotalSubtasks++
			if sub.Completed {
				st.CompletedSubtasks++
			}
		}

		if t.Deadline != nil && !t.Completed {
			switch {
			case t.Deadline.Before(now):
				st.OverdueTasks++
			case !t.Deadline.After(windowEnd):
				st.UpcomingDeadlines++
			}
		}

		if !t.CreatedAt.Before(windowStart) {
			st.RecentActivity.TasksCreated++
		}
		if t.Completed && !t.UpdatedAt.Before(windowStart) {
			st.RecentActivity.TasksCompleted++
		}
	}
	st.PendingTasks = st.TotalTasks - st.CompletedTasks
	st.TaskCompletionRate = percent(st.CompletedTasks, st.TotalTasks)
	st.SubtaskCompletionRate = percent(st.CompletedSubtasks, st.TotalSubtasks)
	return st
}

// percent is rounded to one decimal; zero when total is zero.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)*1000/float64(total)) / 10
}

type feedbackResult struct {
	feedback models.Feedback
	at       time.Time
	cached   bool
}

func (s *statisticsService) Feedback(ctx context.Context, userID string) (*models.FeedbackResponse, error) {
	st, err := s.UserStatistics(ctx, userID)
	if err != nil {
		return nil, err
	}
	key := st.Fingerprint()

	if fb, at, ok := s.cache.Get(key); ok {
		s.log.Debug("[stats][feedback][hit]", zap.String("key", key))
		return &models.FeedbackResponse{UserID: userID, Feedback: fb, Statistics: st, Cached: true, GeneratedAt: at}, nil
	}

	v, _, _ := s.group.Do(key, func() (any, error) {
		if fb, at, ok := s.cache.Get(key); ok {
			return feedbackResult{feedback: fb, at: at, cached: true}, nil
		}
		// shared flight: outlives any single caller
		fb, usedFallback := s.generate(context.WithoutCancel(ctx), st)
		if usedFallback {
			return feedbackResult{feedback: fb, at: s.now()}, nil
		}
		at := s.cache.Put(key, fb)
		return feedbackResult{feedback: fb, at: at}, nil
	})
	r := v.(feedbackResult)
	return &models.FeedbackResponse{
		UserID:      userID,
		Feedback:    r.feedback,
		Statistics:  st,
		Cached:      r.cached,
		GeneratedAt: r.at,
	}, nil
}

// generate reports whether the fallback payload was used. Fallbacks are
// not cached.
func (s *statisticsService) generate(ctx context.Context, st *models.UserStatistics) (models.Feedback, bool) {
	statsJSON, _ := json.MarshalIndent(st, "", "  ")
	raw := s.llm.Complete(ctx, llm.CompletionRequest{Prompt: feedbackPrompt(string(statsJSON))})

	obj, usedFallback := llm.ExtractOr(raw, llm.FeedbackFallback())
	fb, err := decodeFeedback(obj)
	if err != nil {
		s.log.Warn("[stats][feedback][decode][err]", zap.Error(err))
		obj, _ = llm.ExtractOr("", llm.FeedbackFallback())
		fb, _ = decodeFeedback(obj)
		usedFallback = true
	}
	s.log.Info("[stats][feedback][generated]", zap.String("user_id", st.UserID), zap.Bool("fallback", usedFallback))
	return fb, usedFallback
}

// looseList accepts a list of scalars or a single string.
type looseList []string

func (l *looseList) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '[' {
		var items []looseString
		if err := json.Unmarshal(b, &items); err != nil {
			return err
		}
		out := make([]string, 0, len(items))
		for _, it := range items {
			if it != "" {
				out = append(out, it.String())
			}
		}
		*l = out
		return nil
	}
	var one looseString
	if err := json.Unmarshal(b, &one); err != nil {
		return err
	}
	if one == "" {
		*l = []string{}
		return nil
	}
	*l = []string{one.String()}
	return nil
}

func decodeFeedback(obj json.RawMessage) (models.Feedback, error) {
	var d struct {
		Summary      looseString `json:"summary"`
		Insights     looseList   `json:"insights"`
		Suggestions  looseList   `json:"suggestions"`
		Motivation   looseString `json:"motivation"`
		Achievements looseList   `json:"achievements"`
		GrowthAreas  looseList   `json:"growth_areas"`
	}
	if err := json.Unmarshal(obj, &d); err != nil {
		return models.Feedback{}, err
	}
	return models.Feedback{
		Summary:      d.Summary.String(),
		Insights:     nonNil(d.Insights),
		Suggestions:  nonNil(d.Suggestions),
		Motivation:   d.Motivation.String(),
		Achievements: nonNil(d.Achievements),
		GrowthAreas:  nonNil(d.GrowthAreas),
	}, nil
}

func nonNil(l looseList) []string {
	if l == nil {
		return []string{}
	}
	return l
}
