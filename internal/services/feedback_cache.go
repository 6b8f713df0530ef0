package services

import (
	"sync"
	"time"

	"taskassistant/internal/models"
)

type feedbackEntry struct {
	feedback models.Feedback
	at       time.Time
}

// FeedbackCache keeps generated feedback per statistics fingerprint for a
// fixed TTL.
type FeedbackCache struct {
	mu      sync.Mutex
	ttl     time.Duration
	now     func() time.Time
	entries map[string]feedbackEntry
}

// NewFeedbackCache uses time.Now when now is nil.
func NewFeedbackCache(ttl time.Duration, now func() time.Time) *FeedbackCache {
	if now == nil {
		now = time.Now
	}
	if ttl <= 0 {
		ttl = time.Hour
	}
	return &FeedbackCache{ttl: ttl, now: now, entries: make(map[string]feedbackEntry)}
}

// Get returns a fresh entry and when it was generated. Expired entries
// are evicted.
func (c *FeedbackCache) Get(key string) (models.Feedback, time.Time, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return models.Feedback{}, time.Time{}, false
	}
	if c.now().Sub(e.at) >= c.ttl {
		delete(c.entries, key)
		return models.Feedback{}, time.Time{}, false
	}
	return e.feedback, e.at, true
}

func (c *FeedbackCache) Put(key string, fb models.Feedback) time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	at := c.now()
	c.entries[key] = feedbackEntry{feedback: fb, at: at}
	return at
}
