package utils

import (
	"strings"
	"time"

	"go.uber.org/zap"
)

// date-only deadlines mean "by the end of that day"
const endOfDay = 23*time.Hour + 59*time.Minute + 59*time.Second

var isoLayouts = []string{
	time.RFC3339, // fractional seconds are accepted while parsing
	"2006-01-02T15:04Z07:00",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
}

// ParseDeadline turns a date string coming from the LLM or a request body
// into a UTC instant. Empty, "null" and "not specified" mean no deadline.
// Unparseable input is logged and also yields nil, so callers cannot tell
// a missing deadline from a broken one.
func ParseDeadline(raw string) *time.Time {
	s := strings.TrimSpace(raw)
	switch strings.ToLower(s) {
	case "", "null", "none", "not specified":
		return nil
	}

	if !strings.Contains(s, "T") {
		d, err := time.Parse(time.DateOnly, s)
		if err != nil {
			zap.L().Warn("[deadline] unparseable date", zap.String("raw", raw), zap.Error(err))
			return nil
		}
		t := d.Add(endOfDay).UTC()
		return &t
	}

	for _, layout := range isoLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t
		}
	}
	zap.L().Warn("[deadline] unparseable timestamp", zap.String("raw", raw))
	return nil
}
