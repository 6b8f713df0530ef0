package llm

import "encoding/json"

const (
	FallbackSubtask = "Review task details"
	FallbackSupport = "Let's start by clarifying what needs to be done."
)

// TaskFallback is the decomposition payload used when the model output
// cannot be parsed. Subtasks use the legacy plain-string form.
func TaskFallback(input string) map[string]any {
	return map[string]any{
		"title":             input,
		"subtasks":          []any{FallbackSubtask},
		"deadline":          nil,
		"priority":          "medium",
		"emotional_support": FallbackSupport,
	}
}

// FeedbackFallback is the generic statistics feedback.
func FeedbackFallback() map[string]any {
	return map[string]any{
		"summary":      "You're building momentum with your tasks. Keep tracking your progress to get more detailed insights.",
		"insights":     []any{"Breaking work into subtasks makes progress easier to see."},
		"suggestions":  []any{"Pick one pending task and finish its next subtask today.", "Add deadlines to tasks that don't have one yet."},
		"motivation":   "Every completed step counts. You've got this!",
		"achievements": []any{"You're actively organizing your work."},
		"growth_areas": []any{"Consistency in completing started tasks."},
	}
}

// ExtractOr returns the object embedded in raw, or the fallback encoded as
// JSON. The bool reports whether the fallback was used.
func ExtractOr(raw string, fallback map[string]any) (json.RawMessage, bool) {
	if obj, err := ExtractObject(raw); err == nil {
		return obj, false
	}
	b, _ := json.Marshal(fallback)
	return b, true
}
