package services

import (
	"bytes"
	"encoding/json"
	"strings"
)

// looseString accepts any JSON scalar. Models sometimes answer with
// numbers or null where text was asked for.
type looseString string

func (s *looseString) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = looseString(strings.TrimSpace(str))
		return nil
	}
	*s = looseString(b)
	return nil
}

func (s looseString) String() string { return string(s) }

type SubtaskKind int

const (
	SubtaskStructured SubtaskKind = iota
	// SubtaskLegacyDescriptionOnly is a bare string item.
	SubtaskLegacyDescriptionOnly
)

// SubtaskDraft is one subtask as proposed by the model.
type SubtaskDraft struct {
	Kind        SubtaskKind
	Title       string
	Description string
	Deadline    string
	Priority    string
	Workload    string
}

func (d *SubtaskDraft) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var obj struct {
			Title       looseString `json:"title"`
			Description looseString `json:"description"`
			Deadline    looseString `json:"deadline"`
			Priority    looseString `json:"priority"`
			Workload    looseString `json:"workload"`
		}
		if err := json.Unmarshal(b, &obj); err != nil {
			return err
		}
		*d = SubtaskDraft{
			Kind:        SubtaskStructured,
			Title:       obj.Title.String(),
			Description: obj.Description.String(),
			Deadline:    obj.Deadline.String(),
			Priority:    obj.Priority.String(),
			Workload:    obj.Workload.String(),
		}
		return nil
	}
	var text looseString
	if err := json.Unmarshal(b, &text); err != nil {
		return err
	}
	*d = SubtaskDraft{Kind: SubtaskLegacyDescriptionOnly, Description: text.String()}
	return nil
}

// DisplayTitle falls back to the description when the model gave no title.
func (d SubtaskDraft) DisplayTitle() string {
	if d.Title != "" {
		return d.Title
	}
	return d.Description
}

func (d SubtaskDraft) empty() bool {
	return d.Title == "" && d.Description == ""
}

// Decomposition is the typed form of the model's task breakdown.
type Decomposition struct {
	Title            looseString    `json:"title"`
	Subtasks         []SubtaskDraft `json:"subtasks"`
	Deadline         looseString    `json:"deadline"`
	Priority         looseString    `json:"priority"`
	EmotionalSupport looseString    `json:"emotional_support"`
	// Fallback is set when the model output could not be used.
	Fallback bool `json:"-"`
}
