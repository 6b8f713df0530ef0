package llm

import (
	"encoding/json"
	"errors"
	"strings"
)

var ErrNoJSON = errors.New("llm: no JSON object in response")

// ExtractObject finds a JSON object in model output that may be wrapped in
// prose or code fences. It tries, in order: the whole text, the slice
// between the first '{' and the last '}', and finally a depth-aware scan
// that respects string literals. The last step only runs when the cheap
// heuristic picked the wrong boundaries.
func ExtractObject(raw string) (json.RawMessage, error) {
	text := strings.TrimSpace(raw)
	if isObject(text) {
		return json.RawMessage(text), nil
	}

	start := strings.Index(text, "{")
	end := strings.LastIndex(text, "}")
	if start < 0 || end <= start {
		return nil, ErrNoJSON
	}
	if candidate := text[start : end+1]; isObject(candidate) {
		return json.RawMessage(candidate), nil
	}

	for i := start; i < len(text); i++ {
		if text[i] != '{' {
			continue
		}
		if j := matchBrace(text, i); j > i {
			if candidate := text[i : j+1]; isObject(candidate) {
				return json.RawMessage(candidate), nil
			}
		}
	}
	return nil, ErrNoJSON
}

// Decode extracts an object from raw and unmarshals it into v.
func Decode(raw string, v any) error {
	obj, err := ExtractObject(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(obj, v)
}

func isObject(s string) bool {
	if !strings.HasPrefix(s, "{") {
		return false
	}
	var m map[string]json.RawMessage
	return json.Unmarshal([]byte(s), &m) == nil
}

// matchBrace returns the index of the '}' closing the '{' at open, or -1.
func matchBrace(s string, open int) int {
	depth := 0
	inString := false
	escaped := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			switch {
			case escaped:
				escaped = false
			case c == '\\':
				escaped = true
			case c == '"':
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}
