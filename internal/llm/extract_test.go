package llm

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestExtractObject_ValidJSONUnchanged(t *testing.T) {
	raw := `{"title":"Write report","subtasks":[{"description":"Gather data","deadline":"2025-04-01"}],"deadline":"2025-04-15","priority":"high"}`

	obj, err := ExtractObject(raw)
	require.NoError(t, err)
	assert.JSONEq(t, raw, string(obj))
}

func TestExtractObject_ProseAround(t *testing.T) {
	raw := "Sure! Here is the breakdown you asked for:\n\n" +
		`{"title": "Plan party", "priority": "medium"}` +
		"\n\nLet me know if you need anything else."

	var got map[string]any
	require.NoError(t, Decode(raw, &got))
	assert.Equal(t, "Plan party", got["title"])
	assert.Equal(t, "medium", got["priority"])
}

func TestExtractObject_CodeFence(t *testing.T) {
	raw := "```json\n{\"title\": \"Clean garage\"}\n```"

	var got map[string]any
	require.NoError(t, Decode(raw, &got))
	assert.Equal(t, "Clean garage", got["title"])
}

func TestExtractObject_BracesInProseUseDepthScan(t *testing.T) {
	// first '{' belongs to prose, so the first/last slice is not valid JSON
	raw := `Use {curly} placeholders. Result: {"title": "A {tricky} one", "priority": "low"} done`

	var got map[string]any
	require.NoError(t, Decode(raw, &got))
	assert.Equal(t, "A {tricky} one", got["title"])
}

func TestExtractObject_NoJSON(t *testing.T) {
	for _, raw := range []string{
		"",
		"I'm having trouble connecting right now.",
		"{ not json }",
		"} backwards {",
		`["an", "array"]`,
	} {
		_, err := ExtractObject(raw)
		assert.ErrorIs(t, err, ErrNoJSON, "input %q", raw)
	}
}

func TestExtractOr_FallbackShape(t *testing.T) {
	obj, used := ExtractOr("the model rambled without JSON", TaskFallback("Plan a birthday party"))
	require.True(t, used)

	var got map[string]any
	require.NoError(t, json.Unmarshal(obj, &got))
	for _, key := range []string{"title", "subtasks", "deadline", "priority", "emotional_support"} {
		assert.Contains(t, got, key)
	}
	assert.Equal(t, "Plan a birthday party", got["title"])
	assert.Equal(t, []any{FallbackSubtask}, got["subtasks"])
	assert.Nil(t, got["deadline"])
	assert.Equal(t, "medium", got["priority"])
}

func TestExtractOr_NoFallbackWhenParsed(t *testing.T) {
	obj, used := ExtractOr(`{"summary":"ok"}`, FeedbackFallback())
	assert.False(t, used)
	assert.JSONEq(t, `{"summary":"ok"}`, string(obj))
}

func TestExtractObject_RecoversEmbeddedObjectProperty(t *testing.T) {
	prose := rapid.StringMatching(`[A-Za-z ,.!:\n]{0,40}`)
	rapid.Check(t, func(rt *rapid.T) {
		title := rapid.StringMatching(`[A-Za-z ]{1,30}`).Draw(rt, "title")
		n := rapid.IntRange(0, 7).Draw(rt, "subtasks")
		subtasks := make([]string, n)
		for i := range subtasks {
			subtasks[i] = fmt.Sprintf("step %d", i)
		}
		payload, _ := json.Marshal(map[string]any{"title": title, "subtasks": subtasks})
		raw := prose.Draw(rt, "before") + string(payload) + prose.Draw(rt, "after")

		obj, err := ExtractObject(raw)
		if err != nil {
			rt.Fatalf("extract %q: %v", raw, err)
		}
		var got struct {
			Title    string   `json:"title"`
			Subtasks []string `json:"subtasks"`
		}
		if err := json.Unmarshal(obj, &got); err != nil {
			rt.Fatalf("unmarshal: %v", err)
		}
		if got.Title != title || len(got.Subtasks) != n {
			rt.Fatalf("got %+v from %q", got, raw)
		}
	})
}
