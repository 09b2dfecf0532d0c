package toolresult

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeExecutionEnvelope(t *testing.T) {
	t.Run("failed execution", func(t *testing.T) {
		payload := map[string]any{
			"tool_execution": map[string]any{
				"function_name": "web_search",
				"result": map[string]any{
					"success": false,
					"output":  "timeout",
				},
			},
		}

		r := Normalize(payload)
		require.NotNil(t, r)
		assert.Equal(t, "web-search", r.ToolName)
		assert.Equal(t, "web_search", r.FunctionName)
		assert.Equal(t, "timeout", r.Output)
		assert.False(t, r.Success)
	})

	t.Run("xml tag name wins for display", func(t *testing.T) {
		payload := `{"tool_execution":{"function_name":"execute_command","xml_tag_name":"execute-command","result":{"output":"done"}}}`

		r := Normalize(payload)
		require.NotNil(t, r)
		assert.Equal(t, "execute-command", r.ToolName)
		assert.Equal(t, "execute_command", r.FunctionName)
		assert.Equal(t, "execute-command", r.XMLTagName)
		assert.True(t, r.Success, "absent success marker defaults to success")
	})

	t.Run("result string fallback when no nested output", func(t *testing.T) {
		payload := `{"tool_execution":{"function_name":"ask","result":"plain output"}}`

		r := Normalize(payload)
		require.NotNil(t, r)
		assert.Equal(t, "plain output", r.Output)
	})

	t.Run("structured output kept as raw json", func(t *testing.T) {
		payload := `{"tool_execution":{"function_name":"web_search","result":{"output":{"hits":3}}}}`

		r := Normalize(payload)
		require.NotNil(t, r)
		assert.JSONEq(t, `{"hits":3}`, r.Output)
	})

	t.Run("arguments, call id and timestamp", func(t *testing.T) {
		payload := `{"tool_execution":{"function_name":"web_search","tool_call_id":"call-7",` +
			`"timestamp":"2025-03-01T10:00:00Z",` +
			`"arguments":{"query":"golang"},"result":{"output":"ok"}}}`

		r := Normalize(payload)
		require.NotNil(t, r)
		assert.Equal(t, "call-7", r.ToolCallID)
		assert.Equal(t, map[string]any{"query": "golang"}, r.Arguments)
		require.NotNil(t, r.Timestamp)
		assert.Equal(t, time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC), r.Timestamp.UTC())
	})
}

func TestNormalizeRoleContentEnvelope(t *testing.T) {
	t.Run("content holding an execution envelope", func(t *testing.T) {
		payload := `{"role":"tool","content":{"tool_execution":{"function_name":"web_search","result":{"success":false,"output":"no results"}}}}`

		r := Normalize(payload)
		require.NotNil(t, r)
		assert.Equal(t, "web-search", r.ToolName)
		assert.False(t, r.Success)
		assert.Equal(t, "no results", r.Output)
	})

	t.Run("content holding a legacy named shape", func(t *testing.T) {
		payload := `{"role":"tool","content":{"tool_name":"create-file","output":"written"}}`

		r := Normalize(payload)
		require.NotNil(t, r)
		assert.Equal(t, "create-file", r.ToolName)
		assert.Equal(t, "create_file", r.FunctionName)
		assert.Equal(t, "written", r.Output)
		assert.True(t, r.Success)
	})

	t.Run("content holding a legacy inline string", func(t *testing.T) {
		payload := `{"role":"tool","content":"ToolResult(success=False, output=\"oops\") for <execute-command>"}`

		r := Normalize(payload)
		require.NotNil(t, r)
		assert.Equal(t, "execute-command", r.ToolName)
		assert.False(t, r.Success)
	})
}

func TestNormalizeFlatNamed(t *testing.T) {
	t.Run("tool_name only", func(t *testing.T) {
		r := Normalize(`{"tool_name":"web_search","result":{"output":"three hits"}}`)
		require.NotNil(t, r)
		assert.Equal(t, "web-search", r.ToolName)
		assert.Equal(t, "three hits", r.Output)
	})

	t.Run("xml_tag_name wins over tool_name", func(t *testing.T) {
		r := Normalize(`{"tool_name":"execute_command","xml_tag_name":"execute-command","output":"ran"}`)
		require.NotNil(t, r)
		assert.Equal(t, "execute-command", r.ToolName)
		assert.Equal(t, "execute_command", r.FunctionName)
		assert.Equal(t, "ran", r.Output)
	})

	t.Run("explicit top-level failure", func(t *testing.T) {
		r := Normalize(`{"tool_name":"deploy","success":false,"output":"denied"}`)
		require.NotNil(t, r)
		assert.False(t, r.Success)
	})

	t.Run("summary preserved", func(t *testing.T) {
		r := Normalize(`{"tool_name":"web_search","output":"...","summary":"searched the web"}`)
		require.NotNil(t, r)
		assert.Equal(t, "searched the web", r.Summary)
	})
}

func TestNormalizeLegacyInlineString(t *testing.T) {
	t.Run("tagged failure string", func(t *testing.T) {
		r := Normalize(`ToolResult(success=False, output="command not found") for <execute-command>`)
		require.NotNil(t, r)
		assert.Equal(t, "execute-command", r.ToolName)
		assert.False(t, r.Success)
		assert.Contains(t, r.Output, "command not found")
	})

	t.Run("tagged success string", func(t *testing.T) {
		r := Normalize(`ToolResult(success=True, output="done") for <create-file>`)
		require.NotNil(t, r)
		assert.Equal(t, "create-file", r.ToolName)
		assert.True(t, r.Success)
	})

	t.Run("failure marker outside wrapper phrase is ignored", func(t *testing.T) {
		r := Normalize(`the flag success=false appears in prose`)
		require.NotNil(t, r)
		assert.True(t, r.Success)
	})

	t.Run("bare string", func(t *testing.T) {
		r := Normalize("42")
		require.NotNil(t, r)
		assert.Equal(t, "unknown", r.ToolName)
		assert.Equal(t, "42", r.Output)
		assert.True(t, r.Success)
	})
}

func TestNormalizeDirectOutput(t *testing.T) {
	r := Normalize(`{"output":"hello","summary":"greeting"}`)
	require.NotNil(t, r)
	assert.Equal(t, "unknown", r.ToolName)
	assert.Equal(t, "hello", r.Output)
	assert.Equal(t, "greeting", r.Summary)
	assert.True(t, r.Success)
}

func TestNormalizeOpaqueObjectFallback(t *testing.T) {
	r := Normalize(map[string]any{"replay_id": 9})
	require.NotNil(t, r)
	assert.Equal(t, "unknown-object", r.ToolName)
	assert.Equal(t, "unknown_object", r.FunctionName)
	assert.JSONEq(t, `{"replay_id":9}`, r.Output)
	assert.True(t, r.Success)
}

func TestNormalizeUnrecognizable(t *testing.T) {
	assert.Nil(t, Normalize(nil))
	assert.Nil(t, Normalize(json.RawMessage(`[1,2,3]`)))
	assert.Nil(t, Normalize(json.RawMessage(`17`)))
	assert.Nil(t, Normalize(json.RawMessage(`true`)))
}

func TestShapeCascadeOrder(t *testing.T) {
	// The cascade is ordered and first match wins; shape order is part of
	// the normalizer's contract.
	want := []string{
		"execution_envelope",
		"role_content_object",
		"role_content_string",
		"flat_named",
		"direct_output",
		"opaque_object",
	}
	require.Len(t, shapes, len(want))
	for i, s := range shapes {
		assert.Equal(t, want[i], s.name)
	}
}

func TestNormalizeNestedRoleContent(t *testing.T) {
	// role/content can wrap another role/content layer; extraction recurses
	// until a terminal shape matches.
	payload := `{"role":"tool","content":{"role":"tool","content":{"tool_name":"web-search","output":"found"}}}`

	r := Normalize(payload)
	require.NotNil(t, r)
	assert.Equal(t, "web-search", r.ToolName)
	assert.Equal(t, "found", r.Output)
}

func TestNormalizeIdempotentOnCanonicalEnvelope(t *testing.T) {
	first := Normalize(`{"tool_execution":{"function_name":"web_search","xml_tag_name":"web-search","result":{"success":false,"output":"timeout"}}}`)
	require.NotNil(t, first)

	rewrapped := map[string]any{
		"tool_execution": map[string]any{
			"function_name": first.FunctionName,
			"xml_tag_name":  first.XMLTagName,
			"result": map[string]any{
				"success": first.Success,
				"output":  first.Output,
			},
		},
	}

	second := Normalize(rewrapped)
	require.NotNil(t, second)
	assert.Equal(t, first.ToolName, second.ToolName)
	assert.Equal(t, first.FunctionName, second.FunctionName)
	assert.Equal(t, first.XMLTagName, second.XMLTagName)
	assert.Equal(t, first.Output, second.Output)
	assert.Equal(t, first.Success, second.Success)
}

func TestNormalizeNameFormsAlwaysPaired(t *testing.T) {
	payloads := []any{
		`{"tool_execution":{"function_name":"browser_navigate_to","result":{"output":"ok"}}}`,
		`{"tool_name":"str-replace","output":"ok"}`,
		`ToolResult(success=True, output="x") for <full-file-rewrite>`,
	}

	for _, p := range payloads {
		r := Normalize(p)
		require.NotNil(t, r)
		// The two forms are separator transforms of one source name.
		assert.Equal(t, r.ToolName, func() string {
			out := r.FunctionName
			for i := 0; i < len(out); i++ {
				if out[i] == '_' {
					out = out[:i] + "-" + out[i+1:]
				}
			}
			return out
		}())
	}
}
