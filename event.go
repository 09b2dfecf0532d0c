package agentwire

import "github.com/google/uuid"

// EventKind identifies the kind of a decoded stream event. The values are
// the exact wire strings produced by the agent backend.
type EventKind string

const (
	// KindThought carries incremental assistant text (prose and reasoning).
	KindThought EventKind = "thought"

	// KindToolCall announces that the agent started a tool.
	KindToolCall EventKind = "tool_call"

	// KindToolResult carries the outcome of a tool execution.
	KindToolResult EventKind = "tool_result"

	// KindFinalResponse carries the complete assembled response text.
	KindFinalResponse EventKind = "final_response"

	// KindError reports a failure raised by the backend mid-run.
	KindError EventKind = "error"
)

// Valid reports whether k is one of the enumerated event kinds. Frames
// carrying any other kind are decode errors, never silently dropped.
func (k EventKind) Valid() bool {
	switch k {
	case KindThought, KindToolCall, KindToolResult, KindFinalResponse, KindError:
		return true
	}
	return false
}

// Event is one typed record decoded from a stream frame. It is constructed
// by the stream package, handed to the caller's handler exactly once, and
// not retained by the decoder.
type Event struct {
	Kind EventKind `json:"type"`

	// Content holds the text payload for thought and final_response events.
	Content string `json:"content,omitempty"`

	// ToolName identifies the tool for tool_call and tool_result events.
	ToolName string `json:"tool_name,omitempty"`

	// ToolArgs holds the tool arguments for tool_call events.
	ToolArgs map[string]any `json:"tool_args,omitempty"`

	// ToolOutput holds the execution output for tool_result events.
	ToolOutput string `json:"tool_output,omitempty"`

	// IsError marks a failed tool execution on tool_result events.
	IsError bool `json:"is_error,omitempty"`

	// Message holds the failure description for error events.
	Message string `json:"message,omitempty"`
}

// GenerateMessageID creates a unique message identifier.
func GenerateMessageID() string {
	return "msg-" + uuid.New().String()
}

// GenerateStreamID creates a unique stream identifier.
func GenerateStreamID() string {
	return "stream-" + uuid.New().String()
}

// GenerateToolCallID creates a unique tool call identifier.
func GenerateToolCallID() string {
	return "call-" + uuid.New().String()
}
