package agentwire

import "time"

// ToolResult is the canonical, shape-independent record of one tool
// execution outcome. Stored payloads in every historical shape normalize to
// this.
type ToolResult struct {
	// ToolName is the display form of the tool name (hyphen-separated).
	ToolName string `json:"toolName"`

	// FunctionName is the identifier form (underscore-separated). It is
	// always the separator transform of ToolName, never derived
	// independently.
	FunctionName string `json:"functionName"`

	// XMLTagName is the tag the agent used to invoke the tool, when known.
	XMLTagName string `json:"xmlTagName,omitempty"`

	// Output is the execution output. May be empty.
	Output string `json:"toolOutput"`

	// Success reports whether the execution succeeded. Payloads that carry
	// no explicit failure marker normalize to true; older stored data
	// depends on that default.
	Success bool `json:"isSuccess"`

	// Arguments holds the invocation arguments, when the payload carried
	// them.
	Arguments map[string]any `json:"arguments,omitempty"`

	// Timestamp records when the tool ran, when the payload carried it.
	Timestamp *time.Time `json:"timestamp,omitempty"`

	// ToolCallID correlates the result with its originating call.
	ToolCallID string `json:"toolCallId,omitempty"`

	// Summary is an optional condensed description of the outcome.
	Summary string `json:"summary,omitempty"`
}
