package agentwire

// SegmentType identifies the variant of a content segment.
type SegmentType string

const (
	// SegmentText is plain prose.
	SegmentText SegmentType = "text"

	// SegmentReasoning is the inner content of a reasoning span.
	SegmentReasoning SegmentType = "reasoning"

	// SegmentToolInvocation is a parsed tool-invocation tag.
	SegmentToolInvocation SegmentType = "tool_invocation"

	// SegmentPlaceholder marks an unterminated invocation tag at the end of
	// a still-streaming message. It stands in for everything from the
	// opening tag to the end of the buffer until more text arrives.
	SegmentPlaceholder SegmentType = "placeholder"
)

// ToolInvocation is a tool call parsed out of message text.
type ToolInvocation struct {
	// Name is the display form of the tool name (hyphen-separated).
	Name string

	// RawTag is the exact source text of the tag, open through close.
	RawTag string

	// Parameters holds the extracted tag parameters. For the legacy dialect
	// these are the tag's explicit attributes; for the consolidated dialect
	// the full parameter list.
	Parameters map[string]string

	// PrimaryParam is the single most representative argument, chosen for
	// compact display.
	PrimaryParam string
}

// Segment is one ordered piece of a segmented message. Exactly one of the
// variant fields is populated, selected by Type. Start and End are offsets
// into the source text; the spans of a message's segments tile the source in
// order, so concatenating source[Start:End] over all segments reconstructs
// the input.
type Segment struct {
	Type SegmentType

	// Text is the prose content for SegmentText.
	Text string

	// Reasoning is the inner reasoning content for SegmentReasoning.
	Reasoning string

	// Invocation is the parsed call for SegmentToolInvocation.
	Invocation *ToolInvocation

	// Attachments lists attachment identifiers from an ask tag. Only set on
	// SegmentText segments produced from an ask tag.
	Attachments []string

	// ToolName is the earliest detected tag name for SegmentPlaceholder.
	ToolName string

	// Start and End delimit the source span of this segment.
	Start int
	End   int
}

// Span returns the source substring covered by the segment.
func (s Segment) Span(source string) string {
	if s.Start < 0 || s.End > len(source) || s.Start > s.End {
		return ""
	}
	return source[s.Start:s.End]
}
