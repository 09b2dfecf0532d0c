package segment

// Config names the tag grammar the segmenter recognizes. Recognized tag
// sets are configuration rather than package state so tests can vary them
// without touching shared globals.
type Config struct {
	// ReasoningTag is the paired tag holding reasoning spans.
	ReasoningTag string

	// AskTag is the user-facing question tag. Its content renders as prose
	// with attachments, never as a generic tool invocation.
	AskTag string

	// CitationTag is reserved for inline citations and is never treated as
	// a tool call.
	CitationTag string

	// WrapperTag is the consolidated dialect's outer grouping tag.
	WrapperTag string

	// InvokeTag and ParameterTag form the consolidated dialect's inner
	// grammar.
	InvokeTag    string
	ParameterTag string

	// AttachmentsAttr is the ask tag attribute carrying a comma-separated
	// attachment list.
	AttachmentsAttr string

	// PrimaryParams is the priority order used to pick the one parameter
	// shown in compact tool-call display. First present wins.
	PrimaryParams []string

	// StreamingTags is the allow-list of invocation tag names that may
	// trigger a running-tool placeholder while the message is still
	// arriving. During streaming the tag name is often the only
	// fully-formed signal, so only names with prior unambiguous signatures
	// belong here. Distinct from the full parsing grammar.
	StreamingTags []string
}

// DefaultConfig returns the tag grammar used by the production backend.
func DefaultConfig() Config {
	return Config{
		ReasoningTag:    "think",
		AskTag:          "ask",
		CitationTag:     "cite",
		WrapperTag:      "function_calls",
		InvokeTag:       "invoke",
		ParameterTag:    "parameter",
		AttachmentsAttr: "attachments",
		PrimaryParams:   []string{"file_path", "command", "query", "url"},
		StreamingTags: []string{
			"execute-command",
			"create-file",
			"full-file-rewrite",
			"str-replace",
			"browser-navigate-to",
			"web-search",
			"scrape-webpage",
			"deploy",
			"ask",
			"complete",
		},
	}
}
