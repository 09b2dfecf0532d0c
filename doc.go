// Package agentwire decodes and normalizes the streamed output of a remote
// AI agent.
//
// An agent run is delivered as a long-lived HTTP response carrying
// blank-line-delimited frames, each prefixed with "data: " and holding one
// JSON event. The agent's textual payload mixes prose, <think> reasoning
// spans, and one of two XML-like tool-invocation dialects; stored tool
// results arrive in several historical shapes. This module turns all of that
// into typed, ordered, canonical records:
//
//   - [github.com/agentwire/agentwire/stream]: reassembles frames from
//     arbitrary chunk boundaries and parses them into [Event] records.
//   - [github.com/agentwire/agentwire/segment]: splits message text into
//     ordered prose/reasoning/tool-invocation [Segment] values.
//   - [github.com/agentwire/agentwire/toolresult]: normalizes any historical
//     tool-result payload into one [ToolResult].
//   - [github.com/agentwire/agentwire/agui]: maps decoded events to AG-UI
//     protocol events for AG-UI-compatible frontends.
//
// # Decoding a stream
//
//	err := stream.Run(ctx, resp.Body, stream.Handler{
//	    OnEvent: func(ev agentwire.Event) {
//	        fmt.Println(ev.Kind, ev.Content)
//	    },
//	})
//
// # Segmenting message text
//
//	seg := segment.New(segment.DefaultConfig())
//	segments := seg.Segment("msg-1", text, segment.Options{})
//
// # Normalizing a stored tool result
//
//	result := toolresult.Normalize(payload)
//	if result != nil {
//	    fmt.Println(result.ToolName, result.Output)
//	}
//
// The root package holds the value types shared by those stages. All of them
// are immutable once produced; the segmenter and normalizer are pure
// functions of their input and safe for concurrent use.
package agentwire
