// Package stream decodes an agent-run response body into typed events.
//
// The transport delivers blank-line-delimited frames, each prefixed with
// "data: " and carrying one JSON event record. Chunks can arrive at
// arbitrary boundaries, including mid-frame and mid-rune; [Decoder]
// reassembles them with a rolling buffer so that any split of the byte
// stream yields the same frame sequence as undivided delivery.
//
// [ParseFrame] turns one frame into one [github.com/agentwire/agentwire.Event].
// Frames that are transport noise or that fail to parse never abort the
// stream; [Run] logs and reports them and keeps reading. Only transport
// failures are terminal.
package stream
