// Package segment splits agent message text into ordered content segments.
//
// Agent output mixes prose, <think> reasoning spans, and tool invocations
// written in one of two mutually exclusive tag dialects. The legacy dialect
// puts each invocation in its own top-level tag directly inside prose; the
// consolidated dialect groups stricter invocation sub-tags under a single
// wrapper tag. [Segmenter.Detect] resolves the dialect once per message.
//
// Segmentation is lossless: the source spans of the returned segments tile
// the input, so concatenating them reconstructs the message exactly. The
// one exception is a still-streaming message ending in an unterminated
// recognized tag, which collapses into a running-tool placeholder segment.
//
// Malformed input never fails; unrecognizable structure degrades to plain
// text spans so the raw signal stays visible.
package segment
