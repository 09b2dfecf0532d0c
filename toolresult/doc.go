// Package toolresult normalizes stored tool-result payloads.
//
// The backend has stored tool results in several structurally different
// shapes over time: stringified legacy results, modern execution envelopes,
// role/content message wrappers, and flat named records. [Normalize] runs an
// ordered first-match-wins cascade over those shapes and produces one
// canonical [github.com/agentwire/agentwire.ToolResult], or nil when
// nothing is recognizable. Backward compatibility is a hard requirement:
// every shape ever written must keep normalizing correctly.
package toolresult
