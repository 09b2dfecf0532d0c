package toolresult

import (
	"encoding/json"
	"regexp"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	wire "github.com/agentwire/agentwire"
)

// Normalize converts one raw tool-result payload into a canonical record.
// The payload may be a string, raw JSON, or an already-decoded object; all
// historical shapes stored by the backend are recognized indefinitely. The
// return is nil only when nothing recognizable is found; shape misses are
// a caller decision, never an error.
//
// Success defaults to true unless the payload explicitly marks failure.
// Older stored data carries no success indicator at all and depends on
// that default.
func Normalize(payload any) *wire.ToolResult {
	switch v := payload.(type) {
	case nil:
		return nil
	case string:
		return normalizeString(v)
	case []byte:
		return normalizeRaw(string(v))
	case json.RawMessage:
		return normalizeRaw(string(v))
	default:
		raw, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return normalizeRaw(string(raw))
	}
}

func normalizeRaw(raw string) *wire.ToolResult {
	if !gjson.Valid(raw) {
		return normalizeString(raw)
	}
	g := gjson.Parse(raw)
	switch g.Type {
	case gjson.String:
		return normalizeString(g.String())
	case gjson.JSON:
		if g.IsObject() {
			return normalizeObject(g)
		}
		return nil
	default:
		return nil
	}
}

// normalizeString handles string payloads: structured objects serialized to
// a string take the object path, anything else is the legacy inline format.
func normalizeString(s string) *wire.ToolResult {
	if gjson.Valid(s) {
		if g := gjson.Parse(s); g.IsObject() {
			return normalizeObject(g)
		}
	}
	return legacyInline(s)
}

// shape pairs a predicate with its extractor. The cascade is ordered and
// first match wins; new legacy shapes append without disturbing prior ones.
type shape struct {
	name    string
	match   func(g gjson.Result) bool
	extract func(g gjson.Result) *wire.ToolResult
}

// shapes is populated in init: the role/content extractors recurse through
// normalizeObject/normalizeString, which range over shapes, so a static
// initializer would be an initialization cycle.
var shapes []shape

func init() {
	shapes = []shape{
		{
			name:    "execution_envelope",
			match:   func(g gjson.Result) bool { return g.Get("tool_execution").IsObject() },
			extract: extractExecutionEnvelope,
		},
		{
			name: "role_content_object",
			match: func(g gjson.Result) bool {
				return g.Get("role").Exists() && g.Get("content").IsObject()
			},
			extract: func(g gjson.Result) *wire.ToolResult {
				return normalizeObject(g.Get("content"))
			},
		},
		{
			name: "role_content_string",
			match: func(g gjson.Result) bool {
				return g.Get("role").Exists() && g.Get("content").Type == gjson.String
			},
			extract: func(g gjson.Result) *wire.ToolResult {
				return normalizeString(g.Get("content").String())
			},
		},
		{
			name: "flat_named",
			match: func(g gjson.Result) bool {
				return g.Get("tool_name").Exists() || g.Get("xml_tag_name").Exists()
			},
			extract: extractFlatNamed,
		},
		{
			name:    "direct_output",
			match:   func(g gjson.Result) bool { return g.Get("output").Type == gjson.String },
			extract: extractDirectOutput,
		},
		{
			name:  "opaque_object",
			match: func(g gjson.Result) bool { return true },
			extract: func(g gjson.Result) *wire.ToolResult {
				// No well-formed object normalizes to a totally empty result.
				r := newResult("unknown_object")
				r.Output = g.Raw
				return r
			},
		},
	}
}

func normalizeObject(g gjson.Result) *wire.ToolResult {
	for _, s := range shapes {
		if s.match(g) {
			return s.extract(g)
		}
	}
	return nil
}

// newResult builds a record with both name forms derived from one source
// name, never independently.
func newResult(name string) *wire.ToolResult {
	if name == "" {
		name = "unknown"
	}
	return &wire.ToolResult{
		ToolName:     wire.DisplayName(name),
		FunctionName: wire.FunctionName(name),
		Success:      true,
	}
}

// extractExecutionEnvelope handles the modern shape:
//
//	{"tool_execution": {"function_name": ..., "xml_tag_name": ...,
//	  "arguments": {...}, "result": {"success": ..., "output": ...}}}
func extractExecutionEnvelope(g gjson.Result) *wire.ToolResult {
	te := g.Get("tool_execution")

	name := te.Get("function_name").String()
	if tag := te.Get("xml_tag_name").String(); tag != "" {
		name = tag
	}
	r := newResult(name)
	r.XMLTagName = te.Get("xml_tag_name").String()
	r.Output = envelopeOutput(te.Get("result"))
	r.Success = successOf(te.Get("result.success"))
	r.ToolCallID = te.Get("tool_call_id").String()
	r.Summary = firstString(g.Get("summary"), te.Get("summary"))
	if args := te.Get("arguments"); args.IsObject() {
		r.Arguments, _ = args.Value().(map[string]any)
	}
	if ts := parseTimestamp(te.Get("timestamp")); ts != nil {
		r.Timestamp = ts
	}
	return r
}

// extractFlatNamed handles legacy flat records carrying tool_name or
// xml_tag_name directly, with a direct output field fallback the envelope
// shape does not have.
func extractFlatNamed(g gjson.Result) *wire.ToolResult {
	name := g.Get("tool_name").String()
	if tag := g.Get("xml_tag_name").String(); tag != "" {
		name = tag
	}
	r := newResult(name)
	r.XMLTagName = g.Get("xml_tag_name").String()

	r.Output = envelopeOutput(g.Get("result"))
	if r.Output == "" {
		r.Output = g.Get("output").String()
	}
	r.Success = successOf(g.Get("result.success")) && successOf(g.Get("success"))
	r.ToolCallID = g.Get("tool_call_id").String()
	r.Summary = g.Get("summary").String()
	if args := g.Get("arguments"); args.IsObject() {
		r.Arguments, _ = args.Value().(map[string]any)
	}
	if ts := parseTimestamp(g.Get("timestamp")); ts != nil {
		r.Timestamp = ts
	}
	return r
}

func extractDirectOutput(g gjson.Result) *wire.ToolResult {
	r := newResult("unknown")
	r.Output = g.Get("output").String()
	r.Success = successOf(g.Get("success"))
	r.Summary = g.Get("summary").String()
	return r
}

var (
	inlineTagRe     = regexp.MustCompile(`<([a-zA-Z][a-zA-Z0-9_-]*)(?:\s[^>]*)?>`)
	inlineFailureRe = regexp.MustCompile(`(?i)success\s*=\s*false`)
)

// legacyInline handles the oldest stored format: a stringified result like
//
//	ToolResult(success=False, output="...") for <execute-command>
//
// The tool name comes from the first XML-like tag if any; failure requires
// an explicit marker inside a recognizable result wrapper phrase, anything
// else is success.
func legacyInline(s string) *wire.ToolResult {
	name := "unknown"
	if m := inlineTagRe.FindStringSubmatch(s); m != nil {
		name = m[1]
	}
	r := newResult(name)
	r.Output = s
	if strings.Contains(s, "ToolResult") && inlineFailureRe.MatchString(s) {
		r.Success = false
	}
	return r
}

// envelopeOutput prefers a nested result.output string, falling back to the
// result value itself when it is a non-empty string.
func envelopeOutput(result gjson.Result) string {
	if out := result.Get("output"); out.Exists() {
		if out.Type == gjson.String {
			return out.String()
		}
		if out.IsObject() || out.IsArray() {
			return out.Raw
		}
	}
	if result.Type == gjson.String && result.String() != "" {
		return result.String()
	}
	return ""
}

// successOf is false only for an explicit false value.
func successOf(v gjson.Result) bool {
	return !(v.Exists() && v.Type == gjson.False)
}

func firstString(vs ...gjson.Result) string {
	for _, v := range vs {
		if s := v.String(); s != "" {
			return s
		}
	}
	return ""
}

func parseTimestamp(v gjson.Result) *time.Time {
	if v.Type != gjson.String {
		return nil
	}
	t, err := time.Parse(time.RFC3339, v.String())
	if err != nil {
		return nil
	}
	return &t
}
