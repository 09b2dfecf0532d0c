package segment

import (
	"log/slog"
	"regexp"
	"strings"

	wire "github.com/agentwire/agentwire"
)

// Dialect identifies which tool-invocation grammar a message uses. It is
// decided once per message so a message is never interpreted under mixed
// grammars.
type Dialect string

const (
	// DialectLegacy mixes free-form invocation tags directly into prose.
	DialectLegacy Dialect = "legacy"

	// DialectConsolidated groups invocation sub-tags under one wrapper tag.
	DialectConsolidated Dialect = "consolidated"
)

// Options carries per-message segmentation context.
type Options struct {
	// Streaming marks a message that is still arriving. An unterminated
	// allow-listed tag at the end of the buffer then becomes a placeholder
	// segment instead of prose.
	Streaming bool

	// ReasoningExtracted marks reasoning spans as already pulled out by
	// ExtractThink; reasoning tags are then left alone as literal text.
	// Always implied for the consolidated dialect.
	ReasoningExtracted bool
}

// Segmenter splits message text into ordered content segments. It holds no
// state between calls; one Segmenter may serve any number of concurrent
// render passes.
type Segmenter struct {
	cfg    Config
	logger *slog.Logger

	openRe    *regexp.Regexp
	attrRe    *regexp.Regexp
	wrapperRe *regexp.Regexp
	wopenRe   *regexp.Regexp
	invOpenRe *regexp.Regexp
	paramRe   *regexp.Regexp

	placeholderTags map[string]bool
}

// SegmenterOption configures a Segmenter.
type SegmenterOption func(*Segmenter)

// WithLogger sets the logger used for dialect decisions and degraded spans.
// Defaults to slog.Default.
func WithLogger(l *slog.Logger) SegmenterOption {
	return func(s *Segmenter) {
		s.logger = l
	}
}

// New creates a Segmenter for the given tag grammar.
func New(cfg Config, opts ...SegmenterOption) *Segmenter {
	wrapper := regexp.QuoteMeta(cfg.WrapperTag)
	invoke := regexp.QuoteMeta(cfg.InvokeTag)
	param := regexp.QuoteMeta(cfg.ParameterTag)

	s := &Segmenter{
		cfg:    cfg,
		logger: slog.Default(),

		openRe:    regexp.MustCompile(`(?i)<([a-zA-Z][a-zA-Z0-9_-]*)((?:\s+[a-zA-Z_][a-zA-Z0-9_-]*="[^"]*")*)\s*(/?)>`),
		attrRe:    regexp.MustCompile(`([a-zA-Z_][a-zA-Z0-9_-]*)="([^"]*)"`),
		wrapperRe: regexp.MustCompile(`(?is)<` + wrapper + `\b[^>]*>(.*?)</` + wrapper + `>`),
		wopenRe:   regexp.MustCompile(`(?i)<` + wrapper + `\b[^>]*>`),
		invOpenRe: regexp.MustCompile(`(?i)<` + invoke + `\s+name="([^"]+)"`),
		paramRe:   regexp.MustCompile(`(?is)<` + param + `\s+name="([^"]+)"[^>]*>(.*?)</` + param + `>`),

		placeholderTags: map[string]bool{strings.ToLower(cfg.WrapperTag): true},
	}
	for _, name := range cfg.StreamingTags {
		s.placeholderTags[strings.ToLower(name)] = true
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Segment converts one message's text into an ordered segment list. It
// never fails: malformed tag structure degrades to plain text spans, and a
// blank message yields nil.
func (s *Segmenter) Segment(messageID, text string, opts Options) []wire.Segment {
	if strings.TrimSpace(text) == "" {
		return nil
	}

	// Malformed model output must degrade to prose, never crash a render
	// pass.
	segs := func() (segs []wire.Segment) {
		defer func() {
			if r := recover(); r != nil {
				s.logger.Warn("segmentation degraded to prose", "message_id", messageID, "panic", r)
				segs = s.textOnly(text)
			}
		}()

		dialect := s.Detect(text)
		s.logger.Debug("segmenting message",
			"message_id", messageID, "dialect", dialect, "streaming", opts.Streaming)

		if dialect == DialectConsolidated {
			return s.segmentConsolidated(text, opts)
		}
		return s.segmentLegacy(text, opts)
	}()
	return segs
}

// Detect resolves the dialect for one message: consolidated if and only if
// the text contains at least one wrapper span enclosing an invocation
// sub-tag, legacy otherwise.
func (s *Segmenter) Detect(text string) Dialect {
	for _, loc := range s.wrapperRe.FindAllStringSubmatchIndex(text, -1) {
		if len(s.scanInvokes(text[loc[2]:loc[3]])) > 0 {
			return DialectConsolidated
		}
	}
	return DialectLegacy
}

func (s *Segmenter) textOnly(text string) []wire.Segment {
	return []wire.Segment{{
		Type:  wire.SegmentText,
		Text:  text,
		Start: 0,
		End:   len(text),
	}}
}

// tagMatch is one recognized tag occurrence in source text.
type tagMatch struct {
	name       string // lowercased
	attrs      map[string]string
	inner      string
	start, end int
	terminated bool
}

// rawTag returns the exact source span of the match.
func (m tagMatch) rawTag(src string) string {
	return src[m.start:m.end]
}

// scan walks text and collects recognized tag occurrences in order. The
// citation tag is never a match, and the reasoning tag is skipped when
// reasoning was already extracted. An open tag with no close anywhere ahead
// is returned unterminated only when streaming and allow-listed; otherwise
// it stays literal text and scanning continues past it.
func (s *Segmenter) scan(text string, opts Options) []tagMatch {
	var out []tagMatch
	pos := 0
	for pos < len(text) {
		loc := s.openRe.FindStringSubmatchIndex(text[pos:])
		if loc == nil {
			break
		}

		start := pos + loc[0]
		openEnd := pos + loc[1]
		name := strings.ToLower(text[pos+loc[2] : pos+loc[3]])
		attrsRaw := text[pos+loc[4] : pos+loc[5]]
		selfClosed := loc[7] > loc[6]

		if s.skippedTag(name, opts) {
			pos = openEnd
			continue
		}

		m := tagMatch{
			name:       name,
			attrs:      s.parseAttrs(attrsRaw),
			start:      start,
			terminated: true,
		}

		if selfClosed {
			m.end = openEnd
			out = append(out, m)
			pos = m.end
			continue
		}

		closeTag := "</" + name + ">"
		idx := indexFold(text[openEnd:], closeTag)
		if idx < 0 {
			if opts.Streaming && s.placeholderTags[name] {
				m.terminated = false
				m.inner = text[openEnd:]
				m.end = len(text)
				return append(out, m)
			}
			// Unterminated and not displayable as a running tool: the open
			// tag stays literal.
			pos = openEnd
			continue
		}

		m.inner = text[openEnd : openEnd+idx]
		m.end = openEnd + idx + len(closeTag)
		out = append(out, m)
		pos = m.end
	}
	return out
}

func (s *Segmenter) skippedTag(name string, opts Options) bool {
	if strings.EqualFold(name, s.cfg.CitationTag) {
		return true
	}
	if opts.ReasoningExtracted && strings.EqualFold(name, s.cfg.ReasoningTag) {
		return true
	}
	return false
}

func (s *Segmenter) parseAttrs(raw string) map[string]string {
	matches := s.attrRe.FindAllStringSubmatch(raw, -1)
	if len(matches) == 0 {
		return nil
	}
	attrs := make(map[string]string, len(matches))
	for _, m := range matches {
		attrs[strings.ToLower(m[1])] = m[2]
	}
	return attrs
}

// segmentLegacy handles the dialect where each invocation is its own
// top-level tag mixed directly into prose.
func (s *Segmenter) segmentLegacy(text string, opts Options) []wire.Segment {
	matches := s.scan(text, opts)
	if len(matches) == 0 {
		return s.textOnly(text)
	}

	b := builder{src: text}
	for _, m := range matches {
		switch {
		case !m.terminated:
			b.add(wire.Segment{
				Type:     wire.SegmentPlaceholder,
				ToolName: s.placeholderName(m),
			}, m.start, m.end)
			return b.segs

		case strings.EqualFold(m.name, s.cfg.ReasoningTag):
			b.add(wire.Segment{
				Type:      wire.SegmentReasoning,
				Reasoning: strings.TrimSpace(m.inner),
			}, m.start, m.end)

		case strings.EqualFold(m.name, s.cfg.AskTag):
			b.add(wire.Segment{
				Type:        wire.SegmentText,
				Text:        strings.TrimSpace(m.inner),
				Attachments: splitAttachments(m.attrs[strings.ToLower(s.cfg.AttachmentsAttr)]),
			}, m.start, m.end)

		default:
			b.add(wire.Segment{
				Type:       wire.SegmentToolInvocation,
				Invocation: s.legacyInvocation(m, text),
			}, m.start, m.end)
		}
	}
	return b.finish()
}

// legacyInvocation builds the invocation record for one legacy-dialect tag.
// The primary parameter comes from the known-name priority list over the
// tag's attributes, falling back to the tag's inner content.
func (s *Segmenter) legacyInvocation(m tagMatch, src string) *wire.ToolInvocation {
	inv := &wire.ToolInvocation{
		Name:       wire.DisplayName(m.name),
		RawTag:     m.rawTag(src),
		Parameters: m.attrs,
	}
	for _, key := range s.cfg.PrimaryParams {
		if v, ok := m.attrs[key]; ok {
			inv.PrimaryParam = v
			return inv
		}
	}
	inv.PrimaryParam = strings.TrimSpace(m.inner)
	return inv
}

// segmentConsolidated handles the dialect where invocations appear only as
// sub-tags of wrapper spans. Reasoning tags get no special treatment here:
// callers run ExtractThink first, and the segmenter must not special-case
// reasoning twice.
func (s *Segmenter) segmentConsolidated(text string, opts Options) []wire.Segment {
	b := builder{src: text}

	for _, loc := range s.wrapperRe.FindAllStringSubmatchIndex(text, -1) {
		wStart, wEnd := loc[0], loc[1]
		innerStart := loc[2]
		inner := text[loc[2]:loc[3]]
		invokes := s.scanInvokes(inner)

		if len(invokes) == 0 {
			// A wrapper with nothing recognizable renders as opaque prose.
			b.add(wire.Segment{
				Type: wire.SegmentText,
				Text: strings.TrimSpace(text[wStart:wEnd]),
			}, wStart, wEnd)
			continue
		}

		// Invocation spans tile the wrapper span so reconstruction loses
		// nothing to the wrapper's own markup.
		for i, inv := range invokes {
			tileStart := wStart
			if i > 0 {
				tileStart = innerStart + inv.start
			}
			tileEnd := wEnd
			if i < len(invokes)-1 {
				tileEnd = innerStart + invokes[i+1].start
			}
			b.add(wire.Segment{
				Type:       wire.SegmentToolInvocation,
				Invocation: s.consolidatedInvocation(inv, inner),
			}, tileStart, tileEnd)
		}
	}

	if opts.Streaming {
		// A second, still-open wrapper at the tail becomes a placeholder.
		if loc := s.wopenRe.FindStringIndex(text[b.last:]); loc != nil {
			start := b.last + loc[0]
			m := tagMatch{name: strings.ToLower(s.cfg.WrapperTag), inner: text[start:]}
			b.add(wire.Segment{
				Type:     wire.SegmentPlaceholder,
				ToolName: s.placeholderName(m),
			}, start, len(text))
			return b.segs
		}
	}
	return b.finish()
}

func (s *Segmenter) consolidatedInvocation(m tagMatch, inner string) *wire.ToolInvocation {
	name := m.attrs["name"]
	params := make(map[string]string)
	for _, p := range s.paramRe.FindAllStringSubmatch(m.inner, -1) {
		params[strings.ToLower(p[1])] = strings.TrimSpace(p[2])
	}

	inv := &wire.ToolInvocation{
		Name:       wire.DisplayName(name),
		RawTag:     m.rawTag(inner),
		Parameters: params,
	}
	for _, key := range s.cfg.PrimaryParams {
		if v, ok := params[key]; ok {
			inv.PrimaryParam = v
			break
		}
	}
	return inv
}

// scanInvokes collects invocation sub-tags within one wrapper span, in
// order. Offsets are relative to the span.
func (s *Segmenter) scanInvokes(span string) []tagMatch {
	var out []tagMatch
	for _, m := range s.scan(span, Options{}) {
		if strings.EqualFold(m.name, s.cfg.InvokeTag) && m.attrs["name"] != "" {
			out = append(out, m)
		}
	}
	return out
}

// placeholderName picks the display name for a running-tool placeholder:
// the earliest invocation name detectable inside a wrapper, else the tag's
// own name. During streaming the invocation open tag may be the only
// fully-formed part, so only its name attribute is consulted.
func (s *Segmenter) placeholderName(m tagMatch) string {
	if strings.EqualFold(m.name, s.cfg.WrapperTag) {
		if sub := s.invOpenRe.FindStringSubmatch(m.inner); sub != nil {
			return wire.DisplayName(sub[1])
		}
	}
	return wire.DisplayName(m.name)
}

func splitAttachments(raw string) []string {
	if raw == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// indexFold is a case-insensitive strings.Index that never shifts byte
// offsets, unlike lowering the haystack first.
func indexFold(s, substr string) int {
	n := len(substr)
	for i := 0; i+n <= len(s); i++ {
		if strings.EqualFold(s[i:i+n], substr) {
			return i
		}
	}
	return -1
}

// builder accumulates segments while keeping their source spans tiling the
// input: whitespace-only gaps are absorbed into the next segment's span,
// and trailing whitespace widens the last one.
type builder struct {
	src  string
	segs []wire.Segment
	last int
}

// gap emits a text segment for [b.last, to) when it holds non-whitespace.
func (b *builder) gap(to int) {
	if to <= b.last {
		return
	}
	raw := b.src[b.last:to]
	if strings.TrimSpace(raw) == "" {
		return
	}
	b.segs = append(b.segs, wire.Segment{
		Type:  wire.SegmentText,
		Text:  strings.TrimSpace(raw),
		Start: b.last,
		End:   to,
	})
	b.last = to
}

// add appends seg for the source range [start, end), first flushing any
// pending text gap. A whitespace-only gap widens seg's span instead.
func (b *builder) add(seg wire.Segment, start, end int) {
	b.gap(start)
	seg.Start = b.last
	seg.End = end
	b.segs = append(b.segs, seg)
	b.last = end
}

// finish emits any trailing text and returns the segment list.
func (b *builder) finish() []wire.Segment {
	if b.last < len(b.src) {
		tail := b.src[b.last:]
		if strings.TrimSpace(tail) != "" {
			b.segs = append(b.segs, wire.Segment{
				Type:  wire.SegmentText,
				Text:  strings.TrimSpace(tail),
				Start: b.last,
				End:   len(b.src),
			})
		} else if len(b.segs) > 0 {
			b.segs[len(b.segs)-1].End = len(b.src)
		}
	}
	return b.segs
}
