package main

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	wire "github.com/agentwire/agentwire"
	"github.com/agentwire/agentwire/agui"
	"github.com/agentwire/agentwire/segment"
	"github.com/agentwire/agentwire/stream"
	"github.com/agentwire/agentwire/toolresult"
)

// textPrinter renders decoded events as human-readable terminal output.
// Thought deltas stream through verbatim; tool calls and results print as
// single annotated lines; the final response is segmented before printing.
type textPrinter struct {
	out       io.Writer
	seg       *segment.Segmenter
	midStream bool
}

func newTextPrinter(out io.Writer) *textPrinter {
	return &textPrinter{
		out: out,
		seg: segment.New(segment.DefaultConfig()),
	}
}

func (p *textPrinter) Handler() stream.Handler {
	return stream.Handler{
		OnEvent: p.onEvent,
		OnError: func(err error) {
			slog.Debug("skipping frame", "error", err)
		},
	}
}

func (p *textPrinter) Close() {
	p.breakLine()
}

func (p *textPrinter) onEvent(e wire.Event) {
	switch e.Kind {
	case wire.KindThought:
		fmt.Fprint(p.out, e.Content)
		p.midStream = e.Content != "" && !strings.HasSuffix(e.Content, "\n")
	case wire.KindToolCall:
		p.breakLine()
		fmt.Fprintf(p.out, "[tool] %s%s\n", e.ToolName, formatArgs(e.ToolArgs))
	case wire.KindToolResult:
		p.breakLine()
		p.printResult(e)
	case wire.KindFinalResponse:
		p.breakLine()
		p.printFinal(e.Content)
	case wire.KindError:
		p.breakLine()
		fmt.Fprintf(p.out, "[error] %s\n", e.Message)
	}
}

func (p *textPrinter) breakLine() {
	if p.midStream {
		fmt.Fprintln(p.out)
		p.midStream = false
	}
}

func (p *textPrinter) printResult(e wire.Event) {
	r := toolresult.Normalize(e.ToolOutput)
	if r == nil {
		r = &wire.ToolResult{
			ToolName: wire.DisplayName(e.ToolName),
			Output:   e.ToolOutput,
			Success:  !e.IsError,
		}
	}
	if r.ToolName == "unknown" && e.ToolName != "" {
		r.ToolName = wire.DisplayName(e.ToolName)
	}
	status := "ok"
	if !r.Success || e.IsError {
		status = "failed"
	}
	fmt.Fprintf(p.out, "[result] %s %s: %s\n", r.ToolName, status, firstLine(r.Output))
}

func (p *textPrinter) printFinal(content string) {
	for _, s := range p.seg.Segment(wire.GenerateMessageID(), content, segment.Options{}) {
		switch s.Type {
		case wire.SegmentText:
			if text := strings.TrimSpace(s.Text); text != "" {
				fmt.Fprintln(p.out, text)
			}
		case wire.SegmentReasoning:
			fmt.Fprintf(p.out, "(reasoning) %s\n", firstLine(s.Reasoning))
		case wire.SegmentToolInvocation:
			if s.Invocation != nil {
				fmt.Fprintf(p.out, "[tool] %s %s\n", s.Invocation.Name, firstLine(s.Invocation.PrimaryParam))
			}
		}
	}
}

// aguiPrinter renders decoded events as AG-UI protocol events, one JSON
// object per line.
type aguiPrinter struct {
	out     io.Writer
	mapper  *agui.Mapper
	started bool
	failed  bool
}

func newAGUIPrinter(out io.Writer) *aguiPrinter {
	return &aguiPrinter{
		out:    out,
		mapper: agui.NewMapper("", ""),
	}
}

func (p *aguiPrinter) Handler() stream.Handler {
	return stream.Handler{
		OnOpen: func() {
			p.started = true
			p.write(p.mapper.RunStarted())
		},
		OnEvent: func(e wire.Event) {
			if e.Kind == wire.KindError {
				p.failed = true
			}
			for _, ev := range p.mapper.MapEvent(e) {
				p.write(ev)
			}
		},
	}
}

func (p *aguiPrinter) Close() {
	if !p.started || p.failed {
		return
	}
	for _, ev := range p.mapper.Finish() {
		p.write(ev)
	}
}

func (p *aguiPrinter) write(ev events.Event) {
	data, err := ev.ToJSON()
	if err != nil {
		slog.Warn("failed to serialize event", "error", err)
		return
	}
	fmt.Fprintf(p.out, "%s\n", data)
}

func formatArgs(args map[string]any) string {
	if len(args) == 0 {
		return ""
	}
	data, err := json.Marshal(args)
	if err != nil {
		return ""
	}
	return " " + string(data)
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		return s[:i]
	}
	return s
}
