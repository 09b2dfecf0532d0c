package agui

import (
	"encoding/json"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	wire "github.com/agentwire/agentwire"
)

// FromSegments converts a segmented message into the AG-UI events that
// replay it. Text and reasoning segments become complete text messages;
// tool invocations become complete tool call sequences. A trailing
// placeholder becomes a TOOL_CALL_START with no end, since the call is
// still in flight.
func FromSegments(segs []wire.Segment) []events.Event {
	var out []events.Event
	for _, seg := range segs {
		switch seg.Type {
		case wire.SegmentText:
			out = appendTextMessage(out, seg.Text)
		case wire.SegmentReasoning:
			out = appendTextMessage(out, seg.Reasoning)
		case wire.SegmentToolInvocation:
			if seg.Invocation != nil {
				out = appendToolCall(out, seg.Invocation)
			}
		case wire.SegmentPlaceholder:
			callID := wire.GenerateToolCallID()
			out = append(out, events.NewToolCallStartEvent(
				callID, wire.FunctionName(seg.ToolName)))
		}
	}
	return out
}

func appendTextMessage(out []events.Event, text string) []events.Event {
	if text == "" {
		return out
	}
	messageID := events.GenerateMessageID()
	return append(out,
		events.NewTextMessageStartEvent(messageID, events.WithRole(RoleAssistant)),
		events.NewTextMessageContentEvent(messageID, text),
		events.NewTextMessageEndEvent(messageID),
	)
}

func appendToolCall(out []events.Event, inv *wire.ToolInvocation) []events.Event {
	callID := wire.GenerateToolCallID()
	out = append(out, events.NewToolCallStartEvent(callID, wire.FunctionName(inv.Name)))
	if len(inv.Parameters) > 0 {
		if args, err := json.Marshal(inv.Parameters); err == nil {
			out = append(out, events.NewToolCallArgsEvent(callID, string(args)))
		}
	}
	return append(out, events.NewToolCallEndEvent(callID))
}
