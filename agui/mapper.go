package agui

import (
	"encoding/json"
	"errors"

	"github.com/ag-ui-protocol/ag-ui/sdks/community/go/pkg/core/events"

	wire "github.com/agentwire/agentwire"
)

// Role constants matching AG-UI protocol.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleSystem    = "system"
	RoleTool      = "tool"
)

// Mapper converts decoded agent stream events to AG-UI events.
//
// The agent stream is flatter than the AG-UI protocol: thought events carry
// bare text deltas with no message lifecycle, and tool results name a tool
// rather than a call. The Mapper supplies the missing structure - it opens
// and closes text messages around runs of thought deltas, assigns call IDs
// to tool calls, and pairs each result with the most recent call for that
// tool. One stream event can therefore map to several AG-UI events.
//
// Create a new Mapper for each run using NewMapper. The Mapper is not
// safe for concurrent use - each goroutine should have its own Mapper.
type Mapper struct {
	threadID string
	runID    string

	openMessageID string
	callIDs       map[string]string
	lastCallID    string
}

// NewMapper creates a new Mapper for a single run.
// The threadID and runID are used in lifecycle events (RUN_STARTED, RUN_FINISHED).
func NewMapper(threadID, runID string) *Mapper {
	if threadID == "" {
		threadID = events.GenerateThreadID()
	}
	if runID == "" {
		runID = events.GenerateRunID()
	}
	return &Mapper{
		threadID: threadID,
		runID:    runID,
		callIDs:  make(map[string]string),
	}
}

// ThreadID returns the thread ID for this mapper.
func (m *Mapper) ThreadID() string {
	return m.threadID
}

// RunID returns the run ID for this mapper.
func (m *Mapper) RunID() string {
	return m.runID
}

// RunStarted returns a RUN_STARTED event.
func (m *Mapper) RunStarted() events.Event {
	return events.NewRunStartedEvent(m.threadID, m.runID)
}

// RunFinished returns a RUN_FINISHED event.
func (m *Mapper) RunFinished() events.Event {
	return events.NewRunFinishedEvent(m.threadID, m.runID)
}

// RunError returns a RUN_ERROR event.
func (m *Mapper) RunError(err error) events.Event {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	return events.NewRunErrorEvent(msg)
}

// MapEvent converts one stream event to its AG-UI representation. The
// result may be empty (a thought with no content) or several events (a
// kind switch closes the open text message first). Events must be fed in
// stream order; call Finish after the last one.
func (m *Mapper) MapEvent(e wire.Event) []events.Event {
	switch e.Kind {
	case wire.KindThought:
		return m.mapThought(e)
	case wire.KindToolCall:
		return m.mapToolCall(e)
	case wire.KindToolResult:
		return m.mapToolResult(e)
	case wire.KindFinalResponse:
		return m.mapFinalResponse(e)
	case wire.KindError:
		out := m.closeOpenMessage(nil)
		return append(out, m.RunError(errors.New(e.Message)))
	default:
		return nil
	}
}

// Finish closes any open text message and returns the trailing lifecycle
// events for the run.
func (m *Mapper) Finish() []events.Event {
	out := m.closeOpenMessage(nil)
	return append(out, m.RunFinished())
}

func (m *Mapper) mapThought(e wire.Event) []events.Event {
	if e.Content == "" {
		return nil
	}
	var out []events.Event
	if m.openMessageID == "" {
		m.openMessageID = events.GenerateMessageID()
		out = append(out, events.NewTextMessageStartEvent(
			m.openMessageID,
			events.WithRole(RoleAssistant),
		))
	}
	return append(out, events.NewTextMessageContentEvent(m.openMessageID, e.Content))
}

func (m *Mapper) mapToolCall(e wire.Event) []events.Event {
	out := m.closeOpenMessage(nil)

	callID := wire.GenerateToolCallID()
	name := wire.FunctionName(e.ToolName)
	m.callIDs[name] = callID
	m.lastCallID = callID

	out = append(out, events.NewToolCallStartEvent(callID, name))
	if len(e.ToolArgs) > 0 {
		if args, err := json.Marshal(e.ToolArgs); err == nil {
			out = append(out, events.NewToolCallArgsEvent(callID, string(args)))
		}
	}
	return append(out, events.NewToolCallEndEvent(callID))
}

func (m *Mapper) mapToolResult(e wire.Event) []events.Event {
	out := m.closeOpenMessage(nil)

	callID := m.callIDs[wire.FunctionName(e.ToolName)]
	if callID == "" {
		// Result arrived without a matching call (replayed or truncated
		// stream); pair it with the most recent call if any.
		callID = m.lastCallID
	}
	if callID == "" {
		callID = wire.GenerateToolCallID()
	}
	messageID := events.GenerateMessageID()
	return append(out, events.NewToolCallResultEvent(messageID, callID, e.ToolOutput))
}

func (m *Mapper) mapFinalResponse(e wire.Event) []events.Event {
	out := m.closeOpenMessage(nil)
	if e.Content == "" {
		return out
	}
	messageID := events.GenerateMessageID()
	out = append(out,
		events.NewTextMessageStartEvent(messageID, events.WithRole(RoleAssistant)),
		events.NewTextMessageContentEvent(messageID, e.Content),
		events.NewTextMessageEndEvent(messageID),
	)
	return out
}

// closeOpenMessage appends a TEXT_MESSAGE_END for the open thought message,
// if any, and clears it.
func (m *Mapper) closeOpenMessage(out []events.Event) []events.Event {
	if m.openMessageID == "" {
		return out
	}
	out = append(out, events.NewTextMessageEndEvent(m.openMessageID))
	m.openMessageID = ""
	return out
}
