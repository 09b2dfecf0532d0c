// Package agui converts decoded agent stream events to the AG-UI protocol.
//
// AG-UI (Agent-User Interface) is an open, lightweight, event-based protocol
// that standardizes how AI agents connect to user-facing applications. This
// package maps the agent backend's flat stream events - and already-segmented
// message content - onto AG-UI's lifecycle-structured events, enabling easy
// integration with AG-UI-compatible frontends.
//
// # Overview
//
// This package provides:
//   - [Mapper]: Stateful event converter that handles AG-UI's Start-Content-End pattern
//   - [FromSegments]: Stateless replay of a segmented message as AG-UI events
//
// The package does NOT provide HTTP handlers or transport implementations.
// Users are responsible for implementing their own server using the AG-UI
// SDK's SSE writer or their preferred transport mechanism.
//
// # Usage
//
// Create a Mapper for each run and use it to convert stream events:
//
//	mapper := agui.NewMapper(threadID, runID)
//	writeEvent(mapper.RunStarted())
//
//	h := stream.Handler{
//	    OnEvent: func(e agentwire.Event) {
//	        for _, ev := range mapper.MapEvent(e) {
//	            writeEvent(ev)
//	        }
//	    },
//	}
//	stream.Run(ctx, body, h)
//
//	for _, ev := range mapper.Finish() {
//	    writeEvent(ev)
//	}
//
// # Event Mapping
//
// The Mapper tracks state to properly emit AG-UI's Start-Content-End
// sequences:
//
//   - thought → TEXT_MESSAGE_START (on first delta), TEXT_MESSAGE_CONTENT
//   - tool_call → TEXT_MESSAGE_END (if a message is open), TOOL_CALL_START, TOOL_CALL_ARGS, TOOL_CALL_END
//   - tool_result → TOOL_CALL_RESULT, paired with the call by tool name
//   - final_response → a complete TEXT_MESSAGE_START/CONTENT/END triple
//   - error → RUN_ERROR
//
// # Thread Safety
//
// The Mapper is NOT safe for concurrent use. Each goroutine should have its
// own Mapper instance. [FromSegments] is stateless and safe for concurrent
// use.
package agui
