package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	wire "github.com/agentwire/agentwire"
)

// ErrNoDataPrefix is returned by ParseFrame for frames that do not carry the
// data prefix at all. Such frames are transport noise (comments, heartbeats)
// and are ignored without aborting the stream.
var ErrNoDataPrefix = errors.New("frame has no data prefix")

// FrameError reports one frame whose payload could not be parsed as an
// event. The stream continues past it; Raw preserves the offending frame
// text for logging and fallback display.
type FrameError struct {
	Raw string
	Err error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("unparseable frame: %v", e.Err)
}

func (e *FrameError) Unwrap() error {
	return e.Err
}

// ParseFrame decodes one frame's payload into an Event. One frame in, zero
// or one event out, synchronously; ordering is entirely the caller's.
//
// A frame without the data prefix returns ErrNoDataPrefix. A frame whose
// payload is not a valid event record, or whose kind is not one of the
// enumerated values, returns a *FrameError carrying the raw text.
func ParseFrame(f Frame) (*wire.Event, error) {
	if !strings.HasPrefix(f.Raw, dataPrefix) {
		return nil, ErrNoDataPrefix
	}
	payload := strings.TrimPrefix(f.Raw, dataPrefix)

	var ev wire.Event
	if err := json.Unmarshal([]byte(payload), &ev); err != nil {
		return nil, &FrameError{Raw: f.Raw, Err: err}
	}
	if !ev.Kind.Valid() {
		return nil, &FrameError{Raw: f.Raw, Err: fmt.Errorf("unknown event kind %q", ev.Kind)}
	}
	return &ev, nil
}
