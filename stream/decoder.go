package stream

import (
	"bytes"
	"strings"
)

const (
	// frameDelimiter separates frames on the wire. The backend emits Unix
	// newlines only; this is the wire contract and must match exactly.
	frameDelimiter = "\n\n"

	// dataPrefix marks the payload line of a frame.
	dataPrefix = "data: "
)

// Frame is one delimiter-bounded unit recovered from the transport body.
// Frames are immutable once emitted and are discarded after parsing.
type Frame struct {
	// Raw is the full frame text, delimiter excluded.
	Raw string

	// Index is the ordinal position of the frame in the stream.
	Index int
}

// Decoder reassembles discrete frames from a byte stream delivered at
// arbitrary chunk boundaries, including mid-frame. It keeps one rolling
// buffer across Feed calls; each stream needs its own Decoder. Not safe for
// concurrent use.
type Decoder struct {
	buf      []byte
	next     int
	leftover string
}

// NewDecoder creates a Decoder with an empty buffer.
func NewDecoder() *Decoder {
	return &Decoder{}
}

// Feed appends a chunk to the rolling buffer and returns every frame
// completed by it, in arrival order. The trailing piece after the last
// delimiter stays buffered until more bytes arrive or Flush is called.
func (d *Decoder) Feed(chunk []byte) []Frame {
	d.buf = append(d.buf, chunk...)

	var frames []Frame
	for {
		i := bytes.Index(d.buf, []byte(frameDelimiter))
		if i < 0 {
			break
		}
		raw := string(d.buf[:i])
		d.buf = d.buf[i+len(frameDelimiter):]

		// Keep-alive blank lines split into empty pieces; they carry nothing.
		if raw == "" {
			continue
		}
		frames = append(frames, Frame{Raw: raw, Index: d.next})
		d.next++
	}
	return frames
}

// Flush drains the buffer at end of stream. A non-empty remainder that
// carries the data prefix is returned as a final frame; anything else is
// recorded as leftover noise retrievable via Leftover and the second return
// is false.
func (d *Decoder) Flush() (Frame, bool) {
	raw := strings.TrimSuffix(string(d.buf), "\n")
	d.buf = nil

	if raw == "" {
		return Frame{}, false
	}
	if !strings.HasPrefix(raw, dataPrefix) {
		d.leftover = raw
		return Frame{}, false
	}

	f := Frame{Raw: raw, Index: d.next}
	d.next++
	return f, true
}

// Leftover returns trailing content that did not form a frame at Flush time.
// Leftover content is a decode warning, never an error.
func (d *Decoder) Leftover() string {
	return d.leftover
}
