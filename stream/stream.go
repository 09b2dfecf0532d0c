package stream

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"unicode/utf8"

	wire "github.com/agentwire/agentwire"
)

// Handler receives decode callbacks from Run. Nil callbacks are skipped.
//
// OnOpen fires once before the first read. OnClose fires exactly once on
// every exit path. OnError may fire zero or more times: once per recovered
// frame-parse failure, and once for a terminal transport failure. OnEvent
// receives events in strict arrival order.
type Handler struct {
	OnOpen  func()
	OnEvent func(wire.Event)
	OnError func(error)
	OnClose func()
}

type config struct {
	logger  *slog.Logger
	bufSize int
}

// Option configures Run.
type Option func(*config)

// WithLogger sets the logger used for recovered decode irregularities.
// Defaults to slog.Default.
func WithLogger(l *slog.Logger) Option {
	return func(c *config) {
		c.logger = l
	}
}

// WithReadBuffer sets the chunk-read buffer size in bytes.
func WithReadBuffer(n int) Option {
	return func(c *config) {
		if n > 0 {
			c.bufSize = n
		}
	}
}

// Run reads r to completion, decoding frames into events and delivering
// them to h. It is the single suspension point of the pipeline: all blocking
// happens at the chunk read, and each chunk is processed synchronously
// before the next read is issued.
//
// Cancellation is cooperative: ctx is checked at each read boundary and
// between buffered frames. Once ctx is done no further frames are delivered,
// r is closed if it implements io.Closer, and Run returns ctx.Err().
//
// Content-level irregularities (unparseable frames, unknown kinds, trailing
// noise) are absorbed: logged, reported via OnError where they carry a
// payload, and never terminal. Only transport failures (read errors, chunks
// that are not valid text) end the stream with an error.
func Run(ctx context.Context, r io.Reader, h Handler, opts ...Option) error {
	cfg := config{logger: slog.Default(), bufSize: 4096}
	for _, opt := range opts {
		opt(&cfg)
	}

	if h.OnClose != nil {
		defer h.OnClose()
	}
	if h.OnOpen != nil {
		h.OnOpen()
	}

	dec := NewDecoder()
	buf := make([]byte, cfg.bufSize)

	for {
		if err := ctx.Err(); err != nil {
			releaseReader(r)
			return err
		}

		n, readErr := r.Read(buf)
		if n > 0 {
			if err := deliverFrames(ctx, dec.Feed(buf[:n]), h, cfg.logger); err != nil {
				releaseReader(r)
				return err
			}
		}

		if readErr == io.EOF {
			return finish(ctx, dec, h, cfg.logger)
		}
		if readErr != nil {
			err := fmt.Errorf("read stream: %w", readErr)
			if h.OnError != nil {
				h.OnError(err)
			}
			return err
		}
	}
}

// deliverFrames parses and hands out completed frames, honoring ctx between
// frames so cancellation does not drain the backlog.
func deliverFrames(ctx context.Context, frames []Frame, h Handler, logger *slog.Logger) error {
	for _, f := range frames {
		if err := ctx.Err(); err != nil {
			return err
		}
		if !utf8.ValidString(f.Raw) {
			err := fmt.Errorf("frame %d is not valid utf-8", f.Index)
			if h.OnError != nil {
				h.OnError(err)
			}
			return err
		}

		ev, err := ParseFrame(f)
		switch {
		case errors.Is(err, ErrNoDataPrefix):
			logger.Debug("ignoring frame without data prefix", "index", f.Index)
		case err != nil:
			logger.Warn("dropping unparseable frame", "index", f.Index, "error", err)
			if h.OnError != nil {
				h.OnError(err)
			}
		default:
			if h.OnEvent != nil {
				h.OnEvent(*ev)
			}
		}
	}
	return nil
}

// finish flushes the decoder at end of stream.
func finish(ctx context.Context, dec *Decoder, h Handler, logger *slog.Logger) error {
	if f, ok := dec.Flush(); ok {
		if err := deliverFrames(ctx, []Frame{f}, h, logger); err != nil {
			return err
		}
	}
	if rest := dec.Leftover(); rest != "" {
		logger.Warn("discarding trailing stream content", "bytes", len(rest))
	}
	return nil
}

func releaseReader(r io.Reader) {
	if c, ok := r.(io.Closer); ok {
		c.Close()
	}
}
