package hufftree

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// EventKind identifies what happened in an Event.
type EventKind byte

const (
	// EventLeaf is emitted once per Symbol as its leaf enters the min-heap.
	EventLeaf EventKind = iota

	// EventMerge is emitted each time two nodes are merged.
	EventMerge

	// EventBuilt is emitted once the tree and its code table are complete.
	EventBuilt

	// EventEncode is emitted after a successful Encode.
	EventEncode

	// EventDecodeStep is emitted for every bit consumed by Decode.
	EventDecodeStep

	// EventDecodeEmit is emitted for every Symbol produced by Decode.
	EventDecodeEmit

	// EventDecode is emitted after a successful Decode.
	EventDecode
)

var eventKindNames = [...]string{
	EventLeaf:       "leaf",
	EventMerge:      "merge",
	EventBuilt:      "built",
	EventEncode:     "encode",
	EventDecodeStep: "decode-step",
	EventDecodeEmit: "decode-emit",
	EventDecode:     "decode",
}

// String returns the name of this EventKind.
func (kind EventKind) String() string {
	if int(kind) < len(eventKindNames) {
		return eventKindNames[kind]
	}
	return fmt.Sprintf("EventKind(%d)", byte(kind))
}

// Event describes one step of building, encoding or decoding.  Which fields
// are set depends on Kind.
type Event struct {
	Kind EventKind

	// Node is the new leaf (EventLeaf), the merged node (EventMerge), the
	// node entered (EventDecodeStep) or the leaf reached (EventDecodeEmit).
	Node Node

	// Left and Right are the merged children (EventMerge).
	Left  Node
	Right Node

	// Tree is the finished tree (EventBuilt).
	Tree *Tree

	// Offset is the index of the bit just consumed (EventDecodeStep,
	// EventDecodeEmit).
	Offset int

	// Input and Output summarize EventEncode and EventDecode.
	Input  string
	Output string
}

// String returns a one-line programmer-readable form of this Event.
func (ev Event) String() string {
	switch ev.Kind {
	case EventLeaf:
		return fmt.Sprintf("leaf %v", ev.Node)
	case EventMerge:
		return fmt.Sprintf("merge %v + %v = %v", ev.Left, ev.Right, ev.Node)
	case EventBuilt:
		if ev.Tree == nil {
			return "built"
		}
		return fmt.Sprintf("built %d leaves, %d internal, root %v", ev.Tree.NumLeaves(), ev.Tree.NumInternal(), ev.Tree.Root())
	case EventEncode:
		return fmt.Sprintf("encode %q as %q", ev.Input, ev.Output)
	case EventDecodeStep:
		return fmt.Sprintf("decode-step offset %d enter %v", ev.Offset, ev.Node)
	case EventDecodeEmit:
		return fmt.Sprintf("decode-emit offset %d symbol %q", ev.Offset, ev.Node.Label)
	case EventDecode:
		return fmt.Sprintf("decode %q as %q", ev.Input, ev.Output)
	default:
		return ev.Kind.String()
	}
}

// Tracer observes the steps of building, encoding and decoding.  Trace is
// called synchronously on the caller's goroutine; a Tracer attached to an
// Encoder that is shared between goroutines must be safe for concurrent use.
type Tracer interface {
	Trace(ev Event)
}

// TracerFunc adapts an ordinary function into a Tracer.
type TracerFunc func(ev Event)

// Trace calls fn(ev).
func (fn TracerFunc) Trace(ev Event) {
	fn(ev)
}

// NewWriterTracer returns a Tracer that writes one line per Event to w.
// Write errors are ignored.
func NewWriterTracer(w io.Writer) Tracer {
	return &writerTracer{w: w}
}

type writerTracer struct {
	mu sync.Mutex
	w  io.Writer
}

func (wt *writerTracer) Trace(ev Event) {
	line := ev.String() + "\n"
	wt.mu.Lock()
	_, _ = io.WriteString(wt.w, line)
	wt.mu.Unlock()
}

// NewSlogTracer returns a Tracer that logs Events as structured records.
// Tree and codec summaries are logged at Info; per-node and per-bit detail at
// Debug.
func NewSlogTracer(logger *slog.Logger) Tracer {
	return slogTracer{logger: logger}
}

type slogTracer struct {
	logger *slog.Logger
}

func (st slogTracer) Trace(ev Event) {
	ctx := context.Background()
	switch ev.Kind {
	case EventLeaf:
		st.logger.LogAttrs(ctx, slog.LevelDebug, "init min heap",
			nodeAttr("leaf", ev.Node))
	case EventMerge:
		st.logger.LogAttrs(ctx, slog.LevelDebug, "merge",
			nodeAttr("left", ev.Left),
			nodeAttr("right", ev.Right),
			nodeAttr("node", ev.Node))
	case EventBuilt:
		attrs := make([]slog.Attr, 0, 3)
		if ev.Tree != nil {
			attrs = append(attrs,
				slog.Int("leaves", ev.Tree.NumLeaves()),
				slog.Int("internal", ev.Tree.NumInternal()),
				nodeAttr("root", ev.Tree.Root()))
		}
		st.logger.LogAttrs(ctx, slog.LevelInfo, "built tree", attrs...)
	case EventEncode:
		st.logger.LogAttrs(ctx, slog.LevelInfo, "encoded",
			slog.String("input", ev.Input),
			slog.String("output", ev.Output))
	case EventDecodeStep:
		st.logger.LogAttrs(ctx, slog.LevelDebug, "decode step",
			slog.Int("offset", ev.Offset),
			nodeAttr("node", ev.Node))
	case EventDecodeEmit:
		st.logger.LogAttrs(ctx, slog.LevelDebug, "decode emit",
			slog.Int("offset", ev.Offset),
			slog.String("symbol", ev.Node.Label))
	case EventDecode:
		st.logger.LogAttrs(ctx, slog.LevelInfo, "decoded",
			slog.String("input", ev.Input),
			slog.String("output", ev.Output))
	}
}

func nodeAttr(key string, n Node) slog.Attr {
	return slog.Group(key,
		slog.String("label", n.Label),
		slog.Uint64("weight", n.Weight),
		slog.String("code", string(n.Code)))
}

// Option configures an Encoder.
type Option func(*options)

type options struct {
	tracer Tracer
}

// WithTracer attaches a Tracer to the Encoder.  A nil Tracer disables
// tracing.
func WithTracer(t Tracer) Option {
	return func(o *options) {
		o.tracer = t
	}
}
