package headless

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/go-faster/jx"
	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/input/action"
	"github.com/valerio/gbdebug/gbdebug/state"
)

// Op kinds recorded by the headless canvas.
const (
	OpBeginPanel   = "begin_panel"
	OpEndPanel     = "end_panel"
	OpText         = "text"
	OpTextColored  = "text_colored"
	OpTextDisabled = "text_disabled"
	OpSeparator    = "separator"
	OpButton       = "button"
	OpCombo        = "combo"
	OpBeginScroll  = "begin_scroll"
	OpEndScroll    = "end_scroll"
)

// Op is a single recorded draw call.
type Op struct {
	Kind    string
	Panel   string // panel the op belongs to
	Text    string
	Color   state.Color
	Enabled bool
}

// Frame holds the draw calls issued between BeginFrame and EndFrame.
type Frame struct {
	Number int
	Ops    []Op
}

// Event is the platform event of the headless backend: an action injected
// by a script or a test.
type Event struct {
	Action action.Action
}

// Backend implements backend.Backend without any output device. It records
// what panels draw, which makes it suitable for automated testing and batch
// runs, and can stream every frame as a JSON line.
type Backend struct {
	config      backend.Config
	initialized bool
	shouldClose bool

	frameCount int
	maxFrames  int // 0 = unlimited
	current    *Frame
	last       Frame
	panel      string

	pending   []Event
	triggered map[action.Action]bool
	scroller  *backend.Scroller
	viewport  int // lines visible in scrolling regions, 0 = all

	trace io.Writer
	enc   jx.Encoder
}

var (
	_ backend.Backend = (*Backend)(nil)
	_ backend.Canvas  = (*Backend)(nil)
)

// New creates a headless backend that asks to close after maxFrames frames.
// maxFrames <= 0 runs until the caller stops.
func New(maxFrames int) *Backend {
	return &Backend{
		maxFrames: maxFrames,
		triggered: make(map[action.Action]bool),
		scroller:  backend.NewScroller(),
	}
}

// SetTrace streams every completed frame as one JSON object per line to w.
func (h *Backend) SetTrace(w io.Writer) {
	h.trace = w
}

// SetViewport limits scrolling regions to lines visible lines. 0 shows all.
func (h *Backend) SetViewport(lines int) {
	h.viewport = lines
}

// Press queues act; it is delivered by the next PollEvent.
func (h *Backend) Press(act action.Action) {
	h.pending = append(h.pending, Event{Action: act})
}

func (h *Backend) Init(config backend.Config) error {
	h.config = config
	h.initialized = true
	h.shouldClose = false

	slog.Info("Headless backend initialized", "title", config.Title, "frames", h.maxFrames)
	return nil
}

func (h *Backend) Cleanup() error {
	if !h.initialized {
		return nil
	}
	h.initialized = false
	slog.Info("Headless backend cleaned up", "frames", h.frameCount)
	return nil
}

func (h *Backend) PollEvent() backend.Event {
	if len(h.pending) == 0 {
		return nil
	}
	ev := h.pending[0]
	h.pending = h.pending[1:]
	return ev
}

func (h *Backend) ProcessEvent(ev backend.Event) {
	switch e := ev.(type) {
	case Event:
		slog.Debug("Headless action", "action", e.Action)
		h.triggered[e.Action] = true
	case *Event:
		if e != nil {
			h.triggered[e.Action] = true
		}
	}
}

func (h *Backend) BeginFrame() {
	h.current = &Frame{Number: h.frameCount + 1}
}

func (h *Backend) EndFrame() {
	frame := h.frame()
	h.frameCount++
	h.last = *frame
	h.current = nil
	clear(h.triggered)

	if h.trace != nil {
		if err := h.writeTrace(h.last); err != nil {
			slog.Error("Failed to write frame trace", "frame", h.last.Number, "error", err)
		}
	}

	if h.frameCount%60 == 0 {
		slog.Debug("Frame progress", "completed", h.frameCount, "total", h.maxFrames)
	}

	if h.maxFrames > 0 && h.frameCount >= h.maxFrames && !h.shouldClose {
		slog.Info("Headless execution completed", "frames", h.frameCount)
		h.shouldClose = true
	}
}

func (h *Backend) ShouldClose() bool {
	return h.shouldClose
}

// GetWindow returns nil, there is no window.
func (h *Backend) GetWindow() any {
	return nil
}

func (h *Backend) Canvas() backend.Canvas {
	return h
}

// FrameCount returns the number of completed frames.
func (h *Backend) FrameCount() int {
	return h.frameCount
}

// LastFrame returns the last completed frame.
func (h *Backend) LastFrame() Frame {
	return h.last
}

// CurrentOps returns the ops recorded since the last BeginFrame, including
// those issued outside of explicit framing.
func (h *Backend) CurrentOps() []Op {
	if h.current == nil {
		return nil
	}
	return h.current.Ops
}

func (h *Backend) frame() *Frame {
	if h.current == nil {
		h.current = &Frame{Number: h.frameCount + 1}
	}
	return h.current
}

func (h *Backend) record(op Op) {
	op.Panel = h.panel
	f := h.frame()
	f.Ops = append(f.Ops, op)
}

func (h *Backend) BeginPanel(title string, placement backend.Placement) {
	h.panel = title
	h.record(Op{Kind: OpBeginPanel, Text: title})
}

func (h *Backend) EndPanel() {
	h.record(Op{Kind: OpEndPanel})
	h.panel = ""
}

func (h *Backend) Text(text string) {
	h.record(Op{Kind: OpText, Text: text})
}

func (h *Backend) TextColored(color state.Color, text string) {
	h.record(Op{Kind: OpTextColored, Text: text, Color: color})
}

func (h *Backend) TextDisabled(text string) {
	h.record(Op{Kind: OpTextDisabled, Text: text})
}

func (h *Backend) Separator() {
	h.record(Op{Kind: OpSeparator})
}

func (h *Backend) Button(label string, act action.Action, enabled bool) bool {
	h.record(Op{Kind: OpButton, Text: label, Enabled: enabled})
	return enabled && h.triggered[act]
}

func (h *Backend) Combo(label string, items []string, current int) int {
	text := label
	if current >= 0 && current < len(items) {
		text = fmt.Sprintf("%s: %s", label, items[current])
	}
	h.record(Op{Kind: OpCombo, Text: text, Enabled: true})
	return current
}

func (h *Backend) Triggered(act action.Action) bool {
	return h.triggered[act]
}

func (h *Backend) BeginScroll(id string, total int) (first, last int) {
	first, last = h.scroller.Visible(id, total, h.viewport, h.Triggered)
	h.record(Op{Kind: OpBeginScroll, Text: id})
	return first, last
}

func (h *Backend) EndScroll() {
	h.record(Op{Kind: OpEndScroll})
}

func (h *Backend) writeTrace(f Frame) error {
	h.enc.Reset()
	h.enc.Obj(func(e *jx.Encoder) {
		e.Field("frame", func(e *jx.Encoder) { e.Int(f.Number) })
		e.Field("ops", func(e *jx.Encoder) {
			e.Arr(func(e *jx.Encoder) {
				for _, op := range f.Ops {
					encodeOp(e, op)
				}
			})
		})
	})

	buf := append(h.enc.Bytes(), '\n')
	_, err := h.trace.Write(buf)
	return err
}

func encodeOp(e *jx.Encoder, op Op) {
	e.Obj(func(e *jx.Encoder) {
		e.Field("kind", func(e *jx.Encoder) { e.Str(op.Kind) })
		if op.Panel != "" {
			e.Field("panel", func(e *jx.Encoder) { e.Str(op.Panel) })
		}
		if op.Text != "" {
			e.Field("text", func(e *jx.Encoder) { e.Str(op.Text) })
		}
		switch op.Kind {
		case OpTextColored:
			e.Field("color", func(e *jx.Encoder) {
				e.Arr(func(e *jx.Encoder) {
					e.Float32(op.Color.R)
					e.Float32(op.Color.G)
					e.Float32(op.Color.B)
					e.Float32(op.Color.A)
				})
			})
		case OpButton:
			e.Field("enabled", func(e *jx.Encoder) { e.Bool(op.Enabled) })
		}
	})
}
