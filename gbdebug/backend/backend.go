package backend

import (
	"errors"

	"github.com/valerio/gbdebug/gbdebug/input/action"
	"github.com/valerio/gbdebug/gbdebug/state"
)

// ErrUnavailable is returned by backends that were not compiled in.
var ErrUnavailable = errors.New("backend not available")

// Event is an opaque platform event (a tcell.Event, an sdl.Event, ...).
// Only the backend that produced it knows how to interpret it.
type Event any

// Backend is the rendering collaborator driven by the debugger.
// Backends are responsible for:
// - Creating and destroying the host window or terminal screen
// - Translating platform events into actions visible through the Canvas
// - Framing: clearing at BeginFrame, presenting at EndFrame
//
// The debugger calls Init, then {PollEvent/ProcessEvent*, BeginFrame,
// panel renders, EndFrame}*, then Cleanup.
type Backend interface {
	// Init creates all backend resources. On error the backend must not
	// retain anything, so Init can be retried.
	Init(config Config) error

	// Cleanup releases everything acquired by Init.
	Cleanup() error

	// PollEvent returns the next pending platform event, or nil if none.
	PollEvent() Event

	// ProcessEvent translates a platform event into actions and window state.
	ProcessEvent(ev Event)

	BeginFrame()
	EndFrame()

	// ShouldClose reports whether the host window asked to be closed.
	ShouldClose() bool

	// GetWindow returns the backend's native window handle, if any.
	GetWindow() any

	// Canvas returns the draw surface panels render into for the current frame.
	Canvas() Canvas
}

// Config holds configuration for backends
type Config struct {
	Title    string
	Width    int    // window width in pixels, ignored by text backends
	Height   int    // window height in pixels, ignored by text backends
	FontPath string // TTF font, only used by windowed backends
	FontSize int
}

const (
	DefaultTitle    = "GBDebugger"
	DefaultWidth    = 800
	DefaultHeight   = 600
	DefaultFontSize = 14
)

// DefaultConfig returns the configuration used when none is given.
func DefaultConfig() Config {
	return Config{
		Title:    DefaultTitle,
		Width:    DefaultWidth,
		Height:   DefaultHeight,
		FontSize: DefaultFontSize,
	}
}

// Placement is a panel's preferred position and size in character cells.
// Windowed backends scale it by their glyph size.
type Placement struct {
	X, Y          int
	Width, Height int
}

// Canvas is an immediate-mode draw surface. Panels describe their content
// every frame; widgets that take input report it through their return value.
type Canvas interface {
	BeginPanel(title string, placement Placement)
	EndPanel()

	Text(text string)
	TextColored(color state.Color, text string)
	TextDisabled(text string)
	Separator()

	// Button draws a button bound to act. It returns true when the button is
	// enabled and was activated this frame.
	Button(label string, act action.Action, enabled bool) bool

	// Combo draws a selector over items and returns the selected index,
	// current when the selection did not change.
	Combo(label string, items []string, current int) int

	// Triggered reports whether act was triggered this frame.
	Triggered(act action.Action) bool

	// BeginScroll opens a scrolling region of total lines and returns the
	// half-open range [first, last) of lines that are visible.
	BeginScroll(id string, total int) (first, last int)
	EndScroll()
}
