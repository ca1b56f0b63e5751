package panel

import "github.com/valerio/gbdebug/gbdebug/backend"

// Panel is a self-contained debugger view bound to one slice of the state.
// Panels receive data through their own Update methods and draw it when
// Render is called during the frame loop.
type Panel interface {
	// Render draws the panel. Invisible panels return without drawing.
	Render(c backend.Canvas)

	// GetName returns the panel's display name, also used as window title.
	GetName() string

	IsVisible() bool
	SetVisible(visible bool)
}

// Default placements, in character cells.
var (
	cpuPlacement     = backend.Placement{X: 0, Y: 0, Width: 32, Height: 12}
	flagsPlacement   = backend.Placement{X: 0, Y: 12, Width: 32, Height: 8}
	controlPlacement = backend.Placement{X: 0, Y: 20, Width: 32, Height: 8}
	memoryPlacement  = backend.Placement{X: 33, Y: 0, Width: 76, Height: 28}
)

// base holds what every panel shares: its name and visibility.
// Panels start visible.
type base struct {
	name    string
	visible bool
}

func newBase(name string) base {
	return base{name: name, visible: true}
}

func (b *base) GetName() string         { return b.name }
func (b *base) IsVisible() bool         { return b.visible }
func (b *base) SetVisible(visible bool) { b.visible = visible }
