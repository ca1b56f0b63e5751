package panel

import (
	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/input/action"
)

const (
	ControlName = "Controls"

	// SpeedCount is the number of selectable emulation speeds.
	SpeedCount = 7
	// DefaultSpeedIndex selects the 1x speed.
	DefaultSpeedIndex = 3
)

// 0=1/8x, 1=1/4x, 2=1/2x, 3=1x, 4=2x, 5=4x, 6=8x
var (
	speedMultipliers = [SpeedCount]float64{0.125, 0.25, 0.5, 1.0, 2.0, 4.0, 8.0}
	speedLabels      = [SpeedCount]string{"1/8x", "1/4x", "1/2x", "1x", "2x", "4x", "8x"}
)

// Control holds the run/step/exit/speed controls. Its state is read back by
// the host loop:
//
//	if ctl.IsStepRequested() { step; ctl.ClearStepRequest() }
//	if ctl.IsRunning() { run at ctl.GetSpeedMultiplier() }
//	if ctl.IsExitRequested() { exit }
type Control struct {
	base
	running       bool
	stepRequested bool
	exitRequested bool
	speedIndex    int
}

var _ Panel = (*Control)(nil)

func NewControl() *Control {
	return &Control{
		base:       newBase(ControlName),
		speedIndex: DefaultSpeedIndex,
	}
}

func (p *Control) IsRunning() bool         { return p.running }
func (p *Control) SetRunning(running bool) { p.running = running }
func (p *Control) ToggleRunning()          { p.running = !p.running }

// IsStepRequested reports a pending step. The request stays set until
// ClearStepRequest is called, whether or not the emulator is running.
func (p *Control) IsStepRequested() bool { return p.stepRequested }
func (p *Control) RequestStep()          { p.stepRequested = true }
func (p *Control) ClearStepRequest()     { p.stepRequested = false }

// IsExitRequested reports whether exit was requested. Once set it is never
// cleared.
func (p *Control) IsExitRequested() bool { return p.exitRequested }
func (p *Control) RequestExit()          { p.exitRequested = true }

func (p *Control) GetSpeedIndex() int { return p.speedIndex }

// SetSpeedIndex selects a speed. Indices outside [0, SpeedCount) are ignored.
func (p *Control) SetSpeedIndex(index int) {
	if index >= 0 && index < SpeedCount {
		p.speedIndex = index
	}
}

// CycleSpeedUp selects the next faster speed, stopping at 8x.
func (p *Control) CycleSpeedUp() {
	if p.speedIndex < SpeedCount-1 {
		p.speedIndex++
	}
}

// CycleSpeedDown selects the next slower speed, stopping at 1/8x.
func (p *Control) CycleSpeedDown() {
	if p.speedIndex > 0 {
		p.speedIndex--
	}
}

// GetSpeedMultiplier returns the multiplier for the selected speed,
// e.g. 0.125 for 1/8x and 8.0 for 8x.
func (p *Control) GetSpeedMultiplier() float64 {
	return speedMultipliers[p.speedIndex]
}

func (p *Control) GetSpeedLabel() string {
	return speedLabels[p.speedIndex]
}

// SpeedLabels returns the labels of all selectable speeds, slowest first.
func SpeedLabels() []string {
	labels := speedLabels
	return labels[:]
}

func (p *Control) Render(c backend.Canvas) {
	if !p.visible {
		return
	}

	c.BeginPanel(p.name, controlPlacement)
	defer c.EndPanel()

	if p.running {
		if c.Button("Stop (R)", action.ToggleRun, true) {
			p.running = false
		}
	} else {
		if c.Button("Run (R)", action.ToggleRun, true) {
			p.running = true
		}
	}

	// stepping only makes sense while paused
	if c.Button("Step (S)", action.Step, !p.running) {
		p.stepRequested = true
	}

	if selected := c.Combo("Speed", speedLabels[:], p.speedIndex); selected != p.speedIndex {
		p.SetSpeedIndex(selected)
	}
	if c.Triggered(action.SpeedUp) {
		p.CycleSpeedUp()
	}
	if c.Triggered(action.SpeedDown) {
		p.CycleSpeedDown()
	}
	c.TextDisabled("(T/Shift+T)")

	if c.Button("Exit (ESC)", action.Exit, true) {
		p.exitRequested = true
	}
}
