package gbdebug

import (
	"fmt"
	"log/slog"

	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/input/action"
	"github.com/valerio/gbdebug/gbdebug/panel"
	"github.com/valerio/gbdebug/gbdebug/state"
)

// Debugger owns the four debugger panels and drives a rendering backend.
// It holds the latest CPU and memory snapshots pushed by the emulator and
// exposes the control panel's run/step/speed/exit state back to it.
//
// A typical host loop:
//
//	for !dbg.ShouldClose() && !dbg.IsExitRequested() {
//		for ev := dbg.PollEvent(); ev != nil; ev = dbg.PollEvent() {
//			dbg.ProcessEvent(ev)
//		}
//		// step or run the emulator, then push its state
//		dbg.UpdateCPU(...)
//		dbg.UpdateMemory(mem)
//		dbg.BeginFrame()
//		dbg.Render()
//		dbg.EndFrame()
//	}
//
// Debugger is not safe for concurrent use.
type Debugger struct {
	backend backend.Backend
	config  backend.Config
	open    bool

	cpu     *panel.CPUState
	flags   *panel.Flags
	memory  *panel.MemoryViewer
	control *panel.Control

	// render order
	panels []panel.Panel
}

// panelToggles maps view actions to the panel they show or hide.
var panelToggles = map[action.Action]string{
	action.ToggleCPUPanel:     panel.CPUStateName,
	action.ToggleFlagsPanel:   panel.FlagsName,
	action.ToggleMemoryPanel:  panel.MemoryViewerName,
	action.ToggleControlPanel: panel.ControlName,
}

// New creates a closed debugger rendering through b with the default
// window configuration.
func New(b backend.Backend) *Debugger {
	return NewWithConfig(b, backend.DefaultConfig())
}

func NewWithConfig(b backend.Backend, config backend.Config) *Debugger {
	d := &Debugger{
		backend: b,
		config:  config,
		cpu:     panel.NewCPUState(),
		flags:   panel.NewFlags(),
		memory:  panel.NewMemoryViewer(),
		control: panel.NewControl(),
	}
	d.panels = []panel.Panel{d.cpu, d.flags, d.memory, d.control}
	return d
}

// Open initializes the backend. Opening an open debugger does nothing.
// If the backend fails to initialize the debugger stays closed and Open
// can be called again.
func (d *Debugger) Open() error {
	if d.open {
		return nil
	}
	if err := d.backend.Init(d.config); err != nil {
		return fmt.Errorf("failed to open debugger: %w", err)
	}
	d.open = true
	slog.Debug("Debugger opened", "title", d.config.Title)
	return nil
}

// Close releases the backend. Closing a closed debugger does nothing.
func (d *Debugger) Close() error {
	if !d.open {
		return nil
	}
	d.open = false
	slog.Debug("Debugger closed")
	if err := d.backend.Cleanup(); err != nil {
		return fmt.Errorf("failed to close debugger: %w", err)
	}
	return nil
}

func (d *Debugger) IsOpen() bool {
	return d.open
}

// ShouldClose reports whether the backend window asked to close.
// A closed debugger always reports false.
func (d *Debugger) ShouldClose() bool {
	return d.open && d.backend.ShouldClose()
}

// GetWindow returns the backend's native window, nil while closed.
func (d *Debugger) GetWindow() any {
	if !d.open {
		return nil
	}
	return d.backend.GetWindow()
}

// UpdateCPU replaces the CPU snapshot shown by the CPU State and CPU Flags
// panels. It works whether or not the debugger is open.
func (d *Debugger) UpdateCPU(cycle uint64, pc, sp, af, bc, de, hl uint16, ime bool) {
	cpu := state.NewCPU(cycle, pc, sp, af, bc, de, hl, ime)
	d.cpu.Update(cpu)
	d.flags.Update(cpu)
}

// UpdateMemory copies a full 64KB address-space snapshot into the Memory
// Viewer. Invalid buffers are rejected and leave the previous snapshot
// untouched.
func (d *Debugger) UpdateMemory(buf []byte) error {
	return d.memory.Update(buf)
}

// PollEvent returns the next pending backend event, nil when there is none
// or the debugger is closed.
func (d *Debugger) PollEvent() backend.Event {
	if !d.open {
		return nil
	}
	return d.backend.PollEvent()
}

func (d *Debugger) ProcessEvent(ev backend.Event) {
	if !d.open || ev == nil {
		return
	}
	d.backend.ProcessEvent(ev)
}

func (d *Debugger) BeginFrame() {
	if d.open {
		d.backend.BeginFrame()
	}
}

func (d *Debugger) EndFrame() {
	if d.open {
		d.backend.EndFrame()
	}
}

// Render applies panel visibility toggles and draws every panel, in the
// order CPU State, CPU Flags, Memory Viewer, Controls. It does nothing while
// the debugger is closed.
func (d *Debugger) Render() {
	if !d.open {
		return
	}

	canvas := d.backend.Canvas()
	for act, name := range panelToggles {
		if canvas.Triggered(act) {
			p := d.panel(name)
			p.SetVisible(!p.IsVisible())
		}
	}

	for _, p := range d.panels {
		p.Render(canvas)
	}
}

// Control panel passthroughs.

func (d *Debugger) IsRunning() bool             { return d.control.IsRunning() }
func (d *Debugger) SetRunning(running bool)     { d.control.SetRunning(running) }
func (d *Debugger) ToggleRunning()              { d.control.ToggleRunning() }
func (d *Debugger) IsStepRequested() bool       { return d.control.IsStepRequested() }
func (d *Debugger) ClearStepRequest()           { d.control.ClearStepRequest() }
func (d *Debugger) IsExitRequested() bool       { return d.control.IsExitRequested() }
func (d *Debugger) GetSpeedIndex() int          { return d.control.GetSpeedIndex() }
func (d *Debugger) SetSpeedIndex(index int)     { d.control.SetSpeedIndex(index) }
func (d *Debugger) CycleSpeedUp()               { d.control.CycleSpeedUp() }
func (d *Debugger) CycleSpeedDown()             { d.control.CycleSpeedDown() }
func (d *Debugger) GetSpeedMultiplier() float64 { return d.control.GetSpeedMultiplier() }

func (d *Debugger) CPUPanel() *panel.CPUState        { return d.cpu }
func (d *Debugger) FlagsPanel() *panel.Flags         { return d.flags }
func (d *Debugger) MemoryPanel() *panel.MemoryViewer { return d.memory }
func (d *Debugger) ControlPanel() *panel.Control     { return d.control }

// Panels returns the panels in render order.
func (d *Debugger) Panels() []panel.Panel {
	return append([]panel.Panel(nil), d.panels...)
}

// SetPanelVisible shows or hides the panel with the given name. It returns
// false if there is no such panel.
func (d *Debugger) SetPanelVisible(name string, visible bool) bool {
	p := d.panel(name)
	if p == nil {
		return false
	}
	p.SetVisible(visible)
	return true
}

func (d *Debugger) panel(name string) panel.Panel {
	for _, p := range d.panels {
		if p.GetName() == name {
			return p
		}
	}
	return nil
}
