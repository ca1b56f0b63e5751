package main

import (
	"github.com/valerio/gbdebug/gbdebug"
	"github.com/valerio/gbdebug/gbdebug/timing"
)

// loop drives the debugger until exit is requested or the backend closes,
// and returns the number of frames rendered.
func loop(d *gbdebug.Debugger, m *machine, limiter timing.Limiter) int {
	var budget timing.Budget
	wasRunning := d.IsRunning()
	frames := 0

	m.tick()
	push(d, m)

	for !d.ShouldClose() && !d.IsExitRequested() {
		for ev := d.PollEvent(); ev != nil; ev = d.PollEvent() {
			d.ProcessEvent(ev)
		}

		switch {
		case d.IsRunning():
			if !wasRunning {
				limiter.Reset()
			}
			for n := budget.Frames(d.GetSpeedMultiplier()); n > 0; n-- {
				m.runFrame()
			}
		case d.IsStepRequested():
			m.step()
			m.tick()
			d.ClearStepRequest()
		default:
			budget.Reset()
		}
		wasRunning = d.IsRunning()

		push(d, m)

		d.BeginFrame()
		d.Render()
		d.EndFrame()
		frames++

		limiter.WaitForNextFrame()
	}

	return frames
}

func push(d *gbdebug.Debugger, m *machine) {
	d.UpdateCPU(m.cycle, m.pc, m.sp, m.af, m.bc, m.de, m.hl, m.ime)
	// the machine's buffer is always a full address space
	_ = d.UpdateMemory(m.memory())
}
