package panel

import (
	"fmt"

	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/state"
)

const CPUStateName = "CPU State"

// CPUState displays the register values, cycle count and IME flag.
type CPUState struct {
	base
	state state.CPU
}

var _ Panel = (*CPUState)(nil)

func NewCPUState() *CPUState {
	return &CPUState{base: newBase(CPUStateName)}
}

// Update replaces the displayed snapshot. It is applied even while hidden.
func (p *CPUState) Update(cpu state.CPU) {
	p.state = cpu
}

// State returns the last snapshot received.
func (p *CPUState) State() state.CPU {
	return p.state
}

func (p *CPUState) Render(c backend.Canvas) {
	if !p.visible {
		return
	}

	c.BeginPanel(p.name, cpuPlacement)
	defer c.EndPanel()

	cpu := p.state
	c.Text(fmt.Sprintf("Cycle: %d", cpu.Cycle))
	c.Text(fmt.Sprintf("PC: 0x%04X   SP: 0x%04X", cpu.PC, cpu.SP))
	c.Separator()
	c.Text(fmt.Sprintf("AF: 0x%04X  (A: 0x%02X  F: 0x%02X)", cpu.AF, cpu.GetA(), cpu.GetF()))
	c.Text(fmt.Sprintf("BC: 0x%04X  (B: 0x%02X  C: 0x%02X)", cpu.BC, cpu.GetB(), cpu.GetC()))
	c.Text(fmt.Sprintf("DE: 0x%04X  (D: 0x%02X  E: 0x%02X)", cpu.DE, cpu.GetD(), cpu.GetE()))
	c.Text(fmt.Sprintf("HL: 0x%04X  (H: 0x%02X  L: 0x%02X)", cpu.HL, cpu.GetH(), cpu.GetL()))
	c.Separator()
	c.Text(fmt.Sprintf("IME: %s", map[bool]string{true: "ON", false: "OFF"}[cpu.IME]))
}
