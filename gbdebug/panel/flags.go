package panel

import (
	"fmt"

	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/state"
)

const FlagsName = "CPU Flags"

var (
	flagSetColor   = state.Color{R: 0.3, G: 1.0, B: 0.3, A: 1.0}
	flagClearColor = state.Color{R: 0.5, G: 0.5, B: 0.5, A: 1.0}
)

// Flags displays the Z, N, H and C flags extracted from AF.
type Flags struct {
	base
	state state.CPU
}

var _ Panel = (*Flags)(nil)

func NewFlags() *Flags {
	return &Flags{base: newBase(FlagsName)}
}

func (p *Flags) Update(cpu state.CPU) {
	p.state = cpu
}

func (p *Flags) State() state.CPU {
	return p.state
}

func (p *Flags) Render(c backend.Canvas) {
	if !p.visible {
		return
	}

	c.BeginPanel(p.name, flagsPlacement)
	defer c.EndPanel()

	c.Text(fmt.Sprintf("F: 0x%02X", p.state.GetF()))
	c.Separator()
	for _, flag := range p.state.Flags() {
		label := fmt.Sprintf("%s (%s)", flag.Name, flag.Description)
		if flag.Set {
			c.TextColored(flagSetColor, fmt.Sprintf("%-16s SET", label))
		} else {
			c.TextColored(flagClearColor, fmt.Sprintf("%-16s CLEAR", label))
		}
	}
}
