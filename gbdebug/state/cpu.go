package state

import "github.com/valerio/gbdebug/gbdebug/bit"

// Flag bit masks on the F register (low byte of AF). Bits 0-3 are unused.
const (
	FlagZ uint8 = 0x80 // Zero
	FlagN uint8 = 0x40 // Subtract
	FlagH uint8 = 0x20 // Half-carry
	FlagC uint8 = 0x10 // Carry
)

// CPU is a snapshot of the Game Boy CPU registers at a point in time.
// It is replaced wholesale on every update, no history is kept.
type CPU struct {
	Cycle uint64
	PC    uint16
	SP    uint16
	AF    uint16
	BC    uint16
	DE    uint16
	HL    uint16
	IME   bool
}

// NewCPU builds a snapshot from raw register values.
func NewCPU(cycle uint64, pc, sp, af, bc, de, hl uint16, ime bool) CPU {
	return CPU{
		Cycle: cycle,
		PC:    pc,
		SP:    sp,
		AF:    af,
		BC:    bc,
		DE:    de,
		HL:    hl,
		IME:   ime,
	}
}

func (c CPU) GetA() uint8 { return bit.High(c.AF) }
func (c CPU) GetF() uint8 { return bit.Low(c.AF) }
func (c CPU) GetB() uint8 { return bit.High(c.BC) }
func (c CPU) GetC() uint8 { return bit.Low(c.BC) }
func (c CPU) GetD() uint8 { return bit.High(c.DE) }
func (c CPU) GetE() uint8 { return bit.Low(c.DE) }
func (c CPU) GetH() uint8 { return bit.High(c.HL) }
func (c CPU) GetL() uint8 { return bit.Low(c.HL) }

func (c CPU) GetZFlag() bool { return bit.HasMask(c.GetF(), FlagZ) }
func (c CPU) GetNFlag() bool { return bit.HasMask(c.GetF(), FlagN) }
func (c CPU) GetHFlag() bool { return bit.HasMask(c.GetF(), FlagH) }
func (c CPU) GetCFlag() bool { return bit.HasMask(c.GetF(), FlagC) }

// Flag describes one of the four status flags held in F.
type Flag struct {
	Name        string
	Description string
	Mask        uint8
	Set         bool
}

var flagInfo = [...]struct {
	name, description string
	mask              uint8
}{
	{"Z", "Zero", FlagZ},
	{"N", "Subtract", FlagN},
	{"H", "Half-Carry", FlagH},
	{"C", "Carry", FlagC},
}

// Flags returns the status flags in Z, N, H, C order.
func (c CPU) Flags() []Flag {
	f := c.GetF()
	flags := make([]Flag, len(flagInfo))
	for i, info := range flagInfo {
		flags[i] = Flag{
			Name:        info.name,
			Description: info.description,
			Mask:        info.mask,
			Set:         bit.HasMask(f, info.mask),
		}
	}
	return flags
}
