package main

import (
	"github.com/valerio/gbdebug/gbdebug/bit"
	"github.com/valerio/gbdebug/gbdebug/state"
	"github.com/valerio/gbdebug/gbdebug/timing"
)

const (
	addrDIV     = 0xFF04
	addrLY      = 0xFF44
	addrCounter = 0xC100 // frame counter in WRAM, just past the fill pattern

	scanlines = 154
)

// machine is a tiny stand-in for an emulator: it runs the sample program
// placed after the cartridge header and keeps a few I/O registers moving so
// the panels have something to show.
type machine struct {
	cycle          uint64
	pc, sp         uint16
	af, bc, de, hl uint16
	ime            bool
	frames         uint64
	mem            [state.MemorySize]uint8
}

func newMachine() *machine {
	m := &machine{
		cycle: 12345,
		pc:    0x0150,
		sp:    0xFFFE,
		af:    0x01B0,
		bc:    0x0013,
		de:    0x00D8,
		hl:    0x014D,
		ime:   true,
	}

	// entry point: NOP; JP 0x0150
	copy(m.mem[0x0100:], []byte{0x00, 0xC3, 0x50, 0x01})

	// logo area
	for i := 0x0104; i < 0x0134; i++ {
		m.mem[i] = uint8((i * 7) & 0xFF)
	}
	copy(m.mem[0x0134:], "EXAMPLE")

	// LD A, 0x42; LD B, 0x10; JP 0x0100
	copy(m.mem[0x0150:], []byte{0x3E, 0x42, 0x06, 0x10, 0xC3, 0x00, 0x01})

	for i := 0x8000; i < 0x9000; i++ {
		m.mem[i] = uint8(i & 0xFF)
	}
	for i := 0xC000; i < 0xC100; i++ {
		m.mem[i] = uint8(i - 0xC000)
	}

	return m
}

// step executes one instruction and returns the cycles it took.
// Only the opcodes of the sample program are decoded; anything else runs
// as a NOP.
func (m *machine) step() int {
	op := m.mem[m.pc]
	switch op {
	case 0x3E: // LD A, n
		m.af = bit.Combine(m.mem[m.pc+1], bit.Low(m.af))
		m.pc += 2
		m.cycle += 8
		return 8
	case 0x06: // LD B, n
		m.bc = bit.Combine(m.mem[m.pc+1], bit.Low(m.bc))
		m.pc += 2
		m.cycle += 8
		return 8
	case 0xC3: // JP nn
		m.pc = bit.Combine(m.mem[m.pc+2], m.mem[m.pc+1])
		m.cycle += 16
		return 16
	default:
		m.pc++
		m.cycle += 4
		return 4
	}
}

// runFrame executes a frame's worth of cycles and updates the I/O registers.
func (m *machine) runFrame() {
	for budget := timing.CyclesPerFrame; budget > 0; {
		budget -= m.step()
	}
	m.frames++
	m.tick()
}

func (m *machine) tick() {
	m.mem[addrDIV] = uint8(m.cycle >> 8)
	m.mem[addrLY] = uint8(m.frames % scanlines)
	m.mem[addrCounter] = uint8(m.frames)
}

func (m *machine) memory() []byte {
	return m.mem[:]
}
