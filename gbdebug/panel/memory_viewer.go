package panel

import (
	"fmt"
	"strings"

	"github.com/valerio/gbdebug/gbdebug/backend"
	"github.com/valerio/gbdebug/gbdebug/state"
)

const (
	MemoryViewerName = "Memory Viewer"

	// MemoryScrollID identifies the memory viewer's scrolling region.
	MemoryScrollID = "memory"

	placeholderText = "No memory data available"
	columnHeader    = "Addr  00 01 02 03 04 05 06 07 08 09 0A 0B 0C 0D 0E 0F  ASCII"
)

// Line is one line of the memory viewer: a region header or a 16 byte row.
type Line struct {
	Header bool
	Region int    // index into state.Regions()
	Addr   uint16 // row address, or region start for headers
}

// memoryLines is the fixed layout of the viewer. It only depends on the
// region table, so it is built once.
var memoryLines = buildLines()

// buildLines emits every row in address order, preceded by the header of each
// region starting inside it. Rows are aligned so this is the row starting at
// the region's start address, except for the single byte IE register whose
// header comes before the last row.
func buildLines() []Line {
	regions := state.Regions()
	lines := make([]Line, 0, state.RowCount+len(regions))

	next := 0
	for row := 0; row < state.RowCount; row++ {
		addr := row * state.RowSize
		for next < len(regions) && int(regions[next].Start) < addr+state.RowSize {
			lines = append(lines, Line{Header: true, Region: next, Addr: regions[next].Start})
			next++
		}
		lines = append(lines, Line{Region: state.RegionIndex(uint16(addr)), Addr: uint16(addr)})
	}
	return lines
}

// Lines returns the viewer layout, headers included.
func Lines() []Line {
	lines := make([]Line, len(memoryLines))
	copy(lines, memoryLines)
	return lines
}

// FormatHex renders bytes as space separated uppercase hex pairs.
func FormatHex(data []byte) string {
	var sb strings.Builder
	for i, b := range data {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%02X", b)
	}
	return sb.String()
}

// FormatASCII renders printable ASCII bytes as themselves and others as '.'.
func FormatASCII(data []byte) string {
	out := make([]byte, len(data))
	for i, b := range data {
		if b >= 32 && b <= 126 {
			out[i] = b
		} else {
			out[i] = '.'
		}
	}
	return string(out)
}

// FormatRow renders a viewer row: address, hex bytes and ASCII.
func FormatRow(addr uint16, row [state.RowSize]uint8) string {
	return fmt.Sprintf("%04X: %s  %s", addr, FormatHex(row[:]), FormatASCII(row[:]))
}

// FormatHeader renders a region header with its inclusive range.
func FormatHeader(r state.Region) string {
	return fmt.Sprintf("%s (0x%04X-0x%04X)", r.Name, r.Start, r.End)
}

// MemoryViewer displays the full address space as a hex dump, split by
// color coded region headers.
type MemoryViewer struct {
	base
	mem state.Memory
}

var _ Panel = (*MemoryViewer)(nil)

func NewMemoryViewer() *MemoryViewer {
	return &MemoryViewer{base: newBase(MemoryViewerName)}
}

// Update copies a full 64KB snapshot, see state.Memory.Update.
func (p *MemoryViewer) Update(buf []byte) error {
	return p.mem.Update(buf)
}

func (p *MemoryViewer) Read(addr uint16) uint8 {
	return p.mem.Read(addr)
}

func (p *MemoryViewer) IsValid() bool {
	return p.mem.IsValid()
}

func (p *MemoryViewer) Render(c backend.Canvas) {
	if !p.visible {
		return
	}

	c.BeginPanel(p.name, memoryPlacement)
	defer c.EndPanel()

	if !p.mem.IsValid() {
		c.TextDisabled(placeholderText)
		return
	}

	c.TextDisabled(columnHeader)
	c.Separator()

	first, last := c.BeginScroll(MemoryScrollID, len(memoryLines))
	defer c.EndScroll()

	first = max(first, 0)
	last = min(last, len(memoryLines))

	regions := state.Regions()
	for _, line := range memoryLines[first:max(first, last)] {
		region := regions[line.Region]
		if line.Header {
			c.TextColored(region.Color, FormatHeader(region))
			continue
		}
		c.TextColored(region.Color, FormatRow(line.Addr, p.mem.Row(line.Addr)))
	}
}
