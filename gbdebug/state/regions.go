package state

import "sort"

// Color is an RGBA color with normalized channels.
type Color struct {
	R, G, B, A float32
}

// Region is a named, inclusive range of the address space.
type Region struct {
	Name  string
	Start uint16
	End   uint16
	Color Color
}

// Contains reports whether addr falls inside the region.
func (r Region) Contains(addr uint16) bool {
	return addr >= r.Start && addr <= r.End
}

// Size returns the number of bytes covered by the region.
func (r Region) Size() int {
	return int(r.End) - int(r.Start) + 1
}

// RegionCount is the number of entries in the memory map.
const RegionCount = 12

// memoryRegions is the Game Boy memory map. Entries are sorted, contiguous
// and cover 0x0000-0xFFFF.
var memoryRegions = [RegionCount]Region{
	{"ROM Bank 0", 0x0000, 0x3FFF, Color{0.8, 0.8, 1.0, 1.0}},
	{"ROM Bank N", 0x4000, 0x7FFF, Color{0.7, 0.7, 1.0, 1.0}},
	{"VRAM", 0x8000, 0x9FFF, Color{1.0, 0.8, 0.8, 1.0}},
	{"External RAM", 0xA000, 0xBFFF, Color{0.8, 1.0, 0.8, 1.0}},
	{"WRAM Bank 0", 0xC000, 0xCFFF, Color{1.0, 1.0, 0.8, 1.0}},
	{"WRAM Bank N", 0xD000, 0xDFFF, Color{1.0, 0.9, 0.7, 1.0}},
	{"Echo RAM", 0xE000, 0xFDFF, Color{0.6, 0.6, 0.6, 1.0}},
	{"OAM", 0xFE00, 0xFE9F, Color{1.0, 0.8, 1.0, 1.0}},
	{"Unusable", 0xFEA0, 0xFEFF, Color{0.5, 0.5, 0.5, 1.0}},
	{"I/O Registers", 0xFF00, 0xFF7F, Color{0.8, 1.0, 1.0, 1.0}},
	{"HRAM", 0xFF80, 0xFFFE, Color{1.0, 1.0, 0.6, 1.0}},
	{"IE Register", 0xFFFF, 0xFFFF, Color{1.0, 0.6, 0.6, 1.0}},
}

// Regions returns a copy of the memory map in address order.
func Regions() []Region {
	regions := memoryRegions
	return regions[:]
}

// RegionIndex returns the index in Regions of the region containing addr.
func RegionIndex(addr uint16) int {
	// first region ending at or after addr
	return sort.Search(RegionCount, func(i int) bool {
		return memoryRegions[i].End >= addr
	})
}

// RegionAt returns the region containing addr. The map covers the whole
// address space so there is always exactly one.
func RegionAt(addr uint16) Region {
	return memoryRegions[RegionIndex(addr)]
}
