package state

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRegions_Coverage(t *testing.T) {
	regions := Regions()

	assert.Len(t, regions, 12)
	assert.Equal(t, uint16(0x0000), regions[0].Start)
	assert.Equal(t, uint16(0xFFFF), regions[len(regions)-1].End)

	total := 0
	for i, r := range regions {
		assert.LessOrEqual(t, r.Start, r.End, "region %s", r.Name)
		total += r.Size()
		if i == 0 {
			continue
		}
		prev := regions[i-1]
		assert.Less(t, prev.Start, r.Start, "regions must be sorted by start")
		assert.Equal(t, int(prev.End)+1, int(r.Start), "gap or overlap between %s and %s", prev.Name, r.Name)
	}
	assert.Equal(t, MemorySize, total)
}

func TestRegions_KnownEntries(t *testing.T) {
	regions := Regions()

	tests := []struct {
		index      int
		name       string
		start, end uint16
	}{
		{0, "ROM Bank 0", 0x0000, 0x3FFF},
		{2, "VRAM", 0x8000, 0x9FFF},
		{7, "OAM", 0xFE00, 0xFE9F},
		{10, "HRAM", 0xFF80, 0xFFFE},
		{11, "IE Register", 0xFFFF, 0xFFFF},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := regions[tt.index]
			assert.Equal(t, tt.name, r.Name)
			assert.Equal(t, tt.start, r.Start)
			assert.Equal(t, tt.end, r.End)
			assert.Equal(t, float32(1.0), r.Color.A)
		})
	}
}

func TestRegions_ReturnsCopy(t *testing.T) {
	regions := Regions()
	regions[0].Name = "changed"
	regions[0].End = 0

	fresh := Regions()
	assert.Equal(t, "ROM Bank 0", fresh[0].Name)
	assert.Equal(t, uint16(0x3FFF), fresh[0].End)
}

func TestRegionAt(t *testing.T) {
	tests := []struct {
		addr uint16
		name string
	}{
		{0x0000, "ROM Bank 0"},
		{0x3FFF, "ROM Bank 0"},
		{0x4000, "ROM Bank N"},
		{0x9FFF, "VRAM"},
		{0xE123, "Echo RAM"},
		{0xFEA0, "Unusable"},
		{0xFF0F, "I/O Registers"},
		{0xFFFE, "HRAM"},
		{0xFFFF, "IE Register"},
	}

	for _, tt := range tests {
		r := RegionAt(tt.addr)
		assert.Equal(t, tt.name, r.Name, "address %04X", tt.addr)
		assert.True(t, r.Contains(tt.addr))
	}
}

func TestRegionIndex_EveryAddressHasOneRegion(t *testing.T) {
	regions := Regions()
	for addr := 0; addr < MemorySize; addr++ {
		idx := RegionIndex(uint16(addr))
		if idx < 0 || idx >= len(regions) || !regions[idx].Contains(uint16(addr)) {
			t.Fatalf("address %04X mapped to region index %d", addr, idx)
		}
	}
}
