package state

import (
	"errors"
	"fmt"

	"github.com/valerio/gbdebug/gbdebug/bit"
)

const (
	// MemorySize is the size of the full Game Boy address space.
	MemorySize = 0x10000
	// RowSize is the number of bytes shown per memory viewer row.
	RowSize = 16
	// RowCount is the number of rows covering the address space.
	RowCount = MemorySize / RowSize
)

var (
	ErrNoBuffer   = errors.New("no memory buffer")
	ErrBufferSize = errors.New("invalid memory buffer size")
)

// Memory is a snapshot of the 64KB address space. The zero value is an
// invalid, all-zero snapshot.
type Memory struct {
	buffer [MemorySize]uint8
	valid  bool
}

// Update copies buf into the snapshot. buf must hold exactly MemorySize
// bytes; on error the previous contents and validity are left untouched.
func (m *Memory) Update(buf []byte) error {
	if buf == nil {
		return ErrNoBuffer
	}
	if len(buf) != MemorySize {
		return fmt.Errorf("%w: got %d bytes, want %d", ErrBufferSize, len(buf), MemorySize)
	}

	copy(m.buffer[:], buf)
	m.valid = true
	return nil
}

// Read reads a single byte from the specified address.
func (m *Memory) Read(addr uint16) uint8 {
	return m.buffer[addr]
}

// IsValid reports whether a full snapshot has been received.
func (m *Memory) IsValid() bool {
	return m.valid
}

// Row returns the 16 bytes of the aligned row containing addr.
func (m *Memory) Row(addr uint16) [RowSize]uint8 {
	var row [RowSize]uint8
	start := int(bit.AlignDown(addr, RowSize))
	copy(row[:], m.buffer[start:start+RowSize])
	return row
}
