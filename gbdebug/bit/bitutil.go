package bit

// Combine combines two 8 bit values into a single 16 bit value.
// The high byte will be the most significant one.
func Combine(high, low uint8) uint16 {
	return (uint16(high) << 8) | uint16(low)
}

// High returns the high (MSB) part of a 16 bit number.
func High(value uint16) uint8 {
	return uint8(value >> 8)
}

// Low returns the low (LSB) part of a 16 bit number.
func Low(value uint16) uint8 {
	return uint8(value & 0xFF)
}

// IsSet will check if the bit at the specified index is set to 1 or not.
func IsSet(index, value uint8) bool {
	return ((value >> index) & 1) == 1
}

// HasMask reports whether any bit of mask is set in value.
func HasMask(value, mask uint8) bool {
	return value&mask != 0
}

// AlignDown clears the low bits of addr so it is a multiple of size.
// size must be a power of two.
func AlignDown(addr, size uint16) uint16 {
	return addr &^ (size - 1)
}
