package timing

// Budget converts a speed multiplier into whole emulated frames per host
// frame. Fractions carry over, so at 1/8x one emulated frame runs every
// eighth host frame and at 8x eight run every host frame.
type Budget struct {
	acc float64
}

// Frames adds one host frame at multiplier and returns how many emulated
// frames are due. Non-positive multipliers never produce frames.
func (b *Budget) Frames(multiplier float64) int {
	if multiplier <= 0 {
		return 0
	}
	b.acc += multiplier
	n := int(b.acc)
	b.acc -= float64(n)
	return n
}

// Reset drops any carried fraction, e.g. when execution is paused.
func (b *Budget) Reset() {
	b.acc = 0
}
