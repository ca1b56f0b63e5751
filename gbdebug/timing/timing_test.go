package timing

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestFrameDuration(t *testing.T) {
	assert.InDelta(t, 59.7275, TargetFPS(), 0.001)
	assert.InDelta(t, float64(16742706*time.Nanosecond), float64(FrameDuration()), float64(time.Microsecond))
}

func TestNoOpLimiterReturnsImmediately(t *testing.T) {
	l := NewNoOpLimiter()

	start := time.Now()
	for i := 0; i < 1000; i++ {
		l.WaitForNextFrame()
	}
	l.Reset()
	assert.Less(t, time.Since(start), 100*time.Millisecond)
}

func TestBudget(t *testing.T) {
	tests := []struct {
		multiplier float64
		hostFrames int
		want       int
	}{
		{0.125, 8, 1},
		{0.125, 16, 2},
		{0.25, 8, 2},
		{0.5, 8, 4},
		{1.0, 8, 8},
		{2.0, 8, 16},
		{8.0, 8, 64},
		{0, 8, 0},
		{-1, 8, 0},
	}

	for _, tt := range tests {
		var b Budget
		total := 0
		for i := 0; i < tt.hostFrames; i++ {
			total += b.Frames(tt.multiplier)
		}
		assert.Equal(t, tt.want, total, "multiplier %v", tt.multiplier)
	}
}

func TestBudgetReset(t *testing.T) {
	var b Budget
	assert.Equal(t, 0, b.Frames(0.5))
	b.Reset()
	assert.Equal(t, 0, b.Frames(0.5))
	assert.Equal(t, 1, b.Frames(0.5))
}
