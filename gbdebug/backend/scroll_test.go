package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/gbdebug/gbdebug/input/action"
)

func triggeredOnly(acts ...action.Action) func(action.Action) bool {
	return func(act action.Action) bool {
		for _, a := range acts {
			if a == act {
				return true
			}
		}
		return false
	}
}

func TestScroller_Visible(t *testing.T) {
	none := triggeredOnly()

	t.Run("everything fits", func(t *testing.T) {
		s := NewScroller()
		first, last := s.Visible("mem", 10, 20, none)
		assert.Equal(t, 0, first)
		assert.Equal(t, 10, last)
	})

	t.Run("unbounded viewport", func(t *testing.T) {
		s := NewScroller()
		first, last := s.Visible("mem", 4108, 0, none)
		assert.Equal(t, 0, first)
		assert.Equal(t, 4108, last)
	})

	t.Run("empty region", func(t *testing.T) {
		s := NewScroller()
		first, last := s.Visible("mem", 0, 10, none)
		assert.Equal(t, 0, first)
		assert.Equal(t, 0, last)
	})

	t.Run("navigation", func(t *testing.T) {
		s := NewScroller()
		steps := []struct {
			act   action.Action
			first int
		}{
			{action.ScrollDown, 1},
			{action.ScrollDown, 2},
			{action.ScrollUp, 1},
			{action.PageDown, 11},
			{action.PageUp, 1},
			{action.PageUp, 0},
			{action.ScrollUp, 0},
			{action.ScrollBottom, 90},
			{action.ScrollDown, 90},
			{action.PageDown, 90},
			{action.ScrollTop, 0},
		}
		for _, step := range steps {
			first, last := s.Visible("mem", 100, 10, triggeredOnly(step.act))
			assert.Equal(t, step.first, first, "after %s", step.act)
			assert.Equal(t, step.first+10, last, "after %s", step.act)
		}
	})

	t.Run("regions are independent", func(t *testing.T) {
		s := NewScroller()
		s.Visible("a", 100, 10, triggeredOnly(action.PageDown))
		assert.Equal(t, 10, s.Offset("a"))
		assert.Equal(t, 0, s.Offset("b"))
	})
}
