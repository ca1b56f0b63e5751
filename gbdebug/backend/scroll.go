package backend

import "github.com/valerio/gbdebug/gbdebug/input/action"

// Scroller keeps the scroll offset of every scrolling region of a canvas and
// applies the navigation actions triggered during a frame.
type Scroller struct {
	offsets map[string]int
}

func NewScroller() *Scroller {
	return &Scroller{offsets: make(map[string]int)}
}

// Visible applies triggered navigation actions to the region id and returns
// the half-open range of lines shown in a viewport of height lines.
// A non-positive height shows everything.
func (s *Scroller) Visible(id string, total, height int, triggered func(action.Action) bool) (first, last int) {
	if total <= 0 {
		return 0, 0
	}
	if height <= 0 || height >= total {
		s.offsets[id] = 0
		return 0, total
	}

	offset := s.offsets[id]
	switch {
	case triggered(action.ScrollTop):
		offset = 0
	case triggered(action.ScrollBottom):
		offset = total - height
	case triggered(action.PageUp):
		offset -= height
	case triggered(action.PageDown):
		offset += height
	case triggered(action.ScrollUp):
		offset--
	case triggered(action.ScrollDown):
		offset++
	}

	offset = max(0, min(offset, total-height))
	s.offsets[id] = offset
	return offset, offset + height
}

// Offset returns the current offset of the region id.
func (s *Scroller) Offset(id string) int {
	return s.offsets[id]
}
