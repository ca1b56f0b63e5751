package input

import (
	"time"

	"github.com/valerio/gbdebug/gbdebug/input/action"
	"github.com/valerio/gbdebug/gbdebug/input/event"
)

// DefaultDebounceDelay is the minimum time between two debounced events
const DefaultDebounceDelay = 300 * time.Millisecond

// Handler manages input processing with debouncing for one-shot actions
type Handler struct {
	lastActionTime map[action.Action]map[event.Type]time.Time
	debounceDelay  time.Duration
}

func NewHandler() *Handler {
	return NewHandlerWithDelay(DefaultDebounceDelay)
}

func NewHandlerWithDelay(delay time.Duration) *Handler {
	return &Handler{
		lastActionTime: make(map[action.Action]map[event.Type]time.Time),
		debounceDelay:  delay,
	}
}

// ProcessEvent applies debouncing to Press/Release events of control and
// view actions. Navigation actions and Hold events always pass.
// Returns true if the event should be handled, false if it was debounced.
func (h *Handler) ProcessEvent(act action.Action, evt event.Type) bool {
	if evt == event.Hold || action.GetInfo(act).Category == action.CategoryNavigation {
		return true
	}

	now := time.Now()
	if h.lastActionTime[act] == nil {
		h.lastActionTime[act] = make(map[event.Type]time.Time)
	}
	if lastTime, exists := h.lastActionTime[act][evt]; exists {
		if now.Sub(lastTime) < h.debounceDelay {
			return false
		}
	}
	h.lastActionTime[act][evt] = now

	return true
}
