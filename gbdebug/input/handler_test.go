package input

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/valerio/gbdebug/gbdebug/input/action"
	"github.com/valerio/gbdebug/gbdebug/input/event"
)

func TestHandler_Debouncing(t *testing.T) {
	tests := []struct {
		name           string
		action         action.Action
		eventType      event.Type
		timeBetween    time.Duration
		expectDebounce bool
	}{
		{
			name:           "control action rapid press - should debounce",
			action:         action.ToggleRun,
			eventType:      event.Press,
			timeBetween:    10 * time.Millisecond,
			expectDebounce: true,
		},
		{
			name:           "control action slow press - should not debounce",
			action:         action.ToggleRun,
			eventType:      event.Press,
			timeBetween:    80 * time.Millisecond,
			expectDebounce: false,
		},
		{
			name:           "view action rapid press - should debounce",
			action:         action.ToggleMemoryPanel,
			eventType:      event.Press,
			timeBetween:    10 * time.Millisecond,
			expectDebounce: true,
		},
		{
			name:           "navigation rapid press - should not debounce",
			action:         action.ScrollDown,
			eventType:      event.Press,
			timeBetween:    0,
			expectDebounce: false,
		},
		{
			name:           "hold event type - should not debounce",
			action:         action.Step,
			eventType:      event.Hold,
			timeBetween:    0,
			expectDebounce: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewHandlerWithDelay(50 * time.Millisecond)

			assert.True(t, handler.ProcessEvent(tt.action, tt.eventType), "First event should always pass")

			time.Sleep(tt.timeBetween)

			result := handler.ProcessEvent(tt.action, tt.eventType)
			if tt.expectDebounce {
				assert.False(t, result, "Second event should be debounced")
			} else {
				assert.True(t, result, "Second event should not be debounced")
			}
		})
	}
}

func TestHandler_MultipleActions(t *testing.T) {
	handler := NewHandler()

	assert.True(t, handler.ProcessEvent(action.ToggleRun, event.Press), "First run toggle should pass")
	assert.True(t, handler.ProcessEvent(action.Step, event.Press), "First step should pass")

	// Different actions don't interfere, but each is debounced on its own
	assert.False(t, handler.ProcessEvent(action.ToggleRun, event.Press))
	assert.False(t, handler.ProcessEvent(action.Step, event.Press))

	// Press and Release are tracked separately
	assert.True(t, handler.ProcessEvent(action.Step, event.Release))
}

func TestDefaultKeyMap(t *testing.T) {
	tests := []struct {
		key      string
		expected action.Action
	}{
		{"r", action.ToggleRun},
		{"s", action.Step},
		{"t", action.SpeedUp},
		{"T", action.SpeedDown},
		{"Escape", action.Exit},
		{"PageDown", action.PageDown},
		{"F3", action.ToggleMemoryPanel},
	}

	for _, tt := range tests {
		act, ok := GetDefaultMapping(tt.key)
		assert.True(t, ok, "key %q should be mapped", tt.key)
		assert.Equal(t, tt.expected, act, "key %q", tt.key)
	}

	_, ok := GetDefaultMapping("F12")
	assert.False(t, ok)
}

func TestActionInfo(t *testing.T) {
	assert.Equal(t, action.CategoryNavigation, action.GetInfo(action.PageUp).Category)
	assert.Equal(t, action.CategoryControl, action.GetInfo(action.Exit).Category)
	assert.Equal(t, "Step", action.Step.String())
	assert.Equal(t, "Unknown", action.Action(999).String())
}
