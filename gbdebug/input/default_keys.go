package input

import "github.com/valerio/gbdebug/gbdebug/input/action"

// DefaultKeyMap provides default key mappings that work across backends.
// Keys are backend-neutral names; backends translate their own key codes
// into these names before the lookup.
var DefaultKeyMap = map[string]action.Action{
	// Execution control, as labelled on the control panel
	"r":      action.ToggleRun,
	"Space":  action.ToggleRun,
	"s":      action.Step,
	"n":      action.Step, // Alternative key for step
	"t":      action.SpeedUp,
	"T":      action.SpeedDown, // Shift+T
	"Escape": action.Exit,

	// Memory viewer navigation
	"Up":       action.ScrollUp,
	"Down":     action.ScrollDown,
	"PageUp":   action.PageUp,
	"PageDown": action.PageDown,
	"Home":     action.ScrollTop,
	"End":      action.ScrollBottom,

	// Panel visibility
	"F1": action.ToggleCPUPanel,
	"F2": action.ToggleFlagsPanel,
	"F3": action.ToggleMemoryPanel,
	"F4": action.ToggleControlPanel,
}

// GetDefaultMapping returns the default action for a key, if one exists
func GetDefaultMapping(key string) (action.Action, bool) {
	act, ok := DefaultKeyMap[key]
	return act, ok
}
