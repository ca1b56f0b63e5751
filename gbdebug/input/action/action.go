package action

// Action represents input actions understood by the debugger
type Action int

const (
	// Execution control
	ToggleRun Action = iota
	Step
	SpeedUp
	SpeedDown
	Exit

	// Memory viewer navigation
	ScrollUp
	ScrollDown
	PageUp
	PageDown
	ScrollTop
	ScrollBottom

	// Panel visibility
	ToggleCPUPanel
	ToggleFlagsPanel
	ToggleMemoryPanel
	ToggleControlPanel
)

// Category groups actions by how backends should treat them
type Category int

const (
	CategoryControl    Category = iota // one-shot, debounced
	CategoryNavigation                 // repeatable while held
	CategoryView                       // one-shot, debounced
)

// Info describes an action
type Info struct {
	Category    Category
	Description string
}

var infos = map[Action]Info{
	ToggleRun: {CategoryControl, "Run/Stop"},
	Step:      {CategoryControl, "Step"},
	SpeedUp:   {CategoryControl, "Speed up"},
	SpeedDown: {CategoryControl, "Speed down"},
	Exit:      {CategoryControl, "Exit"},

	ScrollUp:     {CategoryNavigation, "Scroll up"},
	ScrollDown:   {CategoryNavigation, "Scroll down"},
	PageUp:       {CategoryNavigation, "Page up"},
	PageDown:     {CategoryNavigation, "Page down"},
	ScrollTop:    {CategoryNavigation, "Scroll to top"},
	ScrollBottom: {CategoryNavigation, "Scroll to bottom"},

	ToggleCPUPanel:     {CategoryView, "Toggle CPU State panel"},
	ToggleFlagsPanel:   {CategoryView, "Toggle CPU Flags panel"},
	ToggleMemoryPanel:  {CategoryView, "Toggle Memory Viewer panel"},
	ToggleControlPanel: {CategoryView, "Toggle Controls panel"},
}

// GetInfo returns the category and description of an action
func GetInfo(act Action) Info {
	if info, ok := infos[act]; ok {
		return info
	}
	return Info{Category: CategoryControl, Description: "Unknown"}
}

func (a Action) String() string {
	return GetInfo(a).Description
}
