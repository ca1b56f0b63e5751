package event

// Type represents the type of input event
type Type int

const (
	Press   Type = iota // Key pressed down (debounced)
	Release             // Key released (debounced)
	Hold                // Key repeat while pressed (not debounced)
)
