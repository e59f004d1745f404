package input

// Action is what a key binding does
type Action uint8

const (
	ActionNone Action = iota

	// Held driving actions
	ActionSteerLeft
	ActionSteerRight
	ActionAccelerate
	ActionBrake

	// One-shot system actions
	ActionQuit
	ActionToggleMute

	actionCount
)

// Held reports whether the action latches until released or timed out
func (a Action) Held() bool {
	return a >= ActionSteerLeft && a <= ActionBrake
}

// opposite returns the action a press of a cancels
func (a Action) opposite() Action {
	switch a {
	case ActionSteerLeft:
		return ActionSteerRight
	case ActionSteerRight:
		return ActionSteerLeft
	case ActionAccelerate:
		return ActionBrake
	case ActionBrake:
		return ActionAccelerate
	}
	return ActionNone
}

// IntentType discriminates what the host loop has to do after an event
type IntentType uint8

const (
	IntentNone       IntentType = iota
	IntentQuit                  // Esc, q, Ctrl+C
	IntentToggleMute            // m
	IntentResize                // Terminal resized
)
