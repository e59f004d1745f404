package parameter

import "time"

// Terminals report key presses and repeats but never releases
const (
	// KeyHoldTimeout releases an intent when no repeat arrives within the window
	KeyHoldTimeout = 180 * time.Millisecond

	// KeyInitialHoldTimeout covers the autorepeat delay after the first press
	KeyInitialHoldTimeout = 550 * time.Millisecond
)
