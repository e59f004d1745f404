package input

// actionNames maps keymap action strings to actions
// "none" unbinds a key in an override
var actionNames = map[string]Action{
	"none":        ActionNone,
	"steer_left":  ActionSteerLeft,
	"steer_right": ActionSteerRight,
	"accelerate":  ActionAccelerate,
	"brake":       ActionBrake,
	"quit":        ActionQuit,
	"toggle_mute": ActionToggleMute,
}

// ActionByName resolves a keymap action string
func ActionByName(name string) (Action, bool) {
	a, ok := actionNames[name]
	return a, ok
}

func (a Action) String() string {
	for name, v := range actionNames {
		if v == a {
			return name
		}
	}
	return "unknown"
}
