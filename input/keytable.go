package input

import (
	"maps"

	"github.com/gdamore/tcell/v2"
)

// KeyTable maps keys to actions
type KeyTable struct {
	// Non-rune keys (arrows, Esc, Ctrl+*)
	SpecialKeys map[tcell.Key]Action

	// Printable keys, case-sensitive
	Runes map[rune]Action
}

// DefaultKeyTable binds arrows and WASD plus quit and mute
func DefaultKeyTable() *KeyTable {
	return &KeyTable{
		SpecialKeys: map[tcell.Key]Action{
			tcell.KeyLeft:   ActionSteerLeft,
			tcell.KeyRight:  ActionSteerRight,
			tcell.KeyUp:     ActionAccelerate,
			tcell.KeyDown:   ActionBrake,
			tcell.KeyEscape: ActionQuit,
			tcell.KeyCtrlC:  ActionQuit,
		},
		Runes: map[rune]Action{
			'a': ActionSteerLeft, 'A': ActionSteerLeft,
			'd': ActionSteerRight, 'D': ActionSteerRight,
			'w': ActionAccelerate, 'W': ActionAccelerate,
			's': ActionBrake, 'S': ActionBrake,
			'q': ActionQuit,
			'm': ActionToggleMute,
		},
	}
}

// Clone returns a deep copy
func (kt *KeyTable) Clone() *KeyTable {
	return &KeyTable{
		SpecialKeys: maps.Clone(kt.SpecialKeys),
		Runes:       maps.Clone(kt.Runes),
	}
}

// Lookup resolves a key event
func (kt *KeyTable) Lookup(ev *tcell.EventKey) Action {
	if ev.Key() == tcell.KeyRune {
		r := ev.Rune()
		// Some terminals report Ctrl+letter as a rune with the Ctrl modifier
		if ev.Modifiers()&tcell.ModCtrl != 0 && r >= 'a' && r <= 'z' {
			return kt.SpecialKeys[tcell.KeyCtrlA+tcell.Key(r-'a')]
		}
		return kt.Runes[r]
	}
	return kt.SpecialKeys[ev.Key()]
}
