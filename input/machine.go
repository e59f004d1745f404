package input

import (
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/outrun/engine"
	"github.com/lixenwraith/outrun/parameter"
)

// hold tracks one latched driving action
type hold struct {
	until    time.Time
	repeated bool
}

// Machine turns terminal events into held driving controls and one-shot intents
// Terminals never report key releases: a held action expires when its key stops repeating
type Machine struct {
	keyTable *KeyTable
	holds    [actionCount]hold

	HoldTimeout        time.Duration
	InitialHoldTimeout time.Duration
}

// NewMachine creates a machine with the given bindings, defaults when nil
func NewMachine(kt *KeyTable) *Machine {
	if kt == nil {
		kt = DefaultKeyTable()
	}
	return &Machine{
		keyTable:           kt,
		HoldTimeout:        parameter.KeyHoldTimeout,
		InitialHoldTimeout: parameter.KeyInitialHoldTimeout,
	}
}

// Handle processes one event observed at now
func (m *Machine) Handle(ev tcell.Event, now time.Time) IntentType {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		return m.press(m.keyTable.Lookup(ev), now)
	case *tcell.EventResize:
		return IntentResize
	}
	return IntentNone
}

func (m *Machine) press(a Action, now time.Time) IntentType {
	switch {
	case a.Held():
		h := &m.holds[a]
		// A press arriving while still held is an autorepeat
		if now.Before(h.until) {
			h.repeated = true
			h.until = now.Add(m.HoldTimeout)
		} else {
			h.repeated = false
			h.until = now.Add(m.InitialHoldTimeout)
		}
		m.holds[a.opposite()] = hold{}
		return IntentNone
	case a == ActionQuit:
		return IntentQuit
	case a == ActionToggleMute:
		return IntentToggleMute
	}
	return IntentNone
}

// Held reports whether action a is latched at now
func (m *Machine) Held(a Action, now time.Time) bool {
	if !a.Held() {
		return false
	}
	return now.Before(m.holds[a].until)
}

// Controls returns the latched driving state at now
func (m *Machine) Controls(now time.Time) engine.Controls {
	return engine.Controls{
		Left:       m.Held(ActionSteerLeft, now),
		Right:      m.Held(ActionSteerRight, now),
		Accelerate: m.Held(ActionAccelerate, now),
		Brake:      m.Held(ActionBrake, now),
	}
}

// Release drops every latched action
func (m *Machine) Release() {
	m.holds = [actionCount]hold{}
}
