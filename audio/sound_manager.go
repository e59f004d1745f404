// Package audio synthesizes the engine hum, crash and lap sounds and plays them through beep
package audio

import (
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"github.com/lixenwraith/outrun/engine"
	"github.com/lixenwraith/outrun/parameter"
)

const (
	sampleRate = beep.SampleRate(48000)
)

// SoundManager owns the speaker mixer and the looping engine hum
// Every method is a no-op until Initialize succeeds, so the game runs without a sound device
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	engine      *EngineGenerator
	engineCtrl  *beep.Ctrl
	initialized bool
	muted       bool
}

// NewSoundManager creates a new sound manager
func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer:  &beep.Mixer{},
		engine: NewEngineGenerator(sampleRate, parameter.EngineIdleHz, parameter.EngineVolume),
	}
}

// Initialize opens the speaker and starts the engine hum
func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(parameter.AudioBufferDuration)); err != nil {
		return err
	}

	sm.engineCtrl = &beep.Ctrl{Streamer: sm.engine, Paused: sm.muted}
	sm.mixer.Add(sm.engineCtrl)
	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything and closes the speaker
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	speaker.Close()
	sm.engineCtrl = nil
	sm.initialized = false
}

// SetSpeed pitches the hum from idle to top speed; percent is clamped to [0, 1]
func (sm *SoundManager) SetSpeed(percent float64) {
	percent = min(max(percent, 0), 1)
	sm.engine.SetFrequency(EngineFrequency(percent))
}

// EngineFrequency maps a speed percentage to the hum pitch
func EngineFrequency(percent float64) float64 {
	return parameter.EngineIdleHz + (parameter.EngineTopHz-parameter.EngineIdleHz)*percent
}

// PlayCrash plays a short buzz
func (sm *SoundManager) PlayCrash() {
	sm.play(beep.Take(sampleRate.N(parameter.CrashSoundDuration), NewBuzzGenerator(sampleRate, parameter.CrashBuzzHz)))
}

// PlayLap plays the lap chime
func (sm *SoundManager) PlayLap() {
	sm.play(beep.Take(sampleRate.N(parameter.LapChimeDuration), NewChimeGenerator(sampleRate, parameter.LapChimeHz)))
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized || sm.muted {
		return
	}
	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// OnEvents plays the sounds for one simulation step's events
func (sm *SoundManager) OnEvents(ev engine.Events) {
	if ev.Has(engine.EventHitObject) || ev.Has(engine.EventHitCar) {
		sm.PlayCrash()
	}
	if ev.Has(engine.EventLap) {
		sm.PlayLap()
	}
}

// SetMuted pauses the hum and suppresses one-shot sounds
func (sm *SoundManager) SetMuted(muted bool) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	sm.muted = muted
	if sm.engineCtrl == nil {
		return
	}
	speaker.Lock()
	sm.engineCtrl.Paused = muted
	speaker.Unlock()
}

// ToggleMuted flips the mute state and returns the new one
func (sm *SoundManager) ToggleMuted() bool {
	sm.mu.Lock()
	muted := !sm.muted
	sm.mu.Unlock()

	sm.SetMuted(muted)
	return muted
}

// Muted reports the mute state
func (sm *SoundManager) Muted() bool {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	return sm.muted
}
