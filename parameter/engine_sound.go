package parameter

import "time"

// Driving sounds
const (
	// AudioBufferDuration is the speaker buffer; longer is steadier, shorter reacts faster
	AudioBufferDuration = 100 * time.Millisecond

	// EngineIdleHz is the hum pitch at standstill
	EngineIdleHz = 55.0

	// EngineTopHz is the hum pitch at max speed
	EngineTopHz = 220.0

	// EngineVolume is the hum amplitude at max speed
	EngineVolume = 0.12

	CrashSoundDuration = 250 * time.Millisecond
	CrashBuzzHz        = 90.0

	LapChimeDuration = 400 * time.Millisecond
	LapChimeHz       = 880.0
)
