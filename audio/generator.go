package audio

import (
	"math"
	"sync/atomic"

	"github.com/gopxl/beep"
)

// Waveform types
const (
	waveSine = iota
	waveSquare
	waveSaw
)

// wave evaluates a unit waveform at phase in [0, 1)
func wave(kind int, phase float64) float64 {
	switch kind {
	case waveSquare:
		if phase < 0.5 {
			return 1
		}
		return -1
	case waveSaw:
		return 2 * (phase - 0.5)
	default:
		return math.Sin(2 * math.Pi * phase)
	}
}

// EngineGenerator is an endless engine hum whose pitch follows the car speed
// Phase accumulates across pitch changes so retuning never clicks
type EngineGenerator struct {
	sr     beep.SampleRate
	phase  float64
	freq   float64
	target atomic.Uint64 // float64 bits, written by the game loop
	volume float64
}

// NewEngineGenerator creates a hum idling at idleHz
func NewEngineGenerator(sr beep.SampleRate, idleHz, volume float64) *EngineGenerator {
	g := &EngineGenerator{sr: sr, freq: idleHz, volume: volume}
	g.target.Store(math.Float64bits(idleHz))
	return g
}

// SetFrequency retunes the hum; safe to call while streaming
func (g *EngineGenerator) SetFrequency(hz float64) {
	g.target.Store(math.Float64bits(hz))
}

// Frequency returns the requested pitch
func (g *EngineGenerator) Frequency() float64 {
	return math.Float64frombits(g.target.Load())
}

func (g *EngineGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	target := g.Frequency()
	for i := range samples {
		// Glide toward the target over a few milliseconds
		g.freq += (target - g.freq) * 0.002

		// Saw body with a square sub-octave for growl
		s := 0.7*wave(waveSaw, g.phase) + 0.3*wave(waveSquare, math.Mod(g.phase*0.5, 1))
		sample := g.volume * s

		samples[i][0] = sample
		samples[i][1] = sample

		g.phase += g.freq / float64(g.sr)
		if g.phase >= 1 {
			g.phase -= math.Floor(g.phase)
		}
	}
	return len(samples), true
}

func (g *EngineGenerator) Err() error {
	return nil
}

// BuzzGenerator is a harsh low buzz with a short fade-in, used for crashes
type BuzzGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewBuzzGenerator creates a buzz sound generator
func NewBuzzGenerator(sr beep.SampleRate, freq float64) *BuzzGenerator {
	return &BuzzGenerator{sr: sr, freq: freq}
}

func (g *BuzzGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)

		sample := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(2*math.Pi*g.freq*2*t) +
			0.075*math.Sin(2*math.Pi*g.freq*3*t)

		attack := math.Min(t/0.02, 1)
		decay := math.Exp(-t * 6)
		sample *= attack * decay * 0.6

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *BuzzGenerator) Err() error {
	return nil
}

// ChimeGenerator is a bell-like two-tone ping for completed laps
type ChimeGenerator struct {
	sr   beep.SampleRate
	freq float64
	pos  int
}

// NewChimeGenerator creates a chime at freq with a fifth above
func NewChimeGenerator(sr beep.SampleRate, freq float64) *ChimeGenerator {
	return &ChimeGenerator{sr: sr, freq: freq}
}

func (g *ChimeGenerator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		t := float64(g.pos) / float64(g.sr)
		env := math.Exp(-t * 7)

		sample := env * (0.2*math.Sin(2*math.Pi*g.freq*t) + 0.1*math.Sin(2*math.Pi*g.freq*1.5*t))

		samples[i][0] = sample
		samples[i][1] = sample
		g.pos++
	}
	return len(samples), true
}

func (g *ChimeGenerator) Err() error {
	return nil
}
