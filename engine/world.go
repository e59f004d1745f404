// Package engine runs the fixed-timestep driving simulation and folds remote rosters into it
package engine

import (
	"log/slog"
	"math/rand/v2"
	"slices"

	"github.com/lixenwraith/outrun/config"
	"github.com/lixenwraith/outrun/core"
	"github.com/lixenwraith/outrun/sprite"
	"github.com/lixenwraith/outrun/track"
	"github.com/lixenwraith/outrun/vmath"
)

// Vehicle is a remote car; its segment is always derived from Z
type Vehicle struct {
	ID      int
	Offset  float64
	Z       float64
	Speed   float64
	Percent float64
	Sprite  sprite.ID
}

// Controls is the held state of the four driving intents
type Controls struct {
	Left, Right, Accelerate, Brake bool
}

// Player is the local car and the camera that chases it
type Player struct {
	// Position is the camera z; the car sits PlayerZ ahead of it
	Position float64
	X        float64
	Speed    float64
	Controls Controls

	LapTime float64
	LastLap float64
	BestLap float64
	Laps    int
}

// Steer returns -1, 0 or 1 for the sprite frame, straight while stationary
func (p *Player) Steer() int {
	if p.Speed == 0 {
		return 0
	}
	switch {
	case p.Controls.Left:
		return -1
	case p.Controls.Right:
		return 1
	}
	return 0
}

// Parallax holds the background layer scroll offsets in [0, 1)
type Parallax struct {
	Sky, Hill, Tree float64
}

// TrackFunc builds a track for a config
type TrackFunc func(cfg config.Config, rng *rand.Rand) *track.Track

// DefaultTrack builds the stock course
func DefaultTrack(cfg config.Config, rng *rand.Rand) *track.Track {
	return track.DefaultCourse(cfg.SegmentLength, cfg.RumbleLength, cfg.PlayerZ, rng)
}

// World owns all simulation state; it is not safe for concurrent use
type World struct {
	Config   config.Config
	Track    *track.Track
	Player   Player
	Parallax Parallax

	cars      map[int]*Vehicle
	rng       *rand.Rand
	log       *slog.Logger
	buildFunc TrackFunc
}

// Option customizes a World at construction
type Option func(*World)

// WithRand seeds scenery and any other randomness
func WithRand(rng *rand.Rand) Option {
	return func(w *World) { w.rng = rng }
}

// WithLogger routes world diagnostics
func WithLogger(l *slog.Logger) Option {
	return func(w *World) {
		if l != nil {
			w.log = l
		}
	}
}

// WithTrack replaces the stock course builder
func WithTrack(fn TrackFunc) Option {
	return func(w *World) {
		if fn != nil {
			w.buildFunc = fn
		}
	}
}

// NewWorld builds the track for cfg and places the player at the start
// A builder that produces no segments yields track.ErrEmptyTrack
func NewWorld(cfg config.Config, opts ...Option) (*World, error) {
	w := &World{
		Config:    cfg,
		cars:      make(map[int]*Vehicle),
		log:       core.NopLogger(),
		buildFunc: DefaultTrack,
	}
	for _, opt := range opts {
		opt(w)
	}
	if w.rng == nil {
		w.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	tr, err := w.build(w.Config)
	if err != nil {
		return nil, err
	}
	w.Track = tr
	w.log.Debug("track built", "segments", w.Track.Len(), "length", w.Track.Length())
	return w, nil
}

func (w *World) build(cfg config.Config) (*track.Track, error) {
	tr := w.buildFunc(cfg, w.rng)
	if tr == nil || tr.Len() == 0 {
		return nil, track.ErrEmptyTrack
	}
	return tr, nil
}

// Rand exposes the world random source to the render pipeline
func (w *World) Rand() *rand.Rand {
	return w.rng
}

// PlayerZ is the absolute z of the player car
func (w *World) PlayerZ() float64 {
	return w.Player.Position + w.Config.PlayerZ
}

// PlayerSegment is the segment under the player car
func (w *World) PlayerSegment() *track.Segment {
	return w.Track.FindSegment(w.PlayerZ())
}

// SpeedPercent is speed as a fraction of max speed
func (w *World) SpeedPercent() float64 {
	return w.Player.Speed / w.Config.MaxSpeed
}

// Vehicle looks up a remote car
func (w *World) Vehicle(id int) (*Vehicle, bool) {
	v, ok := w.cars[id]
	return v, ok
}

// VehicleCount returns the number of tracked remote cars
func (w *World) VehicleCount() int {
	return len(w.cars)
}

// VehicleIDs returns tracked ids in ascending order
func (w *World) VehicleIDs() []int {
	ids := make([]int, 0, len(w.cars))
	for id := range w.cars {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Reconfigure applies overrides, rebuilding the track when its geometry changed
// On error the world is left untouched
func (w *World) Reconfigure(ov config.Overrides) (config.Changes, error) {
	next, ch, err := config.Apply(w.Config, ov)
	if err != nil {
		return config.Changes{}, err
	}

	var rebuilt *track.Track
	if ch.RebuildTrack {
		if rebuilt, err = w.build(next); err != nil {
			return config.Changes{}, err
		}
	}
	w.Config = next

	if rebuilt != nil {
		w.Track = rebuilt
		w.Player.Position = vmath.Increase(w.Player.Position, 0, w.Track.Length())
		for _, id := range w.VehicleIDs() {
			v := w.cars[id]
			v.Percent = vmath.PercentRemaining(v.Z, w.Track.SegmentLength)
			w.Track.FindSegment(v.Z).AddCar(id)
		}
		w.log.Debug("track rebuilt", "segments", w.Track.Len(), "cars", len(w.cars))
	}
	if ch.Camera {
		w.log.Debug("camera changed", "depth", w.Config.CameraDepth, "playerZ", w.Config.PlayerZ)
	}
	return ch, nil
}
