package engine

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/outrun/config"
	"github.com/lixenwraith/outrun/network"
	"github.com/lixenwraith/outrun/parameter"
	"github.com/lixenwraith/outrun/sprite"
	"github.com/lixenwraith/outrun/track"
)

const step = parameter.SimulationStep

// newTestWorld builds a world on a custom road with default settings
func newTestWorld(t *testing.T, build func(b *track.Builder)) *World {
	t.Helper()
	w, err := NewWorld(config.Default(),
		WithRand(rand.New(rand.NewPCG(1, 2))),
		WithTrack(func(cfg config.Config, _ *rand.Rand) *track.Track {
			b := track.NewBuilder(cfg.SegmentLength, cfg.RumbleLength)
			build(b)
			return b.Track()
		}))
	require.NoError(t, err)
	return w
}

func straightWorld(t *testing.T) *World {
	return newTestWorld(t, func(b *track.Builder) { b.AddStraight(track.LengthMedium) })
}

func run(w *World, steps int) Events {
	var ev Events
	for i := 0; i < steps; i++ {
		ev |= w.Update(step)
	}
	return ev
}

// requireMembership checks every tracked car sits in exactly the segment its z maps to
func requireMembership(t *testing.T, w *World) {
	t.Helper()
	total := 0
	for i, s := range w.Track.Segments {
		for _, id := range s.Cars {
			v, ok := w.Vehicle(id)
			require.True(t, ok, "segment %d lists untracked car %d", i, id)
			require.Equal(t, i, w.Track.SegmentIndex(v.Z), "car %d in wrong segment", id)
			total++
		}
	}
	require.Equal(t, w.VehicleCount(), total)
}

func TestNewWorldDefaultCourse(t *testing.T) {
	w, err := NewWorld(config.Default(), WithRand(rand.New(rand.NewPCG(3, 3))))
	require.NoError(t, err)
	assert.Equal(t, 6630, w.Track.Len())
	assert.Zero(t, w.Player.Position)
	assert.Same(t, &w.Track.Segments[0], w.PlayerSegment())
}

func TestAccelerateClampsAtMaxSpeed(t *testing.T) {
	w := straightWorld(t)
	w.Player.Controls.Accelerate = true

	run(w, 300)
	assert.InDelta(t, w.Config.MaxSpeed, w.Player.Speed, 1e-6)

	run(w, 60)
	assert.Equal(t, w.Config.MaxSpeed, w.Player.Speed)
	assert.Zero(t, w.Player.X, "no drift on a straight")
}

func TestCoastAndBrake(t *testing.T) {
	w := straightWorld(t)
	w.Player.Speed = w.Config.MaxSpeed

	run(w, 60)
	assert.InDelta(t, w.Config.MaxSpeed*4/5, w.Player.Speed, 1e-6)

	w.Player.Controls.Brake = true
	run(w, 120)
	assert.Zero(t, w.Player.Speed, "speed never goes negative")
}

func TestSteeringClampsOffset(t *testing.T) {
	w := straightWorld(t)
	w.Player.Speed = w.Config.MaxSpeed
	w.Player.Controls.Accelerate = true
	w.Player.Controls.Left = true

	run(w, 30)
	assert.InDelta(t, -1, w.Player.X, 1e-9, "full speed crosses a half width in half a second")

	run(w, 1500)
	assert.Equal(t, -parameter.PlayerOffsetLimit, w.Player.X)
	assert.LessOrEqual(t, w.Player.Speed, w.Config.OffRoadLimit+w.Config.Accel*step+1e-6)
}

func TestCentrifugalPush(t *testing.T) {
	w := newTestWorld(t, func(b *track.Builder) { b.AddCurve(track.LengthMedium, track.CurveMedium, 0) })
	w.Player.Position = 60 * w.Config.SegmentLength
	w.Player.Speed = w.Config.MaxSpeed
	w.Player.Controls.Accelerate = true

	w.Update(step)
	assert.InDelta(t, -step*2*track.CurveMedium*parameter.CentrifugalForce, w.Player.X, 1e-9)
}

func TestParallax(t *testing.T) {
	w := newTestWorld(t, func(b *track.Builder) { b.AddCurve(track.LengthMedium, track.CurveHard, 0) })
	w.Player.Controls.Accelerate = true
	w.Player.Controls.Right = true

	for i := 0; i < 600; i++ {
		w.Update(step)
		for _, v := range []float64{w.Parallax.Sky, w.Parallax.Hill, w.Parallax.Tree} {
			require.GreaterOrEqual(t, v, 0.0)
			require.Less(t, v, 1.0)
		}
	}
	assert.NotZero(t, w.Parallax.Tree)

	s := straightWorld(t)
	s.Player.Controls.Accelerate = true
	run(s, 120)
	assert.Equal(t, Parallax{}, s.Parallax)
}

func TestStaticCollisionOffRoad(t *testing.T) {
	w := straightWorld(t)
	w.Player.Position = 10 * w.Config.SegmentLength
	w.Player.Speed = w.Config.MaxSpeed
	seg := w.PlayerSegment()
	require.Equal(t, 10, seg.Index)
	seg.Sprites = append(seg.Sprites, track.PlacedSprite{Sprite: sprite.Column, Offset: 1.1})

	w.Player.X = 1.4
	ev := w.Update(step)

	require.True(t, ev.Has(EventHitObject))
	assert.InDelta(t, w.Config.MaxSpeed/5, w.Player.Speed, 1e-9)
	assert.InDelta(t, seg.P1.World.Z-w.Config.PlayerZ, w.Player.Position, 1e-9)
}

func TestStaticCollisionIgnoredOnRoad(t *testing.T) {
	w := straightWorld(t)
	w.Player.Position = 10 * w.Config.SegmentLength
	w.Player.Speed = w.Config.MaxSpeed
	seg := w.PlayerSegment()
	seg.Sprites = append(seg.Sprites, track.PlacedSprite{Sprite: sprite.Billboard01, Offset: -0.9})

	w.Player.X = -0.9
	ev := w.Update(step)
	assert.False(t, ev.Has(EventHitObject))
}

func TestCarCollision(t *testing.T) {
	w := straightWorld(t)
	w.Player.Position = 10 * w.Config.SegmentLength
	w.Player.Speed = w.Config.MaxSpeed
	carZ := w.PlayerZ() + 10
	require.NoError(t, w.ApplyRoster(network.Roster{Cars: []network.CarState{{ID: 4, Offset: 0.1, Z: carZ}}}))

	ev := w.Update(step)

	require.True(t, ev.Has(EventHitCar))
	assert.Zero(t, w.Player.Speed, "a stationary car stops the player")
	assert.InDelta(t, carZ-w.Config.PlayerZ, w.Player.Position, 1e-9)
}

func TestCarCollisionPicksNearestAhead(t *testing.T) {
	for trial := 0; trial < 50; trial++ {
		w := straightWorld(t)
		segLen := w.Config.SegmentLength
		base := 10 * segLen
		w.Player.Position = base + 20 - w.Config.PlayerZ
		w.Player.Speed = 1000

		// Both cars start together, then cross into the player's segment in one roster
		require.NoError(t, w.ApplyRoster(roster(
			network.CarState{ID: 2, Z: 10},
			network.CarState{ID: 1, Z: 20},
		)))
		require.NoError(t, w.ApplyRoster(roster(
			network.CarState{ID: 2, Z: base + 180},
			network.CarState{ID: 1, Z: base + 60},
		)))
		require.Equal(t, []int{1, 2}, w.Track.FindSegment(base).Cars)

		ev := w.Update(step)

		require.True(t, ev.Has(EventHitCar))
		require.InDelta(t, base+60-w.Config.PlayerZ, w.Player.Position, 1e-9, "trial %d", trial)
	}
}

func TestCarMembershipOrderIsStable(t *testing.T) {
	w := straightWorld(t)
	segLen := w.Config.SegmentLength
	require.NoError(t, w.ApplyRoster(roster(
		network.CarState{ID: 3, Z: 0},
		network.CarState{ID: 1, Z: 10},
		network.CarState{ID: 2, Z: 20},
	)))
	for id := 1; id <= 3; id++ {
		v, ok := w.Vehicle(id)
		require.True(t, ok)
		v.Speed = segLen / step
	}

	w.Update(step)

	assert.Equal(t, []int{1, 2, 3}, w.Track.FindSegment(segLen+10).Cars)
	requireMembership(t, w)
}

func TestCarCollisionNeedsClosingSpeed(t *testing.T) {
	w := straightWorld(t)
	w.Player.Position = 10 * w.Config.SegmentLength
	require.NoError(t, w.ApplyRoster(network.Roster{Cars: []network.CarState{{ID: 4, Z: w.PlayerZ() + 10}}}))

	ev := w.Update(step)
	assert.False(t, ev.Has(EventHitCar))
}

func TestLapTimer(t *testing.T) {
	w := straightWorld(t)
	w.Player.Controls.Accelerate = true
	w.Player.Speed = w.Config.MaxSpeed

	// leaving the start line only starts the clock
	ev := w.Update(step)
	assert.False(t, ev.Has(EventLap))
	assert.InDelta(t, step, w.Player.LapTime, 1e-12)

	w.Player.Position = w.Track.Length() - 100
	w.Player.LapTime = 30
	ev = run(w, 2)
	require.True(t, ev.Has(EventLap))
	assert.Equal(t, 30.0, w.Player.LastLap)
	assert.Equal(t, 30.0, w.Player.BestLap)
	assert.Equal(t, 1, w.Player.Laps)

	w.Player.Position = w.Track.Length() - 100
	w.Player.LapTime = 40
	run(w, 2)
	assert.Equal(t, 40.0, w.Player.LastLap)
	assert.Equal(t, 30.0, w.Player.BestLap, "best keeps the faster lap")
	assert.Equal(t, 2, w.Player.Laps)
}

func TestRemoteCarsAdvanceBySpeed(t *testing.T) {
	w := straightWorld(t)
	require.NoError(t, w.ApplyRoster(network.Roster{Cars: []network.CarState{{ID: 1, Z: 5000}}}))
	car, _ := w.Vehicle(1)
	car.Speed = 6000

	run(w, 60)
	assert.InDelta(t, 11000, car.Z, 1e-6)
	requireMembership(t, w)
}

func TestSteer(t *testing.T) {
	p := Player{Controls: Controls{Left: true}}
	assert.Zero(t, p.Steer())
	p.Speed = 1
	assert.Equal(t, -1, p.Steer())
	p.Controls = Controls{Right: true}
	assert.Equal(t, 1, p.Steer())
}

func TestReconfigure(t *testing.T) {
	w := straightWorld(t)
	require.NoError(t, w.ApplyRoster(network.Roster{Cars: []network.CarState{{ID: 1, Z: 5050}, {ID: 2, Z: 29990}}}))
	original := w.Track

	ch, err := w.Reconfigure(config.Overrides{FieldOfView: ptr(100.0)})
	require.NoError(t, err)
	assert.True(t, ch.Camera)
	assert.Same(t, original, w.Track)
	assert.InDelta(t, 2000/math.Tan(50*math.Pi/180), w.Config.PlayerZ, 1e-9)

	ch, err = w.Reconfigure(config.Overrides{SegmentLength: ptr(100.0)})
	require.NoError(t, err)
	require.True(t, ch.RebuildTrack)
	assert.NotSame(t, original, w.Track)
	assert.Equal(t, 15000.0, w.Track.Length())
	requireMembership(t, w)

	before := w.Config
	_, err = w.Reconfigure(config.Overrides{SegmentLength: ptr(-1.0)})
	require.ErrorIs(t, err, config.ErrInvalidConfig)
	assert.Equal(t, before, w.Config)
}

func TestNewWorldRejectsEmptyTrack(t *testing.T) {
	_, err := NewWorld(config.Default(), WithTrack(func(config.Config, *rand.Rand) *track.Track {
		return track.NewBuilder(200, 1).Track()
	}))
	require.ErrorIs(t, err, track.ErrEmptyTrack)
}

func TestReconfigureRejectsEmptyRebuild(t *testing.T) {
	w := newTestWorld(t, func(b *track.Builder) {
		if b.Track().SegmentLength == 200 {
			b.AddStraight(track.LengthShort)
		}
	})
	before, tr := w.Config, w.Track

	_, err := w.Reconfigure(config.Overrides{SegmentLength: ptr(100.0)})
	require.ErrorIs(t, err, track.ErrEmptyTrack)
	assert.Equal(t, before, w.Config)
	assert.Same(t, tr, w.Track)
	assert.NotPanics(t, func() { w.Update(step) })
}

func ptr[T any](v T) *T { return &v }
