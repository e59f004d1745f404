package game

import (
	"context"
	"image"
	"math/rand/v2"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/outrun/asset"
	"github.com/lixenwraith/outrun/config"
	"github.com/lixenwraith/outrun/engine"
	"github.com/lixenwraith/outrun/network"
	"github.com/lixenwraith/outrun/sprite"
	"github.com/lixenwraith/outrun/track"
)

type fakeSurface struct {
	mu       sync.Mutex
	events   chan tcell.Event
	w, h     int
	frames   int
	lastSize image.Point
	status   string
}

func newFakeSurface(w, h int) *fakeSurface {
	return &fakeSurface{events: make(chan tcell.Event, 16), w: w, h: h}
}

func (f *fakeSurface) Events() <-chan tcell.Event { return f.events }

func (f *fakeSurface) Present(frame image.Image, status string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.frames++
	f.lastSize = frame.Bounds().Size()
	f.status = status
}

func (f *fakeSurface) PixelSize() (int, int) { return f.w, f.h }

func (f *fakeSurface) presented() (int, image.Point, string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.frames, f.lastSize, f.status
}

type fakeClient struct {
	mu      sync.Mutex
	sent    []network.Snapshot
	rosters chan network.Roster
	done    chan struct{}
}

func newFakeClient() *fakeClient {
	return &fakeClient{rosters: make(chan network.Roster, 1), done: make(chan struct{})}
}

func (c *fakeClient) Send(s network.Snapshot) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.sent = append(c.sent, s)
	return nil
}
func (c *fakeClient) Rosters() <-chan network.Roster { return c.rosters }
func (c *fakeClient) ID() (int, bool)                { return 3, true }
func (c *fakeClient) Done() <-chan struct{}          { return c.done }
func (c *fakeClient) Close() error                   { return nil }

func (c *fakeClient) sentCount() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.sent)
}

type fakeSound struct {
	speed  float64
	events engine.Events
	muted  bool
}

func (s *fakeSound) SetSpeed(p float64)        { s.speed = p }
func (s *fakeSound) OnEvents(ev engine.Events) { s.events |= ev }
func (s *fakeSound) ToggleMuted() bool         { s.muted = !s.muted; return s.muted }
func (s *fakeSound) Muted() bool               { return s.muted }

func testWorld(t *testing.T) *engine.World {
	t.Helper()
	w, err := engine.NewWorld(config.Default(),
		engine.WithRand(rand.New(rand.NewPCG(7, 7))),
		engine.WithTrack(func(cfg config.Config, _ *rand.Rand) *track.Track {
			b := track.NewBuilder(cfg.SegmentLength, cfg.RumbleLength)
			b.AddStraight(track.LengthLong)
			b.AddCurve(track.LengthMedium, track.CurveMedium, track.HillLow)
			return b.Track()
		}))
	require.NoError(t, err)
	return w
}

func blankSheets() asset.Sheets {
	sw, sh := sprite.SheetSize()
	bw, bh := sprite.BackgroundSize()
	return asset.Sheets{
		Sprites:    image.NewNRGBA(image.Rect(0, 0, sw, sh)),
		Background: image.NewNRGBA(image.Rect(0, 0, bw, bh)),
	}
}

func newTestSession(t *testing.T, opts ...SessionOption) (*Session, *fakeSurface, *engine.MockTimeProvider) {
	t.Helper()
	surface := newFakeSurface(64, 48)
	clock := engine.NewMockTimeProvider(time.Unix(1000, 0))
	opts = append([]SessionOption{WithClock(clock)}, opts...)
	return NewSession(testWorld(t), blankSheets(), surface, opts...), surface, clock
}

func TestFrameFitsSurfaceAndPresents(t *testing.T) {
	s, surface, clock := newTestSession(t)

	clock.Advance(50 * time.Millisecond)
	require.NoError(t, s.Frame())

	frames, size, status := surface.presented()
	assert.Equal(t, 1, frames)
	assert.Equal(t, image.Pt(64, 48), size)
	assert.Equal(t, 64, s.World.Config.Width)
	assert.Equal(t, 48, s.World.Config.Height)
	assert.Contains(t, status, "km/h")
}

func TestHeldAcceleratorDrives(t *testing.T) {
	snd := &fakeSound{}
	s, _, clock := newTestSession(t, WithSound(snd))

	s.input.Handle(tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), clock.Now())
	clock.Advance(200 * time.Millisecond)
	require.NoError(t, s.Frame())

	assert.Greater(t, s.World.Player.Speed, 0.0)
	assert.Greater(t, snd.speed, 0.0)

	// Without repeats the key times out and the car coasts
	clock.Advance(time.Second)
	speed := s.World.Player.Speed
	require.NoError(t, s.Frame())
	assert.Less(t, s.World.Player.Speed, speed)
}

func TestFrameSyncsWithRelay(t *testing.T) {
	client := newFakeClient()
	s, surface, clock := newTestSession(t, WithClient(client))

	client.rosters <- network.Roster{Cars: []network.CarState{{ID: 9, Offset: 0.5, Z: 4000}}}
	clock.Advance(90 * time.Millisecond)
	require.NoError(t, s.Frame())

	assert.Equal(t, 5, client.sentCount(), "one snapshot per step")
	v, ok := s.World.Vehicle(9)
	require.True(t, ok)
	assert.Equal(t, 4000.0, v.Z)

	_, _, status := surface.presented()
	assert.Contains(t, status, "CARS 1")
	assert.Contains(t, status, "ID 3")
}

func TestFrameMismatchIsFatal(t *testing.T) {
	client := newFakeClient()
	s, _, clock := newTestSession(t, WithClient(client))

	client.rosters <- network.Roster{Cars: []network.CarState{{ID: 1}, {ID: 1}}}
	clock.Advance(50 * time.Millisecond)
	err := s.Frame()
	assert.ErrorIs(t, err, engine.ErrRosterMismatch)
}

func TestRunQuitsOnKey(t *testing.T) {
	s, surface, _ := newTestSession(t)
	s.FrameInterval = time.Millisecond

	surface.events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	done := make(chan error, 1)
	go func() { done <- s.Run(context.Background()) }()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("Run did not quit")
	}
}

func TestRunGoesOfflineWhenLinkDrops(t *testing.T) {
	client := newFakeClient()
	s, _, clock := newTestSession(t, WithClient(client))
	clock.SetTick(time.Millisecond)
	s.FrameInterval = time.Millisecond

	client.rosters <- network.Roster{Cars: []network.CarState{{ID: 4, Z: 100}}}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- s.Run(ctx) }()

	require.Eventually(t, func() bool { return client.sentCount() > 0 }, 2*time.Second, time.Millisecond)
	close(client.done)
	time.Sleep(50 * time.Millisecond)
	cancel()

	require.NoError(t, <-done)
	assert.Zero(t, s.World.VehicleCount())
	assert.False(t, s.Status().Online)
}

func TestMuteToggle(t *testing.T) {
	snd := &fakeSound{}
	s, surface, _ := newTestSession(t, WithSound(snd))
	s.FrameInterval = time.Hour

	surface.events <- tcell.NewEventKey(tcell.KeyRune, 'm', tcell.ModNone)
	surface.events <- tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone)
	require.NoError(t, s.Run(context.Background()))
	assert.True(t, snd.muted)
}

func TestRenderFrames(t *testing.T) {
	w := testWorld(t)
	_, err := w.Reconfigure(config.Overrides{Resolution: ptr("low")})
	require.NoError(t, err)

	dir := t.TempDir()
	paths, err := RenderFrames(w, blankSheets(), 3, dir, nil)
	require.NoError(t, err)
	require.Len(t, paths, 3)
	for _, p := range paths {
		info, err := os.Stat(p)
		require.NoError(t, err)
		assert.Positive(t, info.Size())
	}
	assert.Greater(t, w.Player.Speed, 0.0)
}

func ptr[T any](v T) *T { return &v }

func TestFormatLapTime(t *testing.T) {
	assert.Equal(t, "-", FormatLapTime(0))
	assert.Equal(t, "0:05.2", FormatLapTime(5.25))
	assert.Equal(t, "1:02.4", FormatLapTime(62.4))
}

func TestStatusString(t *testing.T) {
	st := Status{Speed: 120, LapTime: 3, Online: true, Cars: 2, ID: 7, Muted: true}
	s := st.String()
	assert.Contains(t, s, "120 km/h")
	assert.Contains(t, s, "CARS 2")
	assert.Contains(t, s, "ID 7")
	assert.Contains(t, s, "MUTED")
	assert.NotContains(t, Status{}.String(), "CARS")
}
