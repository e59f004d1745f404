package terminal

import (
	"image"
	"image/color"
	"testing"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSim(t *testing.T, cols, rows int) (*Screen, tcell.SimulationScreen) {
	t.Helper()
	sim := tcell.NewSimulationScreen("UTF-8")
	s, err := New(sim)
	require.NoError(t, err)
	sim.SetSize(cols, rows)
	t.Cleanup(s.Fini)
	return s, sim
}

func TestPixelSize(t *testing.T) {
	s, _ := newSim(t, 40, 13)
	w, h := s.PixelSize()
	assert.Equal(t, 40, w)
	assert.Equal(t, 24, h)
}

func TestPresentHalfBlocks(t *testing.T) {
	s, sim := newSim(t, 4, 3)

	// Top half red, bottom half blue at the presented resolution
	frame := image.NewRGBA(image.Rect(0, 0, 4, 4))
	for y := 0; y < 4; y++ {
		for x := 0; x < 4; x++ {
			c := color.RGBA{R: 255, A: 255}
			if y%2 == 1 {
				c = color.RGBA{B: 255, A: 255}
			}
			frame.SetRGBA(x, y, c)
		}
	}
	s.Present(frame, "hi")

	mainc, _, style, _ := sim.GetContent(1, 0)
	assert.Equal(t, upperHalf, mainc)
	fg, bg, _ := style.Decompose()
	r, _, _ := fg.RGB()
	_, _, b := bg.RGB()
	assert.EqualValues(t, 255, r)
	assert.EqualValues(t, 255, b)

	// Status row
	mainc, _, _, _ = sim.GetContent(0, 2)
	assert.Equal(t, 'h', mainc)
	mainc, _, _, _ = sim.GetContent(1, 2)
	assert.Equal(t, 'i', mainc)
	mainc, _, _, _ = sim.GetContent(3, 2)
	assert.Equal(t, ' ', mainc)
}

func TestPresentScalesLargeFrames(t *testing.T) {
	s, sim := newSim(t, 8, 5)

	frame := image.NewRGBA(image.Rect(0, 0, 1024, 768))
	for y := 0; y < 768; y++ {
		for x := 0; x < 1024; x++ {
			frame.SetRGBA(x, y, color.RGBA{G: 200, A: 255})
		}
	}
	s.Present(frame, "")

	_, _, style, _ := sim.GetContent(7, 3)
	fg, bg, _ := style.Decompose()
	_, g, _ := fg.RGB()
	assert.EqualValues(t, 200, g)
	_, g, _ = bg.RGB()
	assert.EqualValues(t, 200, g)
}

func TestEventsForwarded(t *testing.T) {
	s, sim := newSim(t, 10, 4)
	s.Start()

	sim.InjectKey(tcell.KeyRune, 'w', tcell.ModNone)

	deadline := time.After(2 * time.Second)
	for {
		select {
		case ev := <-s.Events():
			// Resize notifications from setup may arrive first
			if key, ok := ev.(*tcell.EventKey); ok {
				assert.Equal(t, 'w', key.Rune())
				return
			}
		case <-deadline:
			t.Fatal("no key event forwarded")
		}
	}
}

func TestFiniIdempotent(t *testing.T) {
	s, _ := newSim(t, 10, 4)
	s.Start()
	s.Fini()
	s.Fini()
}
