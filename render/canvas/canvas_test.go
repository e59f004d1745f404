package canvas

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/outrun/render"
)

func rgbAt(img image.Image, x, y int) [3]uint8 {
	r, g, b, _ := img.At(x, y).RGBA()
	return [3]uint8{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
}

func TestClearAndFill(t *testing.T) {
	c := New(64, 48)
	defer c.Close()

	c.Clear(color.NRGBA{R: 10, G: 20, B: 30, A: 255})
	c.FillRect(render.Rect{X: 0, Y: 24, W: 64, H: 24}, color.NRGBA{G: 200, A: 255})
	c.FillPolygon([]render.Point{{X: 20, Y: 40}, {X: 44, Y: 40}, {X: 36, Y: 30}, {X: 28, Y: 30}}, color.NRGBA{R: 200, A: 255})

	img := c.Image()
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Equal(t, [3]uint8{10, 20, 30}, rgbAt(img, 5, 5))
	assert.Equal(t, [3]uint8{0, 200, 0}, rgbAt(img, 5, 45))
	assert.Equal(t, [3]uint8{200, 0, 0}, rgbAt(img, 32, 36))
	assert.NoError(t, c.Err())
}

func TestDegenerateCallsAreSkipped(t *testing.T) {
	c := New(16, 16)
	defer c.Close()
	c.Clear(color.NRGBA{A: 255})

	c.FillRect(render.Rect{W: 16, H: -4}, color.NRGBA{R: 255, A: 255})
	c.FillPolygon([]render.Point{{X: 0, Y: 0}, {X: 4, Y: 4}}, color.NRGBA{R: 255, A: 255})
	c.DrawImageRegion(nil, render.Rect{W: 1, H: 1}, render.Rect{W: 4, H: 4})

	assert.Equal(t, [3]uint8{0, 0, 0}, rgbAt(c.Image(), 2, 2))
}

func TestDrawImageRegion(t *testing.T) {
	sheet := image.NewNRGBA(image.Rect(0, 0, 8, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 8; x++ {
			if x >= 4 {
				sheet.Set(x, y, color.NRGBA{B: 255, A: 255})
			} else {
				sheet.Set(x, y, color.NRGBA{R: 255, A: 255})
			}
		}
	}

	c := New(32, 32)
	defer c.Close()
	c.Clear(color.NRGBA{A: 255})
	c.DrawImageRegion(sheet, render.Rect{X: 4, Y: 0, W: 4, H: 8}, render.Rect{X: 8, Y: 8, W: 16, H: 16})

	img := c.Image()
	assert.Equal(t, [3]uint8{0, 0, 255}, rgbAt(img, 16, 16))
	assert.Equal(t, [3]uint8{0, 0, 0}, rgbAt(img, 2, 2))
}

func TestEncodePNG(t *testing.T) {
	c := New(8, 8)
	defer c.Close()
	c.Clear(render.SkyColor)

	var buf bytes.Buffer
	require.NoError(t, c.EncodePNG(&buf))
	img, err := png.Decode(&buf)
	require.NoError(t, err)
	assert.Equal(t, 8, img.Bounds().Dx())
}
