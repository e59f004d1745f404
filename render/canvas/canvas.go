// Package canvas rasterizes render calls in software through gg
package canvas

import (
	"image"
	"image/color"
	"io"

	"github.com/gogpu/gg"

	"github.com/lixenwraith/outrun/render"
)

// Canvas is a render.Renderer backed by a gg software context
type Canvas struct {
	dc     *gg.Context
	images map[image.Image]*gg.ImageBuf
	err    error
}

// New creates a canvas of the logical frame size
func New(width, height int) *Canvas {
	return &Canvas{
		dc:     gg.NewContext(width, height),
		images: make(map[image.Image]*gg.ImageBuf),
	}
}

// Width returns the frame width in pixels
func (c *Canvas) Width() int { return c.dc.Width() }

// Height returns the frame height in pixels
func (c *Canvas) Height() int { return c.dc.Height() }

// Image returns the current frame
func (c *Canvas) Image() image.Image {
	return c.dc.Image()
}

// EncodePNG writes the current frame as PNG
func (c *Canvas) EncodePNG(w io.Writer) error {
	return c.dc.EncodePNG(w)
}

// SavePNG writes the current frame to a file
func (c *Canvas) SavePNG(path string) error {
	return c.dc.SavePNG(path)
}

// Err returns the first rasterizer failure since the canvas was created
// Renderer calls have no error return, so a failed fill is kept here for the host
func (c *Canvas) Err() error {
	return c.err
}

func (c *Canvas) fill() {
	if err := c.dc.Fill(); err != nil && c.err == nil {
		c.err = err
	}
}

// Close releases the context
func (c *Canvas) Close() error {
	return c.dc.Close()
}

func (c *Canvas) Clear(col color.NRGBA) {
	c.dc.ClearWithColor(gg.FromColor(col))
}

func (c *Canvas) FillRect(r render.Rect, col color.NRGBA) {
	if r.W <= 0 || r.H <= 0 || col.A == 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.DrawRectangle(r.X, r.Y, r.W, r.H)
	c.fill()
}

func (c *Canvas) FillPolygon(pts []render.Point, col color.NRGBA) {
	if len(pts) < 3 || col.A == 0 {
		return
	}
	c.dc.SetColor(col)
	c.dc.MoveTo(pts[0].X, pts[0].Y)
	for _, p := range pts[1:] {
		c.dc.LineTo(p.X, p.Y)
	}
	c.dc.ClosePath()
	c.fill()
}

func (c *Canvas) DrawImageRegion(src image.Image, srcRect, dst render.Rect) {
	if src == nil || dst.W < 1 || dst.H < 1 {
		return
	}
	sr := image.Rect(int(srcRect.X), int(srcRect.Y), int(srcRect.X+srcRect.W), int(srcRect.Y+srcRect.H)).
		Intersect(src.Bounds())
	if sr.Empty() {
		return
	}
	c.dc.DrawImageEx(c.buffer(src), gg.DrawImageOptions{
		X:             dst.X,
		Y:             dst.Y,
		DstWidth:      dst.W,
		DstHeight:     dst.H,
		SrcRect:       &sr,
		Interpolation: gg.InterpNearest,
		Opacity:       1,
	})
}

// buffer converts a sheet once and reuses it for every later blit
func (c *Canvas) buffer(src image.Image) *gg.ImageBuf {
	if buf, ok := c.images[src]; ok {
		return buf
	}
	buf := gg.ImageBufFromImage(src)
	c.images[src] = buf
	return buf
}
