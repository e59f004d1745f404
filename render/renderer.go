package render

import (
	"image"
	"image/color"
)

// Point is a screen coordinate in logical pixels
type Point struct {
	X, Y float64
}

// Rect is an axis-aligned screen or source region
type Rect struct {
	X, Y, W, H float64
}

// FromImageRect converts a source rectangle
func FromImageRect(r image.Rectangle) Rect {
	return Rect{X: float64(r.Min.X), Y: float64(r.Min.Y), W: float64(r.Dx()), H: float64(r.Dy())}
}

// Renderer is the drawing surface a frame is emitted to
// Alpha in colors carries fog overlays; implementations blend source-over
type Renderer interface {
	Clear(c color.NRGBA)
	FillRect(r Rect, c color.NRGBA)
	FillPolygon(pts []Point, c color.NRGBA)
	DrawImageRegion(src image.Image, srcRect Rect, dst Rect)
}
