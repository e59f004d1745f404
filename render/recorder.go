package render

import (
	"image"
	"image/color"
)

// OpKind identifies a recorded draw call
type OpKind uint8

const (
	OpClear OpKind = iota
	OpFillRect
	OpFillPolygon
	OpDrawImage
)

// Op is one recorded draw call
type Op struct {
	Kind   OpKind
	Color  color.NRGBA
	Rect   Rect
	Points []Point
	Source image.Image
	Src    Rect
}

// Recorder is a Renderer that keeps every call for inspection
type Recorder struct {
	Ops []Op
}

func (r *Recorder) Clear(c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpClear, Color: c})
}

func (r *Recorder) FillRect(rect Rect, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillRect, Rect: rect, Color: c})
}

func (r *Recorder) FillPolygon(pts []Point, c color.NRGBA) {
	r.Ops = append(r.Ops, Op{Kind: OpFillPolygon, Points: append([]Point(nil), pts...), Color: c})
}

func (r *Recorder) DrawImageRegion(src image.Image, srcRect, dst Rect) {
	r.Ops = append(r.Ops, Op{Kind: OpDrawImage, Source: src, Src: srcRect, Rect: dst})
}

// Reset drops recorded calls
func (r *Recorder) Reset() {
	r.Ops = r.Ops[:0]
}

// Filter returns the recorded calls of one kind
func (r *Recorder) Filter(kind OpKind) []Op {
	var out []Op
	for _, op := range r.Ops {
		if op.Kind == kind {
			out = append(out, op)
		}
	}
	return out
}
