package track

import (
	"github.com/lixenwraith/outrun/camera"
	"github.com/lixenwraith/outrun/sprite"
	"github.com/lixenwraith/outrun/vmath"
)

// Road move presets
const (
	LengthNone   = 0
	LengthShort  = 25
	LengthMedium = 50
	LengthLong   = 100

	HillNone   = 0.0
	HillLow    = 20.0
	HillMedium = 40.0
	HillHigh   = 60.0

	CurveNone   = 0.0
	CurveEasy   = 2.0
	CurveMedium = 4.0
	CurveHard   = 6.0
)

// Builder appends road moves to a track
type Builder struct {
	t *Track
}

// NewBuilder starts an empty track; rumbleLength below 1 is treated as 1
func NewBuilder(segmentLength float64, rumbleLength int) *Builder {
	return &Builder{t: &Track{
		SegmentLength: segmentLength,
		RumbleLength:  max(1, rumbleLength),
	}}
}

// Track returns the track under construction
func (b *Builder) Track() *Track {
	return b.t
}

// AddSegment appends one segment rising from the current last elevation to y
func (b *Builder) AddSegment(curve, y float64) {
	n := len(b.t.Segments)
	color := ColorLight
	if (n/b.t.RumbleLength)%2 == 1 {
		color = ColorDark
	}
	b.t.Segments = append(b.t.Segments, Segment{
		Index: n,
		P1:    camera.Position{World: camera.Vec3{Y: b.t.LastY(), Z: float64(n) * b.t.SegmentLength}},
		P2:    camera.Position{World: camera.Vec3{Y: y, Z: float64(n+1) * b.t.SegmentLength}},
		Curve: curve,
		Color: color,
	})
}

// AddSprite places scenery on segment n; out of range indices are ignored
func (b *Builder) AddSprite(n int, id sprite.ID, offset float64) {
	if n < 0 || n >= len(b.t.Segments) {
		return
	}
	s := &b.t.Segments[n]
	s.Sprites = append(s.Sprites, PlacedSprite{Sprite: id, Offset: offset})
}

// AddRoad eases curve in over enter, holds it, eases it out over leave,
// while elevation eases from the last height by hill segment lengths
func (b *Builder) AddRoad(enter, hold, leave int, curve, hill float64) {
	startY := b.t.LastY()
	endY := startY + hill*b.t.SegmentLength
	total := float64(enter + hold + leave)

	for n := 0; n < enter; n++ {
		b.AddSegment(vmath.EaseIn(0, curve, float64(n)/float64(enter)),
			vmath.EaseInOut(startY, endY, float64(n)/total))
	}
	for n := 0; n < hold; n++ {
		b.AddSegment(curve,
			vmath.EaseInOut(startY, endY, float64(enter+n)/total))
	}
	for n := 0; n < leave; n++ {
		b.AddSegment(vmath.EaseInOut(curve, 0, float64(n)/float64(leave)),
			vmath.EaseInOut(startY, endY, float64(enter+hold+n)/total))
	}
}

// AddStraight adds a flat straight of 3*length segments
func (b *Builder) AddStraight(length int) {
	b.AddRoad(length, length, length, CurveNone, HillNone)
}

// AddHill adds a straight that climbs (or drops) by height
func (b *Builder) AddHill(length int, height float64) {
	b.AddRoad(length, length, length, CurveNone, height)
}

// AddCurve adds a bend with an optional elevation change
func (b *Builder) AddCurve(length int, curve, height float64) {
	b.AddRoad(length, length, length, curve, height)
}

// AddLowRollingHills adds six gentle rises and dips with two easy bends
func (b *Builder) AddLowRollingHills(length int, height float64) {
	b.AddRoad(length, length, length, 0, height/2)
	b.AddRoad(length, length, length, 0, -height)
	b.AddRoad(length, length, length, CurveEasy, height)
	b.AddRoad(length, length, length, 0, 0)
	b.AddRoad(length, length, length, -CurveEasy, height/2)
	b.AddRoad(length, length, length, 0, 0)
}

// AddSCurves adds five alternating bends
func (b *Builder) AddSCurves() {
	b.AddRoad(LengthMedium, LengthMedium, LengthMedium, -CurveEasy, HillNone)
	b.AddRoad(LengthMedium, LengthMedium, LengthMedium, CurveMedium, HillMedium)
	b.AddRoad(LengthMedium, LengthMedium, LengthMedium, CurveEasy, -HillLow)
	b.AddRoad(LengthMedium, LengthMedium, LengthMedium, -CurveEasy, HillMedium)
	b.AddRoad(LengthMedium, LengthMedium, LengthMedium, -CurveMedium, -HillMedium)
}

var bumpHeights = []float64{5, -2, -5, 8, 5, -7, 5, -2}

// AddBumps adds eight short sharp elevation changes
func (b *Builder) AddBumps() {
	for _, h := range bumpHeights {
		b.AddRoad(10, 10, 10, 0, h)
	}
}

// AddDownhillToEnd bends gently while returning elevation to zero
func (b *Builder) AddDownhillToEnd(length int) {
	b.AddRoad(length, length, length, -CurveEasy, -b.t.LastY()/b.t.SegmentLength)
}

// MarkStartFinish paints two start segments just past the spawn segment and the last
// rumble stripe as the finish
func (b *Builder) MarkStartFinish(playerZ float64) {
	n := len(b.t.Segments)
	if n == 0 {
		return
	}
	spawn := b.t.SegmentIndex(playerZ)
	for _, i := range []int{spawn + 2, spawn + 3} {
		b.t.Segments[vmath.FloorMod(i, n)].Color = ColorStart
	}
	for i := 0; i < b.t.RumbleLength && i < n; i++ {
		b.t.Segments[n-1-i].Color = ColorFinish
	}
}
