// Package track builds the segmented road: geometry, rumble coloring, roadside scenery and
// per-segment vehicle membership
package track

import (
	"errors"
	"math"
	"slices"

	"github.com/lixenwraith/outrun/camera"
	"github.com/lixenwraith/outrun/sprite"
	"github.com/lixenwraith/outrun/vmath"
)

// ErrEmptyTrack rejects a built track with no segments; lookups need at least one
var ErrEmptyTrack = errors.New("track has no segments")

// Color selects a segment palette
type Color uint8

const (
	ColorLight Color = iota
	ColorDark
	ColorStart
	ColorFinish
)

func (c Color) String() string {
	switch c {
	case ColorLight:
		return "light"
	case ColorDark:
		return "dark"
	case ColorStart:
		return "start"
	case ColorFinish:
		return "finish"
	default:
		return "unknown"
	}
}

// PlacedSprite is a roadside object; Offset is in road half widths, negative on the left
type PlacedSprite struct {
	Sprite sprite.ID
	Offset float64
}

// Segment is one slice of road between P1 (near) and P2 (far)
type Segment struct {
	Index   int
	P1, P2  camera.Position
	Curve   float64
	Color   Color
	Sprites []PlacedSprite

	// Cars holds ids of the vehicles currently inside the segment
	Cars []int

	// Per-frame render scratch
	Fog    float64
	Clip   float64
	Looped bool
}

// AddCar records membership, a no-op when already present
func (s *Segment) AddCar(id int) {
	if !slices.Contains(s.Cars, id) {
		s.Cars = append(s.Cars, id)
	}
}

// RemoveCar drops membership and reports whether id was present
func (s *Segment) RemoveCar(id int) bool {
	i := slices.Index(s.Cars, id)
	if i < 0 {
		return false
	}
	s.Cars = slices.Delete(s.Cars, i, i+1)
	return true
}

// Track is the closed loop of segments
type Track struct {
	Segments      []Segment
	SegmentLength float64
	RumbleLength  int
}

// Len returns the number of segments
func (t *Track) Len() int {
	return len(t.Segments)
}

// Length returns the loop length in world units
func (t *Track) Length() float64 {
	return float64(len(t.Segments)) * t.SegmentLength
}

// SegmentIndex maps any z, negative or past the loop, to its segment index
func (t *Track) SegmentIndex(z float64) int {
	n := len(t.Segments)
	if n == 0 {
		return 0
	}
	block := math.Floor(z / t.SegmentLength)
	if math.IsNaN(block) || math.IsInf(block, 0) {
		return 0
	}
	// Reduce in float space first so huge z stays inside int range
	return vmath.FloorMod(int(math.Mod(block, float64(n))), n)
}

// FindSegment returns the segment containing z, nil on an empty track
func (t *Track) FindSegment(z float64) *Segment {
	if len(t.Segments) == 0 {
		return nil
	}
	return &t.Segments[t.SegmentIndex(z)]
}

// LastY is the far elevation of the last segment, 0 when empty
func (t *Track) LastY() float64 {
	if len(t.Segments) == 0 {
		return 0
	}
	return t.Segments[len(t.Segments)-1].P2.World.Y
}

// ClearCars empties every membership list
func (t *Track) ClearCars() {
	for i := range t.Segments {
		t.Segments[i].Cars = t.Segments[i].Cars[:0]
	}
}

// CarCount sums membership over all segments
func (t *Track) CarCount() int {
	n := 0
	for i := range t.Segments {
		n += len(t.Segments[i].Cars)
	}
	return n
}
