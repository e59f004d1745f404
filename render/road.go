package render

import "github.com/lixenwraith/outrun/parameter"

func rumbleWidth(projectedRoadWidth float64, lanes int) float64 {
	return projectedRoadWidth / float64(max(parameter.RumbleMinDivisor, parameter.RumbleLaneFactor*lanes))
}

func laneMarkerWidth(projectedRoadWidth float64, lanes int) float64 {
	return projectedRoadWidth / float64(max(parameter.LaneMarkerMinDivisor, parameter.LaneMarkerLaneFactor*lanes))
}

// roadSegment draws grass, both rumble strips, tarmac, lane markers and fog for one segment
// (x1, y1, w1) is the near edge center and half width, (x2, y2, w2) the far one
func roadSegment(r Renderer, width float64, lanes int, x1, y1, w1, x2, y2, w2, fog float64, pal Palette) {
	r1 := rumbleWidth(w1, lanes)
	r2 := rumbleWidth(w2, lanes)
	l1 := laneMarkerWidth(w1, lanes)
	l2 := laneMarkerWidth(w2, lanes)

	r.FillRect(Rect{X: 0, Y: y2, W: width, H: y1 - y2}, pal.Grass)

	r.FillPolygon([]Point{{x1 - w1 - r1, y1}, {x1 - w1, y1}, {x2 - w2, y2}, {x2 - w2 - r2, y2}}, pal.Rumble)
	r.FillPolygon([]Point{{x1 + w1 + r1, y1}, {x1 + w1, y1}, {x2 + w2, y2}, {x2 + w2 + r2, y2}}, pal.Rumble)
	r.FillPolygon([]Point{{x1 - w1, y1}, {x1 + w1, y1}, {x2 + w2, y2}, {x2 - w2, y2}}, pal.Road)

	if pal.HasLanes {
		laneW1 := w1 * 2 / float64(lanes)
		laneW2 := w2 * 2 / float64(lanes)
		for lane := 1; lane < lanes; lane++ {
			lx1 := x1 - w1 + laneW1*float64(lane)
			lx2 := x2 - w2 + laneW2*float64(lane)
			r.FillPolygon([]Point{
				{lx1 - l1/2, y1}, {lx1 + l1/2, y1}, {lx2 + l2/2, y2}, {lx2 - l2/2, y2},
			}, pal.Lane)
		}
	}

	if fog < 1 {
		r.FillRect(Rect{X: 0, Y: y2, W: width, H: y1 - y2}, WithAlpha(FogColor, 1-fog))
	}
}
