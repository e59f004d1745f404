package track

import "math/rand/v2"

// BuildDefaultCourse lays out the stock circuit on b
func BuildDefaultCourse(b *Builder) {
	b.AddLowRollingHills(LengthShort, HillLow)
	b.AddSCurves()
	b.AddCurve(LengthMedium, CurveMedium, HillLow)
	b.AddBumps()
	b.AddLowRollingHills(LengthShort, HillLow)
	b.AddCurve(LengthLong*2, CurveMedium, HillMedium)
	b.AddStraight(LengthMedium)
	b.AddHill(LengthMedium, HillHigh)
	b.AddSCurves()
	b.AddCurve(LengthLong, -CurveMedium, HillNone)
	b.AddHill(LengthLong, HillHigh)
	b.AddCurve(LengthLong, CurveMedium, -HillLow)
	b.AddBumps()
	b.AddHill(LengthLong, -HillMedium)
	b.AddStraight(LengthMedium)
	b.AddSCurves()
	b.AddDownhillToEnd(200)
}

// DefaultCourse builds the stock circuit with scenery and start/finish markings
// playerZ locates the spawn segment for the start line
func DefaultCourse(segmentLength float64, rumbleLength int, playerZ float64, rng *rand.Rand) *Track {
	b := NewBuilder(segmentLength, rumbleLength)
	BuildDefaultCourse(b)
	b.PlaceScenery(rng)
	b.MarkStartFinish(playerZ)
	return b.Track()
}
