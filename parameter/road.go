package parameter

// Road defaults, overridable through config
const (
	DefaultWidth         = 1024
	DefaultHeight        = 768
	DefaultLanes         = 8
	DefaultRoadWidth     = 2000.0
	DefaultCameraHeight  = 2000.0
	DefaultDrawDistance  = 300
	DefaultFogDensity    = 0.0
	DefaultFieldOfView   = 170.0
	DefaultSegmentLength = 200.0
	DefaultRumbleLength  = 1

	// ResolutionBaseHeight normalizes sprite bounce against screen height
	ResolutionBaseHeight = 480.0
)

// Road surface proportions
const (
	// RumbleMinDivisor and RumbleLaneFactor give rumble width w/max(6, 2*lanes)
	RumbleMinDivisor = 6
	RumbleLaneFactor = 2

	// LaneMarkerMinDivisor and LaneMarkerLaneFactor give marker width w/max(32, 8*lanes)
	LaneMarkerMinDivisor = 32
	LaneMarkerLaneFactor = 8

	// PlayerBounce scales the speed shake of the player sprite
	PlayerBounce = 1.5
)
