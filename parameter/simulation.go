package parameter

import "time"

// Fixed timestep
const (
	// SimulationStep is the fixed update interval in seconds
	SimulationStep = 1.0 / 60.0

	// FrameElapsedCap bounds the real time a single frame may feed the accumulator, in seconds
	FrameElapsedCap = 1.0

	// MaxCatchUpSteps bounds the fixed steps run for one frame after a stall
	MaxCatchUpSteps = 60

	// FrameInterval paces the host loop
	FrameInterval = time.Second / 60
)

// Driving model, expressed as ratios of maximum speed
const (
	// AccelerationRatio is throttle acceleration as a fraction of max speed per second
	AccelerationRatio = 1.0 / 5.0

	// BrakingRatio is brake deceleration, negative
	BrakingRatio = -1.0

	// CoastingRatio is natural deceleration with no input
	CoastingRatio = -1.0 / 5.0

	// OffRoadDecelRatio applies while off-road above OffRoadLimitRatio
	OffRoadDecelRatio = -1.0 / 2.0

	// OffRoadLimitRatio is the speed off-road drag does not push below
	OffRoadLimitRatio = 1.0 / 4.0

	// CentrifugalForce scales the lateral push of curves
	CentrifugalForce = 0.3

	// PlayerOffsetLimit clamps lateral offset in road half widths
	PlayerOffsetLimit = 3.0

	// OffRoadThreshold is the lateral offset past which the player is off the tarmac
	OffRoadThreshold = 1.0

	// ObjectHitSpeedRatio is the speed left after hitting a roadside object
	ObjectHitSpeedRatio = 1.0 / 5.0

	// CarCollisionPercent narrows car hitboxes for the overlap test
	CarCollisionPercent = 0.8
)

// Parallax scroll rates per unit of curvature travelled
const (
	SkySpeed  = 0.001
	HillSpeed = 0.002
	TreeSpeed = 0.003
)
