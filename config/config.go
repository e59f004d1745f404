// Package config holds the road and camera settings with their derived driving constants
package config

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/outrun/camera"
	"github.com/lixenwraith/outrun/parameter"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the full set of road, camera and viewport settings
// Fields below the marker are derived and recomputed by Apply
type Config struct {
	Width         int
	Height        int
	Lanes         int
	RoadWidth     float64 // half road width in world units
	CameraHeight  float64
	DrawDistance  int // segments
	FogDensity    float64
	FieldOfView   float64 // degrees
	SegmentLength float64
	RumbleLength  int // segments per rumble stripe

	// --- derived ---

	CameraDepth  float64
	PlayerZ      float64
	Resolution   float64
	MaxSpeed     float64
	Accel        float64
	Braking      float64
	Decel        float64
	OffRoadDecel float64
	OffRoadLimit float64
}

// Default returns the stock settings with derived fields filled
func Default() Config {
	c := Config{
		Width:         parameter.DefaultWidth,
		Height:        parameter.DefaultHeight,
		Lanes:         parameter.DefaultLanes,
		RoadWidth:     parameter.DefaultRoadWidth,
		CameraHeight:  parameter.DefaultCameraHeight,
		DrawDistance:  parameter.DefaultDrawDistance,
		FogDensity:    parameter.DefaultFogDensity,
		FieldOfView:   parameter.DefaultFieldOfView,
		SegmentLength: parameter.DefaultSegmentLength,
		RumbleLength:  parameter.DefaultRumbleLength,
	}
	c.derive()
	return c
}

// derive recomputes camera and speed constants from the base fields
func (c *Config) derive() {
	c.CameraDepth = camera.Depth(c.FieldOfView)
	c.PlayerZ = c.CameraHeight * c.CameraDepth
	c.Resolution = float64(c.Height) / parameter.ResolutionBaseHeight

	// One segment per step at most keeps collision checks to the current segment
	c.MaxSpeed = c.SegmentLength / parameter.SimulationStep
	c.Accel = c.MaxSpeed * parameter.AccelerationRatio
	c.Braking = c.MaxSpeed * parameter.BrakingRatio
	c.Decel = c.MaxSpeed * parameter.CoastingRatio
	c.OffRoadDecel = c.MaxSpeed * parameter.OffRoadDecelRatio
	c.OffRoadLimit = c.MaxSpeed * parameter.OffRoadLimitRatio
}

// Validate checks base fields; derived fields are not inspected
func (c Config) Validate() error {
	switch {
	case c.Width <= 0:
		return invalid("width", c.Width, "must be positive")
	case c.Height <= 0:
		return invalid("height", c.Height, "must be positive")
	case c.Lanes < 1:
		return invalid("lanes", c.Lanes, "must be at least 1")
	case !positive(c.RoadWidth):
		return invalid("roadWidth", c.RoadWidth, "must be positive")
	case !positive(c.CameraHeight):
		return invalid("cameraHeight", c.CameraHeight, "must be positive")
	case c.DrawDistance < 1:
		return invalid("drawDistance", c.DrawDistance, "must be at least 1")
	case math.IsNaN(c.FogDensity) || math.IsInf(c.FogDensity, 0) || c.FogDensity < 0:
		return invalid("fogDensity", c.FogDensity, "must be zero or positive")
	case !(c.FieldOfView > 0 && c.FieldOfView < 180):
		return invalid("fieldOfView", c.FieldOfView, "must be inside (0, 180) degrees")
	case !positive(c.SegmentLength):
		return invalid("segmentLength", c.SegmentLength, "must be positive")
	case c.RumbleLength < 1:
		return invalid("rumbleLength", c.RumbleLength, "must be at least 1")
	}
	return nil
}

func positive(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

func invalid(field string, value any, reason string) error {
	return fmt.Errorf("%w: %s %s, got %v", ErrInvalidConfig, field, reason, value)
}
