// Package camera projects road points from world space through a chase camera to screen pixels
package camera

import "math"

// Vec3 is a point in world or camera space
type Vec3 struct {
	X, Y, Z float64
}

// Screen is the projected result of a point
type Screen struct {
	X, Y, W float64
	Scale   float64
}

// Position holds a fixed world point with its last camera-space and screen-space projection
type Position struct {
	World  Vec3
	Camera Vec3
	Screen Screen
}

// Pose places the camera for a projection
// X, Y, Z are the camera world coordinates, Depth the projection plane distance
type Pose struct {
	X, Y, Z float64
	Depth   float64
}

// Depth returns the projection plane distance for a field of view in degrees
func Depth(fieldOfView float64) float64 {
	return 1 / math.Tan((fieldOfView/2)*math.Pi/180)
}

// Project recomputes p.Camera and p.Screen from p.World
// No guard for points behind or at the projection plane, callers cull on Camera.Z
func Project(p *Position, pose Pose, width, height int, roadWidth float64) {
	p.Camera.X = p.World.X - pose.X
	p.Camera.Y = p.World.Y - pose.Y
	p.Camera.Z = p.World.Z - pose.Z

	scale := pose.Depth / p.Camera.Z
	halfW := float64(width) / 2
	halfH := float64(height) / 2

	p.Screen.Scale = scale
	p.Screen.X = math.Round(halfW + scale*p.Camera.X*halfW)
	p.Screen.Y = math.Round(halfH - scale*p.Camera.Y*halfH)
	p.Screen.W = math.Round(scale * roadWidth * halfW)
}
