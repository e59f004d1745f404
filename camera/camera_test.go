package camera

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDepth(t *testing.T) {
	assert.InDelta(t, 1.0, Depth(90), 1e-12)
	assert.InDelta(t, 1/math.Tan(85*math.Pi/180), Depth(170), 1e-12)
	assert.Greater(t, Depth(60), Depth(120), "narrower view projects further")
}

func TestProjectCenteredPoint(t *testing.T) {
	p := Position{World: Vec3{X: 0, Y: 0, Z: 1000}}
	pose := Pose{X: 0, Y: 0, Z: 0, Depth: 1}

	Project(&p, pose, 640, 480, 2000)

	assert.Equal(t, Vec3{0, 0, 1000}, p.Camera)
	assert.InDelta(t, 0.001, p.Screen.Scale, 1e-12)
	assert.Equal(t, 320.0, p.Screen.X)
	assert.Equal(t, 240.0, p.Screen.Y)
	assert.Equal(t, 640.0, p.Screen.W, "scale*roadWidth*halfW = 0.001*2000*320")
}

func TestProjectCameraOffset(t *testing.T) {
	p := Position{World: Vec3{X: 0, Y: 0, Z: 2000}}
	// camera raised and shifted right: the road appears below center and left of it
	pose := Pose{X: 500, Y: 1000, Z: 1000, Depth: 1}

	Project(&p, pose, 800, 600, 2000)

	assert.Equal(t, Vec3{-500, -1000, 1000}, p.Camera)
	assert.Less(t, p.Screen.X, 400.0)
	assert.Greater(t, p.Screen.Y, 300.0)
	assert.Equal(t, 200.0, p.Screen.X, "400 + 0.001*-500*400")
	assert.Equal(t, 600.0, p.Screen.Y, "300 - 0.001*-1000*300")
}

func TestProjectScaleDecreasesWithDistance(t *testing.T) {
	pose := Pose{Y: 1500, Depth: Depth(100)}
	prev := math.Inf(1)
	for z := 100.0; z < 60000; z += 250 {
		p := Position{World: Vec3{Z: z}}
		Project(&p, pose, 1024, 768, 2000)
		require.Less(t, p.Screen.Scale, prev, "z=%v", z)
		prev = p.Screen.Scale
	}
}

func TestProjectRoundsToPixels(t *testing.T) {
	p := Position{World: Vec3{X: 1, Y: 1, Z: 3}}
	Project(&p, Pose{Depth: 1}, 101, 101, 1)

	for _, v := range []float64{p.Screen.X, p.Screen.Y, p.Screen.W} {
		assert.Equal(t, math.Round(v), v)
	}
}
