package engine

import (
	"time"

	"github.com/lixenwraith/outrun/parameter"
)

// FrameDriver turns irregular frame times into whole fixed simulation steps
type FrameDriver struct {
	// Step is the fixed update interval in seconds
	Step float64
	// MaxSteps bounds the catch-up work of a single frame, 0 means unbounded
	MaxSteps int
	// ElapsedCap bounds the real time one frame contributes, in seconds
	ElapsedCap float64

	clock       Clock
	last        time.Time
	accumulator float64
}

// NewFrameDriver creates a driver at the default step reading from clock
func NewFrameDriver(clock Clock) *FrameDriver {
	return &FrameDriver{
		Step:       parameter.SimulationStep,
		MaxSteps:   parameter.MaxCatchUpSteps,
		ElapsedCap: parameter.FrameElapsedCap,
		clock:      clock,
		last:       clock.Now(),
	}
}

// Pending returns the unconsumed time in the accumulator
func (d *FrameDriver) Pending() float64 {
	return d.accumulator
}

// Frame reads the clock and advances by the time since the previous frame
func (d *FrameDriver) Frame(step func(dt float64) error) (int, error) {
	now := d.clock.Now()
	elapsed := now.Sub(d.last).Seconds()
	d.last = now
	return d.Advance(elapsed, step)
}

// Advance feeds elapsed seconds and runs step while a full step is buffered
// A step error stops the frame and is returned with the count of completed steps
func (d *FrameDriver) Advance(elapsed float64, step func(dt float64) error) (int, error) {
	if elapsed < 0 {
		elapsed = 0
	}
	if d.ElapsedCap > 0 && elapsed > d.ElapsedCap {
		elapsed = d.ElapsedCap
	}
	d.accumulator += elapsed

	n := 0
	for d.accumulator > d.Step {
		if d.MaxSteps > 0 && n >= d.MaxSteps {
			// Drop the backlog rather than spiral
			d.accumulator = 0
			break
		}
		d.accumulator -= d.Step
		n++
		if err := step(d.Step); err != nil {
			return n, err
		}
	}
	return n, nil
}
