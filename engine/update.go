package engine

import (
	"math"

	"github.com/lixenwraith/outrun/parameter"
	"github.com/lixenwraith/outrun/sprite"
	"github.com/lixenwraith/outrun/track"
	"github.com/lixenwraith/outrun/vmath"
)

// Update advances the world by dt seconds
func (w *World) Update(dt float64) Events {
	cfg := &w.Config
	tr := w.Track
	p := &w.Player
	length := tr.Length()

	playerSegment := tr.FindSegment(p.Position + cfg.PlayerZ)
	playerW := float64(sprite.PlayerStraight.Rect().W) * sprite.Scale
	speedPercent := p.Speed / cfg.MaxSpeed
	// Full speed crosses the road edge to edge in one second
	dx := dt * 2 * speedPercent
	startPosition := p.Position

	var ev Events

	w.updateCars(dt)

	p.Position = vmath.Increase(p.Position, dt*p.Speed, length)

	if p.Controls.Left {
		p.X -= dx
	} else if p.Controls.Right {
		p.X += dx
	}
	p.X -= dx * speedPercent * playerSegment.Curve * parameter.CentrifugalForce

	switch {
	case p.Controls.Accelerate:
		p.Speed = vmath.Accelerate(p.Speed, cfg.Accel, dt)
	case p.Controls.Brake:
		p.Speed = vmath.Accelerate(p.Speed, cfg.Braking, dt)
	default:
		p.Speed = vmath.Accelerate(p.Speed, cfg.Decel, dt)
	}

	if math.Abs(p.X) > parameter.OffRoadThreshold {
		if p.Speed > cfg.OffRoadLimit {
			p.Speed = vmath.Accelerate(p.Speed, cfg.OffRoadDecel, dt)
		}

		for _, s := range playerSegment.Sprites {
			spriteW := float64(s.Sprite.Rect().W) * sprite.Scale
			side := -1.0
			if s.Offset > 0 {
				side = 1
			}
			if vmath.Overlap(p.X, playerW, s.Offset+spriteW/2*side, spriteW, 1) {
				p.Speed = cfg.MaxSpeed * parameter.ObjectHitSpeedRatio
				// Stop at the front of the segment
				p.Position = vmath.Increase(playerSegment.P1.World.Z, -cfg.PlayerZ, length)
				ev |= EventHitObject
				break
			}
		}
	}

	if car := w.carAhead(playerSegment, playerW, length); car != nil {
		p.Speed = car.Speed * (car.Speed / p.Speed)
		p.Position = vmath.Increase(car.Z, -cfg.PlayerZ, length)
		ev |= EventHitCar
	}

	p.X = vmath.Clamp(p.X, -parameter.PlayerOffsetLimit, parameter.PlayerOffsetLimit)
	p.Speed = vmath.Clamp(p.Speed, 0, cfg.MaxSpeed)

	travelled := (p.Position - startPosition) / tr.SegmentLength
	w.Parallax.Sky = vmath.Increase(w.Parallax.Sky, parameter.SkySpeed*playerSegment.Curve*travelled, 1)
	w.Parallax.Hill = vmath.Increase(w.Parallax.Hill, parameter.HillSpeed*playerSegment.Curve*travelled, 1)
	w.Parallax.Tree = vmath.Increase(w.Parallax.Tree, parameter.TreeSpeed*playerSegment.Curve*travelled, 1)

	if p.Position > cfg.PlayerZ {
		if p.LapTime > 0 && startPosition < cfg.PlayerZ {
			p.LastLap = p.LapTime
			if p.BestLap == 0 || p.LapTime < p.BestLap {
				p.BestLap = p.LapTime
			}
			p.Laps++
			p.LapTime = 0
			ev |= EventLap
		} else {
			p.LapTime += dt
		}
	}

	return ev
}

// carAhead returns the slower overlapping car in seg closest in front of the player
func (w *World) carAhead(seg *track.Segment, playerW, length float64) *Vehicle {
	p := &w.Player
	pz := p.Position + w.Config.PlayerZ

	var hit *Vehicle
	best := math.Inf(1)
	for _, id := range seg.Cars {
		car, ok := w.cars[id]
		if !ok || p.Speed <= car.Speed {
			continue
		}
		carW := float64(car.Sprite.Rect().W) * sprite.Scale
		if !vmath.Overlap(p.X, playerW, car.Offset, carW, parameter.CarCollisionPercent) {
			continue
		}
		// Forward distance around the loop; a car just behind sorts last
		d := math.Mod(car.Z-pz, length)
		if d < 0 {
			d += length
		}
		if hit == nil || d < best || (d == best && car.ID < hit.ID) {
			hit, best = car, d
		}
	}
	return hit
}

// updateCars advances remote cars by their own speed and fixes segment membership
func (w *World) updateCars(dt float64) {
	tr := w.Track
	length := tr.Length()
	for _, id := range w.VehicleIDs() {
		car := w.cars[id]
		oldIndex := tr.SegmentIndex(car.Z)
		car.Z = vmath.Increase(car.Z, dt*car.Speed, length)
		car.Percent = vmath.PercentRemaining(car.Z, tr.SegmentLength)
		if newIndex := tr.SegmentIndex(car.Z); newIndex != oldIndex {
			tr.Segments[oldIndex].RemoveCar(id)
			tr.Segments[newIndex].AddCar(id)
		}
	}
}
