package engine

import (
	"errors"
	"fmt"
	"math"

	"github.com/lixenwraith/outrun/network"
	"github.com/lixenwraith/outrun/parameter"
	"github.com/lixenwraith/outrun/sprite"
	"github.com/lixenwraith/outrun/vmath"
)

// ErrRosterMismatch means a tracked car could not be matched to exactly one roster entry
var ErrRosterMismatch = errors.New("roster mismatch")

// Snapshot is the local state to publish after a step
func (w *World) Snapshot() network.Snapshot {
	return network.Snapshot{
		Offset: w.Player.X,
		Z:      w.Player.Position + w.Config.PlayerZ,
	}
}

// ApplyRoster makes the tracked remote cars match r exactly
// Ids missing from r are dropped, new ids spawn stationary, the rest take the reported
// offset and z. The roster is validated first; on error the world is unchanged
func (w *World) ApplyRoster(r network.Roster) error {
	entries := make(map[int]network.CarState, len(r.Cars))
	for _, c := range r.Cars {
		if _, dup := entries[c.ID]; dup {
			return fmt.Errorf("%w: car %d has more than one entry", ErrRosterMismatch, c.ID)
		}
		if math.IsNaN(c.Offset) || math.IsInf(c.Offset, 0) || math.IsNaN(c.Z) || math.IsInf(c.Z, 0) {
			return fmt.Errorf("%w: car %d has non-finite state", network.ErrMalformed, c.ID)
		}
		entries[c.ID] = c
	}

	tr := w.Track

	for _, id := range w.VehicleIDs() {
		if _, ok := entries[id]; ok {
			continue
		}
		car := w.cars[id]
		tr.FindSegment(car.Z).RemoveCar(id)
		delete(w.cars, id)
		w.log.Debug("car left", "id", id)
	}

	for _, c := range r.Cars {
		if _, ok := w.cars[c.ID]; ok {
			continue
		}
		car := &Vehicle{
			ID:     c.ID,
			Offset: c.Offset,
			Z:      c.Z,
			Sprite: sprite.Cars[vmath.FloorMod(c.ID, len(sprite.Cars))],
		}
		w.cars[c.ID] = car
		tr.FindSegment(car.Z).AddCar(c.ID)
		w.log.Debug("car joined", "id", c.ID, "sprite", car.Sprite)
	}

	for _, id := range w.VehicleIDs() {
		car, c := w.cars[id], entries[id]
		oldIndex := tr.SegmentIndex(car.Z)
		car.Offset = vmath.Clamp(c.Offset, -parameter.PlayerOffsetLimit, parameter.PlayerOffsetLimit)
		car.Z = c.Z
		car.Percent = vmath.PercentRemaining(car.Z, tr.SegmentLength)
		if newIndex := tr.SegmentIndex(car.Z); newIndex != oldIndex {
			tr.Segments[oldIndex].RemoveCar(id)
			tr.Segments[newIndex].AddCar(id)
		}
	}
	return nil
}
