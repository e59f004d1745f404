package game

import (
	"fmt"
	"math"
	"strings"

	"github.com/lixenwraith/outrun/engine"
)

// Status is what the bottom line shows
type Status struct {
	Speed   int // km/h
	LapTime float64
	LastLap float64
	BestLap float64
	Laps    int
	Cars    int
	ID      int
	Online  bool
	Muted   bool
}

// StatusOf reads the HUD values from the world
func StatusOf(w *engine.World) Status {
	return Status{
		Speed:   displaySpeed(w.Player.Speed),
		LapTime: w.Player.LapTime,
		LastLap: w.Player.LastLap,
		BestLap: w.Player.BestLap,
		Laps:    w.Player.Laps,
		Cars:    w.VehicleCount(),
	}
}

// displaySpeed converts world units per second to a rounded km/h reading
func displaySpeed(speed float64) int {
	return 5 * int(math.Round(speed/500))
}

// FormatLapTime renders seconds as m:ss.t, or "-" before a lap exists
func FormatLapTime(sec float64) string {
	if sec <= 0 {
		return "-"
	}
	tenths := int(math.Floor(sec * 10))
	return fmt.Sprintf("%d:%02d.%d", tenths/600, tenths/10%60, tenths%10)
}

func (s Status) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%3d km/h  LAP %s  LAST %s  BEST %s  LAPS %d",
		s.Speed, FormatLapTime(s.LapTime), FormatLapTime(s.LastLap), FormatLapTime(s.BestLap), s.Laps)
	if s.Online {
		fmt.Fprintf(&b, "  CARS %d", s.Cars)
		if s.ID > 0 {
			fmt.Fprintf(&b, "  ID %d", s.ID)
		}
	}
	if s.Muted {
		b.WriteString("  MUTED")
	}
	return b.String()
}
