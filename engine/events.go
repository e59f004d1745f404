package engine

// Events reports what happened during one simulation step
type Events uint8

const (
	EventHitObject Events = 1 << iota
	EventHitCar
	EventLap
)

// Has reports whether all bits of e are set
func (ev Events) Has(e Events) bool {
	return ev&e == e
}
