package network

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"
)

// ErrMalformed marks an inbound payload that does not match the wire schema
var ErrMalformed = errors.New("malformed payload")

// Snapshot is the local player state sent after every simulation step
type Snapshot struct {
	Offset float64 `json:"offset"`
	Z      float64 `json:"z"`
}

// CarState is one remote vehicle inside a roster
type CarState struct {
	ID     int     `json:"id"`
	Offset float64 `json:"offset"`
	Z      float64 `json:"z"`
}

// Roster lists every other connected player, never the receiver
type Roster struct {
	Cars []CarState `json:"cars"`
}

// Join tells a client the id the relay assigned to it
type Join struct {
	ID int `json:"id"`
}

// Wire shapes with pointer fields so absent keys are detectable
type wireSnapshot struct {
	Offset *float64 `json:"offset"`
	Z      *float64 `json:"z"`
}

type wireCar struct {
	ID     *int     `json:"id"`
	Offset *float64 `json:"offset"`
	Z      *float64 `json:"z"`
}

type wireRoster struct {
	Cars *[]wireCar `json:"cars"`
}

type wireJoin struct {
	ID *int `json:"id"`
}

// EncodeSnapshot serializes s as {"offset":n,"z":n}
func EncodeSnapshot(s Snapshot) ([]byte, error) {
	if !finite(s.Offset) || !finite(s.Z) {
		return nil, fmt.Errorf("%w: non-finite snapshot", ErrMalformed)
	}
	return json.Marshal(s)
}

// DecodeSnapshot parses a client snapshot, both fields required
func DecodeSnapshot(data []byte) (Snapshot, error) {
	var w wireSnapshot
	if err := json.Unmarshal(data, &w); err != nil {
		return Snapshot{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if w.Offset == nil || w.Z == nil {
		return Snapshot{}, fmt.Errorf("%w: snapshot needs offset and z", ErrMalformed)
	}
	return Snapshot{Offset: *w.Offset, Z: *w.Z}, nil
}

// EncodeRoster serializes r as {"cars":[...]}, never null
func EncodeRoster(r Roster) ([]byte, error) {
	if r.Cars == nil {
		r.Cars = []CarState{}
	}
	return json.Marshal(r)
}

// DecodeRoster parses a relay roster; every car needs id, offset and z, ids must be unique
func DecodeRoster(data []byte) (Roster, error) {
	var w wireRoster
	if err := json.Unmarshal(data, &w); err != nil {
		return Roster{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if w.Cars == nil {
		return Roster{}, fmt.Errorf("%w: roster needs cars", ErrMalformed)
	}

	r := Roster{Cars: make([]CarState, 0, len(*w.Cars))}
	seen := make(map[int]struct{}, len(*w.Cars))
	for i, c := range *w.Cars {
		if c.ID == nil || c.Offset == nil || c.Z == nil {
			return Roster{}, fmt.Errorf("%w: car %d needs id, offset and z", ErrMalformed, i)
		}
		if _, dup := seen[*c.ID]; dup {
			return Roster{}, fmt.Errorf("%w: car id %d listed twice", ErrMalformed, *c.ID)
		}
		seen[*c.ID] = struct{}{}
		r.Cars = append(r.Cars, CarState{ID: *c.ID, Offset: *c.Offset, Z: *c.Z})
	}
	return r, nil
}

// EncodeJoin serializes j as {"id":n}
func EncodeJoin(j Join) ([]byte, error) {
	return json.Marshal(j)
}

// DecodeJoin parses the relay greeting
func DecodeJoin(data []byte) (Join, error) {
	var w wireJoin
	if err := json.Unmarshal(data, &w); err != nil {
		return Join{}, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if w.ID == nil {
		return Join{}, fmt.Errorf("%w: join needs id", ErrMalformed)
	}
	return Join{ID: *w.ID}, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}

// ClassifyInbound tells a roster from a join greeting on bindings without a type header
func ClassifyInbound(data []byte) (MessageType, error) {
	var probe struct {
		Cars json.RawMessage `json:"cars"`
		ID   json.RawMessage `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	switch {
	case probe.Cars != nil:
		return MsgRoster, nil
	case probe.ID != nil:
		return MsgJoin, nil
	default:
		return 0, fmt.Errorf("%w: neither roster nor join", ErrMalformed)
	}
}
