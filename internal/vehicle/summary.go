package vehicle

import (
	"github.com/paulmach/orb"

	"github.com/HADrawer/SMART-ROAD/internal/route"
)

// Summary holds the lifetime counters of a vehicle, read when it is removed.
type Summary struct {
	ID         string          `json:"id"`
	Tag        string          `json:"tag"`
	Direction  route.Direction `json:"direction"`
	Route      route.Route     `json:"route"`
	Distance   float64         `json:"distance"`   // px
	TimeAlive  float64         `json:"time_alive"` // seconds
	Entered    bool            `json:"entered"`
	EnteredAt  float64         `json:"entered_at"` // seconds since spawn
	Exited     bool            `json:"exited"`
	ExitedAt   float64         `json:"exited_at"` // seconds since spawn
	CloseCalls int             `json:"close_calls"`
	PeakSpeed  float64         `json:"peak_speed"` // px/s
}

// IntersectionTime returns how long the vehicle spent in the intersection
// box. ok is false unless it both entered and left the box.
func (s Summary) IntersectionTime() (float64, bool) {
	if !s.Entered || !s.Exited {
		return 0, false
	}
	return s.ExitedAt - s.EnteredAt, true
}

// AverageSpeed returns distance over time alive, or 0 for a vehicle that
// never ticked.
func (s Summary) AverageSpeed() float64 {
	if s.TimeAlive <= 0 {
		return 0
	}
	return s.Distance / s.TimeAlive
}

// Summary returns the vehicle's lifetime counters.
func (v *Vehicle) Summary() Summary {
	return Summary{
		ID:         v.ID,
		Tag:        v.Tag,
		Direction:  v.Direction,
		Route:      v.Route,
		Distance:   v.distance,
		TimeAlive:  v.alive,
		Entered:    v.entered,
		EnteredAt:  v.enteredAt,
		Exited:     v.exited,
		ExitedAt:   v.exitedAt,
		CloseCalls: v.closeCalls,
		PeakSpeed:  v.peakSpeed,
	}
}

// Log is a point-in-time record of a vehicle for the simulation log.
type Log struct {
	ID             string          `json:"id"`
	Tag            string          `json:"tag"`
	Direction      route.Direction `json:"direction"`
	Route          route.Route     `json:"route"`
	Position       orb.Point       `json:"position"`
	Facing         route.Direction `json:"facing"`
	Speed          float64         `json:"speed"`
	TargetSpeed    float64         `json:"target_speed"`
	Regulation     Regulation      `json:"regulation"`
	Passage        Passage         `json:"passage"`
	NextWaypoint   int             `json:"next_waypoint"`
	InIntersection bool            `json:"in_intersection"`
}

// GetLog returns a point-in-time snapshot of the vehicle.
func (v *Vehicle) GetLog() Log {
	return Log{
		ID:             v.ID,
		Tag:            v.Tag,
		Direction:      v.Direction,
		Route:          v.Route,
		Position:       v.pos,
		Facing:         v.facing,
		Speed:          v.speed,
		TargetSpeed:    v.targetSpeed,
		Regulation:     v.regulation,
		Passage:        v.passage,
		NextWaypoint:   v.target,
		InIntersection: v.inBox,
	}
}

// State returns the renderer-facing part of the record. Box claims are not
// logged, so the result carries none.
func (l Log) State() State {
	return State{
		ID:        l.ID,
		Tag:       l.Tag,
		Position:  l.Position,
		Speed:     l.Speed,
		Facing:    l.Facing,
		Direction: l.Direction,
		Route:     l.Route,
		Passage:   l.Passage,
	}
}
