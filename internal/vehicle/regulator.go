package vehicle

import (
	"math"

	"github.com/HADrawer/SMART-ROAD/internal/grid"
	"github.com/HADrawer/SMART-ROAD/internal/kinematics"
)

const (
	// SafetyDistance is the smallest forward gap (px) below which a vehicle
	// slows to kinematics.ReducedSpeed.
	SafetyDistance = 3 * grid.TileSize
	// EmergencyDistance is the forward gap (px) below which a vehicle stops.
	// It is also the closest a vehicle will ever drive up to a peer ahead.
	EmergencyDistance = SafetyDistance / 2
	// Corridor is the lateral offset (px) from the facing axis within which
	// a peer counts as ahead. Lanes are one tile apart, so this stays below
	// grid.TileSize.
	Corridor = 20.0
)

// regulate picks the target speed from the nearest peer ahead and returns
// the movement authority: how far the vehicle may move this tick without
// closing inside EmergencyDistance.
//
// The slow-down threshold is never shorter than EmergencyDistance plus the
// braking distance from the faster of the current and the cruise speed.
func (v *Vehicle) regulate(peers Peers) float64 {
	gap, ok := v.nearestAhead(peers)
	switch {
	case !ok || gap >= v.slowdownDistance():
		v.regulation = RegulationClear
		v.targetSpeed = v.level.Speed()
	case gap < EmergencyDistance:
		if v.regulation != RegulationStopped {
			v.closeCalls++
		}
		v.regulation = RegulationStopped
		v.targetSpeed = 0
	default:
		v.regulation = RegulationSlowing
		v.targetSpeed = math.Min(kinematics.ReducedSpeed, v.level.Speed())
	}
	if !ok {
		return math.Inf(1)
	}
	return math.Max(0, gap-EmergencyDistance)
}

func (v *Vehicle) slowdownDistance() float64 {
	return math.Max(SafetyDistance, EmergencyDistance+v.model.BrakingDistance(math.Max(v.speed, v.level.Speed())))
}

// nearestAhead returns the distance along the facing axis to the closest
// peer that faces the same way and lies in front of the vehicle within
// Corridor of that axis. Crossing traffic is left to the box passage rules.
func (v *Vehicle) nearestAhead(peers Peers) (float64, bool) {
	u := v.facing.Unit()
	best := math.Inf(1)
	found := false
	peers.Each(func(s State) {
		if s.Facing != v.facing {
			return
		}
		dx := s.Position[0] - v.pos[0]
		dy := s.Position[1] - v.pos[1]
		along := dx*u[0] + dy*u[1]
		lateral := math.Abs(dx*u[1] - dy*u[0])
		if along <= 0 || lateral >= Corridor {
			return
		}
		if along < best {
			best = along
			found = true
		}
	})
	return best, found
}
