package vehicle

import (
	"github.com/paulmach/orb/planar"

	"github.com/HADrawer/SMART-ROAD/internal/grid"
	"github.com/HADrawer/SMART-ROAD/internal/route"
)

// Passage is a vehicle's standing with respect to the intersection box.
//
// A vehicle stops at the hold line, one tile short of the box, unless it has
// been cleared. It asks to enter once it is the first uncleared vehicle of
// its movement and close enough to stop at the line. It is cleared when no
// cleared vehicle still claims a tile on its path and no conflicting
// vehicle has been waiting longer. A cleared vehicle releases each box tile
// once it is a full tile past it.
type Passage string

const (
	PassageApproaching Passage = "approaching" // has not asked to enter yet
	PassageWaiting     Passage = "waiting"     // asked to enter, held at the line
	PassageCleared     Passage = "cleared"     // may enter; claims the box tiles it has not passed
	PassageThrough     Passage = "through"     // clear of the box
)

// releaseDistance is how far past the center of its last box tile a vehicle
// must be before it gives up its claim entirely.
const releaseDistance = 2 * grid.TileSize

// holdEpsilon absorbs rounding when a vehicle is parked on the hold line.
const holdEpsilon = 1e-9

// holdDistance returns how far the vehicle may still drive before the hold
// line. ok is false once it is past the near edge waypoint.
func (v *Vehicle) holdDistance() (float64, bool) {
	if v.target != 1 || len(v.path) < 2 {
		return 0, false
	}
	d := planar.Distance(v.pos, v.path[1]) - grid.TileSize
	if d < holdEpsilon {
		return 0, true
	}
	return d, true
}

// requestDistance is how close to the hold line a vehicle asks to enter:
// far enough out that, if it is cleared at once, it never brakes for the line.
func (v *Vehicle) requestDistance() float64 {
	return v.model.BrakingDistance(v.speed) + grid.TileSize
}

// pass moves the vehicle through its passage states and returns the
// distance left to the hold line when it must stop there. Every decision
// reads only the frozen peers and the vehicle's own pre-update state, so two
// vehicles judging each other in the same tick reach the same answer.
func (v *Vehicle) pass(peers Peers, dt float64) (float64, bool) {
	switch v.passage {
	case PassageThrough:
		return 0, false
	case PassageCleared:
		if v.exited && len(v.box) > 0 &&
			planar.Distance(v.pos, grid.TileCenter(v.box[len(v.box)-1])) >= releaseDistance {
			v.passage = PassageThrough
		}
		return 0, false
	}

	hold, ok := v.holdDistance()
	if !ok {
		v.passage = PassageCleared
		return 0, false
	}

	switch v.passage {
	case PassageApproaching:
		if hold <= v.requestDistance() && v.firstInLine(peers) {
			v.passage = PassageWaiting
		}
	case PassageWaiting:
		if v.mayEnter(peers) {
			v.passage = PassageCleared
			return 0, false
		}
		v.waited += dt
	}
	return hold, true
}

// firstInLine reports whether no other uncleared vehicle of the same
// movement is ahead of v.
func (v *Vehicle) firstInLine(peers Peers) bool {
	u := v.facing.Unit()
	first := true
	peers.Each(func(s State) {
		if s.Direction != v.Direction || s.Route != v.Route {
			return
		}
		if s.Passage != PassageApproaching && s.Passage != PassageWaiting {
			return
		}
		if (s.Position[0]-v.pos[0])*u[0]+(s.Position[1]-v.pos[1])*u[1] > 0 {
			first = false
		}
	})
	return first
}

// mayEnter reports whether a waiting vehicle can be cleared.
func (v *Vehicle) mayEnter(peers Peers) bool {
	mine := v.claim()
	ok := true
	peers.Each(func(s State) {
		if !ok || !route.Conflicts(v.Direction, v.Route, s.Direction, s.Route) || !mine.Overlaps(s.Claim) {
			return
		}
		switch s.Passage {
		case PassageCleared:
			ok = false
		case PassageWaiting:
			if s.Waited > v.waited || (s.Waited == v.waited && s.ID < v.ID) {
				ok = false
			}
		}
	})
	return ok
}

// claim returns the box tiles the vehicle still needs: every tile from the
// one before its furthest tile onward.
func (v *Vehicle) claim() grid.BoxSet {
	if v.passage == PassageThrough {
		return 0
	}
	var s grid.BoxSet
	for _, t := range v.box[max(0, v.boxIdx-1):] {
		s = s.Add(t)
	}
	return s
}

// trackBox advances boxIdx to the furthest box tile the vehicle has reached.
func (v *Vehicle) trackBox() {
	t := grid.TileAt(v.pos)
	for i := v.boxIdx + 1; i < len(v.box); i++ {
		if v.box[i] == t {
			v.boxIdx = i
			return
		}
	}
}
