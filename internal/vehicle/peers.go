package vehicle

import (
	"github.com/paulmach/orb"

	"github.com/HADrawer/SMART-ROAD/internal/grid"
	"github.com/HADrawer/SMART-ROAD/internal/route"
)

// State is a point-in-time copy of the parts of a vehicle its peers and the
// renderer may look at.
type State struct {
	ID        string          `json:"id"`
	Tag       string          `json:"tag"`
	Position  orb.Point       `json:"position"`
	Speed     float64         `json:"speed"`
	Facing    route.Direction `json:"facing"`
	Direction route.Direction `json:"direction"`
	Route     route.Route     `json:"route"`
	Passage   Passage         `json:"passage"`
	Waited    float64         `json:"waited"` // seconds at the hold line
	Claim     grid.BoxSet     `json:"claim"`
}

// Snapshot is the frozen state of every active vehicle for one tick.
type Snapshot []State

// Without returns a view of s that leaves out index i, the vehicle being
// updated. A negative i keeps every entry.
func (s Snapshot) Without(i int) Peers {
	return Peers{states: s, skip: i}
}

// Peers is a read-only view of a Snapshot that excludes one vehicle by index.
type Peers struct {
	states Snapshot
	skip   int
}

// NoPeers is an empty view.
var NoPeers = Peers{skip: -1}

// Each calls fn for every peer in the view.
func (p Peers) Each(fn func(State)) {
	for i, s := range p.states {
		if i == p.skip {
			continue
		}
		fn(s)
	}
}

// Len returns the number of peers in the view.
func (p Peers) Len() int {
	if p.skip >= 0 && p.skip < len(p.states) {
		return len(p.states) - 1
	}
	return len(p.states)
}
