package route

import (
	"fmt"

	"github.com/HADrawer/SMART-ROAD/internal/grid"
)

// Lane is one tile-wide lane: a tile column for vertical travel or a tile
// row for horizontal travel.
type Lane struct {
	Axis  Axis `json:"axis"`
	Index int  `json:"index"`
}

func (l Lane) String() string {
	if l.Axis == Vertical {
		return fmt.Sprintf("c%d", l.Index)
	}
	return fmt.Sprintf("r%d", l.Index)
}

// laneFor returns the lane in the road half carrying traffic with heading
// h at the given slot. Traffic keeps right, so northbound and eastbound
// lanes sit above the midpoint index and the others below it.
func laneFor(h Direction, slot int) Lane {
	switch h {
	case Up, Right:
		return Lane{Axis: h.Axis(), Index: grid.Mid + slot}
	case Down, Left:
		return Lane{Axis: h.Axis(), Index: grid.Mid - 1 - slot}
	}
	panic(fmt.Sprintf("route: invalid direction %d", int(h)))
}

// EntryLane returns the lane a vehicle with direction d and route r
// approaches the intersection on.
func EntryLane(d Direction, r Route) Lane {
	return laneFor(d, r.slot())
}

// ExitLane returns the lane a vehicle with direction d and route r leaves
// the intersection on. Straight traffic keeps its lane; left turns land on
// the innermost outbound lane and right turns on the outermost.
func ExitLane(d Direction, r Route) Lane {
	return laneFor(r.Apply(d), r.slot())
}

// tileOn returns the tile on lane l at the given coordinate along the lane.
func tileOn(l Lane, along int) grid.Tile {
	if l.Axis == Vertical {
		return grid.Tile{Col: l.Index, Row: along}
	}
	return grid.Tile{Col: along, Row: l.Index}
}
