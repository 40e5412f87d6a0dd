package route

import (
	"fmt"
	"sync"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/HADrawer/SMART-ROAD/internal/grid"
)

// exitOffset is how many tiles past the playfield edge the final waypoint
// sits. It must put the waypoint beyond grid.Margin so a vehicle that
// reaches it is already out of bounds.
const exitOffset = 3

// Path is an ordered, non-empty list of waypoints (tile centers). Index 0 is
// the spawn point.
type Path orb.LineString

func (p Path) Len() int { return len(p) }

func (p Path) Start() orb.Point { return p[0] }

func (p Path) End() orb.Point { return p[len(p)-1] }

// Length returns the length of the polyline through all waypoints.
func (p Path) Length() float64 {
	return planar.Length(orb.LineString(p))
}

// Tiles returns the tile under each waypoint.
func (p Path) Tiles() []grid.Tile {
	tiles := make([]grid.Tile, len(p))
	for i, pt := range p {
		tiles[i] = grid.TileAt(pt)
	}
	return tiles
}

// BoxTiles returns the intersection tiles the path drives over, in the
// order it reaches them. Segments must be axis-aligned, as compiled paths are.
func (p Path) BoxTiles() []grid.Tile {
	var (
		out  []grid.Tile
		seen grid.BoxSet
	)
	for i := 1; i < len(p); i++ {
		a, b := grid.TileAt(p[i-1]), grid.TileAt(p[i])
		if a.Col != b.Col && a.Row != b.Row {
			panic(fmt.Sprintf("route: diagonal segment %v -> %v", a, b))
		}
		dc, dr := sign(b.Col-a.Col), sign(b.Row-a.Row)
		for t := a; ; t = (grid.Tile{Col: t.Col + dc, Row: t.Row + dr}) {
			if grid.InIntersection(t) && !seen.Has(t) {
				seen = seen.Add(t)
				out = append(out, t)
			}
			if t == b {
				break
			}
		}
	}
	return out
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

// Conflicts reports whether two different movements share an intersection
// tile. A movement never conflicts with itself: vehicles on the same path
// keep apart by following.
func Conflicts(d1 Direction, r1 Route, d2 Direction, r2 Route) bool {
	if d1 == d2 && r1 == r2 {
		return false
	}
	sets := boxSets()
	return sets[d1][r1].Overlaps(sets[d2][r2])
}

var boxSets = sync.OnceValue(func() (sets [4][3]grid.BoxSet) {
	for _, e := range AllPaths() {
		sets[e.Direction][e.Route] = boxSet(e.Path)
	}
	return sets
})

func boxSet(p Path) grid.BoxSet {
	var s grid.BoxSet
	for _, t := range p.BoxTiles() {
		s = s.Add(t)
	}
	return s
}

// Compile returns the waypoint path for a vehicle entering with direction d
// and taking route r:
//
//	spawn (one tile outside the playfield) → near edge of the intersection box
//	  → [pivot on entry lane × exit lane] → exit (beyond the out-of-bounds margin)
//
// Turns are a lane swap between the pivot and the exit waypoint. A pivot
// that coincides with the near-edge tile is collapsed.
func Compile(d Direction, r Route) Path {
	entry := EntryLane(d, r)
	exit := ExitLane(d, r)
	heading := r.Apply(d)

	tiles := []grid.Tile{
		tileOn(entry, spawnCoord(d)),
		tileOn(entry, nearEdgeCoord(d)),
	}
	if r != Straight {
		tiles = append(tiles, pivot(entry, exit))
	}
	tiles = append(tiles, tileOn(exit, exitCoord(heading)))

	path := make(Path, 0, len(tiles))
	var last grid.Tile
	for i, t := range tiles {
		if i > 0 && t == last {
			continue
		}
		path = append(path, grid.TileCenter(t))
		last = t
	}
	return path
}

// Entry pairs a direction and route with its compiled path.
type Entry struct {
	Direction Direction
	Route     Route
	Path      Path
}

// AllPaths compiles every (direction, route) pair in declaration order.
func AllPaths() []Entry {
	out := make([]Entry, 0, len(Directions())*len(Routes()))
	for _, d := range Directions() {
		for _, r := range Routes() {
			out = append(out, Entry{Direction: d, Route: r, Path: Compile(d, r)})
		}
	}
	return out
}

// spawnCoord is the coordinate along the entry lane one tile outside the
// edge the vehicle comes from.
func spawnCoord(d Direction) int {
	switch d {
	case Up:
		return grid.Rows
	case Down:
		return -1
	case Left:
		return grid.Cols
	case Right:
		return -1
	}
	panic(fmt.Sprintf("route: invalid direction %d", int(d)))
}

// nearEdgeCoord is the first coordinate inside the intersection box on the
// approach side.
func nearEdgeCoord(d Direction) int {
	lo, hi := grid.IntersectionBox()
	switch d {
	case Up, Left:
		return hi
	case Down, Right:
		return lo
	}
	panic(fmt.Sprintf("route: invalid direction %d", int(d)))
}

func exitCoord(h Direction) int {
	switch h {
	case Up:
		return -exitOffset
	case Down:
		return grid.Rows + exitOffset - 1
	case Left:
		return -exitOffset
	case Right:
		return grid.Cols + exitOffset - 1
	}
	panic(fmt.Sprintf("route: invalid direction %d", int(h)))
}

// pivot is the tile where the entry lane crosses the exit lane.
func pivot(entry, exit Lane) grid.Tile {
	if entry.Axis == Vertical {
		return grid.Tile{Col: entry.Index, Row: exit.Index}
	}
	return grid.Tile{Col: exit.Index, Row: entry.Index}
}
