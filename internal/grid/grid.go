// Package grid defines the tile grid the intersection is drawn on and the
// conversions between tile indices and continuous (pixel) coordinates.
//
// Continuous space has its origin at the top-left corner of the playfield
// with y growing downward, matching screen space.
package grid

import (
	"math"
	"math/bits"

	"github.com/paulmach/orb"
)

const (
	TileSize = 30.0 // pixels per tile side
	Cols     = 30
	Rows     = 30

	// IntersectionHalfWidth is the half-width of the intersection box in tiles.
	IntersectionHalfWidth = 3

	// Margin is how far (pixels) past the playfield a vehicle may drive
	// before it counts as out of bounds.
	Margin = 2 * TileSize
)

// Mid is the tile index of the grid midpoint on both axes.
const Mid = Cols / 2

// Tile is an integer cell of the grid. Indices outside [0, Cols) × [0, Rows)
// are valid and address tiles beyond the visible playfield.
type Tile struct {
	Col int `json:"col"`
	Row int `json:"row"`
}

// Width returns the playfield width in pixels.
func Width() float64 { return Cols * TileSize }

// Height returns the playfield height in pixels.
func Height() float64 { return Rows * TileSize }

// TileCenter returns the continuous coordinate of the tile's center.
func TileCenter(t Tile) orb.Point {
	return orb.Point{
		(float64(t.Col) + 0.5) * TileSize,
		(float64(t.Row) + 0.5) * TileSize,
	}
}

// TileAt returns the tile containing p. Negative coordinates map to negative
// tile indices.
func TileAt(p orb.Point) Tile {
	return Tile{
		Col: int(math.Floor(p[0] / TileSize)),
		Row: int(math.Floor(p[1] / TileSize)),
	}
}

// Playfield returns the visible area in pixels.
func Playfield() orb.Bound {
	return orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{Width(), Height()}}
}

// Expanded returns the playfield padded by Margin on every side.
func Expanded() orb.Bound {
	return Playfield().Pad(Margin)
}

// IntersectionBox returns the inclusive tile index range covered by the
// intersection on both axes.
func IntersectionBox() (lo, hi int) {
	return Mid - IntersectionHalfWidth, Mid + IntersectionHalfWidth - 1
}

// IntersectionBound returns the intersection box in pixels.
func IntersectionBound() orb.Bound {
	lo, hi := IntersectionBox()
	return orb.Bound{
		Min: orb.Point{float64(lo) * TileSize, float64(lo) * TileSize},
		Max: orb.Point{float64(hi+1) * TileSize, float64(hi+1) * TileSize},
	}
}

// InIntersection reports whether t lies inside the intersection box.
func InIntersection(t Tile) bool {
	lo, hi := IntersectionBox()
	return t.Col >= lo && t.Col <= hi && t.Row >= lo && t.Row <= hi
}

// InBox reports whether the tile under p lies inside the intersection box.
func InBox(p orb.Point) bool {
	return InIntersection(TileAt(p))
}

// InPlayfield reports whether p lies inside the visible area, edges included.
func InPlayfield(p orb.Point) bool {
	return Playfield().Contains(p)
}

// OutOfBounds reports whether p lies strictly beyond the playfield plus
// Margin on any side.
func OutOfBounds(p orb.Point) bool {
	return !Expanded().Contains(p)
}

// BoxSet is a set of intersection tiles, one bit per tile.
type BoxSet uint64

func boxBit(t Tile) (uint, bool) {
	if !InIntersection(t) {
		return 0, false
	}
	lo, _ := IntersectionBox()
	return uint((t.Row-lo)*2*IntersectionHalfWidth + t.Col - lo), true
}

// Add returns s with t added. Tiles outside the box are ignored.
func (s BoxSet) Add(t Tile) BoxSet {
	if b, ok := boxBit(t); ok {
		return s | 1<<b
	}
	return s
}

func (s BoxSet) Has(t Tile) bool {
	b, ok := boxBit(t)
	return ok && s&(1<<b) != 0
}

// Overlaps reports whether s and o share a tile.
func (s BoxSet) Overlaps(o BoxSet) bool { return s&o != 0 }

func (s BoxSet) Len() int { return bits.OnesCount64(uint64(s)) }
