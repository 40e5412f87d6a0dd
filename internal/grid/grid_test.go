package grid

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
)

func TestTileCenterRoundTrip(t *testing.T) {
	t.Parallel()

	tiles := []Tile{{0, 0}, {15, 15}, {29, 29}, {-1, 16}, {33, -3}}
	for _, tile := range tiles {
		assert.Equal(t, tile, TileAt(TileCenter(tile)), "tile %v", tile)
	}
}

func TestTileAtNegative(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Tile{Col: -1, Row: -1}, TileAt(orb.Point{-0.5, -29.9}))
	assert.Equal(t, Tile{Col: -2, Row: 0}, TileAt(orb.Point{-30.5, 0}))
}

func TestIntersectionBox(t *testing.T) {
	t.Parallel()

	lo, hi := IntersectionBox()
	assert.Equal(t, 12, lo)
	assert.Equal(t, 17, hi)

	b := IntersectionBound()
	assert.Equal(t, orb.Point{360, 360}, b.Min)
	assert.Equal(t, orb.Point{540, 540}, b.Max)

	assert.True(t, InIntersection(Tile{12, 12}))
	assert.True(t, InIntersection(Tile{17, 17}))
	assert.False(t, InIntersection(Tile{11, 15}))
	assert.False(t, InIntersection(Tile{15, 18}))

	assert.True(t, InBox(orb.Point{450, 450}))
	assert.False(t, InBox(orb.Point{359.9, 450}))
	assert.True(t, InBox(orb.Point{360, 539.9}))
	assert.False(t, InBox(orb.Point{450, 540}))
}

func TestOutOfBounds(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		p    orb.Point
		want bool
	}{
		{"center", orb.Point{450, 450}, false},
		{"just outside playfield", orb.Point{-15, 450}, false},
		{"on margin edge", orb.Point{-Margin, 450}, false},
		{"past left margin", orb.Point{-Margin - 0.1, 450}, true},
		{"past right margin", orb.Point{Width() + Margin + 0.1, 450}, true},
		{"past top margin", orb.Point{450, -Margin - 1}, true},
		{"past bottom margin", orb.Point{450, Height() + Margin + 1}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, OutOfBounds(tt.p))
		})
	}
}

func TestInPlayfield(t *testing.T) {
	t.Parallel()

	assert.True(t, InPlayfield(orb.Point{0, 0}))
	assert.True(t, InPlayfield(orb.Point{Width(), Height()}))
	assert.False(t, InPlayfield(orb.Point{-1, 10}))
}

func TestBoxSet(t *testing.T) {
	t.Parallel()

	var s BoxSet
	s = s.Add(Tile{12, 12}).Add(Tile{17, 17}).Add(Tile{17, 17})
	assert.Equal(t, 2, s.Len())
	assert.True(t, s.Has(Tile{12, 12}))
	assert.True(t, s.Has(Tile{17, 17}))
	assert.False(t, s.Has(Tile{12, 17}))

	assert.Equal(t, s, s.Add(Tile{11, 12}), "tiles outside the box are ignored")
	assert.False(t, s.Has(Tile{18, 18}))

	assert.True(t, s.Overlaps(BoxSet(0).Add(Tile{17, 17})))
	assert.False(t, s.Overlaps(BoxSet(0).Add(Tile{13, 12})))
	assert.False(t, s.Overlaps(0))
}
