package route

import (
	"encoding/json"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HADrawer/SMART-ROAD/internal/grid"
)

// outsideOn reports whether p lies strictly outside the playfield on the edge
// a vehicle heading h drives toward.
func outsideOn(p orb.Point, h Direction) bool {
	switch h {
	case Up:
		return p[1] < 0
	case Down:
		return p[1] > grid.Height()
	case Left:
		return p[0] < 0
	case Right:
		return p[0] > grid.Width()
	}
	return false
}

func TestCompileEndpoints(t *testing.T) {
	t.Parallel()

	for _, e := range AllPaths() {
		e := e
		t.Run(e.Direction.String()+"/"+e.Route.String(), func(t *testing.T) {
			t.Parallel()
			p := e.Path
			require.GreaterOrEqual(t, p.Len(), 2)
			assert.LessOrEqual(t, p.Len(), 4)

			// Spawn sits outside the edge the vehicle comes from, but inside
			// the removal margin.
			assert.True(t, outsideOn(p.Start(), e.Direction.Opposite()), "start %v", p.Start())
			assert.False(t, grid.OutOfBounds(p.Start()))

			heading := e.Route.Apply(e.Direction)
			assert.True(t, outsideOn(p.End(), heading), "end %v", p.End())
			assert.True(t, grid.OutOfBounds(p.End()))
		})
	}
}

func TestCompileUpStraight(t *testing.T) {
	t.Parallel()

	p := Compile(Up, Straight)
	want := Path{
		grid.TileCenter(grid.Tile{Col: 16, Row: 30}),
		grid.TileCenter(grid.Tile{Col: 16, Row: 17}),
		grid.TileCenter(grid.Tile{Col: 16, Row: -3}),
	}
	assert.Equal(t, want, p)
	assert.InDelta(t, 33*grid.TileSize, p.Length(), 1e-9)
}

func TestCompileLeftTurnHasPivot(t *testing.T) {
	t.Parallel()

	p := Compile(Up, TurnLeft)
	assert.Equal(t, []grid.Tile{
		{Col: 15, Row: 30},
		{Col: 15, Row: 17},
		{Col: 15, Row: 14},
		{Col: -3, Row: 14},
	}, p.Tiles())
}

func TestCompileRightTurnCollapsesPivot(t *testing.T) {
	t.Parallel()

	for _, d := range Directions() {
		p := Compile(d, TurnRight)
		assert.Equal(t, 3, p.Len(), d.String())
		for i := 1; i < p.Len(); i++ {
			assert.NotEqual(t, p[i-1], p[i], "%s: duplicate waypoint %d", d, i)
		}
	}
}

func TestCompileTurnIsLaneSwap(t *testing.T) {
	t.Parallel()

	for _, d := range Directions() {
		for _, r := range []Route{TurnLeft, TurnRight} {
			tiles := Compile(d, r).Tiles()
			pv, out := tiles[len(tiles)-2], tiles[len(tiles)-1]
			entry, exit := EntryLane(d, r), ExitLane(d, r)

			assert.Equal(t, pv, pivot(entry, exit))
			// Pivot to exit travels along the exit lane only.
			if exit.Axis == Vertical {
				assert.Equal(t, exit.Index, pv.Col)
				assert.Equal(t, exit.Index, out.Col)
			} else {
				assert.Equal(t, exit.Index, pv.Row)
				assert.Equal(t, exit.Index, out.Row)
			}
			assert.True(t, grid.InIntersection(pv), "%s/%s pivot %v", d, r, pv)
		}
	}
}

func TestLaneInvariants(t *testing.T) {
	t.Parallel()

	for _, d := range Directions() {
		assert.Equal(t, EntryLane(d, Straight), ExitLane(d, Straight), "%s straight", d)
		assert.NotEqual(t, EntryLane(d, TurnLeft), ExitLane(d, TurnLeft), "%s left", d)
		assert.NotEqual(t, EntryLane(d, TurnRight), ExitLane(d, TurnRight), "%s right", d)

		seen := map[Lane]Route{}
		for _, r := range Routes() {
			l := EntryLane(d, r)
			prev, dup := seen[l]
			assert.False(t, dup, "%s: %s and %s share entry lane %s", d, prev, r, l)
			seen[l] = r
		}

		assert.NotEqual(t, EntryLane(d, TurnLeft), EntryLane(d, TurnRight))
		assert.NotEqual(t, ExitLane(d, TurnLeft), ExitLane(d, TurnRight))
	}
}

func TestEntryLaneTable(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d    Direction
		r    Route
		want string
	}{
		{Up, TurnLeft, "c15"}, {Up, Straight, "c16"}, {Up, TurnRight, "c17"},
		{Down, TurnLeft, "c14"}, {Down, Straight, "c13"}, {Down, TurnRight, "c12"},
		{Right, TurnLeft, "r15"}, {Right, Straight, "r16"}, {Right, TurnRight, "r17"},
		{Left, TurnLeft, "r14"}, {Left, Straight, "r13"}, {Left, TurnRight, "r12"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, EntryLane(tt.d, tt.r).String(), "%s/%s", tt.d, tt.r)
	}
}

// Every outbound arm carries one lane per incoming movement, so no two
// movements finish on the same lane.
func TestExitLanesDisjoint(t *testing.T) {
	t.Parallel()

	owner := map[Lane]string{}
	for _, e := range AllPaths() {
		l := ExitLane(e.Direction, e.Route)
		name := e.Direction.String() + "/" + e.Route.String()
		prev, dup := owner[l]
		assert.False(t, dup, "%s and %s both exit on %s", prev, name, l)
		owner[l] = name
	}
	assert.Len(t, owner, 12)
}

func TestCompileDeterministic(t *testing.T) {
	t.Parallel()

	for _, e := range AllPaths() {
		assert.Equal(t, e.Path, Compile(e.Direction, e.Route))
	}
}

func TestRouteApply(t *testing.T) {
	t.Parallel()

	assert.Equal(t, Left, TurnLeft.Apply(Up))
	assert.Equal(t, Right, TurnRight.Apply(Up))
	assert.Equal(t, Right, TurnLeft.Apply(Down))
	assert.Equal(t, Up, TurnLeft.Apply(Right))
	assert.Equal(t, Down, TurnLeft.Apply(Left))
	for _, d := range Directions() {
		assert.Equal(t, d, Straight.Apply(d))
		assert.Equal(t, d, d.Opposite().Opposite())
	}
}

func TestTextRoundTrip(t *testing.T) {
	t.Parallel()

	type spawn struct {
		Direction Direction `json:"direction"`
		Route     Route     `json:"route"`
	}
	var s spawn
	require.NoError(t, json.Unmarshal([]byte(`{"direction":"left","route":"straight"}`), &s))
	assert.Equal(t, spawn{Left, Straight}, s)

	out, err := json.Marshal(spawn{Down, TurnRight})
	require.NoError(t, err)
	assert.JSONEq(t, `{"direction":"down","route":"right"}`, string(out))

	assert.Error(t, json.Unmarshal([]byte(`{"direction":"north"}`), &s))
	assert.Error(t, json.Unmarshal([]byte(`{"route":"u-turn"}`), &s))
}

func TestBoxTiles(t *testing.T) {
	t.Parallel()

	tiles := Compile(Up, Straight).BoxTiles()
	require.Len(t, tiles, 2*grid.IntersectionHalfWidth)
	assert.Equal(t, grid.Tile{Col: 16, Row: 17}, tiles[0])
	assert.Equal(t, grid.Tile{Col: 16, Row: 12}, tiles[len(tiles)-1])

	assert.Equal(t, []grid.Tile{{Col: 17, Row: 17}}, Compile(Up, TurnRight).BoxTiles())

	assert.Equal(t, []grid.Tile{
		{Col: 15, Row: 17}, {Col: 15, Row: 16}, {Col: 15, Row: 15}, {Col: 15, Row: 14},
		{Col: 14, Row: 14}, {Col: 13, Row: 14}, {Col: 12, Row: 14},
	}, Compile(Up, TurnLeft).BoxTiles())

	for _, e := range AllPaths() {
		for _, tile := range e.Path.BoxTiles() {
			assert.True(t, grid.InIntersection(tile), "%s/%s %v", e.Direction, e.Route, tile)
		}
	}
}

func TestConflicts(t *testing.T) {
	t.Parallel()

	tests := []struct {
		d1   Direction
		r1   Route
		d2   Direction
		r2   Route
		want bool
	}{
		{Up, Straight, Left, Straight, true},
		{Up, TurnLeft, Down, TurnLeft, true},
		{Up, Straight, Down, Straight, false},
		{Up, TurnLeft, Up, Straight, false},
		{Up, Straight, Up, Straight, false},
		{Right, TurnLeft, Left, Straight, true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Conflicts(tt.d1, tt.r1, tt.d2, tt.r2), "%s/%s vs %s/%s", tt.d1, tt.r1, tt.d2, tt.r2)
		assert.Equal(t, tt.want, Conflicts(tt.d2, tt.r2, tt.d1, tt.r1), "symmetric")
	}

	// Right turns only touch their own corner tile.
	for _, d := range Directions() {
		for _, e := range AllPaths() {
			assert.False(t, Conflicts(d, TurnRight, e.Direction, e.Route), "%s/right vs %s/%s", d, e.Direction, e.Route)
		}
	}
}
