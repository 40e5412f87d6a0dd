package spawn

import (
	"testing"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HADrawer/SMART-ROAD/internal/kinematics"
	"github.com/HADrawer/SMART-ROAD/internal/route"
	"github.com/HADrawer/SMART-ROAD/internal/vehicle"
)

func TestSpawnPlacesVehicleAtEntry(t *testing.T) {
	t.Parallel()

	s := New()
	v, err := s.Spawn(0, route.Down, route.TurnLeft, "red", kinematics.Fast, nil)
	require.NoError(t, err)

	assert.Equal(t, route.Compile(route.Down, route.TurnLeft).Start(), v.Position())
	assert.Equal(t, route.Down, v.Direction)
	assert.Equal(t, route.TurnLeft, v.Route)
	assert.Equal(t, "red", v.Tag)
	assert.Equal(t, kinematics.Fast, v.Level())
	assert.NotEmpty(t, v.ID)
}

func TestSpawnRejectsBlockedEntry(t *testing.T) {
	t.Parallel()

	s := New()
	start := route.Compile(route.Up, route.Straight).Start()
	existing := vehicle.Snapshot{{ID: "x", Position: orb.Point{start[0], start[1] - 20}}}

	_, err := s.Spawn(0, route.Up, route.Straight, "blue", kinematics.Medium, existing)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrBlocked))

	existing[0].Position = orb.Point{start[0], start[1] - DefaultClearance - 1}
	_, err = s.Spawn(0, route.Up, route.Straight, "blue", kinematics.Medium, existing)
	assert.NoError(t, err)
}

func TestSpawnCooldown(t *testing.T) {
	t.Parallel()

	s := New(WithCooldown(1))
	_, err := s.Spawn(0, route.Left, route.Straight, "", kinematics.Slow, nil)
	require.NoError(t, err)

	_, err = s.Spawn(0.5, route.Left, route.TurnLeft, "", kinematics.Slow, nil)
	assert.True(t, errors.Is(err, ErrCooldown))

	_, err = s.Spawn(0.5, route.Right, route.TurnLeft, "", kinematics.Slow, nil)
	assert.NoError(t, err, "cooldown is per direction")

	_, err = s.Spawn(1.0, route.Left, route.TurnLeft, "", kinematics.Slow, nil)
	assert.NoError(t, err)
}

func TestSpawnIDsAreUniqueAndReproducible(t *testing.T) {
	t.Parallel()

	a, b := New(), New()
	seen := map[string]bool{}
	for i := 0; i < 20; i++ {
		va, err := a.SpawnRandom(float64(i), kinematics.Medium, nil)
		require.NoError(t, err)
		vb, err := b.SpawnRandom(float64(i), kinematics.Medium, nil)
		require.NoError(t, err)

		assert.Equal(t, va.ID, vb.ID)
		assert.Equal(t, va.Direction, vb.Direction)
		assert.Equal(t, va.Route, vb.Route)
		assert.Equal(t, va.Tag, vb.Tag)
		assert.False(t, seen[va.ID], "duplicate id %s", va.ID)
		seen[va.ID] = true
	}
}

func TestSpawnRandomCoversEveryMovement(t *testing.T) {
	t.Parallel()

	s := New(WithSeed(42))
	type movement struct {
		d route.Direction
		r route.Route
	}
	seen := map[movement]bool{}
	for i := 0; i < 500; i++ {
		v, err := s.SpawnRandom(float64(i), kinematics.Medium, nil)
		require.NoError(t, err)
		seen[movement{v.Direction, v.Route}] = true
		assert.Contains(t, Tags, v.Tag)
	}
	assert.Len(t, seen, 12)
}

func TestSpawnFromKeepsDirection(t *testing.T) {
	t.Parallel()

	s := New()
	for i := 0; i < 10; i++ {
		v, err := s.SpawnFrom(float64(i), route.Right, kinematics.Medium, nil)
		require.NoError(t, err)
		assert.Equal(t, route.Right, v.Direction)
	}
}
