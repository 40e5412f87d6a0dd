package main

import (
	"os"
	"path/filepath"
	"testing"

	geojson "github.com/paulmach/go.geojson"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/HADrawer/SMART-ROAD/internal/engine"
	"github.com/HADrawer/SMART-ROAD/internal/route"
)

func TestWriteSnapshot(t *testing.T) {
	t.Parallel()

	out, err := engine.Run(engine.SimulationInput{
		Meta: engine.SimulationMeta{SimulationID: "snap", RunTime: 2, TimeStep: 0.5},
		Spawns: []engine.SpawnEvent{
			{Time: 0, Direction: route.Up, Route: route.Straight, Tag: "red"},
			{Time: 0, Direction: route.Left, Route: route.TurnRight, Tag: "blue"},
		},
	}, nil)
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "snapshot.geojson")
	require.NoError(t, writeSnapshot(path, out))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(b)
	require.NoError(t, err)
	require.Len(t, fc.Features, 2)

	last := out.Output[len(out.Output)-1].Vehicles
	for i, f := range fc.Features {
		assert.Equal(t, last[i].ID, f.ID)
		require.True(t, f.Geometry.IsPoint())
		assert.Equal(t, []float64{last[i].Position[0], last[i].Position[1]}, f.Geometry.Point)
	}
}

func TestWriteSnapshotEmptyRun(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "empty.geojson")
	require.NoError(t, writeSnapshot(path, engine.SimulationLog{}))

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	fc, err := geojson.UnmarshalFeatureCollection(b)
	require.NoError(t, err)
	assert.Empty(t, fc.Features)
}

func TestWriteSnapshotBadPath(t *testing.T) {
	t.Parallel()

	err := writeSnapshot(filepath.Join(t.TempDir(), "missing", "x.geojson"), engine.SimulationLog{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "can't write snapshot")
}
