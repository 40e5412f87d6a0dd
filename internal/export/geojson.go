// Package export renders the intersection geometry and vehicle snapshots as
// GeoJSON in screen space (x right, y down, pixels).
package export

import (
	geojson "github.com/paulmach/go.geojson"
	"github.com/paulmach/orb"
	"github.com/pkg/errors"

	"github.com/HADrawer/SMART-ROAD/internal/grid"
	"github.com/HADrawer/SMART-ROAD/internal/route"
	"github.com/HADrawer/SMART-ROAD/internal/vehicle"
)

func coords(ls []orb.Point) [][]float64 {
	out := make([][]float64, len(ls))
	for i, p := range ls {
		out[i] = []float64{p[0], p[1]}
	}
	return out
}

func ring(b orb.Bound) [][][]float64 {
	return [][][]float64{coords([]orb.Point{
		b.Min,
		{b.Max[0], b.Min[1]},
		b.Max,
		{b.Min[0], b.Max[1]},
		b.Min,
	})}
}

func boundFeature(kind string, b orb.Bound) *geojson.Feature {
	f := geojson.NewPolygonFeature(ring(b))
	f.SetProperty("kind", kind)
	return f
}

// PathsFeatureCollection returns one LineString per (direction, route)
// movement plus the playfield and intersection box outlines.
func PathsFeatureCollection() *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	fc.AddFeature(boundFeature("playfield", grid.Playfield()))
	fc.AddFeature(boundFeature("intersection", grid.IntersectionBound()))

	for _, e := range route.AllPaths() {
		f := geojson.NewLineStringFeature(coords(e.Path))
		f.ID = e.Direction.String() + "/" + e.Route.String()
		f.SetProperty("kind", "path")
		f.SetProperty("direction", e.Direction.String())
		f.SetProperty("route", e.Route.String())
		f.SetProperty("entry_lane", route.EntryLane(e.Direction, e.Route).String())
		f.SetProperty("exit_lane", route.ExitLane(e.Direction, e.Route).String())
		f.SetProperty("length", e.Path.Length())
		fc.AddFeature(f)
	}
	return fc
}

// SnapshotFeatureCollection returns one Point per vehicle in snap.
func SnapshotFeatureCollection(snap vehicle.Snapshot) *geojson.FeatureCollection {
	fc := geojson.NewFeatureCollection()
	for _, s := range snap {
		f := geojson.NewPointFeature([]float64{s.Position[0], s.Position[1]})
		f.ID = s.ID
		f.SetProperty("kind", "vehicle")
		f.SetProperty("tag", s.Tag)
		f.SetProperty("speed", s.Speed)
		f.SetProperty("facing", s.Facing.String())
		if s.Passage != "" {
			f.SetProperty("passage", string(s.Passage))
		}
		fc.AddFeature(f)
	}
	return fc
}

// Marshal encodes fc as JSON.
func Marshal(fc *geojson.FeatureCollection) ([]byte, error) {
	b, err := fc.MarshalJSON()
	if err != nil {
		return nil, errors.Wrap(err, "can't marshal feature collection")
	}
	return b, nil
}
