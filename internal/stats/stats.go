// Package stats tallies traffic statistics from vehicle spawn and removal
// events.
package stats

import (
	"fmt"
	"io"

	"github.com/pkg/errors"

	"github.com/HADrawer/SMART-ROAD/internal/route"
	"github.com/HADrawer/SMART-ROAD/internal/vehicle"
)

// PixelsPerMetre converts simulation distances to metres for reporting.
const PixelsPerMetre = 10.0

// Report is the aggregate view of a run.
type Report struct {
	TotalVehicles int                     `json:"total_vehicles"`
	Completed     int                     `json:"completed"`
	ByDirection   map[route.Direction]int `json:"by_direction"`
	ByRoute       map[route.Route]int     `json:"by_route"`
	Runtime       float64                 `json:"runtime"`        // seconds
	TotalDistance float64                 `json:"total_distance"` // px

	AvgIntersectionTime float64 `json:"avg_intersection_time"` // seconds
	MaxIntersectionTime float64 `json:"max_intersection_time"`
	MinIntersectionTime float64 `json:"min_intersection_time"`
	MaxAverageSpeed     float64 `json:"max_average_speed"` // px/s
	MinAverageSpeed     float64 `json:"min_average_speed"`
	CloseCalls          int     `json:"close_calls"`
}

// Collector accumulates statistics for one run. It is not safe for
// concurrent use; the simulation loop owns it.
type Collector struct {
	total       int
	completed   int
	byDirection map[route.Direction]int
	byRoute     map[route.Route]int
	runtime     float64
	distance    float64
	closeCalls  int

	crossings     int
	crossingSum   float64
	crossingMax   float64
	crossingMin   float64
	avgSpeedMax   float64
	avgSpeedMin   float64
	speedsSampled int
}

// NewCollector returns an empty Collector.
func NewCollector() *Collector {
	return &Collector{
		byDirection: make(map[route.Direction]int),
		byRoute:     make(map[route.Route]int),
	}
}

// RecordSpawn counts a vehicle admitted to the simulation.
func (c *Collector) RecordSpawn(d route.Direction, r route.Route) {
	c.total++
	c.byDirection[d]++
	c.byRoute[r]++
}

// RecordExit folds in the lifetime counters of a removed vehicle.
func (c *Collector) RecordExit(s vehicle.Summary) {
	c.completed++
	c.distance += s.Distance
	c.closeCalls += s.CloseCalls

	if dur, ok := s.IntersectionTime(); ok {
		if c.crossings == 0 || dur > c.crossingMax {
			c.crossingMax = dur
		}
		if c.crossings == 0 || dur < c.crossingMin {
			c.crossingMin = dur
		}
		c.crossings++
		c.crossingSum += dur
	}

	if s.TimeAlive > 0 {
		avg := s.AverageSpeed()
		if c.speedsSampled == 0 || avg > c.avgSpeedMax {
			c.avgSpeedMax = avg
		}
		if c.speedsSampled == 0 || avg < c.avgSpeedMin {
			c.avgSpeedMin = avg
		}
		c.speedsSampled++
	}
}

// Advance adds dt seconds of runtime.
func (c *Collector) Advance(dt float64) { c.runtime += dt }

// Report returns a copy of the current totals.
func (c *Collector) Report() Report {
	r := Report{
		TotalVehicles:       c.total,
		Completed:           c.completed,
		ByDirection:         make(map[route.Direction]int, len(route.Directions())),
		ByRoute:             make(map[route.Route]int, len(route.Routes())),
		Runtime:             c.runtime,
		TotalDistance:       c.distance,
		MaxIntersectionTime: c.crossingMax,
		MinIntersectionTime: c.crossingMin,
		MaxAverageSpeed:     c.avgSpeedMax,
		MinAverageSpeed:     c.avgSpeedMin,
		CloseCalls:          c.closeCalls,
	}
	for _, d := range route.Directions() {
		r.ByDirection[d] = c.byDirection[d]
	}
	for _, rt := range route.Routes() {
		r.ByRoute[rt] = c.byRoute[rt]
	}
	if c.crossings > 0 {
		r.AvgIntersectionTime = c.crossingSum / float64(c.crossings)
	}
	return r
}

// WriteTo prints the report as a console summary.
func (r Report) WriteTo(w io.Writer) (int64, error) {
	cw := &countingWriter{w: w}
	p := func(format string, args ...any) {
		fmt.Fprintf(cw, format, args...)
	}

	p("=====================================\n")
	p("FINAL SIMULATION STATISTICS\n")
	p("=====================================\n")
	p("Runtime: %.2f s\n", r.Runtime)

	p("\nDirections:\n")
	p("  Up    (south -> north): %d\n", r.ByDirection[route.Up])
	p("  Down  (north -> south): %d\n", r.ByDirection[route.Down])
	p("  Right (west -> east)  : %d\n", r.ByDirection[route.Right])
	p("  Left  (east -> west)  : %d\n", r.ByDirection[route.Left])

	p("\nRoutes:\n")
	p("  Right turns: %d\n", r.ByRoute[route.TurnRight])
	p("  Straight   : %d\n", r.ByRoute[route.Straight])
	p("  Left turns : %d\n", r.ByRoute[route.TurnLeft])

	p("\nTotal vehicles: %d (%d passed)\n", r.TotalVehicles, r.Completed)

	p("\nPhysics:\n")
	p("  Total distance: %.2f m\n", r.TotalDistance/PixelsPerMetre)
	if r.Completed > 0 {
		p("  Avg distance per vehicle: %.2f m\n", r.TotalDistance/float64(r.Completed)/PixelsPerMetre)
		p("  Max velocity: %.2f m/s\n", r.MaxAverageSpeed/PixelsPerMetre)
		p("  Min velocity: %.2f m/s\n", r.MinAverageSpeed/PixelsPerMetre)
	}
	if r.AvgIntersectionTime > 0 {
		p("  Avg intersection time: %.2f s\n", r.AvgIntersectionTime)
		p("  Max intersection time: %.2f s\n", r.MaxIntersectionTime)
		p("  Min intersection time: %.2f s\n", r.MinIntersectionTime)
	}
	p("  Close calls: %d\n", r.CloseCalls)
	p("=====================================\n")

	return cw.n, errors.Wrap(cw.err, "writing stats")
}

type countingWriter struct {
	w   io.Writer
	n   int64
	err error
}

func (c *countingWriter) Write(b []byte) (int, error) {
	if c.err != nil {
		return 0, c.err
	}
	n, err := c.w.Write(b)
	c.n += int64(n)
	c.err = err
	return n, err
}
