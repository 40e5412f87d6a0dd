// Package vehicle implements a single simulated vehicle: it follows its
// compiled path one straight segment at a time, regulates its own speed
// against the peers ahead of it and keeps lifetime counters for statistics.
package vehicle

import (
	"fmt"
	"math"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"github.com/HADrawer/SMART-ROAD/internal/grid"
	"github.com/HADrawer/SMART-ROAD/internal/kinematics"
	"github.com/HADrawer/SMART-ROAD/internal/route"
)

// Regulation describes what the traffic regulator last decided for a vehicle.
type Regulation string

const (
	RegulationClear    Regulation = "clear"    // cruising at its velocity level
	RegulationSlowing  Regulation = "slowing"  // peer ahead inside the safety distance
	RegulationStopped  Regulation = "stopped"  // peer ahead inside the emergency distance
	RegulationYielding Regulation = "yielding" // braking for the hold line, not yet cleared
)

// Vehicle is one simulated car. Only its own Update mutates it.
type Vehicle struct {
	ID        string
	Tag       string // appearance, opaque to the simulation
	Direction route.Direction
	Route     route.Route

	pos         orb.Point
	speed       float64
	targetSpeed float64
	level       kinematics.VelocityLevel
	model       kinematics.MotionModel
	regulation  Regulation

	path   route.Path
	target int // index of the waypoint being approached
	facing route.Direction

	passage Passage
	waited  float64     // seconds spent waiting at the hold line
	box     []grid.Tile // box tiles of path, in driving order
	boxIdx  int         // furthest entry of box reached, -1 before the box

	distance   float64
	alive      float64
	inBox      bool
	entered    bool
	exited     bool
	enteredAt  float64
	exitedAt   float64
	closeCalls int
	peakSpeed  float64
}

// Option configures a Vehicle at construction.
type Option func(*Vehicle)

// WithLevel sets the initial velocity level (default Medium).
func WithLevel(l kinematics.VelocityLevel) Option {
	return func(v *Vehicle) { v.level = l }
}

// WithModel sets the speed-change model (default kinematics.Default()).
func WithModel(m kinematics.MotionModel) Option {
	return func(v *Vehicle) { v.model = m }
}

// New creates a vehicle at the spawn point of the path compiled for d and r.
func New(id string, d route.Direction, r route.Route, tag string, opts ...Option) *Vehicle {
	return newWithPath(id, d, r, tag, route.Compile(d, r), opts...)
}

// newWithPath panics on an empty path: the compiler never produces one, so
// an empty path means the geometry is broken.
func newWithPath(id string, d route.Direction, r route.Route, tag string, path route.Path, opts ...Option) *Vehicle {
	if len(path) == 0 {
		panic(fmt.Sprintf("vehicle %s: empty path for %s/%s", id, d, r))
	}
	v := &Vehicle{
		ID:         id,
		Tag:        tag,
		Direction:  d,
		Route:      r,
		level:      kinematics.Medium,
		model:      kinematics.Default(),
		regulation: RegulationClear,
		path:       path,
		target:     1,
		facing:     d,
		pos:        path[0],
		passage:    PassageApproaching,
		box:        path.BoxTiles(),
		boxIdx:     -1,
	}
	for _, opt := range opts {
		opt(v)
	}
	v.targetSpeed = v.level.Speed()
	v.inBox = grid.InBox(v.pos)
	v.refreshFacing()
	return v
}

// Update advances the vehicle by dt seconds against a frozen view of its
// peers. dt must be positive.
func (v *Vehicle) Update(dt float64, peers Peers) {
	if dt <= 0 {
		panic(fmt.Sprintf("vehicle %s: non-positive dt %v", v.ID, dt))
	}
	if v.Done() {
		return
	}
	v.alive += dt

	authority := v.regulate(peers)
	if hold, ok := v.pass(peers, dt); ok {
		authority = math.Min(authority, hold)
		if v.regulation != RegulationStopped && hold <= v.model.BrakingDistance(v.speed)+v.speed*dt {
			v.regulation = RegulationYielding
			v.targetSpeed = 0
		}
	}
	v.speed = v.model.Approach(v.speed, v.targetSpeed, dt)

	next := v.path[v.target]
	dist := planar.Distance(v.pos, next)
	step := v.speed * dt
	switch {
	case dist <= 0 || dist < step:
		// Would overshoot: take the waypoint and drop the rest of this tick's motion.
		v.target++
	case authority < step:
		// Held short of a peer or the hold line: report the speed actually driven.
		move := math.Max(0, authority)
		v.moveToward(next, dist, move)
		v.speed = move / dt
	default:
		v.moveToward(next, dist, step)
	}
	v.peakSpeed = math.Max(v.peakSpeed, v.speed)

	v.trackOccupancy()
	v.refreshFacing()
}

func (v *Vehicle) moveToward(next orb.Point, dist, move float64) {
	if move <= 0 {
		return
	}
	v.pos = orb.Point{
		v.pos[0] + (next[0]-v.pos[0])/dist*move,
		v.pos[1] + (next[1]-v.pos[1])/dist*move,
	}
	v.distance += move
}

func (v *Vehicle) trackOccupancy() {
	in := grid.InBox(v.pos)
	switch {
	case in && !v.inBox && !v.entered:
		v.entered = true
		v.enteredAt = v.alive
	case !in && v.inBox && v.entered && !v.exited:
		v.exited = true
		v.exitedAt = v.alive
	}
	v.inBox = in
	v.trackBox()
}

func (v *Vehicle) refreshFacing() {
	if v.Done() {
		return
	}
	v.facing = FacingToward(v.pos, v.path[v.target], v.facing)
}

// FacingToward returns the cardinal direction of the dominant axis of the
// vector from -> to. When both axes have equal magnitude (including the zero
// vector) it returns fallback.
func FacingToward(from, to orb.Point, fallback route.Direction) route.Direction {
	dx, dy := to[0]-from[0], to[1]-from[1]
	switch {
	case math.Abs(dx) > math.Abs(dy):
		if dx > 0 {
			return route.Right
		}
		return route.Left
	case math.Abs(dy) > math.Abs(dx):
		if dy > 0 {
			return route.Down
		}
		return route.Up
	}
	return fallback
}

// SetVelocityLevel changes the baseline speed tier. A vehicle currently held
// back by the regulator keeps its reduced target until the way ahead clears.
func (v *Vehicle) SetVelocityLevel(l kinematics.VelocityLevel) {
	v.level = l
	if v.regulation == RegulationClear {
		v.targetSpeed = l.Speed()
	}
}

// Done reports whether the vehicle has passed its last waypoint.
func (v *Vehicle) Done() bool { return v.target >= len(v.path) }

// OutOfBounds reports whether the vehicle has left the playfield plus margin.
func (v *Vehicle) OutOfBounds() bool { return grid.OutOfBounds(v.pos) }

func (v *Vehicle) Position() orb.Point { return v.pos }
func (v *Vehicle) Speed() float64 { return v.speed }
func (v *Vehicle) TargetSpeed() float64 { return v.targetSpeed }
func (v *Vehicle) Level() kinematics.VelocityLevel { return v.level }
func (v *Vehicle) Facing() route.Direction { return v.facing }
func (v *Vehicle) Path() route.Path { return v.path }
func (v *Vehicle) Target() int { return v.target }
func (v *Vehicle) Regulation() Regulation { return v.regulation }
func (v *Vehicle) InIntersection() bool { return v.inBox }
func (v *Vehicle) Passage() Passage { return v.passage }

// State returns a value snapshot for peers and renderers.
func (v *Vehicle) State() State {
	return State{
		ID:        v.ID,
		Tag:       v.Tag,
		Position:  v.pos,
		Speed:     v.speed,
		Facing:    v.facing,
		Direction: v.Direction,
		Route:     v.Route,
		Passage:   v.passage,
		Waited:    v.waited,
		Claim:     v.claim(),
	}
}
