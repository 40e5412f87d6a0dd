// Package route compiles a vehicle's entry direction and turn choice into the
// fixed sequence of waypoints it drives through the intersection.
package route

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/pkg/errors"
)

// Direction is the compass heading a vehicle travels toward. Up means the
// vehicle entered from the south edge and drives north.
type Direction int

const (
	Up Direction = iota
	Down
	Left
	Right
)

// Directions lists every Direction in declaration order.
func Directions() []Direction { return []Direction{Up, Down, Left, Right} }

// Axis is the grid axis a vehicle travels along.
type Axis int

const (
	Vertical Axis = iota
	Horizontal
)

func (a Axis) String() string {
	switch a {
	case Vertical:
		return "vertical"
	case Horizontal:
		return "horizontal"
	}
	panic(fmt.Sprintf("route: invalid axis %d", int(a)))
}

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	case Left:
		return "left"
	case Right:
		return "right"
	}
	panic(fmt.Sprintf("route: invalid direction %d", int(d)))
}

// Axis returns the axis d travels along.
func (d Direction) Axis() Axis {
	switch d {
	case Up, Down:
		return Vertical
	case Left, Right:
		return Horizontal
	}
	panic(fmt.Sprintf("route: invalid direction %d", int(d)))
}

// Unit returns the screen-space unit vector of d (y grows downward).
func (d Direction) Unit() orb.Point {
	switch d {
	case Up:
		return orb.Point{0, -1}
	case Down:
		return orb.Point{0, 1}
	case Left:
		return orb.Point{-1, 0}
	case Right:
		return orb.Point{1, 0}
	}
	panic(fmt.Sprintf("route: invalid direction %d", int(d)))
}

// TurnLeft returns the heading after a left turn from d.
func (d Direction) TurnLeft() Direction {
	switch d {
	case Up:
		return Left
	case Left:
		return Down
	case Down:
		return Right
	case Right:
		return Up
	}
	panic(fmt.Sprintf("route: invalid direction %d", int(d)))
}

// TurnRight returns the heading after a right turn from d.
func (d Direction) TurnRight() Direction {
	switch d {
	case Up:
		return Right
	case Right:
		return Down
	case Down:
		return Left
	case Left:
		return Up
	}
	panic(fmt.Sprintf("route: invalid direction %d", int(d)))
}

// Opposite returns the heading pointing the other way along d's axis.
func (d Direction) Opposite() Direction {
	return d.TurnLeft().TurnLeft()
}

// MarshalText implements encoding.TextMarshaler.
func (d Direction) MarshalText() ([]byte, error) {
	if d < Up || d > Right {
		return nil, errors.Errorf("invalid direction %d", int(d))
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Direction) UnmarshalText(text []byte) error {
	v, err := ParseDirection(string(text))
	if err != nil {
		return err
	}
	*d = v
	return nil
}

// ParseDirection parses the lower-case name of a Direction.
func ParseDirection(s string) (Direction, error) {
	for _, d := range Directions() {
		if d.String() == s {
			return d, nil
		}
	}
	return 0, errors.Errorf("unknown direction %q", s)
}

// Route is a vehicle's turn choice relative to its own heading.
type Route int

const (
	TurnLeft Route = iota
	Straight
	TurnRight
)

// Routes lists every Route in declaration order.
func Routes() []Route { return []Route{TurnLeft, Straight, TurnRight} }

func (r Route) String() string {
	switch r {
	case TurnLeft:
		return "left"
	case Straight:
		return "straight"
	case TurnRight:
		return "right"
	}
	panic(fmt.Sprintf("route: invalid route %d", int(r)))
}

// Apply returns the heading a vehicle entering with d leaves the
// intersection with.
func (r Route) Apply(d Direction) Direction {
	switch r {
	case TurnLeft:
		return d.TurnLeft()
	case Straight:
		return d
	case TurnRight:
		return d.TurnRight()
	}
	panic(fmt.Sprintf("route: invalid route %d", int(r)))
}

// slot is the lane position within a road half, counted from the center
// line outward: left turners use the innermost lane, right turners the
// outermost.
func (r Route) slot() int {
	switch r {
	case TurnLeft:
		return 0
	case Straight:
		return 1
	case TurnRight:
		return 2
	}
	panic(fmt.Sprintf("route: invalid route %d", int(r)))
}

// MarshalText implements encoding.TextMarshaler.
func (r Route) MarshalText() ([]byte, error) {
	if r < TurnLeft || r > TurnRight {
		return nil, errors.Errorf("invalid route %d", int(r))
	}
	return []byte(r.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (r *Route) UnmarshalText(text []byte) error {
	v, err := ParseRoute(string(text))
	if err != nil {
		return err
	}
	*r = v
	return nil
}

// ParseRoute parses the lower-case name of a Route.
func ParseRoute(s string) (Route, error) {
	for _, r := range Routes() {
		if r.String() == s {
			return r, nil
		}
	}
	return 0, errors.Errorf("unknown route %q", s)
}
