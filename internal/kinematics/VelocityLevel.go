package kinematics

import (
	"fmt"

	"github.com/pkg/errors"
)

// VelocityLevel is a vehicle's baseline speed tier when nothing is in its way.
type VelocityLevel int

const (
	Slow VelocityLevel = iota
	Medium
	Fast
)

// ReducedSpeed is the crawl speed (px/s) a vehicle drops to when a peer
// ahead is inside the safety distance.
const ReducedSpeed = 40.0

// Levels lists every VelocityLevel from slowest to fastest.
func Levels() []VelocityLevel { return []VelocityLevel{Slow, Medium, Fast} }

// Speed returns the cruise speed of the tier in px/s.
func (l VelocityLevel) Speed() float64 {
	switch l {
	case Slow:
		return 60
	case Medium:
		return 120
	case Fast:
		return 180
	}
	panic(fmt.Sprintf("kinematics: invalid velocity level %d", int(l)))
}

func (l VelocityLevel) String() string {
	switch l {
	case Slow:
		return "slow"
	case Medium:
		return "medium"
	case Fast:
		return "fast"
	}
	panic(fmt.Sprintf("kinematics: invalid velocity level %d", int(l)))
}

// MarshalText implements encoding.TextMarshaler.
func (l VelocityLevel) MarshalText() ([]byte, error) {
	if l < Slow || l > Fast {
		return nil, errors.Errorf("invalid velocity level %d", int(l))
	}
	return []byte(l.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (l *VelocityLevel) UnmarshalText(text []byte) error {
	v, err := ParseVelocityLevel(string(text))
	if err != nil {
		return err
	}
	*l = v
	return nil
}

// ParseVelocityLevel parses "slow", "medium" or "fast".
func ParseVelocityLevel(s string) (VelocityLevel, error) {
	for _, l := range Levels() {
		if l.String() == s {
			return l, nil
		}
	}
	return 0, errors.Errorf("unknown velocity level %q", s)
}
