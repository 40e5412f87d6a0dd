package kinematics

import "math"

// DefaultAcceleration is the speed change rate (px/s²) used when none is configured.
const DefaultAcceleration = 150.0

// ConstantAcceleration implements MotionModel with one symmetric rate for
// speeding up and braking.
type ConstantAcceleration struct {
	Rate float64 `json:"rate"` // px/s²
}

// Default returns the model vehicles use unless configured otherwise.
func Default() ConstantAcceleration {
	return ConstantAcceleration{Rate: DefaultAcceleration}
}

func (c ConstantAcceleration) Approach(v, target, dt float64) float64 {
	target = math.Max(0, target)
	if c.Rate <= 0 {
		return math.Max(0, v)
	}
	step := c.Rate * dt
	switch {
	case v < target:
		v = math.Min(target, v+step)
	case v > target:
		v = math.Max(target, v-step)
	}
	return math.Max(0, v)
}

func (c ConstantAcceleration) BrakingDistance(v float64) float64 {
	if c.Rate <= 0 {
		return math.Inf(1)
	}
	return (v * v) / (2 * c.Rate)
}
