// Package kinematics defines the MotionModel interface for vehicle speed
// changes, along with built-in implementations and the speed tiers vehicles
// cruise at.
//
// Vehicles never set their speed directly: every tick they ask the model to
// move the current speed toward a target, and the model bounds how far it
// may move in one step.
package kinematics

// MotionModel is the physics contract every kinematics implementation must satisfy.
// Distances are in pixels, speeds in px/s and time in seconds.
type MotionModel interface {
	// Approach returns the speed reached after moving from v toward target
	// for dt seconds. The result never overshoots target and is never negative.
	Approach(v, target, dt float64) float64

	// BrakingDistance returns the minimum distance needed to stop from speed v.
	BrakingDistance(v float64) float64
}
