package engine

import (
	"github.com/HADrawer/SMART-ROAD/internal/kinematics"
	"github.com/HADrawer/SMART-ROAD/internal/spawn"
)

// Config holds the tunables of a simulation run.
type Config struct {
	// MaxTickDt caps the elapsed time (seconds) a single tick may simulate.
	// Larger steps could carry a vehicle through the safety gap in one move.
	MaxTickDt float64
	// Parallel updates vehicles on multiple goroutines. Results are
	// identical to sequential updates.
	Parallel bool

	Clearance    float64 // px, spawn admission radius
	Cooldown     float64 // seconds between spawns from one direction; 0 = off
	Seed         uint64  // random spawn seed
	Level        kinematics.VelocityLevel
	Acceleration float64 // px/s²

	// RunID, when set, derives vehicle IDs so that reruns reproduce them.
	RunID string
}

// DefaultConfig returns the settings the front-ends use.
func DefaultConfig() Config {
	return Config{
		MaxTickDt:    1.0 / 30,
		Clearance:    spawn.DefaultClearance,
		Seed:         1,
		Level:        kinematics.Medium,
		Acceleration: kinematics.DefaultAcceleration,
	}
}
