package engine

import (
	"github.com/HADrawer/SMART-ROAD/internal/kinematics"
	"github.com/HADrawer/SMART-ROAD/internal/route"
	"github.com/HADrawer/SMART-ROAD/internal/stats"
	"github.com/HADrawer/SMART-ROAD/internal/vehicle"
)

// SimulationMeta holds the identity and timing parameters for a simulation run.
type SimulationMeta struct {
	SimulationID string  `json:"simulation_id"`
	RunTime      float64 `json:"run_time"`  // seconds
	TimeStep     float64 `json:"time_step"` // seconds
}

// SpawnEvent requests a vehicle at a point in simulated time.
type SpawnEvent struct {
	Time      float64         `json:"time"` // seconds
	Direction route.Direction `json:"direction"`
	Route     route.Route     `json:"route"`
	Tag       string          `json:"tag,omitempty"`
}

// LevelChange switches the global velocity level at a point in simulated time.
type LevelChange struct {
	Time  float64                  `json:"time"` // seconds
	Level kinematics.VelocityLevel `json:"level"`
}

// RandomSpawn requests a random vehicle every Interval seconds.
type RandomSpawn struct {
	Interval float64 `json:"interval"` // seconds
	Seed     uint64  `json:"seed,omitempty"`
}

// SimulationInput is the JSON-serialisable input to the engine.
type SimulationInput struct {
	Meta          SimulationMeta            `json:"simulation_meta"`
	VelocityLevel *kinematics.VelocityLevel `json:"velocity_level,omitempty"` // default medium
	Spawns        []SpawnEvent              `json:"spawns,omitempty"`
	LevelChanges  []LevelChange             `json:"level_changes,omitempty"`
	RandomSpawn   *RandomSpawn              `json:"random_spawn,omitempty"`
	Cooldown      float64                   `json:"cooldown,omitempty"` // seconds
	Parallel      bool                      `json:"parallel,omitempty"`
}

// SimulationLogRow is the state of all vehicles at a single simulation timestep.
type SimulationLogRow struct {
	Timestamp float64       `json:"timestamp"` // seconds
	Vehicles  []vehicle.Log `json:"vehicles"`
}

// Snapshot returns the vehicles of the row as renderer states.
func (r SimulationLogRow) Snapshot() vehicle.Snapshot {
	snap := make(vehicle.Snapshot, len(r.Vehicles))
	for i, l := range r.Vehicles {
		snap[i] = l.State()
	}
	return snap
}

// SimulationLog is the complete output of a simulation run.
type SimulationLog struct {
	Meta           SimulationMeta     `json:"simulation_meta"`
	Output         []SimulationLogRow `json:"output"`
	Removed        []vehicle.Summary  `json:"removed"`
	Stats          stats.Report       `json:"stats"`
	RejectedSpawns int                `json:"rejected_spawns"`
}
