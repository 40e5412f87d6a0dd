package engine

import (
	"encoding/json"
	"log/slog"
	"math"
	"sort"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Run executes a batch simulation described by input and returns the full
// per-step log. A nil logger discards log output.
func Run(input SimulationInput, logger *slog.Logger) (SimulationLog, error) {
	if err := input.validate(); err != nil {
		return SimulationLog{}, errors.Wrap(err, "invalid simulation input")
	}
	meta := input.Meta
	if meta.SimulationID == "" {
		meta.SimulationID = uuid.NewString()
	}

	cfg := DefaultConfig()
	cfg.Parallel = input.Parallel
	cfg.Cooldown = input.Cooldown
	cfg.RunID = meta.SimulationID
	if input.VelocityLevel != nil {
		cfg.Level = *input.VelocityLevel
	}
	if input.RandomSpawn != nil && input.RandomSpawn.Seed != 0 {
		cfg.Seed = input.RandomSpawn.Seed
	}
	if logger != nil {
		logger = logger.With("simulation_id", meta.SimulationID)
	}
	sim := NewSim(cfg, logger)

	spawns := append([]SpawnEvent(nil), input.Spawns...)
	sort.SliceStable(spawns, func(i, j int) bool { return spawns[i].Time < spawns[j].Time })
	changes := append([]LevelChange(nil), input.LevelChanges...)
	sort.SliceStable(changes, func(i, j int) bool { return changes[i].Time < changes[j].Time })

	out := SimulationLog{Meta: meta}
	nextRandom := math.Inf(1)
	if input.RandomSpawn != nil {
		nextRandom = 0
	}

	steps := int(math.Floor(meta.RunTime/meta.TimeStep + 1e-9))
	for i := 0; i <= steps; i++ {
		ts := float64(i) * meta.TimeStep

		for len(changes) > 0 && changes[0].Time <= ts {
			sim.SetVelocityLevel(changes[0].Level)
			changes = changes[1:]
		}
		for len(spawns) > 0 && spawns[0].Time <= ts {
			ev := spawns[0]
			spawns = spawns[1:]
			_, _ = sim.Spawn(ev.Direction, ev.Route, ev.Tag)
		}
		for nextRandom <= ts {
			_, _ = sim.SpawnRandom()
			nextRandom += input.RandomSpawn.Interval
		}

		out.Output = append(out.Output, SimulationLogRow{
			Timestamp: ts,
			Vehicles:  sim.Logs(),
		})
		if i < steps {
			out.Removed = append(out.Removed, sim.Advance(meta.TimeStep)...)
		}
	}

	out.Stats = sim.Stats()
	out.RejectedSpawns = sim.Rejected()
	sim.log.Info("simulation finished",
		"run_time", meta.RunTime,
		"vehicles", out.Stats.TotalVehicles,
		"completed", out.Stats.Completed,
		"rejected", out.RejectedSpawns,
	)
	return out, nil
}

func (in SimulationInput) validate() error {
	m := in.Meta
	if m.TimeStep <= 0 {
		return errors.Errorf("time_step must be positive, got %v", m.TimeStep)
	}
	if m.RunTime < 0 {
		return errors.Errorf("run_time must not be negative, got %v", m.RunTime)
	}
	for i, ev := range in.Spawns {
		if ev.Time < 0 {
			return errors.Errorf("spawns[%d]: time must not be negative, got %v", i, ev.Time)
		}
	}
	for i, lc := range in.LevelChanges {
		if lc.Time < 0 {
			return errors.Errorf("level_changes[%d]: time must not be negative, got %v", i, lc.Time)
		}
	}
	if in.RandomSpawn != nil && in.RandomSpawn.Interval <= 0 {
		return errors.Errorf("random_spawn.interval must be positive, got %v", in.RandomSpawn.Interval)
	}
	if in.Cooldown < 0 {
		return errors.Errorf("cooldown must not be negative, got %v", in.Cooldown)
	}
	return nil
}

// RunJSON runs a simulation from a JSON-encoded SimulationInput and returns
// the JSON-encoded SimulationLog.
func RunJSON(jsonInput string) (string, error) {
	var input SimulationInput
	if err := json.Unmarshal([]byte(jsonInput), &input); err != nil {
		return "", errors.Wrap(err, "failed to parse input")
	}

	out, err := Run(input, nil)
	if err != nil {
		return "", err
	}

	result, err := json.Marshal(out)
	if err != nil {
		return "", errors.Wrap(err, "failed to marshal output")
	}
	return string(result), nil
}
