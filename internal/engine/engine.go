// Package engine implements the intersection simulation loop.
//
// The simulation advances in ticks. Each tick has two passes:
//
//  1. Snapshot pass - the state of every active vehicle is copied into a
//     frozen Snapshot before anything moves.
//
//  2. Motion pass - every vehicle updates against that snapshot with itself
//     left out by index, so the order vehicles are updated in never changes
//     what any of them sees.
//
// Vehicles that have left the playfield are removed only after the motion
// pass has finished for every vehicle.
package engine

import (
	"io"
	"log/slog"
	"math"
	"runtime"
	"sync"

	"github.com/google/uuid"

	"github.com/HADrawer/SMART-ROAD/internal/kinematics"
	"github.com/HADrawer/SMART-ROAD/internal/route"
	"github.com/HADrawer/SMART-ROAD/internal/spawn"
	"github.com/HADrawer/SMART-ROAD/internal/stats"
	"github.com/HADrawer/SMART-ROAD/internal/vehicle"
)

// parallelMin is the fleet size below which a parallel tick runs inline.
const parallelMin = 64

// Sim owns the active vehicles and everything that feeds or reads them.
// It is not safe for concurrent use.
type Sim struct {
	cfg      Config
	spawner  *spawn.Spawner
	stats    *stats.Collector
	vehicles []*vehicle.Vehicle
	level    kinematics.VelocityLevel
	now      float64
	rejected int
	log      *slog.Logger
}

// NewSim builds an empty simulation. A nil logger discards log output.
func NewSim(cfg Config, logger *slog.Logger) *Sim {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if cfg.MaxTickDt <= 0 {
		cfg.MaxTickDt = DefaultConfig().MaxTickDt
	}
	if cfg.Acceleration <= 0 {
		cfg.Acceleration = kinematics.DefaultAcceleration
	}
	if cfg.Clearance <= 0 {
		cfg.Clearance = spawn.DefaultClearance
	}

	opts := []spawn.Option{
		spawn.WithClearance(cfg.Clearance),
		spawn.WithCooldown(cfg.Cooldown),
		spawn.WithSeed(cfg.Seed),
		spawn.WithModel(kinematics.ConstantAcceleration{Rate: cfg.Acceleration}),
	}
	if cfg.RunID != "" {
		opts = append(opts, spawn.WithNamespace(uuid.NewSHA1(uuid.NameSpaceOID, []byte(cfg.RunID))))
	}

	return &Sim{
		cfg:     cfg,
		spawner: spawn.New(opts...),
		stats:   stats.NewCollector(),
		level:   cfg.Level,
		log:     logger,
	}
}

// Tick advances the simulation by one frame of dt seconds, clamped to
// Config.MaxTickDt. Non-positive dt does nothing. It returns the summaries of
// vehicles removed this tick.
func (s *Sim) Tick(dt float64) []vehicle.Summary {
	if dt <= 0 {
		return nil
	}
	dt = math.Min(dt, s.cfg.MaxTickDt)

	snap := s.Snapshot()
	s.updateAll(dt, snap)

	s.now += dt
	s.stats.Advance(dt)
	return s.removeFinished()
}

// Advance simulates dt seconds in as many ticks of at most
// Config.MaxTickDt as needed, so no simulated time is dropped.
func (s *Sim) Advance(dt float64) []vehicle.Summary {
	var removed []vehicle.Summary
	for dt > 1e-12 {
		step := math.Min(dt, s.cfg.MaxTickDt)
		removed = append(removed, s.Tick(step)...)
		dt -= step
	}
	return removed
}

func (s *Sim) updateAll(dt float64, snap vehicle.Snapshot) {
	n := len(s.vehicles)
	if !s.cfg.Parallel || n < parallelMin {
		for i, v := range s.vehicles {
			v.Update(dt, snap.Without(i))
		}
		return
	}

	// Each vehicle writes only to itself and reads only the frozen snapshot.
	workers := runtime.GOMAXPROCS(0)
	chunk := (n + workers - 1) / workers
	var wg sync.WaitGroup
	for lo := 0; lo < n; lo += chunk {
		hi := min(lo+chunk, n)
		wg.Go(func() {
			for i := lo; i < hi; i++ {
				s.vehicles[i].Update(dt, snap.Without(i))
			}
		})
	}
	wg.Wait()
}

func (s *Sim) removeFinished() []vehicle.Summary {
	var removed []vehicle.Summary
	kept := s.vehicles[:0]
	for _, v := range s.vehicles {
		if !v.OutOfBounds() && !v.Done() {
			kept = append(kept, v)
			continue
		}
		sum := v.Summary()
		s.stats.RecordExit(sum)
		removed = append(removed, sum)
		s.log.Debug("vehicle removed",
			"id", v.ID,
			"direction", v.Direction,
			"route", v.Route,
			"distance", sum.Distance,
			"time_alive", sum.TimeAlive,
		)
	}
	clear(s.vehicles[len(kept):])
	s.vehicles = kept
	return removed
}

// Spawn admits a vehicle entering with d on route r.
func (s *Sim) Spawn(d route.Direction, r route.Route, tag string) (*vehicle.Vehicle, error) {
	v, err := s.spawner.Spawn(s.now, d, r, tag, s.level, s.Snapshot())
	return s.admit(v, err)
}

// SpawnRandom admits a vehicle with a random direction and route.
func (s *Sim) SpawnRandom() (*vehicle.Vehicle, error) {
	v, err := s.spawner.SpawnRandom(s.now, s.level, s.Snapshot())
	return s.admit(v, err)
}

// SpawnFrom admits a vehicle entering with d on a random route.
func (s *Sim) SpawnFrom(d route.Direction) (*vehicle.Vehicle, error) {
	v, err := s.spawner.SpawnFrom(s.now, d, s.level, s.Snapshot())
	return s.admit(v, err)
}

func (s *Sim) admit(v *vehicle.Vehicle, err error) (*vehicle.Vehicle, error) {
	if err != nil {
		s.rejected++
		s.log.Debug("spawn rejected", "t", s.now, "err", err)
		return nil, err
	}
	s.vehicles = append(s.vehicles, v)
	s.stats.RecordSpawn(v.Direction, v.Route)
	s.log.Debug("vehicle spawned",
		"id", v.ID,
		"t", s.now,
		"direction", v.Direction,
		"route", v.Route,
		"tag", v.Tag,
	)
	return v, nil
}

// SetVelocityLevel changes the baseline speed tier of every active vehicle
// and of vehicles spawned afterwards.
func (s *Sim) SetVelocityLevel(l kinematics.VelocityLevel) {
	s.level = l
	for _, v := range s.vehicles {
		v.SetVelocityLevel(l)
	}
	s.log.Info("velocity level changed", "level", l, "t", s.now)
}

// Snapshot returns the current state of every active vehicle.
func (s *Sim) Snapshot() vehicle.Snapshot {
	snap := make(vehicle.Snapshot, len(s.vehicles))
	for i, v := range s.vehicles {
		snap[i] = v.State()
	}
	return snap
}

// Logs returns a log record for every active vehicle.
func (s *Sim) Logs() []vehicle.Log {
	logs := make([]vehicle.Log, len(s.vehicles))
	for i, v := range s.vehicles {
		logs[i] = v.GetLog()
	}
	return logs
}

func (s *Sim) Stats() stats.Report { return s.stats.Report() }
func (s *Sim) Now() float64 { return s.now }
func (s *Sim) Len() int { return len(s.vehicles) }
func (s *Sim) Level() kinematics.VelocityLevel { return s.level }
func (s *Sim) Rejected() int { return s.rejected }
