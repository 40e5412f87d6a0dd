// Package spawn admits new vehicles into the simulation at their entry
// lanes, refusing spawns that would start on top of existing traffic.
package spawn

import (
	"math/rand/v2"
	"strconv"

	"github.com/google/uuid"
	"github.com/paulmach/orb/planar"
	"github.com/pkg/errors"

	"github.com/HADrawer/SMART-ROAD/internal/kinematics"
	"github.com/HADrawer/SMART-ROAD/internal/route"
	"github.com/HADrawer/SMART-ROAD/internal/vehicle"
)

// DefaultClearance is the minimum distance (px) between a new vehicle's
// spawn point and any existing vehicle. It matches the regulator's
// emergency gap so a new vehicle never starts closer than the regulator
// would let it drive.
const DefaultClearance = vehicle.EmergencyDistance

var (
	// ErrBlocked is returned when the spawn point is inside the clearance
	// radius of an existing vehicle.
	ErrBlocked = errors.New("spawn point blocked")
	// ErrCooldown is returned when the same direction spawned too recently.
	ErrCooldown = errors.New("spawn cooldown active")
)

// Tags is the fixed set of appearance tags random spawns draw from.
var Tags = []string{"red", "blue", "green", "yellow", "white", "black"}

// Spawner creates vehicles. It is owned by the simulation loop and is not
// safe for concurrent use.
type Spawner struct {
	clearance float64
	cooldown  float64
	model     kinematics.MotionModel
	rng       *rand.Rand
	namespace uuid.UUID
	seq       uint64
	last      map[route.Direction]float64
}

// Option configures a Spawner.
type Option func(*Spawner)

// WithClearance sets the spawn admission radius in pixels.
func WithClearance(px float64) Option {
	return func(s *Spawner) { s.clearance = px }
}

// WithCooldown sets the minimum time (seconds) between two spawns from the
// same direction. Zero disables the check.
func WithCooldown(seconds float64) Option {
	return func(s *Spawner) { s.cooldown = seconds }
}

// WithSeed seeds the random source used by SpawnRandom.
func WithSeed(seed uint64) Option {
	return func(s *Spawner) { s.rng = rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15)) }
}

// WithModel sets the motion model handed to every spawned vehicle.
func WithModel(m kinematics.MotionModel) Option {
	return func(s *Spawner) { s.model = m }
}

// WithNamespace sets the UUID namespace vehicle IDs are derived from. Two
// spawners with the same namespace hand out the same ID sequence.
func WithNamespace(ns uuid.UUID) Option {
	return func(s *Spawner) { s.namespace = ns }
}

// New returns a Spawner seeded with 1 and using DefaultClearance unless
// opts say otherwise.
func New(opts ...Option) *Spawner {
	s := &Spawner{
		clearance: DefaultClearance,
		model:     kinematics.Default(),
		namespace: uuid.NameSpaceOID,
		last:      make(map[route.Direction]float64),
	}
	WithSeed(1)(s)
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Spawn creates a vehicle entering with d on route r at simulation time now.
// existing is the current snapshot of active vehicles.
func (s *Spawner) Spawn(now float64, d route.Direction, r route.Route, tag string, level kinematics.VelocityLevel, existing vehicle.Snapshot) (*vehicle.Vehicle, error) {
	if s.cooldown > 0 {
		if at, ok := s.last[d]; ok && now-at < s.cooldown {
			return nil, errors.Wrapf(ErrCooldown, "%s: %.2fs since last spawn", d, now-at)
		}
	}

	start := route.Compile(d, r).Start()
	for _, st := range existing {
		if dist := planar.Distance(start, st.Position); dist < s.clearance {
			return nil, errors.Wrapf(ErrBlocked, "%s/%s: vehicle %s is %.1fpx from spawn", d, r, st.ID, dist)
		}
	}

	s.seq++
	id := uuid.NewSHA1(s.namespace, []byte(strconv.FormatUint(s.seq, 10))).String()
	s.last[d] = now
	return vehicle.New(id, d, r, tag, vehicle.WithLevel(level), vehicle.WithModel(s.model)), nil
}

// SpawnRandom spawns a vehicle with a random direction, route and tag.
func (s *Spawner) SpawnRandom(now float64, level kinematics.VelocityLevel, existing vehicle.Snapshot) (*vehicle.Vehicle, error) {
	d := route.Directions()[s.rng.IntN(len(route.Directions()))]
	return s.SpawnFrom(now, d, level, existing)
}

// SpawnFrom spawns a vehicle entering with d on a random route, the way a
// keyboard trigger for one side of the intersection does.
func (s *Spawner) SpawnFrom(now float64, d route.Direction, level kinematics.VelocityLevel, existing vehicle.Snapshot) (*vehicle.Vehicle, error) {
	r := route.Routes()[s.rng.IntN(len(route.Routes()))]
	tag := Tags[s.rng.IntN(len(Tags))]
	return s.Spawn(now, d, r, tag, level, existing)
}
