// Command viewer runs the intersection simulation live in a terminal.
//
// Arrow keys spawn a vehicle heading that way on a random route, r toggles
// random spawning, 1/2/3 set the global velocity level and q or Esc quits
// and prints the final statistics.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"runtime/debug"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/HADrawer/SMART-ROAD/internal/engine"
	"github.com/HADrawer/SMART-ROAD/internal/kinematics"
	"github.com/HADrawer/SMART-ROAD/internal/route"
)

const (
	frameRate      = time.Second / 60
	randomInterval = 700 * time.Millisecond
)

var (
	debugFlag    = flag.Bool("debug", false, "Write debug log to logs/viewer.log")
	seedFlag     = flag.Uint64("seed", 1, "Seed for random spawns")
	levelFlag    = flag.String("level", "medium", "Initial velocity level: slow, medium, fast")
	parallelFlag = flag.Bool("parallel", false, "Update vehicles on multiple goroutines")
	cooldownFlag = flag.Float64("cooldown", 0.5, "Seconds between spawns from one direction")
)

type viewer struct {
	screen tcell.Screen
	sim    *engine.Sim
	log    *slog.Logger
	random bool
}

func main() {
	flag.Parse()

	level, err := kinematics.ParseVelocityLevel(*levelFlag)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(2)
	}

	logFile, logger := setupLogging(*debugFlag)
	if logFile != nil {
		defer logFile.Close()
	}

	cfg := engine.DefaultConfig()
	cfg.Seed = *seedFlag
	cfg.Level = level
	cfg.Parallel = *parallelFlag
	cfg.Cooldown = *cooldownFlag

	s, err := tcell.NewScreen()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create screen: %v\n", err)
		os.Exit(1)
	}
	if err := s.Init(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to initialize screen: %v\n", err)
		os.Exit(1)
	}
	s.SetStyle(styleDefault)

	defer func() {
		if r := recover(); r != nil {
			s.Fini()
			fmt.Fprintf(os.Stderr, "viewer crashed: %v\n%s\n", r, debug.Stack())
			os.Exit(1)
		}
	}()

	v := &viewer{screen: s, sim: engine.NewSim(cfg, logger), log: logger}
	v.run()
	s.Fini()

	if _, err := v.sim.Stats().WriteTo(os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
	}
}

func (v *viewer) run() {
	events := make(chan tcell.Event, 16)
	quit := make(chan struct{})
	defer close(quit)
	go func() {
		for {
			ev := v.screen.PollEvent()
			if ev == nil {
				return
			}
			select {
			case events <- ev:
			case <-quit:
				return
			}
		}
	}()

	frames := time.NewTicker(frameRate)
	defer frames.Stop()
	spawns := time.NewTicker(randomInterval)
	defer spawns.Stop()

	last := time.Now()
	for {
		select {
		case ev := <-events:
			if !v.handle(ev) {
				return
			}
		case <-spawns.C:
			if v.random {
				_, _ = v.sim.SpawnRandom()
			}
		case now := <-frames.C:
			v.sim.Tick(now.Sub(last).Seconds())
			last = now
			v.render()
		}
	}
}

// handle applies one input event and reports whether the viewer keeps running.
func (v *viewer) handle(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventResize:
		v.screen.Sync()
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyUp:
			v.spawnFrom(route.Up)
		case tcell.KeyDown:
			v.spawnFrom(route.Down)
		case tcell.KeyLeft:
			v.spawnFrom(route.Left)
		case tcell.KeyRight:
			v.spawnFrom(route.Right)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q', 'Q':
				return false
			case 'r', 'R':
				v.random = !v.random
				v.log.Info("random spawning toggled", "on", v.random)
			case '1':
				v.sim.SetVelocityLevel(kinematics.Slow)
			case '2':
				v.sim.SetVelocityLevel(kinematics.Medium)
			case '3':
				v.sim.SetVelocityLevel(kinematics.Fast)
			}
		}
	}
	return true
}

func (v *viewer) spawnFrom(d route.Direction) {
	if _, err := v.sim.SpawnFrom(d); err != nil {
		v.log.Debug("spawn refused", "direction", d, "err", err)
	}
}
