// Command smart-road reads a SimulationInput JSON from a file argument (or stdin),
// runs the intersection simulation, and writes the SimulationLog JSON to stdout.
//
// With -geojson it instead writes the compiled lane paths as a GeoJSON
// FeatureCollection and exits. With -snapshot FILE it also writes the
// vehicles still active at the end of the run to FILE as GeoJSON points.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/pkg/errors"

	"github.com/HADrawer/SMART-ROAD/internal/engine"
	"github.com/HADrawer/SMART-ROAD/internal/export"
	"github.com/HADrawer/SMART-ROAD/internal/vehicle"
)

var (
	geojsonFlag  = flag.Bool("geojson", false, "Write the compiled paths as GeoJSON and exit")
	statsFlag    = flag.Bool("stats", false, "Print a statistics summary to stderr after the run")
	debugFlag    = flag.Bool("debug", false, "Log simulation events to stderr")
	snapshotFlag = flag.String("snapshot", "", "Write the final vehicle positions as GeoJSON to this file")
)

func main() {
	flag.Parse()

	if *geojsonFlag {
		b, err := export.Marshal(export.PathsFeatureCollection())
		if err != nil {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
			os.Exit(1)
		}
		fmt.Println(string(b))
		return
	}

	var (
		data []byte
		err  error
	)

	if flag.NArg() > 0 {
		data, err = os.ReadFile(flag.Arg(0))
	} else {
		data, err = io.ReadAll(os.Stdin)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "error reading input: %v\n", err)
		os.Exit(1)
	}

	var input engine.SimulationInput
	if err := json.Unmarshal(data, &input); err != nil {
		fmt.Fprintf(os.Stderr, "error parsing input: %v\n", err)
		os.Exit(1)
	}

	level := slog.LevelWarn
	if *debugFlag {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

	out, err := engine.Run(input, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "simulation error: %v\n", err)
		os.Exit(1)
	}

	result, err := json.Marshal(out)
	if err != nil {
		fmt.Fprintf(os.Stderr, "error encoding output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(result))

	if *snapshotFlag != "" {
		if err := writeSnapshot(*snapshotFlag, out); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
	}

	if *statsFlag {
		if _, err := out.Stats.WriteTo(os.Stderr); err != nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
		}
	}
}

// writeSnapshot writes the vehicles of the last log row to path as a GeoJSON
// FeatureCollection.
func writeSnapshot(path string, out engine.SimulationLog) error {
	var snap vehicle.Snapshot
	if n := len(out.Output); n > 0 {
		snap = out.Output[n-1].Snapshot()
	}
	b, err := export.Marshal(export.SnapshotFeatureCollection(snap))
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, b, 0o644); err != nil {
		return errors.Wrapf(err, "can't write snapshot to %s", path)
	}
	return nil
}
