//go:build js && wasm

// Command wasm exposes the intersection simulation to the browser via
// WebAssembly. After loading, it registers two global JavaScript functions:
//
//	runSimulation(jsonString) -> jsonString
//	lanePaths() -> geojsonString
//
// runSimulation takes a JSON-encoded SimulationInput and returns the
// SimulationLog, matching the contract used by the CLI. lanePaths returns the
// compiled lane paths as a GeoJSON FeatureCollection for drawing the roads.
package main

import (
	"syscall/js"

	"github.com/HADrawer/SMART-ROAD/internal/engine"
	"github.com/HADrawer/SMART-ROAD/internal/export"
)

func main() {
	js.Global().Set("runSimulation", js.FuncOf(runSimulation))
	js.Global().Set("lanePaths", js.FuncOf(lanePaths))
	select {} // keep the WASM module alive until the page is closed
}

func runSimulation(_ js.Value, args []js.Value) any {
	if len(args) < 1 {
		return map[string]any{"error": "no input provided"}
	}

	result, err := engine.RunJSON(args[0].String())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return result
}

func lanePaths(_ js.Value, _ []js.Value) any {
	b, err := export.Marshal(export.PathsFeatureCollection())
	if err != nil {
		return map[string]any{"error": err.Error()}
	}
	return string(b)
}
