// Package pkg provides the core libraries for sortviz, a paced sorting
// visualizer.
//
// # Overview
//
// sortviz animates six comparison sorts over a bar chart of random integers.
// Each sort runs in the background, pausing at fixed points so a renderer can
// draw the array and the indices it is currently touching. The pkg directory
// is organized into three areas:
//
//  1. Domain logic ([source], [sorting], [visual])
//  2. Orchestration ([controller], [server])
//  3. Shared infrastructure ([errors], [observability], [buildinfo])
//
// # Architecture
//
// The typical data flow through sortviz:
//
//	seeded generator
//	         ↓
//	    [source] package (bounded random bar heights)
//	         ↓
//	    [controller] package (base array, run lifecycle, pacing)
//	         ↓
//	    [sorting] package (instrumented algorithm mutating the bars)
//	         ↓
//	    [visual] package (highlight state + immutable frames)
//	         ↓
//	terminal bars or JSON over HTTP
//
// # Quick Start
//
// Sort a random array at full speed and inspect the result:
//
//	ctrl, _ := controller.New(controller.Options{
//	    Size:     50,
//	    MaxValue: 100,
//	    Unit:     -1, // no pacing
//	})
//	run, _ := ctrl.StartSort(ctx, "quick")
//	ctrl.Wait()
//	res, _ := ctrl.LastRun()
//	fmt.Println(run, res.Emits, res.Duration)
//
// # Main Packages
//
// [source] - Seeded random array generation. The same seed always yields the
// same base array.
//
// [sorting] - Selection, insertion, bubble, merge, quick and heap sort, each
// emitting highlights and pausing at the points a viewer should see.
//
// [visual] - The shared bar array, the highlight record and the [visual.Frame]
// snapshots renderers read without holding locks.
//
// [controller] - Owns the base array and at most one running sort. Handles
// randomize, reset, start, cancel and speed changes.
//
// [server] - JSON control surface over a controller, routed with chi.
//
// [errors] - Coded errors shared by the CLI and the HTTP layer.
//
// [observability] - Optional hooks for array generation, sort runs and
// requests.
//
// # Testing
//
// Run tests:
//
//	go test ./...                        # All tests
//	go test ./pkg/sorting/...            # Specific package
//	go test ./internal/cli -update       # Regenerate golden files
//
// [source]: https://pkg.go.dev/github.com/matzehuels/sortviz/pkg/source
// [sorting]: https://pkg.go.dev/github.com/matzehuels/sortviz/pkg/sorting
// [visual]: https://pkg.go.dev/github.com/matzehuels/sortviz/pkg/visual
// [visual.Frame]: https://pkg.go.dev/github.com/matzehuels/sortviz/pkg/visual#Frame
// [controller]: https://pkg.go.dev/github.com/matzehuels/sortviz/pkg/controller
// [server]: https://pkg.go.dev/github.com/matzehuels/sortviz/pkg/server
// [errors]: https://pkg.go.dev/github.com/matzehuels/sortviz/pkg/errors
// [observability]: https://pkg.go.dev/github.com/matzehuels/sortviz/pkg/observability
// [buildinfo]: https://pkg.go.dev/github.com/matzehuels/sortviz/pkg/buildinfo
package pkg
