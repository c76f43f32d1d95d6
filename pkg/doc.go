// Package pkg provides the core libraries of the signup board.
//
// # Overview
//
// A signup board shows, for every day of an event, the games registered on
// each table as bars on an hour-marked timeline. Games on the same table
// that overlap in time are stacked into separate lanes. The pkg directory
// is organized into these areas:
//
//  1. [timeline] - The layout engine (day windows, lanes, hour markers)
//  2. [schedule] - The event model, clocks, rosters and event storage
//  3. [board] - The laid out board that renderers and the API consume
//  4. [render] - Lane charts (SVG/PNG/PDF) and Graphviz conflict graphs
//  5. [pipeline] - Orchestration (load → layout → render) with caching
//  6. [server] - The HTTP API
//
// # Architecture
//
// The typical data flow:
//
//	Event file or store
//	         ↓
//	    [schedule] package (days, tables, games)
//	         ↓
//	    [timeline] package (window + first-fit lanes per table)
//	         ↓
//	    [board] package (placements with game details)
//	         ↓
//	    SVG/PNG/PDF/JSON/DOT output
//
// # Quick Start
//
// Lay out an event and render it:
//
//	import (
//	    "github.com/matzehuels/signupboard/pkg/board"
//	    "github.com/matzehuels/signupboard/pkg/render/lanes"
//	    "github.com/matzehuels/signupboard/pkg/schedule"
//	)
//
//	ev, _ := schedule.ReadFile("spring-con.toml")
//	b, _ := board.Build(ev, board.BuildOptions{ExtensionHours: 2})
//	svg := lanes.RenderSVG(b, lanes.WithLaneHeight(60))
//
// Or let the pipeline handle caching:
//
//	runner := pipeline.NewRunner(st, c, nil, logger)
//	result, _ := runner.Execute(ctx, pipeline.Options{EventID: "spring-con"})
//
// # Supporting Packages
//
//   - [cache] - Board and artifact caching (file, Redis)
//   - [errors] - Error codes shared by the CLI and the API
//   - [observability] - Hooks for layout, cache and HTTP events
//   - [buildinfo] - Version information set at build time
//
// [timeline]: github.com/matzehuels/signupboard/pkg/timeline
// [schedule]: github.com/matzehuels/signupboard/pkg/schedule
// [board]: github.com/matzehuels/signupboard/pkg/board
// [render]: github.com/matzehuels/signupboard/pkg/render
// [pipeline]: github.com/matzehuels/signupboard/pkg/pipeline
// [server]: github.com/matzehuels/signupboard/pkg/server
// [cache]: github.com/matzehuels/signupboard/pkg/cache
// [errors]: github.com/matzehuels/signupboard/pkg/errors
// [observability]: github.com/matzehuels/signupboard/pkg/observability
// [buildinfo]: github.com/matzehuels/signupboard/pkg/buildinfo
package pkg
