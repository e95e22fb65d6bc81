// Package pkg provides the core libraries for pgraph process network
// synthesis.
//
// # Overview
//
// pgraph models a production system as a bipartite network of materials
// and operating units, reduces it to the structures that can actually
// work, and searches them for cost-optimal networks. The pkg directory
// is organized into four main areas:
//
//  1. [pns] - Domain logic (problems, structural algorithms, branch and bound)
//  2. [io] - Problem documents and their file formats
//  3. [pipeline] - Orchestration (load → reduce → solve → render)
//  4. [cache], [archive] - Infrastructure (result caching, run storage)
//
// # Architecture
//
// The typical data flow through pgraph:
//
//	Problem file (json/toml/xml/text)
//	         ↓
//	    [io] package (parse, validate, compile)
//	         ↓
//	    [pns] package (maximal structure, feasibility)
//	         ↓
//	    [pns/bnb] + [pns/bound] (branch-and-bound search)
//	         ↓
//	    [render] package (DOT/SVG/PDF/PNG output)
//
// # Quick Start
//
// Load a problem, reduce it, and solve for the cheapest networks:
//
//	import (
//	    "context"
//	    "github.com/pgraphlab/pgraph/pkg/io"
//	    "github.com/pgraphlab/pgraph/pkg/pns"
//	    "github.com/pgraphlab/pgraph/pkg/pns/bnb"
//	    "github.com/pgraphlab/pgraph/pkg/pns/bound"
//	)
//
//	// 1. Load and compile the problem
//	doc, _ := io.Load(context.Background(), "plant.json", io.LoadOptions{})
//	model, _ := doc.Compile()
//
//	// 2. Reduce to the maximal structure
//	msg, _ := pns.MaximalStructure(model.Problem, nil)
//
//	// 3. Search for the best networks
//	solver, _ := bnb.NewABB(model.Problem,
//	    bound.AdditiveCost[*bnb.ABB](model.Costs),
//	    bound.ByValue,
//	    bnb.Options{MaxSolutions: 5})
//	solutions, _ := solver.Solve(context.Background())
//
// # Main Packages
//
// ## Domain Logic
//
// [pns] - The problem model: materials, operating units, and the
// structural algorithms over them. MaximalStructure computes the union
// of every feasible structure; SolutionStructures enumerates them all.
//
// [pns/bnb] - Generic branch-and-bound engine with pluggable subproblem
// types, bounding functions, and exploration strategies (ordered, LIFO,
// recursive) across a configurable worker pool.
//
// [pns/bound] - Bounding functions: additive unit costs and a linear
// flow relaxation with per-unit activity levels.
//
// ## Documents
//
// [io] - Problem documents with json, toml, xml, and text encodings,
// content fingerprinting, and loading from files, URLs, or stdin.
//
// ## Visualization
//
// [render] - Graphviz diagrams of problem networks with solution
// highlighting, plus SVG to PDF/PNG conversion.
//
// ## Infrastructure
//
// [pipeline] - Complete workflow (load → reduce → solve → render) used
// by both the CLI and the HTTP API. Ensures consistent behavior and
// caching across all entry points.
//
// [cache] - Content-addressed result caching with file, Redis, and
// null backends.
//
// [archive] - Solve run storage with in-memory and MongoDB backends.
//
// [httputil] - Cached HTTP fetching for remote problem sources.
//
// [observability] - Hook points for instrumenting the solver, cache,
// and HTTP server.
//
// [errors] - Coded errors shared across the API surface.
//
// [buildinfo] - Version metadata injected at build time.
//
// # Testing
//
// Run tests:
//
//	go test ./pkg/...          # All tests
//	go test ./pkg/pns/...      # Specific package
//	go test -run Example       # Examples only
//
// [pns]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/pns
// [pns/bnb]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/pns/bnb
// [pns/bound]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/pns/bound
// [io]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/io
// [render]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/render
// [pipeline]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/pipeline
// [cache]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/cache
// [archive]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/archive
// [httputil]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/httputil
// [observability]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/observability
// [errors]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/errors
// [buildinfo]: https://pkg.go.dev/github.com/pgraphlab/pgraph/pkg/buildinfo
package pkg
