// Package pipeline runs the full pgraph workflow: load a problem file,
// compile and reduce it, solve, and render the result. Centralizing the
// stages here keeps the CLI and the HTTP API behaving identically,
// including what gets cached between runs.
//
// # Stages
//
//  1. Load: read and compile a problem document from a file, stdin, or URL
//  2. Reduce: compute the maximal structure (the feasible unit universe)
//  3. Solve: run the branch-and-bound search with the configured bound
//  4. Render: draw the network with the best solution highlighted
//
// Each stage can be run independently or as part of [Runner.Execute].
//
// # Usage
//
//	runner := pipeline.NewRunner(cache, nil, logger)
//	result, err := runner.Execute(ctx, pipeline.Options{
//	    Source:       "plant.json",
//	    MaxSolutions: 5,
//	})
//	if err != nil {
//	    return err
//	}
//	best := result.Solutions[0]
package pipeline

import (
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pgraphlab/pgraph/pkg/archive"
	"github.com/pgraphlab/pgraph/pkg/cache"
	pkgio "github.com/pgraphlab/pgraph/pkg/io"
	"github.com/pgraphlab/pgraph/pkg/pns"
	"github.com/pgraphlab/pgraph/pkg/pns/bnb"
)

// Bound names selectable through [Options.Bound].
const (
	// BoundAdditive sums the costs of included units. Exact at leaves,
	// admissible below, and cheap.
	BoundAdditive = "additive"

	// BoundFlow solves a linear flow relaxation per subproblem. Tighter
	// than additive on networks where unit activity matters, at the
	// price of an LP solve per bound call.
	BoundFlow = "flow"
)

// ValidBounds is the set of selectable bounding functions.
var ValidBounds = map[string]bool{
	BoundAdditive: true,
	BoundFlow:     true,
}

// Render format constants.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
	FormatPNG = "png"
	FormatPDF = "pdf"
)

// ValidFormats is the set of supported render formats.
var ValidFormats = map[string]bool{
	FormatDOT: true,
	FormatSVG: true,
	FormatPNG: true,
	FormatPDF: true,
}

// DefaultMaxSolutions is how many solutions a pipeline run retains when
// the caller does not say. The CLI default favors showing alternatives
// over the engine's single-best default.
const DefaultMaxSolutions = 5

// Options configures a pipeline run. The struct serializes to JSON for
// API requests; runtime-only fields are excluded.
type Options struct {
	// Load options
	Source  string `json:"source"`
	Format  string `json:"format,omitempty"`
	Refresh bool   `json:"refresh,omitempty"`

	// Solve options
	Bound        string        `json:"bound,omitempty"`
	MinActivity  float64       `json:"min_activity,omitempty"`
	MaxSolutions int           `json:"max_solutions,omitempty"`
	Strategy     string        `json:"strategy,omitempty"`
	Workers      int           `json:"workers,omitempty"`
	TimeLimit    time.Duration `json:"time_limit,omitempty"`

	// Render options
	Formats []string `json:"formats,omitempty"`

	// Runtime options (not serialized)
	Logger *log.Logger   `json:"-"`
	Store  archive.Store `json:"-"` // optional run archive

	validated bool `json:"-"`
}

// Result contains the outputs of a pipeline run.
type Result struct {
	// Document is the loaded problem document.
	Document *pkgio.Document

	// Model is the compiled problem with its cost and demand tables.
	Model *pkgio.Model

	// ProblemHash is the content fingerprint of the document.
	ProblemHash string

	// Structure is the maximal structure, the universe the solve
	// searched in. Empty means the problem has no solution.
	Structure *pns.Set[*pns.Unit]

	// Solutions are the retained solutions, best first.
	Solutions []archive.Solution

	// SolveStats are the search counters, zero when the solve stage
	// came from cache.
	SolveStats bnb.Stats

	// RunID is the archive ID when the run was persisted.
	RunID string

	// Artifacts contains rendered outputs keyed by format.
	Artifacts map[string][]byte

	// Stats contains per-stage timing.
	Stats Stats

	// CacheInfo tracks which stages hit the cache.
	CacheInfo CacheInfo
}

// ReducedDocument returns the problem document restricted to the
// maximal structure: units outside it are dropped, along with the
// materials nothing left touches. Exclusion groups shrink with their
// units and disappear below two members. It requires the reduce stage
// to have run.
func (res *Result) ReducedDocument() (*pkgio.Document, error) {
	if res.Document == nil || res.Structure == nil {
		return nil, fmt.Errorf("no maximal structure: run the reduce stage first")
	}

	keep := make(map[string]bool, res.Structure.Len())
	for _, name := range res.Structure.Names() {
		keep[name] = true
	}

	doc := &pkgio.Document{Name: res.Document.Name}
	touched := make(map[string]bool)
	for _, u := range res.Document.Units {
		if !keep[u.Name] {
			continue
		}
		doc.Units = append(doc.Units, u)
		for _, name := range u.Inputs {
			touched[name] = true
		}
		for _, name := range u.Outputs {
			touched[name] = true
		}
	}
	for _, m := range res.Document.Materials {
		if touched[m.Name] {
			doc.Materials = append(doc.Materials, m)
		}
	}
	for _, group := range res.Document.Exclusions {
		var left []string
		for _, name := range group {
			if keep[name] {
				left = append(left, name)
			}
		}
		if len(left) >= 2 {
			doc.Exclusions = append(doc.Exclusions, left)
		}
	}
	return doc, nil
}

// Stats contains pipeline execution timing.
type Stats struct {
	LoadTime   time.Duration
	ReduceTime time.Duration
	SolveTime  time.Duration
	RenderTime time.Duration
}

// CacheInfo tracks cache hits for each cached pipeline stage.
type CacheInfo struct {
	ReduceHit bool // maximal structure came from cache
	SolveHit  bool // solutions came from cache
}

// ValidateFormat checks that a render format is valid.
func ValidateFormat(format string) error {
	if !ValidFormats[format] {
		return fmt.Errorf("invalid format: %q (must be one of: dot, svg, png, pdf)", format)
	}
	return nil
}

// ValidateBound checks that a bound name is valid.
func ValidateBound(bound string) error {
	if !ValidBounds[bound] {
		return fmt.Errorf("invalid bound: %q (must be one of: additive, flow)", bound)
	}
	return nil
}

// ValidateAndSetDefaults checks required fields and applies defaults.
// It is idempotent: calling it again after success is a no-op.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.Bound == "" {
		o.Bound = BoundAdditive
	}
	if err := ValidateBound(o.Bound); err != nil {
		return err
	}
	if o.MinActivity < 0 {
		return fmt.Errorf("min_activity must not be negative")
	}
	if o.MinActivity > 0 && o.Bound != BoundFlow {
		return fmt.Errorf("min_activity requires the flow bound")
	}
	if o.MaxSolutions == 0 {
		o.MaxSolutions = DefaultMaxSolutions
	}
	if o.Strategy != "" && !bnb.ValidStrategies[bnb.Strategy(o.Strategy)] {
		return fmt.Errorf("invalid strategy: %q (must be one of: ordered, lifo, recursive)", o.Strategy)
	}
	if o.Workers < 0 {
		return fmt.Errorf("workers must not be negative")
	}

	for _, f := range o.Formats {
		if err := ValidateFormat(f); err != nil {
			return err
		}
	}

	if o.Logger == nil {
		o.Logger = log.NewWithOptions(io.Discard, log.Options{})
	}

	o.validated = true
	return nil
}

// solverOptions translates pipeline options into engine options.
func (o *Options) solverOptions() bnb.Options {
	return bnb.Options{
		MaxSolutions: o.MaxSolutions,
		Strategy:     bnb.Strategy(o.Strategy),
		Workers:      o.Workers,
		TimeLimit:    o.TimeLimit,
	}
}

// solveKeyOpts returns the cache key options for the solve stage.
// Strategy and workers are omitted on purpose: they change how fast the
// answer arrives, not what it is.
func (o *Options) solveKeyOpts() cache.SolveKeyOpts {
	return cache.SolveKeyOpts{
		MaxSolutions: o.MaxSolutions,
		Bound:        o.Bound,
		MinActivity:  o.MinActivity,
	}
}

// archiveOptions returns the solve parameters recorded with an archived
// run.
func (o *Options) archiveOptions() archive.Options {
	return archive.Options{
		MaxSolutions: o.MaxSolutions,
		Strategy:     o.Strategy,
		Workers:      o.Workers,
		TimeLimit:    o.TimeLimit,
		Bound:        o.Bound,
		MinActivity:  o.MinActivity,
	}
}
