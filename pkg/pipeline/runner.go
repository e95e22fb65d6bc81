package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/charmbracelet/log"

	"github.com/pgraphlab/pgraph/pkg/archive"
	"github.com/pgraphlab/pgraph/pkg/cache"
	"github.com/pgraphlab/pgraph/pkg/httputil"
	pkgio "github.com/pgraphlab/pgraph/pkg/io"
	"github.com/pgraphlab/pgraph/pkg/observability"
	"github.com/pgraphlab/pgraph/pkg/pns"
	"github.com/pgraphlab/pgraph/pkg/pns/bnb"
	"github.com/pgraphlab/pgraph/pkg/pns/bound"
	"github.com/pgraphlab/pgraph/pkg/render"
)

// Runner executes pipeline stages with caching. It is stateless apart
// from the cache, keyer, and logger, so one Runner can serve concurrent
// requests with different options.
type Runner struct {
	Cache  cache.Cache
	Keyer  cache.Keyer
	Logger *log.Logger
}

// NewRunner creates a runner. A nil cache disables caching, a nil keyer
// selects the default key scheme, and a nil logger falls back to
// log.Default.
func NewRunner(c cache.Cache, keyer cache.Keyer, logger *log.Logger) *Runner {
	if c == nil {
		c = cache.NewNullCache()
	}
	if keyer == nil {
		keyer = cache.NewDefaultKeyer()
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Runner{Cache: c, Keyer: keyer, Logger: logger}
}

// Execute runs load → reduce → solve → render and, when opts.Store is
// set, archives the run.
func (r *Runner) Execute(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	r.applyLogger(&opts)

	result, err := r.Load(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("load: %w", err)
	}

	if err := r.Reduce(ctx, result, opts); err != nil {
		return nil, fmt.Errorf("reduce: %w", err)
	}
	if result.Structure.IsEmpty() {
		// Structurally infeasible: nothing to solve, nothing to render
		// beyond the bare network.
		r.Logger.Warn("no feasible structure", "problem", result.Document.Name)
		return result, r.Render(ctx, result, opts)
	}

	if err := r.Solve(ctx, result, opts); err != nil {
		return nil, fmt.Errorf("solve: %w", err)
	}

	if opts.Store != nil {
		run := archive.NewRun(result.Document.Name, result.ProblemHash, opts.archiveOptions())
		run.Solutions = result.Solutions
		run.Stats = result.SolveStats
		if err := opts.Store.Save(ctx, run); err != nil {
			return nil, fmt.Errorf("archive: %w", err)
		}
		result.RunID = run.ID
	}

	return result, r.Render(ctx, result, opts)
}

// Load reads and compiles the problem document, producing a fresh
// Result for the later stages.
func (r *Runner) Load(ctx context.Context, opts Options) (*Result, error) {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	if opts.Source == "" {
		return nil, fmt.Errorf("source is required")
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Solver().OnLoadStart(ctx, opts.Source)

	loadOpts := pkgio.LoadOptions{Format: opts.Format}
	if !opts.Refresh {
		loadOpts.Fetcher = httputil.NewFetcher(r.Cache)
	}
	doc, err := pkgio.Load(ctx, opts.Source, loadOpts)
	if err != nil {
		observability.Solver().OnLoadComplete(ctx, opts.Source, 0, 0, time.Since(start), err)
		return nil, err
	}
	model, err := doc.Compile()
	if err != nil {
		observability.Solver().OnLoadComplete(ctx, opts.Source, 0, 0, time.Since(start), err)
		return nil, err
	}

	result := &Result{
		Document:    doc,
		Model:       model,
		ProblemHash: doc.Fingerprint(),
		Artifacts:   make(map[string][]byte),
	}
	result.Stats.LoadTime = time.Since(start)

	p := model.Problem
	observability.Solver().OnLoadComplete(ctx, opts.Source,
		p.Materials().Len(), p.Units().Len(), result.Stats.LoadTime, nil)
	r.Logger.Info("loaded problem",
		"name", doc.Name,
		"materials", p.Materials().Len(),
		"units", p.Units().Len(),
		"duration", result.Stats.LoadTime)
	return result, nil
}

// Compile prepares a result from an already parsed document, for
// callers like the API server that receive documents in request bodies
// instead of loading them from a source.
func (r *Runner) Compile(doc *pkgio.Document) (*Result, error) {
	model, err := doc.Compile()
	if err != nil {
		return nil, err
	}
	return &Result{
		Document:    doc,
		Model:       model,
		ProblemHash: doc.Fingerprint(),
		Artifacts:   make(map[string][]byte),
	}, nil
}

// Reduce computes the maximal structure for the loaded problem, filling
// result.Structure. Cached by problem fingerprint.
func (r *Runner) Reduce(ctx context.Context, result *Result, opts Options) error {
	start := time.Now()
	observability.Solver().OnReduceStart(ctx, result.ProblemHash)
	defer func() { result.Stats.ReduceTime = time.Since(start) }()

	key := r.Keyer.StructureKey(result.ProblemHash, cache.StructureKeyOpts{})
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			if units, ok := r.unitsByName(result.Model.Problem, data); ok {
				result.Structure = units
				result.CacheInfo.ReduceHit = true
				observability.Solver().OnReduceComplete(ctx, result.ProblemHash,
					units.Len(), time.Since(start), nil)
				return nil
			}
		}
	}

	structure, err := pns.MaximalStructure(result.Model.Problem, nil)
	if err != nil {
		observability.Solver().OnReduceComplete(ctx, result.ProblemHash, 0, time.Since(start), err)
		return err
	}
	result.Structure = structure

	names := structure.Names()
	sort.Strings(names)
	if data, err := json.Marshal(names); err == nil {
		_ = r.Cache.Set(ctx, key, data, cache.TTLStructure)
	}

	observability.Solver().OnReduceComplete(ctx, result.ProblemHash,
		structure.Len(), time.Since(start), nil)
	r.Logger.Info("reduced to maximal structure",
		"units", structure.Len(),
		"of", result.Model.Problem.Units().Len(),
		"duration", result.Stats.ReduceTime)
	return nil
}

// Solve runs the branch-and-bound search, filling result.Solutions.
// Complete solves are cached by fingerprint and solve options; timed-out
// partial results are not.
func (r *Runner) Solve(ctx context.Context, result *Result, opts Options) error {
	if err := opts.ValidateAndSetDefaults(); err != nil {
		return err
	}
	r.applyLogger(&opts)

	start := time.Now()
	observability.Solver().OnSolveStart(ctx, result.ProblemHash, opts.Bound, opts.MaxSolutions)
	defer func() { result.Stats.SolveTime = time.Since(start) }()

	key := r.Keyer.SolveKey(result.ProblemHash, opts.solveKeyOpts())
	if !opts.Refresh {
		if data, hit, err := r.Cache.Get(ctx, key); err == nil && hit {
			var cached []archive.Solution
			if json.Unmarshal(data, &cached) == nil {
				result.Solutions = cached
				result.CacheInfo.SolveHit = true
				observability.Solver().OnSolveComplete(ctx, result.ProblemHash,
					len(cached), time.Since(start), nil)
				return nil
			}
		}
	}

	solver, err := r.newSolver(result.Model, opts)
	if err != nil {
		return err
	}
	solutions, err := solver.Solutions(ctx)
	if err != nil {
		observability.Solver().OnSolveComplete(ctx, result.ProblemHash, 0, time.Since(start), err)
		return err
	}
	result.SolveStats = solver.Stats()
	result.Solutions = toArchiveSolutions(solutions)

	if !result.SolveStats.TimedOut {
		if data, err := json.Marshal(result.Solutions); err == nil {
			_ = r.Cache.Set(ctx, key, data, cache.TTLSolve)
		}
	}

	observability.Solver().OnSolveComplete(ctx, result.ProblemHash,
		len(result.Solutions), time.Since(start), nil)
	r.Logger.Info("solved",
		"solutions", len(result.Solutions),
		"explored", result.SolveStats.Explored,
		"pruned", result.SolveStats.Pruned,
		"duration", result.Stats.SolveTime)
	return nil
}

// Render draws the problem in each requested format, highlighting the
// best solution when one exists. With no formats requested it is a
// no-op, so CLI commands that only print numbers skip graphviz.
func (r *Runner) Render(ctx context.Context, result *Result, opts Options) error {
	if len(opts.Formats) == 0 {
		return nil
	}
	start := time.Now()
	defer func() { result.Stats.RenderTime = time.Since(start) }()

	renderOpts := render.Options{Costs: result.Model.Costs}
	if len(result.Solutions) > 0 {
		renderOpts.Highlight = r.solutionUnits(result.Model.Problem, result.Solutions[0])
	}

	for _, format := range opts.Formats {
		data, err := render.Render(ctx, result.Model.Problem, format, renderOpts)
		if err != nil {
			return err
		}
		result.Artifacts[format] = data
	}

	r.Logger.Info("rendered outputs",
		"formats", opts.Formats,
		"duration", result.Stats.RenderTime)
	return nil
}

// newSolver assembles the ABB solver with the configured bound.
func (r *Runner) newSolver(model *pkgio.Model, opts Options) (*bnb.Solver[*bnb.ABB, bound.Network], error) {
	var bf bnb.BoundFunc[*bnb.ABB, bound.Network]
	switch opts.Bound {
	case BoundFlow:
		bf = bound.FlowCost[*bnb.ABB](model.Costs, model.Demands)
		if opts.MinActivity > 0 {
			bf = bound.MinActivity(bf, opts.MinActivity)
		}
	default:
		bf = bound.AdditiveCost[*bnb.ABB](model.Costs)
	}
	return bnb.NewABB(model.Problem, bf, bound.ByValue, opts.solverOptions())
}

// unitsByName decodes a cached name list back into a unit set. A name
// that no longer resolves invalidates the entry.
func (r *Runner) unitsByName(p *pns.Problem, data []byte) (*pns.Set[*pns.Unit], bool) {
	var names []string
	if err := json.Unmarshal(data, &names); err != nil {
		return nil, false
	}
	units := pns.NewSet[*pns.Unit]()
	for _, name := range names {
		u, ok := p.Units().ByName(name)
		if !ok {
			return nil, false
		}
		units.Add(u)
	}
	return units, true
}

func (r *Runner) solutionUnits(p *pns.Problem, sol archive.Solution) *pns.Set[*pns.Unit] {
	units := pns.NewSet[*pns.Unit]()
	for _, name := range sol.Units {
		if u, ok := p.Units().ByName(name); ok {
			units.Add(u)
		}
	}
	return units
}

// toArchiveSolutions flattens solver output into the serializable form
// shared by the cache, the archive, and the API.
func toArchiveSolutions(solutions []bnb.Solution[*bnb.ABB, bound.Network]) []archive.Solution {
	out := make([]archive.Solution, 0, len(solutions))
	for _, sol := range solutions {
		names := sol.State.Included().Names()
		sort.Strings(names)
		as := archive.Solution{Units: names, Value: sol.Network.Value}
		if sol.Network.Activities != nil {
			as.Activities = make(map[string]float64, len(names))
			for _, u := range sol.State.Included().Items() {
				if level, ok := sol.Network.Activities.Get(u); ok {
					as.Activities[u.Name()] = level
				}
			}
		}
		out = append(out, as)
	}
	return out
}

// Close releases resources held by the runner, primarily the cache.
func (r *Runner) Close() error {
	if r.Cache != nil {
		return r.Cache.Close()
	}
	return nil
}

// applyLogger sets the runner's logger on options if not already set.
func (r *Runner) applyLogger(opts *Options) {
	if opts.Logger == nil {
		opts.Logger = r.Logger
	}
}
