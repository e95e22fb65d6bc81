package bnb

import (
	"context"
	"errors"
	"slices"
	"sync"
	"time"

	"github.com/pgraphlab/pgraph/pkg/pns"
)

var (
	// ErrNilFunc is returned by [New] when a required search function is
	// missing from the configuration.
	ErrNilFunc = errors.New("missing search function")

	// ErrNoDecisionState is returned by [Solver.SolutionNetworks] when
	// the subproblem type does not implement [DecisionState].
	ErrNoDecisionState = errors.New("subproblem does not expose decision state")
)

// Config assembles a branch-and-bound search over the units of a
// problem. Root, Branch, Bound and Compare are required; Extensions are
// optional tighteners applied to every branched child.
type Config[S Subproblem, N any] struct {
	Problem    *pns.Problem
	Root       RootFunc[S]
	Branch     BranchFunc[S]
	Bound      BoundFunc[S, N]
	Compare    CompareFunc[N]
	Extensions []Extension[S]
	Options    Options
}

// Solver runs one branch-and-bound search and retains the best solutions
// it finds. A solver is single-use: the first [Solver.Solve] call does
// the work and every later call returns the same outcome.
type Solver[S Subproblem, N any] struct {
	cfg Config[S, N]

	runOnce   sync.Once
	runErr    error
	solutions []Solution[S, N]
	stats     Stats

	netOnce  sync.Once
	netErr   error
	networks []*pns.Set[*pns.Unit]
}

// Stats summarizes a finished search. Explored counts subproblems that
// were branched, Pruned counts subproblems dropped by bounding, and
// Leaves counts complete solutions found before retention eviction.
type Stats struct {
	Explored int64         `json:"explored"`
	Pruned   int64         `json:"pruned"`
	Leaves   int64         `json:"leaves"`
	Retained int           `json:"retained"`
	Elapsed  time.Duration `json:"elapsed"`
	TimedOut bool          `json:"timed_out"`
}

// New validates the configuration and builds a solver. The problem must
// be finalized. Option defaults are filled in here, so the zero Options
// value gives a single-threaded ordered search retaining one solution.
func New[S Subproblem, N any](cfg Config[S, N]) (*Solver[S, N], error) {
	if cfg.Problem == nil {
		return nil, pns.ErrNilProblem
	}
	if !cfg.Problem.Finalized() {
		return nil, pns.ErrNotFinalized
	}
	if cfg.Root == nil || cfg.Branch == nil || cfg.Bound == nil || cfg.Compare == nil {
		return nil, ErrNilFunc
	}
	if err := cfg.Options.ValidateAndSetDefaults(); err != nil {
		return nil, err
	}
	return &Solver[S, N]{cfg: cfg}, nil
}

// Solve runs the search to completion, or until the time limit or ctx
// expires. Running out of time is not an error: the solutions found so
// far remain available and [Stats.TimedOut] is set.
//
// Solve is idempotent. Only the first call runs; later calls return the
// first call's error and their ctx is ignored.
func (s *Solver[S, N]) Solve(ctx context.Context) error {
	s.runOnce.Do(func() { s.run(ctx) })
	return s.runErr
}

// Solutions runs the search if needed and returns the retained
// solutions, best first.
func (s *Solver[S, N]) Solutions(ctx context.Context) ([]Solution[S, N], error) {
	if err := s.Solve(ctx); err != nil {
		return nil, err
	}
	return slices.Clone(s.solutions), nil
}

// SolutionNetworks runs the search if needed and returns the unit sets
// of the retained solutions, best first. It requires the subproblem type
// to implement [DecisionState]. The sets are extracted once and shared
// across calls; callers must treat them as read-only.
func (s *Solver[S, N]) SolutionNetworks(ctx context.Context) ([]*pns.Set[*pns.Unit], error) {
	if err := s.Solve(ctx); err != nil {
		return nil, err
	}
	s.netOnce.Do(func() {
		nets := make([]*pns.Set[*pns.Unit], 0, len(s.solutions))
		for _, sol := range s.solutions {
			ds, ok := any(sol.State).(DecisionState)
			if !ok {
				s.netErr = ErrNoDecisionState
				return
			}
			nets = append(nets, ds.Included().Clone())
		}
		s.networks = nets
	})
	if s.netErr != nil {
		return nil, s.netErr
	}
	return slices.Clone(s.networks), nil
}

// Stats returns the counters of the finished search. Before [Solver.Solve]
// has returned it is the zero value.
func (s *Solver[S, N]) Stats() Stats {
	return s.stats
}

func (s *Solver[S, N]) run(ctx context.Context) {
	start := time.Now()
	defer func() { s.stats.Elapsed = time.Since(start) }()

	universe, err := pns.MaximalStructure(s.cfg.Problem, s.cfg.Options.Base)
	if err != nil {
		s.runErr = err
		return
	}

	ret := newRetention[S, N](s.cfg.Compare, s.cfg.Options.MaxSolutions)
	defer func() {
		s.solutions = ret.snapshot()
		s.stats.Retained = len(s.solutions)
	}()

	// An empty maximal structure means no sub-network can make the
	// products; the search ends with no solutions and no error.
	if universe.IsEmpty() {
		return
	}

	eng := &engine[S, N]{
		branch:     s.cfg.Branch,
		bound:      s.cfg.Bound,
		extensions: s.cfg.Extensions,
		ret:        ret,
		workers:    s.cfg.Options.Workers,
		ctx:        ctx,
	}
	eng.deadline, eng.hasDeadline = ctx.Deadline()
	if tl := s.cfg.Options.TimeLimit; tl > 0 {
		if d := start.Add(tl); !eng.hasDeadline || d.Before(eng.deadline) {
			eng.deadline, eng.hasDeadline = d, true
		}
	}
	switch s.cfg.Options.Strategy {
	case StrategyRecursive:
		// no frontier: direct recursion
	case StrategyLIFO:
		eng.front = newFrontier[S, N](nil, eng.workers)
	default:
		eng.front = newFrontier[S, N](s.cfg.Compare, eng.workers)
	}
	defer func() {
		s.stats.Explored = eng.explored.Load()
		s.stats.Pruned = eng.pruned.Load()
		s.stats.Leaves = eng.leaves.Load()
		s.stats.TimedOut = eng.timedOut.Load()
	}()

	root := s.cfg.Root(s.cfg.Problem, universe)
	if !root.IsErrorFree() {
		return
	}
	eng.run(root)
}
