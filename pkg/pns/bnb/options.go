package bnb

import (
	"errors"
	"fmt"
	"time"

	"github.com/pgraphlab/pgraph/pkg/pns"
)

// Strategy selects the order in which the engine explores open
// subproblems.
type Strategy string

const (
	// StrategyOrdered explores the open subproblem with the best bound
	// first. It tends to reach good leaves early, which makes pruning
	// bite sooner.
	StrategyOrdered Strategy = "ordered"

	// StrategyLIFO explores depth-first from a stack. It keeps the open
	// set small and reaches leaves quickly, at the cost of weaker early
	// bounds.
	StrategyLIFO Strategy = "lifo"

	// StrategyRecursive explores depth-first by direct recursion without
	// a shared frontier. It is restricted to a single worker.
	StrategyRecursive Strategy = "recursive"
)

// ValidStrategies enumerates the accepted exploration strategies.
var ValidStrategies = map[Strategy]bool{
	StrategyOrdered:   true,
	StrategyLIFO:      true,
	StrategyRecursive: true,
}

// Unbounded retains every solution found instead of only the best few.
const Unbounded = -1

// Defaults applied by [Options.ValidateAndSetDefaults].
const (
	DefaultMaxSolutions = 1
	DefaultStrategy     = StrategyOrdered
	DefaultWorkers      = 1
)

// Validation errors for [Options].
var (
	// ErrInvalidStrategy indicates an unrecognized exploration strategy.
	ErrInvalidStrategy = errors.New("invalid search strategy")

	// ErrInvalidWorkers indicates a negative worker count.
	ErrInvalidWorkers = errors.New("invalid worker count")

	// ErrRecursiveParallel indicates the recursive strategy was combined
	// with more than one worker.
	ErrRecursiveParallel = errors.New("recursive strategy is single-threaded")

	// ErrInvalidTimeLimit indicates a negative time limit.
	ErrInvalidTimeLimit = errors.New("invalid time limit")
)

// Options tune a search without changing what it finds: any combination
// of strategy and workers retains the same objective values, only order
// and wall-clock differ.
type Options struct {
	// MaxSolutions caps how many of the best solutions are retained.
	// Zero means [DefaultMaxSolutions]; negative values mean [Unbounded].
	MaxSolutions int `json:"max_solutions,omitempty"`

	// Strategy selects the exploration order. Empty means
	// [DefaultStrategy].
	Strategy Strategy `json:"strategy,omitempty"`

	// Workers is the number of goroutines exploring the tree. Zero means
	// [DefaultWorkers]. Must be 1 for [StrategyRecursive].
	Workers int `json:"workers,omitempty"`

	// TimeLimit aborts the search after the given duration, returning
	// the solutions retained so far. Zero means no limit.
	TimeLimit time.Duration `json:"time_limit,omitempty"`

	// Base restricts the search to a subset of the problem's units. The
	// maximal structure is computed within it. Nil means all units.
	Base *pns.Set[*pns.Unit] `json:"-"`

	validated bool
}

// ValidateAndSetDefaults checks the options and fills in defaults. It is
// idempotent: once validated, subsequent calls are no-ops.
func (o *Options) ValidateAndSetDefaults() error {
	if o.validated {
		return nil
	}

	if o.MaxSolutions == 0 {
		o.MaxSolutions = DefaultMaxSolutions
	}
	if o.MaxSolutions < 0 {
		o.MaxSolutions = Unbounded
	}

	if o.Strategy == "" {
		o.Strategy = DefaultStrategy
	}
	if !ValidStrategies[o.Strategy] {
		return fmt.Errorf("%w: %q", ErrInvalidStrategy, o.Strategy)
	}

	if o.Workers == 0 {
		o.Workers = DefaultWorkers
	}
	if o.Workers < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidWorkers, o.Workers)
	}
	if o.Strategy == StrategyRecursive && o.Workers > 1 {
		return fmt.Errorf("%w: got %d workers", ErrRecursiveParallel, o.Workers)
	}

	if o.TimeLimit < 0 {
		return fmt.Errorf("%w: %v", ErrInvalidTimeLimit, o.TimeLimit)
	}

	o.validated = true
	return nil
}
