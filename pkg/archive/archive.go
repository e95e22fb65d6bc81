// Package archive persists solver runs.
//
// A run records everything needed to revisit a solve later: the problem
// identity, the options used, the retained solutions, and the search
// statistics. The [Store] interface has two implementations:
//   - memory: process-local storage for tests and one-shot CLI use
//   - mongo: MongoDB-backed storage for the HTTP API
//
// # Usage
//
// Create a store and save a run:
//
//	store := archive.NewMemoryStore()
//	run := archive.NewRun("plant", fingerprint, opts)
//	run.Solutions = solutions
//	run.Stats = stats
//	if err := store.Save(ctx, run); err != nil {
//	    return err
//	}
//
// Look runs up by ID or list them newest first:
//
//	run, err := store.Get(ctx, id)
//	if errors.Is(err, archive.ErrNotFound) {
//	    // no such run
//	}
package archive

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/pgraphlab/pgraph/pkg/pns/bnb"
)

// ErrNotFound is returned when a run does not exist.
var ErrNotFound = errors.New("run not found")

// Run is one archived solver invocation.
type Run struct {
	ID          string     `json:"id" bson:"_id"`
	CreatedAt   time.Time  `json:"created_at" bson:"created_at"`
	Problem     string     `json:"problem" bson:"problem"`
	ProblemHash string     `json:"problem_hash" bson:"problem_hash"`
	Options     Options    `json:"options" bson:"options"`
	Solutions   []Solution `json:"solutions" bson:"solutions"`
	Stats       bnb.Stats  `json:"stats" bson:"stats"`
}

// Options records the solve parameters that shaped a run's results.
type Options struct {
	MaxSolutions int           `json:"max_solutions,omitempty" bson:"max_solutions,omitempty"`
	Strategy     string        `json:"strategy,omitempty" bson:"strategy,omitempty"`
	Workers      int           `json:"workers,omitempty" bson:"workers,omitempty"`
	TimeLimit    time.Duration `json:"time_limit,omitempty" bson:"time_limit,omitempty"`
	Bound        string        `json:"bound,omitempty" bson:"bound,omitempty"`
	MinActivity  float64       `json:"min_activity,omitempty" bson:"min_activity,omitempty"`
}

// Solution is the serializable form of one retained solution structure.
type Solution struct {
	Units []string `json:"units" bson:"units"`
	Value float64  `json:"value" bson:"value"`
	// Activities holds the per-unit activity levels when the run used
	// the flow bound.
	Activities map[string]float64 `json:"activities,omitempty" bson:"activities,omitempty"`
}

// NewRun creates a run with a fresh ID and the current time.
func NewRun(problem, problemHash string, opts Options) *Run {
	return &Run{
		ID:          uuid.NewString(),
		CreatedAt:   time.Now().UTC(),
		Problem:     problem,
		ProblemHash: problemHash,
		Options:     opts,
	}
}

// Store is the interface for run storage backends.
type Store interface {
	// Save stores a run, replacing any run with the same ID.
	Save(ctx context.Context, run *Run) error

	// Get retrieves a run by ID. Returns [ErrNotFound] if it does not exist.
	Get(ctx context.Context, id string) (*Run, error)

	// List returns all runs, newest first.
	List(ctx context.Context) ([]*Run, error)

	// Delete removes a run. Returns [ErrNotFound] if it does not exist.
	Delete(ctx context.Context, id string) error

	// Close releases the backend connection.
	Close(ctx context.Context) error
}
