package server

import (
	"time"

	"github.com/pgraphlab/pgraph/pkg/archive"
	pkgio "github.com/pgraphlab/pgraph/pkg/io"
	"github.com/pgraphlab/pgraph/pkg/pipeline"
	"github.com/pgraphlab/pgraph/pkg/pns/bnb"
)

type healthResponse struct {
	Status string `json:"status"`
	Uptime string `json:"uptime"`
}

type versionResponse struct {
	Version string `json:"version"`
	Commit  string `json:"commit"`
	Date    string `json:"date"`
}

type errorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// problemRequest is the body of the msg endpoint: a problem document in
// the native JSON encoding.
type problemRequest struct {
	Problem *pkgio.Document `json:"problem"`
}

type msgResponse struct {
	ProblemHash string   `json:"problem_hash"`
	Units       []string `json:"units"`
	Count       int      `json:"count"`
	Cached      bool     `json:"cached"`
}

type ssgRequest struct {
	Problem *pkgio.Document `json:"problem"`
	// Limit caps how many structures are enumerated. Zero means all.
	Limit int `json:"limit,omitempty"`
}

type ssgResponse struct {
	ProblemHash string     `json:"problem_hash"`
	Structures  [][]string `json:"structures"`
	Count       int        `json:"count"`
	// Truncated reports that enumeration stopped at the limit.
	Truncated bool `json:"truncated"`
}

type solveRequest struct {
	Problem *pkgio.Document `json:"problem"`
	Options solveOptions    `json:"options"`
}

// solveOptions is the wire form of the solve parameters. The time limit
// is in milliseconds to keep the JSON readable.
type solveOptions struct {
	Bound        string  `json:"bound,omitempty"`
	MinActivity  float64 `json:"min_activity,omitempty"`
	MaxSolutions int     `json:"max_solutions,omitempty"`
	Strategy     string  `json:"strategy,omitempty"`
	Workers      int     `json:"workers,omitempty"`
	TimeLimitMS  int64   `json:"time_limit_ms,omitempty"`
	Refresh      bool    `json:"refresh,omitempty"`
}

func (o solveOptions) pipelineOptions() pipeline.Options {
	return pipeline.Options{
		Bound:        o.Bound,
		MinActivity:  o.MinActivity,
		MaxSolutions: o.MaxSolutions,
		Strategy:     o.Strategy,
		Workers:      o.Workers,
		TimeLimit:    time.Duration(o.TimeLimitMS) * time.Millisecond,
		Refresh:      o.Refresh,
	}
}

type solveResponse struct {
	ProblemHash string             `json:"problem_hash"`
	Solutions   []archive.Solution `json:"solutions"`
	Stats       bnb.Stats          `json:"stats"`
	Cached      bool               `json:"cached"`
	RunID       string             `json:"run_id,omitempty"`
}

type listRunsResponse struct {
	Runs  []*archive.Run `json:"runs"`
	Count int            `json:"count"`
}
