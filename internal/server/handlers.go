package server

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"sort"

	"github.com/go-chi/chi/v5"

	"github.com/pgraphlab/pgraph/pkg/archive"
	"github.com/pgraphlab/pgraph/pkg/errors"
	pkgio "github.com/pgraphlab/pgraph/pkg/io"
	"github.com/pgraphlab/pgraph/pkg/pipeline"
	"github.com/pgraphlab/pgraph/pkg/pns"
)

// maxRequestBytes caps request bodies. Problem documents are small;
// anything larger is a mistake or abuse.
const maxRequestBytes = 8 << 20

func (s *Server) handleMSG(w http.ResponseWriter, r *http.Request) {
	var req problemRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, ok := s.compile(w, req.Problem)
	if !ok {
		return
	}

	if err := s.runner.Reduce(r.Context(), result, pipeline.Options{}); err != nil {
		s.respondCodedError(w, err)
		return
	}

	units := result.Structure.Names()
	sort.Strings(units)
	s.respondJSON(w, http.StatusOK, msgResponse{
		ProblemHash: result.ProblemHash,
		Units:       units,
		Count:       len(units),
		Cached:      result.CacheInfo.ReduceHit,
	})
}

func (s *Server) handleSSG(w http.ResponseWriter, r *http.Request) {
	var req ssgRequest
	if !s.decode(w, r, &req) {
		return
	}
	if req.Limit < 0 {
		s.respondError(w, http.StatusBadRequest, "limit must not be negative")
		return
	}
	result, ok := s.compile(w, req.Problem)
	if !ok {
		return
	}

	structures, err := pns.EnumerateStructures(result.Model.Problem, req.Limit)
	if err != nil {
		s.respondCodedError(w, err)
		return
	}

	resp := ssgResponse{
		ProblemHash: result.ProblemHash,
		Structures:  make([][]string, 0, len(structures)),
		Count:       len(structures),
		Truncated:   req.Limit > 0 && len(structures) == req.Limit,
	}
	for _, structure := range structures {
		names := structure.Names()
		sort.Strings(names)
		resp.Structures = append(resp.Structures, names)
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSolve(w http.ResponseWriter, r *http.Request) {
	var req solveRequest
	if !s.decode(w, r, &req) {
		return
	}
	result, ok := s.compile(w, req.Problem)
	if !ok {
		return
	}

	opts := req.Options.pipelineOptions()
	opts.Logger = s.cfg.Logger
	if err := opts.ValidateAndSetDefaults(); err != nil {
		s.respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	if err := s.runner.Reduce(r.Context(), result, opts); err != nil {
		s.respondCodedError(w, err)
		return
	}
	resp := solveResponse{ProblemHash: result.ProblemHash, Solutions: []archive.Solution{}}
	if !result.Structure.IsEmpty() {
		if err := s.runner.Solve(r.Context(), result, opts); err != nil {
			s.respondCodedError(w, err)
			return
		}
		resp.Solutions = result.Solutions
		resp.Stats = result.SolveStats
		resp.Cached = result.CacheInfo.SolveHit

		if s.cfg.Store != nil && !resp.Cached {
			run := archive.NewRun(req.Problem.Name, result.ProblemHash, archive.Options{
				MaxSolutions: opts.MaxSolutions,
				Strategy:     opts.Strategy,
				Workers:      opts.Workers,
				TimeLimit:    opts.TimeLimit,
				Bound:        opts.Bound,
				MinActivity:  opts.MinActivity,
			})
			run.Solutions = result.Solutions
			run.Stats = result.SolveStats
			if err := s.cfg.Store.Save(r.Context(), run); err != nil {
				s.respondCodedError(w, err)
				return
			}
			resp.RunID = run.ID
		}
	}
	s.respondJSON(w, http.StatusOK, resp)
}

func (s *Server) handleListRuns(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "run archive not configured")
		return
	}
	runs, err := s.cfg.Store.List(r.Context())
	if err != nil {
		s.respondCodedError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, listRunsResponse{Runs: runs, Count: len(runs)})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "run archive not configured")
		return
	}
	run, err := s.cfg.Store.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		s.respondCodedError(w, err)
		return
	}
	s.respondJSON(w, http.StatusOK, run)
}

func (s *Server) handleDeleteRun(w http.ResponseWriter, r *http.Request) {
	if s.cfg.Store == nil {
		s.respondError(w, http.StatusServiceUnavailable, "run archive not configured")
		return
	}
	if err := s.cfg.Store.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.respondCodedError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// decode reads a JSON request body into v, responding with a 400 on
// failure.
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRequestBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		s.respondError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return false
	}
	return true
}

// compile validates and compiles an inline problem document into a
// pipeline result, responding with the mapped error on failure.
func (s *Server) compile(w http.ResponseWriter, doc *pkgio.Document) (*pipeline.Result, bool) {
	if doc == nil {
		s.respondError(w, http.StatusBadRequest, "missing problem document")
		return nil, false
	}
	result, err := s.runner.Compile(doc)
	if err != nil {
		s.respondCodedError(w, err)
		return nil, false
	}
	return result, true
}

func (s *Server) respondJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.cfg.Logger.Error("encode response", "error", err)
	}
}

func (s *Server) respondError(w http.ResponseWriter, status int, msg string) {
	s.respondJSON(w, status, errorResponse{Error: msg})
}

// respondCodedError maps domain error codes onto HTTP statuses.
func (s *Server) respondCodedError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch errors.GetCode(err) {
	case errors.ErrCodeInvalidInput, errors.ErrCodeInvalidFormat,
		errors.ErrCodeInvalidProblem, errors.ErrCodeInvalidOptions,
		errors.ErrCodeUnsupported:
		status = http.StatusBadRequest
	case errors.ErrCodeNotFound, errors.ErrCodeRunNotFound, errors.ErrCodeFileNotFound:
		status = http.StatusNotFound
	case errors.ErrCodeTimeout:
		status = http.StatusGatewayTimeout
	default:
		if stderrors.Is(err, archive.ErrNotFound) {
			status = http.StatusNotFound
		}
	}
	s.respondJSON(w, status, errorResponse{
		Error: errors.UserMessage(err),
		Code:  string(errors.GetCode(err)),
	})
}
