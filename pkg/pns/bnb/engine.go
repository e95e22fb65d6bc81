package bnb

import (
	"context"
	"sync"
	"sync/atomic"
	"time"
)

// engine executes one search. It owns the frontier and the retention set
// and the counters that become [Stats]. Neither lock is ever held while
// branching, tightening, or bounding a subproblem.
type engine[S Subproblem, N any] struct {
	branch     BranchFunc[S]
	bound      BoundFunc[S, N]
	extensions []Extension[S]

	ret     *retention[S, N]
	front   *frontier[S, N] // nil for StrategyRecursive
	workers int

	ctx         context.Context
	deadline    time.Time
	hasDeadline bool

	explored atomic.Int64
	pruned   atomic.Int64
	leaves   atomic.Int64
	timedOut atomic.Bool
}

// expired reports whether the search ran out of time or was canceled.
// Workers check it between subproblems, so an expiry is observed at the
// next suspension point rather than instantly.
func (e *engine[S, N]) expired() bool {
	if e.ctx.Err() != nil || (e.hasDeadline && time.Now().After(e.deadline)) {
		e.timedOut.Store(true)
		return true
	}
	return false
}

// tighten runs the extension pipeline over a freshly branched subproblem.
func (e *engine[S, N]) tighten(sub S) bool {
	for _, ext := range e.extensions {
		if !ext(sub) {
			return false
		}
	}
	return true
}

// children branches a subproblem and keeps the consistent survivors.
// Infeasible and contradictory children are dropped silently; they are
// ordinary outcomes of branching, not errors.
func (e *engine[S, N]) children(sub S) []S {
	kids := e.branch(sub)
	out := kids[:0]
	for _, kid := range kids {
		if !e.tighten(kid) {
			continue
		}
		if !kid.IsErrorFree() {
			continue
		}
		out = append(out, kid)
	}
	return out
}

// classify bounds a subproblem and routes it: infeasible ones are
// dropped, leaves are recorded, dominated interiors are pruned, and the
// rest come back as open entries.
func (e *engine[S, N]) classify(sub S) (entry[S, N], bool) {
	network, ok := e.bound(sub)
	if !ok {
		e.pruned.Add(1)
		return entry[S, N]{}, false
	}
	if sub.IsLeaf() {
		e.leaves.Add(1)
		e.ret.add(Solution[S, N]{State: sub, Network: network})
		return entry[S, N]{}, false
	}
	if e.ret.shouldPrune(network) {
		e.pruned.Add(1)
		return entry[S, N]{}, false
	}
	return entry[S, N]{sub: sub, bound: network}, true
}

// run explores the tree under root. The root is classified like any
// other subproblem; an infeasible or leaf root ends the search at once.
func (e *engine[S, N]) run(root S) {
	ent, ok := e.classify(root)
	if !ok {
		return
	}

	if e.front == nil {
		e.recurse(ent)
		return
	}

	e.front.push(ent)
	var wg sync.WaitGroup
	for range e.workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			e.work()
		}()
	}
	wg.Wait()
}

// work is one worker's loop: pop, re-check the bound against solutions
// retained since the push, expand, publish.
func (e *engine[S, N]) work() {
	for {
		if e.expired() {
			e.front.close()
			return
		}
		ent, ok := e.front.pop()
		if !ok {
			return
		}
		if e.ret.shouldPrune(ent.bound) {
			e.pruned.Add(1)
			continue
		}
		e.explored.Add(1)
		for _, kid := range e.children(ent.sub) {
			if child, ok := e.classify(kid); ok {
				e.front.push(child)
			}
		}
	}
}

// recurse is the frontier-free depth-first variant. Children are visited
// in branch order, so a run is fully deterministic.
func (e *engine[S, N]) recurse(ent entry[S, N]) {
	if e.expired() {
		return
	}
	if e.ret.shouldPrune(ent.bound) {
		e.pruned.Add(1)
		return
	}
	e.explored.Add(1)
	for _, kid := range e.children(ent.sub) {
		if child, ok := e.classify(kid); ok {
			e.recurse(child)
		}
	}
}
