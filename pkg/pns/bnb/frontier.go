package bnb

import (
	"container/list"
	"sync"
)

// entry is an open subproblem together with the bound that admitted it.
// The bound is re-checked against retention at pop time: solutions found
// since the push may have made it prunable.
type entry[S Subproblem, N any] struct {
	sub   S
	bound N
}

// frontier is the shared set of open subproblems. It is the second of
// the engine's two locks. Pop blocks while the frontier is empty but
// other workers are still busy, since they may publish new entries; the
// last worker to go idle ends the search for everyone.
type frontier[S Subproblem, N any] struct {
	mu      sync.Mutex
	cond    *sync.Cond
	open    *list.List
	compare CompareFunc[N] // nil for LIFO order
	workers int
	idle    int
	done    bool
}

func newFrontier[S Subproblem, N any](compare CompareFunc[N], workers int) *frontier[S, N] {
	f := &frontier[S, N]{open: list.New(), compare: compare, workers: workers}
	f.cond = sync.NewCond(&f.mu)
	return f
}

// push publishes an open subproblem. With a compare function the entry
// is kept in ascending bound order so pop always returns the most
// promising one; without it the entry goes to the head, giving LIFO.
func (f *frontier[S, N]) push(e entry[S, N]) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.done {
		return
	}

	if f.compare == nil {
		f.open.PushFront(e)
	} else {
		inserted := false
		for el := f.open.Front(); el != nil; el = el.Next() {
			if f.compare(e.bound, el.Value.(entry[S, N]).bound) < 0 {
				f.open.InsertBefore(e, el)
				inserted = true
				break
			}
		}
		if !inserted {
			f.open.PushBack(e)
		}
	}

	f.cond.Signal()
}

// pop removes the next open subproblem. It returns ok=false only when
// the search is over: every worker is idle and the frontier is empty, or
// the frontier was closed.
func (f *frontier[S, N]) pop() (entry[S, N], bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for {
		if f.done {
			return entry[S, N]{}, false
		}
		if el := f.open.Front(); el != nil {
			f.open.Remove(el)
			return el.Value.(entry[S, N]), true
		}

		f.idle++
		if f.idle == f.workers {
			f.done = true
			f.cond.Broadcast()
			return entry[S, N]{}, false
		}
		f.cond.Wait()
		f.idle--
	}
}

// close aborts the search, waking every blocked worker. Used on timeout
// and cancellation.
func (f *frontier[S, N]) close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.done = true
	f.cond.Broadcast()
}
