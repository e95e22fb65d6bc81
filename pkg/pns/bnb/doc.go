// Package bnb searches a process network for the best feasible
// sub-networks by branch and bound.
//
// # Overview
//
// A search is assembled from four functions over a subproblem type: a
// root builder, a brancher, a bounder, and a comparison over the
// bounder's results. The engine computes the maximal structure once,
// builds the root inside it, and explores the tree the brancher spans,
// recording leaves and discarding subtrees whose bound cannot beat the
// solutions already retained. The bounder owns all notion of value; the
// engine never looks inside a network beyond comparing two of them.
//
// # Subproblem Variants
//
// [ABB] branches one demanded material at a time, choosing its producer
// set the way the structure enumeration does. Error-free ABB leaves are
// solution structures by construction. [Binary] branches one unit at a
// time, in or out; its leaves need a verifying bounder such as
// bound.Verified. Custom variants only need [Subproblem], plus
// [DecisionState] if they want the stock extensions and
// [Solver.SolutionNetworks].
//
// # Bounds and Correctness
//
// The engine prunes a subproblem when retention is full and the
// subproblem's bound is no better than the worst retained solution. That
// is only sound if the bound never exceeds the value of any leaf below
// it, and is exact on leaves. With such a bounder, every strategy and
// worker count retains the same objective values; only ordering of
// ties, exploration order, and wall-clock time differ.
//
// # Strategies and Workers
//
// [StrategyOrdered] explores best-bound-first from a shared frontier,
// [StrategyLIFO] depth-first from a shared stack; both support any
// number of workers. [StrategyRecursive] explores depth-first without a
// frontier and is single-threaded. Workers coordinate through two locks,
// the frontier and the retention set, and never hold either while
// branching or bounding. The search ends when the last busy worker finds
// the frontier empty.
//
// # Time Limits
//
// A time limit or context cancellation stops the search at the next
// suspension point and is not an error: [Solver.Solve] returns nil, the
// solutions retained so far stay available, and [Stats.TimedOut] is set.
//
// # Related Packages
//
// Package [pns] defines problems and structural algorithms; package
// [bound] provides stock bounding functions, including the additive cost
// bound and a linear-programming relaxation.
//
// [pns]: github.com/pgraphlab/pgraph/pkg/pns
// [bound]: github.com/pgraphlab/pgraph/pkg/pns/bound
package bnb
