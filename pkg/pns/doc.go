// Package pns models process network synthesis (PNS) problems and
// implements the two classical structural algorithms on them: maximal
// structure generation (MSG) and solution structure generation (SSG).
//
// # Overview
//
// A process network connects materials and operating units. Each unit
// consumes a set of input materials and produces a set of output materials.
// Materials are partitioned into raw materials (available from outside),
// products (required outputs of the network), and intermediates (everything
// else). Synthesis asks which subsets of units form networks that actually
// manufacture the products from the raw materials.
//
// The package provides the building blocks for that question:
//
//   - [Material] and [Unit] are the node types, each with a process-wide
//     unique ID assigned at construction.
//   - [Set] is an identity-keyed collection of nodes with the usual
//     algebra (union, intersection, difference) in mutating and
//     non-mutating forms.
//   - [Table] attaches typed per-node values without widening the node
//     structs themselves.
//   - [Problem] assembles units, materials, and structural constraints,
//     and derives the lookup indexes the algorithms need.
//
// # Basic Usage
//
// Build a problem by adding units, classifying materials, and finalizing:
//
//	p := pns.NewProblem("demo")
//	p.AddUnit(reactor)
//	p.AddUnit(separator)
//	p.MarkRaw(feed)
//	p.MarkProduct(output)
//	if err := p.FinalizeData(); err != nil {
//		return err
//	}
//
// [Problem.FinalizeData] validates the model and computes derived state
// (intermediates, producer and consumer indexes, mutual-exclusion
// partners). Mutating the problem afterwards clears the finalized flag, so
// finalize again before running algorithms.
//
// # Maximal Structure
//
// [MaximalStructure] computes the union of all solution structures: the
// largest subset of units that can take part in any feasible network. It
// alternately removes units whose inputs can never be produced and then
// rebuilds the structure backwards from the products. An empty result means
// the problem has no solution; it is not an error.
//
// # Solution Structures
//
// [SolutionStructures] enumerates every unit set that satisfies the
// solution-structure axioms, including mutual-exclusion groups and
// parallel-production caps. [EnumerateStructures] bounds the number of
// results and [EnumerateStructuresFunc] streams them to a callback without
// materializing the full list. [IsSolutionStructure] is the corresponding
// membership test for externally constructed unit sets.
//
// Enumeration decides one material at a time in ascending node-ID order,
// which makes the output order deterministic for a given problem.
//
// # Concurrency
//
// Problems and sets are not safe for concurrent mutation. A finalized
// [Problem] is effectively immutable and may be shared by concurrently
// running algorithms, which is how the [bnb] subpackage parallelizes its
// search.
//
// # Related Packages
//
// The [bnb] subpackage implements a generic branch-and-bound engine over
// problems defined here, and the [bound] subpackage supplies bounding
// functions (additive cost, linear relaxation) for it.
//
// [bnb]: github.com/pgraphlab/pgraph/pkg/pns/bnb
// [bound]: github.com/pgraphlab/pgraph/pkg/pns/bound
package pns
