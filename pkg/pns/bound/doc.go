// Package bound provides stock bounding functions for branch-and-bound
// searches over process networks.
//
// All bounders in this package produce a [Network] and are ordered by
// [ByValue]. [AdditiveCost] sums fixed unit costs and is the right
// default for investment-style objectives. [FlowCost] solves a linear
// flow relaxation and prices operation proportionally to activity.
// [Verified] and [MinActivity] wrap another bounder to reject leaves
// that are structurally infeasible or that rely on units idling below a
// threshold.
//
// A bounder is sound for pruning when it never exceeds the value of any
// leaf below the subproblem it rates and is exact on leaves; everything
// here satisfies that, provided costs are nonnegative.
package bound
