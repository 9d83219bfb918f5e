// Package formation holds the team composition rules and the algorithms that
// build and rebalance teams: category pools, the single-team assembly task and
// the skill balancer.
//
// Every valid team has exactly the requested size, exactly one Leader, one or
// two Thinkers, at most two members per game and at least three distinct
// roles. Assembly enforces these rules when a team is built and the balancer
// re-checks them before every swap.
//
// Pools are safe for concurrent use. Teams are not: the balancer must own the
// team set exclusively.
package formation
