// Package permission implements the permission model of the portal.
//
// A principal holds a flat set of permission codes derived from the single group
// it belongs to. Codes come from a closed enumeration (see All) and are compared
// by exact string equality; there is no hierarchy or wildcard matching.
//
// # Evaluation
//
// Has, HasAny and HasAll are pure predicates over a Set:
//   - a nil Set stands for "no principal" and every predicate returns false
//   - HasAny with an empty list returns false
//   - HasAll with an empty list returns true (vacuous truth), but only when a
//     principal exists
//
// The last two rules deliberately differ; callers building gates from optional
// lists must keep that in mind.
package permission
