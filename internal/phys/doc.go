// Package phys implements the rigid-body core: spherical bodies under
// constant gravity, confined to a spherical boundary, with impulse-based
// pairwise collision response.
//
// A [World] owns an ordered, append-only set of [Body] values. One call to
// [World.Step] performs a semi-implicit Euler integration sweep followed by a
// fixed number of relaxation passes; each pass re-applies the border
// constraint and resolves every body pair in deterministic order. Multiple
// passes approximate a simultaneous multi-contact solve without a full
// constraint solver.
//
// Bodies do not rotate and there is no broad-phase: body counts are small
// enough that the O(n²) pair sweep dominates nothing.
//
// # Thread Safety
//
// World is NOT safe for concurrent use. The driver owns it exclusively for
// the duration of each step.
package phys
