// Package soroban generates deterministic mental-arithmetic drills that are
// legal under a soroban (Japanese abacus) bead model.
//
// A Problem is a start value followed by a sequence of signed operations.
// Each operation is chosen from the set of single-digit moves that are legal
// for the running total's ones digit under the active difficulty classes
// (direct moves, small-friend 5-complements, big-friend 10-complements), then
// rescaled to the requested digit width. Every random choice is drawn from a
// Stream created for that call, so the same configuration and seed always
// produce the same Problem and concurrent generations never interfere.
//
// The package performs no I/O and holds no package-level mutable state.
package soroban
