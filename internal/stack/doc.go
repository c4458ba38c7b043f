// Package stack is the stack model and group integrity engine.
//
// It reconstructs PR units from an ordered commit sequence and its
// trailers (Detect), checks the group contiguity invariant over that
// sequence (Validate), and resolves user-supplied identifiers against
// the model (Resolve and friends).
//
// Every entry point is a pure in-memory computation over a snapshot of
// the commit sequence passed in by the caller: no subprocess calls, no
// suspension points, no shared mutable state between invocations.
// Structural violations are reported as typed values inside
// ValidationResult, never panics, so callers can branch on the specific
// kind and offer a repair path.
package stack
