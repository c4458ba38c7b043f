// Package model defines the value types shared by the stack engine:
// commits as read from the repository, PR units derived from them, and
// the group-title mapping kept outside the commit sequence.
//
// Everything in this package is a plain value. A PRUnit is an ephemeral
// view recomputed from the commit sequence on every read; it is never
// stored and never mutated in place.
package model
