// Package gitx wraps the git subprocess. It provides the read side
// (listing the stack of commits between the merge-base and the branch
// tip) and the rewrite primitives the repair engine replays history
// with (detach, reset, cherry-pick, amend, branch move).
//
// Every operation is one git invocation with captured stderr; a failed
// command surfaces git's own trimmed error text. Conflicted
// cherry-picks are reported as *ConflictError carrying the unmerged
// paths, never retried here.
package gitx
