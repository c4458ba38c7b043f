// Package repair performs the semantics-preserving history rewrites
// that restore the invariants the validator checks: grouping and
// ungrouping commits, merging split groups back into contiguity,
// stripping group metadata, and applying a declarative stack spec in
// one pass.
//
// Every mutation is one ordered replay of the stack: detach, reset to
// the merge-base, cherry-pick each commit in its new order, amend
// trailers where the plan says so, then move the branch. Commits not
// targeted by an edit keep their tree and their Commit-Id. A content
// conflict during the replay is terminal: the engine reports the
// conflicting path and leaves the repository mid-rewrite, because
// auto-resolving a conflict is unsafe and rollback is the caller's
// decision (Abort runs the underlying cherry-pick --abort).
//
// Operations return a Result value rather than branching on error
// types: callers surface Result.ConflictFile to the user and treat
// anything else in Result.Err as a terminal failure.
package repair
