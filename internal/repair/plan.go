package repair

import (
	"context"
	"fmt"

	"github.com/example/stackpr/internal/model"
)

// step is one commit in a rewrite plan: the commit to replay, in plan
// order, plus the trailer edits to apply to its message.
type step struct {
	commit model.Commit
	set    map[string]string
	remove []string
}

// dirty reports whether the step rewrites the commit message.
func (s step) dirty() bool {
	return len(s.set) > 0 || len(s.remove) > 0
}

// planOf builds an edit-free plan preserving the current order.
func planOf(commits []model.Commit) []step {
	plan := make([]step, 0, len(commits))
	for _, c := range commits {
		plan = append(plan, step{commit: c})
	}
	return plan
}

// changed reports whether executing the plan would alter history:
// either the order differs from the loaded sequence or some step edits
// a message.
func changed(commits []model.Commit, plan []step) bool {
	if len(plan) != len(commits) {
		return true
	}
	for i, s := range plan {
		if s.commit.Hash != commits[i].Hash || s.dirty() {
			return true
		}
	}
	return false
}

// replay executes a plan: detach from the branch, reset to the
// merge-base, cherry-pick each step in order, amend trailers where a
// step is dirty, then move the branch to the rebuilt tip.
//
// A cherry-pick conflict is returned as-is (a *gitx.ConflictError) with
// the repository left mid-pick; the branch still points at the old
// history. Any other failure is returned wrapped with the offending
// commit's short hash.
func (e *Engine) replay(ctx context.Context, s *state, plan []step) error {
	if err := e.git.Detach(ctx, s.head); err != nil {
		return err
	}
	if err := e.git.ResetHard(ctx, s.base); err != nil {
		return err
	}

	for _, st := range plan {
		if err := e.git.CherryPick(ctx, st.commit.Hash); err != nil {
			return err
		}
		if !st.dirty() {
			continue
		}

		message, err := e.editMessage(ctx, st)
		if err != nil {
			return fmt.Errorf("rewrite message of %s: %w", model.ShortHash(st.commit.Hash), err)
		}
		if err := e.git.AmendMessage(ctx, message); err != nil {
			return fmt.Errorf("amend %s: %w", model.ShortHash(st.commit.Hash), err)
		}
	}

	return e.git.ForceBranch(ctx, s.branch, "HEAD")
}

// editMessage applies a step's trailer edits to its commit message,
// removals first so a key that is both removed and set ends up set.
func (e *Engine) editMessage(ctx context.Context, st step) (string, error) {
	message := st.commit.Message

	if len(st.remove) > 0 {
		out, err := e.codec.Remove(ctx, message, st.remove...)
		if err != nil {
			return "", err
		}
		message = out
	}

	if len(st.set) > 0 {
		out, err := e.codec.Append(ctx, message, st.set)
		if err != nil {
			return "", err
		}
		message = out
	}

	return message, nil
}

// run is the shared tail of every mutating operation: skip the replay
// entirely when the plan is a no-op, otherwise execute it and fold the
// outcome into a Result.
func (e *Engine) run(ctx context.Context, s *state, plan []step) Result {
	if !changed(s.commits, plan) {
		return success()
	}
	if err := e.replay(ctx, s, plan); err != nil {
		return failure(err)
	}
	return success()
}
