package gitx

import (
	"context"
	"fmt"
	"strings"
)

// ConflictError reports a cherry-pick that could not be completed
// because a file's content could not be automatically merged. The
// repository is left mid-pick; resolving or aborting is the caller's
// decision.
type ConflictError struct {
	Hash  string   // the commit being replayed
	Files []string // unmerged paths, first one is the reported conflict file
}

func (e *ConflictError) Error() string {
	if len(e.Files) > 0 {
		return fmt.Sprintf("cherry-pick %s: conflict in %s", e.Hash, e.Files[0])
	}
	return fmt.Sprintf("cherry-pick %s: conflict", e.Hash)
}

// File returns the first conflicting path, or "".
func (e *ConflictError) File() string {
	if len(e.Files) == 0 {
		return ""
	}
	return e.Files[0]
}

// Detach checks out the given ref as a detached HEAD.
func (r *Runner) Detach(ctx context.Context, ref string) error {
	_, err := r.run(ctx, "switch", "--detach", ref)
	return err
}

// ResetHard moves HEAD and the working tree to the given ref.
func (r *Runner) ResetHard(ctx context.Context, ref string) error {
	_, err := r.run(ctx, "reset", "--hard", ref)
	return err
}

// CherryPick replays one commit onto HEAD. A merge conflict is
// returned as *ConflictError with the unmerged paths filled in; any
// other failure is returned verbatim.
func (r *Runner) CherryPick(ctx context.Context, hash string) error {
	_, err := r.run(ctx, "cherry-pick", "--allow-empty", hash)
	if err == nil {
		return nil
	}

	files, ferr := r.unmergedFiles(ctx)
	if ferr == nil && len(files) > 0 {
		return &ConflictError{Hash: hash, Files: files}
	}
	return err
}

// CherryPickAbort abandons an in-flight conflicted cherry-pick and
// restores the pre-pick state of the detached sequence.
func (r *Runner) CherryPickAbort(ctx context.Context) error {
	_, err := r.run(ctx, "cherry-pick", "--abort")
	return err
}

// AmendMessage rewrites the message of the HEAD commit, leaving its
// tree untouched.
func (r *Runner) AmendMessage(ctx context.Context, message string) error {
	_, err := r.runInput(ctx, message, "commit", "--amend", "--allow-empty", "-F", "-")
	return err
}

// ForceBranch points branch at ref and checks it out.
func (r *Runner) ForceBranch(ctx context.Context, branch, ref string) error {
	if _, err := r.run(ctx, "branch", "-f", branch, ref); err != nil {
		return err
	}
	_, err := r.run(ctx, "switch", branch)
	return err
}

// unmergedFiles lists paths with unresolved merge conflicts.
func (r *Runner) unmergedFiles(ctx context.Context) ([]string, error) {
	out, err := r.run(ctx, "diff", "--name-only", "--diff-filter=U")
	if err != nil {
		return nil, err
	}
	var files []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}
