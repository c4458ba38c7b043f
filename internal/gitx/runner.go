package gitx

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"
)

// Runner executes git commands in one repository working directory.
// The zero value runs git in the process working directory.
//
// Runner holds no state beyond the directory; concurrent reads are
// safe. Callers must ensure no two rewrites run concurrently in the
// same working directory (the underlying rebase machinery mutates ref
// and working-tree state).
type Runner struct {
	Dir string
}

// run executes git with the given arguments and returns trimmed stdout.
// On failure the error carries git's stderr text when present.
func (r *Runner) run(ctx context.Context, args ...string) (string, error) {
	return r.runInput(ctx, "", args...)
}

// runInput is run with the given string piped to stdin.
func (r *Runner) runInput(ctx context.Context, stdin string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = r.Dir
	if stdin != "" {
		cmd.Stdin = strings.NewReader(stdin)
	}

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git %s: %s", args[0], msg)
		}
		return "", fmt.Errorf("git %s: %w", args[0], err)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

// GitDir returns the absolute path of the repository's .git directory.
func (r *Runner) GitDir(ctx context.Context) (string, error) {
	return r.run(ctx, "rev-parse", "--absolute-git-dir")
}

// Head returns the full hash of the current HEAD commit.
func (r *Runner) Head(ctx context.Context) (string, error) {
	return r.run(ctx, "rev-parse", "HEAD")
}

// CurrentBranch returns the checked-out branch name. It fails on a
// detached HEAD, which callers use to detect an interrupted rewrite.
func (r *Runner) CurrentBranch(ctx context.Context) (string, error) {
	return r.run(ctx, "symbolic-ref", "--short", "HEAD")
}

// MergeBase returns the merge base of the two refs.
func (r *Runner) MergeBase(ctx context.Context, a, b string) (string, error) {
	return r.run(ctx, "merge-base", a, b)
}

// OriginURL returns the fetch URL of the given remote.
func (r *Runner) OriginURL(ctx context.Context, remote string) (string, error) {
	return r.run(ctx, "remote", "get-url", remote)
}

// UserName returns the configured git user.name, or "" when unset.
func (r *Runner) UserName(ctx context.Context) (string, error) {
	out, err := r.run(ctx, "config", "user.name")
	if err != nil {
		// user.name may legitimately be unset; git exits non-zero.
		return "", nil
	}
	return out, nil
}

// DefaultBranch resolves the remote's default branch from its symbolic
// HEAD ref, falling back to "main" when the ref is not set locally.
func (r *Runner) DefaultBranch(ctx context.Context, remote string) (string, error) {
	out, err := r.run(ctx, "symbolic-ref", "--short", "refs/remotes/"+remote+"/HEAD")
	if err != nil {
		return "main", nil
	}
	return strings.TrimPrefix(out, remote+"/"), nil
}
