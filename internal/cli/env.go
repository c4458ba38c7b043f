package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/example/stackpr/internal/config"
	"github.com/example/stackpr/internal/gitx"
	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/repair"
	"github.com/example/stackpr/internal/stack"
	"github.com/example/stackpr/internal/store"
	"github.com/example/stackpr/internal/trailer"
)

// env bundles the per-invocation dependencies: one git runner, the
// trailer codec, the title store and the resolved configuration.
// Commands open it at the start of RunE and close it on return.
type env struct {
	git    *gitx.Runner
	codec  *trailer.Codec
	titles *store.Store
	cfg    config.Config
}

// openEnv wires the working directory into an environment. The title
// store lives under the repository's .git directory, so this fails
// cleanly outside a repository.
func openEnv(ctx context.Context, opts *RootOptions) (*env, error) {
	git := &gitx.Runner{Dir: opts.Dir}

	gitDir, err := git.GitDir(ctx)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "not a git repository", err)
	}

	cfg, err := config.Resolve(ctx, git, opts.Dir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "resolving configuration", err)
	}

	titles, err := store.Open(gitDir)
	if err != nil {
		return nil, WrapExitError(ExitCommandError, "opening title store", err)
	}

	return &env{
		git:    git,
		codec:  &trailer.Codec{Dir: opts.Dir},
		titles: titles,
		cfg:    cfg,
	}, nil
}

func (e *env) Close() error {
	return e.titles.Close()
}

// engine builds a repair engine over this environment's dependencies.
func (e *env) engine() *repair.Engine {
	return repair.New(e.git, e.codec, e.titles, e.cfg.Trunk)
}

// snapshot loads the stack above trunk with parsed trailers, plus the
// stored group titles.
func (e *env) snapshot(ctx context.Context) ([]model.Commit, model.GroupTitles, error) {
	head, err := e.git.Head(ctx)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "resolving HEAD", err)
	}

	base, err := e.git.MergeBase(ctx, e.cfg.Trunk, head)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "resolving merge base with "+e.cfg.Trunk, err)
	}

	commits, err := stack.Load(ctx, e.git, e.codec, base, head)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "reading stack commits", err)
	}

	titles, err := e.titles.All(ctx)
	if err != nil {
		return nil, nil, WrapExitError(ExitCommandError, "reading group titles", err)
	}

	return commits, titles, nil
}

// newFormatter builds the formatter for one command invocation.
// Verbose logs go to stderr to avoid corrupting JSON output.
func newFormatter(opts *RootOptions, cmd *cobra.Command) *OutputFormatter {
	return &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}
}
