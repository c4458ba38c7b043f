package repair

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/example/stackpr/internal/gitx"
	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/stack"
)

// Git is the slice of the version-control subprocess the engine
// rewrites history with. Implemented by gitx.Runner.
type Git interface {
	Head(ctx context.Context) (string, error)
	CurrentBranch(ctx context.Context) (string, error)
	MergeBase(ctx context.Context, a, b string) (string, error)
	Commits(ctx context.Context, base, head string) ([]model.Commit, error)
	Detach(ctx context.Context, ref string) error
	ResetHard(ctx context.Context, ref string) error
	CherryPick(ctx context.Context, hash string) error
	CherryPickAbort(ctx context.Context) error
	AmendMessage(ctx context.Context, message string) error
	ForceBranch(ctx context.Context, branch, ref string) error
}

// Codec reads and writes commit-message trailers. Implemented by
// trailer.Codec.
type Codec interface {
	Parse(ctx context.Context, message string) (map[string]string, error)
	Append(ctx context.Context, message string, trailers map[string]string) (string, error)
	Remove(ctx context.Context, message string, keys ...string) (string, error)
}

// Titles is the external group-title storage. Implemented by
// store.Store.
type Titles interface {
	All(ctx context.Context) (model.GroupTitles, error)
	SetTitle(ctx context.Context, groupID, title string) error
	DeleteTitle(ctx context.Context, groupID string) error
	DeleteAll(ctx context.Context) error
}

// Engine executes repair operations against one repository. It holds
// no repository state of its own; every operation re-reads the commit
// sequence before planning its rewrite. Callers must ensure no two
// operations run concurrently in the same working directory.
type Engine struct {
	git    Git
	codec  Codec
	titles Titles
	trunk  string
	newID  func() string
}

// Option configures the engine.
type Option func(*Engine)

// WithIDGenerator replaces the id generator, used by tests for
// deterministic Commit-Ids and group ids.
func WithIDGenerator(f func() string) Option {
	return func(e *Engine) { e.newID = f }
}

// New creates a repair engine for the stack above trunk.
func New(git Git, codec Codec, titles Titles, trunk string, opts ...Option) *Engine {
	e := &Engine{
		git:    git,
		codec:  codec,
		titles: titles,
		trunk:  trunk,
		newID:  NewID,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewID mints an 8-character lowercase hex identifier for Commit-Id
// trailers and group ids.
func NewID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:8]
}

// Result is the outcome of one repair operation.
type Result struct {
	// Success reports whether the mutation completed.
	Success bool

	// Err holds the failure when Success is false.
	Err error

	// ConflictFile names the path whose content could not be
	// automatically merged during the replay. Non-empty only for
	// conflict failures; the repository is left mid-rewrite.
	ConflictFile string

	// GroupID carries the identifier of a group the operation created,
	// when it created one.
	GroupID string
}

func success() Result {
	return Result{Success: true}
}

func failure(err error) Result {
	r := Result{Err: err}
	var conflict *gitx.ConflictError
	if errors.As(err, &conflict) {
		r.ConflictFile = conflict.File()
	}
	return r
}

// state is one snapshot of the stack, loaded at the start of every
// operation.
type state struct {
	branch  string
	head    string
	base    string
	commits []model.Commit
	titles  model.GroupTitles
}

// load snapshots the current stack: branch, merge-base, the commit
// sequence with parsed trailers, and the stored titles.
func (e *Engine) load(ctx context.Context) (*state, error) {
	branch, err := e.git.CurrentBranch(ctx)
	if err != nil {
		return nil, fmt.Errorf("resolve current branch (detached HEAD from an interrupted rewrite?): %w", err)
	}

	head, err := e.git.Head(ctx)
	if err != nil {
		return nil, err
	}

	base, err := e.git.MergeBase(ctx, e.trunk, head)
	if err != nil {
		return nil, fmt.Errorf("merge base of %s and HEAD: %w", e.trunk, err)
	}

	commits, err := stack.Load(ctx, e.git, e.codec, base, head)
	if err != nil {
		return nil, err
	}

	titles, err := e.titles.All(ctx)
	if err != nil {
		return nil, err
	}

	return &state{
		branch:  branch,
		head:    head,
		base:    base,
		commits: commits,
		titles:  titles,
	}, nil
}

// Abort abandons an in-flight conflicted replay, restoring the
// pre-pick state of the detached sequence. The branch was never moved,
// so checking it out again completes the rollback.
func (e *Engine) Abort(ctx context.Context) error {
	return e.git.CherryPickAbort(ctx)
}
