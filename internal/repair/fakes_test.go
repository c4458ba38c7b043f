package repair

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/example/stackpr/internal/gitx"
	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/stack"
)

// fakeGit emulates the replay surface of gitx.Runner over an in-memory
// commit sequence. Cherry-picks copy commits from the pre-rewrite
// sequence; ForceBranch publishes the rebuilt sequence.
type fakeGit struct {
	branch   string
	commits  []model.Commit
	detached bool
	replayed []model.Commit
	aborted  bool

	conflictOn string // hash that conflicts when cherry-picked
}

func newFakeGit(commits []model.Commit) *fakeGit {
	return &fakeGit{branch: "feature", commits: commits}
}

func (f *fakeGit) Head(ctx context.Context) (string, error) { return "HEAD-TIP", nil }

func (f *fakeGit) CurrentBranch(ctx context.Context) (string, error) {
	if f.detached {
		return "", errors.New("HEAD is detached")
	}
	return f.branch, nil
}

func (f *fakeGit) MergeBase(ctx context.Context, a, b string) (string, error) {
	return "BASE", nil
}

func (f *fakeGit) Commits(ctx context.Context, base, head string) ([]model.Commit, error) {
	out := make([]model.Commit, len(f.commits))
	copy(out, f.commits)
	return out, nil
}

func (f *fakeGit) Detach(ctx context.Context, ref string) error {
	f.detached = true
	return nil
}

func (f *fakeGit) ResetHard(ctx context.Context, ref string) error {
	f.replayed = nil
	return nil
}

func (f *fakeGit) CherryPick(ctx context.Context, hash string) error {
	if hash == f.conflictOn {
		return &gitx.ConflictError{Hash: hash, Files: []string{"conflicted.go"}}
	}
	for _, c := range f.commits {
		if c.Hash == hash {
			f.replayed = append(f.replayed, c)
			return nil
		}
	}
	return errors.New("unknown commit " + hash)
}

func (f *fakeGit) CherryPickAbort(ctx context.Context) error {
	f.aborted = true
	f.replayed = nil
	return nil
}

func (f *fakeGit) AmendMessage(ctx context.Context, message string) error {
	if len(f.replayed) == 0 {
		return errors.New("nothing to amend")
	}
	f.replayed[len(f.replayed)-1].Message = message
	return nil
}

func (f *fakeGit) ForceBranch(ctx context.Context, branch, ref string) error {
	f.commits = f.replayed
	f.replayed = nil
	f.detached = false
	return nil
}

// fakeCodec is a line-based stand-in for the git interpret-trailers
// subprocess: any "Key: value" line with a known key counts as a
// trailer.
type fakeCodec struct{}

var knownTrailerKeys = []string{
	model.TrailerCommitID,
	model.TrailerGroup,
	model.TrailerGroupStart,
	model.TrailerGroupEnd,
}

func (fakeCodec) Parse(ctx context.Context, message string) (map[string]string, error) {
	trailers := make(map[string]string)
	for _, line := range strings.Split(message, "\n") {
		for _, key := range knownTrailerKeys {
			if strings.HasPrefix(line, key+": ") {
				trailers[key] = strings.TrimPrefix(line, key+": ")
			}
		}
	}
	return trailers, nil
}

func (c fakeCodec) Append(ctx context.Context, message string, trailers map[string]string) (string, error) {
	keys := make([]string, 0, len(trailers))
	for k := range trailers {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	out, err := c.Remove(ctx, message, keys...)
	if err != nil {
		return "", err
	}
	if !strings.HasSuffix(out, "\n") {
		out += "\n"
	}
	for _, k := range keys {
		out += k + ": " + trailers[k] + "\n"
	}
	return out, nil
}

func (fakeCodec) Remove(ctx context.Context, message string, keys ...string) (string, error) {
	var kept []string
	for _, line := range strings.Split(message, "\n") {
		drop := false
		for _, key := range keys {
			if strings.HasPrefix(line, key+": ") {
				drop = true
			}
		}
		if !drop {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n"), nil
}

// fakeTitles is a map-backed title store.
type fakeTitles struct {
	titles map[string]string
}

func newFakeTitles() *fakeTitles {
	return &fakeTitles{titles: map[string]string{}}
}

func (f *fakeTitles) All(ctx context.Context) (model.GroupTitles, error) {
	out := make(model.GroupTitles, len(f.titles))
	for k, v := range f.titles {
		out[k] = v
	}
	return out, nil
}

func (f *fakeTitles) SetTitle(ctx context.Context, groupID, title string) error {
	f.titles[groupID] = title
	return nil
}

func (f *fakeTitles) DeleteTitle(ctx context.Context, groupID string) error {
	delete(f.titles, groupID)
	return nil
}

func (f *fakeTitles) DeleteAll(ctx context.Context) error {
	f.titles = map[string]string{}
	return nil
}

// seqIDs returns a deterministic id generator: id-1, id-2, ...
func seqIDs() func() string {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("id-%d", n)
	}
}

// reload reads the fake repository's current stack the way the engine
// does, with trailers parsed.
func reload(t *testing.T, g *fakeGit) []model.Commit {
	t.Helper()
	commits, err := stack.Load(context.Background(), g, fakeCodec{}, "BASE", "HEAD-TIP")
	require.NoError(t, err)
	return commits
}

func newTestEngine(g *fakeGit, titles *fakeTitles) *Engine {
	return New(g, fakeCodec{}, titles, "main", WithIDGenerator(seqIDs()))
}
