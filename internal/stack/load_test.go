package stack

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stackpr/internal/model"
)

type fakeLister struct {
	commits []model.Commit
	err     error
}

func (f *fakeLister) Commits(ctx context.Context, base, head string) ([]model.Commit, error) {
	return f.commits, f.err
}

type fakeParser struct {
	trailers map[string]map[string]string // message -> trailers
	err      error
}

func (f *fakeParser) Parse(ctx context.Context, message string) (map[string]string, error) {
	if f.err != nil {
		return nil, f.err
	}
	if t, ok := f.trailers[message]; ok {
		return t, nil
	}
	return map[string]string{}, nil
}

func TestLoad_FillsTrailers(t *testing.T) {
	lister := &fakeLister{commits: []model.Commit{
		{Hash: "aaa1111111", Subject: "A", Message: "A\n\nCommit-Id: a1a1a1a1\n"},
		{Hash: "bbb2222222", Subject: "B", Message: "B\n"},
	}}
	parser := &fakeParser{trailers: map[string]map[string]string{
		"A\n\nCommit-Id: a1a1a1a1\n": {model.TrailerCommitID: "a1a1a1a1"},
	}}

	commits, err := Load(context.Background(), lister, parser, "main", "HEAD")
	require.NoError(t, err)
	require.Len(t, commits, 2)
	assert.Equal(t, "a1a1a1a1", commits[0].CommitID())
	assert.Empty(t, commits[1].Trailers)
}

func TestLoad_ListerError(t *testing.T) {
	lister := &fakeLister{err: errors.New("boom")}
	_, err := Load(context.Background(), lister, &fakeParser{}, "main", "HEAD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "main..HEAD")
}

func TestLoad_ParserErrorNamesCommit(t *testing.T) {
	lister := &fakeLister{commits: []model.Commit{
		{Hash: "deadbeefcafe00112233", Subject: "A", Message: "A\n"},
	}}
	parser := &fakeParser{err: errors.New("bad message")}

	_, err := Load(context.Background(), lister, parser, "main", "HEAD")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "deadbeef")
}
