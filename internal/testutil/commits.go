// Package testutil provides commit-sequence builders shared by the
// stack and repair tests.
//
// Builders produce deterministic in-memory commit snapshots so those
// tests never touch a real repository.
package testutil

import (
	"github.com/example/stackpr/internal/model"
)

// CommitBuilder accumulates one synthetic commit.
type CommitBuilder struct {
	commit model.Commit
}

// C starts a commit with the given hash and subject. The message is
// derived from the subject; ID and Group add trailers both to the
// trailer map and the message text, mirroring what a real parse of the
// rewritten message would produce.
func C(hash, subject string) *CommitBuilder {
	return &CommitBuilder{commit: model.Commit{
		Hash:     hash,
		Subject:  subject,
		Message:  subject + "\n",
		Trailers: map[string]string{},
	}}
}

// ID sets the commit's Commit-Id trailer.
func (b *CommitBuilder) ID(id string) *CommitBuilder {
	b.commit.Trailers[model.TrailerCommitID] = id
	b.commit.Message += "\n" + model.TrailerCommitID + ": " + id + "\n"
	return b
}

// Group sets the commit's Group trailer.
func (b *CommitBuilder) Group(groupID string) *CommitBuilder {
	b.commit.Trailers[model.TrailerGroup] = groupID
	b.commit.Message += "\n" + model.TrailerGroup + ": " + groupID + "\n"
	return b
}

// Trailer sets an arbitrary trailer, used by marker-era migration tests.
func (b *CommitBuilder) Trailer(key, value string) *CommitBuilder {
	b.commit.Trailers[key] = value
	b.commit.Message += "\n" + key + ": " + value + "\n"
	return b
}

// Build returns the finished commit value.
func (b *CommitBuilder) Build() model.Commit {
	return b.commit
}

// Seq builds an ordered commit sequence, oldest first.
func Seq(builders ...*CommitBuilder) []model.Commit {
	commits := make([]model.Commit, 0, len(builders))
	for _, b := range builders {
		commits = append(commits, b.Build())
	}
	return commits
}
