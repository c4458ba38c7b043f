package gitx

import (
	"context"
	"strings"

	"github.com/example/stackpr/internal/model"
)

// Field and record separators for the log pretty format. Commit
// messages may contain any printable text, so the parse relies on
// control characters git never emits on its own.
const (
	fieldSep  = "\x1f"
	recordSep = "\x1e"
)

// Commits lists the commits strictly above base up to and including
// head, oldest first. Trailers are left unparsed; the trailer codec
// fills them in from Message one commit at a time.
func (r *Runner) Commits(ctx context.Context, base, head string) ([]model.Commit, error) {
	out, err := r.run(ctx,
		"log", "--reverse",
		"--format=%H"+fieldSep+"%s"+fieldSep+"%b"+fieldSep+"%B"+recordSep,
		base+".."+head,
	)
	if err != nil {
		return nil, err
	}
	return parseCommitRecords(out), nil
}

// CommitMessage returns the full raw message of one commit.
func (r *Runner) CommitMessage(ctx context.Context, hash string) (string, error) {
	return r.run(ctx, "show", "-s", "--format=%B", hash)
}

// parseCommitRecords splits the delimited log output into commits.
func parseCommitRecords(out string) []model.Commit {
	var commits []model.Commit
	for _, record := range strings.Split(out, recordSep) {
		record = strings.TrimLeft(record, "\n")
		if strings.TrimSpace(record) == "" {
			continue
		}
		parts := strings.SplitN(record, fieldSep, 4)
		if len(parts) < 4 {
			continue
		}
		commits = append(commits, model.Commit{
			Hash:    strings.TrimSpace(parts[0]),
			Subject: strings.TrimSpace(parts[1]),
			Body:    strings.TrimRight(parts[2], "\n"),
			Message: strings.TrimRight(parts[3], "\n"),
		})
	}
	return commits
}
