package stack

import (
	"context"
	"fmt"

	"github.com/example/stackpr/internal/model"
)

// CommitLister lists the raw commit sequence between two refs, oldest
// first. Implemented by gitx.Runner.
type CommitLister interface {
	Commits(ctx context.Context, base, head string) ([]model.Commit, error)
}

// TrailerParser extracts the trailer block of one commit message.
// Implemented by trailer.Codec.
type TrailerParser interface {
	Parse(ctx context.Context, message string) (map[string]string, error)
}

// Load reads the commit sequence between base and head and fills in
// each commit's trailers, one parser invocation per commit. The result
// is the snapshot every engine entry point operates on.
func Load(ctx context.Context, lister CommitLister, parser TrailerParser, base, head string) ([]model.Commit, error) {
	commits, err := lister.Commits(ctx, base, head)
	if err != nil {
		return nil, fmt.Errorf("list commits %s..%s: %w", base, head, err)
	}

	for i := range commits {
		trailers, err := parser.Parse(ctx, commits[i].Message)
		if err != nil {
			return nil, fmt.Errorf("parse trailers of %s: %w", model.ShortHash(commits[i].Hash), err)
		}
		commits[i].Trailers = trailers
	}
	return commits, nil
}
