// Package review is the boundary to the code-review host. Commands
// receive a Service value; nothing in this package reads global state.
package review

import (
	"context"
	"fmt"
	"strings"
)

// PR is the host-independent view of one pull request.
type PR struct {
	Number  int
	Title   string
	Body    string
	State   string
	URL     string
	HeadRef string
	BaseRef string
	Draft   bool
}

// CreatePRRequest describes a pull request to open for one stack unit.
type CreatePRRequest struct {
	UnitID string
	Title  string
	Body   string
	Base   string
	Draft  bool
}

// Service is the set of review-host operations the CLI uses.
type Service interface {
	// PRForUnit finds the open pull request whose head is the unit's
	// branch, or nil when none exists.
	PRForUnit(ctx context.Context, unitID string) (*PR, error)

	// CreatePR opens a pull request for the unit's branch.
	CreatePR(ctx context.Context, req CreatePRRequest) (*PR, error)

	// PRStatus fetches the current state of a pull request by number.
	PRStatus(ctx context.Context, number int) (*PR, error)

	// MergePR merges a pull request with the given method
	// ("merge", "squash" or "rebase").
	MergePR(ctx context.Context, number int, method string) error
}

// BranchForUnit is the branch a unit's pull request is opened from.
// The unit id is stable across rewrites, so the branch is too.
func BranchForUnit(unitID string) string {
	return "stackpr/" + unitID
}

// RepoFromURL extracts the owner and repository name from a git remote
// URL in either ssh (git@host:owner/repo.git) or https form.
func RepoFromURL(rawURL string) (owner, repo string, err error) {
	path := rawURL
	if i := strings.Index(path, "://"); i >= 0 {
		path = path[i+3:]
		if j := strings.Index(path, "/"); j >= 0 {
			path = path[j+1:]
		}
	} else if i := strings.Index(path, ":"); i >= 0 {
		path = path[i+1:]
	}
	path = strings.TrimSuffix(strings.Trim(path, "/"), ".git")

	parts := strings.Split(path, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", fmt.Errorf("cannot parse owner/repo from remote URL %q", rawURL)
	}
	return parts[0], parts[1], nil
}
