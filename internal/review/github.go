package review

import (
	"context"
	"fmt"
	"net/http"

	"github.com/google/go-github/v60/github"
)

// GitHub implements Service against the GitHub REST API.
type GitHub struct {
	client *github.Client
	owner  string
	repo   string
}

// Option configures the GitHub service.
type Option func(*GitHub)

// WithBaseURL points the client at a custom API endpoint (for tests
// and GitHub Enterprise).
func WithBaseURL(url string) Option {
	return func(g *GitHub) {
		g.client.BaseURL, _ = g.client.BaseURL.Parse(url + "/")
	}
}

// NewGitHub creates a Service for one owner/repo pair.
func NewGitHub(token, owner, repo string, opts ...Option) *GitHub {
	httpClient := &http.Client{
		Transport: &tokenTransport{token: token},
	}

	g := &GitHub{
		client: github.NewClient(httpClient),
		owner:  owner,
		repo:   repo,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// tokenTransport adds the authorization header to requests.
type tokenTransport struct {
	token string
}

func (t *tokenTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if t.token != "" {
		req.Header.Set("Authorization", "Bearer "+t.token)
	}
	return http.DefaultTransport.RoundTrip(req)
}

// PRForUnit implements Service.
func (g *GitHub) PRForUnit(ctx context.Context, unitID string) (*PR, error) {
	prs, _, err := g.client.PullRequests.List(ctx, g.owner, g.repo, &github.PullRequestListOptions{
		Head:  g.owner + ":" + BranchForUnit(unitID),
		State: "open",
	})
	if err != nil {
		return nil, fmt.Errorf("listing pull requests: %w", err)
	}
	if len(prs) == 0 {
		return nil, nil
	}
	return fromGitHub(prs[0]), nil
}

// CreatePR implements Service.
func (g *GitHub) CreatePR(ctx context.Context, req CreatePRRequest) (*PR, error) {
	head := BranchForUnit(req.UnitID)
	pr, _, err := g.client.PullRequests.Create(ctx, g.owner, g.repo, &github.NewPullRequest{
		Title: &req.Title,
		Body:  &req.Body,
		Head:  &head,
		Base:  &req.Base,
		Draft: &req.Draft,
	})
	if err != nil {
		return nil, fmt.Errorf("creating pull request: %w", err)
	}
	return fromGitHub(pr), nil
}

// PRStatus implements Service.
func (g *GitHub) PRStatus(ctx context.Context, number int) (*PR, error) {
	pr, _, err := g.client.PullRequests.Get(ctx, g.owner, g.repo, number)
	if err != nil {
		return nil, fmt.Errorf("fetching pull request #%d: %w", number, err)
	}
	return fromGitHub(pr), nil
}

// MergePR implements Service.
func (g *GitHub) MergePR(ctx context.Context, number int, method string) error {
	_, _, err := g.client.PullRequests.Merge(ctx, g.owner, g.repo, number, "", &github.PullRequestOptions{
		MergeMethod: method,
	})
	if err != nil {
		return fmt.Errorf("merging pull request #%d: %w", number, err)
	}
	return nil
}

func fromGitHub(pr *github.PullRequest) *PR {
	return &PR{
		Number:  pr.GetNumber(),
		Title:   pr.GetTitle(),
		Body:    pr.GetBody(),
		State:   pr.GetState(),
		URL:     pr.GetHTMLURL(),
		HeadRef: pr.GetHead().GetRef(),
		BaseRef: pr.GetBase().GetRef(),
		Draft:   pr.GetDraft(),
	}
}
