package review

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRepoFromURL(t *testing.T) {
	tests := []struct {
		name    string
		url     string
		owner   string
		repo    string
		wantErr bool
	}{
		{name: "ssh", url: "git@github.com:acme/widgets.git", owner: "acme", repo: "widgets"},
		{name: "https", url: "https://github.com/acme/widgets.git", owner: "acme", repo: "widgets"},
		{name: "https no suffix", url: "https://github.com/acme/widgets", owner: "acme", repo: "widgets"},
		{name: "bare path", url: "not-a-remote", wantErr: true},
		{name: "missing repo", url: "git@github.com:acme", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			owner, repo, err := RepoFromURL(tt.url)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.owner, owner)
			assert.Equal(t, tt.repo, repo)
		})
	}
}

func TestBranchForUnit(t *testing.T) {
	assert.Equal(t, "stackpr/a1b2c3d4", BranchForUnit("a1b2c3d4"))
}

func TestGitHub_PRForUnit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/pulls", r.URL.Path)
		assert.Equal(t, "acme:stackpr/a1b2c3d4", r.URL.Query().Get("head"))
		assert.Equal(t, "Bearer test-token", r.Header.Get("Authorization"))
		json.NewEncoder(w).Encode([]map[string]any{{
			"number":   42,
			"title":    "Widget rework",
			"state":    "open",
			"html_url": "https://github.com/acme/widgets/pull/42",
			"head":     map[string]any{"ref": "stackpr/a1b2c3d4"},
			"base":     map[string]any{"ref": "main"},
		}})
	}))
	defer server.Close()

	g := NewGitHub("test-token", "acme", "widgets", WithBaseURL(server.URL))
	pr, err := g.PRForUnit(context.Background(), "a1b2c3d4")
	require.NoError(t, err)
	require.NotNil(t, pr)
	assert.Equal(t, 42, pr.Number)
	assert.Equal(t, "Widget rework", pr.Title)
	assert.Equal(t, "stackpr/a1b2c3d4", pr.HeadRef)
}

func TestGitHub_PRForUnit_None(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]map[string]any{})
	}))
	defer server.Close()

	g := NewGitHub("test-token", "acme", "widgets", WithBaseURL(server.URL))
	pr, err := g.PRForUnit(context.Background(), "a1b2c3d4")
	require.NoError(t, err)
	assert.Nil(t, pr)
}

func TestGitHub_CreatePR(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/repos/acme/widgets/pulls", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "stackpr/a1b2c3d4", body["head"])
		assert.Equal(t, "main", body["base"])
		assert.Equal(t, "Widget rework", body["title"])

		w.WriteHeader(http.StatusCreated)
		json.NewEncoder(w).Encode(map[string]any{
			"number": 43,
			"title":  "Widget rework",
			"state":  "open",
			"draft":  true,
			"head":   map[string]any{"ref": "stackpr/a1b2c3d4"},
			"base":   map[string]any{"ref": "main"},
		})
	}))
	defer server.Close()

	g := NewGitHub("test-token", "acme", "widgets", WithBaseURL(server.URL))
	pr, err := g.CreatePR(context.Background(), CreatePRRequest{
		UnitID: "a1b2c3d4",
		Title:  "Widget rework",
		Body:   "part of the widget stack",
		Base:   "main",
		Draft:  true,
	})
	require.NoError(t, err)
	assert.Equal(t, 43, pr.Number)
	assert.True(t, pr.Draft)
}

func TestGitHub_MergePR(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/repos/acme/widgets/pulls/42/merge", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "squash", body["merge_method"])

		json.NewEncoder(w).Encode(map[string]any{"merged": true})
	}))
	defer server.Close()

	g := NewGitHub("test-token", "acme", "widgets", WithBaseURL(server.URL))
	require.NoError(t, g.MergePR(context.Background(), 42, "squash"))
}

func TestGitHub_PRStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/repos/acme/widgets/pulls/42", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]any{
			"number": 42,
			"state":  "closed",
			"title":  "Widget rework",
		})
	}))
	defer server.Close()

	g := NewGitHub("test-token", "acme", "widgets", WithBaseURL(server.URL))
	pr, err := g.PRStatus(context.Background(), 42)
	require.NoError(t, err)
	assert.Equal(t, "closed", pr.State)
}
