package config

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGit struct {
	defaultBranch string
	originURL     string
	originErr     error
	userName      string
}

func (f *fakeGit) DefaultBranch(ctx context.Context, remote string) (string, error) {
	return f.defaultBranch, nil
}

func (f *fakeGit) OriginURL(ctx context.Context, remote string) (string, error) {
	return f.originURL, f.originErr
}

func (f *fakeGit) UserName(ctx context.Context) (string, error) {
	return f.userName, nil
}

func TestResolve_Defaults(t *testing.T) {
	dir := t.TempDir()
	g := &fakeGit{
		defaultBranch: "main",
		originURL:     "git@github.com:acme/widgets.git",
		userName:      "Ada",
	}

	cfg, err := Resolve(context.Background(), g, dir)
	require.NoError(t, err)

	assert.Equal(t, "main", cfg.Trunk)
	assert.Equal(t, "origin", cfg.Remote)
	assert.Equal(t, "git@github.com:acme/widgets.git", cfg.OriginURL)
	assert.Equal(t, "Ada", cfg.Username)
}

func TestResolve_FileOverrides(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".stackpr.yaml", "trunk: develop\nremote: upstream\n")

	g := &fakeGit{defaultBranch: "main"}
	cfg, err := Resolve(context.Background(), g, dir)
	require.NoError(t, err)

	assert.Equal(t, "develop", cfg.Trunk, "file trunk wins over the remote's default branch")
	assert.Equal(t, "upstream", cfg.Remote)
}

func TestResolve_MalformedFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".stackpr.yaml", "trunk: [unclosed\n")

	_, err := Resolve(context.Background(), &fakeGit{}, dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ".stackpr.yaml")
}

func TestResolve_NoRemote(t *testing.T) {
	dir := t.TempDir()
	g := &fakeGit{
		defaultBranch: "main",
		originErr:     errors.New("git remote: no such remote 'origin'"),
	}

	cfg, err := Resolve(context.Background(), g, dir)
	require.NoError(t, err, "local-only repositories resolve without a remote")
	assert.Equal(t, "", cfg.OriginURL)
}

func TestResolve_EnvFileToken(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, ".env", "GITHUB_TOKEN=ghp_test123\n")
	t.Setenv("GITHUB_TOKEN", "") // godotenv does not override set vars
	os.Unsetenv("GITHUB_TOKEN")

	cfg, err := Resolve(context.Background(), &fakeGit{defaultBranch: "main"}, dir)
	require.NoError(t, err)
	assert.Equal(t, "ghp_test123", cfg.GitHubToken)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
