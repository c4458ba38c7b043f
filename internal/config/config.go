// Package config resolves the effective tool configuration from the
// repository, an optional .stackpr.yaml file and the environment.
//
// Resolution is explicit: Resolve queries git exactly once and returns
// a plain Config value. There is no package-level cache; a command that
// wants the values twice resolves twice or keeps the struct.
package config

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config is the fully resolved configuration for one invocation.
type Config struct {
	// Trunk is the branch stacks are stacked on, e.g. "main".
	Trunk string

	// Remote is the git remote the trunk and PRs live on.
	Remote string

	// OriginURL is the fetch URL of Remote, used to derive the
	// owner/repo pair for the review service.
	OriginURL string

	// Username is the configured git user.name, or "" when unset.
	Username string

	// GitHubToken authenticates review-service calls. Taken from the
	// environment (optionally loaded from a .env file); never written
	// to .stackpr.yaml.
	GitHubToken string
}

// fileConfig is the subset of Config that .stackpr.yaml may override.
type fileConfig struct {
	Trunk  string `yaml:"trunk"`
	Remote string `yaml:"remote"`
}

// GitInfo is the slice of git queries Resolve needs. *gitx.Runner
// satisfies it.
type GitInfo interface {
	DefaultBranch(ctx context.Context, remote string) (string, error)
	OriginURL(ctx context.Context, remote string) (string, error)
	UserName(ctx context.Context) (string, error)
}

// Resolve builds the effective configuration: defaults, then
// .stackpr.yaml overrides from dir, then git queries against the
// resulting remote. A .env file in dir is loaded into the process
// environment first so GITHUB_TOKEN can live there.
//
// A missing .stackpr.yaml or .env is not an error; a malformed
// .stackpr.yaml is.
func Resolve(ctx context.Context, git GitInfo, dir string) (Config, error) {
	// Best effort: the token usually comes from the ambient
	// environment instead.
	_ = godotenv.Load(filepath.Join(dir, ".env"))

	fc, err := loadFile(filepath.Join(dir, ".stackpr.yaml"))
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		Remote:      fc.Remote,
		Trunk:       fc.Trunk,
		GitHubToken: os.Getenv("GITHUB_TOKEN"),
	}
	if cfg.Remote == "" {
		cfg.Remote = "origin"
	}

	if cfg.Trunk == "" {
		trunk, err := git.DefaultBranch(ctx, cfg.Remote)
		if err != nil {
			return Config{}, fmt.Errorf("resolving default branch: %w", err)
		}
		cfg.Trunk = trunk
	}

	url, err := git.OriginURL(ctx, cfg.Remote)
	if err == nil {
		// No configured remote is fine for local-only commands.
		cfg.OriginURL = url
	}

	name, err := git.UserName(ctx)
	if err != nil {
		return Config{}, fmt.Errorf("resolving user.name: %w", err)
	}
	cfg.Username = name

	return cfg, nil
}

func loadFile(path string) (fileConfig, error) {
	var fc fileConfig
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return fc, nil
	}
	if err != nil {
		return fc, fmt.Errorf("reading %s: %w", filepath.Base(path), err)
	}
	if err := yaml.Unmarshal(data, &fc); err != nil {
		return fc, fmt.Errorf("parsing %s: %w", filepath.Base(path), err)
	}
	return fc, nil
}
