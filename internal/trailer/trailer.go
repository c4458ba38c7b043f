// Package trailer parses and serializes the structured key-value
// metadata embedded in a commit message's trailer block.
//
// Both directions delegate the actual trailer grammar to git: each
// Parse or Append call is one `git interpret-trailers` invocation with
// the message piped in and the formatted message piped out. The codec
// itself holds no state.
package trailer

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"sort"
	"strings"
)

// Codec reads and writes commit-message trailers via the git
// subprocess. Dir selects the repository whose trailer configuration
// applies; empty means the process working directory.
type Codec struct {
	Dir string
}

// Parse extracts the trailer block of message into a key-value map.
// A message with no trailer block yields an empty map. Keys are
// case-sensitive exact strings; when a key repeats, the last
// occurrence wins.
func (c *Codec) Parse(ctx context.Context, message string) (map[string]string, error) {
	out, err := c.interpret(ctx, message, "--parse")
	if err != nil {
		return nil, fmt.Errorf("parse trailers: %w", err)
	}

	trailers := make(map[string]string)
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		key, value, found := strings.Cut(line, ":")
		if !found {
			continue
		}
		trailers[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	return trailers, nil
}

// Append returns message with the given trailers added to its trailer
// block. An existing trailer with the same key is replaced rather than
// duplicated, so repeated appends of the same key/value are idempotent.
// A message that ends without a trailing newline is not corrupted.
//
// Keys are emitted in sorted order so the rewritten message is
// deterministic for a given input.
func (c *Codec) Append(ctx context.Context, message string, trailers map[string]string) (string, error) {
	if len(trailers) == 0 {
		return message, nil
	}

	args := []string{"--if-exists", "replace"}
	for _, key := range sortedKeys(trailers) {
		args = append(args, "--trailer", key+"="+trailers[key])
	}

	out, err := c.interpret(ctx, message, args...)
	if err != nil {
		return "", fmt.Errorf("append trailers: %w", err)
	}
	return out, nil
}

// Remove returns message with the given trailer keys stripped from its
// trailer block. Keys that are not present are ignored.
func (c *Codec) Remove(ctx context.Context, message string, keys ...string) (string, error) {
	if len(keys) == 0 {
		return message, nil
	}

	// Replacing a trailer with an empty value and trimming empties is
	// how interpret-trailers expresses deletion.
	args := []string{"--if-exists", "replace", "--trim-empty"}
	for _, key := range keys {
		args = append(args, "--trailer", key+"=")
	}

	out, err := c.interpret(ctx, message, args...)
	if err != nil {
		return "", fmt.Errorf("remove trailers: %w", err)
	}
	return out, nil
}

// interpret runs one git interpret-trailers invocation over message.
func (c *Codec) interpret(ctx context.Context, message string, args ...string) (string, error) {
	cmdArgs := append([]string{"interpret-trailers"}, args...)
	cmd := exec.CommandContext(ctx, "git", cmdArgs...)
	cmd.Dir = c.Dir
	cmd.Stdin = strings.NewReader(message)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("git interpret-trailers: %s", msg)
		}
		return "", fmt.Errorf("git interpret-trailers: %w", err)
	}
	return strings.TrimRight(stdout.String(), "\n"), nil
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
