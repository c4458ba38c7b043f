// Package harness runs conformance scenarios against the stack
// detector and validator. A scenario is a YAML commit sequence plus
// the expected outcome; the harness feeds it through stack.Validate
// and checks the result, and golden snapshots pin the exact shape of
// the derived units and violation reports.
package harness

import (
	"fmt"
	"strings"

	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/stack"
)

// Result is the outcome of running one scenario.
type Result struct {
	// Passed reports whether the validator's outcome matched the
	// scenario's expectation.
	Passed bool

	// Failures lists every mismatch found, empty when Passed.
	Failures []string

	// Validation is the validator's actual outcome, used for golden
	// snapshots.
	Validation stack.ValidationResult
}

func (r *Result) fail(format string, args ...any) {
	r.Failures = append(r.Failures, fmt.Sprintf(format, args...))
}

// Run executes a scenario: builds the commit sequence, validates it,
// and compares the outcome against the scenario's expectation.
func Run(scenario *Scenario) *Result {
	commits := buildCommits(scenario.Commits)
	titles := model.GroupTitles(scenario.Titles)

	result := &Result{Validation: stack.Validate(commits, titles)}
	compare(scenario, result)
	result.Passed = len(result.Failures) == 0
	return result
}

// buildCommits converts scenario steps into model commits. The message
// is reconstructed so the sequence looks like real parsed history.
func buildCommits(steps []CommitStep) []model.Commit {
	commits := make([]model.Commit, 0, len(steps))
	for _, s := range steps {
		var body strings.Builder
		for k, v := range s.Trailers {
			fmt.Fprintf(&body, "%s: %s\n", k, v)
		}
		trailers := s.Trailers
		if trailers == nil {
			trailers = map[string]string{}
		}
		commits = append(commits, model.Commit{
			Hash:     s.Hash,
			Subject:  s.Subject,
			Body:     body.String(),
			Message:  s.Subject + "\n\n" + body.String(),
			Trailers: trailers,
		})
	}
	return commits
}

// compare checks the validation outcome against the expectation,
// collecting every mismatch instead of stopping at the first.
func compare(scenario *Scenario, r *Result) {
	actual := r.Validation

	if scenario.Expect.Valid != actual.OK {
		r.fail("expected valid=%v, validator reported valid=%v", scenario.Expect.Valid, actual.OK)
		return
	}

	if !scenario.Expect.Valid {
		want := scenario.Expect.Violation
		if actual.Err.GroupID != want.GroupID {
			r.fail("violation group: expected %q, got %q", want.GroupID, actual.Err.GroupID)
		}
		if want.GroupTitle != "" && actual.Err.GroupTitle != want.GroupTitle {
			r.fail("violation title: expected %q, got %q", want.GroupTitle, actual.Err.GroupTitle)
		}
		if !equalStrings(want.InterruptingCommits, actual.Err.InterruptingCommits) {
			r.fail("interrupting commits: expected %v, got %v", want.InterruptingCommits, actual.Err.InterruptingCommits)
		}
		return
	}

	if len(scenario.Expect.Units) != len(actual.Units) {
		r.fail("expected %d unit(s), got %d", len(scenario.Expect.Units), len(actual.Units))
		return
	}
	for i, want := range scenario.Expect.Units {
		got := actual.Units[i]
		if string(got.Type) != want.Type {
			r.fail("unit %d: expected type %s, got %s", i, want.Type, got.Type)
		}
		if got.ID != want.ID {
			r.fail("unit %d: expected id %q, got %q", i, want.ID, got.ID)
		}
		if want.Title != "" && (got.Title == nil || *got.Title != want.Title) {
			r.fail("unit %d: expected title %q, got %v", i, want.Title, got.Title)
		}
		if !equalStrings(want.Commits, got.Commits) {
			r.fail("unit %d: expected commits %v, got %v", i, want.Commits, got.Commits)
		}
	}
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
