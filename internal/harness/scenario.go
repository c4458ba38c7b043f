package harness

import (
	"bytes"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Scenario defines one conformance case: a commit sequence with its
// trailers and stored titles, plus the expected validation outcome.
type Scenario struct {
	// Name uniquely identifies this scenario and names its golden file.
	Name string `yaml:"name"`

	// Description explains what this scenario exercises.
	Description string `yaml:"description"`

	// Commits is the stack sequence, oldest first.
	Commits []CommitStep `yaml:"commits"`

	// Titles maps group ids to stored display titles.
	Titles map[string]string `yaml:"titles,omitempty"`

	// Expect is the outcome the validator must produce.
	Expect Expectation `yaml:"expect"`
}

// CommitStep describes one commit of the sequence.
type CommitStep struct {
	Hash     string            `yaml:"hash"`
	Subject  string            `yaml:"subject"`
	Trailers map[string]string `yaml:"trailers,omitempty"`
}

// Expectation is the outcome a scenario asserts: a valid stack with
// the given units, or a split-group violation.
type Expectation struct {
	Valid bool `yaml:"valid"`

	// Units lists the expected units in stack order. Checked only when
	// Valid is true.
	Units []ExpectedUnit `yaml:"units,omitempty"`

	// Violation is the expected split-group report. Required when
	// Valid is false.
	Violation *ExpectedViolation `yaml:"violation,omitempty"`
}

// ExpectedUnit names one expected unit.
type ExpectedUnit struct {
	Type    string   `yaml:"type"` // "single" | "group"
	ID      string   `yaml:"id"`
	Title   string   `yaml:"title,omitempty"`
	Commits []string `yaml:"commits"` // member hashes, oldest first
}

// ExpectedViolation names the expected split group and interruption.
type ExpectedViolation struct {
	GroupID             string   `yaml:"group_id"`
	GroupTitle          string   `yaml:"group_title,omitempty"`
	InterruptingCommits []string `yaml:"interrupting_commits"`
}

// LoadScenario reads and parses a scenario YAML file.
// Returns an error if the file doesn't exist, is malformed, contains
// unknown fields (typos), or is missing required fields.
func LoadScenario(path string) (*Scenario, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	// Strict field validation catches typos like "expectation:" vs "expect:"
	var scenario Scenario
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)
	if err := decoder.Decode(&scenario); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := validateScenario(&scenario); err != nil {
		return nil, fmt.Errorf("invalid scenario: %w", err)
	}

	return &scenario, nil
}

// validateScenario checks that required fields are present and valid.
func validateScenario(s *Scenario) error {
	if s.Name == "" {
		return fmt.Errorf("name is required")
	}
	if s.Description == "" {
		return fmt.Errorf("description is required")
	}
	if len(s.Commits) == 0 {
		return fmt.Errorf("commits list is required and must be non-empty")
	}

	seen := make(map[string]bool)
	for i, c := range s.Commits {
		if c.Hash == "" {
			return fmt.Errorf("commits[%d]: hash is required", i)
		}
		if seen[c.Hash] {
			return fmt.Errorf("commits[%d]: duplicate hash %q", i, c.Hash)
		}
		seen[c.Hash] = true
		if c.Subject == "" {
			return fmt.Errorf("commits[%d]: subject is required", i)
		}
	}

	if s.Expect.Valid {
		if s.Expect.Violation != nil {
			return fmt.Errorf("expect: violation set on a valid scenario")
		}
		if len(s.Expect.Units) == 0 {
			return fmt.Errorf("expect: units list is required for a valid scenario")
		}
		for i, u := range s.Expect.Units {
			if u.Type != "single" && u.Type != "group" {
				return fmt.Errorf("expect.units[%d]: type must be single or group, got %q", i, u.Type)
			}
			if u.ID == "" {
				return fmt.Errorf("expect.units[%d]: id is required", i)
			}
			if len(u.Commits) == 0 {
				return fmt.Errorf("expect.units[%d]: commits list is required", i)
			}
		}
		return nil
	}

	if s.Expect.Violation == nil {
		return fmt.Errorf("expect: violation is required for an invalid scenario")
	}
	if s.Expect.Violation.GroupID == "" {
		return fmt.Errorf("expect.violation: group_id is required")
	}
	return nil
}
