package harness

import (
	"encoding/json"
	"testing"

	"github.com/sebdah/goldie/v2"

	"github.com/example/stackpr/internal/stack"
)

// Snapshot is the golden-file form of one scenario outcome. The
// validator's full result is embedded so a change to unit detection or
// violation reporting shows up as a golden diff.
type Snapshot struct {
	Scenario string                 `json:"scenario"`
	Result   stack.ValidationResult `json:"result"`
}

// RunWithGolden executes a scenario, asserts its expectation, and
// compares the validator's outcome against the golden file stored at
// testdata/golden/{scenario.Name}.golden.
//
// To regenerate golden files, run:
//
//	go test ./internal/harness -update
func RunWithGolden(t *testing.T, scenario *Scenario) *Result {
	t.Helper()

	result := Run(scenario)
	for _, failure := range result.Failures {
		t.Errorf("%s: %s", scenario.Name, failure)
	}

	snapshot := Snapshot{
		Scenario: scenario.Name,
		Result:   result.Validation,
	}
	data, err := json.MarshalIndent(snapshot, "", "  ")
	if err != nil {
		t.Fatalf("marshal snapshot: %v", err)
	}

	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)
	g.Assert(t, scenario.Name, data)

	return result
}
