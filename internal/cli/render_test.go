package cli

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/repair"
	"github.com/example/stackpr/internal/stack"
)

func TestRenderUnits(t *testing.T) {
	title := "Widget rework"
	units := []model.PRUnit{
		{
			Type:      model.UnitSingle,
			ID:        "a1a1a1a1",
			CommitIDs: []string{"a1a1a1a1"},
			Commits:   []string{"aaa"},
			Subjects:  []string{"Fix parser"},
		},
		{
			Type:      model.UnitGroup,
			ID:        "g1g1g1g1",
			Title:     &title,
			CommitIDs: []string{"b2b2b2b2", "c3c3c3c3"},
			Commits:   []string{"bbb", "ccc"},
			Subjects:  []string{"Add widget", "Wire widget"},
		},
	}

	buf := &bytes.Buffer{}
	renderUnits(buf, units)

	out := buf.String()
	assert.Contains(t, out, "a1a1a1a1")
	assert.Contains(t, out, "single")
	assert.Contains(t, out, "Fix parser")
	assert.Contains(t, out, "Widget rework (2 commits)")
	assert.Contains(t, out, "Wire widget")
}

func TestRenderUnits_Empty(t *testing.T) {
	buf := &bytes.Buffer{}
	renderUnits(buf, nil)
	assert.Contains(t, buf.String(), "stack is empty")
}

func TestUnitTitle_FallsBackToSubject(t *testing.T) {
	u := model.PRUnit{
		Type:     model.UnitGroup,
		ID:       "g1g1g1g1",
		Subjects: []string{"Add widget"},
	}
	assert.Equal(t, "Add widget", unitTitle(u))
}

func TestRenderViolation(t *testing.T) {
	buf := &bytes.Buffer{}
	renderViolation(buf, &stack.ValidationError{
		Code:                stack.ErrCodeSplitGroup,
		GroupID:             "g1g1g1g1",
		GroupTitle:          "Widget rework",
		GroupCommits:        []string{"aaa1111111", "ccc3333333"},
		InterruptingCommits: []string{"bbb2222222"},
	})

	out := buf.String()
	assert.Contains(t, out, "SPLIT_GROUP")
	assert.Contains(t, out, "Widget rework")
	assert.Contains(t, out, "bbb22222")
	assert.Contains(t, out, "stackpr repair")
}

func TestReportResult_Conflict(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := reportResult(formatter, repair.Result{
		Err:          errors.New("cherry-pick aaa1111111: conflict"),
		ConflictFile: "widget.go",
	}, "")
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))
	assert.Contains(t, buf.String(), "repair --abort")
}

func TestReportResult_SuccessWithGroupID(t *testing.T) {
	buf := &bytes.Buffer{}
	formatter := &OutputFormatter{Format: "text", Writer: buf}

	err := reportResult(formatter, repair.Result{Success: true, GroupID: "g1g1g1g1"}, "grouped")
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "grouped")
	assert.Contains(t, buf.String(), "g1g1g1g1")
}

func TestErrorCode(t *testing.T) {
	assert.Equal(t, "SPLIT_GROUP", errorCode(&stack.ValidationError{Code: stack.ErrCodeSplitGroup}))
	assert.Equal(t, "NOT_FOUND", errorCode(&stack.NotFoundError{Identifier: "zz"}))
	assert.Equal(t, "AMBIGUOUS", errorCode(&stack.AmbiguousError{Identifier: "a"}))
	assert.Equal(t, "UNCLOSED_GROUP", errorCode(&repair.MigrationError{Code: repair.MigrationUnclosedGroup}))
	assert.Equal(t, "ERROR", errorCode(errors.New("boom")))
}
