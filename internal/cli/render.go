package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/repair"
	"github.com/example/stackpr/internal/stack"
)

// renderUnits writes the unit list in text form, oldest unit first.
func renderUnits(w io.Writer, units []model.PRUnit) {
	if len(units) == 0 {
		fmt.Fprintln(w, "stack is empty")
		return
	}
	for _, u := range units {
		if u.Type == model.UnitGroup {
			fmt.Fprintf(w, "%-10s group   %s (%d commits)\n", u.ID, unitTitle(u), len(u.Commits))
			for i := range u.Commits {
				fmt.Fprintf(w, "           %-10s %s\n", u.CommitIDs[i], u.Subjects[i])
			}
			continue
		}
		fmt.Fprintf(w, "%-10s single  %s\n", u.ID, u.Subjects[0])
	}
}

// unitTitle is a group's display title: the stored one when present,
// else the first member's subject.
func unitTitle(u model.PRUnit) string {
	if u.Title != nil && *u.Title != "" {
		return *u.Title
	}
	return u.Subjects[0]
}

// renderViolation writes a split-group report with the repair hint.
func renderViolation(w io.Writer, verr *stack.ValidationError) {
	fmt.Fprintf(w, "✗ %s: group %q (%s) is no longer contiguous\n", verr.Code, verr.GroupID, verr.GroupTitle)
	fmt.Fprintln(w, "  members:")
	for _, hash := range verr.GroupCommits {
		fmt.Fprintf(w, "    %s\n", model.ShortHash(hash))
	}
	fmt.Fprintln(w, "  interrupted by:")
	for _, hash := range verr.InterruptingCommits {
		fmt.Fprintf(w, "    %s\n", model.ShortHash(hash))
	}
	fmt.Fprintln(w, "  run 'stackpr repair' to pull the group back together")
}

// reportResult renders one repair outcome and maps it to an exit code.
// Conflicts leave the repository mid-rewrite, so the text form carries
// the abort hint.
func reportResult(f *OutputFormatter, result repair.Result, successMsg string) error {
	if result.Success {
		if f.Format == "json" {
			payload := map[string]any{"message": successMsg}
			if result.GroupID != "" {
				payload["group_id"] = result.GroupID
			}
			return f.Success(payload)
		}
		fmt.Fprintf(f.Writer, "✓ %s\n", successMsg)
		if result.GroupID != "" {
			fmt.Fprintf(f.Writer, "  group id: %s\n", result.GroupID)
		}
		return nil
	}

	if result.ConflictFile != "" {
		_ = f.Error("CONFLICT", result.Err.Error(), map[string]string{"file": result.ConflictFile})
		if f.Format != "json" {
			fmt.Fprintln(f.Writer, "resolve the conflict, or run 'stackpr repair --abort' to roll back")
		}
		return NewExitError(ExitFailure, result.Err.Error())
	}

	_ = f.Error(errorCode(result.Err), result.Err.Error(), nil)
	return NewExitError(ExitFailure, result.Err.Error())
}

// commandError formats a setup or subprocess failure and preserves its
// exit code.
func commandError(f *OutputFormatter, err error) error {
	_ = f.Error("COMMAND_ERROR", err.Error(), nil)
	return err
}

// errorCode maps typed failures to stable output codes.
func errorCode(err error) string {
	switch {
	case stack.IsSplitGroup(err):
		return string(stack.ErrCodeSplitGroup)
	case stack.IsNotFound(err):
		return "NOT_FOUND"
	case stack.IsAmbiguous(err):
		return "AMBIGUOUS"
	}
	var merr *repair.MigrationError
	if errors.As(err, &merr) {
		return string(merr.Code)
	}
	return "ERROR"
}
