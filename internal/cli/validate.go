package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/stackpr/internal/stack"
)

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check the group contiguity invariant",
		Long: `Check that every group's members are contiguous in the stack.
Exits 0 when the stack is well-formed and 1 with a violation report
when a group has been split by a rewrite.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, cmd)
		},
	}
}

func runValidate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	env, err := openEnv(ctx, opts)
	if err != nil {
		return commandError(formatter, err)
	}
	defer env.Close()

	commits, titles, err := env.snapshot(ctx)
	if err != nil {
		return commandError(formatter, err)
	}

	result := stack.Validate(commits, titles)
	if result.OK {
		if formatter.Format == "json" {
			return formatter.Success(map[string]any{"valid": true, "units": len(result.Units)})
		}
		fmt.Fprintf(formatter.Writer, "✓ stack is valid (%d units)\n", len(result.Units))
		return nil
	}

	if formatter.Format == "json" {
		_ = formatter.Error(string(result.Err.Code), result.Err.Error(), result.Err)
	} else {
		renderViolation(formatter.Writer, result.Err)
	}
	return NewExitError(ExitFailure, result.Err.Error())
}
