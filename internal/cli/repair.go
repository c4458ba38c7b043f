package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/stackpr/internal/stack"
)

// NewRepairCommand creates the repair command.
func NewRepairCommand(rootOpts *RootOptions) *cobra.Command {
	var abort bool

	cmd := &cobra.Command{
		Use:   "repair",
		Short: "Repair split groups, or abort an interrupted rewrite",
		Long: `Repair every split group by pulling its members back together,
innermost violation first. With --abort, abandon a rewrite that
stopped on a conflict and restore the branch.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRepair(rootOpts, cmd, abort)
		},
	}

	cmd.Flags().BoolVar(&abort, "abort", false, "abort an in-flight conflicted rewrite")

	return cmd
}

func runRepair(opts *RootOptions, cmd *cobra.Command, abort bool) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	env, err := openEnv(ctx, opts)
	if err != nil {
		return commandError(formatter, err)
	}
	defer env.Close()

	engine := env.engine()

	if abort {
		if err := engine.Abort(ctx); err != nil {
			return commandError(formatter, WrapExitError(ExitCommandError, "aborting rewrite", err))
		}
		return formatter.Success("aborted; switch back to your branch to continue")
	}

	repaired := 0
	lastGroup := ""
	for {
		commits, titles, err := env.snapshot(ctx)
		if err != nil {
			return commandError(formatter, err)
		}

		result := stack.Validate(commits, titles)
		if result.OK {
			break
		}
		if result.Err.GroupID == lastGroup {
			return commandError(formatter, NewExitError(ExitFailure, "group "+lastGroup+" is still split after repair"))
		}
		lastGroup = result.Err.GroupID

		formatter.VerboseLog("merging split group %q (%s)", result.Err.GroupID, result.Err.GroupTitle)
		if r := engine.MergeSplitGroup(ctx, result.Err.GroupID); !r.Success {
			return reportResult(formatter, r, "")
		}
		repaired++
	}

	if repaired == 0 {
		return formatter.Success("nothing to repair")
	}
	return formatter.Success(fmt.Sprintf("repaired %d group(s)", repaired))
}
