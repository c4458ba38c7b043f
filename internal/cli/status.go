package cli

import (
	"github.com/spf13/cobra"

	"github.com/example/stackpr/internal/stack"
)

// NewStatusCommand creates the status command.
func NewStatusCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stack as reviewable units",
		Long: `Show every commit above trunk folded into its reviewable unit: a
single commit or a contiguous named group. A split group is reported
with the commits interrupting it.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStatus(rootOpts, cmd)
		},
	}
}

func runStatus(opts *RootOptions, cmd *cobra.Command) error {
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
	formatter.VerboseLog("loaded %d commit(s) above %s", len(commits), env.cfg.Trunk)

	result := stack.Validate(commits, titles)
	if formatter.Format == "json" {
		if result.OK {
			return formatter.Success(result)
		}
		_ = formatter.Error(string(result.Err.Code), result.Err.Error(), result.Err)
		return NewExitError(ExitFailure, result.Err.Error())
	}

	if !result.OK {
		renderViolation(formatter.Writer, result.Err)
		return NewExitError(ExitFailure, result.Err.Error())
	}
	renderUnits(formatter.Writer, result.Units)
	return nil
}
