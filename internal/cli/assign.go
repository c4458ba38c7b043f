package cli

import (
	"github.com/spf13/cobra"
)

// NewAssignIDsCommand creates the assign-ids command.
func NewAssignIDsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "assign-ids",
		Short: "Stamp a Commit-Id onto commits lacking one",
		Long: `Assign a fresh Commit-Id trailer to every stack commit that lacks
one. Already-stamped commits are untouched, so the rewrite is a no-op
on a fully stamped stack.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAssignIDs(rootOpts, cmd)
		},
	}
}

func runAssignIDs(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	env, err := openEnv(ctx, opts)
	if err != nil {
		return commandError(formatter, err)
	}
	defer env.Close()

	result := env.engine().EnsureCommitIDs(ctx)
	return reportResult(formatter, result, "every commit has a Commit-Id")
}
