package cli

import (
	"github.com/spf13/cobra"
)

// NewMergeGroupCommand creates the merge-group command.
func NewMergeGroupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "merge-group <group-id>",
		Short: "Pull a split group's members back together",
		Long: `Restore a split group to contiguity by replaying its members at the
position of the first member. Interrupting commits end up after the
group, preserving their relative order. A no-op on a group that is
already contiguous.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMergeGroup(rootOpts, cmd, args[0])
		},
	}
}

func runMergeGroup(opts *RootOptions, cmd *cobra.Command, groupID string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	env, err := openEnv(ctx, opts)
	if err != nil {
		return commandError(formatter, err)
	}
	defer env.Close()

	result := env.engine().MergeSplitGroup(ctx, groupID)
	return reportResult(formatter, result, "group "+groupID+" is contiguous")
}
