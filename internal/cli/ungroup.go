package cli

import (
	"github.com/spf13/cobra"
)

// NewUngroupCommand creates the ungroup command.
func NewUngroupCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "ungroup <group-id>",
		Short: "Dissolve a group back into single commits",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUngroup(rootOpts, cmd, args[0])
		},
	}
}

func runUngroup(opts *RootOptions, cmd *cobra.Command, groupID string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	env, err := openEnv(ctx, opts)
	if err != nil {
		return commandError(formatter, err)
	}
	defer env.Close()

	result := env.engine().DissolveGroup(ctx, groupID)
	return reportResult(formatter, result, "dissolved group "+groupID)
}
