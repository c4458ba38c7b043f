package cli

import (
	"github.com/spf13/cobra"
)

// NewResetGroupsCommand creates the reset-groups command.
func NewResetGroupsCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "reset-groups",
		Short: "Strip every group trailer from the stack",
		Long: `Strip every Group trailer and clear the stored titles, turning the
whole stack back into single-commit units. The blunt way out when the
grouping is beyond repair.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResetGroups(rootOpts, cmd)
		},
	}
}

func runResetGroups(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	env, err := openEnv(ctx, opts)
	if err != nil {
		return commandError(formatter, err)
	}
	defer env.Close()

	result := env.engine().RemoveAllGroups(ctx)
	return reportResult(formatter, result, "removed all groups")
}
