package cli

import (
	"github.com/spf13/cobra"
)

// NewTitleCommand creates the title command.
func NewTitleCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "title <group-id> <title>",
		Short: "Set a group's display title",
		Long: `Set a group's display title. Titles live outside the commit
messages, so this never rewrites history.`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTitle(rootOpts, cmd, args[0], args[1])
		},
	}
}

func runTitle(opts *RootOptions, cmd *cobra.Command, groupID, title string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	env, err := openEnv(ctx, opts)
	if err != nil {
		return commandError(formatter, err)
	}
	defer env.Close()

	result := env.engine().SetGroupTitle(ctx, groupID, title)
	return reportResult(formatter, result, "titled group "+groupID)
}
