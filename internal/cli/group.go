package cli

import (
	"github.com/spf13/cobra"
)

// NewGroupCommand creates the group command.
func NewGroupCommand(rootOpts *RootOptions) *cobra.Command {
	var name string
	var extend string

	cmd := &cobra.Command{
		Use:   "group <identifier>...",
		Short: "Group commits into one reviewable unit",
		Long: `Group the named commits under a fresh group identifier. The commits
must form one contiguous run in the stack; existing groups among them
are absorbed. Identifiers are Commit-Ids, group ids, or unique
prefixes of either.

With --extend, add a single commit to an existing group instead. The
commit must sit immediately above or below the group.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(rootOpts, cmd, args, name, extend)
		},
	}

	cmd.Flags().StringVarP(&name, "name", "n", "", "title for the new group")
	cmd.Flags().StringVar(&extend, "extend", "", "extend this existing group instead of creating one")

	return cmd
}

func runGroup(opts *RootOptions, cmd *cobra.Command, args []string, name, extend string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	env, err := openEnv(ctx, opts)
	if err != nil {
		return commandError(formatter, err)
	}
	defer env.Close()

	if extend != "" {
		if len(args) != 1 {
			return NewExitError(ExitCommandError, "--extend takes exactly one commit identifier")
		}
		result := env.engine().ExtendGroup(ctx, extend, args[0])
		return reportResult(formatter, result, "added "+args[0]+" to group "+extend)
	}

	result := env.engine().CreateGroup(ctx, args, name)
	return reportResult(formatter, result, "grouped")
}
