package cli

import (
	"github.com/spf13/cobra"
)

// NewMigrateCommand creates the migrate command.
func NewMigrateCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Convert boundary-marker groups to shared identifiers",
		Long: `Convert a stack using the old Group-Start/Group-End marker trailers
to shared Group identifiers. Each well-formed span gets a fresh group
id, the start marker's value becomes the stored title, and the
markers are stripped. Malformed markers (unclosed, orphan end,
overlapping) abort before any history is touched.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runMigrate(rootOpts, cmd)
		},
	}
}

func runMigrate(opts *RootOptions, cmd *cobra.Command) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	env, err := openEnv(ctx, opts)
	if err != nil {
		return commandError(formatter, err)
	}
	defer env.Close()

	result := env.engine().MigrateBoundaryMarkers(ctx)
	return reportResult(formatter, result, "migrated to shared group identifiers")
}
