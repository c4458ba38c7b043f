package cli

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/example/stackpr/internal/specfile"
)

// NewApplyCommand creates the apply command.
func NewApplyCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "apply <spec.json>",
		Short: "Reshape the stack to match a declarative spec",
		Long: `Reshape the stack to match a JSON spec: an optional explicit unit
order plus the groups the stack should end up with. Commits in a
dropped group become singles; groups whose membership is unchanged
keep their identifier, so re-applying the same spec is a no-op.`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runApply(rootOpts, cmd, args[0])
		},
	}
}

func runApply(opts *RootOptions, cmd *cobra.Command, path string) error {
	formatter := newFormatter(opts, cmd)
	ctx := cmd.Context()

	data, err := os.ReadFile(path)
	if err != nil {
		return commandError(formatter, WrapExitError(ExitCommandError, "reading spec file", err))
	}

	spec, err := specfile.Parse(data)
	if err != nil {
		var serrs specfile.SpecErrors
		if errors.As(err, &serrs) {
			_ = formatter.Error("INVALID_SPEC", "spec file failed validation", serrs)
			if formatter.Format != "json" {
				for _, se := range serrs {
					fmt.Fprintf(formatter.Writer, "  %s\n", se.Error())
				}
			}
			return NewExitError(ExitCommandError, serrs.Error())
		}
		return commandError(formatter, WrapExitError(ExitCommandError, "parsing spec file", err))
	}

	env, err := openEnv(ctx, opts)
	if err != nil {
		return commandError(formatter, err)
	}
	defer env.Close()

	result := env.engine().Apply(ctx, spec)
	return reportResult(formatter, result, "stack matches "+path)
}
