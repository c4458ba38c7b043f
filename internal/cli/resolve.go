package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/stack"
)

// resolution is one identifier's outcome, for JSON output.
type resolution struct {
	Identifier string        `json:"identifier"`
	Unit       *model.PRUnit `json:"unit,omitempty"`
	Error      string        `json:"error,omitempty"`
}

// NewResolveCommand creates the resolve command.
func NewResolveCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "resolve <identifier>...",
		Short: "Resolve identifiers to stack units",
		Long: `Resolve each identifier to its unit: an exact unit id wins, then a
unique unit-id prefix, then a unique commit-hash prefix. Every
identifier is checked even when an earlier one fails.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(rootOpts, cmd, args)
		},
	}
}

func runResolve(opts *RootOptions, cmd *cobra.Command, identifiers []string) error {
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

	units := stack.Detect(commits, titles)

	results := make([]resolution, 0, len(identifiers))
	failed := 0
	for _, id := range identifiers {
		unit, err := stack.Resolve(id, units, commits)
		if err != nil {
			failed++
			results = append(results, resolution{Identifier: id, Error: err.Error()})
			continue
		}
		results = append(results, resolution{Identifier: id, Unit: unit})
	}

	if formatter.Format == "json" {
		if failed > 0 {
			_ = formatter.Error("RESOLUTION", fmt.Sprintf("%d identifier(s) did not resolve", failed), results)
			return NewExitError(ExitFailure, "resolution failed")
		}
		return formatter.Success(results)
	}

	for _, r := range results {
		if r.Error != "" {
			fmt.Fprintf(formatter.Writer, "%-12s ✗ %s\n", r.Identifier, r.Error)
			continue
		}
		fmt.Fprintf(formatter.Writer, "%-12s %s %s (%s)\n", r.Identifier, r.Unit.ID, r.Unit.Type, unitTitle(*r.Unit))
	}
	if failed > 0 {
		return NewExitError(ExitFailure, fmt.Sprintf("%d identifier(s) did not resolve", failed))
	}
	return nil
}
