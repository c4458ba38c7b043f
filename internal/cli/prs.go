package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/example/stackpr/internal/config"
	"github.com/example/stackpr/internal/model"
	"github.com/example/stackpr/internal/review"
	"github.com/example/stackpr/internal/stack"
)

// newReviewService builds the review service for the resolved
// configuration. A package variable so tests can substitute a fake.
var newReviewService = func(cfg config.Config) (review.Service, error) {
	if cfg.OriginURL == "" {
		return nil, fmt.Errorf("no remote configured; 'stackpr prs' needs one")
	}
	owner, repo, err := review.RepoFromURL(cfg.OriginURL)
	if err != nil {
		return nil, err
	}
	return review.NewGitHub(cfg.GitHubToken, owner, repo), nil
}

// unitPR pairs a unit with its pull request, for JSON output.
type unitPR struct {
	Unit model.PRUnit `json:"unit"`
	PR   *review.PR   `json:"pr,omitempty"`
}

// NewPRsCommand creates the prs command.
func NewPRsCommand(rootOpts *RootOptions) *cobra.Command {
	var create bool

	cmd := &cobra.Command{
		Use:   "prs",
		Short: "Show the pull request for each stack unit",
		Long: `Show the open pull request for each unit of the stack. With
--create, open a draft pull request for every unit that has none. The
stack must be valid; repair it first if a group is split.`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPRs(rootOpts, cmd, create)
		},
	}

	cmd.Flags().BoolVar(&create, "create", false, "open a draft PR for units without one")

	return cmd
}

func runPRs(opts *RootOptions, cmd *cobra.Command, create bool) error {
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

	result := stack.Validate(commits, titles)
	if !result.OK {
		_ = formatter.Error(string(result.Err.Code), result.Err.Error(), result.Err)
		return NewExitError(ExitFailure, result.Err.Error())
	}

	svc, err := newReviewService(env.cfg)
	if err != nil {
		return commandError(formatter, WrapExitError(ExitCommandError, "review service", err))
	}

	rows := make([]unitPR, 0, len(result.Units))
	for _, unit := range result.Units {
		pr, err := svc.PRForUnit(ctx, unit.ID)
		if err != nil {
			return commandError(formatter, WrapExitError(ExitCommandError, "looking up PR for "+unit.ID, err))
		}

		if pr == nil && create {
			formatter.VerboseLog("opening PR for unit %s", unit.ID)
			pr, err = svc.CreatePR(ctx, review.CreatePRRequest{
				UnitID: unit.ID,
				Title:  unitTitle(unit),
				Body:   prBody(unit),
				Base:   env.cfg.Trunk,
				Draft:  true,
			})
			if err != nil {
				return commandError(formatter, WrapExitError(ExitCommandError, "creating PR for "+unit.ID, err))
			}
		}

		rows = append(rows, unitPR{Unit: unit, PR: pr})
	}

	if formatter.Format == "json" {
		return formatter.Success(rows)
	}
	for _, row := range rows {
		if row.PR == nil {
			fmt.Fprintf(formatter.Writer, "%-10s -      %s\n", row.Unit.ID, unitTitle(row.Unit))
			continue
		}
		fmt.Fprintf(formatter.Writer, "%-10s #%-5d %s (%s)\n", row.Unit.ID, row.PR.Number, unitTitle(row.Unit), row.PR.State)
	}
	return nil
}

// prBody lists a unit's member subjects, one per line.
func prBody(u model.PRUnit) string {
	if u.Type == model.UnitSingle {
		return ""
	}
	lines := make([]string, 0, len(u.Subjects))
	for _, s := range u.Subjects {
		lines = append(lines, "- "+s)
	}
	return strings.Join(lines, "\n")
}
