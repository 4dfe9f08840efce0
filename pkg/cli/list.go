package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/Ladicle/tabwriter"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/cli/config"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func statusColor(s types.AssessmentStatus) *color.Color {
	switch s {
	case types.AssessmentStatusSubmitted:
		return color.New(color.FgGreen)
	case types.AssessmentStatusArchived:
		return faintColor
	default:
		return color.New(color.FgYellow)
	}
}

func cmdList() *cli.Command {
	var repoCfg config.Repository
	var status string
	var state string
	var limit int
	var output string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "status",
			Usage:       "Filter by assessment status (draft, submitted, archived)",
			Destination: &status,
		},
		&cli.StringFlag{
			Name:        "state",
			Usage:       "Filter by state name",
			Destination: &state,
		},
		&cli.IntFlag{
			Name:        "limit",
			Usage:       "Maximum number of assessments, 0 for all",
			Destination: &limit,
		},
		outputFlag(&output),
	}
	flags = append(flags, repoCfg.Flags()...)

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List stored assessments, most recently updated first",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			var opts []interfaces.ListAssessmentOption
			if status != "" {
				s, err := types.ParseAssessmentStatus(status)
				if err != nil {
					return goerr.Wrap(err, "invalid --status")
				}
				opts = append(opts, interfaces.WithStatus(s))
			}
			if state != "" {
				opts = append(opts, interfaces.WithStateName(state))
			}
			if limit < 0 {
				return goerr.New("--limit must not be negative", goerr.V("limit", limit))
			}
			if limit > 0 {
				opts = append(opts, interfaces.WithLimit(limit))
			}

			b, err := openBackend(ctx, &repoCfg, nil)
			if err != nil {
				return err
			}
			defer b.Close(ctx)

			// listing never scores, so no definitions are loaded
			uc := b.useCases(nil)
			assessments, err := uc.Assessment.List(ctx, opts...)
			if err != nil {
				return goerr.Wrap(err, "failed to list assessments")
			}

			w, closeOutput, err := openOutput(ctx, c, output)
			if err != nil {
				return err
			}
			defer closeOutput()

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tSTATE\tSYSTEM\tSTATUS\tCAPABILITIES\tUPDATED")
			for _, a := range assessments {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d\t%s\n",
					a.ID, a.StateName, a.Metadata.SystemName,
					statusColor(a.Status).Sprint(a.Status),
					len(a.Capabilities), a.UpdatedAt.Format(time.RFC3339))
			}
			if err := tw.Flush(); err != nil {
				return goerr.Wrap(err, "failed to write assessment table")
			}
			return nil
		},
	}
}
