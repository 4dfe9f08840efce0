package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/Ladicle/tabwriter"
	"github.com/fatih/color"
	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/cli/config"
	"github.com/mita-sat/sstool/pkg/domain/model"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/urfave/cli/v3"
)

func cmdScore() *cli.Command {
	var repoCfg config.Repository
	var defsCfg config.Definitions
	var asJSON bool
	var noColor bool
	var output string

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print results as JSON",
			Destination: &asJSON,
		},
		&cli.BoolFlag{
			Name:        "no-color",
			Usage:       "Disable colored output",
			Destination: &noColor,
		},
		outputFlag(&output),
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, defsCfg.Flags()...)

	return &cli.Command{
		Name:      "score",
		Usage:     "Compute scores of a stored assessment",
		ArgsUsage: "<assessment-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := assessmentIDArg(c)
			if err != nil {
				return err
			}
			if noColor {
				color.NoColor = true
			}

			b, err := openBackend(ctx, &repoCfg, nil)
			if err != nil {
				return err
			}
			defer b.Close(ctx)

			uc := b.useCases(defsCfg.Configure())
			results, err := uc.Results.Compute(ctx, id)
			if err != nil {
				return goerr.Wrap(err, "failed to compute results")
			}

			w, closeOutput, err := openOutput(ctx, c, output)
			if err != nil {
				return err
			}
			defer closeOutput()

			if asJSON {
				enc := json.NewEncoder(w)
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return goerr.Wrap(err, "failed to encode results")
				}
				return nil
			}
			return printResults(w, results)
		},
	}
}

var (
	headingColor = color.New(color.Bold)
	warnColor    = color.New(color.FgYellow, color.Bold)
	faintColor   = color.New(color.Faint)
)

// scoreColor picks a color by score band; nil scores are faint
func scoreColor(v *float64) *color.Color {
	switch {
	case v == nil:
		return faintColor
	case *v >= 4:
		return color.New(color.FgGreen)
	case *v >= 3:
		return color.New(color.FgCyan)
	case *v >= 2:
		return color.New(color.FgYellow)
	default:
		return color.New(color.FgRed)
	}
}

func formatScore(v *float64, precision int) string {
	if v == nil {
		return "—"
	}
	return fmt.Sprintf("%.*f", precision, *v)
}

func colorScore(v *float64, precision int) string {
	return scoreColor(v).Sprint(formatScore(v, precision))
}

func printResults(w io.Writer, r *model.AssessmentResults) error {
	title := r.StateName
	if r.SystemName != "" {
		title += " / " + r.SystemName
	}
	fmt.Fprintf(w, "%s (%s)\n", headingColor.Sprint(title), r.AssessmentID)
	fmt.Fprintf(w, "Overall score: %s\n", colorScore(r.OverallScore, 1))
	fmt.Fprintf(w, "Capabilities: %d completed, %d in progress, %d not started (%d total)\n",
		r.Counts.Finalized, r.Counts.InProgress, r.Counts.NotStarted, r.Counts.Total)
	if r.Degraded {
		fmt.Fprintln(w, warnColor.Sprint("Definitions unavailable: scores use the basic dimension average"))
	}

	for _, layer := range r.Layers {
		fmt.Fprintf(w, "\n%s\n", headingColor.Sprint(layer.Layer.Title()))
		for _, domain := range layer.Domains {
			fmt.Fprintf(w, "  %s  %s\n", domain.Domain, colorScore(domain.Score, 1))

			tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
			fmt.Fprint(tw, "    CAPABILITY\tSTATUS\tSCORE")
			for _, d := range types.AllDimensions() {
				fmt.Fprintf(tw, "\t%s", d.Title())
			}
			fmt.Fprintln(tw)
			for _, capScore := range domain.Capabilities {
				printCapability(tw, capScore)
			}
			if err := tw.Flush(); err != nil {
				return goerr.Wrap(err, "failed to write score table")
			}
		}
	}

	if len(r.Gaps) > 0 {
		fmt.Fprintf(w, "\n%s\n", headingColor.Sprint("Gaps to target"))
		tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "  CAPABILITY\tDIMENSION\tCURRENT\tTARGET\tGAP")
		for _, g := range r.Gaps {
			fmt.Fprintf(tw, "  %s\t%s\t%s\t%s\t%d\n",
				g.CapabilityArea, g.Dimension.Title(), g.Current.Label(), g.Target.Label(), g.Gap)
		}
		if err := tw.Flush(); err != nil {
			return goerr.Wrap(err, "failed to write gap table")
		}
	}
	return nil
}

func printCapability(w io.Writer, s *model.EnhancedMaturityScore) {
	name := s.CapabilityArea
	if s.Fallback {
		name += warnColor.Sprint(" *")
	}
	fmt.Fprintf(w, "    %s\t%s\t%s", name, s.Status, colorScore(s.OverallScore, 1))
	for _, d := range types.AllDimensions() {
		dim, ok := s.Dimension(d)
		if !ok || dim.IsNotApplicable() {
			fmt.Fprint(w, "\tN/A")
			continue
		}
		fmt.Fprintf(w, "\t%s", colorScore(dim.FinalScore, 2))
	}
	fmt.Fprintln(w)
}
