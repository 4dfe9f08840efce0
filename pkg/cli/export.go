package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/cli/config"
	"github.com/mita-sat/sstool/pkg/service/report"
	"github.com/mita-sat/sstool/pkg/usecase"
	"github.com/mita-sat/sstool/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdExport() *cli.Command {
	var repoCfg config.Repository
	var defsCfg config.Definitions
	var storageCfg config.Storage
	var format string
	var output string
	var upload bool

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "format",
			Aliases:     []string{"f"},
			Usage:       "Report format (csv, pdf)",
			Value:       string(report.FormatCSV),
			Destination: &format,
		},
		&cli.StringFlag{
			Name:        "output",
			Aliases:     []string{"o"},
			Usage:       "Output file path, - for stdout (derived from the assessment if omitted)",
			Destination: &output,
		},
		&cli.BoolFlag{
			Name:        "upload",
			Usage:       "Also upload the report to the configured bucket",
			Destination: &upload,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, defsCfg.Flags()...)
	flags = append(flags, storageCfg.Flags()...)

	return &cli.Command{
		Name:      "export",
		Aliases:   []string{"e"},
		Usage:     "Export scores of a stored assessment as CSV or PDF",
		ArgsUsage: "<assessment-id>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			id, err := assessmentIDArg(c)
			if err != nil {
				return err
			}
			if upload && !storageCfg.IsConfigured() {
				return goerr.Wrap(usecase.ErrUploadDisabled, "--upload requires --upload-bucket")
			}

			b, err := openBackend(ctx, &repoCfg, &storageCfg)
			if err != nil {
				return err
			}
			defer b.Close(ctx)

			uc := b.useCases(defsCfg.Configure())
			file, err := uc.Export.Render(ctx, id, format)
			if err != nil {
				return goerr.Wrap(err, "failed to render report")
			}

			if output == "-" {
				if _, err := c.Root().Writer.Write(file.Data); err != nil {
					return goerr.Wrap(err, "failed to write report")
				}
			} else {
				if output == "" {
					output = file.Name
				}
				if err := os.WriteFile(output, file.Data, 0o600); err != nil {
					return goerr.Wrap(err, "failed to write report", goerr.V("path", output))
				}
				logging.From(ctx).Info("Report written", "path", output, "bytes", len(file.Data))
			}

			if upload {
				url, err := uc.Export.Upload(ctx, file)
				if err != nil {
					return goerr.Wrap(err, "failed to upload report")
				}
				logging.From(ctx).Info("Report uploaded", "url", url)
			}
			return nil
		},
	}
}
