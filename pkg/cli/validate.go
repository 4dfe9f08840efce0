package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/cli/config"
	"github.com/mita-sat/sstool/pkg/usecase"
	"github.com/mita-sat/sstool/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var defsCfg config.Definitions

	return &cli.Command{
		Name:      "validate",
		Aliases:   []string{"v"},
		Usage:     "Validate capability definitions and optionally assessment files",
		ArgsUsage: "[assessment-file...]",
		Flags:     defsCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate definitions
			source := defsCfg.Configure()
			defs, err := source.Load(ctx)
			if err != nil {
				return goerr.Wrap(err, "definitions validation failed")
			}

			logger.Info("Definitions validation passed",
				"version", defs.Version,
				"partial_credit_weight", defs.PartialCreditWeight,
				"domain_count", len(defs.Domains()),
				"capability_count", len(defs.Capabilities()),
			)
			for _, d := range defs.Domains() {
				logger.Debug("Domain validated", "id", d.ID, "name", d.Name, "layer", d.Layer)
			}

			// Step 2: Check assessment files against the schema and definitions
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return nil
			}

			assessments := usecase.NewAssessmentUseCase(nil, source, nil)
			var failed int
			for _, p := range paths {
				data, err := readInput(c, p)
				if err != nil {
					return err
				}

				a, err := assessments.Parse(ctx, data)
				if err != nil {
					failed++
					logger.Warn("Assessment file is invalid",
						"path", p,
						"error", err,
						"schema_errors", usecase.SchemaErrors(err),
					)
					continue
				}
				logger.Info("Assessment file validated",
					"path", p,
					"state", a.StateName,
					"capabilities", len(a.Capabilities),
				)
			}

			if failed > 0 {
				return goerr.Wrap(ErrValidation, "invalid assessment files",
					goerr.V("failed", failed), goerr.V("total", len(paths)))
			}
			return nil
		},
	}
}
