package cli

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/cli/config"
	"github.com/mita-sat/sstool/pkg/usecase"
	"github.com/urfave/cli/v3"
)

// readInput reads a file, or the command's standard input for "-"
func readInput(c *cli.Command, p string) ([]byte, error) {
	if p == "-" {
		data, err := io.ReadAll(c.Root().Reader)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to read standard input")
		}
		return data, nil
	}

	data, err := os.ReadFile(p) // #nosec G304 path is given by the operator
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read file", goerr.V("path", p))
	}
	return data, nil
}

func cmdImport() *cli.Command {
	var repoCfg config.Repository
	var defsCfg config.Definitions
	var replace bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "replace",
			Usage:       "Replace stored assessments with the same ID",
			Destination: &replace,
		},
	}
	flags = append(flags, repoCfg.Flags()...)
	flags = append(flags, defsCfg.Flags()...)

	return &cli.Command{
		Name:      "import",
		Aliases:   []string{"i"},
		Usage:     "Validate and store assessment JSON files",
		ArgsUsage: "<file>... (- for stdin)",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			paths := c.Args().Slice()
			if len(paths) == 0 {
				return goerr.Wrap(ErrMissingArgument, "at least one assessment file is required")
			}

			b, err := openBackend(ctx, &repoCfg, nil)
			if err != nil {
				return err
			}
			defer b.Close(ctx)

			uc := b.useCases(defsCfg.Configure())
			for _, p := range paths {
				data, err := readInput(c, p)
				if err != nil {
					return err
				}
				saved, err := uc.Assessment.Import(ctx, data, usecase.WithReplace(replace))
				if err != nil {
					return goerr.Wrap(err, "failed to import assessment", goerr.V("path", p))
				}
				fmt.Fprintln(c.Root().Writer, saved.ID)
			}
			return nil
		},
	}
}
