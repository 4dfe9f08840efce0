package cli

import (
	"context"
	"io"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/domain/types"
	"github.com/mita-sat/sstool/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func outputFlag(dst *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "output",
		Aliases:     []string{"o"},
		Usage:       "Output file path, - for stdout",
		Value:       "-",
		Destination: dst,
	}
}

// openOutput returns the command writer for "-" or a newly created file
func openOutput(ctx context.Context, c *cli.Command, p string) (io.Writer, func(), error) {
	if p == "" || p == "-" {
		return c.Root().Writer, func() {}, nil
	}

	f, err := os.Create(p) // #nosec G304 path is given by the operator
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to create output file", goerr.V("path", p))
	}
	return f, func() { safe.Close(ctx, f) }, nil
}

func assessmentIDArg(c *cli.Command) (types.AssessmentID, error) {
	arg := c.Args().First()
	if arg == "" {
		return "", goerr.Wrap(ErrMissingArgument, "assessment ID is required")
	}
	id := types.AssessmentID(arg)
	if err := id.Validate(); err != nil {
		return "", goerr.Wrap(err, "invalid assessment ID")
	}
	return id, nil
}
