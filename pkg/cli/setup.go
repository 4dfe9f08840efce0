package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/mita-sat/sstool/pkg/cli/config"
	"github.com/mita-sat/sstool/pkg/domain/interfaces"
	"github.com/mita-sat/sstool/pkg/usecase"
	"github.com/mita-sat/sstool/pkg/utils/logging"
	"github.com/mita-sat/sstool/pkg/utils/safe"
)

// backend bundles the stores opened for one command run
type backend struct {
	repo     interfaces.Repository
	uploader interfaces.ReportUploader
}

func (b *backend) Close(ctx context.Context) {
	if b.uploader != nil {
		safe.Close(ctx, b.uploader)
	}
	if b.repo != nil {
		safe.Close(ctx, b.repo)
	}
}

// openBackend opens the repository and, when storageCfg is given and
// configured, the report uploader
func openBackend(ctx context.Context, repoCfg *config.Repository, storageCfg *config.Storage) (*backend, error) {
	repo, err := repoCfg.Configure(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize repository")
	}
	b := &backend{repo: repo}

	if storageCfg != nil {
		uploader, err := storageCfg.Configure(ctx)
		if err != nil {
			b.Close(ctx)
			return nil, goerr.Wrap(err, "failed to initialize report uploader")
		}
		b.uploader = uploader
	}

	logging.From(ctx).Debug("Backend opened", "repository", *repoCfg)
	return b, nil
}

// useCases wires the use cases on top of the backend with source as the
// definitions provider
func (b *backend) useCases(source interfaces.DefinitionSource) *usecase.UseCases {
	var opts []usecase.Option
	if b.uploader != nil {
		opts = append(opts, usecase.WithUploader(b.uploader))
	}
	return usecase.New(b.repo, source, opts...)
}
