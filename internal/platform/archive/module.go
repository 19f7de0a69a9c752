package archive

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
)

func newArchiver(cfg *config.Config, log *zap.SugaredLogger) (Archiver, error) {
	if !cfg.Archive.Enabled() {
		log.Infow("archive disabled")
		return Nop{}, nil
	}
	return NewS3(context.Background(), cfg.Archive, log)
}

var Module = fx.Options(
	fx.Provide(newArchiver),
)
