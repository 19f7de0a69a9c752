package combo

import (
	"go.uber.org/fx"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/llm"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/metrics"
)

func newComposer(gen llm.TextGenerator, cfg *config.Config, m *metrics.Recorder) *Composer {
	return NewComposer(gen, cfg.Combo, m)
}

var Module = fx.Options(
	fx.Provide(newComposer),
	fx.Provide(NewService),
)
