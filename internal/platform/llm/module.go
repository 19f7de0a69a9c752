package llm

import (
	"go.uber.org/fx"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
)

func newTextGenerator(cfg *config.Config, log *zap.SugaredLogger) TextGenerator {
	return NewOpenAIClient(cfg.LLM, log)
}

// Module provides the process-wide TextGenerator.
var Module = fx.Options(
	fx.Provide(newTextGenerator),
)
