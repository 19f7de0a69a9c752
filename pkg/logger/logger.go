package logger

import (
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
)

// New builds the process logger: JSON production output, plus debug level
// outside prod.
func New(cfg *config.Config) (*zap.SugaredLogger, error) {
	zcfg := zap.NewProductionConfig()
	zcfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	zcfg.EncoderConfig.TimeKey = "time"
	if cfg != nil && cfg.Env != config.EnvProd {
		zcfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}
	l, err := zcfg.Build()
	if err != nil {
		return nil, err
	}
	return l.Sugar().With("service", "combo"), nil
}

var Module = fx.Options(
	fx.Provide(New),
)
