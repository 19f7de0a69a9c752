package main

// @title           Combo 3 em 1 API
// @version         1.0
// @description     Kiwify purchase webhook, access check and one-time combo generation.

// @host      localhost:8888
// @BasePath  /

// @securityDefinitions.basic  BasicAuth

import (
	"context"
	"os"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app"
)

func main() {
	os.Exit(run())
}

func run() int {
	a := fx.New(
		app.Module,
		fx.WithLogger(func(l *zap.SugaredLogger) fxevent.Logger {
			return &fxevent.ZapLogger{Logger: l.Desugar()}
		}),
	)
	if err := a.Err(); err != nil {
		// the process logger may not exist if config failed
		zap.NewExample().Sugar().Errorw("app_build_failed", "error", err.Error())
		return 1
	}

	startCtx, cancel := context.WithTimeout(context.Background(), app.DefaultStartTimeout)
	defer cancel()
	if err := a.Start(startCtx); err != nil {
		zap.NewExample().Sugar().Errorw("app_start_failed", "error", err.Error())
		return 1
	}

	sig := <-a.Done()

	stopCtx, cancelStop := context.WithTimeout(context.Background(), app.DefaultStopTimeout)
	defer cancelStop()
	if err := a.Stop(stopCtx); err != nil {
		zap.NewExample().Sugar().Errorw("app_stop_failed", "signal", sig.String(), "error", err.Error())
		return 1
	}
	return 0
}
