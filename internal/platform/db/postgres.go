package db

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	cfgpkg "github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	gormzap "github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/gormlog"
)

// NewDB opens the postgres pool and applies the configured pool limits.
func NewDB(l *zap.SugaredLogger, cfg *cfgpkg.Config) (*gorm.DB, error) {
	dbCfg := cfg.Database
	if dbCfg.DSN == "" {
		l.Error("database DSN is empty")
		return nil, gorm.ErrInvalidDB
	}
	gdb, err := gorm.Open(postgres.Open(dbCfg.DSN), &gorm.Config{Logger: gormzap.New(l, gormzap.LevelFor(cfg.Env))})
	if err != nil {
		l.Errorw("db_connect_failed", "error", err.Error())
		return nil, err
	}

	sqlDB, err := gdb.DB()
	if err != nil {
		return nil, err
	}
	if dbCfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(dbCfg.MaxOpenConns)
	}
	if dbCfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(dbCfg.MaxIdleConns)
	}
	if dbCfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(dbCfg.ConnMaxLifetime)
	}
	l.Infow("db_connected", "max_open_conns", dbCfg.MaxOpenConns)
	return gdb, nil
}

// AutoMigrate creates or updates the purchases and webhook_delivery_log tables.
func AutoMigrate(l *zap.SugaredLogger, gdb *gorm.DB) error {
	if err := gdb.AutoMigrate(models.All()...); err != nil {
		l.Errorw("db_automigrate_failed", "error", err.Error())
		return err
	}
	l.Infow("db_automigrate_completed", "tables", len(models.All()))
	return nil
}

func registerDBClose(lc fx.Lifecycle, l *zap.SugaredLogger, gdb *gorm.DB) {
	lc.Append(fx.Hook{
		OnStop: func(ctx context.Context) error {
			sqlDB, err := gdb.DB()
			if err != nil {
				l.Warnw("db_close_skipped", "error", err.Error())
				return nil
			}
			l.Infow("db_closing")
			return sqlDB.Close()
		},
	})
}

var Module = fx.Options(
	fx.Provide(NewDB),
	fx.Invoke(AutoMigrate),
	fx.Invoke(registerDBClose),
)
