package gormlog

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
)

func sqlFn() (string, int64) { return "SELECT 1", 1 }

func TestTrace_Levels(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	lg := New(zap.New(core).Sugar(), gormlogger.Info)
	ctx := context.WithValue(context.Background(), logctx.TraceIDKey, "t-1")

	lg.Trace(ctx, time.Now(), sqlFn, nil)
	lg.Trace(ctx, time.Now(), sqlFn, gorm.ErrRecordNotFound)
	lg.Trace(ctx, time.Now(), sqlFn, errors.New("conn reset"))
	lg.Trace(ctx, time.Now().Add(-time.Second), sqlFn, nil)

	entries := logs.All()
	require.Len(t, entries, 3)
	require.Equal(t, "gorm", entries[0].Message)
	require.Equal(t, "t-1", entries[0].ContextMap()["trace_id"])
	require.Equal(t, "gorm_trace", entries[1].Message)
	require.Equal(t, "gorm_slow", entries[2].Message)
}

func TestTrace_ProdSkipsStatements(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	lg := New(zap.New(core).Sugar(), LevelFor(config.EnvProd))

	lg.Trace(context.Background(), time.Now(), sqlFn, nil)
	require.Zero(t, logs.Len())

	lg.LogMode(gormlogger.Silent).Trace(context.Background(), time.Now(), sqlFn, errors.New("x"))
	require.Zero(t, logs.Len())
	require.Equal(t, gormlogger.Info, LevelFor(config.EnvDev))
}

func TestShortCaller(t *testing.T) {
	require.Equal(t, "internal/platform/db/postgres.go:38", shortCaller("/Users/alex/repo/internal/platform/db/postgres.go:38"))
	require.Equal(t, "pkg/x/y.go:12", shortCaller(`/c/repo/project/pkg/x/y.go:12`))
	require.Equal(t, "a/b/c.go:1", shortCaller("/x/a/b/c.go:1"))
	require.Equal(t, "", shortCaller(""))
}
