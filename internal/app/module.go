package app

import (
	"time"

	"go.uber.org/fx"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/api/server"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/combo"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/deliverylog"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/entitlement"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/statistics"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/webhook"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/archive"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/db"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/llm"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logger"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/metrics"
)

const (
	DefaultStartTimeout = 15 * time.Second
	// DefaultStopTimeout lets in-flight generations, bounded by llm.timeout,
	// finish before the server goes down.
	DefaultStopTimeout  = 100 * time.Second
)

var Module = fx.Options(
	logger.Module,
	config.Module,
	db.Module,
	metrics.Module,
	purchase.Module,
	entitlement.Module,
	llm.Module,
	archive.Module,
	deliverylog.Module,
	webhook.Module,
	combo.Module,
	statistics.Module,
	server.Module,
)
