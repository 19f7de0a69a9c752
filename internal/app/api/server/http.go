package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/docs"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/api/handlers"
	mw "github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/api/middleware"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/combo"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/deliverylog"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/entitlement"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/statistics"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/webhook"
	cfgpkg "github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/metrics"
)

func newEngine() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	// Add request tracing middleware only; request logger & access log are attached per group in registerRoutes
	r.Use(mw.TraceMiddleware())
	handlers.RegisterValidators()
	return r
}

type routeDeps struct {
	fx.In

	Log        *zap.SugaredLogger
	Config     *cfgpkg.Config
	DB         *gorm.DB
	Webhook    *webhook.Handler
	Gate       *entitlement.Gate
	Combo      *combo.Service
	Purchases  purchase.Store
	Stats      *statistics.Service
	Deliveries *deliverylog.Service
}

func registerRoutes(r *gin.Engine, d routeDeps) {
	log, cfg := d.Log, d.Config

	// Prometheus metrics
	if cfg.MetricsAddr != "" {
		p := metrics.NewPrometheus(metrics.NewPrometheusOptions{
			Subsystem: metrics.Subsystem,
			ReqCntURLLabelMappingFn: func(c *gin.Context) string {
				if fp := c.FullPath(); fp != "" {
					return fp
				}
				return "unmatched"
			},
			Logger: log,
		})
		p.SetListenAddress(cfg.MetricsAddr)
		p.Use(r)

		log.Infow("metrics started", "addr", cfg.MetricsAddr)
	}

	var pinger handlers.Pinger
	if sqlDB, err := d.DB.DB(); err == nil {
		pinger = sqlDB
	} else {
		log.Warnw("healthz without db ping", "error", err.Error())
	}

	pub := r.Group("/")
	pub.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	handlers.RegisterHealthRoutes(pub, pinger)
	// Swagger UI
	docs.SwaggerInfo.BasePath = "/"
	pub.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	api := r.Group("/api")
	api.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log))
	api.POST("/kiwify-webhook", handlers.ApiKiwifyWebhook(d.Webhook, log))
	api.POST("/validar-acesso", handlers.ApiValidateAccess(d.Gate, log))
	api.POST("/gerar-combo", handlers.ApiGenerateCombo(d.Combo, log))

	if len(cfg.Admin.Accounts) == 0 {
		log.Infow("admin routes disabled, no accounts configured")
		return
	}
	admin := r.Group("/api/v1/admin")
	admin.Use(mw.RequestLoggerMiddleware(log), mw.AccessLogMiddleware(log), gin.BasicAuth(gin.Accounts(cfg.Admin.Accounts)))
	handlers.RegisterAdminRoutes(admin, d.Purchases, d.Stats, d.Deliveries)
}

func runServer(lc fx.Lifecycle, log *zap.SugaredLogger, cfg *cfgpkg.Config, r *gin.Engine) {
	addr := fmt.Sprintf("%s:%d", cfg.Server.Host, cfg.Server.Port)
	srv := &http.Server{Addr: addr, Handler: r, ReadHeaderTimeout: 5 * time.Second}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Infow("starting HTTP server", "addr", addr)
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Errorf("server error: %v", err)
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Infow("stopping HTTP server")
			return srv.Shutdown(ctx)
		},
	})
}

var Module = fx.Options(
	fx.Provide(newEngine),
	fx.Invoke(registerRoutes),
	fx.Invoke(runServer),
)
