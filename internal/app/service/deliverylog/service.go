package deliverylog

import (
	"context"
	"sync"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/tool"
)

type Service struct {
	db      *gorm.DB
	log     *zap.SugaredLogger
	pending sync.WaitGroup
}

func New(db *gorm.DB, log *zap.SugaredLogger) *Service { return &Service{db: db, log: log} }

// Save asynchronously persists a webhook delivery log. Nil input is ignored.
// The write outlives the request context.
func (s *Service) Save(ctx context.Context, entry *models.WebhookDeliveryLog) {
	if entry == nil {
		return
	}
	if entry.ID == "" {
		entry.ID = tool.GenerateUUIDV7()
	}
	row := *entry
	bg := context.WithoutCancel(ctx)
	s.pending.Add(1)
	go func() {
		defer s.pending.Done()
		if err := s.db.WithContext(bg).Create(&row).Error; err != nil {
			logctx.FromCtx(bg, s.log).Errorf("failed to save webhook delivery log: %v", err)
		}
	}()
}

// Wait blocks until every pending Save has finished.
func (s *Service) Wait() { s.pending.Wait() }

// List returns the most recent delivery logs for an email, newest first.
func (s *Service) List(ctx context.Context, email string, limit int) ([]*models.WebhookDeliveryLog, error) {
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	var out []*models.WebhookDeliveryLog
	q := s.db.WithContext(ctx).Model(&models.WebhookDeliveryLog{})
	if email = purchase.NormalizeEmail(email); email != "" {
		q = q.Where("email = ?", email)
	}
	if err := q.Order("created_at desc").Limit(limit).Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

func registerHooks(lc fx.Lifecycle, s *Service) {
	lc.Append(fx.Hook{
		OnStop: func(context.Context) error {
			s.Wait()
			return nil
		},
	})
}

var Module = fx.Options(
	fx.Provide(New),
	fx.Invoke(registerHooks),
)
