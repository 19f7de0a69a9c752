package statistics

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/samber/lo"
	"go.uber.org/fx"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/types"
)

type StatisticType string

const (
	// Daily series
	StatisticTypeDailyNewPurchaseCount    StatisticType = "daily_new_purchase_count"
	StatisticTypeDailyComboCount          StatisticType = "daily_combo_count"
	StatisticTypeDailyWebhookOutcomeCount StatisticType = "daily_webhook_outcome_count"

	// Snapshot totals, labelled approved / pending / generated
	StatisticTypeTotalPurchaseCount StatisticType = "total_purchase_count"
)

// purchaseFilterFields are the purchase columns a statistic request may
// filter on.
var purchaseFilterFields = []string{"product_id", "payment_method", "order_status", "customer_state"}

// StatisticDataItem selects one series.
type StatisticDataItem struct {
	ID StatisticType `json:"id"`
}

type StatisticRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	DataItems []*StatisticDataItem  `json:"data_items"`
	// Days bounds daily series to the most recent N days. Zero means 30.
	Days int `json:"days"`
}

// Build composes the WHERE clause for purchase filters.
func (r *StatisticRequest) Build(builder clause.Builder) {
	if r == nil || len(r.Filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	for i, f := range r.Filters {
		if i > 0 {
			builder.WriteString(" AND ")
		}
		f.Build(builder)
	}
}

func (r *StatisticRequest) since(now time.Time) time.Time {
	days := r.Days
	if days <= 0 {
		days = 30
	}
	y, m, d := now.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC).AddDate(0, 0, -(days - 1))
}

// Validate rejects unknown statistic ids and filter fields.
func (r *StatisticRequest) Validate() error {
	if len(r.DataItems) == 0 {
		return fmt.Errorf("data_items is required")
	}
	for _, di := range r.DataItems {
		if di == nil || !lo.Contains(AllStatisticTypes(), di.ID) {
			return fmt.Errorf("invalid data item id: %v", lo.FromPtr(di).ID)
		}
	}
	return types.ValidateFilterFields(r.Filters, purchaseFilterFields)
}

func AllStatisticTypes() []StatisticType {
	return []StatisticType{
		StatisticTypeDailyNewPurchaseCount,
		StatisticTypeDailyComboCount,
		StatisticTypeDailyWebhookOutcomeCount,
		StatisticTypeTotalPurchaseCount,
	}
}

type StatisticResponseDataItem struct {
	Date  string `json:"date,omitempty"`
	Label string `json:"label,omitempty"`
	Value int64  `json:"value"`
}

type StatisticResponse struct {
	DataItems map[StatisticType][]StatisticResponseDataItem `json:"data_items"`
}

// Service provides statistics operations
type Service struct {
	db  *gorm.DB
	now func() time.Time
}

func New(db *gorm.DB) *Service { return &Service{db: db, now: time.Now} }

// dayExpr formats a timestamp column as YYYY-MM-DD in the active dialect.
func (s *Service) dayExpr(column string) string {
	if s.db.Dialector.Name() == "sqlite" {
		return fmt.Sprintf("strftime('%%Y-%%m-%%d', %s)", column)
	}
	return fmt.Sprintf("TO_CHAR(%s, 'YYYY-MM-DD')", column)
}

func (s *Service) getDailyNewPurchaseCount(ctx context.Context, request *StatisticRequest) ([]StatisticResponseDataItem, error) {
	var results []StatisticResponseDataItem
	day := s.dayExpr("created_at")
	q := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Select(day+" as date, count(*) as value").
		Where("created_at >= ?", request.since(s.now())).
		Where(clause.Where{Exprs: []clause.Expression{request}}).
		Group(day).
		Order("date")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getDailyComboCount(ctx context.Context, request *StatisticRequest) ([]StatisticResponseDataItem, error) {
	var results []StatisticResponseDataItem
	day := s.dayExpr("combo_generated_at")
	q := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Select(day+" as date, count(*) as value").
		Where("combo_generated_at IS NOT NULL").
		Where("combo_generated_at >= ?", request.since(s.now())).
		Where(clause.Where{Exprs: []clause.Expression{request}}).
		Group(day).
		Order("date")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

// getDailyWebhookOutcomeCount counts handled deliveries per day and
// outcome. Purchase filters do not apply to the delivery log.
func (s *Service) getDailyWebhookOutcomeCount(ctx context.Context, request *StatisticRequest) ([]StatisticResponseDataItem, error) {
	var results []StatisticResponseDataItem
	day := s.dayExpr("created_at")
	q := s.db.WithContext(ctx).Model(&models.WebhookDeliveryLog{}).
		Select(day+" as date, outcome as label, count(*) as value").
		Where("status <> ?", models.WebhookDeliveryLogStatusReceived).
		Where("created_at >= ?", request.since(s.now())).
		Group(day).
		Group("outcome").
		Order("date").
		Order("label")
	if err := q.Find(&results).Error; err != nil {
		return nil, err
	}
	return results, nil
}

func (s *Service) getTotalPurchaseCount(ctx context.Context, request *StatisticRequest) ([]StatisticResponseDataItem, error) {
	var row struct {
		Approved  int64
		Pending   int64
		Generated int64
	}
	err := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Select(`
COALESCE(SUM(CASE WHEN approved THEN 1 ELSE 0 END), 0) as approved,
COALESCE(SUM(CASE WHEN approved AND NOT combo_generated THEN 1 ELSE 0 END), 0) as pending,
COALESCE(SUM(CASE WHEN combo_generated THEN 1 ELSE 0 END), 0) as generated`).
		Where(clause.Where{Exprs: []clause.Expression{request}}).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return []StatisticResponseDataItem{
		{Label: "approved", Value: row.Approved},
		{Label: "pending", Value: row.Pending},
		{Label: "generated", Value: row.Generated},
	}, nil
}

func (s *Service) getStatistic(ctx context.Context, request *StatisticRequest, dataItem *StatisticDataItem) ([]StatisticResponseDataItem, error) {
	switch dataItem.ID {
	case StatisticTypeDailyNewPurchaseCount:
		return s.getDailyNewPurchaseCount(ctx, request)
	case StatisticTypeDailyComboCount:
		return s.getDailyComboCount(ctx, request)
	case StatisticTypeDailyWebhookOutcomeCount:
		return s.getDailyWebhookOutcomeCount(ctx, request)
	case StatisticTypeTotalPurchaseCount:
		return s.getTotalPurchaseCount(ctx, request)
	default:
		return nil, fmt.Errorf("invalid data item id: %s", dataItem.ID)
	}
}

// GetStatistic computes every requested series concurrently.
func (s *Service) GetStatistic(ctx context.Context, request *StatisticRequest) (*StatisticResponse, error) {
	if err := request.Validate(); err != nil {
		return nil, err
	}

	var mu sync.Mutex
	results := make(map[StatisticType][]StatisticResponseDataItem, len(request.DataItems))
	g, gctx := errgroup.WithContext(ctx)
	for _, item := range request.DataItems {
		g.Go(func() error {
			res, err := s.getStatistic(gctx, request, item)
			if err != nil {
				return err
			}
			mu.Lock()
			results[item.ID] = res
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return &StatisticResponse{DataItems: results}, nil
}

var Module = fx.Options(
	fx.Provide(New),
)
