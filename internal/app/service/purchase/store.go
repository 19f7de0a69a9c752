package purchase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/tool"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/types"
)

// ErrNotFound is returned when no purchase row exists for an email.
var ErrNotFound = errors.New("purchase not found")

// NormalizeEmail is the store key: lowercased and trimmed.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// Store is the purchases row store. Every method normalizes the email it is
// given; callers never need to.
type Store interface {
	FindByEmail(ctx context.Context, email string) (*models.Purchase, error)
	// Upsert inserts or refreshes the row for p.Email. combo_generated is
	// never overwritten on conflict.
	Upsert(ctx context.Context, p *models.Purchase) error
	// DeleteByEmail removes the row; deleting an absent row is not an error.
	DeleteByEmail(ctx context.Context, email string) error
	// ReserveCombo atomically flips combo_generated false -> true for an
	// approved row. It reports false when nothing was claimed.
	ReserveCombo(ctx context.Context, email string) (bool, error)
	// ReleaseCombo flips combo_generated back to false after a failed
	// generation that had reserved it.
	ReleaseCombo(ctx context.Context, email string) error
	// MarkComboGenerated sets combo_generated and its timestamp.
	MarkComboGenerated(ctx context.Context, email string, at time.Time) error
	Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error)
}

type ScanRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

type ScanResponse struct {
	Items []*models.Purchase `json:"items"`
	Total int64              `json:"total"`
}

// ScanFields are the columns admin filters and sorting may reference.
var ScanFields = []string{
	"email", "order_id", "order_status", "customer_name", "product_id",
	"payment_method", "approved", "combo_generated", "approved_at",
	"combo_generated_at", "created_at", "updated_at",
}

type gormStore struct {
	db  *gorm.DB
	log *zap.SugaredLogger
}

func NewStore(db *gorm.DB, log *zap.SugaredLogger) Store {
	return &gormStore{db: db, log: log}
}

func (s *gormStore) FindByEmail(ctx context.Context, email string) (*models.Purchase, error) {
	var p models.Purchase
	err := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).First(&p).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to load purchase: %w", err)
	}
	return &p, nil
}

func (s *gormStore) Upsert(ctx context.Context, p *models.Purchase) error {
	if p == nil {
		return fmt.Errorf("nil purchase")
	}
	p.Email = NormalizeEmail(p.Email)
	if p.Email == "" {
		return fmt.Errorf("purchase email is empty")
	}
	if p.ID == "" {
		p.ID = tool.GenerateUUIDV7()
	}
	err := s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "email"}},
		DoUpdates: clause.AssignmentColumns(models.PurchaseUpsertColumns),
	}).Create(p).Error
	if err != nil {
		return fmt.Errorf("failed to upsert purchase: %w", err)
	}
	logctx.FromCtx(ctx, s.log).Debugw("purchase_upserted", "email", p.Email, "order_id", p.OrderID)
	return nil
}

func (s *gormStore) DeleteByEmail(ctx context.Context, email string) error {
	res := s.db.WithContext(ctx).Where("email = ?", NormalizeEmail(email)).Delete(&models.Purchase{})
	if res.Error != nil {
		return fmt.Errorf("failed to delete purchase: %w", res.Error)
	}
	logctx.FromCtx(ctx, s.log).Debugw("purchase_deleted", "email", NormalizeEmail(email), "rows", res.RowsAffected)
	return nil
}

func (s *gormStore) ReserveCombo(ctx context.Context, email string) (bool, error) {
	res := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("email = ? AND approved = ? AND combo_generated = ?", NormalizeEmail(email), true, false).
		Update("combo_generated", true)
	if res.Error != nil {
		return false, fmt.Errorf("failed to reserve combo: %w", res.Error)
	}
	return res.RowsAffected == 1, nil
}

func (s *gormStore) ReleaseCombo(ctx context.Context, email string) error {
	res := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("email = ? AND combo_generated = ?", NormalizeEmail(email), true).
		Updates(map[string]any{"combo_generated": false, "combo_generated_at": nil})
	if res.Error != nil {
		return fmt.Errorf("failed to release combo: %w", res.Error)
	}
	return nil
}

func (s *gormStore) MarkComboGenerated(ctx context.Context, email string, at time.Time) error {
	res := s.db.WithContext(ctx).Model(&models.Purchase{}).
		Where("email = ?", NormalizeEmail(email)).
		Updates(map[string]any{"combo_generated": true, "combo_generated_at": at})
	if res.Error != nil {
		return fmt.Errorf("failed to mark combo generated: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

// filtersAnd combines multiple CommonFilter into a single clause.Expression.
type filtersAnd struct{ filters []*types.CommonFilter }

func (w filtersAnd) Build(builder clause.Builder) {
	if len(w.filters) == 0 {
		builder.WriteString("1=1")
		return
	}
	exprs := make([]clause.Expression, 0, len(w.filters))
	for _, f := range w.filters {
		exprs = append(exprs, f)
	}
	clause.And(exprs...).Build(builder)
}

func (s *gormStore) Scan(ctx context.Context, req *ScanRequest) (*ScanResponse, error) {
	if req == nil {
		return nil, fmt.Errorf("nil request")
	}
	if err := types.ValidateFilterFields(req.Filters, ScanFields); err != nil {
		return nil, err
	}
	if req.SortBy != "" && !types.FieldAllowed(req.SortBy, ScanFields) {
		return nil, fmt.Errorf("unsupported sort field: %s", req.SortBy)
	}
	if req.Size <= 0 {
		req.Size = 20
	}
	if req.Size > 500 {
		req.Size = 500
	}
	if req.From < 0 {
		req.From = 0
	}

	filtered := func() *gorm.DB {
		tx := s.db.WithContext(ctx).Model(&models.Purchase{})
		if len(req.Filters) > 0 {
			tx = tx.Where(clause.Where{Exprs: []clause.Expression{filtersAnd{filters: req.Filters}}})
		}
		return tx
	}

	var total int64
	if err := filtered().Count(&total).Error; err != nil {
		return nil, fmt.Errorf("failed to count purchases: %w", err)
	}

	q := filtered().Limit(req.Size)
	if req.From > 0 {
		q = q.Offset(req.From)
	}
	sortBy := req.SortBy
	if sortBy == "" {
		sortBy = "created_at"
	}
	q = q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{{Column: clause.Column{Name: sortBy}, Desc: req.SortOrder != "asc"}}})

	var rows []*models.Purchase
	if err := q.Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to list purchases: %w", err)
	}
	return &ScanResponse{Items: rows, Total: total}, nil
}
