package purchase

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/db/dbtest"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/types"
)

func newTestStore(t *testing.T) Store {
	return NewStore(dbtest.New(t), zap.NewNop().Sugar())
}

func approved(email, order string) *models.Purchase {
	return &models.Purchase{Email: email, OrderID: order, CustomerName: "Ana Maria", Approved: true, OrderStatus: "paid"}
}

func TestNormalizeEmail(t *testing.T) {
	assert.Equal(t, "ana@example.com", NormalizeEmail("  Ana@Example.COM \n"))
	assert.Equal(t, "", NormalizeEmail("   "))
}

func TestStore_FindByEmail_NotFound(t *testing.T) {
	s := newTestStore(t)
	_, err := s.FindByEmail(context.Background(), "nobody@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Upsert_IsIdempotentPerEmail(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, approved(" Ana@Example.com", "order-1")))
	require.NoError(t, s.Upsert(ctx, approved("ana@example.com", "order-2")))

	got, err := s.FindByEmail(ctx, "ANA@example.com")
	require.NoError(t, err)
	assert.Equal(t, "ana@example.com", got.Email)
	assert.Equal(t, "order-2", got.OrderID)
	assert.True(t, got.Approved)
	assert.False(t, got.ComboGenerated)

	res, err := s.Scan(ctx, &ScanRequest{})
	require.NoError(t, err)
	assert.EqualValues(t, 1, res.Total)
}

func TestStore_Upsert_KeepsComboGenerated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, approved("ana@example.com", "order-1")))
	first, err := s.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	require.NoError(t, s.MarkComboGenerated(ctx, "ana@example.com", time.Now()))

	require.NoError(t, s.Upsert(ctx, approved("ana@example.com", "order-1")))
	got, err := s.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, got.ComboGenerated)
	assert.NotNil(t, got.ComboGeneratedAt)
	assert.Equal(t, first.ID, got.ID)
}

func TestStore_DeleteThenUpsert_ClearsComboGenerated(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	require.NoError(t, s.Upsert(ctx, approved("ana@example.com", "order-1")))
	require.NoError(t, s.MarkComboGenerated(ctx, "ana@example.com", time.Now()))
	require.NoError(t, s.DeleteByEmail(ctx, "ana@example.com"))
	require.NoError(t, s.DeleteByEmail(ctx, "ana@example.com"))

	_, err := s.FindByEmail(ctx, "ana@example.com")
	require.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Upsert(ctx, approved("ana@example.com", "order-1")))
	got, err := s.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, got.Approved)
	assert.False(t, got.ComboGenerated)
}

func TestStore_ReserveCombo(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	ok, err := s.ReserveCombo(ctx, "missing@example.com")
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, s.Upsert(ctx, approved("ana@example.com", "order-1")))
	ok, err = s.ReserveCombo(ctx, "Ana@example.com")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = s.ReserveCombo(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, ok, "second reservation must fail")

	require.NoError(t, s.ReleaseCombo(ctx, "ana@example.com"))
	got, err := s.FindByEmail(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, got.ComboGenerated)

	ok, err = s.ReserveCombo(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestStore_ReserveCombo_RequiresApproval(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	p := approved("ana@example.com", "order-1")
	p.Approved = false
	require.NoError(t, s.Upsert(ctx, p))

	ok, err := s.ReserveCombo(ctx, "ana@example.com")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestStore_ReserveCombo_SingleWinnerUnderConcurrency(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	require.NoError(t, s.Upsert(ctx, approved("ana@example.com", "order-1")))

	const n = 8
	var wg sync.WaitGroup
	results := make(chan bool, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			ok, err := s.ReserveCombo(ctx, "ana@example.com")
			assert.NoError(t, err)
			results <- ok
		}()
	}
	wg.Wait()
	close(results)

	wins := 0
	for ok := range results {
		if ok {
			wins++
		}
	}
	assert.Equal(t, 1, wins)
}

func TestStore_MarkComboGenerated_Missing(t *testing.T) {
	s := newTestStore(t)
	err := s.MarkComboGenerated(context.Background(), "nobody@example.com", time.Now())
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStore_Scan_FiltersAndRejectsUnknownFields(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for _, e := range []string{"a@example.com", "b@example.com", "c@example.com"} {
		require.NoError(t, s.Upsert(ctx, approved(e, "order-"+e)))
	}
	require.NoError(t, s.MarkComboGenerated(ctx, "b@example.com", time.Now()))

	res, err := s.Scan(ctx, &ScanRequest{
		Filters: []*types.CommonFilter{{Field: "combo_generated", Operator: types.CommonFilterOperatorEq, Values: []any{true}}},
	})
	require.NoError(t, err)
	require.EqualValues(t, 1, res.Total)
	require.Len(t, res.Items, 1)
	assert.Equal(t, "b@example.com", res.Items[0].Email)

	res, err = s.Scan(ctx, &ScanRequest{Size: 2, SortBy: "email", SortOrder: "asc"})
	require.NoError(t, err)
	assert.EqualValues(t, 3, res.Total)
	require.Len(t, res.Items, 2)
	assert.Equal(t, "a@example.com", res.Items[0].Email)

	_, err = s.Scan(ctx, &ScanRequest{Filters: []*types.CommonFilter{{Field: "1=1; drop table purchases", Operator: types.CommonFilterOperatorEq, Values: []any{1}}}})
	require.Error(t, err)

	_, err = s.Scan(ctx, &ScanRequest{SortBy: "raw"})
	require.Error(t, err)
}
