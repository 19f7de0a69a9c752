package entitlement

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase/purchasetest"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
)

func newGate() (*Gate, *purchasetest.Memory) {
	store := purchasetest.NewMemory()
	return NewGate(store, zap.NewNop().Sugar()), store
}

func TestCheckAccess_NoRecord(t *testing.T) {
	g, _ := newGate()
	_, err := g.CheckAccess(context.Background(), "ana@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCheckAccess_EmptyEmail(t *testing.T) {
	g, store := newGate()
	_, err := g.CheckAccess(context.Background(), "   ")
	require.ErrorIs(t, err, ErrNotFound)
	assert.Empty(t, store.Calls, "blank email must not hit the store")
}

func TestCheckAccess_NotApproved(t *testing.T) {
	g, store := newGate()
	store.Put(&models.Purchase{Email: "ana@example.com", Approved: false})
	_, err := g.CheckAccess(context.Background(), "ana@example.com")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestCheckAccess_Granted(t *testing.T) {
	g, store := newGate()
	store.Put(&models.Purchase{Email: "ana@example.com", Approved: true, CustomerName: "Ana Maria"})
	p, err := g.CheckAccess(context.Background(), "  ANA@example.com ")
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", p.CustomerName)
	assert.True(t, p.HasEntitlement())
}

func TestCheckAccess_AlreadyConsumed(t *testing.T) {
	g, store := newGate()
	store.Put(&models.Purchase{Email: "ana@example.com", Approved: true, ComboGenerated: true})
	p, err := g.CheckAccess(context.Background(), "ana@example.com")
	require.ErrorIs(t, err, ErrAlreadyConsumed)
	require.NotNil(t, p)
}

func TestCheckAccess_StoreFailure(t *testing.T) {
	g, store := newGate()
	store.FailFind = true
	_, err := g.CheckAccess(context.Background(), "ana@example.com")
	require.ErrorIs(t, err, purchasetest.ErrInjected)
	require.NotErrorIs(t, err, ErrNotFound)
	require.NotErrorIs(t, err, ErrAlreadyConsumed)
}

func TestReserveReleaseComplete(t *testing.T) {
	ctx := context.Background()
	g, store := newGate()
	store.Put(&models.Purchase{Email: "ana@example.com", Approved: true})

	require.NoError(t, g.Reserve(ctx, "ana@example.com"))
	require.ErrorIs(t, g.Reserve(ctx, "ana@example.com"), ErrAlreadyConsumed)

	g.Release(ctx, "ana@example.com")
	_, err := g.CheckAccess(ctx, "ana@example.com")
	require.NoError(t, err)

	g.Complete(ctx, "ana@example.com")
	_, err = g.CheckAccess(ctx, "ana@example.com")
	require.ErrorIs(t, err, ErrAlreadyConsumed)
	assert.NotNil(t, store.Get("ana@example.com").ComboGeneratedAt)
}

func TestReserve_StoreFailure(t *testing.T) {
	g, store := newGate()
	store.FailReserve = true
	err := g.Reserve(context.Background(), "ana@example.com")
	require.ErrorIs(t, err, purchasetest.ErrInjected)
	require.NotErrorIs(t, err, ErrAlreadyConsumed)
}

func TestComplete_FailureIsSwallowed(t *testing.T) {
	g, store := newGate()
	store.Put(&models.Purchase{Email: "ana@example.com", Approved: true})
	store.FailMark = true
	g.Complete(context.Background(), "ana@example.com")
	assert.False(t, store.Get("ana@example.com").ComboGenerated)
}
