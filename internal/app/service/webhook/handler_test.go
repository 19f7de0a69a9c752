package webhook

import (
	"context"
	"sync"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase/purchasetest"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/metrics"
)

type fakeRecorder struct {
	mu      sync.Mutex
	entries []models.WebhookDeliveryLog
}

func (f *fakeRecorder) Save(_ context.Context, e *models.WebhookDeliveryLog) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = append(f.entries, *e)
}

func newHandler(secret string) (*Handler, *purchasetest.Memory, *fakeRecorder) {
	cfg := &config.Config{}
	cfg.Kiwify.WebhookSecret = secret
	store := purchasetest.NewMemory()
	rec := &fakeRecorder{}
	h := NewHandler(cfg, store, rec, metrics.NewRecorder(prometheus.NewRegistry(), nil), zap.NewNop().Sugar())
	return h, store, rec
}

const paidBody = `{"order_id":"ord-1","order_status":"paid","customer_email":"Ana@Example.com","customer_name":"Ana Maria","product_id":"p1"}`

func TestHandle_GrantIsIdempotent(t *testing.T) {
	ctx := context.Background()
	h, store, _ := newHandler("")

	res, err := h.Handle(ctx, []byte(paidBody), "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeGrant, res.Outcome)
	assert.Equal(t, MessageGranted, res.Message)
	assert.Equal(t, "ana@example.com", res.Email)

	second := `{"order_id":"ord-2","order_status":"paid","customer_email":"ana@example.com","customer_name":"Ana M."}`
	_, err = h.Handle(ctx, []byte(second), "")
	require.NoError(t, err)

	require.Equal(t, 1, store.Len())
	p := store.Get("ana@example.com")
	assert.Equal(t, "ord-2", p.OrderID)
	assert.Equal(t, "Ana M.", p.CustomerName)
	assert.True(t, p.Approved)
	assert.False(t, p.ComboGenerated)
}

func TestHandle_RevokeThenGrantClearsConsumption(t *testing.T) {
	ctx := context.Background()
	h, store, _ := newHandler("")
	store.Put(&models.Purchase{Email: "ana@example.com", Approved: true, ComboGenerated: true})

	res, err := h.Handle(ctx, []byte(`{"order_status":"refunded","customer_email":"ana@example.com"}`), "")
	require.NoError(t, err)
	assert.Equal(t, MessageRevoked, res.Message)
	assert.Nil(t, store.Get("ana@example.com"))

	_, err = h.Handle(ctx, []byte(paidBody), "")
	require.NoError(t, err)
	p := store.Get("ana@example.com")
	require.NotNil(t, p)
	assert.True(t, p.Approved)
	assert.False(t, p.ComboGenerated)
}

func TestHandle_RevokeFailureIsSwallowed(t *testing.T) {
	h, store, rec := newHandler("")
	store.FailDelete = true
	res, err := h.Handle(context.Background(), []byte(`{"order_status":"cancelled","email":"ana@example.com"}`), "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeRevoke, res.Outcome)
	require.Len(t, rec.entries, 2)
	assert.Equal(t, models.WebhookDeliveryLogStatusHandled, rec.entries[1].Status)
}

func TestHandle_GrantStoreFailureSurfaces(t *testing.T) {
	h, store, rec := newHandler("")
	store.FailUpsert = true
	_, err := h.Handle(context.Background(), []byte(paidBody), "")
	require.ErrorIs(t, err, ErrStore)
	require.ErrorIs(t, err, purchasetest.ErrInjected)
	require.Len(t, rec.entries, 2)
	assert.Equal(t, models.WebhookDeliveryLogStatusReceived, rec.entries[0].Status)
	assert.Equal(t, models.WebhookDeliveryLogStatusHandleFailed, rec.entries[1].Status)
	require.NotNil(t, rec.entries[1].Result)
	assert.Contains(t, string(*rec.entries[1].Result), "injected")
}

func TestHandle_BadSignatureMutatesNothing(t *testing.T) {
	h, store, rec := newHandler("s3cret")
	_, err := h.Handle(context.Background(), []byte(paidBody), Sign("wrong", []byte(paidBody)))
	require.ErrorIs(t, err, ErrInvalidSignature)
	assert.Equal(t, 0, store.Len())
	assert.Empty(t, store.Calls)
	assert.Empty(t, rec.entries)
}

func TestHandle_ValidSignature(t *testing.T) {
	h, store, _ := newHandler("s3cret")
	_, err := h.Handle(context.Background(), []byte(paidBody), Sign("s3cret", []byte(paidBody)))
	require.NoError(t, err)
	assert.Equal(t, 1, store.Len())
}

func TestHandle_PingWithoutEmail(t *testing.T) {
	h, store, rec := newHandler("")
	res, err := h.Handle(context.Background(), []byte(`{"order_status":"paid","order_id":"test"}`), "")
	require.NoError(t, err)
	assert.Equal(t, OutcomePing, res.Outcome)
	assert.Equal(t, MessagePing, res.Message)
	assert.Equal(t, "paid", res.Status)
	assert.Empty(t, store.Calls)
	assert.Empty(t, rec.entries)

	res, err = h.Handle(context.Background(), []byte(`{}`), "")
	require.NoError(t, err)
	assert.Equal(t, "unknown", res.Status)
}

func TestHandle_IgnoredStatus(t *testing.T) {
	h, store, _ := newHandler("")
	res, err := h.Handle(context.Background(), []byte(`{"order_status":"waiting_payment","customer_email":"ana@example.com"}`), "")
	require.NoError(t, err)
	assert.Equal(t, OutcomeIgnore, res.Outcome)
	assert.Equal(t, MessageIgnored, res.Message)
	assert.Equal(t, "waiting_payment", res.Status)
	assert.Empty(t, store.Calls)
}

func TestHandle_InvalidPayload(t *testing.T) {
	h, store, _ := newHandler("")
	_, err := h.Handle(context.Background(), []byte(`{broken`), "")
	require.ErrorIs(t, err, ErrInvalidPayload)
	assert.Empty(t, store.Calls)
}
