package deliverylog

import (
	"context"
	"testing"

	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/db/dbtest"
)

func TestSave_PersistsBothPhases(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db, zap.NewNop().Sugar())

	ctx, cancel := context.WithCancel(context.Background())
	svc.Save(ctx, &models.WebhookDeliveryLog{
		Provider: "kiwify",
		Email:    lo.ToPtr("ana@example.com"),
		Status:   models.WebhookDeliveryLogStatusReceived,
	})
	cancel()
	svc.Save(context.Background(), &models.WebhookDeliveryLog{
		Provider: "kiwify",
		Email:    lo.ToPtr("ana@example.com"),
		Outcome:  "grant",
		Status:   models.WebhookDeliveryLogStatusHandled,
	})
	svc.Save(context.Background(), nil)
	svc.Wait()

	rows, err := svc.List(context.Background(), "ana@example.com", 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	statuses := lo.Map(rows, func(r *models.WebhookDeliveryLog, _ int) models.WebhookDeliveryLogStatus { return r.Status })
	assert.ElementsMatch(t, []models.WebhookDeliveryLogStatus{
		models.WebhookDeliveryLogStatusReceived,
		models.WebhookDeliveryLogStatusHandled,
	}, statuses)
	for _, r := range rows {
		assert.NotEmpty(t, r.ID)
	}
}

func TestList_FiltersByEmail(t *testing.T) {
	db := dbtest.New(t)
	svc := New(db, zap.NewNop().Sugar())
	svc.Save(context.Background(), &models.WebhookDeliveryLog{Provider: "kiwify", Email: lo.ToPtr("a@example.com"), Status: models.WebhookDeliveryLogStatusReceived})
	svc.Save(context.Background(), &models.WebhookDeliveryLog{Provider: "kiwify", Email: lo.ToPtr("b@example.com"), Status: models.WebhookDeliveryLogStatusReceived})
	svc.Save(context.Background(), &models.WebhookDeliveryLog{Provider: "kiwify", Status: models.WebhookDeliveryLogStatusReceived})
	svc.Wait()

	rows, err := svc.List(context.Background(), "a@example.com", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	rows, err = svc.List(context.Background(), " A@Example.com ", 10)
	require.NoError(t, err)
	require.Len(t, rows, 1)

	all, err := svc.List(context.Background(), "", 10)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}
