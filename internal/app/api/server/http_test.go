package server

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/combo"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/deliverylog"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/entitlement"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/statistics"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/webhook"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/archive"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/db/dbtest"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/platform/llm"
	cfgpkg "github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/metrics"
)

type unusedGenerator struct{}

func (unusedGenerator) Complete(context.Context, llm.Request) (string, error) {
	return "", llm.ErrEmptyCompletion
}

func newTestEngine(t *testing.T, accounts map[string]string) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log := zap.NewNop().Sugar()
	gdb := dbtest.New(t)

	cfg := &cfgpkg.Config{}
	cfg.Admin.Accounts = accounts
	cfg.Combo.Prompt = cfgpkg.DefaultPromptConfig()

	m := metrics.NewRecorder(prometheus.NewRegistry(), nil)
	store := purchase.NewStore(gdb, log)
	gate := entitlement.NewGate(store, log)
	deliveries := deliverylog.New(gdb, log)
	t.Cleanup(deliveries.Wait)

	r := newEngine()
	registerRoutes(r, routeDeps{
		Log:        log,
		Config:     cfg,
		DB:         gdb,
		Webhook:    webhook.NewHandler(cfg, store, deliveries, m, log),
		Gate:       gate,
		Combo:      combo.NewService(cfg, gate, combo.NewComposer(unusedGenerator{}, cfg.Combo, m), archive.Nop{}, m, log),
		Purchases:  store,
		Stats:      statistics.New(gdb),
		Deliveries: deliveries,
	})
	return r
}

func post(r *gin.Engine, path, body string, auth ...string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	if len(auth) == 2 {
		req.SetBasicAuth(auth[0], auth[1])
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRoutes_WebhookThenAccess(t *testing.T) {
	r := newTestEngine(t, nil)

	w := post(r, "/api/kiwify-webhook", `{"order_id":"o-1","order_status":"paid","customer_email":"ana@example.com","customer_name":"Ana"}`)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = post(r, "/api/validar-acesso", `{"email":"ana@example.com"}`)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"acesso":true`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))

	w = post(r, "/api/gerar-combo", `{"nome":"Ana","data":"1990-05-15","email":"nobody@example.com"}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRoutes_AdminDisabledWithoutAccounts(t *testing.T) {
	r := newTestEngine(t, nil)
	w := post(r, "/api/v1/admin/list_purchases", `{}`)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestRoutes_AdminRequiresBasicAuth(t *testing.T) {
	r := newTestEngine(t, map[string]string{"ops": "pw"})

	w := post(r, "/api/v1/admin/list_purchases", `{}`)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = post(r, "/api/v1/admin/list_purchases", `{}`, "ops", "pw")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"code":0`)
}

func TestRoutes_Healthz(t *testing.T) {
	r := newTestEngine(t, nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"db":"up"`)
}
