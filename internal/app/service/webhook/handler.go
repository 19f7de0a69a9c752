package webhook

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/samber/lo"
	"go.uber.org/zap"
	"gorm.io/datatypes"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/config"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/metrics"
)

const Provider = "kiwify"

// ErrStore wraps store failures on the grant path.
var ErrStore = errors.New("purchase store failure")

// OutcomePing marks a delivery without any customer email.
const OutcomePing Outcome = "ping"

const (
	MessageGranted = "Compra processada e acesso liberado com sucesso"
	MessageRevoked = "Acesso removido com sucesso"
	MessageIgnored = "Webhook recebido"
	MessagePing    = "Webhook recebido (sem email no payload de teste)."
)

// DeliveryRecorder persists the audit trail of each delivery.
type DeliveryRecorder interface {
	Save(ctx context.Context, entry *models.WebhookDeliveryLog)
}

// Result describes what a delivery did. It is returned for every accepted
// delivery, including pings and ignored statuses.
type Result struct {
	Outcome Outcome
	Message string
	Email   string
	OrderID string
	Status  string
}

type Handler struct {
	secret   string
	store    purchase.Store
	recorder DeliveryRecorder
	metrics  *metrics.Recorder
	log      *zap.SugaredLogger
	now      func() time.Time
}

func NewHandler(cfg *config.Config, store purchase.Store, recorder DeliveryRecorder, m *metrics.Recorder, log *zap.SugaredLogger) *Handler {
	return &Handler{
		secret:   cfg.Kiwify.WebhookSecret,
		store:    store,
		recorder: recorder,
		metrics:  m,
		log:      log,
		now:      time.Now,
	}
}

// Handle verifies, parses and applies one delivery. It returns
// ErrInvalidSignature, ErrInvalidPayload, or an error wrapping ErrStore when
// a grant could not be written. Revoke failures are logged and reported as
// success so Kiwify does not redeliver.
func (h *Handler) Handle(ctx context.Context, body []byte, signature string) (res *Result, resErr error) {
	log := logctx.FromCtx(ctx, h.log)

	if err := VerifySignature(h.secret, signature, body); err != nil {
		log.Warnw("webhook_signature_rejected", "body_bytes", len(body))
		h.metrics.WebhookEvent("rejected")
		return nil, err
	}

	ev, err := ParsePurchaseEvent(body)
	if err != nil {
		log.Warnw("webhook_payload_invalid", "error", err.Error())
		h.metrics.WebhookEvent("rejected")
		return nil, err
	}

	if ev.Email == "" {
		log.Infow("webhook_ping", "status", ev.Status)
		h.metrics.WebhookEvent(string(OutcomePing))
		return &Result{Outcome: OutcomePing, Message: MessagePing, Status: lo.Ternary(ev.Status == "", "unknown", ev.Status)}, nil
	}

	ctx = logctx.WithEmail(ctx, ev.Email)
	log = logctx.FromCtx(ctx, h.log)
	log.Infow("webhook_received", "order_id", ev.OrderID, "status", ev.Status, "outcome", ev.Outcome)

	entry := &models.WebhookDeliveryLog{
		Provider:    Provider,
		Email:       lo.ToPtr(ev.Email),
		TraceID:     logctx.TraceID(ctx),
		OrderID:     ev.OrderID,
		OrderStatus: ev.Status,
		Outcome:     string(ev.Outcome),
		Data:        datatypes.JSON(ev.Raw),
		Status:      models.WebhookDeliveryLogStatusReceived,
	}
	h.save(ctx, entry)

	defer func() {
		final := *entry
		final.ID = ""
		final.Status = models.WebhookDeliveryLogStatusHandled
		resMap := map[string]any{"outcome": ev.Outcome}
		if resErr != nil {
			final.Status = models.WebhookDeliveryLogStatusHandleFailed
			resMap["error"] = resErr.Error()
			h.metrics.WebhookEvent("failed")
		} else {
			resMap["message"] = res.Message
			h.metrics.WebhookEvent(string(ev.Outcome))
		}
		resBytes, _ := json.Marshal(resMap)
		final.Result = lo.ToPtr(datatypes.JSON(resBytes))
		h.save(ctx, &final)
	}()

	res = &Result{Outcome: ev.Outcome, Email: ev.Email, OrderID: ev.OrderID, Status: ev.Status}
	switch ev.Outcome {
	case OutcomeGrant:
		if err := h.store.Upsert(ctx, ev.Purchase(h.now())); err != nil {
			log.Errorw("webhook_grant_failed", "order_id", ev.OrderID, "error", err.Error())
			return nil, fmt.Errorf("%w: %w", ErrStore, err)
		}
		log.Infow("webhook_grant_applied", "order_id", ev.OrderID)
		res.Message = MessageGranted
	case OutcomeRevoke:
		if err := h.store.DeleteByEmail(ctx, ev.Email); err != nil {
			log.Errorw("webhook_revoke_failed", "order_id", ev.OrderID, "error", err.Error())
		} else {
			log.Infow("webhook_revoke_applied", "order_id", ev.OrderID)
		}
		res.Message = MessageRevoked
	default:
		log.Infow("webhook_status_ignored", "status", ev.Status)
		res.Message = MessageIgnored
	}
	return res, nil
}

func (h *Handler) save(ctx context.Context, entry *models.WebhookDeliveryLog) {
	if h.recorder == nil {
		return
	}
	h.recorder.Save(ctx, entry)
}
