package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/webhook"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/response"
)

// maxWebhookBody bounds the raw body read for signature verification.
const maxWebhookBody = 1 << 20

// Kiwify only distinguishes success, bad signature and failure.
const msgWebhookFailed = "Erro ao processar webhook Kiwify"

// WebhookProcessor applies one Kiwify delivery.
type WebhookProcessor interface {
	Handle(ctx context.Context, body []byte, signature string) (*webhook.Result, error)
}

// WebhookResponse is the 200 body. Fields present depend on the outcome.
type WebhookResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	OrderID string `json:"order_id,omitempty"`
	Email   string `json:"email,omitempty"`
	Status  string `json:"status,omitempty"`
}

func toWebhookResponse(res *webhook.Result) *WebhookResponse {
	out := &WebhookResponse{Success: true, Message: res.Message}
	switch res.Outcome {
	case webhook.OutcomeGrant:
		out.OrderID, out.Email = res.OrderID, res.Email
	case webhook.OutcomeRevoke:
		out.OrderID = res.OrderID
	case webhook.OutcomeIgnore:
		out.Status, out.Email = res.Status, res.Email
	case webhook.OutcomePing:
		out.Status = res.Status
	}
	return out
}

// @Summary      Kiwify webhook
// @Description  Receives Kiwify order notifications. When a secret is configured and x-kiwify-signature is present, the header must be the hex HMAC-SHA256 of the raw body.
// @Tags         Webhook
// @Accept       json
// @Produce      json
// @Param        x-kiwify-signature header string false "hex HMAC-SHA256 of the raw body"
// @Param        payload body object true "Kiwify order payload"
// @Success      200  {object}  handlers.WebhookResponse
// @Failure      401  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /api/kiwify-webhook [post]
func ApiKiwifyWebhook(h WebhookProcessor, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxWebhookBody)
		body, err := c.GetRawData()
		if err != nil {
			logctx.FromGin(c, log).Warnw("webhook_kiwify_body_unreadable", "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.Err(response.ErrorCodeValidation, msgWebhookFailed))
			return
		}

		res, err := h.Handle(c.Request.Context(), body, c.GetHeader(webhook.SignatureHeader))
		switch {
		case err == nil:
			c.JSON(http.StatusOK, toWebhookResponse(res))
		case errors.Is(err, webhook.ErrInvalidSignature):
			c.JSON(http.StatusUnauthorized, response.Err(response.ErrorCodeAuthentication, "Assinatura inválida"))
		case errors.Is(err, webhook.ErrInvalidPayload):
			c.JSON(http.StatusInternalServerError, response.Err(response.ErrorCodeValidation, msgWebhookFailed))
		default:
			logctx.FromGin(c, log).Errorw("webhook_kiwify_handle_error", "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.Err(response.ErrorCodeStore, msgWebhookFailed))
		}
	}
}
