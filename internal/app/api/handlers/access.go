package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/entitlement"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/response"
)

const (
	msgEmailRequired   = "Email é obrigatório"
	msgNoPurchase      = "Nenhuma compra aprovada encontrada para este email"
	msgAlreadyConsumed = "Seu combo já foi gerado para este email"
)

// AccessChecker is the entitlement gate as seen by the access endpoint.
type AccessChecker interface {
	CheckAccess(ctx context.Context, email string) (*models.Purchase, error)
}

type AccessRequest struct {
	Email string `json:"email" binding:"required"`
}

type AccessUser struct {
	Email   string `json:"email"`
	Name    string `json:"nome"`
	OrderID string `json:"order_id"`
}

type AccessResponse struct {
	Access         bool        `json:"acesso"`
	User           *AccessUser `json:"usuario"`
	ComboGenerated bool        `json:"combo_gerado"`
	Message        string      `json:"message,omitempty"`
}

func toAccessUser(p *models.Purchase) *AccessUser {
	if p == nil {
		return nil
	}
	return &AccessUser{Email: p.Email, Name: p.CustomerName, OrderID: p.OrderID}
}

// @Summary      Check access
// @Description  Reports whether the email holds an unused combo entitlement.
// @Tags         Storefront
// @Accept       json
// @Produce      json
// @Param        request body handlers.AccessRequest true "customer email"
// @Success      200  {object}  handlers.AccessResponse
// @Failure      400  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /api/validar-acesso [post]
func ApiValidateAccess(gate AccessChecker, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AccessRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, response.Err(response.ErrorCodeValidation, msgEmailRequired))
			return
		}

		p, err := gate.CheckAccess(c.Request.Context(), req.Email)
		switch {
		case err == nil:
			c.JSON(http.StatusOK, &AccessResponse{Access: true, User: toAccessUser(p)})
		case errors.Is(err, entitlement.ErrNotFound):
			c.JSON(http.StatusOK, &AccessResponse{Message: msgNoPurchase})
		case errors.Is(err, entitlement.ErrAlreadyConsumed):
			c.JSON(http.StatusOK, &AccessResponse{User: toAccessUser(p), ComboGenerated: true, Message: msgAlreadyConsumed})
		default:
			logctx.FromGin(c, log).Errorw("access_check_failed", "error", err.Error())
			c.JSON(http.StatusInternalServerError, response.Err(response.ErrorCodeStore, "Erro ao validar acesso"))
		}
	}
}
