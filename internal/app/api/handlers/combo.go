package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/combo"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/entitlement"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/logctx"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/response"
)

const (
	msgComboFieldsRequired = "Nome, data de nascimento e email são obrigatórios"
	msgComboBadDate        = "Data de nascimento inválida"
	msgComboUnauthorized   = "Acesso não autorizado. Nenhuma compra aprovada encontrada para este email."
	msgComboConsumed       = "Você já gerou seu combo. Cada compra dá direito a uma única geração."
	msgComboUpstream       = "Não foi possível gerar seu combo agora. Tente novamente em instantes."
	msgComboInternal       = "Erro interno ao gerar combo"
)

// ComboGenerator runs one generation.
type ComboGenerator interface {
	Generate(ctx context.Context, req combo.Request) (*combo.Result, error)
}

// ComboRequest is the generation input. nome falls back to the buyer's name
// from the purchase when empty.
type ComboRequest struct {
	Name      string `json:"nome"`
	BirthDate string `json:"data" binding:"required,birthdate"`
	Email     string `json:"email" binding:"required"`
}

type ComboResponse struct {
	Success  bool            `json:"success"`
	HTML     string          `json:"html"`
	Analyses *combo.Analyses `json:"analises,omitempty"`
}

// @Summary      Generate combo
// @Description  Generates the one-time personalised document for an entitled email.
// @Tags         Storefront
// @Accept       json
// @Produce      json
// @Param        request body handlers.ComboRequest true "name, birth date and email"
// @Success      200  {object}  handlers.ComboResponse
// @Failure      400  {object}  response.ErrorBody
// @Failure      401  {object}  response.ErrorBody
// @Failure      403  {object}  response.ErrorBody
// @Failure      500  {object}  response.ErrorBody
// @Router       /api/gerar-combo [post]
func ApiGenerateCombo(svc ComboGenerator, log *zap.SugaredLogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ComboRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			msg := msgComboFieldsRequired
			if failedTag(err, "BirthDate") == "birthdate" {
				msg = msgComboBadDate
			}
			c.JSON(http.StatusBadRequest, response.Err(response.ErrorCodeValidation, msg))
			return
		}

		res, err := svc.Generate(c.Request.Context(), combo.Request{Name: req.Name, BirthDate: req.BirthDate, Email: req.Email})
		if err != nil {
			status, body := comboError(err)
			if status >= http.StatusInternalServerError {
				logctx.FromGin(c, log).Errorw("combo_request_failed", "error", err.Error())
			}
			c.JSON(status, body)
			return
		}
		c.JSON(http.StatusOK, &ComboResponse{Success: true, HTML: res.HTML, Analyses: res.Analyses})
	}
}

func comboError(err error) (int, *response.ErrorBody) {
	var ve *combo.ValidationError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest, response.Err(response.ErrorCodeValidation, ve.Message)
	case errors.Is(err, combo.ErrValidation):
		return http.StatusBadRequest, response.Err(response.ErrorCodeValidation, msgComboFieldsRequired)
	case errors.Is(err, entitlement.ErrNotFound):
		return http.StatusUnauthorized, response.Err(response.ErrorCodeUnauthorized, msgComboUnauthorized)
	case errors.Is(err, entitlement.ErrAlreadyConsumed):
		return http.StatusForbidden, response.Err(response.ErrorCodeAlreadyConsumed, msgComboConsumed)
	case errors.Is(err, combo.ErrUpstream):
		return http.StatusInternalServerError, response.Err(response.ErrorCodeUpstream, msgComboUpstream)
	case errors.Is(err, combo.ErrStore):
		return http.StatusInternalServerError, response.Err(response.ErrorCodeStore, msgComboInternal)
	default:
		return http.StatusInternalServerError, response.Err(response.ErrorCodeInternal, msgComboInternal)
	}
}
