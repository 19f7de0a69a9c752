package handlers

import (
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/statistics"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/response"
)

// RespHealth wraps the health status map in the standard envelope.
type RespHealth struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    map[string]string        `json:"data"`
}

// RespListPurchases wraps ListPurchasesResponse in the standard envelope.
type RespListPurchases struct {
	Code    response.APIResponseCode `json:"code"`
	Message string                   `json:"message"`
	Data    ListPurchasesResponse    `json:"data"`
}

// RespPurchaseStatistic wraps StatisticResponse in the standard envelope.
type RespPurchaseStatistic struct {
	Code    response.APIResponseCode     `json:"code"`
	Message string                       `json:"message"`
	Data    statistics.StatisticResponse `json:"data"`
}

type RespListDeliveries struct {
	Code    response.APIResponseCode     `json:"code"`
	Message string                       `json:"message"`
	Data    []*models.WebhookDeliveryLog `json:"data"`
}
