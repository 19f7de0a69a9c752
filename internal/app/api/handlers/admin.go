package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/samber/lo"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/statistics"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/response"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/pkg/types"
)

type PurchaseScanner interface {
	Scan(ctx context.Context, req *purchase.ScanRequest) (*purchase.ScanResponse, error)
}

type StatisticsProvider interface {
	GetStatistic(ctx context.Context, req *statistics.StatisticRequest) (*statistics.StatisticResponse, error)
}

type DeliveryLister interface {
	List(ctx context.Context, email string, limit int) ([]*models.WebhookDeliveryLog, error)
}

type ListPurchasesRequest struct {
	Filters   []*types.CommonFilter `json:"filters"`
	From      int                   `json:"from"`
	Size      int                   `json:"size"`
	SortBy    string                `json:"sort_by"`
	SortOrder string                `json:"sort_order"`
}

// PurchaseItem is the admin view of a purchase row. Tax id and raw payload
// are left out.
type PurchaseItem struct {
	ID               string     `json:"id"`
	Email            string     `json:"email"`
	OrderID          string     `json:"order_id"`
	OrderStatus      string     `json:"order_status"`
	CustomerName     string     `json:"customer_name"`
	CustomerState    string     `json:"customer_state"`
	ProductID        string     `json:"product_id"`
	ProductName      string     `json:"product_name"`
	PaymentMethod    string     `json:"payment_method"`
	Approved         bool       `json:"approved"`
	ApprovedAt       *time.Time `json:"approved_at"`
	ComboGenerated   bool       `json:"combo_generated"`
	ComboGeneratedAt *time.Time `json:"combo_generated_at"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

func toPurchaseItem(p *models.Purchase) *PurchaseItem {
	return &PurchaseItem{
		ID:               p.ID,
		Email:            p.Email,
		OrderID:          p.OrderID,
		OrderStatus:      p.OrderStatus,
		CustomerName:     p.CustomerName,
		CustomerState:    p.CustomerState,
		ProductID:        p.ProductID,
		ProductName:      p.ProductName,
		PaymentMethod:    p.PaymentMethod,
		Approved:         p.Approved,
		ApprovedAt:       p.ApprovedAt,
		ComboGenerated:   p.ComboGenerated,
		ComboGeneratedAt: p.ComboGeneratedAt,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

type ListPurchasesResponse struct {
	Items []*PurchaseItem `json:"items"`
	Total int64           `json:"total"`
}

// @Summary      List Purchases (Admin)
// @Description  Retrieves a paginated and filterable list of purchases.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        request body ListPurchasesRequest true "filters, pagination and sorting"
// @Success      200  {object}  handlers.RespListPurchases
// @Router       /api/v1/admin/list_purchases [post]
func ApiListPurchases(store PurchaseScanner) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListPurchasesRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		scanReq := &purchase.ScanRequest{Filters: req.Filters, From: req.From, Size: req.Size, SortBy: req.SortBy, SortOrder: req.SortOrder}
		res, err := store.Scan(c.Request.Context(), scanReq)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		items := lo.Map(res.Items, func(it *models.Purchase, _ int) *PurchaseItem { return toPurchaseItem(it) })
		c.JSON(http.StatusOK, response.OKT(&ListPurchasesResponse{Items: items, Total: res.Total}))
	}
}

// @Summary      Purchase Statistics (Admin)
// @Description  Daily purchase, generation and webhook series plus snapshot totals.
// @Tags         Admin
// @Accept       json
// @Produce      json
// @Security     BasicAuth
// @Param        request body statistics.StatisticRequest true "Statistic request parameters"
// @Success      200  {object}  handlers.RespPurchaseStatistic
// @Router       /api/v1/admin/purchase_statistic [post]
func ApiPurchaseStatistic(svc StatisticsProvider) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req statistics.StatisticRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		if err := req.Validate(); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		res, err := svc.GetStatistic(c.Request.Context(), &req)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(res))
	}
}

type ListDeliveriesRequest struct {
	Email string `form:"email"`
	Limit int    `form:"limit"`
}

// @Summary      List Webhook Deliveries (Admin)
// @Description  Most recent webhook delivery log rows, optionally for one email.
// @Tags         Admin
// @Produce      json
// @Security     BasicAuth
// @Param        email query string false "customer email"
// @Param        limit query int false "max rows, default 50"
// @Success      200  {object}  handlers.RespListDeliveries
// @Router       /api/v1/admin/list_webhook_deliveries [get]
func ApiListDeliveries(svc DeliveryLister) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ListDeliveriesRequest
		if err := c.ShouldBindQuery(&req); err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeBadRequest, err.Error()))
			return
		}
		rows, err := svc.List(c.Request.Context(), req.Email, req.Limit)
		if err != nil {
			c.JSON(http.StatusOK, response.ErrorT[any](response.APIResponseCodeError, err.Error()))
			return
		}
		c.JSON(http.StatusOK, response.OKT(rows))
	}
}

func RegisterAdminRoutes(r gin.IRouter, store PurchaseScanner, stats StatisticsProvider, deliveries DeliveryLister) {
	r.POST("/list_purchases", ApiListPurchases(store))
	r.POST("/purchase_statistic", ApiPurchaseStatistic(stats))
	r.GET("/list_webhook_deliveries", ApiListDeliveries(deliveries))
}
