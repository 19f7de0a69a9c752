package webhook

import (
	"errors"
	"strings"
	"time"

	"github.com/samber/lo"
	"github.com/tidwall/gjson"

	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/app/service/purchase"
	"github.com/aslimited22-collab/combo-3em1-atb-prod/internal/models"
)

var ErrInvalidPayload = errors.New("webhook payload is not a JSON object")

type Outcome string

const (
	OutcomeGrant  Outcome = "grant"
	OutcomeRevoke Outcome = "revoke"
	OutcomeIgnore Outcome = "ignore"
)

var (
	grantStatuses  = []string{"paid", "approved", "compra_aprovada"}
	revokeStatuses = []string{"refunded", "cancelled", "reembolso", "compra_cancelada"}
)

// Classify maps a Kiwify order status onto an outcome. Matching is
// case-insensitive and ignores surrounding whitespace.
func Classify(status string) Outcome {
	s := strings.ToLower(strings.TrimSpace(status))
	switch {
	case lo.Contains(grantStatuses, s):
		return OutcomeGrant
	case lo.Contains(revokeStatuses, s):
		return OutcomeRevoke
	default:
		return OutcomeIgnore
	}
}

// Payload paths in lookup order. Kiwify has shipped both a flat layout and
// one with capitalised nested objects; test deliveries use others.
var (
	emailPaths        = []string{"customer_email", "email", "Customer.email", "customer.email", "buyer_email"}
	customerNamePaths = []string{"Customer.full_name", "customer_name", "customer.name", "customer.full_name"}
	productIDPaths    = []string{"Product.product_id", "product_id"}
	productNamePaths  = []string{"Product.product_name", "product_name"}
	approvedAtPaths   = []string{"approved_date", "approved_at"}
)

// PurchaseEvent is the normalized view of one webhook delivery.
type PurchaseEvent struct {
	Email        string
	Status       string
	Outcome      Outcome
	OrderID      string
	CustomerName string

	CustomerFirstName  string
	CustomerMobile     string
	CustomerTaxID      string
	CustomerCity       string
	CustomerState      string
	ProductID          string
	ProductName        string
	PaymentMethod      string
	SubscriptionID     string
	SubscriptionStatus string
	ApprovedAt         *time.Time

	Raw []byte
}

// ParsePurchaseEvent extracts a PurchaseEvent from the raw body. A payload
// without any email yields an event with an empty Email.
func ParsePurchaseEvent(body []byte) (*PurchaseEvent, error) {
	if !gjson.ValidBytes(body) {
		return nil, ErrInvalidPayload
	}
	root := gjson.ParseBytes(body)
	if !root.IsObject() {
		return nil, ErrInvalidPayload
	}

	status := strings.ToLower(strings.TrimSpace(root.Get("order_status").String()))
	ev := &PurchaseEvent{
		Email:        purchase.NormalizeEmail(first(root, emailPaths...)),
		Status:       status,
		Outcome:      Classify(status),
		OrderID:      first(root, "order_id"),
		CustomerName: first(root, customerNamePaths...),

		CustomerFirstName:  first(root, "Customer.first_name"),
		CustomerMobile:     first(root, "Customer.mobile"),
		CustomerTaxID:      first(root, "Customer.CPF", "Customer.cnpj"),
		CustomerCity:       first(root, "Customer.city"),
		CustomerState:      first(root, "Customer.state"),
		ProductID:          first(root, productIDPaths...),
		ProductName:        first(root, productNamePaths...),
		PaymentMethod:      first(root, "payment_method"),
		SubscriptionID:     first(root, "Subscription.id", "subscription_id"),
		SubscriptionStatus: first(root, "Subscription.status"),
		Raw:                body,
	}
	if t, ok := parseTime(first(root, approvedAtPaths...)); ok {
		ev.ApprovedAt = &t
	}
	return ev, nil
}

// Purchase builds the row written on a grant.
func (e *PurchaseEvent) Purchase(now time.Time) *models.Purchase {
	approvedAt := e.ApprovedAt
	if approvedAt == nil {
		approvedAt = &now
	}
	return &models.Purchase{
		Email:              e.Email,
		OrderID:            e.OrderID,
		OrderStatus:        e.Status,
		CustomerName:       e.CustomerName,
		CustomerFirstName:  e.CustomerFirstName,
		CustomerMobile:     e.CustomerMobile,
		CustomerTaxID:      e.CustomerTaxID,
		CustomerCity:       e.CustomerCity,
		CustomerState:      e.CustomerState,
		ProductID:          e.ProductID,
		ProductName:        e.ProductName,
		PaymentMethod:      e.PaymentMethod,
		SubscriptionID:     e.SubscriptionID,
		SubscriptionStatus: e.SubscriptionStatus,
		Approved:           true,
		ApprovedAt:         approvedAt,
		Raw:                e.Raw,
	}
}

func first(root gjson.Result, paths ...string) string {
	for _, p := range paths {
		v := root.Get(p)
		if !v.Exists() || v.Type == gjson.Null {
			continue
		}
		if s := strings.TrimSpace(v.String()); s != "" {
			return s
		}
	}
	return ""
}

var approvedLayouts = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04",
}

func parseTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range approvedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
