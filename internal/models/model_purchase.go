package models

import (
	"time"

	"gorm.io/datatypes"
)

// Purchase is one row per customer email. It is written by the Kiwify webhook
// (grant upserts, revoke deletes) and by combo generation (combo flags).
type Purchase struct {
	ID    string `gorm:"column:id;primary_key;type:varchar(64)" json:"id"`
	Email string `gorm:"column:email;type:varchar(320);not null;uniqueIndex:unique_purchase_email" json:"email"`

	OrderID     string `gorm:"column:order_id;type:varchar(128)" json:"order_id"`
	OrderStatus string `gorm:"column:order_status;type:varchar(64)" json:"order_status"`

	CustomerName      string `gorm:"column:customer_name;type:varchar(255)" json:"customer_name"`
	CustomerFirstName string `gorm:"column:customer_first_name;type:varchar(128)" json:"customer_first_name"`
	CustomerMobile    string `gorm:"column:customer_mobile;type:varchar(64)" json:"customer_mobile"`
	// CustomerTaxID carries the CPF as sent by Kiwify.
	CustomerTaxID string `gorm:"column:customer_tax_id;type:varchar(32)" json:"customer_tax_id"`
	CustomerCity  string `gorm:"column:customer_city;type:varchar(128)" json:"customer_city"`
	CustomerState string `gorm:"column:customer_state;type:varchar(64)" json:"customer_state"`

	ProductID          string `gorm:"column:product_id;type:varchar(128)" json:"product_id"`
	ProductName        string `gorm:"column:product_name;type:varchar(255)" json:"product_name"`
	PaymentMethod      string `gorm:"column:payment_method;type:varchar(64)" json:"payment_method"`
	SubscriptionID     string `gorm:"column:subscription_id;type:varchar(128)" json:"subscription_id"`
	SubscriptionStatus string `gorm:"column:subscription_status;type:varchar(64)" json:"subscription_status"`

	Approved   bool       `gorm:"column:approved;not null;default:false" json:"approved"`
	ApprovedAt *time.Time `gorm:"column:approved_at;default:null" json:"approved_at"`
	// ComboGenerated flips false -> true once per purchase; only a row
	// deletion (revoke) or a failed generation releases it.
	ComboGenerated   bool       `gorm:"column:combo_generated;not null;default:false" json:"combo_generated"`
	ComboGeneratedAt *time.Time `gorm:"column:combo_generated_at;default:null" json:"combo_generated_at"`

	// Raw is the last webhook payload that granted access.
	Raw       datatypes.JSON `gorm:"column:raw;type:jsonb" json:"-"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

func (Purchase) TableName() string { return "purchases" }

// HasEntitlement reports whether one generation is still available.
func (p *Purchase) HasEntitlement() bool {
	return p != nil && p.Approved && !p.ComboGenerated
}

// PurchaseUpsertColumns are refreshed when a grant arrives for an existing email.
// combo_generated, combo_generated_at, id and created_at are never touched.
var PurchaseUpsertColumns = []string{
	"order_id",
	"order_status",
	"customer_name",
	"customer_first_name",
	"customer_mobile",
	"customer_tax_id",
	"customer_city",
	"customer_state",
	"product_id",
	"product_name",
	"payment_method",
	"subscription_id",
	"subscription_status",
	"approved",
	"approved_at",
	"raw",
	"updated_at",
}
