package models

import (
	"time"

	"gorm.io/datatypes"
)

type WebhookDeliveryLogStatus string

const (
	WebhookDeliveryLogStatusReceived     WebhookDeliveryLogStatus = "received"
	WebhookDeliveryLogStatusHandled      WebhookDeliveryLogStatus = "handled"
	WebhookDeliveryLogStatusHandleFailed WebhookDeliveryLogStatus = "handle_failed"
)

// WebhookDeliveryLog records every webhook delivery twice: once on receipt
// and once with the outcome.
type WebhookDeliveryLog struct {
	ID          string                   `gorm:"column:id;type:varchar(64);primary_key" json:"id"`
	Provider    string                   `gorm:"column:provider;type:varchar(64);not null" json:"provider"`
	Email       *string                  `gorm:"column:email;type:varchar(320);index" json:"email"`
	TraceID     string                   `gorm:"column:trace_id;type:varchar(128)" json:"trace_id"`
	OrderID     string                   `gorm:"column:order_id;type:varchar(128)" json:"order_id"`
	OrderStatus string                   `gorm:"column:order_status;type:varchar(64)" json:"order_status"`
	Outcome     string                   `gorm:"column:outcome;type:varchar(32)" json:"outcome"`
	Data        datatypes.JSON           `gorm:"column:data;type:jsonb" json:"data"`
	Result      *datatypes.JSON          `gorm:"column:result;type:jsonb" json:"result"`
	Status      WebhookDeliveryLogStatus `gorm:"column:status;type:varchar(64);not null" json:"status"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

func (WebhookDeliveryLog) TableName() string { return "webhook_delivery_log" }
