package models

// All lists every table managed by AutoMigrate.
func All() []any {
	return []any{
		&Purchase{},
		&WebhookDeliveryLog{},
	}
}
