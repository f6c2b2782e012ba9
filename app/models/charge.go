package models

import "time"

// Charge is the receipt of a successful payment gateway transaction.
// Rows are written once and never updated.
type Charge struct {
	ID              uint      `gorm:"primaryKey" json:"charge_id"`
	GatewayChargeID string    `gorm:"type:varchar(191);not null;uniqueIndex" json:"gateway_charge_id"`
	Amount          int64     `gorm:"not null" json:"amount"`
	Currency        string    `gorm:"type:varchar(3);not null" json:"currency"`
	RawPayloadJSON  string    `gorm:"type:longtext" json:"-"`
	TokenID         uint      `gorm:"not null;index" json:"token_id"`
	ClientID        uint      `gorm:"not null;index" json:"client_id"`
	CheckoutID      uint      `gorm:"not null;index" json:"checkout_id"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
}
