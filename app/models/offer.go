package models

import "time"

// PaymentMethod is shared by offers and checkouts.
type PaymentMethod int

const (
	PaymentMethodNone    PaymentMethod = 0
	PaymentMethodMandate PaymentMethod = 1
	PaymentMethodCard    PaymentMethod = 2
)

func (p PaymentMethod) String() string {
	switch p {
	case PaymentMethodNone:
		return "none"
	case PaymentMethodMandate:
		return "mandate"
	case PaymentMethodCard:
		return "card"
	default:
		return "unknown"
	}
}

// Offer is read-only reference data describing a subscription product.
// Prices are stored in cents. Duration counts billing periods of one week,
// so four periods make a month.
type Offer struct {
	ID              uint          `gorm:"primaryKey" json:"offer_id"`
	AbowebID        int64         `gorm:"not null;uniqueIndex" json:"aboweb_id"`
	Name            string        `gorm:"type:varchar(150);default:''" json:"name"`
	TimeLimited     bool          `gorm:"default:false" json:"time_limited"`
	PaymentMethod   PaymentMethod `gorm:"type:tinyint;not null;default:0" json:"payment_method"`
	IsFree          bool          `gorm:"default:false" json:"is_free"`
	IsFreeGift      bool          `gorm:"default:false" json:"is_free_gift"`
	IsGift          bool          `gorm:"default:false" json:"is_gift"`
	Duration        int           `gorm:"default:0" json:"duration"`
	MonthlyPriceTTC int64         `gorm:"default:0" json:"monthly_price_ttc"`
	PriceTTC        int64         `gorm:"default:0" json:"price_ttc"`
	ShippingCost    int64         `gorm:"default:0" json:"shipping_cost"`
	CreatedAt       time.Time     `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time     `gorm:"autoUpdateTime" json:"updated_at"`
}

// RequiresPayment reports whether a checkout on this offer needs a stored
// payment credential.
func (o *Offer) RequiresPayment() bool {
	return !o.IsFree && !o.IsFreeGift
}
