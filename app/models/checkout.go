package models

import "time"

// CheckoutStatus is the lifecycle tag stored on a checkout.
type CheckoutStatus string

const (
	CheckoutStatusCreated            CheckoutStatus = "created"
	CheckoutStatusFree               CheckoutStatus = "free"
	CheckoutStatusDeclined           CheckoutStatus = "declined"
	CheckoutStatusCardPaid           CheckoutStatus = "cb/paid"
	CheckoutStatusCardDeclined       CheckoutStatus = "cb/declined"
	CheckoutStatusCardSigned         CheckoutStatus = "cb/signed"
	CheckoutStatusCardAbowebError    CheckoutStatus = "cb/aboweb-error"
	CheckoutStatusMandateSigned      CheckoutStatus = "mandate/signed"
	CheckoutStatusMandateAbowebError CheckoutStatus = "mandate/aboweb-error"
)

// IsTerminal reports whether no further transition is expected.
func (s CheckoutStatus) IsTerminal() bool {
	return s != CheckoutStatusCreated && s != ""
}

// IsFailure reports whether the status records a failed payment branch.
func (s CheckoutStatus) IsFailure() bool {
	switch s {
	case CheckoutStatusDeclined, CheckoutStatusCardDeclined,
		CheckoutStatusCardAbowebError, CheckoutStatusMandateAbowebError:
		return true
	default:
		return false
	}
}

func (s CheckoutStatus) String() string {
	return string(s)
}

// Checkout is one order attempt. It is created once in status "created" and
// then mutated in place while the payment branch runs; it is never deleted.
type Checkout struct {
	ID                uint           `gorm:"primaryKey" json:"checkout_id"`
	ClientID          uint           `gorm:"not null;index" json:"client_id"`
	OfferID           uint           `gorm:"not null;index" json:"offer_id"`
	TokenID           *uint          `gorm:"default:null;index" json:"token_id,omitempty"`
	InvoiceAddressID  uint           `gorm:"not null" json:"invoice_address_id"`
	DeliveryAddressID uint           `gorm:"not null" json:"delivery_address_id"`
	GodsonID          *uint          `gorm:"default:null;index" json:"godson_id,omitempty"`
	PaymentMethod     PaymentMethod  `gorm:"type:tinyint;not null;default:0" json:"payment_method"`
	IsGift            bool           `gorm:"default:false" json:"is_gift"`
	IsFree            bool           `gorm:"default:false" json:"is_free"`
	CGVAccepted       bool           `gorm:"column:cgv_accepted;default:false" json:"cgv_accepted"`
	Source            string         `gorm:"type:varchar(64);default:''" json:"source,omitempty"`
	Status            CheckoutStatus `gorm:"type:varchar(32);not null;default:'created';index" json:"status"`
	CreatedAt         time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime" json:"updated_at"`

	Client          *Client  `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Offer           *Offer   `gorm:"foreignKey:OfferID" json:"offer,omitempty"`
	Token           *Token   `gorm:"foreignKey:TokenID" json:"token,omitempty"`
	InvoiceAddress  *Address `gorm:"foreignKey:InvoiceAddressID" json:"invoice_address,omitempty"`
	DeliveryAddress *Address `gorm:"foreignKey:DeliveryAddressID" json:"delivery_address,omitempty"`
}
