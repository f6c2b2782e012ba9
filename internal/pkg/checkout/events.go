package checkout

import (
	"time"

	"github.com/ManuelReschke/AboCheckout/app/models"
)

// ClientSyncEvent tells Aboweb about a new client or a new delivery address.
type ClientSyncEvent struct {
	Client          *models.Client  `json:"client"`
	InvoiceAddress  *models.Address `json:"invoice_address"`
	DeliveryAddress *models.Address `json:"delivery_address"`
}

// PaymentRef carries the stored credential Aboweb needs to bill the
// subscription. Only the fields of the token's type are set.
type PaymentRef struct {
	TokenID          uint   `json:"token_id"`
	TokenType        string `json:"token_type"`
	StripeCustomerID string `json:"stripe_customer_id,omitempty"`
	StripeCardID     string `json:"stripe_card_id,omitempty"`
	SlimpayTokenID   string `json:"slimpay_token_id,omitempty"`
	RumID            string `json:"rum_id,omitempty"`
	RumCode          string `json:"rum_code,omitempty"`
}

// SubscriptionEvent asks Aboweb to open a subscription for a checkout.
type SubscriptionEvent struct {
	CheckoutID      uint                  `json:"checkout_id"`
	Status          models.CheckoutStatus `json:"status"`
	Source          string                `json:"source,omitempty"`
	IsGift          bool                  `json:"is_gift"`
	Client          *models.Client        `json:"client"`
	Offer           *models.Offer         `json:"offer"`
	Payment         *PaymentRef           `json:"payment,omitempty"`
	InvoiceAddress  *models.Address       `json:"invoice_address"`
	DeliveryAddress *models.Address       `json:"delivery_address"`
	CreatedAt       time.Time             `json:"created_at"`
}

func newPaymentRef(t *models.Token) *PaymentRef {
	if t == nil {
		return nil
	}
	ref := &PaymentRef{TokenID: t.ID, TokenType: t.TokenType}
	switch {
	case t.IsCard():
		ref.StripeCustomerID = t.StripeCustomerID
		ref.StripeCardID = t.StripeCardID
	case t.IsMandate():
		ref.SlimpayTokenID = t.SlimpayTokenID
		ref.RumID = t.SlimpayRumID
		ref.RumCode = t.SlimpayRumCode
	}
	return ref
}

func newSubscriptionEvent(c *models.Checkout, st *state) SubscriptionEvent {
	return SubscriptionEvent{
		CheckoutID:      c.ID,
		Status:          c.Status,
		Source:          c.Source,
		IsGift:          c.IsGift,
		Client:          st.client,
		Offer:           st.offer,
		Payment:         newPaymentRef(st.token),
		InvoiceAddress:  st.invoice,
		DeliveryAddress: st.delivery,
		CreatedAt:       c.CreatedAt,
	}
}
