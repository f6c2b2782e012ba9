package models

import "time"

const (
	TokenTypeCard    = "card"
	TokenTypeMandate = "mandate"
)

// Token is a stored payment credential: a Stripe card or a Slimpay SEPA mandate.
type Token struct {
	ID                 uint      `gorm:"primaryKey" json:"token_id"`
	ClientID           uint      `gorm:"not null;index" json:"client_id"`
	TokenType          string    `gorm:"type:varchar(16);not null" json:"token_type"`
	AbowebID           *int64    `gorm:"default:null" json:"aboweb_id,omitempty"`
	StripeTokenID      string    `gorm:"type:varchar(191);default:'';index" json:"-"`
	StripeCustomerID   string    `gorm:"type:varchar(191);default:''" json:"-"`
	StripeCardID       string    `gorm:"type:varchar(191);default:''" json:"-"`
	StripeCardBrand    string    `gorm:"type:varchar(32);default:''" json:"stripe_card_brand,omitempty"`
	StripeCardLast4    string    `gorm:"type:varchar(4);default:''" json:"stripe_card_last4,omitempty"`
	StripeCardExpMonth int       `gorm:"default:0" json:"stripe_card_exp_month,omitempty"`
	StripeCardExpYear  int       `gorm:"default:0" json:"stripe_card_exp_year,omitempty"`
	StripeCardCountry  string    `gorm:"type:varchar(2);default:''" json:"stripe_card_country,omitempty"`
	IBAN               string    `gorm:"type:varchar(34);default:''" json:"-"`
	SlimpayTokenID     string    `gorm:"type:varchar(191);default:''" json:"slimpay_token_id,omitempty"`
	SlimpayRumID       string    `gorm:"type:varchar(191);default:''" json:"slimpay_rum_id,omitempty"`
	SlimpayRumCode     string    `gorm:"type:varchar(191);default:''" json:"slimpay_rum_code,omitempty"`
	CreatedAt          time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt          time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (t *Token) IsCard() bool {
	return t.TokenType == TokenTypeCard
}

func (t *Token) IsMandate() bool {
	return t.TokenType == TokenTypeMandate
}
