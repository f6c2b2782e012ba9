package models

import (
	"time"

	"github.com/go-playground/validator/v10"
)

const (
	AddressTypeInvoice  = "invoice"
	AddressTypeDelivery = "delivery"
)

// Address belongs to a client and is used either for invoicing or delivery.
// AddressEqual is set when the client chose one address for both purposes.
type Address struct {
	ID                uint      `gorm:"primaryKey" json:"address_id"`
	ClientID          uint      `gorm:"not null;index" json:"client_id" validate:"required"`
	AddressType       string    `gorm:"type:varchar(16);not null;default:'invoice'" json:"address_type" validate:"oneof=invoice delivery"`
	Civility          string    `gorm:"type:varchar(10);default:''" json:"civility"`
	FirstName         string    `gorm:"type:varchar(100);default:''" json:"first_name"`
	LastName          string    `gorm:"type:varchar(100);default:''" json:"last_name"`
	Company           string    `gorm:"type:varchar(150);default:''" json:"company"`
	Address           string    `gorm:"type:varchar(255);not null" json:"address" validate:"required,max=255"`
	AddressComplement string    `gorm:"type:varchar(255);default:''" json:"address_complement"`
	PostalCode        string    `gorm:"type:varchar(16);not null" json:"postal_code" validate:"required,max=16"`
	City              string    `gorm:"type:varchar(100);not null" json:"city" validate:"required,max=100"`
	Country           string    `gorm:"type:varchar(2);not null;default:'FR'" json:"country" validate:"omitempty,len=2"`
	Phone             string    `gorm:"type:varchar(32);default:''" json:"phone"`
	AddressEqual      bool      `gorm:"default:false" json:"address_equal"`
	CreatedAt         time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (a *Address) Validate() error {
	v := validator.New()
	return v.Struct(a)
}
