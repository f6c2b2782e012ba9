package repository

import (
	"github.com/ManuelReschke/AboCheckout/app/models"
	"gorm.io/gorm"
)

// ClientRepository defines the interface for client-related database operations
type ClientRepository interface {
	Create(client *models.Client) error
	GetByID(id uint) (*models.Client, error)
	GetByEmail(email string) (*models.Client, error)
	Update(client *models.Client) error
}

// AddressRepository defines the interface for address-related database operations
type AddressRepository interface {
	Create(address *models.Address) error
	GetByID(id uint) (*models.Address, error)
	GetByIDAndClientID(id, clientID uint) (*models.Address, error)
	ListByClientID(clientID uint) ([]models.Address, error)
}

// OfferRepository defines the interface for offer lookups. Offers are
// referenced by their Aboweb id from the outside.
type OfferRepository interface {
	Create(offer *models.Offer) error
	GetByID(id uint) (*models.Offer, error)
	GetByAbowebID(abowebID int64) (*models.Offer, error)
	List() ([]models.Offer, error)
}

// TokenRepository defines the interface for stored payment credentials
type TokenRepository interface {
	Create(token *models.Token) error
	GetByID(id uint) (*models.Token, error)
	GetByIDAndClientID(id, clientID uint) (*models.Token, error)
}

// CheckoutRepository persists checkouts. Create and Update are single-row
// operations; associations are never written through them.
type CheckoutRepository interface {
	Create(checkout *models.Checkout) error
	Update(checkout *models.Checkout) error
	GetByID(id uint) (*models.Checkout, error)
	ListByStatus(status models.CheckoutStatus, offset, limit int) ([]models.Checkout, error)
}

// ChargeRepository stores payment receipts
type ChargeRepository interface {
	Create(charge *models.Charge) error
	ListByCheckoutID(checkoutID uint) ([]models.Charge, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	Client   ClientRepository
	Address  AddressRepository
	Offer    OfferRepository
	Token    TokenRepository
	Checkout CheckoutRepository
	Charge   ChargeRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Client:   NewClientRepository(db),
		Address:  NewAddressRepository(db),
		Offer:    NewOfferRepository(db),
		Token:    NewTokenRepository(db),
		Checkout: NewCheckoutRepository(db),
		Charge:   NewChargeRepository(db),
	}
}
