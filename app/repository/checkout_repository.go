package repository

import (
	"github.com/ManuelReschke/AboCheckout/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type checkoutRepository struct {
	db *gorm.DB
}

// NewCheckoutRepository creates a new checkout repository instance
func NewCheckoutRepository(db *gorm.DB) CheckoutRepository {
	return &checkoutRepository{db: db}
}

// Create inserts the checkout row only. Attached client, offer, token and
// addresses are reference data and must not be upserted from here.
func (r *checkoutRepository) Create(checkout *models.Checkout) error {
	return r.db.Omit(clause.Associations).Create(checkout).Error
}

// Update writes all checkout columns back in one statement
func (r *checkoutRepository) Update(checkout *models.Checkout) error {
	return r.db.Omit(clause.Associations).Save(checkout).Error
}

func (r *checkoutRepository) GetByID(id uint) (*models.Checkout, error) {
	var checkout models.Checkout
	err := r.db.
		Preload("Client").
		Preload("Offer").
		Preload("Token").
		Preload("InvoiceAddress").
		Preload("DeliveryAddress").
		First(&checkout, id).Error
	if err != nil {
		return nil, err
	}
	return &checkout, nil
}

// ListByStatus is used to find orphaned checkouts left in "created"
func (r *checkoutRepository) ListByStatus(status models.CheckoutStatus, offset, limit int) ([]models.Checkout, error) {
	var checkouts []models.Checkout
	err := r.db.Where("status = ?", status).
		Order("created_at ASC").Offset(offset).Limit(limit).Find(&checkouts).Error
	return checkouts, err
}
