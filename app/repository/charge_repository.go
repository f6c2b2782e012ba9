package repository

import (
	"github.com/ManuelReschke/AboCheckout/app/models"
	"gorm.io/gorm"
)

type chargeRepository struct {
	db *gorm.DB
}

// NewChargeRepository creates a new charge repository instance
func NewChargeRepository(db *gorm.DB) ChargeRepository {
	return &chargeRepository{db: db}
}

func (r *chargeRepository) Create(charge *models.Charge) error {
	return r.db.Create(charge).Error
}

func (r *chargeRepository) ListByCheckoutID(checkoutID uint) ([]models.Charge, error) {
	var charges []models.Charge
	err := r.db.Where("checkout_id = ?", checkoutID).Order("id ASC").Find(&charges).Error
	return charges, err
}
