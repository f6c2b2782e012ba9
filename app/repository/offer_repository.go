package repository

import (
	"github.com/ManuelReschke/AboCheckout/app/models"
	"gorm.io/gorm"
)

type offerRepository struct {
	db *gorm.DB
}

// NewOfferRepository creates a new offer repository instance
func NewOfferRepository(db *gorm.DB) OfferRepository {
	return &offerRepository{db: db}
}

func (r *offerRepository) Create(offer *models.Offer) error {
	return r.db.Create(offer).Error
}

func (r *offerRepository) GetByID(id uint) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.First(&offer, id).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

// GetByAbowebID resolves an offer by its id in the external billing system
func (r *offerRepository) GetByAbowebID(abowebID int64) (*models.Offer, error) {
	var offer models.Offer
	if err := r.db.Where("aboweb_id = ?", abowebID).First(&offer).Error; err != nil {
		return nil, err
	}
	return &offer, nil
}

func (r *offerRepository) List() ([]models.Offer, error) {
	var offers []models.Offer
	err := r.db.Order("monthly_price_ttc ASC").Find(&offers).Error
	return offers, err
}
