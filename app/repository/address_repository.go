package repository

import (
	"github.com/ManuelReschke/AboCheckout/app/models"
	"gorm.io/gorm"
)

type addressRepository struct {
	db *gorm.DB
}

// NewAddressRepository creates a new address repository instance
func NewAddressRepository(db *gorm.DB) AddressRepository {
	return &addressRepository{db: db}
}

func (r *addressRepository) Create(address *models.Address) error {
	if err := address.Validate(); err != nil {
		return err
	}
	return r.db.Create(address).Error
}

func (r *addressRepository) GetByID(id uint) (*models.Address, error) {
	var address models.Address
	if err := r.db.First(&address, id).Error; err != nil {
		return nil, err
	}
	return &address, nil
}

// GetByIDAndClientID only returns the address if it belongs to the client
func (r *addressRepository) GetByIDAndClientID(id, clientID uint) (*models.Address, error) {
	var address models.Address
	err := r.db.Where("id = ? AND client_id = ?", id, clientID).First(&address).Error
	if err != nil {
		return nil, err
	}
	return &address, nil
}

func (r *addressRepository) ListByClientID(clientID uint) ([]models.Address, error) {
	var addresses []models.Address
	err := r.db.Where("client_id = ?", clientID).Order("id ASC").Find(&addresses).Error
	return addresses, err
}
