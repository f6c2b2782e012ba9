package repository

import (
	"github.com/ManuelReschke/AboCheckout/app/models"
	"gorm.io/gorm"
)

// clientRepository implements the ClientRepository interface
type clientRepository struct {
	db *gorm.DB
}

// NewClientRepository creates a new client repository instance
func NewClientRepository(db *gorm.DB) ClientRepository {
	return &clientRepository{db: db}
}

// Create inserts a new client; a duplicate email surfaces as gorm.ErrDuplicatedKey
func (r *clientRepository) Create(client *models.Client) error {
	if err := client.Validate(); err != nil {
		return err
	}
	return r.db.Create(client).Error
}

func (r *clientRepository) GetByID(id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) GetByEmail(email string) (*models.Client, error) {
	var client models.Client
	if err := r.db.Where("email = ?", email).First(&client).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *clientRepository) Update(client *models.Client) error {
	return r.db.Save(client).Error
}
