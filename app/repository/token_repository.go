package repository

import (
	"github.com/ManuelReschke/AboCheckout/app/models"
	"gorm.io/gorm"
)

type tokenRepository struct {
	db *gorm.DB
}

// NewTokenRepository creates a new token repository instance
func NewTokenRepository(db *gorm.DB) TokenRepository {
	return &tokenRepository{db: db}
}

func (r *tokenRepository) Create(token *models.Token) error {
	return r.db.Create(token).Error
}

func (r *tokenRepository) GetByID(id uint) (*models.Token, error) {
	var token models.Token
	if err := r.db.First(&token, id).Error; err != nil {
		return nil, err
	}
	return &token, nil
}

// GetByIDAndClientID returns gorm.ErrRecordNotFound when the token exists
// but belongs to another client.
func (r *tokenRepository) GetByIDAndClientID(id, clientID uint) (*models.Token, error) {
	var token models.Token
	err := r.db.Where("id = ? AND client_id = ?", id, clientID).First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}
