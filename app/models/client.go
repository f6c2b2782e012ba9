package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Client is a subscriber. AbowebClientID is set once the downstream billing
// system (Aboweb) knows about the client.
type Client struct {
	ID             uint      `gorm:"primaryKey" json:"client_id"`
	Email          string    `gorm:"type:varchar(200);not null;uniqueIndex" json:"email" validate:"required,email,max=200"`
	AbowebClientID *int64    `gorm:"default:null;index" json:"aboweb_client_id,omitempty"`
	Civility       string    `gorm:"type:varchar(10);default:''" json:"civility"`
	FirstName      string    `gorm:"type:varchar(100);default:''" json:"first_name" validate:"max=100"`
	LastName       string    `gorm:"type:varchar(100);default:''" json:"last_name" validate:"max=100"`
	IsGodparent    bool      `gorm:"default:false" json:"is_godparent"`
	GodparentCode  string    `gorm:"type:varchar(32);default:null;index" json:"godparent_code,omitempty"`
	CreatedAt      time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (c *Client) Validate() error {
	v := validator.New()
	return v.Struct(c)
}

// HasAbowebAccount reports whether the client already exists in Aboweb.
func (c *Client) HasAbowebAccount() bool {
	return c.AbowebClientID != nil && *c.AbowebClientID != 0
}

// DisplayName returns "First Last", falling back to the email address.
func (c *Client) DisplayName() string {
	name := strings.TrimSpace(strings.TrimSpace(c.FirstName) + " " + strings.TrimSpace(c.LastName))
	if name == "" {
		return c.Email
	}
	return name
}
