package checkout

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/ManuelReschke/AboCheckout/app/models"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/apperror"
)

// Request is the order submitted by the client. OfferID is the Aboweb id of
// the offer. Field order is the validation order.
type Request struct {
	ClientID          uint                  `json:"client_id" validate:"required"`
	InvoiceAddressID  uint                  `json:"invoice_address_id" validate:"required"`
	OfferID           int64                 `json:"offer_id" validate:"required"`
	CGVAccepted       bool                  `json:"cgv_accepted" validate:"required"`
	DeliveryAddressID uint                  `json:"delivery_address_id"`
	TokenID           uint                  `json:"token_id"`
	GodsonID          uint                  `json:"godson_id"`
	PaymentMethod     *models.PaymentMethod `json:"payment_method" validate:"omitempty,min=0,max=2"`
	IsGift            bool                  `json:"is_gift"`
	Source            string                `json:"source" validate:"max=64"`
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks the request without touching any store. Only the first
// violation is reported.
func (r *Request) Validate() error {
	if r == nil {
		return apperror.BadRequest("no checkout payload given")
	}

	err := validate.Struct(r)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return apperror.BadRequest("invalid checkout payload: %v", err)
	}

	fe := verrs[0]
	switch {
	case fe.Field() == "cgv_accepted":
		return apperror.BadRequest("cgv_accepted must be true")
	case fe.Tag() == "required":
		return apperror.BadRequest("%s is required", fe.Field())
	default:
		return apperror.BadRequest("%s is invalid (%s=%s)", fe.Field(), fe.Tag(), fe.Param())
	}
}
