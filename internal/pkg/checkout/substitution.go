package checkout

import (
	"fmt"
	"strings"

	"github.com/ManuelReschke/AboCheckout/app/models"
)

// A month is four billing periods.
const periodsPerMonth = 4

// OfferInMonths is duration/4, or 4 when the offer has no duration.
func OfferInMonths(o *models.Offer) float64 {
	if o.Duration > 0 {
		return float64(o.Duration) / periodsPerMonth
	}
	return periodsPerMonth
}

// SubPeriodPrice is monthly_price_ttc * duration/4, or the monthly price when
// the offer has no duration.
func SubPeriodPrice(o *models.Offer) float64 {
	if o.Duration > 0 {
		return float64(o.MonthlyPriceTTC) * (float64(o.Duration) / periodsPerMonth)
	}
	return float64(o.MonthlyPriceTTC)
}

// PriceMajor converts price_ttc from cents to euros.
func PriceMajor(o *models.Offer) float64 {
	return float64(o.PriceTTC) / 100
}

func ShippingTotal(o *models.Offer) int64 {
	if o.Duration > 0 {
		return int64(o.Duration) * o.ShippingCost
	}
	return o.ShippingCost * periodsPerMonth
}

func maskIBAN(iban string) string {
	iban = strings.ReplaceAll(iban, " ", "")
	if len(iban) <= 8 {
		return iban
	}
	return iban[:4] + strings.Repeat("*", len(iban)-8) + iban[len(iban)-4:]
}

func addressBlock(a *models.Address) map[string]interface{} {
	if a == nil {
		return map[string]interface{}{}
	}
	return map[string]interface{}{
		"civility":           a.Civility,
		"first_name":         a.FirstName,
		"last_name":          a.LastName,
		"company":            a.Company,
		"address":            a.Address,
		"address_complement": a.AddressComplement,
		"postal_code":        a.PostalCode,
		"city":               a.City,
		"country":            a.Country,
		"phone":              a.Phone,
	}
}

// BuildEmailData returns the template substitutions for a confirmation
// email. Payment fields are only set when a token of the checkout's method
// is attached.
func BuildEmailData(c *models.Checkout, client *models.Client, o *models.Offer, t *models.Token, invoice, delivery *models.Address) map[string]interface{} {
	data := map[string]interface{}{
		"checkout_id":      c.ID,
		"client_name":      client.DisplayName(),
		"aboweb_client_id": "",
		"offer_name":       o.Name,
		"offer_in_months":  OfferInMonths(o),
		"sub_period_price": SubPeriodPrice(o),
		"price":            PriceMajor(o),
		"shipping_cost":    ShippingTotal(o),
		"invoice_address":  addressBlock(invoice),
		"delivery_address": addressBlock(delivery),
	}
	if client.AbowebClientID != nil {
		data["aboweb_client_id"] = fmt.Sprintf("%d", *client.AbowebClientID)
	}

	if t == nil {
		return data
	}
	switch {
	case c.PaymentMethod == models.PaymentMethodCard && t.IsCard():
		data["card_brand"] = t.StripeCardBrand
		data["card_last4"] = t.StripeCardLast4
		data["card_expiry"] = fmt.Sprintf("%02d/%d", t.StripeCardExpMonth, t.StripeCardExpYear)
	case c.PaymentMethod == models.PaymentMethodMandate && t.IsMandate():
		data["iban"] = maskIBAN(t.IBAN)
		data["rum"] = t.SlimpayRumCode
	}
	return data
}
