package payment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/client"
)

// ErrChargeFailed is returned when Stripe accepted the request but reported
// the charge as failed.
var ErrChargeFailed = errors.New("charge failed")

type chargeCreator interface {
	New(params *stripe.ChargeParams) (*stripe.Charge, error)
}

// StripeGateway charges the default source of a Stripe customer
type StripeGateway struct {
	charges chargeCreator
	timeout time.Duration
}

// NewStripeGateway creates a gateway from config
func NewStripeGateway(cfg *Config) *StripeGateway {
	api := client.New(cfg.SecretKey, nil)
	return &StripeGateway{
		charges: api.Charges,
		timeout: cfg.Timeout,
	}
}

func (g *StripeGateway) Charge(ctx context.Context, req ChargeRequest) (*ChargeReceipt, error) {
	if req.Amount <= 0 {
		return nil, fmt.Errorf("invalid charge amount %d", req.Amount)
	}
	if strings.TrimSpace(req.CustomerRef) == "" {
		return nil, errors.New("stripe customer reference is required")
	}

	if g.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, g.timeout)
		defer cancel()
	}

	params := &stripe.ChargeParams{
		Amount:   stripe.Int64(req.Amount),
		Currency: stripe.String(strings.ToLower(req.Currency)),
		Customer: stripe.String(req.CustomerRef),
	}
	if req.Description != "" {
		params.Description = stripe.String(req.Description)
	}
	for k, v := range req.Metadata {
		params.AddMetadata(k, v)
	}
	params.Context = ctx

	ch, err := g.charges.New(params)
	if err != nil {
		var stripeErr *stripe.Error
		if errors.As(err, &stripeErr) {
			log.Warnf("[Stripe] Charge for customer %s rejected: type=%s code=%s msg=%s",
				req.CustomerRef, stripeErr.Type, stripeErr.Code, stripeErr.Msg)
			return nil, fmt.Errorf("stripe %s (%s): %w", stripeErr.Type, stripeErr.Code, err)
		}
		return nil, fmt.Errorf("stripe charge request failed: %w", err)
	}

	if ch.Status == stripe.ChargeStatusFailed || !ch.Paid {
		return nil, fmt.Errorf("%w: stripe charge %s status=%s outcome=%s", ErrChargeFailed, ch.ID, ch.Status, failureMessage(ch))
	}

	raw, err := rawCharge(ch)
	if err != nil {
		return nil, err
	}

	log.Infof("[Stripe] Charged %d %s to customer %s (charge %s)", req.Amount, req.Currency, req.CustomerRef, ch.ID)
	return &ChargeReceipt{ChargeID: ch.ID, Raw: raw}, nil
}

func rawCharge(ch *stripe.Charge) ([]byte, error) {
	if ch.LastResponse != nil && len(ch.LastResponse.RawJSON) > 0 {
		return ch.LastResponse.RawJSON, nil
	}
	raw, err := json.Marshal(ch)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal stripe charge %s: %w", ch.ID, err)
	}
	return raw, nil
}

func failureMessage(ch *stripe.Charge) string {
	if ch.FailureMessage != "" {
		return ch.FailureMessage
	}
	if ch.Outcome != nil {
		return ch.Outcome.SellerMessage
	}
	return "unknown"
}
