package payment

import "context"

// ChargeRequest describes one card charge. Amount is in minor units (cents).
type ChargeRequest struct {
	Amount      int64
	Currency    string
	Description string
	CustomerRef string
	Metadata    map[string]string
}

// ChargeReceipt is returned for a successful charge. Raw holds the gateway
// response body as received.
type ChargeReceipt struct {
	ChargeID string
	Raw      []byte
}

// Gateway charges a stored card. Retries, if any, are the gateway's concern.
type Gateway interface {
	Charge(ctx context.Context, req ChargeRequest) (*ChargeReceipt, error)
}
