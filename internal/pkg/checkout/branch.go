package checkout

import (
	"github.com/ManuelReschke/AboCheckout/app/models"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/mail"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/messaging"
)

// Branch is the payment path taken for an offer. Exactly one branch applies
// to any offer; BranchNone means no side effect runs.
type Branch int

const (
	BranchNone Branch = iota
	BranchFreeTrial
	BranchGodparentGiftCard
	BranchFixedTermCard
	BranchOpenEndedCard
	BranchOpenEndedMandate
)

func (b Branch) String() string {
	switch b {
	case BranchFreeTrial:
		return "free-trial"
	case BranchGodparentGiftCard:
		return "godparent-gift-card"
	case BranchFixedTermCard:
		return "fixed-term-card"
	case BranchOpenEndedCard:
		return "open-ended-card"
	case BranchOpenEndedMandate:
		return "open-ended-mandate"
	default:
		return "none"
	}
}

// Classify selects the branch from the offer flags.
func Classify(o *models.Offer) Branch {
	if o == nil {
		return BranchNone
	}
	paid := !o.IsFree && !o.IsFreeGift

	switch {
	case o.TimeLimited && o.PaymentMethod == models.PaymentMethodNone && o.IsFreeGift && o.IsFree:
		return BranchFreeTrial
	case o.TimeLimited && o.PaymentMethod == models.PaymentMethodCard && o.IsGift:
		return BranchGodparentGiftCard
	case o.TimeLimited && o.PaymentMethod == models.PaymentMethodCard && paid && !o.IsGift:
		return BranchFixedTermCard
	case !o.TimeLimited && o.PaymentMethod == models.PaymentMethodCard && paid:
		return BranchOpenEndedCard
	case !o.TimeLimited && o.PaymentMethod == models.PaymentMethodMandate && paid:
		return BranchOpenEndedMandate
	default:
		return BranchNone
	}
}

type outcome struct {
	success models.CheckoutStatus
	failure models.CheckoutStatus
	charges bool
	channel messaging.Channel
}

var outcomes = map[Branch]outcome{
	BranchFreeTrial: {
		success: models.CheckoutStatusFree,
		failure: models.CheckoutStatusDeclined,
		channel: messaging.ChannelNewSubscriptionFixedTermCard,
	},
	BranchGodparentGiftCard: {
		success: models.CheckoutStatusCardPaid,
		failure: models.CheckoutStatusCardDeclined,
		charges: true,
	},
	BranchFixedTermCard: {
		success: models.CheckoutStatusCardPaid,
		failure: models.CheckoutStatusCardDeclined,
		charges: true,
		channel: messaging.ChannelNewSubscriptionFixedTermCard,
	},
	BranchOpenEndedCard: {
		success: models.CheckoutStatusCardSigned,
		failure: models.CheckoutStatusCardAbowebError,
		channel: messaging.ChannelNewSubscriptionOpenCard,
	},
	BranchOpenEndedMandate: {
		success: models.CheckoutStatusMandateSigned,
		failure: models.CheckoutStatusMandateAbowebError,
		channel: messaging.ChannelNewSubscriptionOpenMandate,
	},
}

// SuccessStatus is created for BranchNone.
func (b Branch) SuccessStatus() models.CheckoutStatus {
	if o, ok := outcomes[b]; ok {
		return o.success
	}
	return models.CheckoutStatusCreated
}

// FailureStatus is created for BranchNone.
func (b Branch) FailureStatus() models.CheckoutStatus {
	if o, ok := outcomes[b]; ok {
		return o.failure
	}
	return models.CheckoutStatusCreated
}

// Charges reports whether the branch charges the card immediately.
func (b Branch) Charges() bool {
	return outcomes[b].charges
}

// Channel returns the subscription channel, if the branch publishes one.
func (b Branch) Channel() (messaging.Channel, bool) {
	o, ok := outcomes[b]
	if !ok || o.channel == "" {
		return "", false
	}
	return o.channel, true
}

func (b Branch) templateID(t mail.Templates) string {
	switch b {
	case BranchFreeTrial:
		return t.FreeTrial
	case BranchGodparentGiftCard:
		return t.GodparentGift
	case BranchFixedTermCard:
		return t.FixedTermCard
	case BranchOpenEndedCard:
		return t.OpenEndedCard
	case BranchOpenEndedMandate:
		return t.OpenEndedMandate
	default:
		return ""
	}
}
