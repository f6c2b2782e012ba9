package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ManuelReschke/AboCheckout/app/models"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/messaging"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		name   string
		offer  models.Offer
		branch Branch
	}{
		{"free trial", models.Offer{TimeLimited: true, PaymentMethod: models.PaymentMethodNone, IsFree: true, IsFreeGift: true}, BranchFreeTrial},
		{"godparent gift", models.Offer{TimeLimited: true, PaymentMethod: models.PaymentMethodCard, IsGift: true}, BranchGodparentGiftCard},
		{"fixed term card", models.Offer{TimeLimited: true, PaymentMethod: models.PaymentMethodCard}, BranchFixedTermCard},
		{"open card", models.Offer{PaymentMethod: models.PaymentMethodCard}, BranchOpenEndedCard},
		{"open card gift", models.Offer{PaymentMethod: models.PaymentMethodCard, IsGift: true}, BranchOpenEndedCard},
		{"open mandate", models.Offer{PaymentMethod: models.PaymentMethodMandate}, BranchOpenEndedMandate},
		{"fixed term mandate", models.Offer{TimeLimited: true, PaymentMethod: models.PaymentMethodMandate}, BranchNone},
		{"free without free gift", models.Offer{TimeLimited: true, IsFree: true}, BranchNone},
		{"free open card", models.Offer{PaymentMethod: models.PaymentMethodCard, IsFree: true}, BranchNone},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.branch, Classify(&tt.offer))
		})
	}
	assert.Equal(t, BranchNone, Classify(nil))
}

// Every flag combination matches at most one row of the branch table, and
// Classify picks that row.
func TestClassify_MutuallyExclusive(t *testing.T) {
	methods := []models.PaymentMethod{models.PaymentMethodNone, models.PaymentMethodMandate, models.PaymentMethodCard}
	bools := []bool{false, true}

	for _, tl := range bools {
		for _, pm := range methods {
			for _, free := range bools {
				for _, freeGift := range bools {
					for _, gift := range bools {
						o := &models.Offer{TimeLimited: tl, PaymentMethod: pm, IsFree: free, IsFreeGift: freeGift, IsGift: gift}
						card := pm == models.PaymentMethodCard
						rows := map[Branch]bool{
							BranchFreeTrial:         tl && pm == models.PaymentMethodNone && freeGift && free,
							BranchGodparentGiftCard: tl && card && gift,
							BranchFixedTermCard:     tl && card && !free && !freeGift && !gift,
							BranchOpenEndedCard:     !tl && card && !free && !freeGift,
							BranchOpenEndedMandate:  !tl && pm == models.PaymentMethodMandate && !free && !freeGift,
						}

						expected := BranchNone
						matches := 0
						for b, ok := range rows {
							if ok {
								matches++
								expected = b
							}
						}
						assert.LessOrEqual(t, matches, 1, "offer %+v", o)
						assert.Equal(t, expected, Classify(o), "offer %+v", o)
					}
				}
			}
		}
	}
}

func TestBranchOutcomes(t *testing.T) {
	tests := []struct {
		branch  Branch
		success models.CheckoutStatus
		failure models.CheckoutStatus
		charges bool
		channel messaging.Channel
	}{
		{BranchFreeTrial, models.CheckoutStatusFree, models.CheckoutStatusDeclined, false, messaging.ChannelNewSubscriptionFixedTermCard},
		{BranchGodparentGiftCard, models.CheckoutStatusCardPaid, models.CheckoutStatusCardDeclined, true, ""},
		{BranchFixedTermCard, models.CheckoutStatusCardPaid, models.CheckoutStatusCardDeclined, true, messaging.ChannelNewSubscriptionFixedTermCard},
		{BranchOpenEndedCard, models.CheckoutStatusCardSigned, models.CheckoutStatusCardAbowebError, false, messaging.ChannelNewSubscriptionOpenCard},
		{BranchOpenEndedMandate, models.CheckoutStatusMandateSigned, models.CheckoutStatusMandateAbowebError, false, messaging.ChannelNewSubscriptionOpenMandate},
		{BranchNone, models.CheckoutStatusCreated, models.CheckoutStatusCreated, false, ""},
	}

	for _, tt := range tests {
		t.Run(tt.branch.String(), func(t *testing.T) {
			assert.Equal(t, tt.success, tt.branch.SuccessStatus())
			assert.Equal(t, tt.failure, tt.branch.FailureStatus())
			assert.Equal(t, tt.charges, tt.branch.Charges())

			channel, ok := tt.branch.Channel()
			assert.Equal(t, tt.channel, channel)
			assert.Equal(t, tt.channel != "", ok)

			if tt.branch != BranchNone {
				assert.True(t, tt.branch.SuccessStatus().IsTerminal())
				assert.False(t, tt.branch.SuccessStatus().IsFailure())
				assert.True(t, tt.branch.FailureStatus().IsFailure())
			}
		})
	}
}
