package checkout

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2/log"
	"gorm.io/gorm"

	"github.com/ManuelReschke/AboCheckout/app/models"
	"github.com/ManuelReschke/AboCheckout/app/repository"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/apperror"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/mail"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/messaging"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/payment"
)

// OutcomeRecorder counts final checkout statuses per branch.
type OutcomeRecorder interface {
	RecordOutcome(ctx context.Context, branch, status string) error
}

// Service creates checkouts. It holds no per-request state, so one instance
// serves concurrent calls.
type Service struct {
	repos      *repository.Repositories
	gateway    payment.Gateway
	dispatcher messaging.Dispatcher
	notifier   mail.Sender
	templates  mail.Templates
	recorder   OutcomeRecorder
}

func NewService(repos *repository.Repositories, gateway payment.Gateway, dispatcher messaging.Dispatcher, notifier mail.Sender, templates mail.Templates) *Service {
	return &Service{
		repos:      repos,
		gateway:    gateway,
		dispatcher: dispatcher,
		notifier:   notifier,
		templates:  templates,
	}
}

// WithOutcomeRecorder enables outcome counting.
func (s *Service) WithOutcomeRecorder(r OutcomeRecorder) *Service {
	s.recorder = r
	return s
}

// Result is returned even when the payment branch failed.
type Result struct {
	Checkout *models.Checkout
	Offer    *models.Offer
	Branch   Branch
}

// state holds everything resolved for one Create call.
type state struct {
	client   *models.Client
	invoice  *models.Address
	delivery *models.Address
	offer    *models.Offer
	token    *models.Token
	godson   *models.Client
}

// Create validates the request, resolves the referenced entities, records the
// checkout and runs the payment branch of the offer. Validation and
// resolution errors are returned before anything is written or published.
func (s *Service) Create(ctx context.Context, req *Request) (*Result, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	st, err := s.resolve(req)
	if err != nil {
		return nil, err
	}

	s.syncClient(ctx, st)

	checkout := s.buildCheckout(req, st)
	if err := s.repos.Checkout.Create(checkout); err != nil {
		return nil, persistError(err, "failed to create checkout")
	}
	log.Infof("[Checkout] Created checkout %d for client %d (offer %d)", checkout.ID, st.client.ID, st.offer.AbowebID)

	branch := Classify(st.offer)
	result := &Result{Checkout: checkout, Offer: st.offer, Branch: branch}

	var branchErr error
	if branch == BranchNone {
		log.Warnf("[Checkout] No payment branch for offer %d, checkout %d stays %s", st.offer.AbowebID, checkout.ID, checkout.Status)
	} else {
		branchErr = s.runBranch(ctx, branch, checkout, st)
		if branchErr != nil {
			checkout.Status = branch.FailureStatus()
			log.Errorf("[Checkout] Checkout %d: %s branch failed: %v", checkout.ID, branch, branchErr)
		} else {
			checkout.Status = branch.SuccessStatus()
		}
	}

	if err := s.repos.Checkout.Update(checkout); err != nil {
		perr := persistError(err, fmt.Sprintf("failed to save checkout %d as %s", checkout.ID, checkout.Status))
		if branchErr != nil {
			return result, errors.Join(apperror.Payment(branchErr, "checkout %d: %s failed", checkout.ID, branch), perr)
		}
		return result, perr
	}

	s.recordOutcome(ctx, branch, checkout.Status)

	if branchErr != nil {
		return result, apperror.Payment(branchErr, "checkout %d: %s failed", checkout.ID, branch)
	}

	if branch != BranchNone {
		log.Infof("[Checkout] Checkout %d completed with status %s", checkout.ID, checkout.Status)
	}
	return result, nil
}

func (s *Service) resolve(req *Request) (*state, error) {
	st := &state{}
	var err error

	if st.client, err = s.repos.Client.GetByID(req.ClientID); err != nil {
		return nil, lookupError(err, "client", req.ClientID)
	}
	if st.invoice, err = s.repos.Address.GetByIDAndClientID(req.InvoiceAddressID, req.ClientID); err != nil {
		return nil, lookupError(err, "invoice address", req.InvoiceAddressID)
	}
	st.delivery = st.invoice
	if req.DeliveryAddressID != 0 && req.DeliveryAddressID != req.InvoiceAddressID {
		if st.delivery, err = s.repos.Address.GetByIDAndClientID(req.DeliveryAddressID, req.ClientID); err != nil {
			return nil, lookupError(err, "delivery address", req.DeliveryAddressID)
		}
	}
	if st.offer, err = s.repos.Offer.GetByAbowebID(req.OfferID); err != nil {
		return nil, lookupError(err, "offer", req.OfferID)
	}

	if st.offer.RequiresPayment() {
		if req.TokenID == 0 {
			return nil, apperror.BadRequest("token_id is required")
		}
		if st.token, err = s.repos.Token.GetByIDAndClientID(req.TokenID, req.ClientID); err != nil {
			return nil, lookupError(err, "token", req.TokenID)
		}
		if err := checkTokenType(st.offer, st.token); err != nil {
			return nil, err
		}
	}

	if req.GodsonID != 0 {
		if st.godson, err = s.repos.Client.GetByID(req.GodsonID); err != nil {
			return nil, lookupError(err, "godson", req.GodsonID)
		}
	}

	return st, nil
}

func checkTokenType(o *models.Offer, t *models.Token) error {
	switch o.PaymentMethod {
	case models.PaymentMethodCard:
		if !t.IsCard() {
			return apperror.BadRequest("token %d is a %s, offer %d requires a card", t.ID, t.TokenType, o.AbowebID)
		}
	case models.PaymentMethodMandate:
		if !t.IsMandate() {
			return apperror.BadRequest("token %d is a %s, offer %d requires a mandate", t.ID, t.TokenType, o.AbowebID)
		}
	}
	return nil
}

// syncClient makes sure Aboweb knows the client and its delivery address
// before any subscription message references them. Failures are logged only.
func (s *Service) syncClient(ctx context.Context, st *state) {
	event := ClientSyncEvent{Client: st.client, InvoiceAddress: st.invoice, DeliveryAddress: st.delivery}

	if !st.client.HasAbowebAccount() {
		err := s.dispatcher.Publish(ctx, messaging.ChannelNewClient, event)
		s.logNonFatal(apperror.NonFatal("publish new-client", err))
	}

	useSameAddressDelivery := st.delivery.AddressEqual && st.invoice.AddressEqual
	if !useSameAddressDelivery {
		err := s.dispatcher.Publish(ctx, messaging.ChannelNewAddress, event)
		s.logNonFatal(apperror.NonFatal("publish new-address", err))
	}
}

func (s *Service) buildCheckout(req *Request, st *state) *models.Checkout {
	pm := st.offer.PaymentMethod
	if req.PaymentMethod != nil {
		pm = *req.PaymentMethod
	}

	c := &models.Checkout{
		ClientID:          st.client.ID,
		OfferID:           st.offer.ID,
		InvoiceAddressID:  st.invoice.ID,
		DeliveryAddressID: st.delivery.ID,
		PaymentMethod:     pm,
		IsGift:            req.IsGift || st.offer.IsGift,
		IsFree:            st.offer.IsFree,
		CGVAccepted:       req.CGVAccepted,
		Source:            req.Source,
		Status:            models.CheckoutStatusCreated,

		Client:          st.client,
		Offer:           st.offer,
		InvoiceAddress:  st.invoice,
		DeliveryAddress: st.delivery,
	}
	if st.token != nil {
		c.TokenID = &st.token.ID
		c.Token = st.token
	}
	return c
}

// runBranch performs the side effects of one branch. A panic in a
// collaborator is turned into a branch failure.
func (s *Service) runBranch(ctx context.Context, b Branch, c *models.Checkout, st *state) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in %s: %v", b, r)
		}
	}()

	if b.Charges() {
		if err := s.chargeCard(ctx, c, st); err != nil {
			return err
		}
	}

	if b == BranchGodparentGiftCard {
		if st.godson != nil {
			c.GodsonID = &st.godson.ID
		} else {
			log.Warnf("[Checkout] Gift checkout %d has no godson", c.ID)
		}
	}

	if channel, ok := b.Channel(); ok {
		if err := s.dispatcher.Publish(ctx, channel, newSubscriptionEvent(c, st)); err != nil {
			return fmt.Errorf("publish %s: %w", channel, err)
		}
	}

	s.sendConfirmation(ctx, b, c, st)
	return nil
}

// chargeCard charges offer.price_ttc in EUR and records the receipt.
func (s *Service) chargeCard(ctx context.Context, c *models.Checkout, st *state) error {
	if st.token == nil || !st.token.IsCard() {
		return errors.New("no card token attached to checkout")
	}
	if st.token.StripeCustomerID == "" {
		return fmt.Errorf("token %d has no stripe customer", st.token.ID)
	}

	receipt, err := s.gateway.Charge(ctx, payment.ChargeRequest{
		Amount:      st.offer.PriceTTC,
		Currency:    payment.CurrencyEUR,
		Description: fmt.Sprintf("Abonnement %s (offre %d)", st.offer.Name, st.offer.AbowebID),
		CustomerRef: st.token.StripeCustomerID,
		Metadata:    map[string]string{"checkout_id": strconv.FormatUint(uint64(c.ID), 10)},
	})
	if err != nil {
		return err
	}

	charge := &models.Charge{
		GatewayChargeID: receipt.ChargeID,
		Amount:          st.offer.PriceTTC,
		Currency:        payment.CurrencyEUR,
		RawPayloadJSON:  string(receipt.Raw),
		TokenID:         st.token.ID,
		ClientID:        st.client.ID,
		CheckoutID:      c.ID,
	}
	if err := s.repos.Charge.Create(charge); err != nil {
		return fmt.Errorf("charge %s succeeded but could not be recorded: %w", receipt.ChargeID, err)
	}

	log.Infof("[Checkout] Charged %d cents for checkout %d (charge %s)", charge.Amount, c.ID, receipt.ChargeID)
	return nil
}

// sendConfirmation emails the client. Failures are logged only.
func (s *Service) sendConfirmation(ctx context.Context, b Branch, c *models.Checkout, st *state) {
	templateID := b.templateID(s.templates)
	if templateID == "" {
		log.Warnf("[Checkout] No mail template configured for %s, skipping email for checkout %d", b, c.ID)
		return
	}

	n := mail.Notification{
		TemplateID: templateID,
		Categories: []string{"checkout", b.String()},
		To:         st.client.Email,
		ToName:     st.client.DisplayName(),
		Data:       BuildEmailData(c, st.client, st.offer, st.token, st.invoice, st.delivery),
	}
	s.logNonFatal(apperror.NonFatal("send confirmation email", s.notifier.Send(ctx, n)))
}

func (s *Service) recordOutcome(ctx context.Context, b Branch, status models.CheckoutStatus) {
	if s.recorder == nil {
		return
	}
	s.logNonFatal(apperror.NonFatal("record outcome", s.recorder.RecordOutcome(ctx, b.String(), status.String())))
}

func (s *Service) logNonFatal(err error) {
	if err != nil {
		log.Warnf("[Checkout] %v", err)
	}
}

func lookupError(err error, entity string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return apperror.NotFound("%s %v not found", entity, id)
	}
	return fmt.Errorf("failed to load %s %v: %w", entity, id, err)
}

func persistError(err error, msg string) error {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return apperror.Conflict(err, "%s", msg)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
