package checkout

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/ManuelReschke/AboCheckout/app/models"
	"github.com/ManuelReschke/AboCheckout/app/repository"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/mail"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/messaging"
	"github.com/ManuelReschke/AboCheckout/internal/pkg/payment"
)

// world is an in-memory backend shared by all fakes. calls records every
// collaborator call in order.
type world struct {
	calls []string

	clients   map[uint]*models.Client
	addresses map[uint]*models.Address
	offers    map[int64]*models.Offer
	tokens    map[uint]*models.Token

	saved   []models.Checkout
	charges []*models.Charge
	nextID  uint

	checkoutCreateErr error
	checkoutUpdateErr error
	chargeCreateErr   error
}

func newWorld() *world {
	return &world{
		clients:   map[uint]*models.Client{},
		addresses: map[uint]*models.Address{},
		offers:    map[int64]*models.Offer{},
		tokens:    map[uint]*models.Token{},
		nextID:    100,
	}
}

func (w *world) record(format string, args ...interface{}) {
	w.calls = append(w.calls, fmt.Sprintf(format, args...))
}

func (w *world) repositories() *repository.Repositories {
	return &repository.Repositories{
		Client:   &fakeClientRepo{w},
		Address:  &fakeAddressRepo{w},
		Offer:    &fakeOfferRepo{w},
		Token:    &fakeTokenRepo{w},
		Checkout: &fakeCheckoutRepo{w},
		Charge:   &fakeChargeRepo{w},
	}
}

// lastSaved returns the latest persisted copy of the checkout
func (w *world) lastSaved() models.Checkout {
	return w.saved[len(w.saved)-1]
}

type fakeClientRepo struct{ w *world }

func (r *fakeClientRepo) Create(c *models.Client) error {
	r.w.nextID++
	c.ID = r.w.nextID
	r.w.clients[c.ID] = c
	return nil
}

func (r *fakeClientRepo) GetByID(id uint) (*models.Client, error) {
	r.w.record("client.get %d", id)
	if c, ok := r.w.clients[id]; ok {
		return c, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeClientRepo) GetByEmail(email string) (*models.Client, error) {
	for _, c := range r.w.clients {
		if c.Email == email {
			return c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeClientRepo) Update(c *models.Client) error {
	r.w.clients[c.ID] = c
	return nil
}

type fakeAddressRepo struct{ w *world }

func (r *fakeAddressRepo) Create(a *models.Address) error {
	r.w.addresses[a.ID] = a
	return nil
}

func (r *fakeAddressRepo) GetByID(id uint) (*models.Address, error) {
	if a, ok := r.w.addresses[id]; ok {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAddressRepo) GetByIDAndClientID(id, clientID uint) (*models.Address, error) {
	r.w.record("address.get %d", id)
	if a, ok := r.w.addresses[id]; ok && a.ClientID == clientID {
		return a, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeAddressRepo) ListByClientID(clientID uint) ([]models.Address, error) {
	var out []models.Address
	for _, a := range r.w.addresses {
		if a.ClientID == clientID {
			out = append(out, *a)
		}
	}
	return out, nil
}

type fakeOfferRepo struct{ w *world }

func (r *fakeOfferRepo) Create(o *models.Offer) error {
	r.w.offers[o.AbowebID] = o
	return nil
}

func (r *fakeOfferRepo) GetByID(id uint) (*models.Offer, error) {
	for _, o := range r.w.offers {
		if o.ID == id {
			return o, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOfferRepo) GetByAbowebID(abowebID int64) (*models.Offer, error) {
	r.w.record("offer.get %d", abowebID)
	if o, ok := r.w.offers[abowebID]; ok {
		return o, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeOfferRepo) List() ([]models.Offer, error) {
	var out []models.Offer
	for _, o := range r.w.offers {
		out = append(out, *o)
	}
	return out, nil
}

type fakeTokenRepo struct{ w *world }

func (r *fakeTokenRepo) Create(t *models.Token) error {
	r.w.tokens[t.ID] = t
	return nil
}

func (r *fakeTokenRepo) GetByID(id uint) (*models.Token, error) {
	if t, ok := r.w.tokens[id]; ok {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeTokenRepo) GetByIDAndClientID(id, clientID uint) (*models.Token, error) {
	r.w.record("token.get %d", id)
	if t, ok := r.w.tokens[id]; ok && t.ClientID == clientID {
		return t, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type fakeCheckoutRepo struct{ w *world }

func (r *fakeCheckoutRepo) Create(c *models.Checkout) error {
	r.w.record("checkout.create %s", c.Status)
	if r.w.checkoutCreateErr != nil {
		return r.w.checkoutCreateErr
	}
	r.w.nextID++
	c.ID = r.w.nextID
	r.w.saved = append(r.w.saved, *c)
	return nil
}

func (r *fakeCheckoutRepo) Update(c *models.Checkout) error {
	r.w.record("checkout.update %s", c.Status)
	if r.w.checkoutUpdateErr != nil {
		return r.w.checkoutUpdateErr
	}
	r.w.saved = append(r.w.saved, *c)
	return nil
}

func (r *fakeCheckoutRepo) GetByID(id uint) (*models.Checkout, error) {
	for i := len(r.w.saved) - 1; i >= 0; i-- {
		if r.w.saved[i].ID == id {
			c := r.w.saved[i]
			return &c, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *fakeCheckoutRepo) ListByStatus(status models.CheckoutStatus, offset, limit int) ([]models.Checkout, error) {
	return nil, nil
}

type fakeChargeRepo struct{ w *world }

func (r *fakeChargeRepo) Create(c *models.Charge) error {
	r.w.record("charge.create %s", c.GatewayChargeID)
	if r.w.chargeCreateErr != nil {
		return r.w.chargeCreateErr
	}
	r.w.charges = append(r.w.charges, c)
	return nil
}

func (r *fakeChargeRepo) ListByCheckoutID(checkoutID uint) ([]models.Charge, error) {
	var out []models.Charge
	for _, c := range r.w.charges {
		if c.CheckoutID == checkoutID {
			out = append(out, *c)
		}
	}
	return out, nil
}

type fakeGateway struct {
	w        *world
	requests []payment.ChargeRequest
	err      error
	panicMsg string
}

func (g *fakeGateway) Charge(ctx context.Context, req payment.ChargeRequest) (*payment.ChargeReceipt, error) {
	g.w.record("gateway.charge %d", req.Amount)
	if g.panicMsg != "" {
		panic(g.panicMsg)
	}
	g.requests = append(g.requests, req)
	if g.err != nil {
		return nil, g.err
	}
	return &payment.ChargeReceipt{ChargeID: "ch_test", Raw: []byte(`{"id":"ch_test"}`)}, nil
}

type published struct {
	channel messaging.Channel
	payload interface{}
}

type fakeDispatcher struct {
	w         *world
	published []published
	errs      map[messaging.Channel]error
}

func (d *fakeDispatcher) Publish(ctx context.Context, channel messaging.Channel, payload interface{}) error {
	d.w.record("publish %s", channel)
	if err := d.errs[channel]; err != nil {
		return err
	}
	d.published = append(d.published, published{channel: channel, payload: payload})
	return nil
}

func (d *fakeDispatcher) channels() []messaging.Channel {
	out := []messaging.Channel{}
	for _, p := range d.published {
		out = append(out, p.channel)
	}
	return out
}

type fakeNotifier struct {
	w    *world
	sent []mail.Notification
	err  error
}

func (n *fakeNotifier) Send(ctx context.Context, msg mail.Notification) error {
	n.w.record("mail %s", msg.TemplateID)
	if n.err != nil {
		return n.err
	}
	n.sent = append(n.sent, msg)
	return nil
}

type fakeRecorder struct {
	outcomes []string
	err      error
}

func (r *fakeRecorder) RecordOutcome(ctx context.Context, branch, status string) error {
	r.outcomes = append(r.outcomes, branch+"="+status)
	return r.err
}
