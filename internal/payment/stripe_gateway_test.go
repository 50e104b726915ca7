package payment

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stripe/stripe-go/v81"
)

type mockSessions struct {
	created  *stripe.CheckoutSessionParams
	gotID    string
	gotParam *stripe.CheckoutSessionParams
	session  *stripe.CheckoutSession
	err      error
	calls    int
}

func (m *mockSessions) New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	m.calls++
	m.created = params
	return m.session, m.err
}

func (m *mockSessions) Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error) {
	m.calls++
	m.gotID = id
	m.gotParam = params
	return m.session, m.err
}

func newTestGateway(m *mockSessions) *StripeGateway {
	return newStripeGateway(m, StripeConfig{FrontendURL: "https://shop.test", Currency: "usd"}, nil)
}

func TestCreateCheckoutSession_BuildsLineItems(t *testing.T) {
	m := &mockSessions{session: &stripe.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.test/cs_1"}}
	g := newTestGateway(m)
	ctx := context.Background()

	got, err := g.CreateCheckoutSession(ctx, []domain.CheckoutLine{
		{ProductID: "p1", Name: "Widget", Image: "https://img/w.png", Price: 9.99, Quantity: 2},
		{ProductID: "p2", Name: "Gadget", Price: 5, Quantity: 1},
	})
	require.NoError(t, err)
	assert.Equal(t, &domain.CheckoutSession{ID: "cs_1", URL: "https://checkout.stripe.test/cs_1"}, got)

	p := m.created
	require.NotNil(t, p)
	assert.Equal(t, ctx, p.Context)
	assert.Equal(t, "payment", *p.Mode)
	assert.Equal(t, "required", *p.BillingAddressCollection)
	assert.Equal(t, "https://shop.test/success?session_id={CHECKOUT_SESSION_ID}", *p.SuccessURL)
	assert.Equal(t, "https://shop.test/cancel", *p.CancelURL)
	require.Len(t, p.LineItems, 2)

	first := p.LineItems[0]
	assert.Equal(t, int64(999), *first.PriceData.UnitAmount)
	assert.Equal(t, "usd", *first.PriceData.Currency)
	assert.Equal(t, int64(2), *first.Quantity)
	assert.Equal(t, "Widget", *first.PriceData.ProductData.Name)
	require.Len(t, first.PriceData.ProductData.Images, 1)
	assert.Equal(t, "https://img/w.png", *first.PriceData.ProductData.Images[0])

	assert.Empty(t, p.LineItems[1].PriceData.ProductData.Images)
	assert.Equal(t, int64(500), *p.LineItems[1].PriceData.UnitAmount)
}

func TestGetCheckoutSession_ExpandsPaymentIntent(t *testing.T) {
	m := &mockSessions{session: &stripe.CheckoutSession{
		ID:            "cs_1",
		Status:        stripe.CheckoutSessionStatusComplete,
		PaymentStatus: stripe.CheckoutSessionPaymentStatusPaid,
		AmountTotal:   1998,
		Currency:      stripe.CurrencyUSD,
		PaymentIntent: &stripe.PaymentIntent{ID: "pi_1", Status: stripe.PaymentIntentStatusSucceeded},
	}}
	g := newTestGateway(m)

	got, err := g.GetCheckoutSession(context.Background(), "cs_1")
	require.NoError(t, err)

	assert.Equal(t, "cs_1", m.gotID)
	require.NotNil(t, m.gotParam)
	assert.Equal(t, []*string{stripe.String("payment_intent")}, m.gotParam.Expand)

	assert.Equal(t, &domain.CheckoutSessionStatus{
		SessionID:           "cs_1",
		Status:              "complete",
		PaymentStatus:       "paid",
		PaymentIntentID:     "pi_1",
		PaymentIntentStatus: "succeeded",
		AmountTotal:         1998,
		Currency:            "usd",
	}, got)
}

func TestGetCheckoutSession_WithoutPaymentIntent(t *testing.T) {
	m := &mockSessions{session: &stripe.CheckoutSession{ID: "cs_1", Status: stripe.CheckoutSessionStatusOpen}}
	got, err := newTestGateway(m).GetCheckoutSession(context.Background(), "cs_1")
	require.NoError(t, err)
	assert.Empty(t, got.PaymentIntentID)
	assert.Equal(t, "open", got.Status)
}

func TestGetCheckoutSession_Missing(t *testing.T) {
	m := &mockSessions{err: &stripe.Error{HTTPStatusCode: http.StatusNotFound, Code: stripe.ErrorCodeResourceMissing}}
	_, err := newTestGateway(m).GetCheckoutSession(context.Background(), "cs_x")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestGateway_BreakerOpensOnServerErrors(t *testing.T) {
	m := &mockSessions{err: errors.New("connection reset")}
	g := newTestGateway(m)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := g.GetCheckoutSession(ctx, "cs_1")
		require.Error(t, err)
		assert.NotErrorIs(t, err, ErrGatewayUnavailable)
	}

	_, err := g.GetCheckoutSession(ctx, "cs_1")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	assert.Equal(t, 5, m.calls)
}

func TestGateway_ClientErrorsDoNotTripBreaker(t *testing.T) {
	m := &mockSessions{err: &stripe.Error{HTTPStatusCode: http.StatusBadRequest}}
	g := newTestGateway(m)

	for i := 0; i < 10; i++ {
		_, err := g.CreateCheckoutSession(context.Background(), []domain.CheckoutLine{{Name: "x", Price: 1, Quantity: 1}})
		assert.NotErrorIs(t, err, ErrGatewayUnavailable)
	}
	assert.Equal(t, 10, m.calls)
}

func TestDisabled(t *testing.T) {
	_, err := Disabled{}.CreateCheckoutSession(context.Background(), nil)
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
	_, err = Disabled{}.GetCheckoutSession(context.Background(), "cs")
	assert.ErrorIs(t, err, ErrGatewayUnavailable)
}
