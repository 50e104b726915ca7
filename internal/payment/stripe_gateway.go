package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/pkg/circuitbreaker"
	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

type sessionClient interface {
	New(params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
	Get(id string, params *stripe.CheckoutSessionParams) (*stripe.CheckoutSession, error)
}

type StripeConfig struct {
	SecretKey   string
	FrontendURL string
	Currency    string
}

type StripeGateway struct {
	sessions   sessionClient
	breaker    *circuitbreaker.Breaker[*stripe.CheckoutSession]
	currency   string
	successURL string
	cancelURL  string
}

func NewStripeGateway(cfg StripeConfig, logger *slog.Logger) *StripeGateway {
	api := client.New(cfg.SecretKey, nil)
	return newStripeGateway(api.CheckoutSessions, cfg, logger)
}

func newStripeGateway(sessions sessionClient, cfg StripeConfig, logger *slog.Logger) *StripeGateway {
	bcfg := circuitbreaker.DefaultConfig("stripe-checkout")
	bcfg.IsSuccessful = isClientError
	currency := cfg.Currency
	if currency == "" {
		currency = string(stripe.CurrencyUSD)
	}
	return &StripeGateway{
		sessions:   sessions,
		breaker:    circuitbreaker.New[*stripe.CheckoutSession](bcfg, logger),
		currency:   currency,
		successURL: cfg.FrontendURL + "/success?session_id={CHECKOUT_SESSION_ID}",
		cancelURL:  cfg.FrontendURL + "/cancel",
	}
}

func (g *StripeGateway) CreateCheckoutSession(ctx context.Context, lines []domain.CheckoutLine) (*domain.CheckoutSession, error) {
	params := g.sessionParams(lines)
	params.Context = ctx

	s, err := g.breaker.Execute(ctx, func(context.Context) (*stripe.CheckoutSession, error) {
		return g.sessions.New(params)
	})
	if err != nil {
		return nil, mapStripeError("create checkout session", err)
	}
	return &domain.CheckoutSession{ID: s.ID, URL: s.URL}, nil
}

func (g *StripeGateway) GetCheckoutSession(ctx context.Context, sessionID string) (*domain.CheckoutSessionStatus, error) {
	params := &stripe.CheckoutSessionParams{}
	params.AddExpand("payment_intent")
	params.Context = ctx

	s, err := g.breaker.Execute(ctx, func(context.Context) (*stripe.CheckoutSession, error) {
		return g.sessions.Get(sessionID, params)
	})
	if err != nil {
		return nil, mapStripeError("get checkout session", err)
	}

	out := &domain.CheckoutSessionStatus{
		SessionID:     s.ID,
		Status:        string(s.Status),
		PaymentStatus: string(s.PaymentStatus),
		AmountTotal:   s.AmountTotal,
		Currency:      string(s.Currency),
	}
	if s.PaymentIntent != nil {
		out.PaymentIntentID = s.PaymentIntent.ID
		out.PaymentIntentStatus = string(s.PaymentIntent.Status)
	}
	return out, nil
}

func (g *StripeGateway) sessionParams(lines []domain.CheckoutLine) *stripe.CheckoutSessionParams {
	items := make([]*stripe.CheckoutSessionLineItemParams, 0, len(lines))
	for _, l := range lines {
		product := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(l.Name),
		}
		if l.Image != "" {
			product.Images = stripe.StringSlice([]string{l.Image})
		}
		if l.ProductID != "" {
			product.Metadata = map[string]string{"productId": l.ProductID}
		}
		items = append(items, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(g.currency),
				ProductData: product,
				UnitAmount:  stripe.Int64(l.UnitAmountCents()),
			},
			Quantity: stripe.Int64(int64(l.Quantity)),
		})
	}

	return &stripe.CheckoutSessionParams{
		PaymentMethodTypes:       stripe.StringSlice([]string{"card"}),
		LineItems:                items,
		Mode:                     stripe.String(string(stripe.CheckoutSessionModePayment)),
		BillingAddressCollection: stripe.String("required"),
		SuccessURL:               stripe.String(g.successURL),
		CancelURL:                stripe.String(g.cancelURL),
	}
}

// isClientError keeps 4xx responses from tripping the breaker.
func isClientError(err error) bool {
	if err == nil {
		return true
	}
	var se *stripe.Error
	return errors.As(err, &se) && se.HTTPStatusCode >= 400 && se.HTTPStatusCode < 500
}

func mapStripeError(op string, err error) error {
	if errors.Is(err, circuitbreaker.ErrUnavailable) {
		return fmt.Errorf("%s: %w: %w", op, ErrGatewayUnavailable, err)
	}
	var se *stripe.Error
	if errors.As(err, &se) && se.Code == stripe.ErrorCodeResourceMissing {
		return fmt.Errorf("%s: %w", op, ErrSessionNotFound)
	}
	return fmt.Errorf("%s: %w", op, err)
}
