package payment

import (
	"context"
	"errors"

	"github.com/fjod/go_storefront/internal/domain"
)

var (
	ErrGatewayUnavailable = errors.New("payment gateway unavailable")
	ErrSessionNotFound    = errors.New("checkout session not found")
)

// Disabled stands in when no gateway credentials are configured.
type Disabled struct{}

func (Disabled) CreateCheckoutSession(context.Context, []domain.CheckoutLine) (*domain.CheckoutSession, error) {
	return nil, ErrGatewayUnavailable
}

func (Disabled) GetCheckoutSession(context.Context, string) (*domain.CheckoutSessionStatus, error) {
	return nil, ErrGatewayUnavailable
}
