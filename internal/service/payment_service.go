package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/repository"
)

type PaymentGateway interface {
	CreateCheckoutSession(ctx context.Context, lines []domain.CheckoutLine) (*domain.CheckoutSession, error)
	GetCheckoutSession(ctx context.Context, sessionID string) (*domain.CheckoutSessionStatus, error)
}

type CheckoutItemInput struct {
	ProductID string
	Quantity  int
}

type PaymentService struct {
	gateway  PaymentGateway
	products repository.ProductRepository
}

func NewPaymentService(gateway PaymentGateway, products repository.ProductRepository) *PaymentService {
	return &PaymentService{gateway: gateway, products: products}
}

// CreateCheckoutSession prices every line from the catalog; client
// supplied names and prices are never forwarded to the gateway.
func (s *PaymentService) CreateCheckoutSession(ctx context.Context, items []CheckoutItemInput) (*domain.CheckoutSession, error) {
	if len(items) == 0 {
		return nil, invalidInput("Cart items are required")
	}

	lines := make([]domain.CheckoutLine, 0, len(items))
	for _, it := range items {
		productID := strings.TrimSpace(it.ProductID)
		if productID == "" {
			return nil, invalidInput("Every item needs a productId")
		}
		if it.Quantity < 1 {
			return nil, invalidInput("Quantity must be at least 1")
		}

		p, err := s.products.GetProduct(ctx, productID)
		if err != nil {
			return nil, fmt.Errorf("checkout item %s: %w", productID, err)
		}
		lines = append(lines, domain.CheckoutLine{
			ProductID: p.ID,
			Name:      p.Name,
			Image:     p.Image,
			Price:     p.Price,
			Quantity:  it.Quantity,
		})
	}

	return s.gateway.CreateCheckoutSession(ctx, lines)
}

func (s *PaymentService) SessionStatus(ctx context.Context, sessionID string) (*domain.CheckoutSessionStatus, error) {
	if strings.TrimSpace(sessionID) == "" {
		return nil, invalidInput("session_id is required")
	}
	return s.gateway.GetCheckoutSession(ctx, sessionID)
}
