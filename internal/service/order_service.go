package service

import (
	"context"
	"log/slog"

	"github.com/fjod/go_storefront/internal/domain"
)

type EventPublisher interface {
	PublishOrderEvent(ctx context.Context, event domain.OrderEvent) error
}

type OrderService struct {
	users     *UserStore
	publisher EventPublisher
	opts      options
}

func NewOrderService(users *UserStore, publisher EventPublisher, opts ...Option) *OrderService {
	return &OrderService{
		users:     users,
		publisher: publisher,
		opts:      buildOptions(opts),
	}
}

type CreateOrderInput struct {
	ShippingAddress *domain.ShippingAddress
	PaymentMethod   string
}

// CreateOrder moves the cart into a new pending order in one write.
func (s *OrderService) CreateOrder(ctx context.Context, userID string, in CreateOrderInput) (domain.Order, error) {
	params := domain.PlaceOrderParams{
		OrderID:         s.opts.newID(),
		ShippingAddress: in.ShippingAddress,
		PaymentMethod:   in.PaymentMethod,
		Now:             s.opts.now(),
	}

	var order domain.Order
	err := s.users.update(ctx, userID, func(u *domain.User) error {
		var err error
		order, err = u.PlaceOrder(params)
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.opts.logger.InfoContext(ctx, "order created",
		slog.String("user_id", userID),
		slog.String("order_id", order.OrderID),
		slog.Float64("total_amount", order.TotalAmount),
		slog.Int("items", len(order.Items)))
	s.publish(ctx, domain.NewOrderEvent(domain.OrderEventCreated, userID, order))
	return order, nil
}

func (s *OrderService) ListOrders(ctx context.Context, userID string) ([]domain.Order, error) {
	u, err := s.users.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return u.Orders, nil
}

func (s *OrderService) GetOrder(ctx context.Context, userID, orderID string) (domain.Order, error) {
	u, err := s.users.load(ctx, userID)
	if err != nil {
		return domain.Order{}, err
	}
	return u.FindOrder(orderID)
}

// UpdateStatus validates the status before touching the store; any
// recognised status may follow any other.
func (s *OrderService) UpdateStatus(ctx context.Context, userID, orderID, status string) (domain.Order, error) {
	next, err := domain.ParseOrderStatus(status)
	if err != nil {
		return domain.Order{}, err
	}

	var order domain.Order
	err = s.users.update(ctx, userID, func(u *domain.User) error {
		var err error
		order, err = u.SetOrderStatus(orderID, next, s.opts.now())
		return err
	})
	if err != nil {
		return domain.Order{}, err
	}

	s.publish(ctx, domain.NewOrderEvent(domain.OrderEventStatusChanged, userID, order))
	return order, nil
}

// publish is best effort: the order is already committed.
func (s *OrderService) publish(ctx context.Context, event domain.OrderEvent) {
	if s.publisher == nil {
		return
	}
	if err := s.publisher.PublishOrderEvent(ctx, event); err != nil {
		s.opts.logger.WarnContext(ctx, "order event publish failed",
			slog.String("event_type", string(event.Type)),
			slog.String("order_id", event.OrderID),
			slog.Any("error", err))
	}
}
