package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type OrderService interface {
	CreateOrder(ctx context.Context, userID string, in service.CreateOrderInput) (domain.Order, error)
	ListOrders(ctx context.Context, userID string) ([]domain.Order, error)
	GetOrder(ctx context.Context, userID, orderID string) (domain.Order, error)
	UpdateStatus(ctx context.Context, userID, orderID, status string) (domain.Order, error)
}

type OrderHandler struct {
	orders       OrderService
	timeout      time.Duration
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewOrderHandler(orders OrderService, timeout time.Duration, maxBodyBytes int64, logger *slog.Logger) *OrderHandler {
	return &OrderHandler{
		orders:       orders,
		timeout:      timeout,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

type CreateOrderRequestDTO struct {
	ShippingAddress *domain.ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string                  `json:"paymentMethod"`
}

type UpdateStatusRequestDTO struct {
	Status string `json:"status"`
}

type OrderCreatedResponse struct {
	Message string       `json:"message"`
	Order   domain.Order `json:"order"`
	UserID  string       `json:"userId"`
}

type OrdersResponse struct {
	UserID      string         `json:"userId"`
	Orders      []domain.Order `json:"orders"`
	TotalOrders int            `json:"totalOrders"`
}

type OrderResponse struct {
	UserID string       `json:"userId"`
	Order  domain.Order `json:"order"`
}

type OrderStatusResponse struct {
	Message string             `json:"message"`
	OrderID string             `json:"orderId"`
	Status  domain.OrderStatus `json:"status"`
	UserID  string             `json:"userId"`
}

func (h *OrderHandler) CreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CreateOrderRequestDTO
	if err := decodeJSON(w, r, h.maxBodyBytes, &req, true); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := chi.URLParam(r, "userId")
	order, err := h.orders.CreateOrder(ctx, userID, service.CreateOrderInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, OrderCreatedResponse{
		Message: "Order created successfully",
		Order:   order,
		UserID:  userID,
	})
}

func (h *OrderHandler) ListOrders(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	orders, err := h.orders.ListOrders(ctx, userID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, OrdersResponse{UserID: userID, Orders: orders, TotalOrders: len(orders)})
}

func (h *OrderHandler) GetOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	order, err := h.orders.GetOrder(ctx, userID, chi.URLParam(r, "orderId"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderResponse{UserID: userID, Order: order})
}

func (h *OrderHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateStatusRequestDTO
	if err := decodeJSON(w, r, h.maxBodyBytes, &req, true); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := chi.URLParam(r, "userId")
	orderID := chi.URLParam(r, "orderId")
	order, err := h.orders.UpdateStatus(ctx, userID, orderID, req.Status)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, OrderStatusResponse{
		Message: "Order status updated successfully",
		OrderID: orderID,
		Status:  order.Status,
		UserID:  userID,
	})
}
