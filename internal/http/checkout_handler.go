package http

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/service"
)

type PaymentService interface {
	CreateCheckoutSession(ctx context.Context, items []service.CheckoutItemInput) (*domain.CheckoutSession, error)
	SessionStatus(ctx context.Context, sessionID string) (*domain.CheckoutSessionStatus, error)
}

type CheckoutHandler struct {
	payments     PaymentService
	timeout      time.Duration
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewCheckoutHandler(payments PaymentService, timeout time.Duration, maxBodyBytes int64, logger *slog.Logger) *CheckoutHandler {
	return &CheckoutHandler{
		payments:     payments,
		timeout:      timeout,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

type CheckoutItemDTO struct {
	ProductID string `json:"productId"`
	Quantity  *int   `json:"quantity"`
}

type CheckoutRequestDTO struct {
	Items []CheckoutItemDTO `json:"items"`
}

func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req CheckoutRequestDTO
	if err := decodeJSON(w, r, h.maxBodyBytes, &req, true); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	items := make([]service.CheckoutItemInput, 0, len(req.Items))
	for _, it := range req.Items {
		quantity := 1
		if it.Quantity != nil {
			quantity = *it.Quantity
		}
		items = append(items, service.CheckoutItemInput{ProductID: it.ProductID, Quantity: quantity})
	}

	session, err := h.payments.CreateCheckoutSession(ctx, items)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	h.logger.InfoContext(ctx, "checkout session created", slog.String("session_id", session.ID), slog.Int("items", len(items)))
	respondJSON(w, http.StatusOK, session)
}

func (h *CheckoutHandler) SessionStatus(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	st, err := h.payments.SessionStatus(ctx, r.URL.Query().Get("session_id"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}
	respondJSON(w, http.StatusOK, st)
}
