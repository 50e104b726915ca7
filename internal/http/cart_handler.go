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

type CartService interface {
	GetCart(ctx context.Context, userID string) ([]domain.CartEntry, error)
	CartLength(ctx context.Context, userID string) (int, error)
	AddItem(ctx context.Context, userID string, in service.AddItemInput) (domain.CartEntry, error)
	UpdateQuantity(ctx context.Context, userID, cartItemID string, quantity int) (domain.CartEntry, error)
	RemoveItem(ctx context.Context, userID, cartItemID string) error
	EmptyCart(ctx context.Context, userID string) error
}

type CartHandler struct {
	carts        CartService
	timeout      time.Duration
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewCartHandler(carts CartService, timeout time.Duration, maxBodyBytes int64, logger *slog.Logger) *CartHandler {
	return &CartHandler{
		carts:        carts,
		timeout:      timeout,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

type AddItemRequestDTO struct {
	ProductID string   `json:"productId"`
	Name      string   `json:"name"`
	Price     *float64 `json:"price"`
	Quantity  *int     `json:"quantity"`
	Image     string   `json:"image"`
}

type UpdateQuantityRequestDTO struct {
	Quantity *int `json:"quantity"`
}

type CartResponse struct {
	UserID     string             `json:"userId"`
	Cart       []domain.CartEntry `json:"cart"`
	TotalItems int                `json:"totalItems"`
}

type CartLengthResponse struct {
	Length int `json:"length"`
}

type CartItemAddedResponse struct {
	Message string           `json:"message"`
	Item    domain.CartEntry `json:"item"`
	UserID  string           `json:"userId"`
}

type CartItemUpdatedResponse struct {
	Message    string `json:"message"`
	CartItemID string `json:"cartItemId"`
	Quantity   int    `json:"quantity"`
	UserID     string `json:"userId"`
}

type CartItemRemovedResponse struct {
	Message    string `json:"message"`
	CartItemID string `json:"cartItemId"`
	UserID     string `json:"userId"`
}

type MessageResponse struct {
	Message string `json:"message"`
	UserID  string `json:"userId"`
}

func (h *CartHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	cart, err := h.carts.GetCart(ctx, userID)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, CartResponse{UserID: userID, Cart: cart, TotalItems: len(cart)})
}

func (h *CartHandler) CartLength(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	n, err := h.carts.CartLength(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, CartLengthResponse{Length: n})
}

func (h *CartHandler) AddItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req AddItemRequestDTO
	if err := decodeJSON(w, r, h.maxBodyBytes, &req, false); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	userID := chi.URLParam(r, "userId")
	item, err := h.carts.AddItem(ctx, userID, service.AddItemInput{
		ProductID: req.ProductID,
		Name:      req.Name,
		Price:     req.Price,
		Quantity:  req.Quantity,
		Image:     req.Image,
	})
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusCreated, CartItemAddedResponse{
		Message: "Item added to cart successfully",
		Item:    item,
		UserID:  userID,
	})
}

func (h *CartHandler) UpdateQuantity(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req UpdateQuantityRequestDTO
	if err := decodeJSON(w, r, h.maxBodyBytes, &req, true); err != nil {
		respondError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	quantity := 0 // absent quantity is rejected by the service
	if req.Quantity != nil {
		quantity = *req.Quantity
	}

	userID := chi.URLParam(r, "userId")
	cartItemID := chi.URLParam(r, "cartItemId")
	item, err := h.carts.UpdateQuantity(ctx, userID, cartItemID, quantity)
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, CartItemUpdatedResponse{
		Message:    "Cart item updated successfully",
		CartItemID: cartItemID,
		Quantity:   item.Quantity,
		UserID:     userID,
	})
}

func (h *CartHandler) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	cartItemID := chi.URLParam(r, "cartItemId")
	if err := h.carts.RemoveItem(ctx, userID, cartItemID); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, CartItemRemovedResponse{
		Message:    "Item removed from cart successfully",
		CartItemID: cartItemID,
		UserID:     userID,
	})
}

func (h *CartHandler) EmptyCart(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	userID := chi.URLParam(r, "userId")
	if err := h.carts.EmptyCart(ctx, userID); err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, MessageResponse{Message: "Cart emptied successfully", UserID: userID})
}
