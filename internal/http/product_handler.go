package http

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/service"
	"github.com/go-chi/chi/v5"
)

type ProductService interface {
	ListProducts(ctx context.Context) ([]domain.Product, error)
	GetProduct(ctx context.Context, productID string) (*domain.Product, error)
	Categories(ctx context.Context) ([]string, error)
	ListByCategory(ctx context.Context, category string) ([]domain.Product, error)
	CreateProduct(ctx context.Context, in service.CreateProductInput) (*domain.Product, error)
	UpdateProduct(ctx context.Context, productID string, patch domain.ProductPatch) (*domain.Product, error)
	DeleteProduct(ctx context.Context, productID string) error
}

type ProductHandler struct {
	products     ProductService
	timeout      time.Duration
	maxBodyBytes int64
	logger       *slog.Logger
}

func NewProductHandler(products ProductService, timeout time.Duration, maxBodyBytes int64, logger *slog.Logger) *ProductHandler {
	return &ProductHandler{
		products:     products,
		timeout:      timeout,
		maxBodyBytes: maxBodyBytes,
		logger:       logger,
	}
}

// ProductEnvelope is the catalog response shape shared by all product routes.
type ProductEnvelope struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Count   *int        `json:"count,omitempty"`
}

type ProductRequestDTO struct {
	Name        *string  `json:"name"`
	Price       *float64 `json:"price"`
	Quantity    *int     `json:"quantity"`
	Category    *string  `json:"category"`
	Image       *string  `json:"image"`
	Description *string  `json:"description"`
}

type DeletedProduct struct {
	DeletedID string `json:"deletedId"`
}

func respondProducts(w http.ResponseWriter, status int, message string, products []domain.Product) {
	n := len(products)
	respondJSON(w, status, ProductEnvelope{Success: status < 400, Message: message, Data: products, Count: &n})
}

func (h *ProductHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, body := errorFor(err)
	logFailure(r.Context(), h.logger, r, status, err)
	respondJSON(w, status, ProductEnvelope{Success: false, Message: body.Message})
}

func (h *ProductHandler) List(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	products, err := h.products.ListProducts(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(products) == 0 {
		respondProducts(w, http.StatusNotFound, "No products found", products)
		return
	}
	respondProducts(w, http.StatusOK, "Products retrieved successfully", products)
}

func (h *ProductHandler) Get(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.products.GetProduct(ctx, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ProductEnvelope{Success: true, Message: "Product retrieved successfully", Data: p})
}

func (h *ProductHandler) Categories(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	categories, err := h.products.Categories(ctx)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	n := len(categories)
	if n == 0 {
		respondJSON(w, http.StatusNotFound, ProductEnvelope{Success: false, Message: "No categories found", Data: categories, Count: &n})
		return
	}
	respondJSON(w, http.StatusOK, ProductEnvelope{Success: true, Message: "Categories retrieved successfully", Data: categories, Count: &n})
}

func (h *ProductHandler) ListByCategory(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	category := chi.URLParam(r, "category")
	products, err := h.products.ListByCategory(ctx, category)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	if len(products) == 0 {
		respondProducts(w, http.StatusNotFound, fmt.Sprintf("No products found in category: %s", category), products)
		return
	}
	respondProducts(w, http.StatusOK, fmt.Sprintf("Products in %s category retrieved successfully", category), products)
}

func (h *ProductHandler) Create(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := decodeJSON(w, r, h.maxBodyBytes, &req, false); err != nil {
		respondJSON(w, http.StatusBadRequest, ProductEnvelope{Message: "Invalid request body"})
		return
	}

	p, err := h.products.CreateProduct(ctx, service.CreateProductInput{
		Name:        deref(req.Name),
		Price:       req.Price,
		Quantity:    req.Quantity,
		Category:    deref(req.Category),
		Image:       deref(req.Image),
		Description: deref(req.Description),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, ProductEnvelope{Success: true, Message: "Product added successfully", Data: p})
}

func (h *ProductHandler) Update(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	var req ProductRequestDTO
	if err := decodeJSON(w, r, h.maxBodyBytes, &req, false); err != nil {
		respondJSON(w, http.StatusBadRequest, ProductEnvelope{Message: "Invalid request body"})
		return
	}

	p, err := h.products.UpdateProduct(ctx, chi.URLParam(r, "id"), domain.ProductPatch{
		Name:        req.Name,
		Price:       req.Price,
		Quantity:    req.Quantity,
		Image:       req.Image,
		Category:    req.Category,
		Description: req.Description,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ProductEnvelope{Success: true, Message: "Product updated successfully", Data: p})
}

func (h *ProductHandler) Delete(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	id := chi.URLParam(r, "id")
	if err := h.products.DeleteProduct(ctx, id); err != nil {
		h.fail(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, ProductEnvelope{Success: true, Message: "Product deleted successfully", Data: DeletedProduct{DeletedID: id}})
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
