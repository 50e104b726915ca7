package http

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"

	"github.com/fjod/go_storefront/internal/domain"
	"github.com/fjod/go_storefront/internal/payment"
	"github.com/fjod/go_storefront/internal/repository"
	"github.com/fjod/go_storefront/internal/service"
)

const msgInternal = "Internal Server Error"

var errBadBody = errors.New("invalid request body")

type ErrorResponse struct {
	Message       string   `json:"message"`
	ValidStatuses []string `json:"validStatuses,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		slog.Error("failed to encode response", slog.Any("error", err))
	}
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Message: message})
}

func respondText(w http.ResponseWriter, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, body)
}

// decodeJSON reads at most maxBytes of JSON into dst. An empty body is
// accepted when allowEmpty is set and leaves dst untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, maxBytes int64, dst interface{}, allowEmpty bool) error {
	r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	err := json.NewDecoder(r.Body).Decode(dst)
	if err == nil || (allowEmpty && errors.Is(err, io.EOF)) {
		return nil
	}
	return errBadBody
}

// errorFor maps service errors onto the HTTP status and client message.
func errorFor(err error) (int, ErrorResponse) {
	var invalid *service.InvalidInputError
	switch {
	case errors.As(err, &invalid):
		return http.StatusBadRequest, ErrorResponse{Message: invalid.Message}
	case errors.Is(err, domain.ErrInvalidStatus):
		return http.StatusBadRequest, ErrorResponse{Message: "Valid status is required", ValidStatuses: domain.ValidStatuses()}
	case errors.Is(err, domain.ErrEmptyCart):
		return http.StatusBadRequest, ErrorResponse{Message: "Cart is empty"}
	case errors.Is(err, repository.ErrUserNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "User not found"}
	case errors.Is(err, domain.ErrCartItemNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "Item not found in cart"}
	case errors.Is(err, domain.ErrOrderNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "Order not found"}
	case errors.Is(err, repository.ErrProductNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "Product not found"}
	case errors.Is(err, payment.ErrSessionNotFound):
		return http.StatusNotFound, ErrorResponse{Message: "Checkout session not found"}
	case errors.Is(err, repository.ErrConflict):
		return http.StatusConflict, ErrorResponse{Message: "Concurrent update, please retry"}
	case errors.Is(err, payment.ErrGatewayUnavailable):
		return http.StatusServiceUnavailable, ErrorResponse{Message: "Payment service unavailable"}
	default:
		return http.StatusInternalServerError, ErrorResponse{Message: msgInternal}
	}
}

func logFailure(ctx context.Context, logger *slog.Logger, r *http.Request, status int, err error) {
	if status < http.StatusInternalServerError {
		return
	}
	logger.ErrorContext(ctx, "request failed",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Int("status", status),
		slog.Any("error", err))
}

func handleServiceError(w http.ResponseWriter, r *http.Request, logger *slog.Logger, err error) {
	status, body := errorFor(err)
	logFailure(r.Context(), logger, r, status, err)
	respondJSON(w, status, body)
}
