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

type ProfileService interface {
	GetProfile(ctx context.Context, userID string) (*service.Profile, error)
}

type ProfileHandler struct {
	profiles ProfileService
	timeout  time.Duration
	logger   *slog.Logger
}

func NewProfileHandler(profiles ProfileService, timeout time.Duration, logger *slog.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, timeout: timeout, logger: logger}
}

type ProfileResponse struct {
	UserID  string        `json:"userId"`
	Profile ProfileFields `json:"profile"`
	Cart    ProfileCart   `json:"cart"`
	Orders  ProfileOrders `json:"orders"`
}

type ProfileFields struct {
	Email string `json:"email"`
	Name  string `json:"name"`
}

type ProfileCart struct {
	Items       []domain.CartEntry `json:"items"`
	TotalItems  int                `json:"totalItems"`
	TotalAmount float64            `json:"totalAmount"`
}

type ProfileOrders struct {
	Items       []domain.Order `json:"items"`
	TotalOrders int            `json:"totalOrders"`
}

func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), h.timeout)
	defer cancel()

	p, err := h.profiles.GetProfile(ctx, chi.URLParam(r, "userId"))
	if err != nil {
		handleServiceError(w, r, h.logger, err)
		return
	}

	respondJSON(w, http.StatusOK, ProfileResponse{
		UserID:  p.UserID,
		Profile: ProfileFields{Email: p.Email, Name: p.Name},
		Cart:    ProfileCart{Items: p.Cart, TotalItems: len(p.Cart), TotalAmount: p.CartTotal},
		Orders:  ProfileOrders{Items: p.Orders, TotalOrders: len(p.Orders)},
	})
}
