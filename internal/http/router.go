package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
	AllowedOrigins     []string
	Logger             *slog.Logger
}

type Services struct {
	Carts    CartService
	Orders   OrderService
	Profiles ProfileService
	Products ProductService
	Payments PaymentService
}

func NewRouter(cfg RouterConfig, svc Services) http.Handler {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = 30 * time.Second
	}
	if cfg.MaxRequestBodySize <= 0 {
		cfg.MaxRequestBodySize = 1 << 20
	}
	origins := cfg.AllowedOrigins
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	carts := NewCartHandler(svc.Carts, cfg.RequestTimeout, cfg.MaxRequestBodySize, logger)
	orders := NewOrderHandler(svc.Orders, cfg.RequestTimeout, cfg.MaxRequestBodySize, logger)
	profiles := NewProfileHandler(svc.Profiles, cfg.RequestTimeout, logger)
	products := NewProductHandler(svc.Products, cfg.RequestTimeout, cfg.MaxRequestBodySize, logger)
	checkout := NewCheckoutHandler(svc.Payments, cfg.RequestTimeout, cfg.MaxRequestBodySize, logger)

	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(RequestLogger(logger))
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type", "X-Request-ID"},
		ExposedHeaders: []string{"X-Request-ID"},
		MaxAge:         300,
	}))
	r.Use(middleware.Timeout(cfg.RequestTimeout))
	r.Use(middleware.Compress(5))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respondText(w, http.StatusOK, "End Point working")
	})
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		respondText(w, http.StatusNotFound, "You have landed on the wrong page")
	})

	r.Route("/customers/{userId}", func(r chi.Router) {
		r.Get("/", profiles.GetProfile)

		r.Route("/cart", func(r chi.Router) {
			r.Get("/", carts.GetCart)
			r.Get("/quantity", carts.CartLength)
			r.Post("/add", carts.AddItem)
			r.Put("/update/{cartItemId}", carts.UpdateQuantity)
			r.Delete("/remove/{cartItemId}", carts.RemoveItem)
			r.Delete("/empty", carts.EmptyCart)
		})

		r.Route("/orders", func(r chi.Router) {
			r.Get("/", orders.ListOrders)
			r.Post("/create", orders.CreateOrder)
			r.Get("/{orderId}", orders.GetOrder)
			r.Put("/{orderId}/status", orders.UpdateStatus)
		})
	})

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.List)
		r.Post("/", products.Create)
		r.Get("/categories", products.Categories)
		r.Get("/category/{category}", products.ListByCategory)
		r.Get("/{id}", products.Get)
		r.Put("/{id}", products.Update)
		r.Delete("/{id}", products.Delete)
	})

	r.Route("/pay", func(r chi.Router) {
		r.Post("/create-checkout-session", checkout.CreateSession)
		r.Get("/session-status", checkout.SessionStatus)
	})

	return otelhttp.NewHandler(r, "storefront",
		otelhttp.WithSpanNameFormatter(func(_ string, r *http.Request) string {
			return r.Method + " " + r.URL.Path
		}))
}
