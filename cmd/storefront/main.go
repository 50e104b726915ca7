package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fjod/go_storefront/internal/cache"
	"github.com/fjod/go_storefront/internal/config"
	h "github.com/fjod/go_storefront/internal/http"
	"github.com/fjod/go_storefront/internal/payment"
	"github.com/fjod/go_storefront/internal/publisher"
	"github.com/fjod/go_storefront/internal/repository"
	"github.com/fjod/go_storefront/internal/service"
	"github.com/fjod/go_storefront/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"
)

type stores struct {
	users    repository.UserRepository
	products repository.ProductRepository
	close    func(context.Context) error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("error", err))
		os.Exit(1)
	}

	log := logger.New(logger.Config{Level: cfg.LogLevel, Format: cfg.LogFormat, Service: "storefront"})
	slog.SetDefault(log)

	if err := run(cfg, log); err != nil {
		log.Error("storefront stopped with error", slog.Any("error", err))
		os.Exit(1)
	}
}

func run(cfg *config.Config, log *slog.Logger) error {
	otel.SetTextMapPropagator(propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
	))

	ctx := context.Background()

	st, err := openStores(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		if err := st.close(closeCtx); err != nil {
			log.Warn("store close failed", slog.Any("error", err))
		}
	}()

	userCache, err := openCache(ctx, cfg, log)
	if err != nil {
		return err
	}
	if c, ok := userCache.(io.Closer); ok {
		defer c.Close()
	}

	events := openPublisher(cfg, log)
	defer events.Close()

	var gateway service.PaymentGateway = payment.Disabled{}
	if cfg.StripeSecretKey != "" {
		gateway = payment.NewStripeGateway(payment.StripeConfig{
			SecretKey:   cfg.StripeSecretKey,
			FrontendURL: cfg.FrontendURL,
			Currency:    cfg.CheckoutCurrency,
		}, log)
		log.Info("stripe checkout enabled", slog.String("currency", cfg.CheckoutCurrency))
	} else {
		log.Warn("STRIPE_SECRET_KEY not set, checkout endpoints will return 503")
	}

	users := service.NewUserStore(st.users, userCache, service.WithLogger(log))
	router := h.NewRouter(h.RouterConfig{
		RequestTimeout:     cfg.RequestTimeout,
		MaxRequestBodySize: cfg.MaxRequestBodySize,
		AllowedOrigins:     cfg.CORSAllowedOrigins,
		Logger:             log,
	}, h.Services{
		Carts:    service.NewCartService(users, service.WithLogger(log)),
		Orders:   service.NewOrderService(users, events, service.WithLogger(log)),
		Profiles: service.NewProfileService(users),
		Products: service.NewProductService(st.products, service.WithLogger(log)),
		Payments: service.NewPaymentService(gateway, st.products),
	})

	srv := &http.Server{
		Addr:              ":" + cfg.HTTPPort,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      cfg.RequestTimeout + 5*time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serverErr := make(chan error, 1)
	go func() {
		log.Info("storefront listening", slog.String("addr", srv.Addr), slog.String("store", cfg.StoreBackend))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErr:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		log.Info("shutting down server", slog.String("signal", sig.String()))
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("server forced to shutdown: %w", err)
	}

	log.Info("server exited")
	return nil
}

func openStores(ctx context.Context, cfg *config.Config, log *slog.Logger) (*stores, error) {
	switch cfg.StoreBackend {
	case config.BackendFirestore:
		client, err := repository.ConnectFirestore(ctx, cfg.FirestoreProjectID, cfg.FirestoreCredentialsFile)
		if err != nil {
			return nil, err
		}
		log.Info("connected to firestore", slog.String("project", cfg.FirestoreProjectID))
		return &stores{
			users:    repository.NewFirestoreUserRepository(client),
			products: repository.NewFirestoreProductRepository(client),
			close:    func(context.Context) error { return client.Close() },
		}, nil

	case config.BackendMongo:
		db, err := repository.ConnectMongoDB(ctx, cfg.MongoURI, cfg.MongoDBName)
		if err != nil {
			return nil, err
		}
		if err := repository.CreateMongoIndexes(ctx, db); err != nil {
			_ = db.Client().Disconnect(ctx)
			return nil, err
		}
		log.Info("connected to mongodb", slog.String("database", cfg.MongoDBName))
		return &stores{
			users:    repository.NewMongoUserRepository(db),
			products: repository.NewMongoProductRepository(db),
			close:    db.Client().Disconnect,
		}, nil

	default:
		log.Warn("using in-memory store, data is lost on restart")
		mem := repository.NewMemoryStore()
		return &stores{
			users:    mem,
			products: mem,
			close:    func(context.Context) error { return nil },
		}, nil
	}
}

func openCache(ctx context.Context, cfg *config.Config, log *slog.Logger) (cache.UserCache, error) {
	if cfg.RedisAddr == "" {
		log.Info("REDIS_ADDR not set, user cache disabled")
		return cache.Noop{}, nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
		DB:       cfg.RedisDB,
	})
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("redis connection failed: %w", err)
	}
	log.Info("redis ping succeeded", slog.String("addr", cfg.RedisAddr))
	return cache.NewRedisCache(client, cfg.CacheTTL), nil
}

type eventPublisher interface {
	service.EventPublisher
	Close() error
}

func openPublisher(cfg *config.Config, log *slog.Logger) eventPublisher {
	if len(cfg.KafkaBrokers) == 0 {
		return publisher.Noop{}
	}
	log.Info("publishing order events", slog.String("topic", cfg.OrderEventsTopic), slog.Any("brokers", cfg.KafkaBrokers))
	return publisher.NewKafkaPublisher(cfg.OrderEventsTopic, cfg.KafkaBrokers...)
}
