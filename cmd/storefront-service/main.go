package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/cart"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/catalog"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/config"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/events"
	httpapi "github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/http"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/logging"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/store/memstore"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/store/mongostore"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/store/pgstore"
	"github.com/andreasstove999/ecommerce-system/storefront-service-go/internal/telemetry"
)

const serviceName = "storefront-service"

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "config: %v\n", err)
		os.Exit(1)
	}

	logger := logging.New(logging.Options{
		Service: serviceName,
		Env:     cfg.AppEnv,
		Level:   cfg.LogLevel,
	})

	if err := run(cfg, logger); err != nil {
		logger.Error("service stopped", "error", err)
		os.Exit(1)
	}
}

// stores bundles the repositories for the selected driver with its
// health probe and cleanup.
type stores struct {
	products catalog.Repository
	carts    cart.Repository
	pinger   httpapi.Pinger
	close    func()
}

func openStores(ctx context.Context, cfg config.Config, logger *slog.Logger) (stores, error) {
	switch cfg.StoreDriver {
	case config.DriverMongo:
		s, err := mongostore.Connect(ctx, mongostore.Config{
			URI:                cfg.MongoURI,
			Database:           cfg.MongoDatabase,
			ProductsCollection: cfg.MongoProductsCollection,
			CartsCollection:    cfg.MongoCartsCollection,
		})
		if err != nil {
			return stores{}, err
		}
		return stores{
			products: s.Products,
			carts:    s.Carts,
			pinger:   s,
			close: func() {
				closeCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = s.Close(closeCtx)
			},
		}, nil

	case config.DriverPostgres:
		pool, err := pgstore.NewPool(ctx, cfg.DatabaseDSN)
		if err != nil {
			return stores{}, fmt.Errorf("db connect: %w", err)
		}
		if cfg.RunMigrations {
			if err := pgstore.RunMigrations(cfg.DatabaseDSN, logger); err != nil {
				pool.Close()
				return stores{}, fmt.Errorf("db migrate: %w", err)
			}
		}
		return stores{
			products: pgstore.NewProductRepository(pool),
			carts:    pgstore.NewCartRepository(pool),
			pinger:   pool,
			close:    pool.Close,
		}, nil

	default:
		logger.Warn("using in-memory store; data is lost on restart")
		return stores{
			products: memstore.NewProductRepository(),
			carts:    memstore.NewCartRepository(),
			close:    func() {},
		}, nil
	}
}

func run(cfg config.Config, logger *slog.Logger) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// --- tracing ---
	shutdownTracing, err := telemetry.Setup(ctx, serviceName, cfg.OTelEndpoint)
	if err != nil {
		return fmt.Errorf("telemetry: %w", err)
	}
	defer func() {
		flushCtx, flushCancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer flushCancel()
		if err := shutdownTracing(flushCtx); err != nil {
			logger.Warn("telemetry shutdown", "error", err)
		}
	}()

	// --- store ---
	connectCtx, connectCancel := context.WithTimeout(ctx, 30*time.Second)
	st, err := openStores(connectCtx, cfg, logger)
	connectCancel()
	if err != nil {
		return err
	}
	defer st.close()
	logger.Info("store ready", "driver", cfg.StoreDriver)

	// --- AMQP ---
	cartOpts := []cart.Option{cart.WithLogger(logger)}
	if cfg.RabbitMQURL != "" {
		conn, err := events.Dial(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		defer conn.Close()

		pub, err := events.NewPublisher(conn)
		if err != nil {
			return fmt.Errorf("events publisher: %w", err)
		}
		defer pub.Close()

		cartOpts = append(cartOpts, cart.WithEventPublisher(pub))
		logger.Info("publishing cart events", "exchange", events.EventsExchange)
	}

	// --- HTTP ---
	h := httpapi.NewHandler(
		catalog.NewService(st.products, logger),
		cart.NewService(st.carts, st.products, cartOpts...),
		st.pinger,
		logger,
	)
	router := httpapi.NewRouter(h, httpapi.RouterOptions{
		Logger:           logger,
		CORSAllowOrigins: cfg.CORSAllowOrigins,
		RequestTimeout:   cfg.RequestTimeout,
	})

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)

	go func() {
		logger.Info("http listening", "addr", cfg.HTTPAddr)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	// --- graceful shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	var runErr error
	select {
	case sig := <-sigCh:
		logger.Info("shutdown signal", "signal", sig.String())
	case err := <-errCh:
		runErr = fmt.Errorf("http server: %w", err)
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer shutdownCancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Warn("http shutdown", "error", err)
	}
	cancel()

	logger.Info("shutdown complete")
	return runErr
}
