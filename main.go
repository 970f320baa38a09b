package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/config"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/logging"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/repository"
	"github.com/ameyaw416/Ecommerce-Backend-Application/internal/service"
)

// application bundles the wired services. A transport layer mounts these
// directly; the process itself only reports readiness and waits for shutdown.
type application struct {
	inventory *service.InventoryService
	orders    *service.OrderService
	payments  *service.PaymentService
	carts     *service.CartService
	users     *service.UserService
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		zap.NewExample().Fatal("config_load_failed", zap.Error(err))
	}

	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	pool, err := pgxpool.New(ctx, cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("pool_create_failed", zap.Error(err))
	}
	defer pool.Close()

	pingCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		logger.Fatal("db_ping_failed", zap.Error(err))
	}

	if err := repository.ApplySchema(ctx, pool); err != nil {
		logger.Fatal("schema_apply_failed", zap.Error(err))
	}

	productRepo := repository.NewProduct(pool)
	orderRepo := repository.NewOrder(pool)
	paymentRepo := repository.NewPayment(pool)
	cartRepo := repository.NewCart(pool)
	userRepo := repository.NewUser(pool)
	historyRepo := repository.NewHistory(pool)

	app := application{
		inventory: service.NewInventoryService(productRepo, historyRepo, logger),
		orders:    service.NewOrderService(orderRepo, logger),
		payments:  service.NewPaymentService(paymentRepo, orderRepo, logger),
		carts:     service.NewCartService(cartRepo, productRepo, logger),
		users:     service.NewUserService(userRepo, historyRepo, logger),
	}

	catalog, err := app.inventory.ListProducts(ctx)
	if err != nil {
		logger.Fatal("catalog_check_failed", zap.Error(err))
	}

	logger.Info("storefront_ready",
		zap.Int("products", len(catalog)),
		zap.String("default_currency", cfg.DefaultCurrency.String()))

	<-ctx.Done()
	logger.Info("storefront_stopped")
}
