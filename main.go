package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	appinventory "github.com/zenmart/fulfillment/internal/application/inventory"
	apporder "github.com/zenmart/fulfillment/internal/application/order"
	apppayment "github.com/zenmart/fulfillment/internal/application/payment"
	"github.com/zenmart/fulfillment/internal/config"
	"github.com/zenmart/fulfillment/internal/infrastructure/cache"
	"github.com/zenmart/fulfillment/internal/infrastructure/eventbus"
	"github.com/zenmart/fulfillment/internal/infrastructure/id"
	alertworker "github.com/zenmart/fulfillment/internal/infrastructure/inventory/alert"
	"github.com/zenmart/fulfillment/internal/infrastructure/inventorygw"
	"github.com/zenmart/fulfillment/internal/infrastructure/memory"
	"github.com/zenmart/fulfillment/internal/infrastructure/ordergw"
	"github.com/zenmart/fulfillment/internal/infrastructure/payment/settler"
	httptransport "github.com/zenmart/fulfillment/internal/presentation/http"
	"github.com/zenmart/fulfillment/internal/pkg/logging"
	"go.uber.org/zap"
)

func main() {
	cfg := config.Load()

	logger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = logger.Sync() }()
	zap.ReplaceGlobals(logger)

	decrementFailures := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_decrement_failures_total",
			Help: "Inventory decrement calls that failed during order creation.",
		},
		[]string{"reason"},
	)
	settlementOutcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_settlement_outcomes_total",
			Help: "Terminal settlement outcomes by result.",
		},
		[]string{"outcome"},
	)
	callbackFailures := prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "order_callback_failures_total",
			Help: "Order payment-status callbacks that failed.",
		},
	)
	stockAlerts := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "inventory_stock_alerts_total",
			Help: "Stock alerts raised by inventory deductions.",
		},
		[]string{"level"},
	)
	prometheus.MustRegister(decrementFailures, settlementOutcomes, callbackFailures, stockAlerts)

	orderRepo := memory.NewOrderRepository()
	inventoryRepo := memory.NewInventoryRepository()
	paymentRepo := memory.NewPaymentRepository()
	idGenerator := id.NewUUIDGenerator()

	bus := eventbus.NewBus(logger)
	bus.Start(context.Background())

	var orderCache cache.Cache = cache.Noop{}
	if cfg.RedisAddr != "" {
		orderCache = cache.NewRedisCache(cfg.RedisAddr, cfg.ServiceName)
		logger.Info("order_cache_enabled", zap.String("addr", cfg.RedisAddr))
	}

	inventoryService := appinventory.NewService(inventoryRepo, idGenerator, bus)
	inventoryGateway := inventorygw.New(inventoryService, cfg.InventoryCallTimeout)
	orderService := apporder.NewService(orderRepo, idGenerator, inventoryGateway, orderCache, decrementFailures)
	orderNotifier := ordergw.New(orderService, cfg.OrderCallbackTimeout)
	paymentService := apppayment.NewService(paymentRepo, idGenerator, orderNotifier, bus, settlementOutcomes, callbackFailures)

	settlementPolicy := apppayment.NewSettlementPolicy(
		cfg.SettlementDelay,
		cfg.SettlementSuccessRate,
		time.Now().UnixNano(),
	)
	settlementWorker := settler.New(bus, paymentService, settlementPolicy)
	settlementWorker.Start()

	stockAlertWorker := alertworker.New(bus, stockAlerts)
	stockAlertWorker.Start()

	handler := httptransport.NewHandler(orderService, paymentService, inventoryService)
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", httptransport.NewRouter(handler, logger))

	server := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		logger.Info("http_server_start", zap.String("addr", server.Addr))
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http_server_error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		logger.Info("http_server_stopped")
	}

	// Let queued settlements drain before the process exits.
	bus.Stop(shutdownCtx)
}
