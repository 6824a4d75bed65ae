package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	appcart "github.com/ferrishop/commerce-core/internal/application/cart"
	appcatalog "github.com/ferrishop/commerce-core/internal/application/catalog"
	appinventory "github.com/ferrishop/commerce-core/internal/application/inventory"
	apporder "github.com/ferrishop/commerce-core/internal/application/order"
	apppayment "github.com/ferrishop/commerce-core/internal/application/payment"
	appuser "github.com/ferrishop/commerce-core/internal/application/user"
	"github.com/ferrishop/commerce-core/internal/config"
	domcart "github.com/ferrishop/commerce-core/internal/domain/cart"
	domcat "github.com/ferrishop/commerce-core/internal/domain/catalog"
	domorder "github.com/ferrishop/commerce-core/internal/domain/order"
	dompay "github.com/ferrishop/commerce-core/internal/domain/payment"
	"github.com/ferrishop/commerce-core/internal/domain/storage"
	domuser "github.com/ferrishop/commerce-core/internal/domain/user"
	"github.com/ferrishop/commerce-core/internal/infrastructure/alerts"
	"github.com/ferrishop/commerce-core/internal/infrastructure/gateway"
	httptransport "github.com/ferrishop/commerce-core/internal/infrastructure/http"
	"github.com/ferrishop/commerce-core/internal/infrastructure/id"
	"github.com/ferrishop/commerce-core/internal/infrastructure/memory"
	"github.com/ferrishop/commerce-core/internal/infrastructure/outbox"
	"github.com/ferrishop/commerce-core/internal/infrastructure/sqlite"
	"github.com/ferrishop/commerce-core/internal/pkg/logging"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

// repositories groups the persistence ports so the memory and sqlite
// stores can be swapped behind one seam.
type repositories struct {
	catalog  domcat.Repository
	orders   domorder.Repository
	payments dompay.Repository
	users    domuser.Repository
	carts    domcart.Repository
	unit     storage.UnitOfWork
	close    func() error
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	baseLogger := logging.MustNewLogger(cfg.ServiceName, cfg.Env)
	defer func() { _ = baseLogger.Sync() }()
	zap.ReplaceGlobals(baseLogger)

	repos, err := buildRepositories(cfg)
	if err != nil {
		baseLogger.Fatal("store_init_failed", zap.Error(err))
	}
	defer func() { _ = repos.close() }()

	gatewayOutcomes := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payment_gateway_outcomes_total",
			Help: "Count of payment gateway charge decisions by outcome.",
		},
		[]string{"outcome"},
	)
	alertCount := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "operational_alerts_total",
			Help: "Count of operational alerts raised from domain events.",
		},
		[]string{"alert"},
	)
	prometheus.MustRegister(gatewayOutcomes, alertCount)
	httpMetrics := httptransport.NewMetrics(prometheus.DefaultRegisterer)

	bus := outbox.NewBus(baseLogger)
	bus.Start(context.Background())
	defer bus.Stop(context.Background())

	alertWorker := alerts.New(bus, alertCount)
	alertWorker.Start()

	idGenerator := id.NewUUIDGenerator()
	paymentGateway := gateway.NewSimulated(cfg.GatewaySuccessRate)

	catalogService := appcatalog.NewService(repos.catalog, idGenerator)
	inventoryService := appinventory.NewService(repos.catalog, bus)
	userService := appuser.NewService(repos.users, idGenerator)
	orderService := apporder.NewService(repos.orders, repos.catalog, repos.users, idGenerator, bus)
	paymentService := apppayment.NewService(
		repos.payments, repos.orders, paymentGateway, repos.unit, idGenerator, bus, gatewayOutcomes,
	)
	cartService := appcart.NewService(repos.carts, repos.catalog, repos.users, idGenerator)

	handler := httptransport.NewHandler(
		catalogService, inventoryService, orderService, paymentService, cartService, userService,
	)

	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	mux.Handle("/", handler.Router(baseLogger, httpMetrics))

	server := &http.Server{
		Addr:    cfg.ListenAddress,
		Handler: mux,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("http_server_start",
			zap.String("addr", server.Addr),
			zap.Bool("sqlite", cfg.DatabasePath != ""),
		)
		err := server.ListenAndServe()
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Error("http_server_error", zap.Error(err))
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("http_server_shutdown_error", zap.Error(err))
	} else {
		baseLogger.Info("http_server_stopped")
	}
}

func buildRepositories(cfg *config.Config) (*repositories, error) {
	if cfg.DatabasePath == "" {
		return &repositories{
			catalog:  memory.NewCatalogRepository(),
			orders:   memory.NewOrderRepository(),
			payments: memory.NewPaymentRepository(),
			users:    memory.NewUserRepository(),
			carts:    memory.NewCartRepository(),
			unit:     memory.NewUnitOfWork(),
			close:    func() error { return nil },
		}, nil
	}

	store, err := sqlite.New(cfg.DatabasePath)
	if err != nil {
		return nil, err
	}
	return &repositories{
		catalog:  store.Catalog(),
		orders:   store.Orders(),
		payments: store.Payments(),
		users:    store.Users(),
		carts:    store.Carts(),
		unit:     store,
		close:    store.Close,
	}, nil
}
