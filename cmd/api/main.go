package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/multierr"

	"github.com/gestao-escolar/escolar-backend/api/controllers"
	"github.com/gestao-escolar/escolar-backend/api/routes"
	authsvc "github.com/gestao-escolar/escolar-backend/internal/auth"
	"github.com/gestao-escolar/escolar-backend/internal/customers"
	"github.com/gestao-escolar/escolar-backend/internal/orders"
	"github.com/gestao-escolar/escolar-backend/internal/products"
	"github.com/gestao-escolar/escolar-backend/internal/reports"
	"github.com/gestao-escolar/escolar-backend/internal/schools"
	"github.com/gestao-escolar/escolar-backend/internal/stock"
	"github.com/gestao-escolar/escolar-backend/internal/users"
	"github.com/gestao-escolar/escolar-backend/pkg/config"
	"github.com/gestao-escolar/escolar-backend/pkg/db"
	"github.com/gestao-escolar/escolar-backend/pkg/logger"
	"github.com/gestao-escolar/escolar-backend/pkg/migrate"
	"github.com/gestao-escolar/escolar-backend/pkg/redis"
)

func main() {
	logg := logger.New(logger.Options{ServiceName: "api"})

	if err := godotenv.Load(); err != nil {
		logg.Warn(context.Background(), ".env file not found, relying on environment")
	}

	cfg, err := config.Load()
	if err != nil {
		logg.Error(context.Background(), "failed to load config", err)
		os.Exit(1)
	}

	logg = logger.New(logger.Options{
		ServiceName: "api",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		WarnStack:   cfg.App.LogWarnStack,
	})

	ctx := context.Background()

	// The API keeps serving without a database. Persistence-backed routes
	// answer DEPENDENCY_ERROR until one is configured.
	var dbClient *db.Client
	if cfg.DB.Ready() {
		dbClient, err = db.New(ctx, cfg.DB, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap database, continuing degraded", err)
			dbClient = nil
		}
	} else {
		logg.Warn(logg.WithField(ctx, "reason", cfg.DB.ConfigError.Error()), "database not configured, starting degraded")
	}

	if dbClient != nil {
		if err := migrate.MaybeRunDev(ctx, cfg, logg, dbClient); err != nil {
			logg.Error(ctx, "failed to run dev migrations", err)
			os.Exit(1)
		}
	}

	var redisClient *redis.Client
	if cfg.Redis.Enabled() {
		redisClient, err = redis.New(ctx, cfg.Redis, logg)
		if err != nil {
			logg.Error(ctx, "failed to bootstrap redis, login rate limiting disabled", err)
			redisClient = nil
		}
	}

	svcs, err := buildServices(ctx, cfg, logg, dbClient)
	if err != nil {
		logg.Error(ctx, "failed to build services", err)
		os.Exit(1)
	}

	promReg := prometheus.NewRegistry()
	promReg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.App.Port
	}
	addr := ":" + port

	startCtx := logg.WithFields(ctx, map[string]any{
		"env":      cfg.App.Env,
		"addr":     addr,
		"degraded": dbClient == nil,
	})
	logg.Info(startCtx, "starting api server")

	server := &http.Server{
		Addr:              addr,
		Handler:           routes.NewRouter(cfg, logg, pingerOrNil(dbClient), redisClient, promReg, svcs),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		errCh <- server.ListenAndServe()
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logg.Error(startCtx, "api server stopped unexpectedly", err)
			os.Exit(1)
		}
	case sig := <-stop:
		logg.Info(logg.WithField(startCtx, "signal", sig.String()), "shutting down")

		shutdownCtx, cancel := context.WithTimeout(ctx, 15*time.Second)
		defer cancel()

		var closeErr error
		closeErr = multierr.Append(closeErr, server.Shutdown(shutdownCtx))
		if dbClient != nil {
			closeErr = multierr.Append(closeErr, dbClient.Close())
		}
		if redisClient != nil {
			closeErr = multierr.Append(closeErr, redisClient.Close())
		}
		if closeErr != nil {
			logg.Error(startCtx, "shutdown finished with errors", closeErr)
			os.Exit(1)
		}
		logg.Info(startCtx, "shutdown complete")
	}
}

// pingerOrNil avoids handing the router a typed-nil interface value.
func pingerOrNil(client *db.Client) controllers.Pinger {
	if client == nil {
		return nil
	}
	return client
}

// buildServices wires the domain layer. With no database every service is
// nil and the router degrades those endpoints.
func buildServices(ctx context.Context, cfg *config.Config, logg *logger.Logger, dbClient *db.Client) (routes.Services, error) {
	if dbClient == nil {
		return routes.Services{}, nil
	}

	conn := dbClient.DB()

	schoolsRepo := schools.NewRepository(conn)
	customersRepo := customers.NewRepository(conn)
	productsRepo := products.NewRepository(conn)
	stockRepo := stock.NewRepository(conn)
	ordersRepo := orders.NewRepository(conn)
	usersRepo := users.NewRepository(conn)
	reportsRepo := reports.NewRepository(conn)

	schoolsSvc, err := schools.NewService(schoolsRepo)
	if err != nil {
		return routes.Services{}, err
	}
	customersSvc, err := customers.NewService(customersRepo, schoolsRepo)
	if err != nil {
		return routes.Services{}, err
	}
	productsSvc, err := products.NewService(productsRepo)
	if err != nil {
		return routes.Services{}, err
	}
	stockSvc, err := stock.NewService(stockRepo, schoolsRepo, productsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	ledger := stock.NewLedger(stockRepo, cfg.Stock, logg)
	ordersSvc, err := orders.NewService(ordersRepo, customersRepo, schoolsRepo, productsRepo, ledger, dbClient, logg)
	if err != nil {
		return routes.Services{}, err
	}

	reportsSvc, err := reports.NewService(reportsRepo)
	if err != nil {
		return routes.Services{}, err
	}

	authService, err := authsvc.NewService(usersRepo, cfg.JWT, cfg.Password, logg)
	if err != nil {
		return routes.Services{}, err
	}

	authsvc.WarnIfNoUsers(ctx, usersRepo, logg)

	return routes.Services{
		Auth:      authService,
		Schools:   schoolsSvc,
		Customers: customersSvc,
		Products:  productsSvc,
		Stock:     stockSvc,
		Orders:    ordersSvc,
		Reports:   reportsSvc,
	}, nil
}
