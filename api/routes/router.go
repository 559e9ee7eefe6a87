package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/gestao-escolar/escolar-backend/api/controllers"
	"github.com/gestao-escolar/escolar-backend/api/middleware"
	authsvc "github.com/gestao-escolar/escolar-backend/internal/auth"
	"github.com/gestao-escolar/escolar-backend/internal/customers"
	"github.com/gestao-escolar/escolar-backend/internal/orders"
	"github.com/gestao-escolar/escolar-backend/internal/products"
	"github.com/gestao-escolar/escolar-backend/internal/reports"
	"github.com/gestao-escolar/escolar-backend/internal/schools"
	"github.com/gestao-escolar/escolar-backend/internal/stock"
	"github.com/gestao-escolar/escolar-backend/pkg/config"
	"github.com/gestao-escolar/escolar-backend/pkg/logger"
	"github.com/gestao-escolar/escolar-backend/pkg/metrics"
	"github.com/gestao-escolar/escolar-backend/pkg/redis"
)

// Services bundles every domain service the router wires to controllers.
// Nil services are allowed: their endpoints answer with DEPENDENCY_ERROR,
// which is how the API runs when the database is not configured.
type Services struct {
	Auth      authsvc.Service
	Schools   schools.Service
	Customers customers.Service
	Products  products.Service
	Stock     stock.Service
	Orders    orders.Service
	Reports   reports.Service
}

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP controllers.Pinger,
	redisClient *redis.Client,
	promReg *prometheus.Registry,
	svcs Services,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.App.CORSOrigins),
	)

	var httpMetrics *metrics.HTTPMetrics
	if promReg != nil {
		httpMetrics = metrics.NewHTTPMetrics(promReg)
		r.Use(middleware.Metrics(httpMetrics))
	}

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRateLimit.LoginWindow,
		cfg.AuthRateLimit.LoginIPLimit,
		cfg.AuthRateLimit.LoginUsernameLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, dbP))
	})

	if promReg != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(promReg, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1/auth", func(r chi.Router) {
		login := controllers.AuthLogin(svcs.Auth, logg)
		if redisClient != nil {
			r.With(middleware.AuthRateLimit(loginPolicy, redisClient, logg)).Post("/login", login)
		} else {
			r.Post("/login", login)
		}
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/escolas", func(r chi.Router) {
			r.Get("/", controllers.SchoolsList(svcs.Schools, logg))
			r.Post("/", controllers.SchoolsCreate(svcs.Schools, logg))
			r.Delete("/{id}", controllers.SchoolsDelete(svcs.Schools, logg))
		})

		r.Route("/clientes", func(r chi.Router) {
			r.Get("/", controllers.CustomersList(svcs.Customers, logg))
			r.Post("/", controllers.CustomersCreate(svcs.Customers, logg))
			r.Delete("/{id}", controllers.CustomersDelete(svcs.Customers, logg))
		})

		r.Route("/produtos", func(r chi.Router) {
			r.Get("/", controllers.ProductsList(svcs.Products, logg))
			r.Post("/", controllers.ProductsCreate(svcs.Products, logg))
		})

		r.Route("/estoque", func(r chi.Router) {
			r.Get("/", controllers.StockList(svcs.Stock, logg))
			r.Put("/", controllers.StockSet(svcs.Stock, logg))
		})

		r.Route("/pedidos", func(r chi.Router) {
			r.Get("/", controllers.OrdersList(svcs.Orders, logg))
			r.Post("/", controllers.OrdersCreate(svcs.Orders, logg))
			r.Get("/{id}", controllers.OrdersGet(svcs.Orders, logg))
			r.Delete("/{id}", controllers.OrdersDelete(svcs.Orders, logg))
		})

		r.Route("/relatorios", func(r chi.Router) {
			r.Get("/dashboard", controllers.ReportsDashboard(svcs.Reports, logg))
			r.Get("/receita", controllers.ReportsRevenue(svcs.Reports, logg))
			r.Get("/produtos-mais-vendidos", controllers.ReportsTopProducts(svcs.Reports, logg))
		})

		r.Route("/usuarios", func(r chi.Router) {
			r.Use(middleware.RequireAdmin(logg))
			r.Get("/", controllers.UsersList(svcs.Auth, logg))
			r.Post("/", controllers.UsersCreate(svcs.Auth, logg))
		})
	})

	return r
}
