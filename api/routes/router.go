package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/podolskiy06021990-bit/orderdesk-backend/api/controllers"
	"github.com/podolskiy06021990-bit/orderdesk-backend/api/middleware"
	customersvc "github.com/podolskiy06021990-bit/orderdesk-backend/internal/customers"
	ordersvc "github.com/podolskiy06021990-bit/orderdesk-backend/internal/orders"
	peoplesvc "github.com/podolskiy06021990-bit/orderdesk-backend/internal/people"
	productsvc "github.com/podolskiy06021990-bit/orderdesk-backend/internal/products"
	statssvc "github.com/podolskiy06021990-bit/orderdesk-backend/internal/stats"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/config"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/db"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/logger"
	"github.com/podolskiy06021990-bit/orderdesk-backend/pkg/metrics"
	pkgredis "github.com/podolskiy06021990-bit/orderdesk-backend/pkg/redis"
)

// Deps carries everything the router mounts.
type Deps struct {
	Config      *config.Config
	Logger      *logger.Logger
	DBPinger    db.Pinger
	RedisPinger pkgredis.Pinger
	IdemStore   pkgredis.IdempotencyStore
	Registry    *prometheus.Registry
	HTTPMetrics *metrics.HTTPMetrics

	Customers customersvc.Service
	Products  productsvc.Service
	Orders    ordersvc.Service
	People    peoplesvc.Service
	Stats     statssvc.Service
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.Metrics(deps.HTTPMetrics),
		middleware.CORS(cfg.App.CORSOrigins),
		middleware.Idempotency(deps.IdemStore, logg),
	)

	r.Get("/healthz", controllers.HealthLive(cfg))
	r.Get("/readyz", controllers.HealthReady(cfg, logg, deps.DBPinger, deps.RedisPinger))

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/ping", controllers.Ping())

		r.Route("/customers", func(r chi.Router) {
			r.Post("/", controllers.CreateCustomer(deps.Customers, logg))
			r.Get("/", controllers.ListCustomers(deps.Customers, logg))
			r.Get("/{id}", controllers.GetCustomer(deps.Customers, logg))
		})

		r.Route("/products", func(r chi.Router) {
			r.Post("/", controllers.CreateProduct(deps.Products, logg))
			r.Get("/", controllers.ListProducts(deps.Products, logg))
			r.Get("/low-stock", controllers.ListLowStockProducts(deps.Products, logg))
			r.Get("/{id}", controllers.GetProduct(deps.Products, logg))
		})

		r.Route("/orders", func(r chi.Router) {
			r.Post("/", controllers.PlaceOrder(deps.Orders, logg))
			r.Get("/", controllers.ListOrders(deps.Orders, logg))
			r.Get("/{id}", controllers.GetOrder(deps.Orders, logg))
			r.Post("/{id}/status", controllers.UpdateOrderStatus(deps.Orders, logg))
		})

		r.Route("/people", func(r chi.Router) {
			r.Post("/", controllers.CreatePerson(deps.People, logg))
			r.Get("/{id}", controllers.GetPerson(deps.People, logg))
			r.Post("/{id}/student-profile", controllers.AssignStudentProfile(deps.People, logg))
			r.Post("/{id}/teacher-profile", controllers.AssignTeacherProfile(deps.People, logg))
		})
		r.Get("/students", controllers.ListStudents(deps.People, logg))
		r.Get("/teachers", controllers.ListTeachers(deps.People, logg))

		r.Get("/stats", controllers.GetStats(deps.Stats, logg))
	})

	return r
}
