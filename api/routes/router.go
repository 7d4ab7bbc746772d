package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/LogoBenz/authenticfurniture-backend/api/controllers"
	"github.com/LogoBenz/authenticfurniture-backend/api/middleware"
	"github.com/LogoBenz/authenticfurniture-backend/internal/catalog"
	"github.com/LogoBenz/authenticfurniture-backend/internal/customers"
	"github.com/LogoBenz/authenticfurniture-backend/internal/taxonomy"
	"github.com/LogoBenz/authenticfurniture-backend/internal/warehouses"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/config"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/db"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/logger"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/metrics"
	"github.com/LogoBenz/authenticfurniture-backend/pkg/redis"
)

func NewRouter(
	cfg *config.Config,
	logg *logger.Logger,
	dbP db.Pinger,
	cache redis.Pinger,
	registry *prometheus.Registry,
	catalogService catalog.Service,
	customerService customers.Service,
	taxonomyService taxonomy.Service,
	warehouseService warehouses.Service,
) http.Handler {
	r := chi.NewRouter()

	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(cfg.CORS),
	)

	if registry != nil {
		r.Use(middleware.Metrics(metrics.NewHTTPMetrics(registry)))
	}

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.HealthLive(cfg))
		r.Get("/ready", controllers.HealthReady(cfg, logg, dbP, cache))
	})

	if registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/admin/v1", func(r chi.Router) {
		r.Use(middleware.Auth(cfg.JWT, logg))

		r.Route("/products", func(r chi.Router) {
			r.Get("/", controllers.ProductList(catalogService, cfg.Catalog.DefaultPageSize, logg))
			r.Get("/stats", controllers.ProductStats(catalogService, logg))
			r.Get("/{productId}", controllers.ProductDetail(catalogService, logg))
			r.Post("/refresh", controllers.ProductRefresh(catalogService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter(logg))
				r.Post("/", controllers.ProductCreate(catalogService, logg))
				r.Put("/{productId}", controllers.ProductUpdate(catalogService, logg))
				r.Delete("/{productId}", controllers.ProductDelete(catalogService, logg))
			})
		})

		r.Route("/customers", func(r chi.Router) {
			r.Get("/", controllers.CustomerList(customerService, logg))
			r.Get("/stats", controllers.CustomerStats(customerService, logg))
			r.Get("/{customerId}", controllers.CustomerDetail(customerService, logg))
			r.Post("/refresh", controllers.CustomerRefresh(customerService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter(logg))
				r.Post("/", controllers.CustomerCreate(customerService, logg))
				r.Put("/{customerId}", controllers.CustomerUpdate(customerService, logg))
				r.Delete("/{customerId}", controllers.CustomerDelete(customerService, logg))
			})
		})

		r.Route("/spaces", func(r chi.Router) {
			r.Get("/", controllers.SpaceList(taxonomyService, logg))
			r.Get("/stats", controllers.SpaceStats(taxonomyService, logg))
			r.Get("/{spaceId}", controllers.SpaceDetail(taxonomyService, logg))
			r.Post("/refresh", controllers.SpaceRefresh(taxonomyService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter(logg))
				r.Post("/", controllers.SpaceCreate(taxonomyService, logg))
				r.Put("/{spaceId}", controllers.SpaceUpdate(taxonomyService, logg))
				r.Delete("/{spaceId}", controllers.SpaceDelete(taxonomyService, logg))
				r.Post("/subcategories/{subcategoryId}/move", controllers.SubcategoryMove(taxonomyService, logg))
			})
		})

		r.Route("/warehouses", func(r chi.Router) {
			r.Get("/", controllers.WarehouseList(warehouseService, logg))
			r.Get("/stats", controllers.WarehouseStats(warehouseService, logg))
			r.Get("/{warehouseId}", controllers.WarehouseDetail(warehouseService, logg))
			r.Post("/refresh", controllers.WarehouseRefresh(warehouseService, logg))

			r.Group(func(r chi.Router) {
				r.Use(middleware.RequireWriter(logg))
				r.Post("/", controllers.WarehouseCreate(warehouseService, logg))
				r.Put("/{warehouseId}", controllers.WarehouseUpdate(warehouseService, logg))
				r.Delete("/{warehouseId}", controllers.WarehouseDelete(warehouseService, logg))
				r.Put("/{warehouseId}/stock", controllers.WarehouseSetStock(warehouseService, logg))
			})
		})
	})

	return r
}
