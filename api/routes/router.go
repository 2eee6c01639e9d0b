package routes

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/agenciasgt/distribuidores-backend/api/controllers"
	"github.com/agenciasgt/distribuidores-backend/api/middleware"
	authsvc "github.com/agenciasgt/distribuidores-backend/internal/auth"
	"github.com/agenciasgt/distribuidores-backend/internal/catalog"
	"github.com/agenciasgt/distribuidores-backend/internal/fabrica"
	"github.com/agenciasgt/distribuidores-backend/internal/mail"
	"github.com/agenciasgt/distribuidores-backend/internal/orders"
	"github.com/agenciasgt/distribuidores-backend/internal/partners"
	"github.com/agenciasgt/distribuidores-backend/internal/reviews"
	"github.com/agenciasgt/distribuidores-backend/internal/users"
	"github.com/agenciasgt/distribuidores-backend/pkg/config"
	"github.com/agenciasgt/distribuidores-backend/pkg/db"
	"github.com/agenciasgt/distribuidores-backend/pkg/logger"
)

// Deps carries everything the HTTP surface needs.
type Deps struct {
	Config   *config.Config
	Logger   *logger.Logger
	DB       *db.Client
	Registry *prometheus.Registry

	RateLimitStore middleware.RateLimiterStore

	Auth     authsvc.Service
	Catalog  catalog.Service
	Orders   orders.Service
	Users    users.Service
	Reviews  reviews.Service
	Partners partners.Service

	Mail          mail.Sender
	FabricaClient *fabrica.Client
	Reporting     fabrica.Reporting
}

func NewRouter(deps Deps) http.Handler {
	cfg := deps.Config
	logg := deps.Logger

	r := chi.NewRouter()
	r.Use(
		middleware.Recoverer(logg),
		middleware.RequestID(logg),
		middleware.Logging(logg),
		middleware.CORS(),
	)

	loginPolicy := middleware.NewAuthRateLimitPolicy(
		"login",
		cfg.AuthRL.LoginWindow,
		cfg.AuthRL.LoginIPLimit,
		cfg.AuthRL.LoginEmailLimit,
	)
	registerPolicy := middleware.NewAuthRateLimitPolicy(
		"register",
		cfg.AuthRL.RegisterWindow,
		cfg.AuthRL.RegisterIPLimit,
		cfg.AuthRL.RegisterEmailLimit,
	)

	r.Route("/health", func(r chi.Router) {
		r.Get("/live", controllers.Health())
		r.Get("/ready", controllers.HealthReady(deps.DB, logg))
	})

	if deps.Registry != nil {
		r.Method(http.MethodGet, "/metrics", promhttp.HandlerFor(deps.Registry, promhttp.HandlerOpts{}))
	}

	r.Route("/api/auth", func(r chi.Router) {
		r.With(middleware.AuthRateLimit(loginPolicy, deps.RateLimitStore, logg)).
			Post("/login", controllers.AuthLogin(deps.Auth, logg))
		r.With(middleware.AuthRateLimit(registerPolicy, deps.RateLimitStore, logg)).
			Post("/register", controllers.AuthRegister(deps.Auth, logg))
	})

	ordersCtl := &controllers.OrdersController{
		Orders: deps.Orders,
		Users:  deps.Users,
		Mail:   deps.Mail,
		Logger: logg,
	}
	fabricaCtl := &controllers.FabricaController{
		Client: deps.FabricaClient,
		Logger: logg,
	}

	r.Route("/api", func(r chi.Router) {
		r.Use(middleware.OptionalAuth(cfg.JWT, logg))

		r.Get("/health", controllers.Health())

		r.Route("/repuestos", func(r chi.Router) {
			r.Get("/", controllers.ListParts(deps.Catalog, logg))
			r.Get("/busqueda", controllers.SearchParts(deps.Catalog, logg))
			r.Get("/numero/{partNumber}", controllers.GetPartByNumber(deps.Catalog, logg))
			r.Post("/", controllers.CreatePart(deps.Catalog, logg))
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", controllers.GetPart(deps.Catalog, logg))
				r.Put("/", controllers.UpdatePart(deps.Catalog, logg))
				r.Delete("/", controllers.DeletePart(deps.Catalog, logg))
				r.Get("/galeria", controllers.GetGallery(deps.Catalog, logg))
				r.Post("/imagenes", controllers.AddPartImage(deps.Catalog, logg))
				r.Put("/inventario", controllers.UpdatePartInventory(deps.Catalog, logg))
				r.Route("/comentarios", func(r chi.Router) {
					r.Get("/", controllers.ListComments(deps.Reviews, logg))
					r.Post("/", controllers.CreateComment(deps.Reviews, logg))
				})
			})
		})

		r.Route("/categorias", func(r chi.Router) {
			r.Get("/", controllers.ListCategories(deps.Catalog, logg))
			r.Get("/{id}", controllers.GetCategory(deps.Catalog, logg))
		})
		r.Route("/marcas", func(r chi.Router) {
			r.Get("/", controllers.ListBrands(deps.Catalog, logg))
			r.Get("/{id}", controllers.GetBrand(deps.Catalog, logg))
		})

		r.Route("/pedidos", func(r chi.Router) {
			r.Post("/", ordersCtl.Create())
			r.Get("/todos", ordersCtl.ListAll())
			r.Get("/usuario/{userId}", ordersCtl.ListByUser())
			r.Get("/{orderId}", ordersCtl.GetDetail())
			r.Patch("/{orderId}/estado", ordersCtl.UpdateStatus())
		})

		r.Route("/usuarios", func(r chi.Router) {
			r.Get("/", controllers.ListUsers(deps.Users, logg))
			r.Patch("/{id}", controllers.UpdateUser(deps.Users, logg))
		})

		r.Route("/images", func(r chi.Router) {
			r.Get("/part/{partId}", controllers.GetPrimaryImage(deps.Catalog, logg))
			r.Get("/part/{partId}/imagen/{index}", controllers.GetImageByIndex(deps.Catalog, logg))
			r.Post("/validate", controllers.ValidateImage(logg))
		})

		r.Route("/reportes", func(r chi.Router) {
			r.Post("/visto-detalle", controllers.ReportPartViewed(deps.Reporting, logg))
			r.Post("/agregado-carrito", controllers.ReportAddedToCart(deps.Reporting, logg))
		})

		r.Route("/fabrica", func(r chi.Router) {
			r.Route("/repuestos", func(r chi.Router) {
				r.Get("/", fabricaCtl.ListParts())
				r.Get("/busqueda", fabricaCtl.SearchParts())
				r.Get("/{id}", fabricaCtl.GetPart())
			})
			r.Post("/auth/login", fabricaCtl.Login())
			r.Route("/pedidos", func(r chi.Router) {
				r.Post("/", fabricaCtl.CreateOrder())
				r.Get("/usuario/{userId}", fabricaCtl.ListOrdersByUser())
				r.Get("/{orderId}", fabricaCtl.GetOrder())
			})
		})

		r.Route("/distribuidores", func(r chi.Router) {
			r.Get("/", controllers.ListDistribuidores(deps.Partners, logg))
			r.Post("/", controllers.CreateDistribuidor(deps.Partners, logg))
			r.Get("/{id}", controllers.GetDistribuidor(deps.Partners, logg))
			r.Put("/{id}", controllers.UpdateDistribuidor(deps.Partners, logg))
			r.Delete("/{id}", controllers.DeleteDistribuidor(deps.Partners, logg))
		})
		r.Route("/proveedores", func(r chi.Router) {
			r.Get("/", controllers.ListProveedores(deps.Partners, logg))
			r.Post("/", controllers.CreateProveedor(deps.Partners, logg))
			r.Get("/{id}", controllers.GetProveedor(deps.Partners, logg))
			r.Put("/{id}", controllers.UpdateProveedor(deps.Partners, logg))
			r.Delete("/{id}", controllers.DeleteProveedor(deps.Partners, logg))
		})
	})

	return r
}
