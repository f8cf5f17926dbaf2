package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/identity"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/domain/entity"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Auth         *auth.AuthUseCase
	Sessions     SessionResolver
	Catalog      *catalog.Service
	Products     *usecase.ProductUseCase
	Logs         *usecase.ActionLogUseCase
	Favorites    *usecase.FavoriteUseCase
	Identity     *identity.Service
	Stores       *usecase.StoreUseCase
	PageViews    PageViewRecorder
	// Media nil cuando las imágenes viven en S3.
	Media        MediaOpener
	// Metrics nil desactiva /metrics.
	Metrics      *Metrics
	Policy       access.Policy
	SecureCookie bool
	Log          *logger.Logger
}

// Router registra middlewares y rutas.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})

	if deps.Metrics != nil {
		app.Get("/metrics", deps.Metrics.Handler())
		app.Use(deps.Metrics.Middleware())
	}

	app.Use(RequestLogger(deps.Log))
	app.Use(SessionMiddleware(deps.Sessions, deps.Log))
	app.Use(PageViewTracker(deps.PageViews, deps.Log))
	app.Use(AccessControl(deps.Policy))

	// Catálogo público
	catalogHandler := NewCatalogHandler(deps.Catalog)
	app.Get("/", catalogHandler.Home)
	app.Get("/featured/", catalogHandler.Featured)
	app.Get("/products/", catalogHandler.Products)
	app.Get("/products/:category_slug/", catalogHandler.Products)
	app.Get("/product/:id/:slug/", catalogHandler.ProductDetail)
	app.Get("/get-stores/", catalogHandler.StoresByCity)
	app.Get("/search/suggestions/", catalogHandler.Suggestions)
	app.Get("/contacts/", catalogHandler.Contacts)
	app.Get("/privacy/", catalogHandler.Privacy)

	// Sesión
	authHandler := NewAuthHandler(deps.Auth, deps.SecureCookie)
	app.Get("/login/", authHandler.LoginPage)
	app.Post("/login/", authHandler.Login)
	app.Post("/signup/", authHandler.SignupCustomer)
	app.Post("/signup/customer/", authHandler.SignupCustomer)
	app.Post("/customer/signup/", authHandler.SignupCustomer)
	app.Post("/signup/manager/", authHandler.SignupManager)
	app.Post("/manager/signup/", authHandler.SignupManager)
	app.Post("/logout/", authHandler.Logout)
	app.Get("/me/", authHandler.Me)

	// Manager (AccessControl ya exige rol MANAGER bajo /manager/)
	manager := app.Group("/manager")
	dashboardHandler := NewDashboardHandler(deps.Products, deps.Logs)
	productHandler := NewProductHandler(deps.Products)
	manager.Get("/dashboard/", dashboardHandler.Dashboard)
	manager.Get("/stats/", dashboardHandler.Stats)
	manager.Get("/logs/", dashboardHandler.Logs)
	manager.Get("/logs/pdf/", dashboardHandler.LogsPDF)
	manager.Post("/create-product/", productHandler.Create)
	manager.Get("/products/:id/", productHandler.GetByID)
	manager.Put("/products/:id/", productHandler.Update)
	manager.Post("/products/:id/availability/", productHandler.SetAvailability)
	manager.Post("/products/:id/image/", productHandler.UploadImage)
	manager.Post("/delete-products/", productHandler.Delete)
	manager.Post("/deactivate-products/", productHandler.Deactivate)

	// Cliente
	customer := app.Group("/customer")
	customerHandler := NewCustomerHandler(deps.Favorites)
	customer.Get("/dashboard/", customerHandler.Dashboard)
	customer.Get("/favorites/", customerHandler.Favorites)
	customer.Post("/favorites/toggle/", customerHandler.ToggleFavorite)

	// Administración (fuera de la política de acceso; solo ADMIN o superusuario)
	admin := app.Group("/admin/api", RequireRole(entity.RoleAdmin))
	adminHandler := NewAdminHandler(deps.Identity, deps.Stores)
	admin.Post("/users/", adminHandler.CreateUser)
	admin.Put("/users/:id/", adminHandler.UpdateUser)
	admin.Get("/stores/", adminHandler.ListStores)
	admin.Post("/stores/", adminHandler.CreateStore)
	admin.Put("/stores/:id/hours/", adminHandler.SetHours)

	if deps.Media != nil {
		app.Get("/media/*", NewMediaHandler(deps.Media).Serve)
	}
}
