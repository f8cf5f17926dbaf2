package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/Tienda-api/internal/application/access"
	"github.com/jhoicas/Tienda-api/internal/application/analytics"
	"github.com/jhoicas/Tienda-api/internal/application/auth"
	"github.com/jhoicas/Tienda-api/internal/application/catalog"
	"github.com/jhoicas/Tienda-api/internal/application/identity"
	"github.com/jhoicas/Tienda-api/internal/application/ports"
	"github.com/jhoicas/Tienda-api/internal/application/usecase"
	"github.com/jhoicas/Tienda-api/internal/application/validation"
	infrapdf "github.com/jhoicas/Tienda-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/postgres"
	infraredis "github.com/jhoicas/Tienda-api/internal/infrastructure/redis"
	"github.com/jhoicas/Tienda-api/internal/infrastructure/storage"
	httpRouter "github.com/jhoicas/Tienda-api/internal/interfaces/http"
	"github.com/jhoicas/Tienda-api/pkg/config"
	"github.com/jhoicas/Tienda-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("timezone", cfg.App.Timezone).
		Msg("iniciando aplicación")

	ctx := context.Background()

	if cfg.DB.AutoMigrate {
		if err := postgres.ApplyMigrations(ctx, postgres.ConnString(cfg.DB)); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
		log.Info().Msg("migraciones aplicadas")
	}

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	categoryRepo := postgres.NewCategoryRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	customerRepo := postgres.NewCustomerRepository(pool)
	favoriteRepo := postgres.NewFavoriteRepository(pool)
	actionLogRepo := postgres.NewActionLogRepository(pool)
	pageViewRepo := postgres.NewPageViewRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	// Sesiones: sin Redis el JWT es la única fuente de verdad y logout no revoca.
	var sessionStore auth.SessionStore
	if cfg.Redis.Enabled() {
		client, err := infraredis.NewClient(ctx, cfg.Redis)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a Redis")
		}
		defer client.Close()
		sessionStore = infraredis.NewSessionStore(client)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("sesiones en Redis")
	}

	// Imágenes: S3/MinIO si hay bucket configurado; si no, disco local servido en /media/.
	var images ports.ImageStorage
	var media httpRouter.MediaOpener
	if cfg.S3.Enabled() {
		s3Storage, err := storage.NewS3Storage(ctx, cfg.S3, log.Component("s3"))
		if err != nil {
			log.Fatal().Err(err).Msg("almacenamiento S3")
		}
		images = s3Storage
	} else {
		if err := os.MkdirAll(cfg.Media.Root, 0o755); err != nil {
			log.Fatal().Err(err).Str("root", cfg.Media.Root).Msg("directorio de media")
		}
		local := storage.NewLocalStorage(cfg.Media.Root)
		images = local
		media = local
	}

	loc := cfg.App.Location()
	validate := validation.New()

	sessions := auth.NewSessionManager(auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, sessionStore, userRepo)
	identitySvc := identity.NewService(txRunner, validate)
	authUC := auth.NewAuthUseCase(auth.NewAuthenticator(userRepo), identitySvc, userRepo, sessions)

	favoriteUC := usecase.NewFavoriteUseCase(favoriteRepo, productRepo, customerRepo, userRepo, images)
	catalogSvc := catalog.NewService(productRepo, categoryRepo, storeRepo, favoriteUC, images, loc)
	productUC := usecase.NewProductUseCase(productRepo, categoryRepo, storeRepo, userRepo, txRunner, images, validate)
	actionLogUC := usecase.NewActionLogUseCase(actionLogRepo, infrapdf.NewMarotoPDFGenerator(cfg.PDF.FontPath), loc)
	storeUC := usecase.NewStoreUseCase(storeRepo, validate, loc)
	pageViewUC := analytics.NewPageViewUseCase(pageViewRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    6 * 1024 * 1024,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Tienda API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		Auth:         authUC,
		Sessions:     sessions,
		Catalog:      catalogSvc,
		Products:     productUC,
		Logs:         actionLogUC,
		Favorites:    favoriteUC,
		Identity:     identitySvc,
		Stores:       storeUC,
		PageViews:    pageViewUC,
		Media:        media,
		Metrics:      httpRouter.NewMetrics(),
		Policy:       access.DefaultPolicy(),
		SecureCookie: cfg.HTTP.SecureCookie,
		Log:          log.Component("http"),
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
