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

	"github.com/assetverse/assetverse-api/internal/application/auth"
	"github.com/assetverse/assetverse-api/internal/application/billing"
	"github.com/assetverse/assetverse-api/internal/application/requests"
	"github.com/assetverse/assetverse-api/internal/application/usecase"
	"github.com/assetverse/assetverse-api/internal/infrastructure/identity"
	infrapdf "github.com/assetverse/assetverse-api/internal/infrastructure/pdf"
	"github.com/assetverse/assetverse-api/internal/infrastructure/postgres"
	"github.com/assetverse/assetverse-api/internal/infrastructure/stripepay"
	httpRouter "github.com/assetverse/assetverse-api/internal/interfaces/http"
	"github.com/assetverse/assetverse-api/pkg/config"
	"github.com/assetverse/assetverse-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	if err := postgres.Migrate(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	requestRepo := postgres.NewRequestRepository(pool)
	affiliationRepo := postgres.NewAffiliationRepository(pool)
	packageRepo := postgres.NewPackageRepository(pool)
	paymentRepo := postgres.NewPaymentRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	verifier, err := identity.NewFirebaseVerifier(ctx, cfg.Firebase.CredentialsFile, cfg.Firebase.ProjectID)
	if err != nil {
		log.Fatal().Err(err).Msg("proveedor de identidad")
	}
	gateway := stripepay.NewGateway(cfg.Stripe.SecretKey)
	receipts := infrapdf.NewMarotoReceiptGenerator()

	authUC := auth.NewAuthUseCase(verifier, userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	assetUC := usecase.NewAssetUseCase(assetRepo)
	teamUC := usecase.NewTeamUseCase(affiliationRepo, userRepo, requestRepo)
	lifecycleUC := requests.NewLifecycleUseCase(txRunner, requestRepo, assetRepo, userRepo)
	billingUC := billing.NewBillingUseCase(
		txRunner, gateway, receipts,
		packageRepo, paymentRepo, userRepo,
		billing.URLConfig{ClientURL: cfg.Stripe.ClientURL},
	)

	if err := billingUC.SeedPackages(); err != nil {
		log.Fatal().Err(err).Msg("seed del catálogo de paquetes")
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "AssetVerse API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		AssetUC:     assetUC,
		TeamUC:      teamUC,
		LifecycleUC: lifecycleUC,
		BillingUC:   billingUC,
		Users:       userRepo,
		JWTSecret:   cfg.JWT.Secret,
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
