package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/agropet/agropet-api/internal/application/auth"
	"github.com/agropet/agropet-api/internal/application/billing"
	appsub "github.com/agropet/agropet-api/internal/application/subscription"
	"github.com/agropet/agropet-api/internal/infrastructure/postgres"
	httpRouter "github.com/agropet/agropet-api/internal/interfaces/http"
	"github.com/agropet/agropet-api/pkg/config"
	"github.com/agropet/agropet-api/pkg/logger"
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

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	tenantRepo := postgres.NewTenantRepository(pool)
	planRepo := postgres.NewPlanRepository(pool)
	moduleRepo := postgres.NewTenantModuleRepository(pool)
	paymentRepo := postgres.NewPaymentRequestRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(txRunner, userRepo, tenantRepo, planRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	}, cfg.Billing.TrialDays)
	statusSvc := appsub.NewStatusService(tenantRepo, planRepo, moduleRepo)
	entitlementSvc := appsub.NewEntitlementService(tenantRepo, planRepo, moduleRepo)
	approvalUC := billing.NewApprovalUseCase(txRunner, paymentRepo, tenantRepo, billing.Operators(cfg.Billing.OperatorEmails))
	paymentsUC := billing.NewPaymentRequestUseCase(paymentRepo, tenantRepo, planRepo)

	// Barrido de morosidad: ACTIVE vencidos más allá de la gracia → PAST_DUE.
	sweeper := billing.NewOverdueSweeper(
		tenantRepo,
		cfg.Billing.GraceDays,
		time.Duration(cfg.Billing.SweepMinutes)*time.Minute,
		log,
	)
	go sweeper.Run(ctx)

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
		Title:    "AgroPet API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:      authUC,
		StatusSvc:   statusSvc,
		Entitlement: entitlementSvc,
		Approval:    approvalUC,
		Payments:    paymentsUC,
		PlanRepo:    planRepo,
		JWTSecret:   cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	<-ctx.Done()

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
