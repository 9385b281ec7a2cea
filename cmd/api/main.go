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
	"github.com/jsresto/convenios-api/internal/application/auth"
	"github.com/jsresto/convenios-api/internal/application/billing"
	"github.com/jsresto/convenios-api/internal/application/forecast"
	"github.com/jsresto/convenios-api/internal/application/ledger"
	"github.com/jsresto/convenios-api/internal/application/pos"
	"github.com/jsresto/convenios-api/internal/application/usecase"
	"github.com/jsresto/convenios-api/internal/infrastructure/postgres"
	httpRouter "github.com/jsresto/convenios-api/internal/interfaces/http"
	"github.com/jsresto/convenios-api/pkg/config"
	"github.com/jsresto/convenios-api/pkg/logger"
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

	if cfg.DB.MigrationsDir != "" {
		if err := postgres.Migrate(cfg.DB.ConnectionString(), cfg.DB.MigrationsDir); err != nil {
			log.Fatal().Err(err).Msg("migraciones")
		}
	}

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	userRepo := postgres.NewUserRepository(pool)
	agreementRepo := postgres.NewAgreementRepository(pool)
	employeeRepo := postgres.NewEmployeeRepository(pool)
	consumptionRepo := postgres.NewConsumptionRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	saleRepo := postgres.NewSaleRepository(pool)
	cashRepo := postgres.NewCashRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	authUC := auth.NewAuthUseCase(userRepo, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})
	userUC := usecase.NewUserUseCase(userRepo)
	agreementUC := usecase.NewAgreementUseCase(agreementRepo)
	employeeUC := usecase.NewEmployeeUseCase(employeeRepo, agreementRepo)
	productUC := usecase.NewProductUseCase(productRepo)
	consumptionUC := ledger.NewConsumptionUseCase(consumptionRepo, agreementRepo)
	closePeriodUC := billing.NewClosePeriodUseCase(txRunner, agreementRepo, invoiceRepo)
	forecastUC := forecast.NewForecastUseCase(agreementRepo, invoiceRepo, consumptionRepo)
	saleUC := pos.NewSaleUseCase(txRunner, saleRepo, agreementRepo)
	cashierUC := pos.NewCashierUseCase(cashRepo)

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
		Title:    "Convenios API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:        authUC,
		UserUC:        userUC,
		AgreementUC:   agreementUC,
		EmployeeUC:    employeeUC,
		ProductUC:     productUC,
		ConsumptionUC: consumptionUC,
		ClosePeriod:   closePeriodUC,
		ForecastUC:    forecastUC,
		SaleUC:        saleUC,
		CashierUC:     cashierUC,
		JWTSecret:     cfg.JWT.Secret,
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
