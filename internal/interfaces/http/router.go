package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/jsresto/convenios-api/internal/application/auth"
	"github.com/jsresto/convenios-api/internal/application/billing"
	"github.com/jsresto/convenios-api/internal/application/forecast"
	"github.com/jsresto/convenios-api/internal/application/ledger"
	"github.com/jsresto/convenios-api/internal/application/pos"
	"github.com/jsresto/convenios-api/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC        *auth.AuthUseCase
	UserUC        *usecase.UserUseCase
	AgreementUC   *usecase.AgreementUseCase
	EmployeeUC    *usecase.EmployeeUseCase
	ProductUC     *usecase.ProductUseCase
	ConsumptionUC *ledger.ConsumptionUseCase
	ClosePeriod   *billing.ClosePeriodUseCase
	ForecastUC    *forecast.ForecastUseCase
	SaleUC        *pos.SaleUseCase
	CashierUC     *pos.CashierUseCase
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (público)
	authHandler := NewAuthHandler(deps.AuthUC)
	api.Post("/auth/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Operadores (solo ADMIN)
	userHandler := NewUserHandler(deps.UserUC)
	protected.Get("/users", RequireAdmin(), userHandler.List)
	protected.Post("/users", RequireAdmin(), userHandler.Upsert)

	// Convenios
	agreements := protected.Group("/agreements")
	agreementHandler := NewAgreementHandler(deps.AgreementUC)
	agreements.Get("/", agreementHandler.List)
	agreements.Post("/", agreementHandler.Upsert)

	// Funcionarios de convenio
	employees := protected.Group("/employees")
	employeeHandler := NewEmployeeHandler(deps.EmployeeUC)
	employees.Get("/", employeeHandler.List)
	employees.Post("/", employeeHandler.Upsert)

	// Libro de consumos
	consumptions := protected.Group("/consumptions")
	consumptionHandler := NewConsumptionHandler(deps.ConsumptionUC)
	consumptions.Get("/", consumptionHandler.List)
	consumptions.Post("/", consumptionHandler.Record)
	consumptions.Post("/daily", consumptionHandler.DailyLaunch)
	consumptions.Delete("/:id", consumptionHandler.Void)

	// Facturas y cierre de período
	invoices := protected.Group("/invoices")
	invoiceHandler := NewInvoiceHandler(deps.ClosePeriod)
	invoices.Get("/", invoiceHandler.List)
	invoices.Post("/close-period", invoiceHandler.ClosePeriod)

	// Proyección de ingresos
	forecastHandler := NewForecastHandler(deps.ForecastUC)
	protected.Get("/forecast", forecastHandler.Summary)

	// Catálogo de productos
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Get("/", productHandler.List)
	products.Post("/", productHandler.Upsert)
	products.Delete("/:id", productHandler.Delete)

	// Ventas del PDV
	sales := protected.Group("/sales")
	saleHandler := NewSaleHandler(deps.SaleUC)
	sales.Get("/", saleHandler.List)
	sales.Post("/", saleHandler.Save)
	sales.Post("/:id/cancel", saleHandler.Cancel)

	// Caja
	cashier := protected.Group("/cashier")
	cashierHandler := NewCashierHandler(deps.CashierUC)
	cashier.Get("/sessions", cashierHandler.ListSessions)
	cashier.Get("/current", cashierHandler.Current)
	cashier.Post("/open", cashierHandler.Open)
	cashier.Post("/close", cashierHandler.Close)
	cashier.Get("/movements", cashierHandler.ListMovements)
	cashier.Post("/movements", cashierHandler.AddMovement)
}
