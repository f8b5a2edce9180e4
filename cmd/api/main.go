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

	"github.com/jhoicas/Mantenix-api/internal/application/analytics"
	"github.com/jhoicas/Mantenix-api/internal/application/billing"
	"github.com/jhoicas/Mantenix-api/internal/application/inventory"
	"github.com/jhoicas/Mantenix-api/internal/application/pipeline"
	"github.com/jhoicas/Mantenix-api/internal/application/procurement"
	"github.com/jhoicas/Mantenix-api/internal/application/usecase"
	"github.com/jhoicas/Mantenix-api/internal/application/workorder"
	infraexcel "github.com/jhoicas/Mantenix-api/internal/infrastructure/excel"
	infrapdf "github.com/jhoicas/Mantenix-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Mantenix-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Mantenix-api/internal/interfaces/http"
	"github.com/jhoicas/Mantenix-api/pkg/config"
	"github.com/jhoicas/Mantenix-api/pkg/logger"
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
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	// Repositorios sobre el pool (las operaciones multi-tabla usan el TxRunner,
	// que re-liga los repositorios a la transacción).
	clientRepo := postgres.NewClientRepository(pool)
	assetRepo := postgres.NewAssetRepository(pool)
	technicianRepo := postgres.NewTechnicianRepository(pool)
	itemRepo := postgres.NewInventoryItemRepository(pool)
	stockRepo := postgres.NewStockTransactionRepository(pool)
	caseRepo := postgres.NewPipelineCaseRepository(pool)
	woRepo := postgres.NewWorkOrderRepository(pool)
	invoiceRepo := postgres.NewInvoiceRepository(pool)
	prRepo := postgres.NewPurchaseRequestRepository(pool)
	poRepo := postgres.NewPurchaseOrderRepository(pool)
	reportRepo := postgres.NewReportRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	clientUC := usecase.NewClientUseCase(clientRepo)
	assetUC := usecase.NewAssetUseCase(assetRepo)
	technicianUC := usecase.NewTechnicianUseCase(technicianRepo)

	inventoryUC := inventory.NewUseCase(txRunner, itemRepo, stockRepo)
	pipelineUC := pipeline.NewUseCase(txRunner, caseRepo)
	workOrderUC := workorder.NewUseCase(txRunner, woRepo, inventoryUC)
	procurementUC := procurement.NewUseCase(txRunner, prRepo, poRepo, inventoryUC)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator()
	billingUC := billing.NewUseCase(invoiceRepo, clientRepo, pdfGenerator)

	stockExporter := infraexcel.NewStockReportExporter()
	dashboardUC := analytics.NewDashboardUseCase(reportRepo, stockExporter)

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
		Title:    "Mantenix API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ClientUC:      clientUC,
		AssetUC:       assetUC,
		TechnicianUC:  technicianUC,
		InventoryUC:   inventoryUC,
		PipelineUC:    pipelineUC,
		WorkOrderUC:   workOrderUC,
		ProcurementUC: procurementUC,
		BillingUC:     billingUC,
		DashboardUC:   dashboardUC,
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
