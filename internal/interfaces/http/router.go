package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Mantenix-api/internal/application/analytics"
	"github.com/jhoicas/Mantenix-api/internal/application/billing"
	"github.com/jhoicas/Mantenix-api/internal/application/inventory"
	"github.com/jhoicas/Mantenix-api/internal/application/pipeline"
	"github.com/jhoicas/Mantenix-api/internal/application/procurement"
	"github.com/jhoicas/Mantenix-api/internal/application/usecase"
	"github.com/jhoicas/Mantenix-api/internal/application/workorder"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ClientUC      *usecase.ClientUseCase
	AssetUC       *usecase.AssetUseCase
	TechnicianUC  *usecase.TechnicianUseCase
	InventoryUC   *inventory.UseCase
	PipelineUC    *pipeline.UseCase
	WorkOrderUC   *workorder.UseCase
	ProcurementUC *procurement.UseCase
	BillingUC     *billing.UseCase
	DashboardUC   *analytics.DashboardUseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Clients
	clients := api.Group("/clients")
	clientHandler := NewClientHandler(deps.ClientUC)
	clients.Post("/", clientHandler.Create)
	clients.Get("/", clientHandler.List)
	clients.Get("/:id", clientHandler.GetByID)
	clients.Put("/:id", clientHandler.Update)
	clients.Delete("/:id", clientHandler.Delete)

	// Assets
	assets := api.Group("/assets")
	assetHandler := NewAssetHandler(deps.AssetUC)
	assets.Post("/", assetHandler.Create)
	assets.Get("/", assetHandler.List)
	assets.Get("/:id", assetHandler.GetByID)
	assets.Put("/:id", assetHandler.Update)
	assets.Delete("/:id", assetHandler.Delete)

	// Technicians
	technicians := api.Group("/technicians")
	technicianHandler := NewTechnicianHandler(deps.TechnicianUC)
	technicians.Post("/", technicianHandler.Create)
	technicians.Get("/", technicianHandler.List)
	technicians.Get("/:id", technicianHandler.GetByID)
	technicians.Put("/:id", technicianHandler.Update)
	technicians.Delete("/:id", technicianHandler.Delete)

	// Inventory (repuestos + libro de stock)
	items := api.Group("/inventory/items")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	items.Post("/", inventoryHandler.RegisterPart)
	items.Get("/", inventoryHandler.List)
	items.Get("/low-stock", inventoryHandler.ListLowStock)
	items.Get("/:id", inventoryHandler.GetByID)
	items.Post("/:id/transactions", inventoryHandler.RegisterTransaction)
	items.Get("/:id/transactions", inventoryHandler.ListTransactions)

	// Pipeline comercial
	cases := api.Group("/pipeline/cases")
	pipelineHandler := NewPipelineHandler(deps.PipelineUC)
	cases.Post("/", pipelineHandler.Create)
	cases.Get("/", pipelineHandler.List)
	cases.Get("/:id", pipelineHandler.GetByID)
	cases.Post("/:id/survey", pipelineHandler.ScheduleSurvey)
	cases.Post("/:id/survey-report", pipelineHandler.SubmitSurveyReport)
	cases.Post("/:id/line-items", pipelineHandler.AddQuoteLineItem)
	cases.Delete("/:id/line-items/:lineId", pipelineHandler.RemoveQuoteLineItem)
	cases.Post("/:id/finalize-quote", pipelineHandler.FinalizeQuote)
	cases.Post("/:id/approve", pipelineHandler.Approve)
	cases.Post("/:id/lose", pipelineHandler.MarkLost)
	cases.Post("/:id/convert", pipelineHandler.Convert)

	// Órdenes de servicio
	workOrders := api.Group("/work-orders")
	workOrderHandler := NewWorkOrderHandler(deps.WorkOrderUC)
	workOrders.Post("/", workOrderHandler.Create)
	workOrders.Get("/", workOrderHandler.List)
	workOrders.Get("/:id", workOrderHandler.GetByID)
	workOrders.Put("/:id/technician", workOrderHandler.AssignTechnician)
	workOrders.Post("/:id/tasks", workOrderHandler.AddTask)
	workOrders.Patch("/:id/tasks/:taskId/toggle", workOrderHandler.ToggleTask)
	workOrders.Patch("/:id/status", workOrderHandler.SetStatus)
	workOrders.Post("/:id/images", workOrderHandler.AttachImage)
	workOrders.Post("/:id/parts", workOrderHandler.AddPartUsage)
	workOrders.Delete("/:id/parts/:usageId", workOrderHandler.RemovePartUsage)

	// Compras
	procurementHandler := NewProcurementHandler(deps.ProcurementUC)
	requests := api.Group("/procurement/requests")
	requests.Post("/", procurementHandler.CreateRequest)
	requests.Get("/", procurementHandler.ListRequests)
	requests.Get("/:id", procurementHandler.GetRequest)
	requests.Post("/:id/decision", procurementHandler.Decide)
	requests.Post("/:id/convert", procurementHandler.ConvertToOrder)
	orders := api.Group("/procurement/orders")
	orders.Get("/", procurementHandler.ListOrders)
	orders.Get("/:id", procurementHandler.GetOrder)
	orders.Post("/:id/receive", procurementHandler.ReceiveGoods)
	orders.Post("/:id/cancel", procurementHandler.CancelOrder)

	// Facturación
	invoices := api.Group("/invoices")
	billingHandler := NewBillingHandler(deps.BillingUC)
	invoices.Post("/", billingHandler.Create)
	invoices.Get("/", billingHandler.List)
	invoices.Get("/:id", billingHandler.GetByID)
	invoices.Patch("/:id/status", billingHandler.SetStatus)
	invoices.Get("/:id/pdf", billingHandler.GetPDF)

	// Dashboard
	dashboard := api.Group("/dashboard")
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	dashboard.Get("/summary", dashboardHandler.GetSummary)
	dashboard.Get("/stock-report", dashboardHandler.GetStockReport)
}
