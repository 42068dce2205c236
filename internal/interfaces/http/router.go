package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain/entity"
)

// RouterDeps carries the wired usecases into the router.
type RouterDeps struct {
	ItemUC       *usecase.ItemUsecase
	CompanyUC    *usecase.CompanyUsecase
	BOMUC        *usecase.BOMUsecase
	InventoryUC  *usecase.InventoryUsecase
	PriceUC      *usecase.PriceUsecase
	ProcessUC    *usecase.ProcessUsecase
	AccountingUC *usecase.AccountingUsecase
	ContractUC   *usecase.ContractUsecase
	DashboardUC  *usecase.DashboardUsecase
	ExcelUC      *usecase.ExcelUsecase
	AuthUC       *usecase.AuthUsecase
	JWTSecret    string
}

// Router registers every API route. Everything except login sits behind the
// Bearer token; mutating routes additionally require the manager role and
// account management the admin role. Viewers read.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (login is public)
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup := api.Group("/auth")
	authGroup.Post("/login", authHandler.Login)

	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))
	writer := RequireRole(entity.RoleAdmin, entity.RoleManager)
	admin := RequireRole(entity.RoleAdmin)

	authGroup.Get("/me", AuthMiddleware(deps.JWTSecret), authHandler.Me)
	authGroup.Post("/register", AuthMiddleware(deps.JWTSecret), admin, authHandler.Register)
	authGroup.Put("/users/:id", AuthMiddleware(deps.JWTSecret), admin, authHandler.UpdateUser)

	// Items
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.ItemUC, deps.ExcelUC)
	items.Get("/", itemHandler.List)
	items.Post("/", writer, itemHandler.Create)
	items.Get("/export", itemHandler.Export)
	items.Post("/import", writer, itemHandler.Import)
	items.Post("/import-legacy", writer, itemHandler.ImportLegacyCSV)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", writer, itemHandler.Update)
	items.Delete("/:id", writer, itemHandler.Delete)

	// Companies
	companies := protected.Group("/companies")
	companyHandler := NewCompanyHandler(deps.CompanyUC)
	companies.Get("/", companyHandler.List)
	companies.Post("/", writer, companyHandler.Create)
	companies.Get("/:id", companyHandler.GetByID)
	companies.Put("/:id", writer, companyHandler.Update)
	companies.Delete("/:id", writer, companyHandler.Delete)

	// BOM
	bomGroup := protected.Group("/bom")
	bomHandler := NewBOMHandler(deps.BOMUC, deps.ExcelUC)
	bomGroup.Post("/", writer, bomHandler.Create)
	bomGroup.Post("/batch", writer, bomHandler.CreateBatch)
	bomGroup.Get("/validate", bomHandler.Validate)
	bomGroup.Get("/export", bomHandler.Export)
	bomGroup.Post("/import", writer, bomHandler.Import)
	bomGroup.Get("/parent/:parent_id", bomHandler.ListByParent)
	bomGroup.Get("/tree/:item_id", bomHandler.Tree)
	bomGroup.Get("/cost/:item_id", bomHandler.Cost)
	bomGroup.Put("/:id", writer, bomHandler.Update)
	bomGroup.Delete("/:id", writer, bomHandler.Delete)

	// Inventory
	inv := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC, deps.ExcelUC)
	inv.Post("/transactions", writer, inventoryHandler.Register)
	inv.Get("/transactions", inventoryHandler.History)
	inv.Get("/stock", inventoryHandler.StockStatus)
	inv.Get("/report", inventoryHandler.MonthlyReport)
	inv.Get("/report/export", inventoryHandler.MonthlyReportXLSX)
	inv.Get("/trace/:lot_no", inventoryHandler.Traceability)

	// Prices
	prices := protected.Group("/prices")
	priceHandler := NewPriceHandler(deps.PriceUC, deps.ExcelUC)
	prices.Post("/", writer, priceHandler.BulkUpsert)
	prices.Get("/", priceHandler.ListByMonth)
	prices.Get("/export", priceHandler.Export)
	prices.Post("/import", writer, priceHandler.Import)
	prices.Get("/item/:item_id", priceHandler.ListByItem)
	prices.Get("/resolve/:item_id", priceHandler.Resolve)
	prices.Delete("/:id", writer, priceHandler.Delete)

	// Processes
	processes := protected.Group("/processes")
	processHandler := NewProcessHandler(deps.ProcessUC)
	processes.Get("/", processHandler.List)
	processes.Post("/", writer, processHandler.Create)
	processes.Post("/run", writer, processHandler.Run)
	processes.Get("/:id", processHandler.GetByID)
	processes.Put("/:id", writer, processHandler.Update)
	processes.Delete("/:id", writer, processHandler.Delete)

	// Accounting
	acc := protected.Group("/accounting")
	accountingHandler := NewAccountingHandler(deps.AccountingUC)
	acc.Post("/trades", writer, accountingHandler.CreateTrade)
	acc.Get("/trades", accountingHandler.ListTrades)
	acc.Put("/trades/:id", writer, accountingHandler.UpdateTrade)
	acc.Delete("/trades/:id", writer, accountingHandler.DeleteTrade)
	acc.Get("/trades/:id/tax-invoice", accountingHandler.TaxInvoiceXML)
	acc.Post("/settlements", writer, accountingHandler.CreateSettlement)
	acc.Get("/settlements", accountingHandler.ListSettlements)
	acc.Delete("/settlements/:id", writer, accountingHandler.DeleteSettlement)
	acc.Get("/summary", accountingHandler.MonthlySummary)
	acc.Get("/summary/pdf", accountingHandler.MonthlySummaryPDF)

	// Contracts
	contracts := protected.Group("/contracts")
	contractHandler := NewContractHandler(deps.ContractUC)
	contracts.Get("/", contractHandler.List)
	contracts.Post("/", writer, contractHandler.Create)
	contracts.Get("/expiring", contractHandler.ListExpiring)
	contracts.Get("/:id", contractHandler.GetByID)
	contracts.Put("/:id", writer, contractHandler.Update)
	contracts.Delete("/:id", writer, contractHandler.Delete)

	// Dashboard
	dashboardHandler := NewDashboardHandler(deps.DashboardUC)
	protected.Get("/dashboard", dashboardHandler.Summary)
}
