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

	"github.com/taechang/erp-api/internal/application/usecase"
	infraetax "github.com/taechang/erp-api/internal/infrastructure/etax"
	infraexcel "github.com/taechang/erp-api/internal/infrastructure/excel"
	infrapdf "github.com/taechang/erp-api/internal/infrastructure/pdf"
	"github.com/taechang/erp-api/internal/infrastructure/postgres"
	httpRouter "github.com/taechang/erp-api/internal/interfaces/http"
	"github.com/taechang/erp-api/pkg/config"
	"github.com/taechang/erp-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("load configuration: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: "info",
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("starting application")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("PostgreSQL connection")
	}
	defer pool.Close()

	itemRepo := postgres.NewItemRepository(pool)
	companyRepo := postgres.NewCompanyRepository(pool)
	bomRepo := postgres.NewBOMRepository(pool)
	invRepo := postgres.NewInventoryRepository(pool)
	priceRepo := postgres.NewPriceRepository(pool)
	processRepo := postgres.NewProcessRepository(pool)
	tradeRepo := postgres.NewTradeRepository(pool)
	settlementRepo := postgres.NewSettlementRepository(pool)
	summaryRepo := postgres.NewAccountingSummaryRepository(pool)
	contractRepo := postgres.NewContractRepository(pool)
	userRepo := postgres.NewUserRepository(pool)
	reportRepo := postgres.NewStockReportRepository(pool)
	dashboardRepo := postgres.NewDashboardRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	summaryPDF := infrapdf.NewSummaryRenderer()
	taxInvoice := infraetax.NewInvoiceBuilder(infraetax.SupplierInfo{
		BusinessNo: cfg.Company.BusinessNo,
		Name:       cfg.Company.Name,
		CEOName:    cfg.Company.CEOName,
		Address:    cfg.Company.Address,
	})

	excelUC := usecase.NewExcelUsecase(
		itemRepo, companyRepo, bomRepo, priceRepo, reportRepo,
		infraexcel.NewBOMWorkbook(),
		infraexcel.NewItemWorkbook(),
		infraexcel.NewPriceWorkbook(),
		infraexcel.NewStockReportWorkbook(),
		infraexcel.NewLegacyCSV(),
	)

	deps := httpRouter.RouterDeps{
		ItemUC:       usecase.NewItemUsecase(itemRepo),
		CompanyUC:    usecase.NewCompanyUsecase(companyRepo),
		BOMUC:        usecase.NewBOMUsecase(bomRepo, itemRepo, priceRepo),
		InventoryUC:  usecase.NewInventoryUsecase(txRunner, invRepo, itemRepo, reportRepo),
		PriceUC:      usecase.NewPriceUsecase(priceRepo, itemRepo),
		ProcessUC:    usecase.NewProcessUsecase(processRepo, itemRepo, txRunner),
		AccountingUC: usecase.NewAccountingUsecase(tradeRepo, settlementRepo, summaryRepo, companyRepo, itemRepo, summaryPDF, taxInvoice),
		ContractUC:   usecase.NewContractUsecase(contractRepo, companyRepo),
		DashboardUC:  usecase.NewDashboardUsecase(dashboardRepo, contractRepo, itemRepo, log),
		ExcelUC:      excelUC,
		AuthUC:       usecase.NewAuthUsecase(userRepo, cfg.JWT),
		JWTSecret:    cfg.JWT.Secret,
	}

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
		BodyLimit:    20 * 1024 * 1024, // Excel uploads
	})
	app.Use(recover.New())

	// Swagger UI: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Taechang ERP API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, deps)

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("HTTP server stopped")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutdown signal received, stopping server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server shutdown")
	}

	log.Info().Msg("application stopped")
}
