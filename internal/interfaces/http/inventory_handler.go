package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// InventoryHandler serves the inventory ledger endpoints.
type InventoryHandler struct {
	uc    *usecase.InventoryUsecase
	excel *usecase.ExcelUsecase
}

// NewInventoryHandler builds the handler.
func NewInventoryHandler(uc *usecase.InventoryUsecase, excel *usecase.ExcelUsecase) *InventoryHandler {
	return &InventoryHandler{uc: uc, excel: excel}
}

// Register godoc
// @Summary      Register an inventory transaction
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterTransactionRequest  true  "Transaction"
// @Success      201   {object}  dto.TransactionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/inventory/transactions [post]
func (h *InventoryHandler) Register(c *fiber.Ctx) error {
	var in dto.RegisterTransactionRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Register(c.Context(), &in, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// History godoc
// @Summary      List inventory transactions
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        item_id  query  string  false  "Item id"
// @Param        type     query  string  false  "Transaction type"
// @Param        lot_no   query  string  false  "Lot number"
// @Param        from     query  string  false  "Date from (RFC3339 or YYYY-MM-DD)"
// @Param        to       query  string  false  "Date to"
// @Param        limit    query  int     false  "Limit"   default(20)
// @Param        offset   query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TransactionListResponse
// @Router       /api/inventory/transactions [get]
func (h *InventoryHandler) History(c *fiber.Ctx) error {
	filter := repository.TransactionFilter{
		ItemID:          c.Query("item_id"),
		TransactionType: c.Query("type"),
		LotNo:           c.Query("lot_no"),
		DateFrom:        parseDate(c.Query("from")),
		DateTo:          parseDate(c.Query("to")),
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.History(filter, page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// StockStatus godoc
// @Summary      Current stock status
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        category  query  string  false  "Item category"
// @Param        search    query  string  false  "Code or name search"
// @Param        low_only  query  bool    false  "Only items under safety stock"
// @Param        limit     query  int     false  "Limit"   default(20)
// @Param        offset    query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.StockStatusResponse
// @Router       /api/inventory/stock [get]
func (h *InventoryHandler) StockStatus(c *fiber.Ctx) error {
	filter := repository.ItemFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.StockStatus(filter, c.QueryBool("low_only", false), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MonthlyReport godoc
// @Summary      Monthly stock report
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  true  "Month YYYY-MM"
// @Success      200  {object}  dto.MonthlyStockReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/report [get]
func (h *InventoryHandler) MonthlyReport(c *fiber.Ctx) error {
	out, err := h.uc.MonthlyReport(c.Context(), c.Query("month"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MonthlyReportXLSX godoc
// @Summary      Monthly stock report as xlsx
// @Tags         inventory
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        month  query  string  true  "Month YYYY-MM"
// @Success      200  {file}  binary
// @Router       /api/inventory/report/export [get]
func (h *InventoryHandler) MonthlyReportXLSX(c *fiber.Ctx) error {
	month := c.Query("month")
	data, err := h.excel.ExportMonthlyStockReport(c.Context(), month)
	if err != nil {
		return fail(c, err)
	}
	return sendXLSX(c, "stock-report-"+month+".xlsx", data)
}

// Traceability godoc
// @Summary      Ledger rows sharing one lot number
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        lot_no  path  string  true  "Lot number"
// @Success      200  {object}  dto.TraceabilityResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/trace/{lot_no} [get]
func (h *InventoryHandler) Traceability(c *fiber.Ctx) error {
	out, err := h.uc.Traceability(c.Params("lot_no"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// parseDate accepts RFC3339 or plain dates; a zero time means no bound.
func parseDate(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t
	}
	return time.Time{}
}
