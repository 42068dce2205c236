package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
)

// PriceHandler serves the monthly price endpoints.
type PriceHandler struct {
	uc    *usecase.PriceUsecase
	excel *usecase.ExcelUsecase
}

// NewPriceHandler builds the handler.
func NewPriceHandler(uc *usecase.PriceUsecase, excel *usecase.ExcelUsecase) *PriceHandler {
	return &PriceHandler{uc: uc, excel: excel}
}

// BulkUpsert godoc
// @Summary      Set prices for one month (idempotent)
// @Tags         prices
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkUpsertPricesRequest  true  "Month and prices"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/prices [post]
func (h *PriceHandler) BulkUpsert(c *fiber.Ctx) error {
	var in dto.BulkUpsertPricesRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.BulkUpsert(&in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListByMonth godoc
// @Summary      List stored prices for one month
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  true  "Month YYYY-MM"
// @Success      200  {object}  dto.PriceListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/prices [get]
func (h *PriceHandler) ListByMonth(c *fiber.Ctx) error {
	out, err := h.uc.ListByMonth(c.Query("month"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListByItem godoc
// @Summary      Price history of one item
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        item_id  path  string  true  "Item id"
// @Success      200  {array}  dto.PriceResponse
// @Router       /api/prices/item/{item_id} [get]
func (h *PriceHandler) ListByItem(c *fiber.Ctx) error {
	out, err := h.uc.ListByItem(c.Params("item_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Resolve godoc
// @Summary      Effective price of an item for a month (carry-forward)
// @Tags         prices
// @Security     Bearer
// @Produce      json
// @Param        item_id  path   string  true  "Item id"
// @Param        month    query  string  true  "Month YYYY-MM"
// @Success      200  {object}  dto.ResolvedPriceResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/prices/resolve/{item_id} [get]
func (h *PriceHandler) Resolve(c *fiber.Ctx) error {
	out, err := h.uc.Resolve(c.Params("item_id"), c.Query("month"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete one price row
// @Tags         prices
// @Security     Bearer
// @Param        id  path  string  true  "Price row id"
// @Success      204
// @Router       /api/prices/{id} [delete]
func (h *PriceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Import godoc
// @Summary      Import one month's prices from xlsx
// @Tags         prices
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        month  query     string  true  "Month YYYY-MM"
// @Param        file   formData  file    true  "Price workbook"
// @Success      200  {object}  dto.ImportResult
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/prices/import [post]
func (h *PriceHandler) Import(c *fiber.Ctx) error {
	data, err := uploadedFile(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.excel.ImportPrices(c.Query("month"), data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Export one month's prices as xlsx
// @Tags         prices
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        month  query  string  true  "Month YYYY-MM"
// @Success      200  {file}  binary
// @Router       /api/prices/export [get]
func (h *PriceHandler) Export(c *fiber.Ctx) error {
	month := c.Query("month")
	data, err := h.excel.ExportPrices(month)
	if err != nil {
		return fail(c, err)
	}
	return sendXLSX(c, "prices-"+month+".xlsx", data)
}
