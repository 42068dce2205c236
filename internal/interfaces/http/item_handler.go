package http

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// ItemHandler serves the item master endpoints.
type ItemHandler struct {
	uc    *usecase.ItemUsecase
	excel *usecase.ExcelUsecase
}

// NewItemHandler builds the handler.
func NewItemHandler(uc *usecase.ItemUsecase, excel *usecase.ExcelUsecase) *ItemHandler {
	return &ItemHandler{uc: uc, excel: excel}
}

// Create godoc
// @Summary      Create item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateItemRequest  true  "Item data"
// @Success      201   {object}  dto.ItemResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/items [post]
func (h *ItemHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(&in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetByID godoc
// @Summary      Get item by id
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Item id"
// @Success      200  {object}  dto.ItemResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [get]
func (h *ItemHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List items
// @Tags         items
// @Security     Bearer
// @Produce      json
// @Param        category        query  string  false  "Item category"
// @Param        inventory_type  query  string  false  "Inventory type"
// @Param        search          query  string  false  "Code or name search"
// @Param        limit           query  int     false  "Limit"   default(20)
// @Param        offset          query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ItemListResponse
// @Router       /api/items [get]
func (h *ItemHandler) List(c *fiber.Ctx) error {
	filter := repository.ItemFilter{
		Category:      c.Query("category"),
		InventoryType: c.Query("inventory_type"),
		Search:        c.Query("search"),
		IncludeUnused: c.QueryBool("include_unused", false),
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(filter, page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update item
// @Tags         items
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Item id"
// @Param        body  body  dto.UpdateItemRequest  true  "Fields to update"
// @Success      200   {object}  dto.ItemResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/items/{id} [put]
func (h *ItemHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateItemRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Update(c.Params("id"), &in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Soft-delete item
// @Tags         items
// @Security     Bearer
// @Param        id  path  string  true  "Item id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/items/{id} [delete]
func (h *ItemHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Export godoc
// @Summary      Export items as xlsx
// @Tags         items
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/items/export [get]
func (h *ItemHandler) Export(c *fiber.Ctx) error {
	filter := repository.ItemFilter{
		Category: c.Query("category"),
		Search:   c.Query("search"),
	}
	data, err := h.excel.ExportItems(filter)
	if err != nil {
		return fail(c, err)
	}
	return sendXLSX(c, "items.xlsx", data)
}

// Import godoc
// @Summary      Import items from xlsx (upsert by item code)
// @Tags         items
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Workbook"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/import [post]
func (h *ItemHandler) Import(c *fiber.Ctx) error {
	data, err := uploadedFile(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.excel.ImportItems(data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ImportLegacyCSV godoc
// @Summary      Import items from the legacy EUC-KR CSV
// @Tags         items
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/items/import-legacy [post]
func (h *ItemHandler) ImportLegacyCSV(c *fiber.Ctx) error {
	data, err := uploadedFile(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.excel.ImportLegacyCSV(data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// uploadedFile reads the "file" part of a multipart upload.
func uploadedFile(c *fiber.Ctx) ([]byte, error) {
	fh, err := c.FormFile("file")
	if err != nil {
		return nil, err
	}
	f, err := fh.Open()
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return io.ReadAll(f)
}

// sendXLSX writes workbook bytes with download headers.
func sendXLSX(c *fiber.Ctx, filename string, data []byte) error {
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
