package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
)

// BOMHandler serves BOM edges and the graph read paths.
type BOMHandler struct {
	uc    *usecase.BOMUsecase
	excel *usecase.ExcelUsecase
}

// NewBOMHandler builds the handler.
func NewBOMHandler(uc *usecase.BOMUsecase, excel *usecase.ExcelUsecase) *BOMHandler {
	return &BOMHandler{uc: uc, excel: excel}
}

// Create godoc
// @Summary      Create BOM line
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMEdgeRequest  true  "BOM line"
// @Success      201   {object}  dto.BOMEdgeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/bom [post]
func (h *BOMHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBOMEdgeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateEdge(&in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// CreateBatch godoc
// @Summary      Create several BOM lines
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBOMBatchRequest  true  "BOM lines"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bom/batch [post]
func (h *BOMHandler) CreateBatch(c *fiber.Ctx) error {
	var in dto.CreateBOMBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateBatch(&in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListByParent godoc
// @Summary      List direct children of a parent item
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        parent_id  path  string  true  "Parent item id"
// @Success      200  {array}  dto.BOMEdgeResponse
// @Router       /api/bom/parent/{parent_id} [get]
func (h *BOMHandler) ListByParent(c *fiber.Ctx) error {
	out, err := h.uc.ListByParent(c.Params("parent_id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update BOM line
// @Tags         bom
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "BOM line id"
// @Param        body  body  dto.UpdateBOMEdgeRequest  true  "Fields to update"
// @Success      200   {object}  dto.BOMEdgeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/bom/{id} [put]
func (h *BOMHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBOMEdgeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateEdge(c.Params("id"), &in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Delete BOM line
// @Tags         bom
// @Security     Bearer
// @Param        id  path  string  true  "BOM line id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bom/{id} [delete]
func (h *BOMHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.DeleteEdge(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Tree godoc
// @Summary      Explode the structure under an item
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        item_id  path   string  true   "Root item id"
// @Param        depth    query  int     false  "Max depth (0 = unlimited)"
// @Success      200  {object}  dto.BOMTreeResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/bom/tree/{item_id} [get]
func (h *BOMHandler) Tree(c *fiber.Ctx) error {
	out, err := h.uc.Tree(c.Params("item_id"), c.QueryInt("depth", 0))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Cost godoc
// @Summary      Roll up material cost under an item
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Param        item_id  path   string  true  "Root item id"
// @Param        month    query  string  true  "Price month YYYY-MM"
// @Success      200  {object}  dto.BOMCostResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/bom/cost/{item_id} [get]
func (h *BOMHandler) Cost(c *fiber.Ctx) error {
	out, err := h.uc.Cost(c.Params("item_id"), c.Query("month"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Validate godoc
// @Summary      Report cycles in the stored BOM graph
// @Tags         bom
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.BOMValidationResponse
// @Router       /api/bom/validate [get]
func (h *BOMHandler) Validate(c *fiber.Ctx) error {
	out, err := h.uc.Validate()
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Export godoc
// @Summary      Export the BOM workbook (one sheet per customer)
// @Tags         bom
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Success      200  {file}  binary
// @Router       /api/bom/export [get]
func (h *BOMHandler) Export(c *fiber.Ctx) error {
	data, err := h.excel.ExportBOMWorkbook()
	if err != nil {
		return fail(c, err)
	}
	return sendXLSX(c, "bom.xlsx", data)
}

// Import godoc
// @Summary      Import a BOM workbook (upsert by parent/child item codes)
// @Tags         bom
// @Security     Bearer
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Workbook"
// @Success      200   {object}  dto.ImportResult
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/bom/import [post]
func (h *BOMHandler) Import(c *fiber.Ctx) error {
	data, err := uploadedFile(c)
	if err != nil {
		return badBody(c)
	}
	out, err := h.excel.ImportBOMWorkbook(data)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}
