package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
)

// ProcessHandler serves process operation definitions and runs.
type ProcessHandler struct {
	uc *usecase.ProcessUsecase
}

// NewProcessHandler builds the handler.
func NewProcessHandler(uc *usecase.ProcessUsecase) *ProcessHandler {
	return &ProcessHandler{uc: uc}
}

// Create godoc
// @Summary      Create process operation
// @Tags         processes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateProcessOperationRequest  true  "Process data"
// @Success      201   {object}  dto.ProcessOperationResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/processes [post]
func (h *ProcessHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateProcessOperationRequest
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
// @Summary      Get process operation
// @Tags         processes
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Process id"
// @Success      200  {object}  dto.ProcessOperationResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/processes/{id} [get]
func (h *ProcessHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List process operations
// @Tags         processes
// @Security     Bearer
// @Produce      json
// @Param        search  query  string  false  "Code or name search"
// @Param        limit   query  int     false  "Limit"   default(20)
// @Param        offset  query  int     false  "Offset"  default(0)
// @Success      200  {array}  dto.ProcessOperationResponse
// @Router       /api/processes [get]
func (h *ProcessHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	items, pageOut, err := h.uc.List(c.Query("search"), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"items": items, "page": pageOut})
}

// Update godoc
// @Summary      Update process operation
// @Tags         processes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Process id"
// @Param        body  body  dto.UpdateProcessOperationRequest  true  "Fields to update"
// @Success      200   {object}  dto.ProcessOperationResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/processes/{id} [put]
func (h *ProcessHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateProcessOperationRequest
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
// @Summary      Soft-delete process operation
// @Tags         processes
// @Security     Bearer
// @Param        id  path  string  true  "Process id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/processes/{id} [delete]
func (h *ProcessHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Run godoc
// @Summary      Run a process (consume input, produce output, one lot)
// @Tags         processes
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RunProcessRequest  true  "Run parameters"
// @Success      201   {object}  dto.RunProcessResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      422   {object}  dto.ErrorResponse
// @Router       /api/processes/run [post]
func (h *ProcessHandler) Run(c *fiber.Ctx) error {
	var in dto.RunProcessRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Run(c.Context(), &in, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}
