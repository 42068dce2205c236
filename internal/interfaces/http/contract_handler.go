package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
)

// ContractHandler serves the contract endpoints.
type ContractHandler struct {
	uc *usecase.ContractUsecase
}

// NewContractHandler builds the handler.
func NewContractHandler(uc *usecase.ContractUsecase) *ContractHandler {
	return &ContractHandler{uc: uc}
}

// Create godoc
// @Summary      Register contract
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateContractRequest  true  "Contract data"
// @Success      201   {object}  dto.ContractResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/contracts [post]
func (h *ContractHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateContractRequest
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
// @Summary      Get contract
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "Contract id"
// @Success      200  {object}  dto.ContractResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [get]
func (h *ContractHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// List godoc
// @Summary      List contracts
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        company_id  query  string  false  "Company id"
// @Param        status      query  string  false  "active | expired | terminated"
// @Param        limit       query  int     false  "Limit"   default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.ContractListResponse
// @Router       /api/contracts [get]
func (h *ContractHandler) List(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.List(c.Query("company_id"), c.Query("status"), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// ListExpiring godoc
// @Summary      Active contracts ending soon
// @Tags         contracts
// @Security     Bearer
// @Produce      json
// @Param        days  query  int  false  "Window in days"  default(30)
// @Success      200  {array}  dto.ContractResponse
// @Router       /api/contracts/expiring [get]
func (h *ContractHandler) ListExpiring(c *fiber.Ctx) error {
	out, err := h.uc.ListExpiring(c.QueryInt("days", 30))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// Update godoc
// @Summary      Update contract
// @Tags         contracts
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Contract id"
// @Param        body  body  dto.UpdateContractRequest  true  "Fields to update"
// @Success      200   {object}  dto.ContractResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [put]
func (h *ContractHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateContractRequest
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
// @Summary      Delete contract
// @Tags         contracts
// @Security     Bearer
// @Param        id  path  string  true  "Contract id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/contracts/{id} [delete]
func (h *ContractHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}
