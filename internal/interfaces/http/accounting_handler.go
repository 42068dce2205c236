package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// AccountingHandler serves trades, settlements and the monthly summary.
type AccountingHandler struct {
	uc *usecase.AccountingUsecase
}

// NewAccountingHandler builds the handler.
func NewAccountingHandler(uc *usecase.AccountingUsecase) *AccountingHandler {
	return &AccountingHandler{uc: uc}
}

// CreateTrade godoc
// @Summary      Record a sales or purchase line
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateTradeRequest  true  "Trade data"
// @Success      201   {object}  dto.TradeResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounting/trades [post]
func (h *AccountingHandler) CreateTrade(c *fiber.Ctx) error {
	var in dto.CreateTradeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateTrade(&in, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListTrades godoc
// @Summary      List trade records
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "sales | purchase"
// @Param        company_id  query  string  false  "Company id"
// @Param        month       query  string  false  "Month YYYY-MM"
// @Param        limit       query  int     false  "Limit"   default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.TradeListResponse
// @Router       /api/accounting/trades [get]
func (h *AccountingHandler) ListTrades(c *fiber.Ctx) error {
	filter := repository.TradeFilter{
		TradeType: c.Query("type"),
		CompanyID: c.Query("company_id"),
		Month:     c.Query("month"),
	}
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListTrades(filter, page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// UpdateTrade godoc
// @Summary      Update a trade record
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string  true  "Trade id"
// @Param        body  body  dto.UpdateTradeRequest  true  "Fields to update"
// @Success      200   {object}  dto.TradeResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/accounting/trades/{id} [put]
func (h *AccountingHandler) UpdateTrade(c *fiber.Ctx) error {
	var in dto.UpdateTradeRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateTrade(c.Params("id"), &in)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteTrade godoc
// @Summary      Delete a trade record
// @Tags         accounting
// @Security     Bearer
// @Param        id  path  string  true  "Trade id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounting/trades/{id} [delete]
func (h *AccountingHandler) DeleteTrade(c *fiber.Ctx) error {
	if err := h.uc.DeleteTrade(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// CreateSettlement godoc
// @Summary      Record a collection or payment
// @Tags         accounting
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateSettlementRequest  true  "Settlement data"
// @Success      201   {object}  dto.SettlementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounting/settlements [post]
func (h *AccountingHandler) CreateSettlement(c *fiber.Ctx) error {
	var in dto.CreateSettlementRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.CreateSettlement(&in, GetUserID(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListSettlements godoc
// @Summary      List settlements
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        type        query  string  false  "collection | payment"
// @Param        company_id  query  string  false  "Company id"
// @Param        month       query  string  false  "Month YYYY-MM"
// @Param        limit       query  int     false  "Limit"   default(20)
// @Param        offset      query  int     false  "Offset"  default(0)
// @Success      200  {object}  dto.SettlementListResponse
// @Router       /api/accounting/settlements [get]
func (h *AccountingHandler) ListSettlements(c *fiber.Ctx) error {
	page := dto.PageRequest{Limit: c.QueryInt("limit", 20), Offset: c.QueryInt("offset", 0)}
	out, err := h.uc.ListSettlements(c.Query("type"), c.Query("company_id"), c.Query("month"), page)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// DeleteSettlement godoc
// @Summary      Delete a settlement
// @Tags         accounting
// @Security     Bearer
// @Param        id  path  string  true  "Settlement id"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounting/settlements/{id} [delete]
func (h *AccountingHandler) DeleteSettlement(c *fiber.Ctx) error {
	if err := h.uc.DeleteSettlement(c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// MonthlySummary godoc
// @Summary      Monthly accounting summary per company
// @Tags         accounting
// @Security     Bearer
// @Produce      json
// @Param        month  query  string  true  "Month YYYY-MM"
// @Success      200  {object}  dto.AccountingSummaryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/accounting/summary [get]
func (h *AccountingHandler) MonthlySummary(c *fiber.Ctx) error {
	out, err := h.uc.MonthlySummary(c.Context(), c.Query("month"))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(out)
}

// MonthlySummaryPDF godoc
// @Summary      Monthly accounting summary as PDF
// @Tags         accounting
// @Security     Bearer
// @Produce      application/pdf
// @Param        month  query  string  true  "Month YYYY-MM"
// @Success      200  {file}  binary
// @Router       /api/accounting/summary/pdf [get]
func (h *AccountingHandler) MonthlySummaryPDF(c *fiber.Ctx) error {
	month := c.Query("month")
	data, err := h.uc.MonthlySummaryPDF(c.Context(), month)
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="summary-`+month+`.pdf"`)
	return c.Send(data)
}

// TaxInvoiceXML godoc
// @Summary      Electronic tax invoice XML for one trade
// @Tags         accounting
// @Security     Bearer
// @Produce      application/xml
// @Param        id  path  string  true  "Trade id"
// @Success      200  {file}  binary
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/accounting/trades/{id}/tax-invoice [get]
func (h *AccountingHandler) TaxInvoiceXML(c *fiber.Ctx) error {
	data, err := h.uc.TaxInvoiceXML(c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/xml; charset=utf-8")
	return c.Send(data)
}
