package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// vatRate is the Korean VAT rate applied when the caller does not supply the
// tax amount explicitly.
var vatRate = decimal.NewFromFloat(0.1)

// SummaryRenderer renders the monthly accounting summary as a PDF document.
type SummaryRenderer interface {
	Render(month string, rows []repository.CompanySummaryRow) ([]byte, error)
}

// TaxInvoiceBuilder serializes one trade record as a Korean NTS electronic
// tax invoice XML document.
type TaxInvoiceBuilder interface {
	Build(trade *entity.TradeRecord, company *entity.Company, item *entity.Item) ([]byte, error)
}

// AccountingUsecase owns sales/purchase records, settlements and the monthly
// summary with its PDF and tax invoice exports.
type AccountingUsecase struct {
	trades      repository.TradeRepository
	settlements repository.SettlementRepository
	summary     repository.AccountingSummaryRepository
	companies   repository.CompanyRepository
	items       repository.ItemRepository
	pdf         SummaryRenderer
	etax        TaxInvoiceBuilder
}

// NewAccountingUsecase builds the usecase.
func NewAccountingUsecase(
	trades repository.TradeRepository,
	settlements repository.SettlementRepository,
	summary repository.AccountingSummaryRepository,
	companies repository.CompanyRepository,
	items repository.ItemRepository,
	pdf SummaryRenderer,
	etax TaxInvoiceBuilder,
) *AccountingUsecase {
	return &AccountingUsecase{
		trades:      trades,
		settlements: settlements,
		summary:     summary,
		companies:   companies,
		items:       items,
		pdf:         pdf,
		etax:        etax,
	}
}

func validTradeType(t string) bool {
	return t == entity.TradeTypeSales || t == entity.TradeTypePurchase
}

func validSettlementType(t string) bool {
	return t == entity.SettlementCollection || t == entity.SettlementPayment
}

// CreateTrade records one sales or purchase line. A zero supply amount is
// derived from quantity and unit price; a zero tax amount gets 10% VAT.
func (u *AccountingUsecase) CreateTrade(req *dto.CreateTradeRequest, createdBy string) (*dto.TradeResponse, error) {
	if !validTradeType(req.TradeType) || req.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}
	company, err := u.companies.GetByID(req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if req.ItemID != "" {
		item, err := u.items.GetByID(req.ItemID)
		if err != nil {
			return nil, err
		}
		if item == nil {
			return nil, domain.ErrNotFound
		}
	}

	supply := req.SupplyAmount
	if supply.IsZero() {
		supply = req.Quantity.Mul(req.UnitPrice)
	}
	tax := req.TaxAmount
	if tax.IsZero() {
		tax = supply.Mul(vatRate).Round(0)
	}
	when := req.TradeDate
	if when.IsZero() {
		when = time.Now()
	}

	rec := &entity.TradeRecord{
		ID:           uuid.New().String(),
		TradeType:    req.TradeType,
		CompanyID:    req.CompanyID,
		ItemID:       req.ItemID,
		Quantity:     req.Quantity,
		UnitPrice:    req.UnitPrice,
		SupplyAmount: supply,
		TaxAmount:    tax,
		RecordDate:   when,
		Remarks:      req.Remarks,
		CreatedBy:    createdBy,
		CreatedAt:    time.Now(),
	}
	if err := u.trades.Create(rec); err != nil {
		return nil, err
	}
	return u.tradeResponse(rec)
}

// UpdateTrade applies a partial update. Amounts are re-derived only when the
// caller cleared them alongside a quantity/price change.
func (u *AccountingUsecase) UpdateTrade(id string, req *dto.UpdateTradeRequest) (*dto.TradeResponse, error) {
	rec, err := u.trades.GetByID(id)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}

	if req.CompanyID != nil {
		rec.CompanyID = *req.CompanyID
	}
	if req.ItemID != nil {
		rec.ItemID = *req.ItemID
	}
	if req.TradeDate != nil {
		rec.RecordDate = *req.TradeDate
	}
	if req.Quantity != nil {
		rec.Quantity = *req.Quantity
	}
	if req.UnitPrice != nil {
		rec.UnitPrice = *req.UnitPrice
	}
	if req.SupplyAmount != nil {
		rec.SupplyAmount = *req.SupplyAmount
	} else if req.Quantity != nil || req.UnitPrice != nil {
		rec.SupplyAmount = rec.Quantity.Mul(rec.UnitPrice)
	}
	if req.TaxAmount != nil {
		rec.TaxAmount = *req.TaxAmount
	} else if req.SupplyAmount != nil || req.Quantity != nil || req.UnitPrice != nil {
		rec.TaxAmount = rec.SupplyAmount.Mul(vatRate).Round(0)
	}
	if req.Remarks != nil {
		rec.Remarks = *req.Remarks
	}

	if err := u.trades.Update(rec); err != nil {
		return nil, err
	}
	return u.tradeResponse(rec)
}

// DeleteTrade removes one record.
func (u *AccountingUsecase) DeleteTrade(id string) error {
	rec, err := u.trades.GetByID(id)
	if err != nil {
		return err
	}
	if rec == nil {
		return domain.ErrNotFound
	}
	return u.trades.Delete(id)
}

// ListTrades returns a filtered page of trade records.
func (u *AccountingUsecase) ListTrades(filter repository.TradeFilter, page dto.PageRequest) (*dto.TradeListResponse, error) {
	page.DefaultPage()
	recs, total, err := u.trades.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TradeResponse, 0, len(recs))
	companyNames := map[string]string{}
	itemNames := map[string]string{}
	for _, rec := range recs {
		resp := baseTradeResponse(rec)
		if name, err := u.companyName(rec.CompanyID, companyNames); err == nil {
			resp.CompanyName = name
		}
		if rec.ItemID != "" {
			if name, err := u.itemName(rec.ItemID, itemNames); err == nil {
				resp.ItemName = name
			}
		}
		out = append(out, *resp)
	}
	return &dto.TradeListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// CreateSettlement records one collection or payment.
func (u *AccountingUsecase) CreateSettlement(req *dto.CreateSettlementRequest, createdBy string) (*dto.SettlementResponse, error) {
	if !validSettlementType(req.SettlementType) || req.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !req.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	company, err := u.companies.GetByID(req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	when := req.SettleDate
	if when.IsZero() {
		when = time.Now()
	}
	s := &entity.Settlement{
		ID:             uuid.New().String(),
		SettlementType: req.SettlementType,
		CompanyID:      req.CompanyID,
		Amount:         req.Amount,
		Method:         req.Method,
		RecordDate:     when,
		Remarks:        req.Remarks,
		CreatedBy:      createdBy,
		CreatedAt:      time.Now(),
	}
	if err := u.settlements.Create(s); err != nil {
		return nil, err
	}
	resp := baseSettlementResponse(s)
	resp.CompanyName = company.CompanyName
	return resp, nil
}

// DeleteSettlement removes one settlement.
func (u *AccountingUsecase) DeleteSettlement(id string) error {
	s, err := u.settlements.GetByID(id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return u.settlements.Delete(id)
}

// ListSettlements returns a filtered page of settlements.
func (u *AccountingUsecase) ListSettlements(settlementType, companyID, month string, page dto.PageRequest) (*dto.SettlementListResponse, error) {
	page.DefaultPage()
	rows, total, err := u.settlements.List(settlementType, companyID, month, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.SettlementResponse, 0, len(rows))
	companyNames := map[string]string{}
	for _, s := range rows {
		resp := baseSettlementResponse(s)
		if name, err := u.companyName(s.CompanyID, companyNames); err == nil {
			resp.CompanyName = name
		}
		out = append(out, *resp)
	}
	return &dto.SettlementListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// MonthlySummary aggregates per-company trade and settlement totals.
func (u *AccountingUsecase) MonthlySummary(ctx context.Context, month string) (*dto.AccountingSummaryResponse, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, domain.ErrInvalidInput
	}
	rows, err := u.summary.MonthlySummary(ctx, month)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanySummaryRow, 0, len(rows))
	for _, r := range rows {
		out = append(out, dto.CompanySummaryRow{
			CompanyID:    r.CompanyID,
			CompanyCode:  r.CompanyCode,
			CompanyName:  r.CompanyName,
			SalesAmount:  r.SalesTotal,
			PurchaseAmt:  r.PurchaseTotal,
			CollectedAmt: r.Collections,
			PaidAmt:      r.Payments,
			Receivable:   r.Receivable,
			Payable:      r.Payable,
		})
	}
	return &dto.AccountingSummaryResponse{Month: month, Rows: out}, nil
}

// MonthlySummaryPDF renders the monthly summary as a PDF document.
func (u *AccountingUsecase) MonthlySummaryPDF(ctx context.Context, month string) ([]byte, error) {
	if _, err := time.Parse("2006-01", month); err != nil {
		return nil, domain.ErrInvalidInput
	}
	rows, err := u.summary.MonthlySummary(ctx, month)
	if err != nil {
		return nil, err
	}
	return u.pdf.Render(month, rows)
}

// TaxInvoiceXML builds the NTS electronic tax invoice XML for one trade. The
// counterparty must carry a business registration number.
func (u *AccountingUsecase) TaxInvoiceXML(tradeID string) ([]byte, error) {
	rec, err := u.trades.GetByID(tradeID)
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, domain.ErrNotFound
	}
	company, err := u.companies.GetByID(rec.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	if company.BusinessNo == "" {
		return nil, domain.ErrInvalidInput
	}
	var item *entity.Item
	if rec.ItemID != "" {
		item, err = u.items.GetByID(rec.ItemID)
		if err != nil {
			return nil, err
		}
	}
	return u.etax.Build(rec, company, item)
}

func (u *AccountingUsecase) tradeResponse(rec *entity.TradeRecord) (*dto.TradeResponse, error) {
	resp := baseTradeResponse(rec)
	company, err := u.companies.GetByID(rec.CompanyID)
	if err != nil {
		return nil, err
	}
	if company != nil {
		resp.CompanyName = company.CompanyName
	}
	if rec.ItemID != "" {
		item, err := u.items.GetByID(rec.ItemID)
		if err != nil {
			return nil, err
		}
		if item != nil {
			resp.ItemName = item.ItemName
		}
	}
	return resp, nil
}

func (u *AccountingUsecase) companyName(id string, cache map[string]string) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	company, err := u.companies.GetByID(id)
	if err != nil || company == nil {
		return "", err
	}
	cache[id] = company.CompanyName
	return company.CompanyName, nil
}

func (u *AccountingUsecase) itemName(id string, cache map[string]string) (string, error) {
	if name, ok := cache[id]; ok {
		return name, nil
	}
	item, err := u.items.GetByID(id)
	if err != nil || item == nil {
		return "", err
	}
	cache[id] = item.ItemName
	return item.ItemName, nil
}

func baseTradeResponse(rec *entity.TradeRecord) *dto.TradeResponse {
	return &dto.TradeResponse{
		ID:           rec.ID,
		TradeType:    rec.TradeType,
		CompanyID:    rec.CompanyID,
		ItemID:       rec.ItemID,
		TradeDate:    rec.RecordDate,
		Quantity:     rec.Quantity,
		UnitPrice:    rec.UnitPrice,
		SupplyAmount: rec.SupplyAmount,
		TaxAmount:    rec.TaxAmount,
		TotalAmount:  rec.TotalAmount(),
		Remarks:      rec.Remarks,
		CreatedAt:    rec.CreatedAt,
	}
}

func baseSettlementResponse(s *entity.Settlement) *dto.SettlementResponse {
	return &dto.SettlementResponse{
		ID:             s.ID,
		SettlementType: s.SettlementType,
		CompanyID:      s.CompanyID,
		SettleDate:     s.RecordDate,
		Amount:         s.Amount,
		Method:         s.Method,
		Remarks:        s.Remarks,
		CreatedAt:      s.CreatedAt,
	}
}
