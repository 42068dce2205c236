package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// ContractUsecase manages supply contracts.
type ContractUsecase struct {
	contracts repository.ContractRepository
	companies repository.CompanyRepository
}

// NewContractUsecase builds the usecase.
func NewContractUsecase(contracts repository.ContractRepository, companies repository.CompanyRepository) *ContractUsecase {
	return &ContractUsecase{contracts: contracts, companies: companies}
}

func validContractStatus(s string) bool {
	switch s {
	case entity.ContractStatusActive, entity.ContractStatusExpired, entity.ContractStatusTerminated:
		return true
	}
	return false
}

// Create registers a contract. The end date must not precede the start date.
func (u *ContractUsecase) Create(req *dto.CreateContractRequest) (*dto.ContractResponse, error) {
	req.ContractNo = strings.TrimSpace(req.ContractNo)
	req.ContractName = strings.TrimSpace(req.ContractName)
	if req.ContractNo == "" || req.ContractName == "" || req.CompanyID == "" {
		return nil, domain.ErrInvalidInput
	}
	if !req.EndDate.IsZero() && !req.StartDate.IsZero() && req.EndDate.Before(req.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	company, err := u.companies.GetByID(req.CompanyID)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	now := time.Now()
	contract := &entity.Contract{
		ID:           uuid.New().String(),
		ContractNo:   req.ContractNo,
		CompanyID:    req.CompanyID,
		ContractName: req.ContractName,
		StartDate:    req.StartDate,
		EndDate:      req.EndDate,
		Amount:       req.Amount,
		Status:       entity.ContractStatusActive,
		FileNote:     req.Remarks,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.contracts.Create(contract); err != nil {
		return nil, err
	}
	resp := toContractResponse(contract)
	resp.CompanyName = company.CompanyName
	return resp, nil
}

// GetByID loads one contract.
func (u *ContractUsecase) GetByID(id string) (*dto.ContractResponse, error) {
	contract, err := u.contracts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}
	resp := toContractResponse(contract)
	if company, err := u.companies.GetByID(contract.CompanyID); err == nil && company != nil {
		resp.CompanyName = company.CompanyName
	}
	return resp, nil
}

// Update applies a partial update.
func (u *ContractUsecase) Update(id string, req *dto.UpdateContractRequest) (*dto.ContractResponse, error) {
	contract, err := u.contracts.GetByID(id)
	if err != nil {
		return nil, err
	}
	if contract == nil {
		return nil, domain.ErrNotFound
	}

	if req.ContractName != nil {
		name := strings.TrimSpace(*req.ContractName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		contract.ContractName = name
	}
	if req.CompanyID != nil {
		contract.CompanyID = *req.CompanyID
	}
	if req.StartDate != nil {
		contract.StartDate = *req.StartDate
	}
	if req.EndDate != nil {
		contract.EndDate = *req.EndDate
	}
	if !contract.EndDate.IsZero() && !contract.StartDate.IsZero() && contract.EndDate.Before(contract.StartDate) {
		return nil, domain.ErrInvalidInput
	}
	if req.Amount != nil {
		contract.Amount = *req.Amount
	}
	if req.Status != nil {
		if !validContractStatus(*req.Status) {
			return nil, domain.ErrInvalidInput
		}
		contract.Status = *req.Status
	}
	if req.Remarks != nil {
		contract.FileNote = *req.Remarks
	}
	contract.UpdatedAt = time.Now()

	if err := u.contracts.Update(contract); err != nil {
		return nil, err
	}
	resp := toContractResponse(contract)
	if company, err := u.companies.GetByID(contract.CompanyID); err == nil && company != nil {
		resp.CompanyName = company.CompanyName
	}
	return resp, nil
}

// Delete removes one contract.
func (u *ContractUsecase) Delete(id string) error {
	contract, err := u.contracts.GetByID(id)
	if err != nil {
		return err
	}
	if contract == nil {
		return domain.ErrNotFound
	}
	return u.contracts.Delete(id)
}

// List returns a filtered page of contracts.
func (u *ContractUsecase) List(companyID, status string, page dto.PageRequest) (*dto.ContractListResponse, error) {
	page.DefaultPage()
	contracts, total, err := u.contracts.List(companyID, status, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContractResponse, 0, len(contracts))
	names := map[string]string{}
	for _, c := range contracts {
		resp := toContractResponse(c)
		if name, ok := names[c.CompanyID]; ok {
			resp.CompanyName = name
		} else if company, err := u.companies.GetByID(c.CompanyID); err == nil && company != nil {
			names[c.CompanyID] = company.CompanyName
			resp.CompanyName = company.CompanyName
		}
		out = append(out, *resp)
	}
	return &dto.ContractListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// ListExpiring returns active contracts ending within the window, soonest
// first. days <= 0 defaults to 30.
func (u *ContractUsecase) ListExpiring(days int) ([]dto.ContractResponse, error) {
	if days <= 0 {
		days = 30
	}
	contracts, err := u.contracts.ListExpiring(days)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ContractResponse, 0, len(contracts))
	names := map[string]string{}
	for _, c := range contracts {
		resp := toContractResponse(c)
		if name, ok := names[c.CompanyID]; ok {
			resp.CompanyName = name
		} else if company, err := u.companies.GetByID(c.CompanyID); err == nil && company != nil {
			names[c.CompanyID] = company.CompanyName
			resp.CompanyName = company.CompanyName
		}
		out = append(out, *resp)
	}
	return out, nil
}

func toContractResponse(c *entity.Contract) *dto.ContractResponse {
	return &dto.ContractResponse{
		ID:           c.ID,
		ContractNo:   c.ContractNo,
		ContractName: c.ContractName,
		CompanyID:    c.CompanyID,
		StartDate:    c.StartDate,
		EndDate:      c.EndDate,
		Amount:       c.Amount,
		Status:       c.Status,
		Remarks:      c.FileNote,
		CreatedAt:    c.CreatedAt,
		UpdatedAt:    c.UpdatedAt,
	}
}
