package usecase

import (
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
)

// businessNoPattern is the Korean business registration number, ###-##-#####.
var businessNoPattern = regexp.MustCompile(`^\d{3}-\d{2}-\d{5}$`)

// CompanyUsecase orchestrates the company master operations.
type CompanyUsecase struct {
	companies repository.CompanyRepository
}

// NewCompanyUsecase builds the usecase.
func NewCompanyUsecase(companies repository.CompanyRepository) *CompanyUsecase {
	return &CompanyUsecase{companies: companies}
}

func validCompanyType(t string) bool {
	switch t {
	case entity.CompanyTypeCustomer, entity.CompanyTypeSupplier, entity.CompanyTypePartner:
		return true
	}
	return false
}

// Create registers a company. The business number format is enforced when
// present, since it feeds the tax invoice XML.
func (u *CompanyUsecase) Create(req *dto.CreateCompanyRequest) (*dto.CompanyResponse, error) {
	req.CompanyCode = strings.TrimSpace(req.CompanyCode)
	req.CompanyName = strings.TrimSpace(req.CompanyName)
	if req.CompanyCode == "" || req.CompanyName == "" {
		return nil, domain.ErrInvalidInput
	}
	if !validCompanyType(req.CompanyType) {
		return nil, domain.ErrInvalidInput
	}
	if req.BusinessNo != "" && !businessNoPattern.MatchString(req.BusinessNo) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	company := &entity.Company{
		ID:          uuid.New().String(),
		CompanyCode: req.CompanyCode,
		CompanyName: req.CompanyName,
		CompanyType: req.CompanyType,
		BusinessNo:  req.BusinessNo,
		CEOName:     req.CEOName,
		Phone:       req.Phone,
		Email:       req.Email,
		Address:     req.Address,
		UseYN:       "Y",
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := u.companies.Create(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// GetByID loads one company.
func (u *CompanyUsecase) GetByID(id string) (*dto.CompanyResponse, error) {
	company, err := u.companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}
	return toCompanyResponse(company), nil
}

// Update applies a partial update.
func (u *CompanyUsecase) Update(id string, req *dto.UpdateCompanyRequest) (*dto.CompanyResponse, error) {
	company, err := u.companies.GetByID(id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrNotFound
	}

	if req.CompanyName != nil {
		name := strings.TrimSpace(*req.CompanyName)
		if name == "" {
			return nil, domain.ErrInvalidInput
		}
		company.CompanyName = name
	}
	if req.CompanyType != nil {
		if !validCompanyType(*req.CompanyType) {
			return nil, domain.ErrInvalidInput
		}
		company.CompanyType = *req.CompanyType
	}
	if req.BusinessNo != nil {
		if *req.BusinessNo != "" && !businessNoPattern.MatchString(*req.BusinessNo) {
			return nil, domain.ErrInvalidInput
		}
		company.BusinessNo = *req.BusinessNo
	}
	if req.CEOName != nil {
		company.CEOName = *req.CEOName
	}
	if req.Phone != nil {
		company.Phone = *req.Phone
	}
	if req.Email != nil {
		company.Email = *req.Email
	}
	if req.Address != nil {
		company.Address = *req.Address
	}
	company.UpdatedAt = time.Now()

	if err := u.companies.Update(company); err != nil {
		return nil, err
	}
	return toCompanyResponse(company), nil
}

// List returns a filtered page of companies.
func (u *CompanyUsecase) List(companyType, search string, page dto.PageRequest) (*dto.CompanyListResponse, error) {
	page.DefaultPage()
	companies, total, err := u.companies.List(companyType, search, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	out := make([]dto.CompanyResponse, 0, len(companies))
	for _, c := range companies {
		out = append(out, *toCompanyResponse(c))
	}
	return &dto.CompanyListResponse{
		Items: out,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: total},
	}, nil
}

// Delete soft-deletes the company.
func (u *CompanyUsecase) Delete(id string) error {
	company, err := u.companies.GetByID(id)
	if err != nil {
		return err
	}
	if company == nil {
		return domain.ErrNotFound
	}
	return u.companies.SoftDelete(id)
}

func toCompanyResponse(c *entity.Company) *dto.CompanyResponse {
	return &dto.CompanyResponse{
		ID:          c.ID,
		CompanyCode: c.CompanyCode,
		CompanyName: c.CompanyName,
		CompanyType: c.CompanyType,
		BusinessNo:  c.BusinessNo,
		CEOName:     c.CEOName,
		Phone:       c.Phone,
		Email:       c.Email,
		Address:     c.Address,
		UseYN:       c.UseYN,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}
