package repository

import "github.com/taechang/erp-api/internal/domain/entity"

// CompanyRepository is the persistence port for the company master.
type CompanyRepository interface {
	Create(company *entity.Company) error
	GetByID(id string) (*entity.Company, error)
	GetByCode(companyCode string) (*entity.Company, error)
	Update(company *entity.Company) error
	// List filters by type (empty = all) and search over code/name.
	List(companyType, search string, limit, offset int) ([]*entity.Company, int, error)
	SoftDelete(id string) error
}
