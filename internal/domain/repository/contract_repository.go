package repository

import "github.com/taechang/erp-api/internal/domain/entity"

// ContractRepository is the persistence port for contracts.
type ContractRepository interface {
	Create(contract *entity.Contract) error
	GetByID(id string) (*entity.Contract, error)
	GetByNo(contractNo string) (*entity.Contract, error)
	Update(contract *entity.Contract) error
	Delete(id string) error
	List(companyID, status string, limit, offset int) ([]*entity.Contract, int, error)
	// ListExpiring returns active contracts whose end date falls within the
	// next days window, soonest first.
	ListExpiring(days int) ([]*entity.Contract, error)
}
