package repository

import "github.com/taechang/erp-api/internal/domain/entity"

// ProcessRepository is the persistence port for process operation definitions.
type ProcessRepository interface {
	Create(op *entity.ProcessOperation) error
	GetByID(id string) (*entity.ProcessOperation, error)
	GetByCode(processCode string) (*entity.ProcessOperation, error)
	Update(op *entity.ProcessOperation) error
	List(search string, limit, offset int) ([]*entity.ProcessOperation, int, error)
	SoftDelete(id string) error
}
