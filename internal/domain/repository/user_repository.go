package repository

import "github.com/taechang/erp-api/internal/domain/entity"

// UserRepository is the persistence port for application accounts.
type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	GetByUsername(username string) (*entity.User, error)
	Update(user *entity.User) error
}
