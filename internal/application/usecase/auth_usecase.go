package usecase

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/internal/domain/repository"
	"github.com/taechang/erp-api/pkg/config"
	"github.com/taechang/erp-api/pkg/jwt"
)

// AuthUsecase handles login and account management.
type AuthUsecase struct {
	users repository.UserRepository
	cfg   config.JWTConfig
}

// NewAuthUsecase builds the usecase.
func NewAuthUsecase(users repository.UserRepository, cfg config.JWTConfig) *AuthUsecase {
	return &AuthUsecase{users: users, cfg: cfg}
}

func validRole(r string) bool {
	switch r {
	case entity.RoleAdmin, entity.RoleManager, entity.RoleViewer:
		return true
	}
	return false
}

// Login verifies credentials and issues a token. Wrong username and wrong
// password return the same error so the response leaks nothing.
func (u *AuthUsecase) Login(req *dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := u.users.GetByUsername(strings.TrimSpace(req.Username))
	if err != nil {
		return nil, err
	}
	if user == nil || user.UseYN == "N" {
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}

	token, err := jwt.Generate(u.cfg.Secret, user.ID, user.Username, user.Role, u.cfg.Issuer, u.cfg.Expiration)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{Token: token, User: *toUserResponse(user)}, nil
}

// Register creates an account (admin-only at the routing layer).
func (u *AuthUsecase) Register(req *dto.CreateUserRequest) (*dto.UserResponse, error) {
	req.Username = strings.TrimSpace(req.Username)
	if len(req.Username) < 3 || len(req.Password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	if !validRole(req.Role) {
		return nil, domain.ErrInvalidInput
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     req.Username,
		PasswordHash: string(hash),
		Name:         req.FullName,
		Role:         req.Role,
		UseYN:        "Y",
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := u.users.Create(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

// GetByID loads one account.
func (u *AuthUsecase) GetByID(id string) (*dto.UserResponse, error) {
	user, err := u.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return toUserResponse(user), nil
}

// Update applies a partial account update.
func (u *AuthUsecase) Update(id string, req *dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := u.users.GetByID(id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}

	if req.Password != nil {
		if len(*req.Password) < 8 {
			return nil, domain.ErrInvalidInput
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			return nil, err
		}
		user.PasswordHash = string(hash)
	}
	if req.FullName != nil {
		user.Name = *req.FullName
	}
	if req.Role != nil {
		if !validRole(*req.Role) {
			return nil, domain.ErrInvalidInput
		}
		user.Role = *req.Role
	}
	user.UpdatedAt = time.Now()

	if err := u.users.Update(user); err != nil {
		return nil, err
	}
	return toUserResponse(user), nil
}

func toUserResponse(user *entity.User) *dto.UserResponse {
	return &dto.UserResponse{
		ID:        user.ID,
		Username:  user.Username,
		FullName:  user.Name,
		Role:      user.Role,
		UseYN:     user.UseYN,
		CreatedAt: user.CreatedAt,
	}
}
