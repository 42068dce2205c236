package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taechang/erp-api/internal/application/dto"
	"github.com/taechang/erp-api/internal/application/usecase"
	"github.com/taechang/erp-api/internal/domain"
	"github.com/taechang/erp-api/internal/domain/entity"
	"github.com/taechang/erp-api/pkg/config"
	pkgjwt "github.com/taechang/erp-api/pkg/jwt"
)

type fakeUserRepo struct {
	users map[string]*entity.User
}

func (r *fakeUserRepo) Create(user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) GetByID(id string) (*entity.User, error) {
	return r.users[id], nil
}

func (r *fakeUserRepo) GetByUsername(username string) (*entity.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, nil
}

func (r *fakeUserRepo) Update(user *entity.User) error {
	r.users[user.ID] = user
	return nil
}

var testJWTCfg = config.JWTConfig{Secret: "unit-test-secret", Issuer: "test", Expiration: 60}

func newAuthUC(t *testing.T, users ...*entity.User) (*usecase.AuthUsecase, *fakeUserRepo) {
	t.Helper()
	repo := &fakeUserRepo{users: make(map[string]*entity.User)}
	for _, u := range users {
		repo.users[u.ID] = u
	}
	return usecase.NewAuthUsecase(repo, testJWTCfg), repo
}

func seededUser(t *testing.T, password string) *entity.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &entity.User{
		ID: "u1", Username: "jdoe", PasswordHash: string(hash),
		Name: "홍길동", Role: entity.RoleManager, UseYN: "Y",
	}
}

func TestLogin_IssuesTokenWithRole(t *testing.T) {
	uc, _ := newAuthUC(t, seededUser(t, "correct-horse"))

	resp, err := uc.Login(&dto.LoginRequest{Username: "jdoe", Password: "correct-horse"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, "jdoe", resp.User.Username)

	userID, username, role, err := pkgjwt.Parse(testJWTCfg.Secret, resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", userID)
	assert.Equal(t, "jdoe", username)
	assert.Equal(t, entity.RoleManager, role)
}

func TestLogin_WrongPasswordAndUnknownUserLookAlike(t *testing.T) {
	uc, _ := newAuthUC(t, seededUser(t, "correct-horse"))

	_, errBadPass := uc.Login(&dto.LoginRequest{Username: "jdoe", Password: "wrong"})
	_, errNoUser := uc.Login(&dto.LoginRequest{Username: "nobody", Password: "wrong"})

	assert.ErrorIs(t, errBadPass, domain.ErrUnauthorized)
	assert.ErrorIs(t, errNoUser, domain.ErrUnauthorized)
	assert.Equal(t, errBadPass, errNoUser, "both failures must be indistinguishable")
}

func TestLogin_DisabledAccountRejected(t *testing.T) {
	u := seededUser(t, "correct-horse")
	u.UseYN = "N"
	uc, _ := newAuthUC(t, u)

	_, err := uc.Login(&dto.LoginRequest{Username: "jdoe", Password: "correct-horse"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestRegister_HashesPasswordAndValidates(t *testing.T) {
	uc, repo := newAuthUC(t)

	resp, err := uc.Register(&dto.CreateUserRequest{
		Username: "newuser", Password: "longenough", FullName: "김신입", Role: entity.RoleViewer,
	})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleViewer, resp.Role)

	stored, _ := repo.GetByUsername("newuser")
	require.NotNil(t, stored)
	assert.NotEqual(t, "longenough", stored.PasswordHash, "password must never be stored in the clear")
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.PasswordHash), []byte("longenough")))

	_, err = uc.Register(&dto.CreateUserRequest{Username: "ab", Password: "longenough", Role: entity.RoleViewer})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "username under 3 chars")

	_, err = uc.Register(&dto.CreateUserRequest{Username: "okname", Password: "short", Role: entity.RoleViewer})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "password under 8 chars")

	_, err = uc.Register(&dto.CreateUserRequest{Username: "okname", Password: "longenough", Role: "superuser"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput, "unknown role")
}

func TestUpdate_RoleChangeAndUnknownUser(t *testing.T) {
	uc, _ := newAuthUC(t, seededUser(t, "correct-horse"))

	admin := entity.RoleAdmin
	resp, err := uc.Update("u1", &dto.UpdateUserRequest{Role: &admin})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAdmin, resp.Role)

	_, err = uc.Update("ghost", &dto.UpdateUserRequest{Role: &admin})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}
