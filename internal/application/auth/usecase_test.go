package auth_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-ledger/internal/application/auth"
	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
)

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	return m.Called(ctx, user).Error(0)
}

func (m *mockUserRepo) GetByUsername(ctx context.Context, username string) (*entity.User, error) {
	args := m.Called(ctx, username)
	u, _ := args.Get(0).(*entity.User)
	return u, args.Error(1)
}

func (m *mockUserRepo) UpdatePasswordHash(ctx context.Context, id int64, hash string) error {
	return m.Called(ctx, id, hash).Error(0)
}

func (m *mockUserRepo) Count(ctx context.Context) (int, error) {
	args := m.Called(ctx)
	return args.Int(0), args.Error(1)
}

func (m *mockUserRepo) DeleteAll(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

const secret = "test-secret"

func newUser(t *testing.T, plain string) *entity.User {
	t.Helper()
	hash, err := auth.HashPassword(plain)
	require.NoError(t, err)
	return &entity.User{ID: 7, Username: "guillem", PasswordHash: hash, Role: entity.RoleOperador}
}

func newUC(repo *mockUserRepo) *auth.AuthUseCase {
	return auth.NewAuthUseCase(repo, auth.JWTConfig{Secret: secret, ExpMinutes: 5, Issuer: "test"})
}

func TestLogin_OK(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{}
	repo.On("GetByUsername", ctx, "guillem").Return(newUser(t, "1234"), nil)

	out, err := newUC(repo).Login(ctx, dto.LoginRequest{Username: " guillem ", Password: "1234"})
	require.NoError(t, err)
	assert.Equal(t, "bearer", out.TokenType)

	username, role, err := jwt.Parse(secret, out.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "guillem", username)
	assert.Equal(t, entity.RoleOperador, role)
	repo.AssertExpectations(t)
}

func TestLogin_MismoErrorParaUsuarioYPassword(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{}
	repo.On("GetByUsername", ctx, "guillem").Return(newUser(t, "1234"), nil)
	repo.On("GetByUsername", ctx, "nadie").Return(nil, nil)
	uc := newUC(repo)

	_, err := uc.Login(ctx, dto.LoginRequest{Username: "guillem", Password: "mala"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = uc.Login(ctx, dto.LoginRequest{Username: "nadie", Password: "1234"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_CamposVacios(t *testing.T) {
	_, err := newUC(&mockUserRepo{}).Login(context.Background(), dto.LoginRequest{Username: "", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestLogin_FalloDeRepositorio(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("db caída")
	repo := &mockUserRepo{}
	repo.On("GetByUsername", ctx, "guillem").Return(nil, boom)

	_, err := newUC(repo).Login(ctx, dto.LoginRequest{Username: "guillem", Password: "1234"})
	assert.ErrorIs(t, err, boom)
}

func TestChangeCredential_OK(t *testing.T) {
	ctx := context.Background()
	user := newUser(t, "1234")
	repo := &mockUserRepo{}
	repo.On("GetByUsername", ctx, "guillem").Return(user, nil)
	repo.On("UpdatePasswordHash", ctx, int64(7), mock.MatchedBy(func(hash string) bool {
		return hash != user.PasswordHash && len(hash) > 0
	})).Return(nil)

	err := newUC(repo).ChangeCredential(ctx, "guillem", dto.ChangePasswordRequest{OldPassword: "1234", NewPassword: "nueva"})
	require.NoError(t, err)
	repo.AssertExpectations(t)
}

func TestChangeCredential_PasswordActualIncorrecta(t *testing.T) {
	ctx := context.Background()
	repo := &mockUserRepo{}
	repo.On("GetByUsername", ctx, "guillem").Return(newUser(t, "1234"), nil)

	err := newUC(repo).ChangeCredential(ctx, "guillem", dto.ChangePasswordRequest{OldPassword: "mala", NewPassword: "nueva"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredential)
	repo.AssertNotCalled(t, "UpdatePasswordHash", mock.Anything, mock.Anything, mock.Anything)
}

func TestChangeCredential_NuevaVacia(t *testing.T) {
	err := newUC(&mockUserRepo{}).ChangeCredential(context.Background(), "guillem", dto.ChangePasswordRequest{OldPassword: "1234"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestVerifyCredential(t *testing.T) {
	uc := newUC(&mockUserRepo{})
	user := newUser(t, "1234")
	assert.True(t, uc.VerifyCredential(user, "1234"))
	assert.False(t, uc.VerifyCredential(user, "12345"))
	assert.False(t, uc.VerifyCredential(nil, "1234"))
}
