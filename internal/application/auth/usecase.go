package auth

import (
	"context"
	"errors"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/internal/domain/repository"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase almacén de credenciales: login con bcrypt + JWT y cambio de contraseña.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// HashPassword genera el hash bcrypt de una contraseña en claro.
func HashPassword(plain string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// FindUserByUsername devuelve el usuario o nil si no existe.
func (uc *AuthUseCase) FindUserByUsername(ctx context.Context, username string) (*entity.User, error) {
	return uc.userRepo.GetByUsername(ctx, username)
}

// VerifyCredential compara la contraseña en claro con el hash almacenado.
func (uc *AuthUseCase) VerifyCredential(user *entity.User, plain string) bool {
	if user == nil {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(plain)) == nil
}

// Login verifica usuario/contraseña y emite un JWT. Usuario inexistente y contraseña
// incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := strings.TrimSpace(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if !uc.VerifyCredential(user, in.Password) {
		return nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.Username, user.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{AccessToken: token, TokenType: jwt.TokenType}, nil
}

// ChangeCredential cambia la contraseña de username si oldPassword es correcta.
func (uc *AuthUseCase) ChangeCredential(ctx context.Context, username string, in dto.ChangePasswordRequest) error {
	if in.NewPassword == "" {
		return domain.ErrInvalidInput
	}
	user, err := uc.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return err
	}
	if user == nil {
		return domain.ErrUnauthorized
	}
	if !uc.VerifyCredential(user, in.OldPassword) {
		return domain.ErrInvalidCredential
	}
	hash, err := HashPassword(in.NewPassword)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return domain.ErrInvalidInput
		}
		return err
	}
	return uc.userRepo.UpdatePasswordHash(ctx, user.ID, hash)
}
