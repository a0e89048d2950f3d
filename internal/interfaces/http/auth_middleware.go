package http

import (
	"context"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"

	"github.com/jhoicas/inventario-ledger/internal/application/dto"
	"github.com/jhoicas/inventario-ledger/internal/domain/entity"
	"github.com/jhoicas/inventario-ledger/pkg/jwt"
)

// Locals keys para el usuario autenticado en Fiber.
const (
	LocalUsername = "username"
	LocalRole     = "role"
)

// UserFinder busca el usuario del token en el almacén de credenciales.
type UserFinder interface {
	FindUserByUsername(ctx context.Context, username string) (*entity.User, error)
}

// AuthMiddleware valida el Bearer Token JWT, comprueba que el usuario sigue existiendo y deja
// username y role en c.Locals. El rol es el almacenado, no el del claim: tras un reset o un
// cambio de rol los tokens antiguos no conservan permisos.
func AuthMiddleware(jwtSecret string, users UserFinder, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		username, _, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		user, err := users.FindUserByUsername(c.UserContext(), username)
		if err != nil {
			return writeError(c, log, err)
		}
		if user == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNKNOWN_USER", Message: "el usuario del token ya no existe"})
		}
		c.Locals(LocalUsername, user.Username)
		c.Locals(LocalRole, user.Role)
		return c.Next()
	}
}

// GetUsername devuelve el usuario del token (después del middleware de auth).
func GetUsername(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalUsername).(string)
	return s
}

// GetRole devuelve el rol del token (después del middleware de auth).
func GetRole(c *fiber.Ctx) string {
	s, _ := c.Locals(LocalRole).(string)
	return s
}
