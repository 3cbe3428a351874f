package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/assetverse/assetverse-api/internal/application/dto"
	"github.com/assetverse/assetverse-api/internal/domain/entity"
)

// userLoader es el contrato mínimo que necesita el middleware RBAC para
// resolver el rol almacenado. Lo implementa postgres.UserRepo; el uso de
// interfaz evita acoplar la capa HTTP a la infraestructura.
type userLoader interface {
	GetByEmail(email string) (*entity.User, error)
}

// RequireRole devuelve un middleware Fiber que carga el usuario por email y
// verifica que su rol ALMACENADO esté entre los permitidos. El claim del
// token no alcanza: el rol autoritativo vive en la DB (una lectura extra por
// llamada, sin cache). Debe usarse DESPUÉS de AuthMiddleware.
//
// Comportamiento:
//   - 401 si no hay email en el contexto (falta AuthMiddleware).
//   - 403 si el usuario no existe o su rol no está permitido.
//   - 503 si falla la consulta a la DB.
func RequireRole(loader userLoader, roles ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		email := GetEmail(c)
		if email == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{
				Code:    "UNAUTHORIZED",
				Message: "email no encontrado en el token",
			})
		}

		user, err := loader.GetByEmail(email)
		if err != nil {
			return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{
				Code:    "ROLE_CHECK_FAILED",
				Message: "no se pudo verificar el rol, intente más tarde",
			})
		}
		if user == nil || !roleAllowed(user.Role, roles) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{
				Code:    "FORBIDDEN",
				Message: "acceso denegado",
			})
		}

		// El rol y el nombre almacenados quedan disponibles para los handlers.
		c.Locals(LocalRole, user.Role)
		c.Locals(LocalUserName, user.Name)
		return c.Next()
	}
}

func roleAllowed(role string, allowed []string) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
