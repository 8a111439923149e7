package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/agropet/agropet-api/internal/application/dto"
	"github.com/agropet/agropet-api/pkg/jwt"
)

// Locals keys para los claims de sesión en Fiber.
const (
	LocalUserID     = "user_id"
	LocalTenantID   = "tenant_id"
	LocalTenantSlug = "tenant_slug"
	LocalRole       = "role"
	LocalEmail      = "email"
)

// AuthMiddleware valida el Bearer Token JWT y extrae los claims de sesión a c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
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
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalUserID, claims.UserID)
		c.Locals(LocalTenantID, claims.TenantID)
		c.Locals(LocalTenantSlug, claims.TenantSlug)
		c.Locals(LocalRole, claims.Role)
		c.Locals(LocalEmail, claims.Email)
		return c.Next()
	}
}

// RequireRole autoriza solo a los roles indicados. Debe usarse DESPUÉS de AuthMiddleware.
// Token sin claim de rol → 401; rol no permitido → 403.
func RequireRole(allowed ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role := GetRole(c)
		if role == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_ROLE", Message: "token sin claim de rol"})
		}
		for _, a := range allowed {
			if role == a {
				return c.Next()
			}
		}
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "rol sin permiso para esta operación"})
	}
}

// RequireTenantSlug verifica que el slug del path coincida con el del token:
// un usuario de un tenant no puede navegar el namespace de otro.
func RequireTenantSlug(paramName string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Params(paramName)
		if slug == "" || slug != GetTenantSlug(c) {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "TENANT_MISMATCH", Message: "el tenant del token no corresponde a la ruta"})
		}
		return c.Next()
	}
}

// GetUserID devuelve el UserID del contexto (después del middleware de auth).
func GetUserID(c *fiber.Ctx) string { return localString(c, LocalUserID) }

// GetTenantID devuelve el TenantID del contexto.
func GetTenantID(c *fiber.Ctx) string { return localString(c, LocalTenantID) }

// GetTenantSlug devuelve el slug del tenant del contexto.
func GetTenantSlug(c *fiber.Ctx) string { return localString(c, LocalTenantSlug) }

// GetRole devuelve el rol del contexto.
func GetRole(c *fiber.Ctx) string { return localString(c, LocalRole) }

// GetEmail devuelve el email del contexto (verificación de operadores).
func GetEmail(c *fiber.Ctx) string { return localString(c, LocalEmail) }

func localString(c *fiber.Ctx, key string) string {
	v := c.Locals(key)
	if v == nil {
		return ""
	}
	s, _ := v.(string)
	return s
}
