package auth

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog/log"
)

// Locals keys set by the bearer middleware.
const (
	LocalsClaims = "claims"
	LocalsRole   = "role"
)

// BearerMiddleware parses an Authorization bearer token when present and
// stores its claims in fiber locals. A missing token is not an error at
// this layer; permission-gated routes reject later.
func BearerMiddleware(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return c.Next()
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			return c.Next()
		}

		claims, err := ParseToken(secret, tokenString)
		if err != nil {
			log.Debug().Err(err).Msg("rejected bearer token")
			return c.Next()
		}

		c.Locals(LocalsClaims, claims)
		c.Locals(LocalsRole, Role(claims.Role))

		return c.Next()
	}
}

// RoleFromContext returns the authenticated role of the request, if any.
func RoleFromContext(c *fiber.Ctx) (Role, bool) {
	role, ok := c.Locals(LocalsRole).(Role)
	return role, ok
}

// ClaimsFromContext returns the bearer claims of the request, if any.
func ClaimsFromContext(c *fiber.Ctx) (*Claims, bool) {
	claims, ok := c.Locals(LocalsClaims).(*Claims)
	return claims, ok
}

// RequirePermission creates Fiber middleware that requires a specific permission.
func RequirePermission(authService *Service, permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := RoleFromContext(c)
		if !ok {
			return unauthorized(c)
		}

		if !authService.HasPermission(role, permission) {
			log.Warn().Str("role", role.String()).Str("permission", permission).
				Msg("role lacks required permission")

			return forbidden(c, permission)
		}

		return c.Next()
	}
}

// RequireAnyPermission creates Fiber middleware that requires at least one of the given permissions.
func RequireAnyPermission(authService *Service, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := RoleFromContext(c)
		if !ok {
			return unauthorized(c)
		}

		if !authService.HasAnyPermission(role, permissions) {
			log.Warn().Str("role", role.String()).Strs("permissions", permissions).
				Msg("role lacks required permissions")

			return forbidden(c, permissions[0])
		}

		return c.Next()
	}
}

// RequireAllPermissions creates Fiber middleware that requires all the given permissions.
func RequireAllPermissions(authService *Service, permissions ...string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		role, ok := RoleFromContext(c)
		if !ok {
			return unauthorized(c)
		}

		if !authService.HasAllPermissions(role, permissions) {
			log.Warn().Str("role", role.String()).Strs("permissions", permissions).
				Msg("role lacks required permissions")

			for _, perm := range permissions {
				if !authService.HasPermission(role, perm) {
					return forbidden(c, perm)
				}
			}
		}

		return c.Next()
	}
}

func unauthorized(c *fiber.Ctx) error {
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
		"success": false,
		"message": "Unauthorized",
	})
}

func forbidden(c *fiber.Ctx, permission string) error {
	return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
		"success":   false,
		"message":   "Bạn không có quyền " + DescribePermission(permission),
		"errorCode": ErrorCodePermissionDenied,
	})
}
