package middleware

import (
	"strings"

	"go-coffee-warehouse/internal/model"
	"go-coffee-warehouse/internal/repository"
	"go-coffee-warehouse/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

// RequireAuth validates the JWT, re-checks the account against the DB
// (enabled flag, token version) and stores the user in the request context.
// A disabled account is denied even with a cryptographically valid token.
func RequireAuth(userRepo repository.UserRepository) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		// Extract token from "Bearer <token>"
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1])
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		if !user.Enabled {
			return c.Status(403).JSON(fiber.Map{"error": "Account is disabled"})
		}

		if user.TokenVersion != claims.TokenVersion {
			return c.Status(401).JSON(fiber.Map{"error": "Session expired (logged in on another device)"})
		}

		c.Locals("user", user)
		return c.Next()
	}
}

// RequireRole checks the authenticated user's role against the allowed set
func RequireRole(roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := c.Locals("user").(*model.User)
		if !ok {
			return c.Status(403).JSON(fiber.Map{"error": "No authenticated user"})
		}

		for _, role := range roles {
			if user.Role == role {
				return c.Next()
			}
		}

		return c.Status(403).JSON(fiber.Map{
			"error": "Forbidden: requires one of the roles " + joinRoles(roles),
		})
	}
}

func joinRoles(roles []model.Role) string {
	parts := make([]string, len(roles))
	for i, r := range roles {
		parts[i] = string(r)
	}
	return strings.Join(parts, ", ")
}
