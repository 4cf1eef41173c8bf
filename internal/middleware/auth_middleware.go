package middleware

import (
	"strings"

	"go-medistore/internal/model"
	"go-medistore/internal/repository"
	"go-medistore/pkg/jwt"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const userLocal = "auth_user"

// AuthUser is the caller identity attached to the request context
type AuthUser struct {
	ID            uuid.UUID
	Name          string
	Email         string
	Role          model.Role
	EmailVerified bool
}

// Protect validates the bearer token, loads the user and enforces the
// permitted-role allowlist. An empty allowlist admits any authenticated
// user with a verified email.
func Protect(userRepo repository.UserRepository, roles ...model.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(401).JSON(fiber.Map{"error": "Missing authorization token"})
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || strings.ToLower(parts[0]) != "bearer" {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid authorization format. Use: Bearer <token>"})
		}

		claims, err := jwt.ValidateToken(parts[1], jwt.PurposeSession)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "Invalid or expired token"})
		}

		// Role and verification state are read fresh from the database,
		// not trusted from the token
		user, err := userRepo.FindByID(claims.UserID)
		if err != nil {
			return c.Status(401).JSON(fiber.Map{"error": "User not found"})
		}

		if !user.EmailVerified {
			return c.Status(403).JSON(fiber.Map{"error": "Please verify your email to access this resource"})
		}

		if len(roles) > 0 && !roleAllowed(user.Role, roles) {
			return c.Status(403).JSON(fiber.Map{"error": "Forbidden: you don't have enough permission to access this resource"})
		}

		c.Locals(userLocal, &AuthUser{
			ID:            user.ID,
			Name:          user.Name,
			Email:         user.Email,
			Role:          user.Role,
			EmailVerified: user.EmailVerified,
		})

		return c.Next()
	}
}

// CurrentUser returns the identity set by Protect, or nil on public routes
func CurrentUser(c *fiber.Ctx) *AuthUser {
	user, _ := c.Locals(userLocal).(*AuthUser)
	return user
}

func roleAllowed(role model.Role, allowed []model.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}
