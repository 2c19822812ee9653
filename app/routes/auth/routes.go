package auth

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/matti7866/api-sub001/app/config"
	"github.com/matti7866/api-sub001/app/database"
)

func SetupAuthRoutes(app *fiber.App) {
	auth := app.Group("/auth")

	// Public routes
	auth.Post("/login", LoginAPI)
	auth.Post("/logout", LogoutAPI)

	// Protected routes
	auth.Use(AuthMiddleware)
	auth.Post("/change-password", ChangePasswordAPI)
}

// AuthMiddleware validates JWT and sets user context
func AuthMiddleware(c *fiber.Ctx) error {
	// Get JWT token from cookie or Authorization header
	var tokenString string

	// First try cookie
	tokenString = c.Cookies("jwt_token")

	// If no cookie, try Authorization header
	if tokenString == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			tokenString = strings.TrimPrefix(auth, "Bearer ")
		}
	}

	if tokenString == "" {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Authentication required"})
	}

	claims, err := ValidateJWT(tokenString)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"success": false, "message": "Invalid token"})
	}

	c.Locals("user_id", claims.UserID)
	c.Locals("user_email", claims.Email)
	c.Locals("user_first_name", claims.FirstName)
	c.Locals("user_last_name", claims.LastName)
	c.Locals("role_id", claims.RoleID)
	c.Locals("role_name", claims.RoleName)

	return c.Next()
}

// RequirePermission checks the role's flag for an action on a resource.
// Action is one of select, insert, update, delete.
func RequirePermission(resource, action string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		roleID, ok := c.Locals("role_id").(string)
		if !ok || roleID == "" {
			return c.Status(401).JSON(fiber.Map{"success": false, "message": "Authentication required"})
		}

		allowed, err := database.HasPermission(config.GetDB(), roleID, resource, action)
		if err != nil {
			log.Printf("Permission check failed for role %s on %s.%s: %v", roleID, resource, action, err)
			return c.Status(500).JSON(fiber.Map{"success": false, "message": "Permission check failed"})
		}
		if !allowed {
			return c.Status(403).JSON(fiber.Map{"success": false, "message": "Insufficient permissions"})
		}

		return c.Next()
	}
}
