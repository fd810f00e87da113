package middleware

import (
	"strings"

	"examprep/backend/config"
	"examprep/backend/models"
	"examprep/backend/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const currentUserKey = "currentUser"

// AuthMiddleware validates the bearer token and resolves its subject to a
// user record. The token carries all session state; nothing is kept
// server-side between requests.
func AuthMiddleware(db *gorm.DB, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return utils.Unauthorized(c, "Could not validate credentials")
		}
		tokenString := strings.TrimPrefix(header, "Bearer ")

		email, err := utils.ParseAccessToken(tokenString, cfg)
		if err != nil {
			return utils.Unauthorized(c, "Could not validate credentials")
		}

		var user models.User
		if err := db.Where("email = ?", email).First(&user).Error; err != nil {
			return utils.Unauthorized(c, "Could not validate credentials")
		}

		c.Locals(currentUserKey, &user)
		return c.Next()
	}
}

// CurrentUser returns the user resolved by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) *models.User {
	user, _ := c.Locals(currentUserKey).(*models.User)
	return user
}
