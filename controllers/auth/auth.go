package authController

import (
	"lsf/database"
	"lsf/middleware"
	"lsf/models"
	authValidator "lsf/validators/auth"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/crypto/bcrypt"
)

// Login verifies credentials and issues a 24h bearer token. Unknown username
// and wrong password return the same response so usernames cannot be probed.
func Login(c *fiber.Ctx) error {
	reqData, ok := c.Locals("validatedLogin").(*authValidator.LoginRequest)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusBadRequest, "Invalid request data!")
	}

	var user models.User
	if err := database.Database.Db.Where("username = ?", reqData.Username).First(&user).Error; err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(reqData.Password)); err != nil {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid credentials")
	}

	token, err := middleware.GenerateJWT(user.ID, user.Username, user.Role)
	if err != nil {
		return middleware.InternalErrorResponse(c, err, "Failed to generate token")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"token":   token,
		"user":    user.PublicFields(),
	})
}

// Verify returns the user resolved by the JWT middleware.
func Verify(c *fiber.Ctx) error {
	user, ok := c.Locals("user").(*models.User)
	if !ok {
		return middleware.ErrorResponse(c, fiber.StatusUnauthorized, "Invalid user")
	}

	return c.JSON(fiber.Map{
		"success": true,
		"user":    user.PublicFields(),
	})
}

// Logout is client-side only; tokens stay valid until natural expiry.
func Logout(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"success": true,
		"message": "Logged out successfully",
	})
}
