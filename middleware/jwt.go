package middleware

import (
	"fmt"
	"strings"
	"time"

	"lsf/config"
	"lsf/database"
	"lsf/models"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

// GenerateJWT generates a JWT token for the user
func GenerateJWT(userID uint, username, role string) (string, error) {
	claims := jwt.MapClaims{
		"userId":   userID,
		"username": username,
		"role":     role,
		"iat":      time.Now().Unix(),                     // issued at
		"exp":      time.Now().Add(24 * time.Hour).Unix(), // expiry 24h
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	jwtSecret := []byte(config.AppConfig.JWTKey)

	return token.SignedString(jwtSecret)
}

// JWTMiddleware guards mutating routes. It verifies the bearer token and
// re-resolves the embedded user id against the users table, so a token for a
// removed user stops working before its natural expiry.
func JWTMiddleware(c *fiber.Ctx) error {
	// Get the token from the Authorization header
	authHeader := c.Get("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Access token required")
	}

	tokenString := authHeader[len("Bearer "):]

	// Parse and validate the token
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return []byte(config.AppConfig.JWTKey), nil
	})
	if err != nil || !token.Valid {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid or expired token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || claims["userId"] == nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid token payload")
	}

	// JWT numeric claims decode as float64
	userID := uint(claims["userId"].(float64))

	var user models.User
	if err := database.Database.Db.Where("id = ?", userID).First(&user).Error; err != nil {
		return ErrorResponse(c, fiber.StatusUnauthorized, "Invalid user")
	}

	c.Locals("user", &user)
	c.Locals("userId", user.ID)

	return c.Next()
}

// ErrorResponse writes the uniform error body used across the API.
func ErrorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(fiber.Map{
		"error": message,
	})
}

// InternalErrorResponse hides storage/disk failure detail from callers;
// outside of production it includes the underlying error message.
func InternalErrorResponse(c *fiber.Ctx, err error, message string) error {
	if config.AppConfig.AppEnv != "production" && err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   message,
			"message": err.Error(),
		})
	}
	return ErrorResponse(c, fiber.StatusInternalServerError, message)
}

// ValidationErrorResponse reports per-field validation failures.
func ValidationErrorResponse(c *fiber.Ctx, errors map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":  "Validation failed!",
		"errors": errors,
	})
}
