package middleware

import (
	"fmt"
	"log"
	"os"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/joho/godotenv"
)

func init() {
	err := godotenv.Load()
	if err != nil {
		log.Println("Warning: No .env file found")
	}
}

var (
	SecretKey      = os.Getenv("SECRET_KEY")
	tokenBlacklist = make(map[string]bool)
	mu             sync.Mutex
)

// GenerateJWT creates a JWT token carrying the user's ID and role
func GenerateJWT(userID uint, role string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["user_id"] = userID
	claims["user_role"] = role
	claims["exp"] = time.Now().Add(time.Hour * 72).Unix() // Token expires in 72 hours

	tokenString, err := token.SignedString([]byte(SecretKey))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// VerifyJWT parses and validates a JWT token
func VerifyJWT(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		// Ensure the token is using the correct signing method
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method")
		}
		return []byte(SecretKey), nil
	})
}

// BlacklistToken adds a JWT token to the in-memory blacklist (optional if using logout via cookie clear)
func BlacklistToken(token string) {
	mu.Lock()
	defer mu.Unlock()
	tokenBlacklist[token] = true
}

// IsTokenBlacklisted checks if the JWT is blacklisted
func IsTokenBlacklisted(token string) bool {
	mu.Lock()
	defer mu.Unlock()
	return tokenBlacklist[token]
}

// JWTMiddleware checks the cookie for a valid JWT and sets the user ID and
// role in the request context. Handlers read identity from c.Locals rather
// than any global store.
func JWTMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		// Read the token from the "jwt" cookie
		tokenString := c.Cookies("jwt")

		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: No token provided",
			})
		}

		// Optional: Check if the token is blacklisted
		if IsTokenBlacklisted(tokenString) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: Token has been invalidated",
			})
		}

		token, err := VerifyJWT(tokenString)
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"message": "Unauthorized: Invalid token",
			})
		}

		claims := token.Claims.(jwt.MapClaims)
		if id, ok := claims["user_id"].(float64); ok {
			c.Locals("user_id", uint(id))
		}
		if role, ok := claims["user_role"].(string); ok {
			c.Locals("user_role", role)
		}

		return c.Next()
	}
}
