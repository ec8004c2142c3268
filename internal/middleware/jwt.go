package middleware

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Account types carried in token claims. Only operators may mutate routes.
const (
	AccountTypeUser     = "user"
	AccountTypeOperator = "operator"
)

// secret is read lazily so a JWT_SECRET loaded from .env (godotenv runs
// inside config.InitDB, after package init) is still picked up.
func secret() []byte {
	if val := os.Getenv("JWT_SECRET"); val != "" {
		return []byte(val)
	}
	return []byte("supersecret") // fallback
}

// GenerateToken mints a signed token for a rider or operator account.
func GenerateToken(accountID uint, accountType string) (string, error) {
	claims := jwt.MapClaims{
		"account_id":   accountID,
		"account_type": accountType,
		"exp":          time.Now().Add(72 * time.Hour).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret())
}

func ValidateToken(tokenStr string) (*jwt.Token, error) {
	return jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		return secret(), nil
	}, jwt.WithValidMethods([]string{"HS256"}))
}

// authenticate validates the bearer token and stores the normalized
// identity (account_id as uint, account_type as string) in the context.
// It aborts on failure and reports whether the caller may proceed; it
// never advances the handler chain itself.
func authenticate(c *gin.Context) bool {
	authHeader := c.GetHeader("Authorization")
	if authHeader == "" || !strings.HasPrefix(authHeader, "Bearer ") {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Missing or invalid Authorization header"})
		return false
	}

	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	token, err := ValidateToken(tokenString)
	if err != nil || !token.Valid {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid or expired token"})
		return false
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return false
	}

	// Numeric claims come back as float64; normalize once here so
	// handlers never compare identities across types.
	id, ok := claims["account_id"].(float64)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Invalid token claims"})
		return false
	}
	accountType, _ := claims["account_type"].(string)

	c.Set("account_id", uint(id))
	c.Set("account_type", accountType)

	return true
}

// RequireAuth ensures a valid JWT is present before the handler runs.
func RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}
		c.Next()
	}
}

// RequireAuthWithType ensures the JWT is valid and belongs to a specific
// account type ("user" or "operator"). The type check happens before the
// chain advances, so a mismatched account never reaches the handler.
func RequireAuthWithType(requiredType string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !authenticate(c) {
			return
		}

		typeIfc, exists := c.Get("account_type")
		if !exists {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Account type not found in token"})
			return
		}
		if accountType, ok := typeIfc.(string); !ok || accountType != requiredType {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "Insufficient permissions"})
			return
		}

		c.Next()
	}
}
