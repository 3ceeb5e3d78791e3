package auth

import (
	"errors"
	"server/config"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// Identity is the verified result of a bearer token issued by the external
// identity provider. It is passed explicitly into handlers and never stored
// between requests.
type Identity struct {
	UserID string
	Email  string
	Name   string
}

var (
	ErrNoToken      = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// ExtractBearer returns the token from the Authorization header, or "".
func ExtractBearer(c *gin.Context) string {
	parts := strings.Fields(c.GetHeader("Authorization"))
	if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
		return parts[1]
	}
	return ""
}

// VerifyToken checks the token signature and expiry against the identity
// provider's signing secret and extracts the subject claims.
func VerifyToken(tokenStr string) (*Identity, error) {
	if tokenStr == "" {
		return nil, ErrNoToken
	}
	token, err := jwt.Parse(tokenStr, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(config.AUTH_JWT_SECRET), nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidToken
	}
	sub, _ := claims["sub"].(string)
	if sub == "" {
		return nil, ErrInvalidToken
	}
	identity := Identity{UserID: sub}
	identity.Email, _ = claims["email"].(string)
	identity.Name, _ = claims["name"].(string)
	return &identity, nil
}
