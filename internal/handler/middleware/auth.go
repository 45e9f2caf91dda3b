package middleware

import (
	"log/slog"
	"net/http"
	"strings"

	"coachwell/internal/pkg/config"
	"coachwell/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Identity is the authenticated requester as asserted by the external
// identity service; this service only decodes it, it never issues tokens.
type Identity struct {
	UserID         uuid.UUID
	DisplayName    string
	ContactAddress string
}

const ctxIdentityKey = "identity"

var (
	errMissingSubject = errs.New("token missing subject claim")
	errMissingEmail   = errs.New("token missing email claim")
)

type AuthMiddleware struct {
	secret []byte
}

func NewAuthMiddleware(cfg config.JWTConfig) *AuthMiddleware {
	return &AuthMiddleware{secret: []byte(cfg.Secret)}
}

func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		var token string

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" && strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimSpace(authHeader[len("Bearer "):])
		}

		if token == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Access token required",
			})
			c.Abort()
			return
		}

		identity, err := m.parseToken(token)
		if err != nil {
			slog.Warn("Token validation failed in auth middleware", "error", err.Error())
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid or expired token",
			})
			c.Abort()
			return
		}

		c.Set(ctxIdentityKey, identity)
		c.Next()
	}
}

func (m *AuthMiddleware) parseToken(token string) (Identity, error) {
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errs.New("unexpected signing method")
		}
		return m.secret, nil
	})
	if err != nil {
		return Identity{}, err
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, errMissingSubject
	}

	email, _ := claims["email"].(string)
	if email == "" {
		return Identity{}, errMissingEmail
	}

	name, _ := claims["name"].(string)

	return Identity{
		UserID:         userID,
		DisplayName:    name,
		ContactAddress: email,
	}, nil
}

func GetIdentity(c *gin.Context) (Identity, bool) {
	value, exists := c.Get(ctxIdentityKey)
	if !exists {
		return Identity{}, false
	}

	identity, ok := value.(Identity)
	return identity, ok
}
