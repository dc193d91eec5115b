package middleware

import (
	"fmt"
	"strings"

	"treesure/internal/common"
	"treesure/internal/global"
	"treesure/internal/logger"

	"github.com/gofiber/fiber/v3"
	"github.com/golang-jwt/jwt/v5"
	"github.com/sirupsen/logrus"
)

// TokenClaims are the JWT claims issued at login. SessionID scopes the
// snapshot cache to one dashboard session.
type TokenClaims struct {
	UserID    string `json:"userId"`
	SessionID string `json:"sessionId"`
	Email     string `json:"email"`
	jwt.RegisteredClaims
}

// AuthMiddleware validates the Bearer token and stores user_id, session_id
// and user_email in the request context.
func AuthMiddleware() fiber.Handler {
	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("[AUTH] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		claims := &TokenClaims{}
		token, err := jwt.ParseWithClaims(parts[1], claims, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
			}
			return []byte(global.ServerConfig.JwtSecret), nil
		})
		if err != nil || !token.Valid {
			if err != nil && strings.Contains(err.Error(), "expired") {
				HandleErrorResponse(c, common.ErrTokenExpired)
				return nil
			}
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":  c.Path(),
				"error": fmt.Sprintf("%v", err),
			}).Warn("[AUTH] Token verification failed")
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		if claims.UserID == "" || claims.SessionID == "" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		c.Locals("user_id", claims.UserID)
		c.Locals("session_id", claims.SessionID)
		c.Locals("user_email", claims.Email)
		return c.Next()
	}
}
