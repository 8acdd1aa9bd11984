package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"dutywire/internal/infrastructure/auth"
	"dutywire/internal/shared/constants"
	"dutywire/internal/shared/logger"
	"dutywire/internal/shared/utils"
)

type AuthMiddleware struct {
	jwtService *auth.JWTService
	logger     logger.Interface
}

func NewAuthMiddleware(jwtService *auth.JWTService, logger logger.Interface) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService: jwtService,
		logger:     logger,
	}
}

// RequireAuth verifies the bearer token and stores the caller's identity in
// the request context for handlers and the authorization layer.
func (m *AuthMiddleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "missing authorization token")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid authorization header format")
			c.Abort()
			return
		}

		claims, err := m.jwtService.Verify(parts[1])
		if err != nil {
			m.logger.Warnw("failed to verify token", "error", err)
			utils.ErrorResponse(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyOfficerID, claims.OfficerID)
		c.Set(constants.ContextKeyOrgID, claims.OrgID)
		c.Set(constants.ContextKeyUserRole, string(claims.Role))
		if claims.Rank != nil {
			c.Set(constants.ContextKeyRank, *claims.Rank)
		}
		if claims.BadgeNumber != nil {
			c.Set(constants.ContextKeyBadgeNumber, *claims.BadgeNumber)
		}

		c.Next()
	}
}
