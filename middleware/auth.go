package middleware

import (
	"errors"
	"net/http"
	"strings"

	"quotecompare/models"
	"quotecompare/utils"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

const userContextKey = "authUser"

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return ""
	}
	return strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
}

// RequireAuth rejects requests without a valid bearer token.
func RequireAuth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			utils.JSONError(c, http.StatusUnauthorized, "Missing or invalid Authorization header")
			return
		}
		user, err := a.Authenticate(c.Request.Context(), token, c.GetHeader(utils.MockRoleHeader))
		if err != nil {
			abortAuth(c, err)
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// OptionalAuth attaches the caller when a usable token is present and lets
// everyone else through as a guest. Blocked accounts are still refused.
func OptionalAuth(a *Authenticator) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.Next()
			return
		}
		user, err := a.Authenticate(c.Request.Context(), token, c.GetHeader(utils.MockRoleHeader))
		if err != nil {
			if errors.Is(err, ErrAccountBlocked) {
				abortAuth(c, err)
				return
			}
			utils.GetLogger().Debug("ignoring unusable token on optional route", zap.Error(err))
			c.Next()
			return
		}
		c.Set(userContextKey, user)
		c.Next()
	}
}

// RequireRole must run after RequireAuth.
func RequireRole(roles ...models.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := CurrentUser(c)
		if !ok {
			utils.JSONError(c, http.StatusUnauthorized, "Unauthorized")
			return
		}
		for _, r := range roles {
			if user.Role == r {
				c.Next()
				return
			}
		}
		utils.JSONError(c, http.StatusForbidden, "Forbidden: insufficient role")
	}
}

// CurrentUser returns the identity attached by the auth middleware.
func CurrentUser(c *gin.Context) (*models.AuthUser, bool) {
	v, ok := c.Get(userContextKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*models.AuthUser)
	return user, ok && user != nil
}

func abortAuth(c *gin.Context, err error) {
	if errors.Is(err, ErrAccountBlocked) {
		utils.JSONError(c, http.StatusForbidden, "Account is blocked")
		return
	}
	utils.GetLogger().Debug("authentication failed", zap.Error(err))
	utils.JSONError(c, http.StatusUnauthorized, "Invalid token")
}
