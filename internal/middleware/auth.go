package middleware

import (
	"errors"
	"strings"

	"studystack_backend/internal/model"
	"studystack_backend/internal/repository"
	"studystack_backend/internal/service"
	"studystack_backend/internal/util"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

func bearerToken(c *gin.Context) string {
	authHeader := c.GetHeader("Authorization")
	if authHeader != "" {
		return strings.TrimPrefix(authHeader, "Bearer ")
	}
	return c.Query("token")
}

// AuthMiddleware verifies the identity provider's bearer token and
// ensures a local user row exists for it (created lazily with the
// default VIEWER role). The synced user is attached to the context.
func AuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		claims, err := auth.VerifyToken(tokenString)
		if err != nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		user, err := auth.SyncUser(c.Request.Context(), claims, tokenString)
		if err != nil {
			util.LogInternalError(c, err)
			c.Abort()
			return
		}

		c.Set("currentUser", user)
		c.Next()
	}
}

// TryAuthMiddleware attaches the user when a valid token is present but
// lets anonymous requests through. Used on listing/detail endpoints
// where visibility depends on who is asking.
func TryAuthMiddleware(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := bearerToken(c)
		if tokenString == "" {
			c.Next()
			return
		}

		claims, err := auth.VerifyToken(tokenString)
		if err != nil {
			c.Next()
			return
		}

		if user, err := auth.SyncUser(c.Request.Context(), claims, tokenString); err == nil {
			c.Set("currentUser", user)
		}
		c.Next()
	}
}

// RoleMiddleware rejects requests whose synced user holds none of the
// allowed roles. Admins pass every role gate.
func RoleMiddleware(roles ...model.UserRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		if user.IsAdmin() {
			c.Next()
			return
		}

		for _, role := range roles {
			if user.Role == role {
				c.Next()
				return
			}
		}

		util.Forbidden(c)
		c.Abort()
	}
}

// OwnershipMiddleware loads the resource in the :id path parameter and
// permits the request only when the caller is its uploader or an admin.
// The loaded resource is attached to the context for the handler.
func OwnershipMiddleware(resourceRepo *repository.ResourceRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := util.GetUserFromContext(c)
		if user == nil {
			util.Unauthorized(c)
			c.Abort()
			return
		}

		id := util.MustParseUint(c.Param("id"))
		resource, err := resourceRepo.FindByID(id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				util.NotFound(c)
			} else {
				util.LogInternalError(c, err)
			}
			c.Abort()
			return
		}

		if !resource.OwnedBy(user) {
			util.Forbidden(c)
			c.Abort()
			return
		}

		c.Set("resource", resource)
		c.Next()
	}
}
