package util

import (
	"errors"

	"studystack_backend/internal/config"
	"studystack_backend/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// IdentityClaims are the verified claims carried by the external
// provider's bearer token. Subject is the stable external user id.
type IdentityClaims struct {
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
	jwt.RegisteredClaims
}

var ErrInvalidToken = errors.New("invalid identity token")

// VerifyIdentityToken checks the provider signature, issuer and audience.
// The service never issues tokens; it only consumes them.
func VerifyIdentityToken(tokenString string, cfg *config.IdentityConfig) (*IdentityClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &IdentityClaims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(cfg.Secret), nil
	},
		jwt.WithIssuer(cfg.Issuer),
		jwt.WithAudience(cfg.Audience),
	)

	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*IdentityClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// GetUserFromContext returns the synced local user, or nil when the
// request was not authenticated.
func GetUserFromContext(c *gin.Context) *model.User {
	v, exists := c.Get("currentUser")
	if !exists {
		return nil
	}
	user, ok := v.(*model.User)
	if !ok {
		return nil
	}
	return user
}

// GetResourceFromContext returns the resource loaded by the ownership
// middleware.
func GetResourceFromContext(c *gin.Context) *model.Resource {
	v, exists := c.Get("resource")
	if !exists {
		return nil
	}
	res, ok := v.(*model.Resource)
	if !ok {
		return nil
	}
	return res
}
