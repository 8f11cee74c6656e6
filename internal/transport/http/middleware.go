package http

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/you/hotel-booking/internal/domain"
	"github.com/you/hotel-booking/pkg/auth"
)

const (
	ctxUserID = "uid"
	ctxRole   = "role"
)

func JWTAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		h := c.GetHeader("Authorization")
		if !strings.HasPrefix(h, "Bearer ") {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		claims, err := auth.ParseValidate(strings.TrimPrefix(h, "Bearer "))
		if err != nil {
			c.AbortWithStatus(http.StatusUnauthorized)
			return
		}
		c.Set(ctxUserID, claims.UserID)
		c.Set(ctxRole, claims.Role)
		c.Next()
	}
}

func RequireRole(roles ...string) gin.HandlerFunc {
	allowed := map[string]struct{}{}
	for _, r := range roles {
		allowed[r] = struct{}{}
	}
	return func(c *gin.Context) {
		v, _ := c.Get(ctxRole)
		role, _ := v.(string)
		if _, ok := allowed[role]; !ok {
			c.AbortWithStatus(http.StatusForbidden)
			return
		}
		c.Next()
	}
}

// actor pulls the authenticated identity out of the request context. The
// services never read it themselves; handlers pass it explicitly.
func actor(c *gin.Context) (uint, domain.Role) {
	v, _ := c.Get(ctxUserID)
	id, _ := v.(uint)
	r, _ := c.Get(ctxRole)
	role, _ := r.(string)
	return id, domain.Role(role)
}
