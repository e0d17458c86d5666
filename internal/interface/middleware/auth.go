package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"

	"github.com/mewzone/mewzone/pkg/helpers"
	"github.com/mewzone/mewzone/pkg/response"
)

const (
	CtxUserIDKey = "userID"
	CtxUserRole  = "userRole"
	CtxUserStaff = "userStaff"
	CtxUserName  = "userName"
	CtxUserEmail = "userEmail"
)

// Auth validates the access token and ensures an active session exists in
// Redis. It sets userID, role and staff flags in the Gin context on success.
func Auth(rdb *redis.Client, jwt *helpers.JWTManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, err := c.Cookie("access_token")
		if err != nil || token == "" {
			response.Error(c, http.StatusUnauthorized, "missing access token", nil)
			c.Abort()
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "invalid access token", nil)
			c.Abort()
			return
		}

		key := "user:session:" + claims.UserID
		data, err := rdb.HGetAll(c.Request.Context(), key).Result()
		if err != nil || len(data) == 0 {
			response.Error(c, http.StatusUnauthorized, "session not found", nil)
			c.Abort()
			return
		}

		c.Set(CtxUserIDKey, data["user_id"])
		c.Set(CtxUserRole, data["role"])
		c.Set(CtxUserStaff, data["is_staff"] == "1" || data["is_staff"] == "true")
		c.Set(CtxUserName, data["name"])
		c.Set(CtxUserEmail, data["email"])
		c.Next()
	}
}

// RequireRole gates a group to one account role ("SELLER", "NORMAL").
// Must run after Auth.
func RequireRole(role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString(CtxUserRole) != role {
			response.Error(c, http.StatusForbidden, "insufficient role", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}

// RequireStaff gates a group to staff accounts. Must run after Auth.
func RequireStaff() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(CtxUserStaff) {
			response.Error(c, http.StatusForbidden, "staff only", nil)
			c.Abort()
			return
		}
		c.Next()
	}
}
