package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vishnuvr16/JobPortal/internal/core/auth"
	resp "github.com/vishnuvr16/JobPortal/internal/transport/http/response"
)

// AuthJWT 解析 Bearer token，把不可变的 Identity 挂到当前请求上。
// requireRole 非空时在入口处直接卡角色。
func AuthJWT(j *auth.JWTer, requireRole auth.Role) gin.HandlerFunc {
	return func(c *gin.Context) {
		ah := c.GetHeader("Authorization")
		if !strings.HasPrefix(ah, "Bearer ") {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "missing token"))
			return
		}
		claims, err := j.Parse(strings.TrimPrefix(ah, "Bearer "))
		if err != nil {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeUnauthorized, "invalid token"))
			return
		}
		ident := claims.Identity()
		if requireRole != "" && ident.Role != requireRole {
			c.AbortWithStatusJSON(http.StatusOK, resp.Error(resp.CodeForbidden, "forbidden"))
			return
		}
		c.Set(auth.ContextKey, ident)
		c.Next()
	}
}

// IdentityFrom 取出当前请求身份；未登录返回零值
func IdentityFrom(c *gin.Context) auth.Identity {
	if v, ok := c.Get(auth.ContextKey); ok {
		if ident, ok := v.(auth.Identity); ok {
			return ident
		}
	}
	return auth.Identity{}
}
