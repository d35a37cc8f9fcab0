package ez

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/vishnuvr16/JobPortal/internal/core/auth"
	"github.com/vishnuvr16/JobPortal/internal/domain"
	resp "github.com/vishnuvr16/JobPortal/internal/transport/http/response"
)

type EZ struct{ g *gin.RouterGroup }

func New(g *gin.RouterGroup) EZ { return EZ{g: g} }

// 绑定方式
type Binder string

const (
	BindJSON  Binder = "json"  // 从 JSON 绑定
	BindQuery Binder = "query" // 从 URL ?a=b 绑定
	BindNone  Binder = "none"  // 不绑定，自己从 c.Param / c.PostForm 取
)

// Action 非 CRUD 一行注册：I 入参，O 出参。
// Roles 非空时先过授权门（未认证 401 / 角色不符 403），
// 判定失败直接短路，handler 不会执行。
type Action[I any, O any] struct {
	Method  string      // "GET" | "POST" | "PUT" | "DELETE"
	Path    string      // 例："/jobs/:id/apply"
	Binder  Binder      // 绑定方式
	Roles   []auth.Role // 要求的角色集合；nil 表示公共接口
	Handler func(c *gin.Context, ident auth.Identity, in *I) (O, error)
}

func RegisterAction[I any, O any](e EZ, a Action[I, O]) {
	h := func(c *gin.Context) {
		// 1) 授权门
		ident := identityFrom(c)
		if len(a.Roles) > 0 {
			if err := auth.Require(ident, a.Roles...); err != nil {
				writeErr(c, err)
				return
			}
		}

		// 2) 绑定入参
		var in I
		var bindErr error
		switch a.Binder {
		case BindJSON:
			bindErr = c.ShouldBindJSON(&in)
		case BindQuery:
			bindErr = c.ShouldBindQuery(&in)
		default: // BindNone
		}
		if bindErr != nil {
			c.JSON(http.StatusOK, resp.Error(resp.CodeBadRequest, bindErr.Error()))
			return
		}

		// 3) 执行 + 统一错误映射
		out, err := a.Handler(c, ident, &in)
		if err != nil {
			writeErr(c, err)
			return
		}
		c.JSON(http.StatusOK, resp.OK(out))
	}

	switch strings.ToUpper(a.Method) {
	case http.MethodGet:
		e.g.GET(a.Path, h)
	case http.MethodPut:
		e.g.PUT(a.Path, h)
	case http.MethodDelete:
		e.g.DELETE(a.Path, h)
	default: // 默认 POST
		e.g.POST(a.Path, h)
	}
}

func identityFrom(c *gin.Context) auth.Identity {
	if v, ok := c.Get(auth.ContextKey); ok {
		if ident, ok := v.(auth.Identity); ok {
			return ident
		}
	}
	return auth.Identity{}
}

// writeErr 业务错误码 → 响应码；未识别的一律 500
func writeErr(c *gin.Context, err error) {
	var de *domain.Error
	if errors.As(err, &de) {
		c.JSON(http.StatusOK, resp.Error(httpCode(de.Code), de.Error()))
		return
	}
	c.JSON(http.StatusOK, resp.Error(resp.CodeServerError, err.Error()))
}

func httpCode(code domain.ErrCode) int {
	switch code {
	case domain.CodeValidation:
		return resp.CodeBadRequest
	case domain.CodeNotFound:
		return resp.CodeNotFound
	case domain.CodeDuplicate:
		return resp.CodeConflict
	case domain.CodeUnauthenticated:
		return resp.CodeUnauthorized
	case domain.CodeForbidden:
		return resp.CodeForbidden
	default:
		return resp.CodeServerError
	}
}
