package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vishnuvr16/JobPortal/internal/core/auth"
	"github.com/vishnuvr16/JobPortal/internal/domain"
	"github.com/vishnuvr16/JobPortal/internal/service"
	httpez "github.com/vishnuvr16/JobPortal/internal/transport/http/ez"
)

type userOut struct {
	ID       string `json:"id"`
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

func toUserOut(u *domain.User) userOut {
	return userOut{ID: u.ID, FullName: u.FullName, Email: u.Email, Role: u.Role}
}

func mountAuthActions(api, authed *gin.RouterGroup, users *service.UserService, jwter *auth.JWTer) {
	ezPublic := httpez.New(api)

	// /auth/register：注册即发 token，新用户固定 candidate 角色
	type registerIn struct {
		FullName string `json:"fullName" binding:"required,max=64"`
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	type tokenOut struct {
		Token string  `json:"token"`
		User  userOut `json:"user"`
	}
	httpez.RegisterAction[registerIn, tokenOut](ezPublic, httpez.Action[registerIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/auth/register",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ auth.Identity, in *registerIn) (tokenOut, error) {
			u, err := users.Register(c.Request.Context(), service.RegisterInput{
				FullName: in.FullName, Email: in.Email, Password: in.Password,
			})
			if err != nil {
				return tokenOut{}, err
			}
			tok, err := jwter.Issue(u.ID, u.Role)
			if err != nil {
				return tokenOut{}, domain.NewError(domain.CodeInternal, "issue token failed", err)
			}
			return tokenOut{Token: tok, User: toUserOut(u)}, nil
		},
	})

	// /auth/login
	type loginIn struct {
		Email    string `json:"email"    binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	httpez.RegisterAction[loginIn, tokenOut](ezPublic, httpez.Action[loginIn, tokenOut]{
		Method: http.MethodPost,
		Path:   "/auth/login",
		Binder: httpez.BindJSON,
		Handler: func(c *gin.Context, _ auth.Identity, in *loginIn) (tokenOut, error) {
			u, err := users.Login(c.Request.Context(), in.Email, in.Password)
			if err != nil {
				return tokenOut{}, err
			}
			tok, err := jwter.Issue(u.ID, u.Role)
			if err != nil {
				return tokenOut{}, domain.NewError(domain.CodeInternal, "issue token failed", err)
			}
			return tokenOut{Token: tok, User: toUserOut(u)}, nil
		},
	})

	// /auth/logout：Bearer 模式下服务端无会话可销，仅保留端点形状
	httpez.RegisterAction[struct{}, gin.H](ezPublic, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/auth/logout",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ auth.Identity, _ *struct{}) (gin.H, error) {
			return gin.H{"message": "logged out"}, nil
		},
	})

	ezAuth := httpez.New(authed)

	// /me
	httpez.RegisterAction[struct{}, userOut](ezAuth, httpez.Action[struct{}, userOut]{
		Method: http.MethodGet,
		Path:   "/me",
		Binder: httpez.BindNone,
		Roles:  []auth.Role{auth.RoleCandidate, auth.RoleAdmin},
		Handler: func(c *gin.Context, ident auth.Identity, _ *struct{}) (userOut, error) {
			u, err := users.GetProfile(c.Request.Context(), ident.ID)
			if err != nil {
				return userOut{}, err
			}
			return toUserOut(u), nil
		},
	})

	// /profile：完整档案（不含密码哈希，实体已屏蔽）
	httpez.RegisterAction[struct{}, *domain.User](ezAuth, httpez.Action[struct{}, *domain.User]{
		Method: http.MethodGet,
		Path:   "/profile",
		Binder: httpez.BindNone,
		Roles:  []auth.Role{auth.RoleCandidate, auth.RoleAdmin},
		Handler: func(c *gin.Context, ident auth.Identity, _ *struct{}) (*domain.User, error) {
			return users.GetProfile(c.Request.Context(), ident.ID)
		},
	})

	// 档案更新走白名单补丁，role/email 改不了
	httpez.RegisterAction[service.ProfilePatch, *domain.User](ezAuth, httpez.Action[service.ProfilePatch, *domain.User]{
		Method: http.MethodPut,
		Path:   "/profile",
		Binder: httpez.BindJSON,
		Roles:  []auth.Role{auth.RoleCandidate, auth.RoleAdmin},
		Handler: func(c *gin.Context, ident auth.Identity, in *service.ProfilePatch) (*domain.User, error) {
			return users.UpdateProfile(c.Request.Context(), ident.ID, *in)
		},
	})
}
