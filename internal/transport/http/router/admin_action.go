package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/vishnuvr16/JobPortal/internal/core/auth"
	"github.com/vishnuvr16/JobPortal/internal/domain"
	"github.com/vishnuvr16/JobPortal/internal/service"
	httpez "github.com/vishnuvr16/JobPortal/internal/transport/http/ez"
)

// 把管理端接口集中在这里注册。分组已经走了 AuthJWT(admin)，
// action 上的 Roles 是双保险。
func MountAdminActions(admin *gin.RouterGroup, svcs Services) {
	ezAdmin := httpez.New(admin)
	adminOnly := []auth.Role{auth.RoleAdmin}

	// --- 发布职位：发布者成为归属者 ---
	httpez.RegisterAction[service.CreateJobInput, *domain.JobPosting](ezAdmin, httpez.Action[service.CreateJobInput, *domain.JobPosting]{
		Method: http.MethodPost,
		Path:   "/jobs",
		Binder: httpez.BindJSON,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, ident auth.Identity, in *service.CreateJobInput) (*domain.JobPosting, error) {
			return svcs.Jobs.Create(c.Request.Context(), ident.ID, *in)
		},
	})

	// --- 更新职位：只有发布者命中（未命中统一 not found） ---
	httpez.RegisterAction[service.UpdateJobPatch, *domain.JobPosting](ezAdmin, httpez.Action[service.UpdateJobPatch, *domain.JobPosting]{
		Method: http.MethodPut,
		Path:   "/jobs/:id",
		Binder: httpez.BindJSON,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, ident auth.Identity, in *service.UpdateJobPatch) (*domain.JobPosting, error) {
			return svcs.Jobs.Update(c.Request.Context(), c.Param("id"), ident.ID, *in)
		},
	})

	// --- 删除职位：任意 admin，不校验归属 ---
	httpez.RegisterAction[struct{}, gin.H](ezAdmin, httpez.Action[struct{}, gin.H]{
		Method: http.MethodDelete,
		Path:   "/jobs/:id",
		Binder: httpez.BindNone,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ auth.Identity, _ *struct{}) (gin.H, error) {
			if err := svcs.Jobs.Delete(c.Request.Context(), c.Param("id")); err != nil {
				return nil, err
			}
			return gin.H{"message": "job deleted successfully"}, nil
		},
	})

	// --- 职位的申请人列表（身份展开） ---
	httpez.RegisterAction[struct{}, []service.ApplicantRow](ezAdmin, httpez.Action[struct{}, []service.ApplicantRow]{
		Method: http.MethodGet,
		Path:   "/jobs/:id/applicants",
		Binder: httpez.BindNone,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ auth.Identity, _ *struct{}) ([]service.ApplicantRow, error) {
			return svcs.Apps.ListApplicants(c.Request.Context(), c.Param("id"))
		},
	})

	// --- 设置申请状态：(job, application) 定向更新，返回更新后的职位 ---
	type statusIn struct {
		Status string `json:"status" binding:"required"`
	}
	httpez.RegisterAction[statusIn, *domain.JobPosting](ezAdmin, httpez.Action[statusIn, *domain.JobPosting]{
		Method: http.MethodPut,
		Path:   "/jobs/:id/applicants/:applicationId",
		Binder: httpez.BindJSON,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ auth.Identity, in *statusIn) (*domain.JobPosting, error) {
			return svcs.Apps.SetStatus(c.Request.Context(), c.Param("id"), c.Param("applicationId"), in.Status)
		},
	})

	// --- 用户列表 ---
	type listQ struct {
		Offset      int    `form:"offset,default=0"`
		Limit       int    `form:"limit,default=20"`
		Q           string `form:"q"`            // 按 email/fullName 模糊搜
		WithDeleted bool   `form:"with_deleted"` // 是否包含已封禁
	}
	type row struct {
		ID        string    `json:"id"`
		Email     string    `json:"email"`
		FullName  string    `json:"fullName"`
		Role      string    `json:"role"`
		CreatedAt time.Time `json:"createdAt"`
	}
	type listOut struct {
		Total int64 `json:"total"`
		Items []row `json:"items"`
	}
	httpez.RegisterAction[listQ, listOut](ezAdmin, httpez.Action[listQ, listOut]{
		Method: http.MethodGet,
		Path:   "/users",
		Binder: httpez.BindQuery,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ auth.Identity, in *listQ) (listOut, error) {
			users, total, err := svcs.Users.ListUsers(c.Request.Context(), domain.ListUsersQuery{
				Offset: in.Offset, Limit: in.Limit, Q: in.Q, WithDeleted: in.WithDeleted,
			})
			if err != nil {
				return listOut{}, err
			}
			out := listOut{Total: total, Items: make([]row, 0, len(users))}
			for _, u := range users {
				out.Items = append(out.Items, row{
					ID: u.ID, Email: u.Email, FullName: u.FullName, Role: u.Role, CreatedAt: u.CreatedAt,
				})
			}
			return out, nil
		},
	})

	// --- 封禁（软删） ---
	httpez.RegisterAction[struct{}, gin.H](ezAdmin, httpez.Action[struct{}, gin.H]{
		Method: http.MethodPost,
		Path:   "/users/:id/ban",
		Binder: httpez.BindNone,
		Roles:  adminOnly,
		Handler: func(c *gin.Context, _ auth.Identity, _ *struct{}) (gin.H, error) {
			id := c.Param("id")
			if err := svcs.Users.Ban(c.Request.Context(), id); err != nil {
				return nil, err
			}
			return gin.H{"id": id}, nil
		},
	})
}
