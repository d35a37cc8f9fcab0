package router

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/vishnuvr16/JobPortal/internal/core/auth"
	"github.com/vishnuvr16/JobPortal/internal/domain"
	"github.com/vishnuvr16/JobPortal/internal/service"
	httpez "github.com/vishnuvr16/JobPortal/internal/transport/http/ez"
)

// 公共浏览 + 候选人投递
func mountJobActions(api, authed *gin.RouterGroup, svcs Services) {
	ezPublic := httpez.New(api)

	// 列表无过滤无分页（现网契约如此）
	httpez.RegisterAction[struct{}, []domain.JobPosting](ezPublic, httpez.Action[struct{}, []domain.JobPosting]{
		Method: http.MethodGet,
		Path:   "/jobs",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ auth.Identity, _ *struct{}) ([]domain.JobPosting, error) {
			return svcs.Jobs.List(c.Request.Context())
		},
	})

	httpez.RegisterAction[struct{}, []domain.JobPosting](ezPublic, httpez.Action[struct{}, []domain.JobPosting]{
		Method: http.MethodGet,
		Path:   "/jobs/featured",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ auth.Identity, _ *struct{}) ([]domain.JobPosting, error) {
			return svcs.Jobs.GetFeatured(c.Request.Context())
		},
	})

	httpez.RegisterAction[struct{}, []domain.JobPosting](ezPublic, httpez.Action[struct{}, []domain.JobPosting]{
		Method: http.MethodGet,
		Path:   "/jobs/category/:category",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ auth.Identity, _ *struct{}) ([]domain.JobPosting, error) {
			return svcs.Jobs.GetByCategory(c.Request.Context(), c.Param("category"))
		},
	})

	httpez.RegisterAction[struct{}, *domain.JobPosting](ezPublic, httpez.Action[struct{}, *domain.JobPosting]{
		Method: http.MethodGet,
		Path:   "/jobs/:id",
		Binder: httpez.BindNone,
		Handler: func(c *gin.Context, _ auth.Identity, _ *struct{}) (*domain.JobPosting, error) {
			return svcs.Jobs.GetByID(c.Request.Context(), c.Param("id"))
		},
	})

	ezAuth := httpez.New(authed)

	// 投递：仅候选人。成功只回确认信息
	httpez.RegisterAction[service.ApplyInput, gin.H](ezAuth, httpez.Action[service.ApplyInput, gin.H]{
		Method: http.MethodPost,
		Path:   "/jobs/:id/apply",
		Binder: httpez.BindJSON,
		Roles:  []auth.Role{auth.RoleCandidate},
		Handler: func(c *gin.Context, ident auth.Identity, in *service.ApplyInput) (gin.H, error) {
			if err := svcs.Apps.Apply(c.Request.Context(), c.Param("id"), ident.ID, *in); err != nil {
				return nil, err
			}
			return gin.H{"message": "application submitted successfully"}, nil
		},
	})

	// 我的申请：返回的是职位列表（职位形状，不是申请子文档）
	httpez.RegisterAction[struct{}, []domain.JobPosting](ezAuth, httpez.Action[struct{}, []domain.JobPosting]{
		Method: http.MethodGet,
		Path:   "/candidate/applications",
		Binder: httpez.BindNone,
		Roles:  []auth.Role{auth.RoleCandidate},
		Handler: func(c *gin.Context, ident auth.Identity, _ *struct{}) ([]domain.JobPosting, error) {
			return svcs.Apps.ListUserApplications(c.Request.Context(), ident.ID)
		},
	})
}
