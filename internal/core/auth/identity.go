package auth

import "github.com/vishnuvr16/JobPortal/internal/domain"

type Role string

const (
	RoleCandidate Role = "candidate"
	RoleAdmin     Role = "admin"
)

// ContextKey gin context 中存放 Identity 的键
const ContextKey = "identity"

// Identity 每个请求独立携带的不可变身份值
type Identity struct {
	ID   string
	Role Role
}

func (id Identity) Zero() bool { return id.ID == "" }

// Require 纯判定，无副作用：未认证 → Unauthenticated，角色不在集合内 → Forbidden。
// 必须在任何写库动作之前判定并短路。
func Require(id Identity, roles ...Role) error {
	if id.Zero() {
		return domain.NewError(domain.CodeUnauthenticated, "unauthorized", nil)
	}
	if len(roles) == 0 {
		return nil
	}
	for _, r := range roles {
		if id.Role == r {
			return nil
		}
	}
	return domain.NewError(domain.CodeForbidden, "forbidden", nil)
}

// CanModifyPosting 编辑类操作的归属判定：admin 或职位的发布者。
// 注意删除路径沿用数据层行为，不走这里（任意 admin 可删）。
func CanModifyPosting(id Identity, postedBy string) bool {
	return id.Role == RoleAdmin || id.ID == postedBy
}
