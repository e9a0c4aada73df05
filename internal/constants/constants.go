package constants

// 角色常量（闭集，仅两个取值）
const (
	RoleAdmin       = "Admin"
	RoleGeneralUser = "General User"
)

// IsValidRole 判断角色是否在枚举范围内
func IsValidRole(role string) bool {
	return role == RoleAdmin || role == RoleGeneralUser
}
