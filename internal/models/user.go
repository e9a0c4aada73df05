package models

import (
	"time"
)

// User 用户账号记录
type User struct {
	ID           uint       `gorm:"primarykey" json:"id"`                 // 主键（注册时取 max+1）
	Username     string     `gorm:"uniqueIndex;not null" json:"username"` // 用户名（大小写敏感，唯一）
	PasswordHash string     `gorm:"not null" json:"-"`                    // 密码哈希（不返回给前端）
	Role         string     `gorm:"not null" json:"role"`                 // 角色（Admin / General User）
	Email        string     `gorm:"uniqueIndex;not null" json:"email"`    // 邮箱（唯一）
	FullName     string     `gorm:"not null" json:"fullName"`             // 姓名
	CreatedAt    time.Time  `gorm:"not null" json:"createdAt"`            // 创建时间
	LastLoginAt  *time.Time `json:"lastLogin"`                            // 最后登录时间（首次登录前为空）
}

// TableName 指定表名
func (User) TableName() string {
	return "users"
}

// PublicUser 用户对外投影（不含密码哈希）
type PublicUser struct {
	ID        uint       `json:"id"`
	Username  string     `json:"username"`
	Role      string     `json:"role"`
	Email     string     `json:"email"`
	FullName  string     `json:"fullName"`
	CreatedAt time.Time  `json:"createdAt"`
	LastLogin *time.Time `json:"lastLogin"`
}

// Public 返回对外投影
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Username:  u.Username,
		Role:      u.Role,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt,
		LastLogin: u.LastLoginAt,
	}
}
