package store

import (
	"errors"

	"github.com/vinothini113/spa-application/internal/models"
)

// ErrStoreUnavailable 存储不可用（读写失败统一包装）
var ErrStoreUnavailable = errors.New("user store unavailable")

// UserStore 用户存储接口：整读整写
type UserStore interface {
	// ReadAll 按 id 升序返回全部用户记录
	ReadAll() ([]models.User, error)
	// WriteAll 用给定记录整体替换存储内容
	WriteAll(users []models.User) error
}
