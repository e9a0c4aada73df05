package service

import "errors"

// 服务层哨兵错误，HTTP 层用 errors.Is 映射为状态码
var (
	ErrInvalidInput       = errors.New("invalid input")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrUsernameExists     = errors.New("username already exists")
	ErrEmailExists        = errors.New("email already exists")
	ErrNotFound           = errors.New("user not found")
	ErrLastAdmin          = errors.New("cannot remove the last admin user")
	ErrCorruptRecord      = errors.New("user record corrupted")

	ErrTokenMissing = errors.New("access token required")
	ErrTokenInvalid = errors.New("token invalid")
	ErrTokenExpired = errors.New("token expired")
)
