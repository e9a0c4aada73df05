package service

import (
	"errors"
	"strings"
	"time"

	"github.com/vinothini113/spa-application/internal/models"

	"github.com/golang-jwt/jwt/v5"
)

const defaultTokenExpireHours = 24

// UserClaims JWT 身份声明
type UserClaims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	FullName string `json:"fullName"`
	jwt.RegisteredClaims
}

// TokenService 负责签发与校验 JWT。
// 签名密钥在启动时注入，不读取全局状态。
type TokenService struct {
	secretKey   []byte
	expireHours int
}

// NewTokenService 创建 TokenService
func NewTokenService(secretKey string, expireHours int) *TokenService {
	if expireHours <= 0 {
		expireHours = defaultTokenExpireHours
	}
	return &TokenService{
		secretKey:   []byte(secretKey),
		expireHours: expireHours,
	}
}

// Issue 为用户签发 Token，返回 Token 字符串与过期时间
func (s *TokenService) Issue(user *models.User) (string, time.Time, error) {
	now := time.Now()
	expiresAt := now.Add(time.Duration(s.expireHours) * time.Hour)

	claims := UserClaims{
		UserID:   user.ID,
		Username: user.Username,
		Role:     user.Role,
		Email:    user.Email,
		FullName: user.FullName,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expiresAt),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secretKey)
	if err != nil {
		return "", time.Time{}, err
	}
	return tokenString, expiresAt, nil
}

// Validate 校验 Token 并返回声明。
// 区分三类失败：缺失、过期、其余一律视为无效（不细分泄露原因）。
func (s *TokenService) Validate(tokenString string) (*UserClaims, error) {
	if strings.TrimSpace(tokenString) == "" {
		return nil, ErrTokenMissing
	}

	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	claims := &UserClaims{}
	token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return s.secretKey, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	if !token.Valid || claims.UserID == 0 {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
