package service

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/vinothini113/spa-application/internal/constants"
	"github.com/vinothini113/spa-application/internal/logger"
	"github.com/vinothini113/spa-application/internal/models"
	"github.com/vinothini113/spa-application/internal/store"
)

// AccountService 账号生命周期服务：登录、注册、管理员增删改查。
// 所有修改路径都是"整读-内存改-整写"，由 mu 串行化，避免并发注册
// 竞争 id 或互相覆盖（丢失更新）。
type AccountService struct {
	store  store.UserStore
	tokens *TokenService
	mu     sync.Mutex
}

// NewAccountService 创建账号服务
func NewAccountService(st store.UserStore, tokens *TokenService) *AccountService {
	return &AccountService{
		store:  st,
		tokens: tokens,
	}
}

// LoginResult 登录结果
type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      models.PublicUser
	Message   string
}

// RegisterInput 注册入参
type RegisterInput struct {
	Username string
	Password string
	Email    string
	FullName string
	Role     string
}

// UpdateInput 管理员更新入参；nil 表示该字段不修改
type UpdateInput struct {
	Username *string
	Email    *string
	FullName *string
	Role     *string
}

// Login 登录。用户名与角色共同构成查找键：同名但角色不符一律按
// 凭证错误处理，不提示具体原因。
func (s *AccountService) Login(username, password, role string) (*LoginResult, error) {
	if username == "" || password == "" || role == "" {
		return nil, ErrInvalidInput
	}

	users, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}

	var user *models.User
	for i := range users {
		if users[i].Username == username && users[i].Role == role {
			user = &users[i]
			break
		}
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}
	if user.PasswordHash == "" {
		return nil, ErrCorruptRecord
	}
	// bcrypt 校验在锁外执行，避免串行化并发登录
	if !VerifyPassword(user.PasswordHash, password) {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := s.tokens.Issue(user)
	if err != nil {
		return nil, err
	}

	// 最后登录时间尽力而为：写失败只记日志，不影响登录结果
	now := time.Now()
	user.LastLoginAt = &now
	if err := s.touchLastLogin(user.ID, now); err != nil {
		logger.Warnw("login_last_login_update_failed",
			"user_id", user.ID,
			"error", err,
		)
	}

	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		User:      user.Public(),
		Message:   fmt.Sprintf("Welcome back, %s!", user.FullName),
	}, nil
}

// Register 注册新用户。id 取现有最大值加一，空存储从 1 开始。
func (s *AccountService) Register(in RegisterInput) (*models.PublicUser, error) {
	if in.Username == "" || in.Password == "" || in.Email == "" || in.FullName == "" || in.Role == "" {
		return nil, ErrInvalidInput
	}
	if !constants.IsValidRole(in.Role) {
		return nil, ErrInvalidInput
	}

	// 先算哈希再进临界区，避免 bcrypt 占着写锁
	hash, err := HashPassword(in.Password)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	for i := range users {
		if users[i].Username == in.Username {
			return nil, ErrUsernameExists
		}
		if users[i].Email == in.Email {
			return nil, ErrEmailExists
		}
	}

	user := models.User{
		ID:           nextID(users),
		Username:     in.Username,
		PasswordHash: hash,
		Role:         in.Role,
		Email:        in.Email,
		FullName:     in.FullName,
		CreatedAt:    time.Now(),
	}
	users = append(users, user)

	if err := s.store.WriteAll(users); err != nil {
		return nil, err
	}

	public := user.Public()
	return &public, nil
}

// Update 管理员更新用户。只应用非 nil 字段；提供的值必须合法，
// 空字符串视为非法输入而不是"未提供"。
func (s *AccountService) Update(id uint, in UpdateInput) (*models.PublicUser, error) {
	if err := validateUpdateInput(in); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}

	idx := indexByID(users, id)
	if idx < 0 {
		return nil, ErrNotFound
	}

	for i := range users {
		if i == idx {
			continue
		}
		if in.Username != nil && users[i].Username == *in.Username {
			return nil, ErrUsernameExists
		}
		if in.Email != nil && users[i].Email == *in.Email {
			return nil, ErrEmailExists
		}
	}

	// 角色降级同样受最后管理员保护：不允许把唯一的 Admin 改成普通用户
	if in.Role != nil && *in.Role != constants.RoleAdmin &&
		users[idx].Role == constants.RoleAdmin && countAdmins(users) == 1 {
		return nil, ErrLastAdmin
	}

	if in.Username != nil {
		users[idx].Username = *in.Username
	}
	if in.Email != nil {
		users[idx].Email = *in.Email
	}
	if in.FullName != nil {
		users[idx].FullName = *in.FullName
	}
	if in.Role != nil {
		users[idx].Role = *in.Role
	}

	if err := s.store.WriteAll(users); err != nil {
		return nil, err
	}

	public := users[idx].Public()
	return &public, nil
}

// Delete 管理员删除用户；唯一的 Admin 不允许删除
func (s *AccountService) Delete(id uint) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.ReadAll()
	if err != nil {
		return err
	}

	idx := indexByID(users, id)
	if idx < 0 {
		return ErrNotFound
	}
	if users[idx].Role == constants.RoleAdmin && countAdmins(users) == 1 {
		return ErrLastAdmin
	}

	users = append(users[:idx], users[idx+1:]...)
	return s.store.WriteAll(users)
}

// GetProfile 返回单个用户的对外投影
func (s *AccountService) GetProfile(id uint) (*models.PublicUser, error) {
	users, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	idx := indexByID(users, id)
	if idx < 0 {
		return nil, ErrNotFound
	}
	public := users[idx].Public()
	return &public, nil
}

// ListAll 返回全部用户的对外投影
func (s *AccountService) ListAll() ([]models.PublicUser, error) {
	users, err := s.store.ReadAll()
	if err != nil {
		return nil, err
	}
	result := make([]models.PublicUser, 0, len(users))
	for i := range users {
		result = append(result, users[i].Public())
	}
	return result, nil
}

// touchLastLogin 在写锁内重读存储并更新最后登录时间
func (s *AccountService) touchLastLogin(id uint, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.store.ReadAll()
	if err != nil {
		return err
	}
	idx := indexByID(users, id)
	if idx < 0 {
		return ErrNotFound
	}
	users[idx].LastLoginAt = &at
	return s.store.WriteAll(users)
}

func validateUpdateInput(in UpdateInput) error {
	if in.Username != nil && strings.TrimSpace(*in.Username) == "" {
		return ErrInvalidInput
	}
	if in.Email != nil && strings.TrimSpace(*in.Email) == "" {
		return ErrInvalidInput
	}
	if in.FullName != nil && strings.TrimSpace(*in.FullName) == "" {
		return ErrInvalidInput
	}
	if in.Role != nil && !constants.IsValidRole(*in.Role) {
		return ErrInvalidInput
	}
	return nil
}

func nextID(users []models.User) uint {
	var max uint
	for i := range users {
		if users[i].ID > max {
			max = users[i].ID
		}
	}
	return max + 1
}

func indexByID(users []models.User, id uint) int {
	for i := range users {
		if users[i].ID == id {
			return i
		}
	}
	return -1
}

func countAdmins(users []models.User) int {
	count := 0
	for i := range users {
		if users[i].Role == constants.RoleAdmin {
			count++
		}
	}
	return count
}
