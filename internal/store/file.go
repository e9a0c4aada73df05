package store

import (
	"encoding/xml"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/vinothini113/spa-application/internal/models"
)

// FileStore 单文件 XML 用户存储。
// 持久化格式沿用存量数据文件（标量字段包一层元素），该约定不外泄到接口之上。
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore 创建文件存储
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

type xmlDocument struct {
	XMLName xml.Name  `xml:"users"`
	Users   []xmlUser `xml:"user"`
}

type xmlUser struct {
	ID        uint   `xml:"id"`
	Username  string `xml:"username"`
	Password  string `xml:"password"`
	Role      string `xml:"role"`
	Email     string `xml:"email"`
	FullName  string `xml:"fullName"`
	CreatedAt string `xml:"createdAt"`
	LastLogin string `xml:"lastLogin"`
}

// ReadAll 读取全部用户；文件尚不存在时视为空存储
func (s *FileStore) ReadAll() ([]models.User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return []models.User{}, nil
		}
		return nil, fmt.Errorf("%w: read %s: %v", ErrStoreUnavailable, s.path, err)
	}

	var doc xmlDocument
	if err := xml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: parse %s: %v", ErrStoreUnavailable, s.path, err)
	}

	users := make([]models.User, 0, len(doc.Users))
	for _, raw := range doc.Users {
		users = append(users, raw.toModel())
	}
	sort.Slice(users, func(i, j int) bool { return users[i].ID < users[j].ID })
	return users, nil
}

// WriteAll 整体替换存储内容；先写临时文件再原子替换，读方不会看到残缺文件
func (s *FileStore) WriteAll(users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	doc := xmlDocument{Users: make([]xmlUser, 0, len(users))}
	for i := range users {
		doc.Users = append(doc.Users, fromModel(&users[i]))
	}

	data, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("%w: encode: %v", ErrStoreUnavailable, err)
	}
	data = append([]byte(xml.Header), data...)

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("%w: create dir %s: %v", ErrStoreUnavailable, dir, err)
	}

	tmp, err := os.CreateTemp(dir, ".users-*.xml")
	if err != nil {
		return fmt.Errorf("%w: create temp file: %v", ErrStoreUnavailable, err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: write temp file: %v", ErrStoreUnavailable, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: close temp file: %v", ErrStoreUnavailable, err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: replace %s: %v", ErrStoreUnavailable, s.path, err)
	}
	return nil
}

func (u xmlUser) toModel() models.User {
	user := models.User{
		ID:           u.ID,
		Username:     u.Username,
		PasswordHash: u.Password,
		Role:         u.Role,
		Email:        u.Email,
		FullName:     u.FullName,
	}
	if t, err := time.Parse(time.RFC3339, u.CreatedAt); err == nil {
		user.CreatedAt = t
	}
	if u.LastLogin != "" {
		if t, err := time.Parse(time.RFC3339, u.LastLogin); err == nil {
			user.LastLoginAt = &t
		}
	}
	return user
}

func fromModel(u *models.User) xmlUser {
	lastLogin := ""
	if u.LastLoginAt != nil {
		lastLogin = u.LastLoginAt.Format(time.RFC3339)
	}
	return xmlUser{
		ID:        u.ID,
		Username:  u.Username,
		Password:  u.PasswordHash,
		Role:      u.Role,
		Email:     u.Email,
		FullName:  u.FullName,
		CreatedAt: u.CreatedAt.Format(time.RFC3339),
		LastLogin: lastLogin,
	}
}
