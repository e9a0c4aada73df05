package service

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/vinothini113/spa-application/internal/constants"
	"github.com/vinothini113/spa-application/internal/models"

	"golang.org/x/crypto/bcrypt"
)

// memStore 内存用户存储，仅测试用
type memStore struct {
	mu    sync.Mutex
	users []models.User
}

func (s *memStore) ReadAll() ([]models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.User, len(s.users))
	copy(out, s.users)
	return out, nil
}

func (s *memStore) WriteAll(users []models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.users = make([]models.User, len(users))
	copy(s.users, users)
	return nil
}

func hashFor(t *testing.T, password string) string {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	if err != nil {
		t.Fatalf("hash failed: %v", err)
	}
	return string(hash)
}

func newTestService(t *testing.T, users ...models.User) (*AccountService, *memStore) {
	t.Helper()
	st := &memStore{users: users}
	return NewAccountService(st, NewTokenService("test-secret", 1)), st
}

func adminUser(t *testing.T, id uint) models.User {
	t.Helper()
	return models.User{
		ID:           id,
		Username:     "admin",
		PasswordHash: hashFor(t, "admin123"),
		Role:         constants.RoleAdmin,
		Email:        "admin@example.com",
		FullName:     "System Administrator",
		CreatedAt:    time.Now(),
	}
}

func generalUser(t *testing.T, id uint, username string) models.User {
	t.Helper()
	return models.User{
		ID:           id,
		Username:     username,
		PasswordHash: hashFor(t, "user123"),
		Role:         constants.RoleGeneralUser,
		Email:        username + "@example.com",
		FullName:     "User " + username,
		CreatedAt:    time.Now(),
	}
}

func TestLoginSuccess(t *testing.T) {
	svc, st := newTestService(t, adminUser(t, 1))

	result, err := svc.Login("admin", "admin123", constants.RoleAdmin)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if result.Token == "" {
		t.Fatal("expected token")
	}
	if result.User.Username != "admin" {
		t.Fatalf("unexpected user: %s", result.User.Username)
	}
	if result.Message != "Welcome back, System Administrator!" {
		t.Fatalf("unexpected message: %s", result.Message)
	}

	users, _ := st.ReadAll()
	if users[0].LastLoginAt == nil {
		t.Fatal("expected last login to be recorded")
	}
}

func TestLoginWrongPassword(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1))

	if _, err := svc.Login("admin", "wrong", constants.RoleAdmin); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginCorrectPasswordWrongRole(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1))

	// 角色是查找键的一部分：密码对但角色不符，同样按凭证错误处理
	if _, err := svc.Login("admin", "admin123", constants.RoleGeneralUser); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginUnknownUser(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1))

	if _, err := svc.Login("nobody", "admin123", constants.RoleAdmin); !errors.Is(err, ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
}

func TestLoginMissingFields(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1))

	if _, err := svc.Login("", "admin123", constants.RoleAdmin); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLoginCorruptRecord(t *testing.T) {
	corrupt := adminUser(t, 1)
	corrupt.PasswordHash = ""
	svc, _ := newTestService(t, corrupt)

	if _, err := svc.Login("admin", "admin123", constants.RoleAdmin); !errors.Is(err, ErrCorruptRecord) {
		t.Fatalf("expected ErrCorruptRecord, got %v", err)
	}
}

func TestRegisterEmptyStoreStartsAtOne(t *testing.T) {
	svc, _ := newTestService(t)

	user, err := svc.Register(RegisterInput{
		Username: "first",
		Password: "secret1",
		Email:    "first@example.com",
		FullName: "First User",
		Role:     constants.RoleGeneralUser,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID != 1 {
		t.Fatalf("expected id 1 on empty store, got %d", user.ID)
	}
}

func TestRegisterAssignsMaxPlusOne(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 2), generalUser(t, 7, "vino"))

	user, err := svc.Register(RegisterInput{
		Username: "new",
		Password: "secret1",
		Email:    "new@example.com",
		FullName: "New User",
		Role:     constants.RoleGeneralUser,
	})
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.ID != 8 {
		t.Fatalf("expected id 8, got %d", user.ID)
	}
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _ := newTestService(t)

	if _, err := svc.Register(RegisterInput{
		Username: "vino",
		Password: "secret1",
		Email:    "vino@example.com",
		FullName: "Vinothini Dayalan",
		Role:     constants.RoleGeneralUser,
	}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	result, err := svc.Login("vino", "secret1", constants.RoleGeneralUser)
	if err != nil {
		t.Fatalf("login after register failed: %v", err)
	}
	if result.User.Username != "vino" {
		t.Fatalf("unexpected user: %s", result.User.Username)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, st := newTestService(t, adminUser(t, 1))

	_, err := svc.Register(RegisterInput{
		Username: "admin",
		Password: "secret1",
		Email:    "other@example.com",
		FullName: "Other",
		Role:     constants.RoleGeneralUser,
	})
	if !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}

	users, _ := st.ReadAll()
	if len(users) != 1 {
		t.Fatalf("store should be unchanged, got %d users", len(users))
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1))

	_, err := svc.Register(RegisterInput{
		Username: "other",
		Password: "secret1",
		Email:    "admin@example.com",
		FullName: "Other",
		Role:     constants.RoleGeneralUser,
	})
	if !errors.Is(err, ErrEmailExists) {
		t.Fatalf("expected ErrEmailExists, got %v", err)
	}
}

func TestRegisterInvalidRole(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Register(RegisterInput{
		Username: "x",
		Password: "secret1",
		Email:    "x@example.com",
		FullName: "X",
		Role:     "Superuser",
	})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateAppliesOnlyProvidedFields(t *testing.T) {
	svc, st := newTestService(t, adminUser(t, 1), generalUser(t, 2, "vino"))

	email := "changed@example.com"
	user, err := svc.Update(2, UpdateInput{Email: &email})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if user.Email != email {
		t.Fatalf("email not applied: %s", user.Email)
	}
	if user.Username != "vino" || user.Role != constants.RoleGeneralUser {
		t.Fatalf("omitted fields must stay unchanged: %s/%s", user.Username, user.Role)
	}

	users, _ := st.ReadAll()
	if users[1].Email != email {
		t.Fatalf("update not persisted: %s", users[1].Email)
	}
}

func TestUpdateEmptyValueRejected(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1))

	empty := "   "
	if _, err := svc.Update(1, UpdateInput{Username: &empty}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestUpdateDuplicateUsername(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1), generalUser(t, 2, "vino"))

	taken := "admin"
	if _, err := svc.Update(2, UpdateInput{Username: &taken}); !errors.Is(err, ErrUsernameExists) {
		t.Fatalf("expected ErrUsernameExists, got %v", err)
	}
}

func TestUpdateNotFound(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1))

	name := "ghost"
	if _, err := svc.Update(99, UpdateInput{Username: &name}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestUpdateLastAdminDemotionRejected(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1), generalUser(t, 2, "vino"))

	role := constants.RoleGeneralUser
	if _, err := svc.Update(1, UpdateInput{Role: &role}); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
}

func TestDeleteUser(t *testing.T) {
	svc, st := newTestService(t, adminUser(t, 1), generalUser(t, 2, "vino"))

	if err := svc.Delete(2); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	users, _ := st.ReadAll()
	if len(users) != 1 || users[0].ID != 1 {
		t.Fatalf("unexpected store contents after delete: %+v", users)
	}
}

func TestDeleteLastAdminRejected(t *testing.T) {
	svc, st := newTestService(t, adminUser(t, 1), generalUser(t, 2, "vino"))

	if err := svc.Delete(1); !errors.Is(err, ErrLastAdmin) {
		t.Fatalf("expected ErrLastAdmin, got %v", err)
	}
	users, _ := st.ReadAll()
	if len(users) != 2 {
		t.Fatalf("store should be unchanged, got %d users", len(users))
	}
}

func TestDeleteAdminWhenAnotherRemains(t *testing.T) {
	second := adminUser(t, 2)
	second.Username = "admin2"
	second.Email = "admin2@example.com"
	svc, _ := newTestService(t, adminUser(t, 1), second)

	if err := svc.Delete(1); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
}

func TestDeleteNotFound(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1))

	if err := svc.Delete(42); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGetProfile(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1))

	user, err := svc.GetProfile(1)
	if err != nil {
		t.Fatalf("get profile failed: %v", err)
	}
	if user.Username != "admin" {
		t.Fatalf("unexpected user: %s", user.Username)
	}

	if _, err := svc.GetProfile(99); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestListAll(t *testing.T) {
	svc, _ := newTestService(t, adminUser(t, 1), generalUser(t, 2, "vino"))

	users, err := svc.ListAll()
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("expected 2 users, got %d", len(users))
	}
}
