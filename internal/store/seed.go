package store

import (
	"time"

	"github.com/vinothini113/spa-application/internal/constants"
	"github.com/vinothini113/spa-application/internal/logger"
	"github.com/vinothini113/spa-application/internal/models"

	"golang.org/x/crypto/bcrypt"
)

type seedUser struct {
	username string
	password string
	role     string
	email    string
	fullName string
}

var seedUsers = []seedUser{
	{"admin", "admin123", constants.RoleAdmin, "admin@example.com", "System Administrator"},
	{"Vinothini", "user123", constants.RoleGeneralUser, "Vino@gmail.com", "Vinothini Dayalan"},
	{"Yukesh", "user123", constants.RoleGeneralUser, "Yukesh@gmail.com", "Jane Smith"},
	{"manager", "manager123", constants.RoleGeneralUser, "manager@example.com", "Manager User"},
}

// Seed 在空存储中写入示例账号；存储非空时不做任何事。
// 保证启动后至少存在一个 Admin 账号。
func Seed(s UserStore) error {
	existing, err := s.ReadAll()
	if err != nil {
		return err
	}
	if len(existing) > 0 {
		return nil
	}

	now := time.Now()
	users := make([]models.User, 0, len(seedUsers))
	for i, su := range seedUsers {
		hash, err := bcrypt.GenerateFromPassword([]byte(su.password), bcrypt.DefaultCost)
		if err != nil {
			return err
		}
		users = append(users, models.User{
			ID:           uint(i + 1),
			Username:     su.username,
			PasswordHash: string(hash),
			Role:         su.role,
			Email:        su.email,
			FullName:     su.fullName,
			CreatedAt:    now,
		})
	}

	if err := s.WriteAll(users); err != nil {
		return err
	}
	logger.Warnw("store_seeded_with_sample_users",
		"count", len(users),
		"default_passwords", true,
	)
	return nil
}
