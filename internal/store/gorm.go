package store

import (
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/vinothini113/spa-application/internal/models"

	"github.com/glebarez/sqlite" // 纯 Go SQLite 驱动（基于 modernc.org/sqlite）
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// DBPoolConfig 数据库连接池配置
type DBPoolConfig struct {
	MaxOpenConns           int
	MaxIdleConns           int
	ConnMaxLifetimeSeconds int
	ConnMaxIdleTimeSeconds int
}

// GormStore 数据库用户存储，与文件存储同语义：整读整写
type GormStore struct {
	db *gorm.DB
}

// OpenGormStore 打开数据库存储并迁移用户表
func OpenGormStore(driver, dsn string, pool DBPoolConfig) (*GormStore, error) {
	var dialector gorm.Dialector
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "sqlite":
		dialector = sqlite.Open(dsn)
	case "postgres", "postgresql":
		dialector = postgres.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", driver)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("%w: open database: %v", ErrStoreUnavailable, err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("%w: access pool: %v", ErrStoreUnavailable, err)
	}
	applyDBPool(sqlDB, pool)

	if err := db.AutoMigrate(&models.User{}); err != nil {
		return nil, fmt.Errorf("%w: migrate: %v", ErrStoreUnavailable, err)
	}
	return &GormStore{db: db}, nil
}

// NewGormStore 基于已有连接创建存储（测试用）
func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{db: db}
}

// ReadAll 按 id 升序返回全部用户
func (s *GormStore) ReadAll() ([]models.User, error) {
	var users []models.User
	if err := s.db.Order("id").Find(&users).Error; err != nil {
		return nil, fmt.Errorf("%w: select users: %v", ErrStoreUnavailable, err)
	}
	return users, nil
}

// WriteAll 在单个事务内整体替换用户表内容
func (s *GormStore) WriteAll(users []models.User) error {
	err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("id > ?", 0).Delete(&models.User{}).Error; err != nil {
			return err
		}
		if len(users) == 0 {
			return nil
		}
		return tx.Create(&users).Error
	})
	if err != nil {
		return fmt.Errorf("%w: replace users: %v", ErrStoreUnavailable, err)
	}
	return nil
}

func applyDBPool(sqlDB *sql.DB, pool DBPoolConfig) {
	if sqlDB == nil {
		return
	}
	if pool.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	}
	if pool.MaxIdleConns >= 0 {
		sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	}
	if pool.ConnMaxLifetimeSeconds > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetimeSeconds) * time.Second)
	}
	if pool.ConnMaxIdleTimeSeconds > 0 {
		sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTimeSeconds) * time.Second)
	}
}
