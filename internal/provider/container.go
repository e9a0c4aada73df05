package provider

import (
	"fmt"
	"strings"

	"github.com/vinothini113/spa-application/internal/config"
	"github.com/vinothini113/spa-application/internal/logger"
	"github.com/vinothini113/spa-application/internal/service"
	"github.com/vinothini113/spa-application/internal/store"
)

// Container 依赖注入容器
type Container struct {
	Config *config.Config

	Store store.UserStore

	TokenService   *service.TokenService
	AccountService *service.AccountService
	RecordService  *service.RecordService
}

// NewContainer 初始化容器：按配置打开用户存储，空存储写入演示账号
func NewContainer(cfg *config.Config) (*Container, error) {
	st, err := openStore(cfg)
	if err != nil {
		return nil, err
	}

	if err := store.Seed(st); err != nil {
		return nil, fmt.Errorf("seed user store: %w", err)
	}

	tokens := service.NewTokenService(cfg.JWT.SecretKey, cfg.JWT.ExpireHours)

	return &Container{
		Config:         cfg,
		Store:          st,
		TokenService:   tokens,
		AccountService: service.NewAccountService(st, tokens),
		RecordService:  service.NewRecordService(),
	}, nil
}

func openStore(cfg *config.Config) (store.UserStore, error) {
	driver := strings.ToLower(strings.TrimSpace(cfg.Store.Driver))
	switch driver {
	case "", "file":
		logger.Infow("user_store_opened", "driver", "file", "path", cfg.Store.Path)
		return store.NewFileStore(cfg.Store.Path), nil
	case "sqlite", "postgres", "postgresql":
		st, err := store.OpenGormStore(driver, cfg.Store.DSN, store.DBPoolConfig{
			MaxOpenConns:           cfg.Store.Pool.MaxOpenConns,
			MaxIdleConns:           cfg.Store.Pool.MaxIdleConns,
			ConnMaxLifetimeSeconds: cfg.Store.Pool.ConnMaxLifetimeSeconds,
			ConnMaxIdleTimeSeconds: cfg.Store.Pool.ConnMaxIdleTimeSeconds,
		})
		if err != nil {
			return nil, err
		}
		logger.Infow("user_store_opened", "driver", driver)
		return st, nil
	default:
		return nil, fmt.Errorf("unsupported store driver: %s", cfg.Store.Driver)
	}
}
