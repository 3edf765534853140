package initialize

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/controllers"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/db"
	jwtutil "github.com/Stefan-migo/businessManagementApp-sub001/app/jwt"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/middleware"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/models"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/repo"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/services"
	"github.com/Stefan-migo/businessManagementApp-sub001/app/storage"
	"github.com/Stefan-migo/businessManagementApp-sub001/config"
	"github.com/Stefan-migo/businessManagementApp-sub001/global"
	"github.com/Stefan-migo/businessManagementApp-sub001/router"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type App struct {
	Cfg       *config.Config
	DB        *gorm.DB
	Router    http.Handler
	Store     storage.Store
	Snapshots *services.SnapshotService
	Backups   *services.BackupService
	Restore   *services.RestoreService
	Users     *services.UserService
}

func Build(configPath string) (*App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	global.Config = *cfg

	gdb, err := db.Connect(db.Config{Host: cfg.DB.Host, Port: cfg.DB.Port, User: cfg.DB.User, Password: cfg.DB.Pass, DBName: cfg.DB.Name})
	if err != nil {
		return nil, fmt.Errorf("connect db: %w", err)
	}
	global.Mdb = gdb

	if err := gdb.AutoMigrate(
		&models.Category{}, &models.Profile{}, &models.AdminUser{},
		&models.SystemConfig{}, &models.Product{}, &models.Order{},
		&models.OrderItem{}, &models.User{}, &models.ActivityLog{},
	); err != nil {
		return nil, fmt.Errorf("migrate: %w", err)
	}

	store, fsStore, err := buildStore(cfg)
	if err != nil {
		return nil, err
	}

	tableRepo := repo.NewTableRepository(gdb)
	userRepo := repo.NewUserRepository(gdb)
	auditRepo := repo.NewActivityLogRepository(gdb)

	userSvc := services.NewUserService(userRepo)
	adminPass := cfg.Admin.Password
	if adminPass == "" {
		adminPass = "admin123"
		global.Logger.Warn().Str("username", cfg.Admin.Username).Msg("admin.password not configured, using development default")
	}
	if err := userSvc.EnsureAdmin(cfg.Admin.Username, adminPass); err != nil {
		global.Logger.Warn().Err(err).Msg("ensure admin failed")
	}
	snapshotSvc := services.NewSnapshotService(store, tableRepo, cfg.Storage.Compress)
	backupSvc := services.NewBackupService(store, snapshotSvc)
	restoreSvc := services.NewRestoreService(store, tableRepo, snapshotSvc, auditRepo)

	signer := &jwtutil.Signer{Secret: []byte(cfg.JWT.Secret), Issuer: cfg.JWT.Issuer, ExpMin: cfg.JWT.ExpMin}
	mw := &middleware.Auth{Signer: signer}

	ctrl := router.Controllers{
		Health:  controllers.NewHealthController(),
		Auth:    controllers.NewAuthController(userSvc, signer),
		Admin:   controllers.NewAdminController(userSvc),
		Backups: controllers.NewBackupController(backupSvc, restoreSvc, fsStore),
	}

	h := router.New(ctrl, mw, buildRateLimiter(cfg))
	h = middleware.Logging(h)

	return &App{
		Cfg:       cfg,
		DB:        gdb,
		Router:    h,
		Store:     store,
		Snapshots: snapshotSvc,
		Backups:   backupSvc,
		Restore:   restoreSvc,
		Users:     userSvc,
	}, nil
}

// buildStore returns the configured blob store. The second return value is
// non-nil only for the fs backend, which needs the signed download endpoint.
func buildStore(cfg *config.Config) (storage.Store, *storage.FSStore, error) {
	switch cfg.Storage.Backend {
	case "s3":
		store, err := storage.NewS3Store(context.Background(), storage.S3Config{
			Bucket:    cfg.Storage.S3.Bucket,
			Region:    cfg.Storage.S3.Region,
			Prefix:    cfg.Storage.S3.Prefix,
			Endpoint:  cfg.Storage.S3.Endpoint,
			AccessKey: cfg.Storage.S3.AccessKey,
			SecretKey: cfg.Storage.S3.SecretKey,
			PathStyle: cfg.Storage.S3.PathStyle,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("s3 storage: %w", err)
		}
		return store, nil, nil
	case "fs", "":
		baseURL := cfg.Storage.FS.BaseURL
		if baseURL == "" {
			baseURL = fmt.Sprintf("http://%s:%d", cfg.Server.Host, cfg.Server.Port)
		}
		secret := cfg.Storage.FS.SignSecret
		if secret == "" {
			secret = cfg.JWT.Secret
		}
		store, err := storage.NewFSStore(cfg.Storage.FS.Dir, []byte(secret), baseURL)
		if err != nil {
			return nil, nil, fmt.Errorf("fs storage: %w", err)
		}
		return store, store, nil
	default:
		return nil, nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
}

func buildRateLimiter(cfg *config.Config) func(http.Handler) http.Handler {
	if !cfg.RateLimit.Enabled {
		return func(next http.Handler) http.Handler { return next }
	}
	var store middleware.CounterStore
	if cfg.RateLimit.Store == "redis" && cfg.Redis.Addr != "" {
		global.Rdb = redis.NewClient(&redis.Options{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
		store = middleware.NewRedisCounterStore(global.Rdb)
	} else {
		store = middleware.NewMemoryCounterStore()
	}
	window := time.Duration(cfg.RateLimit.WindowSec) * time.Second
	return middleware.RateLimit(store, cfg.RateLimit.Requests, window)
}
