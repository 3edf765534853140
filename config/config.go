package config

import (
	"context"
	"fmt"

	"github.com/Stefan-migo/businessManagementApp-sub001/app/vault"

	"github.com/spf13/viper"
)

type Server struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
}

type DB struct {
	Host string `mapstructure:"host"`
	Port int    `mapstructure:"port"`
	User string `mapstructure:"user"`
	Pass string `mapstructure:"pass"`
	Name string `mapstructure:"name"`
}

type Redis struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

type JWT struct {
	Secret string `mapstructure:"secret"`
	Issuer string `mapstructure:"issuer"`
	ExpMin int    `mapstructure:"exp_min"`
}

type FSStorage struct {
	Dir        string `mapstructure:"dir"`
	SignSecret string `mapstructure:"sign_secret"`
	BaseURL    string `mapstructure:"base_url"`
}

type S3Storage struct {
	Bucket    string `mapstructure:"bucket"`
	Region    string `mapstructure:"region"`
	Prefix    string `mapstructure:"prefix"`
	Endpoint  string `mapstructure:"endpoint"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	PathStyle bool   `mapstructure:"path_style"`
}

type Storage struct {
	// Backend selects the blob store implementation: "fs" or "s3".
	Backend  string    `mapstructure:"backend"`
	Compress bool      `mapstructure:"compress"`
	FS       FSStorage `mapstructure:"fs"`
	S3       S3Storage `mapstructure:"s3"`
}

type RateLimit struct {
	Enabled   bool   `mapstructure:"enabled"`
	Requests  int64  `mapstructure:"requests"`
	WindowSec int    `mapstructure:"window_sec"`
	Store     string `mapstructure:"store"` // "memory" or "redis"
}

// Admin holds the bootstrap service account created on startup when no user
// with that name exists yet.
type Admin struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

type Vault struct {
	Address    string `mapstructure:"address"`
	Token      string `mapstructure:"token"`
	SecretPath string `mapstructure:"secret_path"`
}

type Config struct {
	Server    Server    `mapstructure:"server"`
	DB        DB        `mapstructure:"db"`
	Redis     Redis     `mapstructure:"redis"`
	JWT       JWT       `mapstructure:"jwt"`
	Storage   Storage   `mapstructure:"storage"`
	RateLimit RateLimit `mapstructure:"rate_limit"`
	Admin     Admin     `mapstructure:"admin"`
	Vault     Vault     `mapstructure:"vault"`
}

func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.SetDefault("server.host", "127.0.0.1")
	v.SetDefault("server.port", 9400)
	v.SetDefault("db.host", "127.0.0.1")
	v.SetDefault("db.port", 3306)
	v.SetDefault("db.user", "root")
	v.SetDefault("db.pass", "")
	v.SetDefault("db.name", "admin_backoffice")
	v.SetDefault("redis.addr", "")
	v.SetDefault("storage.backend", "fs")
	v.SetDefault("storage.compress", false)
	v.SetDefault("storage.fs.dir", "backups")
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.requests", 30)
	v.SetDefault("rate_limit.window_sec", 60)
	v.SetDefault("rate_limit.store", "memory")
	v.SetDefault("admin.username", "admin")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.JWT.Secret == "" {
		cfg.JWT.Secret = "dev-secret"
	}
	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "admin-backoffice"
	}
	if cfg.JWT.ExpMin <= 0 {
		cfg.JWT.ExpMin = 60
	}

	if cfg.Vault.Address != "" {
		if err := resolveVaultSecrets(&cfg); err != nil {
			return nil, fmt.Errorf("vault secrets: %w", err)
		}
	}
	return &cfg, nil
}

// resolveVaultSecrets overrides the DB password and JWT secret with values
// from the configured Vault KV path, when those keys are present there.
func resolveVaultSecrets(cfg *Config) error {
	client, err := vault.NewClient(cfg.Vault.Address, cfg.Vault.Token)
	if err != nil {
		return err
	}
	data, err := client.ReadKV(context.Background(), cfg.Vault.SecretPath)
	if err != nil {
		return err
	}
	if pass, ok := data["db_password"].(string); ok && pass != "" {
		cfg.DB.Pass = pass
	}
	if secret, ok := data["jwt_secret"].(string); ok && secret != "" {
		cfg.JWT.Secret = secret
	}
	return nil
}
