package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
)

const (
	DriverMySQL  = "mysql"
	DriverSQLite = "sqlite"

	minSecretLength = 32
)

// Config 애플리케이션 설정
//
// 값은 기본값 < YAML 파일 < PCMALL_* 환경변수 순서로 덮어쓴다.
type Config struct {
	Env           string              `yaml:"env" env:"APP_ENV"`
	Server        ServerConfig        `yaml:"server" envPrefix:"PCMALL_SERVER_"`
	Database      DatabaseConfig      `yaml:"database" envPrefix:"PCMALL_DB_"`
	Redis         RedisConfig         `yaml:"redis" envPrefix:"PCMALL_REDIS_"`
	JWT           JWTConfig           `yaml:"jwt" envPrefix:"PCMALL_JWT_"`
	CORS          CORSConfig          `yaml:"cors" envPrefix:"PCMALL_CORS_"`
	Storage       StorageConfig       `yaml:"storage" envPrefix:"PCMALL_STORAGE_"`
	Elasticsearch ElasticsearchConfig `yaml:"elasticsearch" envPrefix:"PCMALL_ES_"`
	RateLimit     RateLimitConfig     `yaml:"rate_limit" envPrefix:"PCMALL_RATELIMIT_"`
	Admin         AdminConfig         `yaml:"admin" envPrefix:"PCMALL_ADMIN_"`
}

type ServerConfig struct {
	Port            int           `yaml:"port" env:"PORT"`
	Mode            string        `yaml:"mode" env:"MODE"` // gin mode: debug, release, test
	ReadTimeout     time.Duration `yaml:"read_timeout" env:"READ_TIMEOUT"`
	WriteTimeout    time.Duration `yaml:"write_timeout" env:"WRITE_TIMEOUT"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT"`
}

type DatabaseConfig struct {
	Driver          string `yaml:"driver" env:"DRIVER"`
	Host            string `yaml:"host" env:"HOST"`
	Port            int    `yaml:"port" env:"PORT"`
	User            string `yaml:"user" env:"USER"`
	Password        string `yaml:"password" env:"PASSWORD"`
	Name            string `yaml:"name" env:"NAME"`
	Path            string `yaml:"path" env:"PATH"` // sqlite file
	MaxOpenConns    int    `yaml:"max_open_conns" env:"MAX_OPEN_CONNS"`
	MaxIdleConns    int    `yaml:"max_idle_conns" env:"MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime" env:"CONN_MAX_LIFETIME"` // seconds
	LogLevel        string `yaml:"log_level" env:"LOG_LEVEL"`                 // silent, error, warn, info
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Host     string `yaml:"host" env:"HOST"`
	Port     int    `yaml:"port" env:"PORT"`
	Password string `yaml:"password" env:"PASSWORD"`
	DB       int    `yaml:"db" env:"DB"`
	PoolSize int    `yaml:"pool_size" env:"POOL_SIZE"`
}

type JWTConfig struct {
	Secret       string        `yaml:"secret" env:"SECRET"`
	ExpiresIn    time.Duration `yaml:"expires_in" env:"EXPIRES_IN"`
	CookieName   string        `yaml:"cookie_name" env:"COOKIE_NAME"`
	CookieDomain string        `yaml:"cookie_domain" env:"COOKIE_DOMAIN"`
	CookieSecure bool          `yaml:"cookie_secure" env:"COOKIE_SECURE"`
}

type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins" env:"ALLOW_ORIGINS"` // comma separated
}

type StorageConfig struct {
	Enabled         bool   `yaml:"enabled" env:"ENABLED"`
	Endpoint        string `yaml:"endpoint" env:"ENDPOINT"`
	Region          string `yaml:"region" env:"REGION"`
	AccessKeyID     string `yaml:"access_key_id" env:"ACCESS_KEY_ID"`
	SecretAccessKey string `yaml:"secret_access_key" env:"SECRET_ACCESS_KEY"`
	Bucket          string `yaml:"bucket" env:"BUCKET"`
	CDNURL          string `yaml:"cdn_url" env:"CDN_URL"`
	BasePath        string `yaml:"base_path" env:"BASE_PATH"`
	ForcePathStyle  bool   `yaml:"force_path_style" env:"FORCE_PATH_STYLE"`
	MaxUploadMB     int    `yaml:"max_upload_mb" env:"MAX_UPLOAD_MB"`
}

type ElasticsearchConfig struct {
	Enabled   bool     `yaml:"enabled" env:"ENABLED"`
	Addresses []string `yaml:"addresses" env:"ADDRESSES" envSeparator:","`
	Username  string   `yaml:"username" env:"USERNAME"`
	Password  string   `yaml:"password" env:"PASSWORD"`
}

type RateLimitConfig struct {
	Requests      int           `yaml:"requests" env:"REQUESTS"`
	Window        time.Duration `yaml:"window" env:"WINDOW"`
	LoginRequests int           `yaml:"login_requests" env:"LOGIN_REQUESTS"`
	LoginWindow   time.Duration `yaml:"login_window" env:"LOGIN_WINDOW"`
}

// AdminConfig 최초 관리자 계정 (admin_users 테이블이 비어 있을 때만 시드)
type AdminConfig struct {
	Username string `yaml:"username" env:"USERNAME"`
	Password string `yaml:"password" env:"PASSWORD"`
	Email    string `yaml:"email" env:"EMAIL"`
}

// Default returns the built-in defaults
func Default() *Config {
	return &Config{
		Env: "local",
		Server: ServerConfig{
			Port:            8080,
			Mode:            "debug",
			ReadTimeout:     15 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
		},
		Database: DatabaseConfig{
			Driver:          DriverSQLite,
			Host:            "localhost",
			Port:            3306,
			Name:            "pcmall",
			Path:            "data/pcmall.db",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
			LogLevel:        "warn",
		},
		Redis: RedisConfig{
			Host:     "localhost",
			Port:     6379,
			PoolSize: 10,
		},
		JWT: JWTConfig{
			ExpiresIn:  12 * time.Hour,
			CookieName: "pcmall_jwt",
		},
		CORS: CORSConfig{AllowOrigins: "http://localhost:3000"},
		Storage: StorageConfig{
			Region:      "auto",
			BasePath:    "uploads/",
			MaxUploadMB: 10,
		},
		RateLimit: RateLimitConfig{
			Requests:      120,
			Window:        time.Minute,
			LoginRequests: 5,
			LoginWindow:   time.Minute,
		},
		Admin: AdminConfig{
			Username: "admin",
			Email:    "admin@localhost",
		},
	}
}

// Load reads the YAML file at path (missing file is fine), then applies
// environment overrides and validates the result.
func Load(path string) (*Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		// env only
	default:
		return nil, fmt.Errorf("read %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks settings that would make the server unsafe or unusable
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("database.driver must be %q or %q, got %q", DriverMySQL, DriverSQLite, c.Database.Driver)
	}

	if c.JWT.ExpiresIn <= 0 {
		return errors.New("jwt.expires_in must be positive")
	}

	if c.IsDevelopment() {
		if c.JWT.Secret == "" {
			c.JWT.Secret = "dev-only-insecure-secret-change-me"
		}
		return nil
	}

	if len(c.JWT.Secret) < minSecretLength {
		return fmt.Errorf("jwt.secret must be at least %d bytes outside development", minSecretLength)
	}
	return nil
}

// IsDevelopment 개발 환경 여부
func (c *Config) IsDevelopment() bool {
	switch c.Env {
	case "", "local", "dev", "development", "test":
		return true
	}
	return false
}

// GetDSN returns the driver-specific data source name
func (d *DatabaseConfig) GetDSN() string {
	if d.Driver == DriverSQLite {
		return d.Path
	}
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=Local",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// Origins splits the comma separated CORS origin list
func (c *CORSConfig) Origins() []string {
	var out []string
	for _, o := range strings.Split(c.AllowOrigins, ",") {
		if o = strings.TrimSpace(o); o != "" {
			out = append(out, o)
		}
	}
	return out
}

// LogResolved logs the effective configuration without secrets, along with
// the .env files LoadDotEnv read.
func LogResolved(cfg *Config, envFiles []string) {
	if envFiles == nil {
		envFiles = []string{}
	}
	pkglogger.GetLogger().Info().
		Str("env", cfg.Env).
		Strs("env_files", envFiles).
		Int("port", cfg.Server.Port).
		Str("db_driver", cfg.Database.Driver).
		Str("db_host", cfg.Database.Host).
		Str("db_name", cfg.Database.Name).
		Bool("redis", cfg.Redis.Enabled).
		Bool("storage", cfg.Storage.Enabled).
		Bool("elasticsearch", cfg.Elasticsearch.Enabled).
		Bool("jwt_secret_set", cfg.JWT.Secret != "").
		Msg("config resolved")
}
