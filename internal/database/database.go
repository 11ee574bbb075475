package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/damoang/pcmall-backend/internal/config"
	mysqldriver "github.com/go-sql-driver/mysql"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// Open connects with the configured driver and applies pool settings
func Open(cfg *config.DatabaseConfig) (*gorm.DB, error) {
	gormCfg := &gorm.Config{
		Logger: gormlogger.Default.LogMode(ParseLogLevel(cfg.LogLevel)),
	}

	var (
		db  *gorm.DB
		err error
	)
	switch cfg.Driver {
	case config.DriverMySQL:
		db, err = openMySQL(cfg, gormCfg)
	case config.DriverSQLite:
		db, err = openSQLite(cfg, gormCfg)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if cfg.Driver == config.DriverSQLite {
		// SQLite 는 단일 writer
		sqlDB.SetMaxOpenConns(1)
		return db, nil
	}
	sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	return db, nil
}

func openMySQL(cfg *config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	mysqlCfg, err := mysqldriver.ParseDSN(cfg.GetDSN())
	if err != nil {
		return nil, fmt.Errorf("DSN 파싱 실패: %w", err)
	}
	if mysqlCfg.Params == nil {
		mysqlCfg.Params = map[string]string{}
	}
	mysqlCfg.Params["time_zone"] = "'+09:00'"

	db, err := gorm.Open(mysql.Open(mysqlCfg.FormatDSN()), gormCfg)
	if err != nil {
		return nil, err
	}
	db.Exec("SET NAMES utf8mb4")
	return db, nil
}

func openSQLite(cfg *config.DatabaseConfig, gormCfg *gorm.Config) (*gorm.DB, error) {
	path := cfg.GetDSN()
	if path != ":memory:" && !strings.HasPrefix(path, "file:") {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
		}
	}
	db, err := gorm.Open(sqlite.Open(path), gormCfg)
	if err != nil {
		return nil, err
	}
	db.Exec("PRAGMA foreign_keys = ON")
	return db, nil
}

// ParseLogLevel maps silent/error/warn/info to the gorm logger level (default warn)
func ParseLogLevel(level string) gormlogger.LogLevel {
	switch strings.ToLower(level) {
	case "silent":
		return gormlogger.Silent
	case "error":
		return gormlogger.Error
	case "info":
		return gormlogger.Info
	default:
		return gormlogger.Warn
	}
}
