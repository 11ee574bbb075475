package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/damoang/pcmall-backend/internal/config"
	"github.com/damoang/pcmall-backend/internal/database"
	"github.com/damoang/pcmall-backend/internal/migration"
	"github.com/damoang/pcmall-backend/internal/repository"
	"github.com/damoang/pcmall-backend/internal/service"
	"github.com/damoang/pcmall-backend/pkg/jwt"
	pkglogger "github.com/damoang/pcmall-backend/pkg/logger"
	"gorm.io/gorm"
)

func main() {
	// CLI flags
	configPath := flag.String("config", "configs/config.local.yaml", "config file path")
	seed := flag.Bool("seed", false, "insert default menus, categories, settings and the admin account")
	dryRun := flag.Bool("dry-run", false, "show which tables would be created without executing")
	verbose := flag.Bool("verbose", false, "verbose SQL logging")
	flag.Parse()

	envFiles := config.LoadDotEnv(".")
	pkglogger.InitStructured(os.Getenv("APP_ENV"))

	cfg, err := config.Load(*configPath)
	if err != nil {
		pkglogger.Fatal("Failed to load config: %v", err)
	}
	config.LogResolved(cfg, envFiles)
	if *verbose {
		cfg.Database.LogLevel = "info"
	}

	db, err := database.Open(&cfg.Database)
	if err != nil {
		pkglogger.Fatal("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		pkglogger.Fatal("Failed to get underlying DB: %v", err)
	}
	defer sqlDB.Close()

	if *dryRun {
		runDryRun(db)
		return
	}

	if err := migration.Run(db); err != nil {
		pkglogger.Fatal("Migration failed: %v", err)
	}
	pkglogger.Info("Schema is up to date (%s)", cfg.Database.Driver)

	if !*seed {
		return
	}
	jwtManager := jwt.NewManager(cfg.JWT.Secret, cfg.JWT.ExpiresIn)
	authService := service.NewAuthService(repository.NewAdminUserRepository(db), jwtManager)
	if err := migration.Seed(db, authService, migration.SeedOptions{
		AdminUsername: cfg.Admin.Username,
		AdminPassword: cfg.Admin.Password,
		AdminEmail:    cfg.Admin.Email,
	}); err != nil {
		pkglogger.Fatal("Seed failed: %v", err)
	}
	pkglogger.Info("Seed complete")
}

func runDryRun(db *gorm.DB) {
	migrator := db.Migrator()
	missing := 0
	for _, model := range migration.Models() {
		stmt := &gorm.Statement{DB: db}
		if err := stmt.Parse(model); err != nil {
			pkglogger.Fatal("Failed to parse model %T: %v", model, err)
		}
		state := "exists"
		if !migrator.HasTable(model) {
			state = "would create"
			missing++
		}
		fmt.Printf("[dry-run] %-14s %s\n", stmt.Schema.Table, state)
	}
	fmt.Printf("[dry-run] %d table(s) to create\n", missing)
}
