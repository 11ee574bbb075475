package config

import (
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
)

// dotEnvFiles 우선순위 순서 (앞쪽이 이김)
func dotEnvFiles(appEnv string) []string {
	files := make([]string, 0, 4)
	if appEnv != "" {
		files = append(files, ".env."+appEnv+".local", ".env."+appEnv)
	}
	return append(files, ".env.local", ".env")
}

// LoadDotEnv loads the .env files found in dir and returns the paths it read.
//
// Order: .env.{APP_ENV}.local > .env.{APP_ENV} > .env.local > .env. Variables
// already in the process environment are never overwritten. When APP_ENV is
// not exported it is taken from the generic .env.local / .env files, so
// `APP_ENV=production` in .env still selects .env.production.
func LoadDotEnv(dir string) []string {
	appEnv := os.Getenv("APP_ENV")
	if appEnv == "" {
		appEnv = peekAppEnv(dir)
	}

	var loaded []string
	for _, name := range dotEnvFiles(appEnv) {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil {
			loaded = append(loaded, path)
		}
	}
	if len(loaded) > 0 {
		_ = godotenv.Load(loaded...)
	}
	return loaded
}

func peekAppEnv(dir string) string {
	for _, name := range []string{".env.local", ".env"} {
		values, err := godotenv.Read(filepath.Join(dir, name))
		if err != nil {
			continue
		}
		if v := values["APP_ENV"]; v != "" {
			return v
		}
	}
	return ""
}
