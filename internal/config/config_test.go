package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.test.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "pcmall_jwt", cfg.JWT.CookieName)
	assert.NotEmpty(t, cfg.JWT.Secret, "development gets a generated secret")
}

func TestLoad_YAMLThenEnv(t *testing.T) {
	path := writeConfig(t, `
env: production
server:
  port: 9000
database:
  driver: mysql
  host: db.internal
  user: shop
  password: pw
  name: pcmall
jwt:
  secret: 0123456789abcdef0123456789abcdef
  expires_in: 2h
elasticsearch:
  enabled: true
  addresses: ["http://es:9200"]
`)
	t.Setenv("PCMALL_SERVER_PORT", "9100")
	t.Setenv("PCMALL_ES_ADDRESSES", "http://es1:9200,http://es2:9200")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, 2*time.Hour, cfg.JWT.ExpiresIn)
	assert.Equal(t, []string{"http://es1:9200", "http://es2:9200"}, cfg.Elasticsearch.Addresses)
	assert.Equal(t, "shop:pw@tcp(db.internal:3306)/pcmall?charset=utf8mb4&parseTime=True&loc=Local", cfg.Database.GetDSN())
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_ProductionRequiresStrongSecret(t *testing.T) {
	path := writeConfig(t, "env: production\njwt:\n  secret: short\n")

	_, err := Load(path)
	assert.Error(t, err)
}

func TestValidate_RejectsUnknownDriver(t *testing.T) {
	cfg := Default()
	cfg.Database.Driver = "postgres"
	assert.Error(t, cfg.Validate())
}

func TestLoad_InvalidYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "server: ["))
	assert.Error(t, err)
}

func TestOrigins(t *testing.T) {
	c := CORSConfig{AllowOrigins: " https://a.example.com, ,https://b.example.com "}
	assert.Equal(t, []string{"https://a.example.com", "https://b.example.com"}, c.Origins())
}

func TestSQLiteDSN(t *testing.T) {
	d := DatabaseConfig{Driver: DriverSQLite, Path: "/tmp/x.db"}
	assert.Equal(t, "/tmp/x.db", d.GetDSN())
}
