package db

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
	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte(body), 0o600))
	return p
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, "version: \"1\"\n"))
	require.NoError(t, err)

	assert.Equal(t, ModeDev, cfg.Mode)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, DriverSQLite, cfg.DB.Driver)
	assert.Equal(t, "library.db", cfg.DB.Path)
	assert.Equal(t, "UTC", cfg.Library.Timezone)
	assert.True(t, cfg.SeedEnabled())
	assert.False(t, cfg.TLSEnabled())
}

func TestLoadConfigFile(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `
mode: release
server:
  addr: ":9090"
  cors_origins: ["http://example.test"]
database:
  driver: mysql
  host: db
  port: 3307
  user: lib
  password: secret
  dbname: library
certificate:
  cert: server.crt
  key: server.key
library:
  timezone: Asia/Tokyo
  seed: false
`))
	require.NoError(t, err)

	assert.Equal(t, ModeRelease, cfg.Mode)
	assert.Equal(t, []string{"http://example.test"}, cfg.Server.CORSOrigins)
	assert.Equal(t, DatabaseConfig{
		Driver: DriverMySQL, Host: "db", Port: 3307,
		Username: "lib", Password: "secret", DBName: "library",
	}, cfg.DB)
	assert.False(t, cfg.SeedEnabled())
	assert.True(t, cfg.TLSEnabled())

	loc, err := cfg.Location()
	require.NoError(t, err)
	assert.Equal(t, "Asia/Tokyo", loc.String())
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	t.Setenv("LIBRARY_DB_DRIVER", "postgres")
	t.Setenv("LIBRARY_DB_HOST", "pg.internal")
	t.Setenv("LIBRARY_DB_PORT", "6543")
	t.Setenv("LIBRARY_DB_PASSWORD", "from-env")

	cfg, err := LoadConfig(writeConfig(t, "database:\n  driver: mysql\n  host: db\n"))
	require.NoError(t, err)
	assert.Equal(t, DriverPostgres, cfg.DB.Driver)
	assert.Equal(t, "pg.internal", cfg.DB.Host)
	assert.Equal(t, 6543, cfg.DB.Port)
	assert.Equal(t, "from-env", cfg.DB.Password)
}

func TestLoadConfigRejects(t *testing.T) {
	cases := map[string]string{
		"mode":     "mode: staging\n",
		"driver":   "database:\n  driver: oracle\n",
		"timezone": "library:\n  timezone: Mars/Olympus\n",
		"yaml":     "mode: [\n",
	}
	for name, body := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadConfig(writeConfig(t, body))
			assert.Error(t, err)
		})
	}

	_, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestLocationWithoutSystemZoneinfo(t *testing.T) {
	t.Setenv("ZONEINFO", t.TempDir())

	cfg, err := LoadConfig(writeConfig(t, "library:\n  timezone: Asia/Tokyo\n"))
	require.NoError(t, err)
	loc, err := cfg.Location()
	require.NoError(t, err)
	_, offset := time.Date(2024, 1, 1, 0, 0, 0, 0, loc).Zone()
	assert.Equal(t, 9*60*60, offset)
}
