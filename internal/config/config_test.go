package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalYAML = `
server:
  host: "127.0.0.1"
  port: 9090
database:
  host: "localhost"
  port: 5432
  user: "agrirent"
  password: "pw"
  database: "agrirent_test"
  ssl_mode: "disable"
jwt:
  secret: "test-secret-long-enough-0123456789abcdef"
storage:
  upload_dir: "uploads"
  base_url: "http://127.0.0.1:9090"
log:
  level: "debug"
`

func writeConfig(t *testing.T, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)

	assert.Equal(t, "127.0.0.1:9090", cfg.GetServerAddress())
	assert.Equal(t, 100, cfg.Booking.CancellationWindowHours)
	assert.Equal(t, 100*time.Hour, cfg.CancellationWindow())
	assert.Equal(t, int64(5*1024*1024), cfg.MaxFileSizeBytes())
	assert.Equal(t, 3, cfg.Storage.MaxImages)
	assert.Equal(t, 24*7, cfg.JWT.ExpiryHours)
	assert.Equal(t, "0 */15 * * * *", cfg.Scheduler.ReconcileAvailability)
}

func TestLoad_ConnectionString(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	assert.Equal(t,
		"postgres://agrirent:pw@localhost:5432/agrirent_test?sslmode=disable",
		cfg.GetDatabaseConnectionString())
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("BOOKING_CANCELLATION_WINDOW_HOURS", "48")

	cfg, err := Load(writeConfig(t, minimalYAML))
	require.NoError(t, err)
	assert.Equal(t, "db.internal", cfg.Database.Host)
	assert.Equal(t, 48*time.Hour, cfg.CancellationWindow())
}

func TestLoad_RejectsShortSecret(t *testing.T) {
	bad := minimalYAML
	cfg := writeConfig(t, bad)
	t.Setenv("JWT_SECRET", "short")

	_, err := Load(cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "at least 32 characters")
}

func TestLoad_RejectsMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
