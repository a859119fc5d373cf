package cmd

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newViper(values map[string]any) *viper.Viper {
	v := viper.New()
	setDefaults(v)
	for k, val := range values {
		v.Set(k, val)
	}
	return v
}

func TestConfigFrom_Defaults(t *testing.T) {
	config, err := configFrom(newViper(map[string]any{"DB_USER": "freight", "DB_NAME": "freight"}))

	require.NoError(t, err)
	assert.Equal(t, "8080", config.HTTPPort)
	assert.Equal(t, 2*time.Second, config.DBLockTimeout)
	assert.Equal(t, time.Monday, config.WeekStart)
	assert.Equal(t, time.UTC, config.TimeZone)
	assert.Equal(t, 3, config.CommitMaxAttempts)
	assert.Equal(t, "delivery-events", config.DeliveryEventsChannel)
	assert.Equal(t, slog.LevelInfo, config.LogLevel)
	assert.Equal(t, "host=localhost port=5432 user=freight password= dbname=freight sslmode=disable", config.DSN())
}

func TestConfigFrom_Overrides(t *testing.T) {
	config, err := configFrom(newViper(map[string]any{
		"DB_USER":             "freight",
		"DB_NAME":             "freight",
		"WEEK_START":          "sunday",
		"TIME_ZONE":           "Asia/Colombo",
		"DB_LOCK_TIMEOUT":     "750ms",
		"COMMIT_MAX_ATTEMPTS": 5,
		"LOG_LEVEL":           "debug",
	}))

	require.NoError(t, err)
	assert.Equal(t, time.Sunday, config.WeekStart)
	assert.Equal(t, "Asia/Colombo", config.TimeZone.String())
	assert.Equal(t, 750*time.Millisecond, config.DBLockTimeout)
	assert.Equal(t, 5, config.RetryPolicy().MaxAttempts)
	assert.Equal(t, slog.LevelDebug, config.LogLevel)

	calendar, err := config.Calendar()
	require.NoError(t, err)
	assert.Equal(t, time.Sunday, calendar.WeekStartDay())
}

func TestConfigFrom_Invalid(t *testing.T) {
	tests := map[string]map[string]any{
		"missing db user":  {"DB_NAME": "freight"},
		"bad weekday":      {"DB_USER": "u", "DB_NAME": "n", "WEEK_START": "Funday"},
		"bad time zone":    {"DB_USER": "u", "DB_NAME": "n", "TIME_ZONE": "Mars/Olympus"},
		"bad lock timeout": {"DB_USER": "u", "DB_NAME": "n", "DB_LOCK_TIMEOUT": "soon"},
		"zero attempts":    {"DB_USER": "u", "DB_NAME": "n", "COMMIT_MAX_ATTEMPTS": 0},
	}

	for name, values := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := configFrom(newViper(values))

			assert.Error(t, err)
		})
	}
}

func TestLoadConfig_ReadsEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("FREIGHT_TEST_UNUSED=1\n"), 0o600))
	t.Setenv("DB_USER", "freight")
	t.Setenv("DB_NAME", "freight")
	t.Setenv("HTTP_PORT", "9090")

	config, err := LoadConfig(path)

	require.NoError(t, err)
	assert.Equal(t, "9090", config.HTTPPort)
}

func TestLoadConfig_MissingEnvFileIsFine(t *testing.T) {
	t.Setenv("DB_USER", "freight")
	t.Setenv("DB_NAME", "freight")

	_, err := LoadConfig(filepath.Join(t.TempDir(), "absent.env"))

	assert.NoError(t, err)
}
