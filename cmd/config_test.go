package cmd_test

import (
	"log/slog"
	"testing"

	"github.com/lao-sha/fissionmall/cmd"

	"github.com/stretchr/testify/assert"
)

func TestConfigFromLookup(t *testing.T) {
	t.Run("should fill defaults for unset keys", func(t *testing.T) {
		config := cmd.ConfigFromLookup(func(string) string { return "" })

		assert.Equal(t, "8080", config.HTTPPort)
		assert.Equal(t, cmd.BackendMemory, config.StoreBackend)
		assert.Equal(t, "0 * * * * *", config.AuditSchedule)
		assert.Equal(t, slog.LevelInfo, config.LogLevel)
		assert.Empty(t, config.OperatorAccounts)
	})

	t.Run("should read the environment", func(t *testing.T) {
		env := map[string]string{
			"HTTP_PORT":         "9000",
			"STORE_BACKEND":     "Bolt",
			"BOLT_PATH":         "/tmp/x.db",
			"LOG_LEVEL":         "debug",
			"OPERATOR_ACCOUNTS": " ops , ,admin",
		}
		config := cmd.ConfigFromLookup(func(key string) string { return env[key] })

		assert.Equal(t, "9000", config.HTTPPort)
		assert.Equal(t, cmd.BackendBolt, config.StoreBackend)
		assert.Equal(t, "/tmp/x.db", config.BoltPath)
		assert.Equal(t, slog.LevelDebug, config.LogLevel)
		assert.Equal(t, []string{"ops", "admin"}, config.OperatorAccounts)
	})

	t.Run("should fall back to info on an unknown level", func(t *testing.T) {
		config := cmd.ConfigFromLookup(func(key string) string {
			if key == "LOG_LEVEL" {
				return "loud"
			}
			return ""
		})

		assert.Equal(t, slog.LevelInfo, config.LogLevel)
	})
}
