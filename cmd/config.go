package cmd

import (
	"log/slog"
	"strings"
)

const (
	BackendMemory   = "memory"
	BackendBolt     = "bolt"
	BackendPostgres = "postgres"
)

type Config struct {
	HTTPPort         string
	StoreBackend     string
	BoltPath         string
	DBHost           string
	DBPort           string
	DBUser           string
	DBPassword       string
	DBName           string
	DBSslMode        string
	AuditSchedule    string
	LogLevel         slog.Level
	OperatorAccounts []string
}

// ConfigFromLookup builds a Config from lookup, usually os.Getenv, filling
// defaults for unset keys.
func ConfigFromLookup(lookup func(string) string) Config {
	get := func(key, fallback string) string {
		if v := strings.TrimSpace(lookup(key)); v != "" {
			return v
		}
		return fallback
	}

	var level slog.Level
	if err := level.UnmarshalText([]byte(get("LOG_LEVEL", "INFO"))); err != nil {
		level = slog.LevelInfo
	}

	var operators []string
	for _, account := range strings.Split(lookup("OPERATOR_ACCOUNTS"), ",") {
		if account = strings.TrimSpace(account); account != "" {
			operators = append(operators, account)
		}
	}

	return Config{
		HTTPPort:         get("HTTP_PORT", "8080"),
		StoreBackend:     strings.ToLower(get("STORE_BACKEND", BackendMemory)),
		BoltPath:         get("BOLT_PATH", "fissionmall.db"),
		DBHost:           get("DB_HOST", "localhost"),
		DBPort:           get("DB_PORT", "5432"),
		DBUser:           get("DB_USER", "postgres"),
		DBPassword:       lookup("DB_PASSWORD"),
		DBName:           get("DB_NAME", "fissionmall"),
		DBSslMode:        get("DB_SSLMODE", "disable"),
		AuditSchedule:    get("AUDIT_SCHEDULE", "0 * * * * *"),
		LogLevel:         level,
		OperatorAccounts: operators,
	}
}
