package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

// DBConfig holds the connection settings of one database replica.
type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	SSLMode  string
}

// Policy holds the reconciliation and payroll constants. They vary per
// deployment (an 8-hour production shift vs short test shifts), so they
// are always supplied here and never hardcoded in the classifier.
type Policy struct {
	StandardShiftDuration time.Duration
	OvertimeThreshold     time.Duration
	RatePerMinute         float64
	AbsentPenalty         float64
	OvertimeMultiplier    float64
}

// Config is assembled once at process start and treated as immutable for
// the lifetime of the process.
type Config struct {
	HTTPPort string

	Primary DBConfig
	Backup  DBConfig

	// StoreTimeout bounds every single primary/backup operation before
	// the replicated store gives up on that replica.
	StoreTimeout time.Duration

	RedisAddr   string
	KafkaBroker string

	TokenTTL time.Duration

	Policy Policy

	// Timezone anchors the daily reconciliation window.
	Timezone string

	ReconcileInterval time.Duration
	LedgerInterval    time.Duration
	OutboxInterval    time.Duration
}

// Load reads the configuration from the environment. Only the primary
// database settings are mandatory; everything else has a default.
func Load() (Config, error) {
	cfg := Config{
		HTTPPort: getEnv("PORT", "3000"),
		Primary: DBConfig{
			Host:     os.Getenv("DB_PRIMARY_HOST"),
			Port:     getEnv("DB_PRIMARY_PORT", "5433"),
			User:     getEnv("DB_PRIMARY_USER", "yugabyte"),
			Password: getEnv("DB_PRIMARY_PASSWORD", "yugabyte"),
			Name:     getEnv("DB_PRIMARY_NAME", "yugabyte"),
			SSLMode:  getEnv("DB_PRIMARY_SSLMODE", "disable"),
		},
		Backup: DBConfig{
			Host:     os.Getenv("DB_BACKUP_HOST"),
			Port:     getEnv("DB_BACKUP_PORT", "5433"),
			User:     getEnv("DB_BACKUP_USER", "yugabyte"),
			Password: getEnv("DB_BACKUP_PASSWORD", "yugabyte"),
			Name:     getEnv("DB_BACKUP_NAME", "yugabyte"),
			SSLMode:  getEnv("DB_BACKUP_SSLMODE", "disable"),
		},
		StoreTimeout: getEnvSeconds("STORE_TIMEOUT_SECONDS", 10*time.Second),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:  os.Getenv("KAFKA_BROKER"),
		TokenTTL:     getEnvSeconds("TOKEN_TTL_SECONDS", time.Hour),
		Policy: Policy{
			StandardShiftDuration: getEnvSeconds("SHIFT_DURATION_SECONDS", 8*time.Hour),
			OvertimeThreshold:     getEnvSeconds("OVERTIME_THRESHOLD_SECONDS", 0),
			RatePerMinute:         getEnvFloat("RATE_PER_MINUTE", 10),
			AbsentPenalty:         getEnvFloat("ABSENT_PENALTY", 800),
			OvertimeMultiplier:    getEnvFloat("OVERTIME_MULTIPLIER", 2),
		},
		Timezone:          getEnv("RECONCILE_TIMEZONE", "Asia/Taipei"),
		ReconcileInterval: getEnvSeconds("RECONCILE_INTERVAL_SECONDS", 24*time.Hour),
		LedgerInterval:    getEnvSeconds("LEDGER_INTERVAL_SECONDS", 5*time.Minute),
		OutboxInterval:    getEnvSeconds("OUTBOX_INTERVAL_SECONDS", 3*time.Second),
	}

	if cfg.Primary.Host == "" {
		return Config{}, fmt.Errorf("DB_PRIMARY_HOST is required")
	}
	if cfg.Backup.Host == "" {
		return Config{}, fmt.Errorf("DB_BACKUP_HOST is required")
	}
	if cfg.Policy.StandardShiftDuration <= 0 {
		return Config{}, fmt.Errorf("SHIFT_DURATION_SECONDS must be positive")
	}

	return cfg, nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvSeconds(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	secs, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return time.Duration(secs) * time.Second
}

func getEnvFloat(key string, def float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}
