package config

import (
	"errors"
	"fmt"
	"log"

	"github.com/spf13/viper"
)

const (
	BackendFirestore = "firestore"
	BackendMongo     = "mongo"

	// Firestore rejects write batches larger than this.
	MaxBatchWrites = 500

	DefaultDispatchLimit = 300
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	// TrustedProxies lists the proxy CIDRs whose X-Forwarded-For entries are
	// believed. Empty means the peer address is the client.
	TrustedProxies []string `mapstructure:"TRUSTED_PROXIES"`

	// Firebase project and credentials. An empty credentials file falls back
	// to application default credentials.
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`

	// Document store. The mongo backend commits batches in transactions,
	// so DATABASE_URL must point at a replica set or a mongos.
	StoreBackend            string `mapstructure:"STORE_BACKEND"`
	DatabaseURL             string `mapstructure:"DATABASE_URL"`
	MongoDatabase           string `mapstructure:"MONGO_DATABASE"`
	NotificationsCollection string `mapstructure:"NOTIFICATIONS_COLLECTION"`
	AppointmentsCollection  string `mapstructure:"APPOINTMENTS_COLLECTION"`
	UsersCollection         string `mapstructure:"USERS_COLLECTION"`

	// Redis configuration for the in-process scheduler.
	RedisAddr        string `mapstructure:"REDIS_ADDR"`
	RedisPassword    string `mapstructure:"REDIS_PASSWORD"`
	RedisSchedulerDB int    `mapstructure:"REDIS_SCHEDULER_DB"`
	SchedulerEnabled bool   `mapstructure:"SCHEDULER_ENABLED"`
	DispatchSchedule string `mapstructure:"DISPATCH_SCHEDULE"`
	SweepSchedule    string `mapstructure:"SWEEP_SCHEDULE"`
	TaskMaxRetry     int    `mapstructure:"TASK_MAX_RETRY"`

	// Reminder handling.
	DispatchLimit        int    `mapstructure:"DISPATCH_LIMIT"`
	RetentionDays        int    `mapstructure:"RETENTION_DAYS"`
	DefaultReminderTitle string `mapstructure:"DEFAULT_REMINDER_TITLE"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 120)
	v.SetDefault("TRUSTED_PROXIES", []string{})
	v.SetDefault("FIREBASE_PROJECT_ID", "")
	v.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
	v.SetDefault("STORE_BACKEND", BackendFirestore)
	v.SetDefault("DATABASE_URL", "mongodb://localhost:27017/?replicaSet=rs0")
	v.SetDefault("MONGO_DATABASE", "apptreminders")
	v.SetDefault("NOTIFICATIONS_COLLECTION", "notifications")
	v.SetDefault("APPOINTMENTS_COLLECTION", "appointments")
	v.SetDefault("USERS_COLLECTION", "users")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_SCHEDULER_DB", 3)
	v.SetDefault("SCHEDULER_ENABLED", false)
	v.SetDefault("DISPATCH_SCHEDULE", "@every 15m")
	v.SetDefault("SWEEP_SCHEDULE", "0 0 * * *")
	v.SetDefault("TASK_MAX_RETRY", 3)
	v.SetDefault("DISPATCH_LIMIT", DefaultDispatchLimit)
	v.SetDefault("RETENTION_DAYS", 30)
	v.SetDefault("DEFAULT_REMINDER_TITLE", "Rappel")
}

// LoadConfig reads config.yaml from the current or ./config directory and
// lets environment variables override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("config: failed to read config file: %w", err)
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects settings the handlers cannot honour.
func (c *Config) Validate() error {
	switch c.StoreBackend {
	case BackendFirestore, BackendMongo:
	default:
		return fmt.Errorf("config: unknown STORE_BACKEND %q", c.StoreBackend)
	}
	if c.DispatchLimit < 1 || c.DispatchLimit > MaxBatchWrites {
		return fmt.Errorf("config: DISPATCH_LIMIT must be between 1 and %d, got %d", MaxBatchWrites, c.DispatchLimit)
	}
	if c.RetentionDays < 1 {
		return fmt.Errorf("config: RETENTION_DAYS must be positive, got %d", c.RetentionDays)
	}
	if c.TaskMaxRetry < 0 {
		return fmt.Errorf("config: TASK_MAX_RETRY must not be negative, got %d", c.TaskMaxRetry)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Env == "production"
}
