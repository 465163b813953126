package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

type DatabaseConfig struct {
	Host       string
	User       string
	Password   string
	Name       string
	Port       string
	SSLMode    string
	MaxRetries int
}

type HTTPConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	IdleTimeout     time.Duration
	ShutdownTimeout time.Duration
}

type SalaryConfig struct {
	InsuranceRate decimal.Decimal
	TaxRate       decimal.Decimal
	TaxExemption  decimal.Decimal
}

type Config struct {
	Environment        string
	HTTP               HTTPConfig
	Database           DatabaseConfig
	RedisAddr          string
	KafkaBroker        string
	ConsumerGroupID    string
	JWTSecret          string
	RBACModelPath      string
	AutoMigrate        bool
	OutboxPollInterval time.Duration
	Salary             SalaryConfig
}

// Load reads .env (when present) and the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Environment: getEnv("APP_ENV", "development"),
		HTTP: HTTPConfig{
			Port:            getEnv("PORT", "3000"),
			ReadTimeout:     getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
			WriteTimeout:    getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
			IdleTimeout:     getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
			ShutdownTimeout: getEnvDuration("HTTP_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Database: DatabaseConfig{
			Host:       getEnv("DB_HOST", "localhost"),
			User:       getEnv("DB_USER", "postgres"),
			Password:   getEnv("DB_PASSWORD", ""),
			Name:       getEnv("DB_NAME", "personnel"),
			Port:       getEnv("DB_PORT", "5432"),
			SSLMode:    getEnv("DB_SSLMODE", "disable"),
			MaxRetries: getEnvInt("DB_MAX_RETRIES", 5),
		},
		RedisAddr:          getEnv("REDIS_ADDR", ""),
		KafkaBroker:        getEnv("KAFKA_BROKER", ""),
		ConsumerGroupID:    getEnv("KAFKA_CONSUMER_GROUP", "go-personnel-salary"),
		JWTSecret:          getEnv("JWT_SECRET", ""),
		RBACModelPath:      getEnv("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf"),
		AutoMigrate:        getEnvBool("AUTO_MIGRATE", false),
		OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		Salary: SalaryConfig{
			InsuranceRate: getEnvDecimal("SALARY_INSURANCE_RATE", decimal.RequireFromString("0.07")),
			TaxRate:       getEnvDecimal("SALARY_TAX_RATE", decimal.RequireFromString("0.10")),
			TaxExemption:  getEnvDecimal("SALARY_TAX_EXEMPTION", decimal.Zero),
		},
	}
}

func (c Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDecimal(key string, fallback decimal.Decimal) decimal.Decimal {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := decimal.NewFromString(value)
	if err != nil || parsed.IsNegative() {
		return fallback
	}
	return parsed
}
