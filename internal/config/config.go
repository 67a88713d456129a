package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"go-taxdesk/internal/shared/connection"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv string
	Port   string

	DB             connection.DBConfig
	DBMaxRetries   int
	MigrationsDir  string
	RedisAddr      string
	KafkaBroker    string
	JWTSecret      string
	RBACModelPath  string
	AllowedOrigins []string

	PayslipStorageDir    string
	PayslipPublicBaseURL string

	OutboxPollInterval time.Duration
}

// Load reads .env when present, then the process environment.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppEnv: getEnv("APP_ENV", "development"),
		Port:   getEnv("PORT", "3000"),
		DB: connection.DBConfig{
			Host:     getEnv("DB_HOST", "localhost"),
			User:     getEnv("DB_USER", "postgres"),
			Password: os.Getenv("DB_PASSWORD"),
			Name:     getEnv("DB_NAME", "taxdesk"),
			Port:     getEnv("DB_PORT", "5432"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
		},
		DBMaxRetries:         getInt("DB_MAX_RETRIES", 5),
		MigrationsDir:        os.Getenv("MIGRATIONS_DIR"),
		RedisAddr:            getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:          os.Getenv("KAFKA_BROKER"),
		JWTSecret:            os.Getenv("JWT_SECRET"),
		RBACModelPath:        getEnv("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf"),
		AllowedOrigins:       getList("CORS_ALLOWED_ORIGINS", []string{"http://localhost:5173"}),
		PayslipStorageDir:    getEnv("PAYSLIP_STORAGE_DIR", "storage/payslips"),
		PayslipPublicBaseURL: getEnv("PAYSLIP_PUBLIC_BASE_URL", "/static/payslips"),
		OutboxPollInterval:   getDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
	}
}

func (c Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func getEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return fallback
	}

	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
