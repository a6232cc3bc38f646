package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

// Config holds runtime configuration for the suite.
type Config struct {
	AppEnv string `envconfig:"APP_ENV" default:"development"`
	Port   string `envconfig:"PORT" default:"3000"`

	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBUser      string `envconfig:"DB_USER" default:"hris"`
	DBPassword  string `envconfig:"DB_PASSWORD" default:"hris"`
	DBName      string `envconfig:"DB_NAME" default:"hris"`
	DBPort      string `envconfig:"DB_PORT" default:"5432"`

	JWTSecret   string        `envconfig:"JWT_SECRET" default:"change-me-in-production"`
	TokenExpiry time.Duration `envconfig:"TOKEN_EXPIRY" default:"24h"`

	RedisAddr string `envconfig:"REDIS_ADDR" default:"127.0.0.1:6379"`

	// Workday parameters driving attendance status and payroll deductions.
	WorkdayStart       string        `envconfig:"WORKDAY_START" default:"08:00"`
	LateGrace          time.Duration `envconfig:"LATE_GRACE" default:"15m"`
	AbsenceDeduction   float64       `envconfig:"ABSENCE_DEDUCTION" default:"100"`
	LatenessDeduction  float64       `envconfig:"LATENESS_DEDUCTION" default:"25"`
}

// Load reads configuration from environment variables. godotenv should
// be loaded by the caller first.
func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// IsProduction returns true when the suite runs in production.
func (c *Config) IsProduction() bool {
	return c != nil && c.AppEnv == "production"
}
