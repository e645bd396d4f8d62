package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	AppEnv  string `validate:"required"`
	AppPort string `validate:"required,numeric"`

	DBHost     string `validate:"required"`
	DBPort     string `validate:"required,numeric"`
	DBUser     string
	DBPassword string
	DBName     string `validate:"required"`
	DBSSLMode  string `validate:"oneof=disable allow prefer require verify-ca verify-full"`

	// TokenSecret signs every access token; rotating it invalidates all of them.
	TokenSecret string        `validate:"required"`
	TokenTTL    time.Duration `validate:"gt=0"`

	CORSOrigins []string
}

var validate = validator.New()

// LoadConfig reads .env (when present) and the process environment.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_NAME", "gadgetShop")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("TOKEN_TTL", "240h")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173,http://localhost:5175")

	cfg := &Config{
		AppEnv:      v.GetString("APP_ENV"),
		AppPort:     firstNonEmpty(v.GetString("APP_PORT"), v.GetString("PORT"), "5000"),
		DBHost:      v.GetString("DB_HOST"),
		DBPort:      v.GetString("DB_PORT"),
		DBUser:      v.GetString("DB_USER"),
		DBPassword:  firstNonEmpty(v.GetString("DB_PASSWORD"), v.GetString("DB_PASS")),
		DBName:      v.GetString("DB_NAME"),
		DBSSLMode:   v.GetString("DB_SSLMODE"),
		TokenSecret: v.GetString("ACCESS_KEY_TOKEN"),
		TokenTTL:    v.GetDuration("TOKEN_TTL"),
		CORSOrigins: splitList(v.GetString("CORS_ORIGINS")),
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
