package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Env           string
	DatabaseURL   string
	JWTSecret     string
	JWTExpiration time.Duration
	ServerPort    string
	LogLevel      string
}

// Load reads configuration from environment variables, with an optional
// .env file in the working directory. Environment variables win.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	_ = v.ReadInConfig() // missing file is fine

	v.AutomaticEnv()

	v.SetDefault("APP_ENV", "development")
	v.SetDefault("DATABASE_URL", "postgresql://postgres@localhost:5432/nadgodziny")
	v.SetDefault("JWT_SECRET", "your-super-secret-key-change-in-production")
	v.SetDefault("JWT_EXPIRATION_HOURS", 24)
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("LOG_LEVEL", "info")

	cfg := &Config{
		Env:           v.GetString("APP_ENV"),
		DatabaseURL:   v.GetString("DATABASE_URL"),
		JWTSecret:     v.GetString("JWT_SECRET"),
		JWTExpiration: time.Duration(v.GetInt("JWT_EXPIRATION_HOURS")) * time.Hour,
		ServerPort:    v.GetString("SERVER_PORT"),
		LogLevel:      v.GetString("LOG_LEVEL"),
	}

	return cfg, nil
}
