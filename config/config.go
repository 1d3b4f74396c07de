package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App       AppConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Cache     CacheConfig
	RateLimit RateLimitConfig
	Jobs      JobsConfig
}

type AppConfig struct {
	Port     string
	Env      string
	LogLevel string
}

type DBConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	Name            string
	SSLMode         string
	TimeZone        string
	MaxOpenConns    int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret       string
	Issuer       string
	AccessExpiry time.Duration
}

type CacheConfig struct {
	QueryTTL time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
}

type JobsConfig struct {
	NoShowSchedule    string
	NoShowGrace       time.Duration
	ViewFlushSchedule string
}

// DefaultJWTSecret is shipped in .env.example and must never reach production.
const DefaultJWTSecret = "change-me"

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_NAME", "mediquick")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("DB_MAX_OPEN_CONNS", 100)
	v.SetDefault("DB_MAX_IDLE_CONNS", 10)
	v.SetDefault("DB_CONN_MAX_LIFETIME", "30m")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", DefaultJWTSecret)
	v.SetDefault("JWT_ISSUER", "mediquick-api")
	v.SetDefault("JWT_ACCESS_EXPIRY", "15m")

	v.SetDefault("CACHE_QUERY_TTL", "60s")

	v.SetDefault("RATE_LIMIT_RPS", 20)
	v.SetDefault("RATE_LIMIT_BURST", 40)

	v.SetDefault("JOBS_NOSHOW_SCHEDULE", "@every 5m")
	v.SetDefault("JOBS_NOSHOW_GRACE", "30m")
	v.SetDefault("JOBS_VIEW_FLUSH_SCHEDULE", "@every 1m")
}

// LoadConfig reads configuration from the environment, optionally
// overlaid with a .env file in the working directory.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

// LoadConfigFrom is LoadConfig with an explicit env file path. A missing
// file is not an error; environment variables and defaults still apply.
func LoadConfigFrom(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path != "" {
		if _, err := os.Stat(path); err == nil {
			v.SetConfigFile(path)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, err
			}
		} else if !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	config := &Config{
		App: AppConfig{
			Port:     v.GetString("APP_PORT"),
			Env:      v.GetString("APP_ENV"),
			LogLevel: v.GetString("LOG_LEVEL"),
		},
		DB: DBConfig{
			Host:            v.GetString("DB_HOST"),
			Port:            v.GetString("DB_PORT"),
			User:            v.GetString("DB_USER"),
			Password:        v.GetString("DB_PASSWORD"),
			Name:            v.GetString("DB_NAME"),
			SSLMode:         v.GetString("DB_SSLMODE"),
			TimeZone:        v.GetString("DB_TIMEZONE"),
			MaxOpenConns:    v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:    v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: durationOr(v, "DB_CONN_MAX_LIFETIME", 30*time.Minute),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:       v.GetString("JWT_SECRET"),
			Issuer:       v.GetString("JWT_ISSUER"),
			AccessExpiry: durationOr(v, "JWT_ACCESS_EXPIRY", 15*time.Minute),
		},
		Cache: CacheConfig{
			QueryTTL: durationOr(v, "CACHE_QUERY_TTL", time.Minute),
		},
		RateLimit: RateLimitConfig{
			RPS:   v.GetFloat64("RATE_LIMIT_RPS"),
			Burst: v.GetInt("RATE_LIMIT_BURST"),
		},
		Jobs: JobsConfig{
			NoShowSchedule:    v.GetString("JOBS_NOSHOW_SCHEDULE"),
			NoShowGrace:       durationOr(v, "JOBS_NOSHOW_GRACE", 30*time.Minute),
			ViewFlushSchedule: v.GetString("JOBS_VIEW_FLUSH_SCHEDULE"),
		},
	}

	return config, nil
}

func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	d, err := time.ParseDuration(v.GetString(key))
	if err != nil {
		return fallback
	}
	return d
}

func (c *Config) IsProduction() bool {
	return c.App.Env == "production"
}
