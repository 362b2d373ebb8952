package config

import (
	"errors"
	"os"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverMemory   = "memory"
	StoreDriverPostgres = "postgres"
)

type Config struct {
	App       AppConfig
	Store     StoreConfig
	DB        DBConfig
	Redis     RedisConfig
	JWT       JWTConfig
	Chat      ChatConfig
	Reminder  ReminderConfig
	RateLimit RateLimitConfig
	Seed      SeedConfig
}

type AppConfig struct {
	Port           string
	Env            string
	LogLevel       string
	AllowedOrigins string
}

type StoreConfig struct {
	Driver string
}

type DBConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
	TimeZone string
}

// RedisConfig with an empty Host makes the service keep tokens in process.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

type JWTConfig struct {
	Secret        string
	AccessExpiry  time.Duration
	RefreshExpiry time.Duration
}

type ChatConfig struct {
	AutoReplyDelay time.Duration
	AutoReplyText  string
}

type ReminderConfig struct {
	Interval time.Duration
}

type RateLimitConfig struct {
	RPS   float64
	Burst int
	// TrustProxy keys limits on X-Real-Ip / X-Forwarded-For. Enable only
	// behind a proxy that overwrites those headers.
	TrustProxy bool
}

type SeedConfig struct {
	DemoPassword string
}

// LoadConfig reads .env from the working directory when present and lets the
// environment override every key.
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(".env")
}

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
			Port:           v.GetString("APP_PORT"),
			Env:            v.GetString("APP_ENV"),
			LogLevel:       v.GetString("LOG_LEVEL"),
			AllowedOrigins: v.GetString("CORS_ALLOWED_ORIGINS"),
		},
		Store: StoreConfig{
			Driver: v.GetString("STORE_DRIVER"),
		},
		DB: DBConfig{
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			TimeZone: v.GetString("DB_TIMEZONE"),
		},
		Redis: RedisConfig{
			Host:     v.GetString("REDIS_HOST"),
			Port:     v.GetString("REDIS_PORT"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		JWT: JWTConfig{
			Secret:        v.GetString("JWT_SECRET"),
			AccessExpiry:  durationOr(v, "JWT_ACCESS_EXPIRY", 15*time.Minute),
			RefreshExpiry: durationOr(v, "JWT_REFRESH_EXPIRY", 7*24*time.Hour),
		},
		Chat: ChatConfig{
			AutoReplyDelay: durationOr(v, "CHAT_AUTO_REPLY_DELAY", 2*time.Second),
			AutoReplyText:  v.GetString("CHAT_AUTO_REPLY_TEXT"),
		},
		Reminder: ReminderConfig{
			Interval: durationOr(v, "REMINDER_INTERVAL", time.Minute),
		},
		RateLimit: RateLimitConfig{
			RPS:        v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:      v.GetInt("RATE_LIMIT_BURST"),
			TrustProxy: v.GetBool("RATE_LIMIT_TRUST_PROXY"),
		},
		Seed: SeedConfig{
			DemoPassword: v.GetString("SEED_DEMO_PASSWORD"),
		},
	}

	if config.Store.Driver != StoreDriverMemory && config.Store.Driver != StoreDriverPostgres {
		return nil, errors.New("STORE_DRIVER must be memory or postgres")
	}
	if config.JWT.Secret == "" {
		return nil, errors.New("JWT_SECRET is required")
	}
	if config.Reminder.Interval <= 0 {
		return nil, errors.New("REMINDER_INTERVAL must be positive")
	}
	if config.RateLimit.RPS <= 0 || config.RateLimit.Burst <= 0 {
		return nil, errors.New("RATE_LIMIT_RPS and RATE_LIMIT_BURST must be positive")
	}

	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("APP_ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("CORS_ALLOWED_ORIGINS", "*")
	v.SetDefault("STORE_DRIVER", StoreDriverMemory)
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_TIMEZONE", "UTC")
	v.SetDefault("REDIS_PORT", "6379")
	v.SetDefault("JWT_SECRET", "")
	v.SetDefault("CHAT_AUTO_REPLY_TEXT", "Thanks for your message. I'll review this and get back to you shortly.")
	v.SetDefault("RATE_LIMIT_RPS", 5)
	v.SetDefault("RATE_LIMIT_BURST", 10)
	v.SetDefault("RATE_LIMIT_TRUST_PROXY", false)
	v.SetDefault("SEED_DEMO_PASSWORD", "password123")
}

// durationOr falls back when the key is unset or unparsable, the same way the
// JWT expiries always have.
func durationOr(v *viper.Viper, key string, fallback time.Duration) time.Duration {
	raw := v.GetString(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}
	return d
}
