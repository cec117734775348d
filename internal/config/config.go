package config

import (
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/fx"
)

var Module = fx.Module("config",
	fx.Provide(Load),
	fx.Provide(NewListingConfigHolder),
)

// Config holds application configuration.
type Config struct {
	AppName          string
	AppVersion       string
	Environment      string
	AuthCookieSecure bool
	OTLPEndpoint     string

	HTTPAddr           string
	HTTPRequestTimeout time.Duration

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBPath            string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	Redis RedisConfig

	WriteRatePerSecond float64
	WriteRateBurst     int

	Bootstrap BootstrapConfig
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// Enabled reports whether a redis endpoint is configured.
func (c RedisConfig) Enabled() bool {
	return strings.TrimSpace(c.Addr) != ""
}

type BootstrapConfig struct {
	AdminUsername string
	AdminPassword string
}

var envDefaults = map[string]any{
	"ENVIRONMENT":                 "development",
	"APP_SERVICE":                 "ratrace",
	"APP_VERSION":                 "0.1.0",
	"AUTH_COOKIE_SECURE":          false,
	"OTLP_ENDPOINT":               "localhost:4317",
	"HTTP_ADDR":                   ":8080",
	"HTTP_REQUEST_TIMEOUT":        10 * time.Second,
	"DATABASE_TYPE":               "sqlite",
	"DATABASE_HOST":               "localhost",
	"DATABASE_PORT":               "5432",
	"DATABASE_NAME":               "ratrace",
	"DATABASE_USER":               "postgres",
	"DATABASE_PASSWORD":           "",
	"DATABASE_SSLMODE":            "disable",
	"DATABASE_PATH":               "ratrace.db",
	"DATABASE_MAX_IDLE_CONN":      10,
	"DATABASE_MAX_OPEN_CONN":      25,
	"DATABASE_CONN_MAX_LIFETIME":  300,
	"DATABASE_CONN_MAX_IDLE_TIME": 60,
	"REDIS_ADDR":                  "",
	"REDIS_PASSWORD":              "",
	"REDIS_DB":                    0,
	"WRITE_RATE_PER_SECOND":       1.0,
	"WRITE_RATE_BURST":            10,
	"BOOTSTRAP_ADMIN_USERNAME":    "",
	"BOOTSTRAP_ADMIN_PASSWORD":    "",
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first without overriding variables already set.
func Load() Config {
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()
	for key, value := range envDefaults {
		v.SetDefault(key, value)
	}

	environment := strings.TrimSpace(v.GetString("ENVIRONMENT"))

	return Config{
		AppName:            v.GetString("APP_SERVICE"),
		AppVersion:         v.GetString("APP_VERSION"),
		Environment:        environment,
		AuthCookieSecure:   strings.EqualFold(environment, "production") || v.GetBool("AUTH_COOKIE_SECURE"),
		OTLPEndpoint:       v.GetString("OTLP_ENDPOINT"),
		HTTPAddr:           v.GetString("HTTP_ADDR"),
		HTTPRequestTimeout: v.GetDuration("HTTP_REQUEST_TIMEOUT"),
		DBType:             strings.ToLower(v.GetString("DATABASE_TYPE")),
		DBHost:             v.GetString("DATABASE_HOST"),
		DBPort:             v.GetString("DATABASE_PORT"),
		DBName:             v.GetString("DATABASE_NAME"),
		DBUser:             v.GetString("DATABASE_USER"),
		DBPassword:         v.GetString("DATABASE_PASSWORD"),
		DBSSLMode:          v.GetString("DATABASE_SSLMODE"),
		DBPath:             v.GetString("DATABASE_PATH"),
		DBMaxIdleConn:      v.GetInt("DATABASE_MAX_IDLE_CONN"),
		DBMaxOpenConn:      v.GetInt("DATABASE_MAX_OPEN_CONN"),
		DBConnMaxLifetime:  v.GetInt("DATABASE_CONN_MAX_LIFETIME"),
		DBConnMaxIdleTime:  v.GetInt("DATABASE_CONN_MAX_IDLE_TIME"),
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(v.GetString("REDIS_ADDR")),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
		},
		WriteRatePerSecond: v.GetFloat64("WRITE_RATE_PER_SECOND"),
		WriteRateBurst:     v.GetInt("WRITE_RATE_BURST"),
		Bootstrap: BootstrapConfig{
			AdminUsername: strings.TrimSpace(v.GetString("BOOTSTRAP_ADMIN_USERNAME")),
			AdminPassword: v.GetString("BOOTSTRAP_ADMIN_PASSWORD"),
		},
	}
}

// IsProduction reports whether the service runs with production settings.
func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}
