package config

import (
	"fmt"
	"log"
	"strings"
	"time"
	_ "time/tzdata"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StrategyCookie = "cookie"
	StrategyEmail  = "email"

	DriverPostgres = "postgres"
	DriverMySQL    = "mysql"
	DriverSQLite   = "sqlite"
)

type Config struct {
	Port    string
	GinMode string

	DBDriver    string
	DBDSN       string
	AutoMigrate bool

	SessionStrategy string
	SessionSecret   string
	CookieName      string
	CookieSecure    bool
	SessionMaxAge   time.Duration
	EmailHeader     string

	CORSOrigins        []string
	LoginRatePerMinute int
	StaticDir          string
	Location           *time.Location

	LogFormat string
	LogLevel  string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_DSN", "interior.db")
	v.SetDefault("AUTO_MIGRATE", true)
	v.SetDefault("SESSION_STRATEGY", StrategyCookie)
	v.SetDefault("SESSION_SECRET", "")
	v.SetDefault("SESSION_COOKIE_NAME", "company")
	v.SetDefault("SESSION_COOKIE_SECURE", true)
	v.SetDefault("SESSION_MAX_AGE_HOURS", 24*7)
	v.SetDefault("EMAIL_HEADER", "X-User-Email")
	v.SetDefault("CORS_ORIGINS", "")
	v.SetDefault("LOGIN_RATE_PER_MINUTE", 10)
	v.SetDefault("STATIC_DIR", "")
	v.SetDefault("TIMEZONE", "Asia/Seoul")
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_LEVEL", "info")
}

// Load reads .env (when present) and the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: .env file not found or error loading: %v", err)
	}
	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)
	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Port:               v.GetString("PORT"),
		GinMode:            v.GetString("GIN_MODE"),
		DBDriver:           strings.ToLower(v.GetString("DB_DRIVER")),
		DBDSN:              v.GetString("DB_DSN"),
		AutoMigrate:        v.GetBool("AUTO_MIGRATE"),
		SessionStrategy:    strings.ToLower(v.GetString("SESSION_STRATEGY")),
		SessionSecret:      v.GetString("SESSION_SECRET"),
		CookieName:         v.GetString("SESSION_COOKIE_NAME"),
		CookieSecure:       v.GetBool("SESSION_COOKIE_SECURE"),
		SessionMaxAge:      time.Duration(v.GetInt("SESSION_MAX_AGE_HOURS")) * time.Hour,
		EmailHeader:        v.GetString("EMAIL_HEADER"),
		CORSOrigins:        splitList(v.GetString("CORS_ORIGINS")),
		LoginRatePerMinute: v.GetInt("LOGIN_RATE_PER_MINUTE"),
		StaticDir:          v.GetString("STATIC_DIR"),
		LogFormat:          v.GetString("LOG_FORMAT"),
		LogLevel:           v.GetString("LOG_LEVEL"),
	}

	loc, err := time.LoadLocation(v.GetString("TIMEZONE"))
	if err != nil {
		return nil, fmt.Errorf("invalid TIMEZONE: %w", err)
	}
	cfg.Location = loc

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	switch c.DBDriver {
	case DriverPostgres, DriverMySQL, DriverSQLite:
	default:
		return fmt.Errorf("unsupported DB_DRIVER %q", c.DBDriver)
	}
	switch c.SessionStrategy {
	case StrategyCookie:
		if c.SessionSecret == "" {
			return fmt.Errorf("SESSION_SECRET is required for the cookie session strategy")
		}
	case StrategyEmail:
	default:
		return fmt.Errorf("unsupported SESSION_STRATEGY %q", c.SessionStrategy)
	}
	if c.SessionMaxAge <= 0 {
		return fmt.Errorf("SESSION_MAX_AGE_HOURS must be positive")
	}
	if c.LoginRatePerMinute <= 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MINUTE must be positive")
	}
	return nil
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
