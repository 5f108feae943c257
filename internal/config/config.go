package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string        `mapstructure:"PORT"`
	Env                  string        `mapstructure:"ENV"`
	DatabaseURL          string        `mapstructure:"DATABASE_URL"`
	DBMaxConns           int32         `mapstructure:"DB_MAX_CONNS"`
	DBMinConns           int32         `mapstructure:"DB_MIN_CONNS"`
	CORSOrigins          []string      `mapstructure:"CORS_ORIGINS"`
	SessionStore         string        `mapstructure:"SESSION_STORE"`
	SessionTTL           time.Duration `mapstructure:"SESSION_TTL"`
	SessionSweepInterval time.Duration `mapstructure:"SESSION_SWEEP_INTERVAL"`
	SessionCookieName    string        `mapstructure:"SESSION_COOKIE_NAME"`
	RedisURL             string        `mapstructure:"REDIS_URL"`
	ScheduleTimezone     string        `mapstructure:"SCHEDULE_TIMEZONE"`
	OverlapPolicy        string        `mapstructure:"OVERLAP_POLICY"`
	OverlapWindow        time.Duration `mapstructure:"OVERLAP_WINDOW"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("DB_MAX_CONNS", 20)
	v.SetDefault("DB_MIN_CONNS", 5)
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("SESSION_STORE", "memory")
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("SESSION_SWEEP_INTERVAL", "1h")
	v.SetDefault("SESSION_COOKIE_NAME", "hms_session")
	v.SetDefault("SCHEDULE_TIMEZONE", "Local")
	v.SetDefault("OVERLAP_POLICY", "allow")
	v.SetDefault("OVERLAP_WINDOW", "30m")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("DATABASE_URL")
	v.BindEnv("DB_MAX_CONNS")
	v.BindEnv("DB_MIN_CONNS")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("SESSION_STORE")
	v.BindEnv("SESSION_TTL")
	v.BindEnv("SESSION_SWEEP_INTERVAL")
	v.BindEnv("SESSION_COOKIE_NAME")
	v.BindEnv("REDIS_URL")
	v.BindEnv("SCHEDULE_TIMEZONE")
	v.BindEnv("OVERLAP_POLICY")
	v.BindEnv("OVERLAP_WINDOW")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// Location resolves SCHEDULE_TIMEZONE to a time.Location. "Local" (the
// default) preserves the process-local day boundary; any IANA zone name pins
// the "today" window to that zone regardless of where the server runs.
func (c *Config) Location() (*time.Location, error) {
	if c.ScheduleTimezone == "" || c.ScheduleTimezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.ScheduleTimezone)
	if err != nil {
		return nil, fmt.Errorf("SCHEDULE_TIMEZONE %q: %w", c.ScheduleTimezone, err)
	}
	return loc, nil
}

// Validate checks that enumerated settings hold allowed values and that the
// configured session store has what it needs to start.
func (c *Config) Validate() error {
	switch c.SessionStore {
	case "memory":
	case "redis":
		if c.RedisURL == "" {
			return fmt.Errorf("REDIS_URL is required when SESSION_STORE is \"redis\"")
		}
	default:
		return fmt.Errorf("SESSION_STORE must be \"memory\" or \"redis\", got %q", c.SessionStore)
	}

	switch c.OverlapPolicy {
	case "allow", "warn", "reject":
	default:
		return fmt.Errorf("OVERLAP_POLICY must be \"allow\", \"warn\", or \"reject\", got %q", c.OverlapPolicy)
	}

	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive, got %s", c.SessionTTL)
	}
	if c.OverlapPolicy != "allow" && c.OverlapWindow <= 0 {
		return fmt.Errorf("OVERLAP_WINDOW must be positive when OVERLAP_POLICY is %q", c.OverlapPolicy)
	}

	if _, err := c.Location(); err != nil {
		return err
	}

	return nil
}
