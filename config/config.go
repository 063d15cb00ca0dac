// Package config loads service configuration from .env, config.yaml and the environment.
package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"github.com/warp/shift-ledger/generic"
	"github.com/warp/shift-ledger/premium"
)

// Config holds all configuration for the server and the CLI.
type Config struct {
	Port     string `mapstructure:"PORT"`
	DBPath   string `mapstructure:"DB_PATH"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// CORS configuration
	AllowedOrigins []string `mapstructure:"ALLOWED_ORIGINS"`

	// Report runner
	ReportWorkers int `mapstructure:"REPORT_WORKERS"`

	// Holiday calendar window (inclusive)
	HolidayFirstYear int `mapstructure:"HOLIDAY_FIRST_YEAR"`
	HolidayLastYear  int `mapstructure:"HOLIDAY_LAST_YEAR"`

	// "de" for German nationwide holidays, "none" to disable holiday hours
	HolidayCalendar string `mapstructure:"HOLIDAY_CALENDAR"`

	// Night premium band, HH:MM. End before start wraps past midnight.
	NightStart string `mapstructure:"NIGHT_START"`
	NightEnd   string `mapstructure:"NIGHT_END"`
}

// Load reads configuration. A .env file in the working directory is loaded
// into the environment first when present; environment variables override
// config.yaml, which overrides the defaults.
func Load() (*Config, error) {
	_ = godotenv.Load()
	return LoadWith(viper.New(), ".", "./config")
}

// LoadWith reads configuration into v, looking for config.yaml in paths.
func LoadWith(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("PORT", "8080")
	v.SetDefault("DB_PATH", "shifts.db")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("ALLOWED_ORIGINS", []string{"http://localhost:3000", "http://localhost:5173"})
	v.SetDefault("REPORT_WORKERS", 4)
	v.SetDefault("HOLIDAY_FIRST_YEAR", 2026)
	v.SetDefault("HOLIDAY_LAST_YEAR", 2035)
	v.SetDefault("HOLIDAY_CALENDAR", "de")
	v.SetDefault("NIGHT_START", "23:00")
	v.SetDefault("NIGHT_END", "06:00")
}

func validate(cfg *Config) error {
	if cfg.DBPath == "" {
		return fmt.Errorf("DB_PATH must not be empty")
	}
	if cfg.ReportWorkers < 1 {
		return fmt.Errorf("REPORT_WORKERS must be at least 1, got %d", cfg.ReportWorkers)
	}
	if cfg.HolidayFirstYear > cfg.HolidayLastYear {
		return fmt.Errorf("HOLIDAY_FIRST_YEAR (%d) is after HOLIDAY_LAST_YEAR (%d)",
			cfg.HolidayFirstYear, cfg.HolidayLastYear)
	}
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("LOG_LEVEL must be one of debug, info, warn, error; got %q", cfg.LogLevel)
	}
	switch cfg.HolidayCalendar {
	case "de", "none":
	default:
		return fmt.Errorf("HOLIDAY_CALENDAR must be de or none; got %q", cfg.HolidayCalendar)
	}
	if _, err := premium.ParseNightWindow(cfg.NightStart, cfg.NightEnd); err != nil {
		return fmt.Errorf("NIGHT_START/NIGHT_END: %w", err)
	}
	return nil
}

// =============================================================================
// ENGINE WIRING
// =============================================================================

// NewEngine builds the accounting engine from the holiday and night band
// settings. The config must have passed validation.
func (c *Config) NewEngine(log logrus.FieldLogger) *premium.Engine {
	var holidays generic.HolidayCalendar = generic.NoHolidays{}
	if c.HolidayCalendar == "de" {
		holidays = premium.NewHolidayCalendar(c.HolidayFirstYear, c.HolidayLastYear)
	}
	night, err := premium.ParseNightWindow(c.NightStart, c.NightEnd)
	if err != nil {
		night = premium.DefaultNightWindow
	}
	return premium.NewEngine(
		premium.WithHolidayCalendar(holidays),
		premium.WithNightWindow(night),
		premium.WithLogger(log),
	)
}
