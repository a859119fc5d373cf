package cmd

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"strings"
	"time"

	"freight/internal/core/domain/model/kernel"
	"freight/internal/jobs"
	"freight/internal/pkg/retry"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	HTTPPort string

	DBHost        string
	DBPort        string
	DBUser        string
	DBPassword    string
	DBName        string
	DBSslMode     string
	DBLockTimeout time.Duration

	RedisAddr             string
	RedisPassword         string
	RedisDB               int
	DeliveryEventsChannel string

	WeekStart            time.Weekday
	TimeZone             *time.Location
	CommitMaxAttempts    int
	WeekRolloverSchedule string

	LogLevel slog.Level
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("HTTP_PORT", "8080")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_LOCK_TIMEOUT", "2s")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("DELIVERY_EVENTS_CHANNEL", "delivery-events")
	v.SetDefault("WEEK_START", "Monday")
	v.SetDefault("TIME_ZONE", "UTC")
	v.SetDefault("COMMIT_MAX_ATTEMPTS", retry.DefaultMaxAttempts)
	v.SetDefault("WEEK_ROLLOVER_SCHEDULE", jobs.DefaultWeekRolloverSchedule)
	v.SetDefault("LOG_LEVEL", "info")
}

// LoadConfig reads envFile into the process environment, if it exists, and
// then resolves every setting from the environment with defaults.
func LoadConfig(envFile string) (Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", envFile, err)
		}
	}

	v := viper.New()
	v.AutomaticEnv()
	setDefaults(v)

	return configFrom(v)
}

func configFrom(v *viper.Viper) (Config, error) {
	weekStart, err := parseWeekday(v.GetString("WEEK_START"))
	if err != nil {
		return Config{}, err
	}

	loc, err := time.LoadLocation(v.GetString("TIME_ZONE"))
	if err != nil {
		return Config{}, fmt.Errorf("TIME_ZONE: %w", err)
	}

	lockTimeout, err := time.ParseDuration(v.GetString("DB_LOCK_TIMEOUT"))
	if err != nil {
		return Config{}, fmt.Errorf("DB_LOCK_TIMEOUT: %w", err)
	}

	var level slog.Level
	if err = level.UnmarshalText([]byte(v.GetString("LOG_LEVEL"))); err != nil {
		return Config{}, fmt.Errorf("LOG_LEVEL: %w", err)
	}

	config := Config{
		HTTPPort:              v.GetString("HTTP_PORT"),
		DBHost:                v.GetString("DB_HOST"),
		DBPort:                v.GetString("DB_PORT"),
		DBUser:                v.GetString("DB_USER"),
		DBPassword:            v.GetString("DB_PASSWORD"),
		DBName:                v.GetString("DB_NAME"),
		DBSslMode:             v.GetString("DB_SSLMODE"),
		DBLockTimeout:         lockTimeout,
		RedisAddr:             v.GetString("REDIS_ADDR"),
		RedisPassword:         v.GetString("REDIS_PASSWORD"),
		RedisDB:               v.GetInt("REDIS_DB"),
		DeliveryEventsChannel: v.GetString("DELIVERY_EVENTS_CHANNEL"),
		WeekStart:             weekStart,
		TimeZone:              loc,
		CommitMaxAttempts:     v.GetInt("COMMIT_MAX_ATTEMPTS"),
		WeekRolloverSchedule:  v.GetString("WEEK_ROLLOVER_SCHEDULE"),
		LogLevel:              level,
	}
	return config, config.Validate()
}

func (c Config) Validate() error {
	var problems []error
	if c.DBUser == "" {
		problems = append(problems, errors.New("DB_USER is required"))
	}
	if c.DBName == "" {
		problems = append(problems, errors.New("DB_NAME is required"))
	}
	if c.DBLockTimeout <= 0 {
		problems = append(problems, errors.New("DB_LOCK_TIMEOUT must be positive"))
	}
	if c.CommitMaxAttempts < 1 {
		problems = append(problems, errors.New("COMMIT_MAX_ATTEMPTS must be at least 1"))
	}
	if c.DeliveryEventsChannel == "" {
		problems = append(problems, errors.New("DELIVERY_EVENTS_CHANNEL is required"))
	}
	return errors.Join(problems...)
}

func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Calendar is the labor week in the operating time zone.
func (c Config) Calendar() (kernel.Calendar, error) {
	return kernel.NewCalendar(c.WeekStart, c.TimeZone)
}

func (c Config) RetryPolicy() retry.Policy {
	policy := retry.DefaultPolicy()
	policy.MaxAttempts = c.CommitMaxAttempts
	return policy
}

func parseWeekday(s string) (time.Weekday, error) {
	for d := time.Sunday; d <= time.Saturday; d++ {
		if strings.EqualFold(d.String(), strings.TrimSpace(s)) {
			return d, nil
		}
	}
	return time.Sunday, fmt.Errorf("WEEK_START: %q is not a weekday", s)
}
