package config

import (
	"errors"
	"fmt"
	"strings"
	"time"
	// zoneinfo for containers without it
	_ "time/tzdata"

	"github.com/2beens/healthdash/internal/health"

	"github.com/BurntSushi/toml"
)

const (
	defaultPort                    = 9000
	defaultLookbackDays            = 7
	defaultCalendarCacheSizeMB     = 16
	defaultSettingsRateLimitPerMin = 20
)

type Config struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
	// empty allows every origin
	CorsAllowedOrigins []string `toml:"cors_allowed_origins"`

	// logging
	LogLevel      string `toml:"log_level"`
	LogsPath      string `toml:"logs_path"`
	LogToStdout   bool   `toml:"log_to_stdout"`
	LogFormatJSON bool   `toml:"log_format_json"`
	Environment   string `toml:"environment"`
	SentryEnabled bool   `toml:"sentry_enabled"`
	// log shipping, both optional
	LogstashAddr    string `toml:"logstash_addr"`
	ElasticAddr     string `toml:"elastic_addr"`
	ElasticLogIndex string `toml:"elastic_log_index"`

	// metrics
	PrometheusMetricsHost string `toml:"prometheus_metrics_host"`
	PrometheusMetricsPort string `toml:"prometheus_metrics_port"`

	// redis
	RedisHost                      string `toml:"redis_host"`
	RedisPort                      string `toml:"redis_port"`
	SettingsRateLimitAllowedPerMin int    `toml:"settings_rate_limit_allowed_per_min"`

	// health data
	LookbackDays        int    `toml:"lookback_days"`
	GeneratorSeed       int64  `toml:"generator_seed"`
	Timezone            string `toml:"timezone"`
	CalendarCacheSizeMB int    `toml:"calendar_cache_size_mb"`

	User *UserConfig `toml:"user"`
}

// UserConfig overrides the default mock user, zero fields keep the defaults.
type UserConfig struct {
	Name             string `toml:"name"`
	Email            string `toml:"email"`
	Avatar           string `toml:"avatar"`
	HeightCm         int    `toml:"height_cm"`
	WeightKg         int    `toml:"weight_kg"`
	Age              int    `toml:"age"`
	DailyStepGoal    int    `toml:"daily_step_goal"`
	DailyCalorieGoal int    `toml:"daily_calorie_goal"`
	DailyWaterGoalMl int    `toml:"daily_water_goal_ml"`
}

type Toml struct {
	Development *Config
	Production  *Config
}

func (t *Toml) Get(env string) (*Config, error) {
	switch strings.ToLower(env) {
	case "dev", "development":
		return t.Development, nil
	case "prod", "production":
		return t.Production, nil
	default:
		return nil, fmt.Errorf("unknown env: %s", env)
	}
}

// Load reads the TOML file at path and returns the config section for env,
// with defaults applied.
func Load(env, path string) (*Config, error) {
	var t Toml
	if _, err := toml.DecodeFile(path, &t); err != nil {
		return nil, fmt.Errorf("decode config file [%s]: %w", path, err)
	}

	cfg, err := t.Get(env)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		return nil, fmt.Errorf("config for env [%s] not found in [%s]", env, path)
	}

	cfg.applyDefaults()
	if _, err := cfg.Location(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Port == 0 {
		c.Port = defaultPort
	}
	if c.LookbackDays <= 0 {
		c.LookbackDays = defaultLookbackDays
	}
	if c.CalendarCacheSizeMB <= 0 {
		c.CalendarCacheSizeMB = defaultCalendarCacheSizeMB
	}
	if c.SettingsRateLimitAllowedPerMin <= 0 {
		c.SettingsRateLimitAllowedPerMin = defaultSettingsRateLimitPerMin
	}
	if c.ElasticAddr != "" && c.ElasticLogIndex == "" {
		c.ElasticLogIndex = "healthdash-logs"
	}
}

// Location resolves the configured IANA timezone, UTC when unset.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("load timezone [%s]: %w", c.Timezone, err)
	}
	return loc, nil
}

// HealthUser is the default mock user with the configured overrides applied.
func (c *Config) HealthUser() health.User {
	user := health.DefaultUser()
	u := c.User
	if u == nil {
		return user
	}

	if u.Name != "" {
		user.Name = u.Name
	}
	if u.Email != "" {
		user.Email = u.Email
	}
	if u.Avatar != "" {
		user.Avatar = u.Avatar
	}
	if u.HeightCm != 0 {
		user.HeightCm = u.HeightCm
	}
	if u.WeightKg != 0 {
		user.WeightKg = u.WeightKg
	}
	if u.Age != 0 {
		user.Age = u.Age
	}
	if u.DailyStepGoal != 0 {
		user.DailyStepGoal = u.DailyStepGoal
	}
	if u.DailyCalorieGoal != 0 {
		user.DailyCalorieGoal = u.DailyCalorieGoal
	}
	if u.DailyWaterGoalMl != 0 {
		user.DailyWaterGoalMl = u.DailyWaterGoalMl
	}

	return user
}

var ErrMissingRedisHost = errors.New("redis host not set")

// Validate checks the fields the server cannot start without.
func (c *Config) Validate() error {
	if c.RedisHost == "" {
		return ErrMissingRedisHost
	}
	if c.PrometheusMetricsPort == "" {
		return errors.New("prometheus metrics port not set")
	}
	return nil
}
