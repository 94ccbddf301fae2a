package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type (
	app struct {
		Name     string `json:"name" mapstructure:"name"`
		Env      string `json:"env" mapstructure:"env"`
		Port     int    `json:"port" mapstructure:"port"`
		Timezone string `json:"timezone" mapstructure:"timezone"`
		Version  string `json:"version" mapstructure:"version"`
		LogLevel string `json:"log_level" mapstructure:"log_level"`
	}

	http struct {
		RateLimit   float64  `json:"rate_limit" mapstructure:"rate_limit"` // requests per second per client
		RateBurst   int      `json:"rate_burst" mapstructure:"rate_burst"`
		CORSOrigins []string `json:"cors_origins" mapstructure:"cors_origins"`
	}

	influxDb struct {
		// "v2-oss" or "v3-core"
		Version string `json:"version,omitempty" mapstructure:"version"`

		// v2-oss
		URL string `json:"url,omitempty" mapstructure:"url"`
		Org string `json:"org,omitempty" mapstructure:"org"`

		Token  string `json:"token" mapstructure:"token"`
		Bucket string `json:"bucket" mapstructure:"bucket"`

		// v3-core
		Host       string `json:"host,omitempty" mapstructure:"host"`
		Port       int    `json:"port,omitempty" mapstructure:"port"`
		AuthScheme string `json:"auth_scheme,omitempty" mapstructure:"auth_scheme"`
	}

	database struct {
		Path string `json:"path" mapstructure:"path"`
	}

	storage struct {
		Weather string `json:"weather" mapstructure:"weather"` // "influxdb" or "sqlite"
	}

	redis struct {
		Enabled  bool   `json:"enabled" mapstructure:"enabled"`
		Mode     string `json:"mode" mapstructure:"mode"` // "single", "cluster"
		Host     string `json:"host" mapstructure:"host"`
		Port     int    `json:"port" mapstructure:"port"`
		Password string `json:"password" mapstructure:"password"`
		DB       int    `json:"db" mapstructure:"db"`
		Cluster  struct {
			Nodes    []string `json:"nodes" mapstructure:"nodes"`
			Password string   `json:"password" mapstructure:"password"`
		} `json:"cluster" mapstructure:"cluster"`
	}

	asynq struct {
		Concurrency int `json:"concurrency" mapstructure:"concurrency"`
		DB          int `json:"db" mapstructure:"db"`
		PoolSize    int `json:"pool_size" mapstructure:"pool_size"`
		MaxRetry    int `json:"max_retry" mapstructure:"max_retry"`
	}

	auth struct {
		JWTSecret string        `json:"jwt_secret" mapstructure:"jwt_secret"`
		JWTExpiry time.Duration `json:"jwt_expiry" mapstructure:"jwt_expiry"`
		Admin     struct {
			Email    string `json:"email" mapstructure:"email"`
			Password string `json:"password" mapstructure:"password"`
		} `json:"admin" mapstructure:"admin"`
	}

	monitoring struct {
		City            string        `json:"city" mapstructure:"city"`
		Latitude        string        `json:"latitude" mapstructure:"latitude"`
		Longitude       string        `json:"longitude" mapstructure:"longitude"`
		CollectInterval time.Duration `json:"collect_interval" mapstructure:"collect_interval"`
		OpenMeteoURL    string        `json:"open_meteo_url" mapstructure:"open_meteo_url"`
		Timeout         time.Duration `json:"timeout" mapstructure:"timeout"`
	}

	weather struct {
		InsightsTTL time.Duration `json:"insights_ttl" mapstructure:"insights_ttl"`
	}

	kafka struct {
		Enabled     bool     `json:"enabled" mapstructure:"enabled"`
		Brokers     []string `json:"brokers" mapstructure:"brokers"`
		ConfigTopic string   `json:"config_topic" mapstructure:"config_topic"`
	}

	Config struct {
		App        app        `json:"app" mapstructure:"app"`
		HTTP       http       `json:"http" mapstructure:"http"`
		Database   database   `json:"database" mapstructure:"database"`
		Storage    storage    `json:"storage" mapstructure:"storage"`
		InfluxDB   influxDb   `json:"influxdb" mapstructure:"influxdb"`
		Redis      redis      `json:"redis" mapstructure:"redis"`
		Asynq      asynq      `json:"asynq" mapstructure:"asynq"`
		Auth       auth       `json:"auth" mapstructure:"auth"`
		Monitoring monitoring `json:"monitoring" mapstructure:"monitoring"`
		Weather    weather    `json:"weather" mapstructure:"weather"`
		Kafka      kafka      `json:"kafka" mapstructure:"kafka"`
	}

	// RedisConfig is an alias for the internal redis struct for external access
	RedisConfig = redis
)

// Storage drivers for weather logs
const (
	WeatherStorageInfluxDB = "influxdb"
	WeatherStorageSQLite   = "sqlite"
)

var cfg *Config

// Init loads configuration from the .config file in the working directory,
// falling back to defaults and WEATHER_* environment variables.
func Init() error {
	c, err := Load(viper.New(), "./")
	if err != nil {
		return err
	}
	cfg = c
	return nil
}

// Load reads configuration into a fresh Config using the given viper instance.
// A missing config file is not an error; defaults and environment still apply.
func Load(v *viper.Viper, paths ...string) (*Config, error) {
	v.SetConfigName(".config")
	v.SetConfigType("json")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	setDefaults(v)

	v.SetEnvPrefix("WEATHER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

// Validate checks the settings the application cannot run without
func (c *Config) Validate() error {
	if c.Auth.JWTSecret == "" {
		return errors.New("auth.jwt_secret is required")
	}
	switch c.Storage.Weather {
	case WeatherStorageInfluxDB, WeatherStorageSQLite:
	default:
		return fmt.Errorf("unsupported storage.weather driver: %q", c.Storage.Weather)
	}
	if c.Monitoring.CollectInterval <= 0 {
		return fmt.Errorf("monitoring.collect_interval must be positive, got %s", c.Monitoring.CollectInterval)
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "weather-insight")
	v.SetDefault("app.env", "dev")
	v.SetDefault("app.port", 8080)
	v.SetDefault("app.timezone", "UTC")
	v.SetDefault("app.version", "1.0.0")
	v.SetDefault("app.log_level", "info")

	// 100 requests per minute
	v.SetDefault("http.rate_limit", 100.0/60.0)
	v.SetDefault("http.rate_burst", 100)
	v.SetDefault("http.cors_origins", []string{"*"})

	v.SetDefault("database.path", "weather.db")
	v.SetDefault("storage.weather", WeatherStorageSQLite)

	v.SetDefault("influxdb.version", "v2-oss")
	v.SetDefault("influxdb.url", "")
	v.SetDefault("influxdb.org", "")
	v.SetDefault("influxdb.token", "")
	v.SetDefault("influxdb.bucket", "weather")

	v.SetDefault("redis.enabled", true)
	v.SetDefault("redis.mode", "single")
	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)

	v.SetDefault("asynq.concurrency", 10)
	v.SetDefault("asynq.pool_size", 10)
	v.SetDefault("asynq.max_retry", 5)

	// secrets are registered empty so WEATHER_* env overrides are picked up
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.jwt_expiry", time.Hour)
	v.SetDefault("auth.admin.email", "admin@example.com")
	v.SetDefault("auth.admin.password", "")

	v.SetDefault("monitoring.city", "Sao Paulo")
	v.SetDefault("monitoring.latitude", "-23.5505")
	v.SetDefault("monitoring.longitude", "-46.6333")
	v.SetDefault("monitoring.collect_interval", 10*time.Minute)
	v.SetDefault("monitoring.open_meteo_url", "https://api.open-meteo.com")
	v.SetDefault("monitoring.timeout", 10*time.Second)

	v.SetDefault("weather.insights_ttl", 30*time.Second)

	v.SetDefault("kafka.enabled", false)
	v.SetDefault("kafka.config_topic", "config_updates")
}

// Get returns the current configuration instance
func Get() *Config {
	return cfg
}

// Set replaces the current configuration instance
func Set(c *Config) {
	cfg = c
}
