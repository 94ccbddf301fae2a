// Package app wires configuration, storage and services into one container
// shared by the HTTP server, the worker and the CLI.
package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/viper"

	"github.com/benedict-erwin/weather-insight/config"
	weatherEntity "github.com/benedict-erwin/weather-insight/internal/entities/weather"
	weathercollect "github.com/benedict-erwin/weather-insight/internal/jobs/weather_collect"
	influxRepo "github.com/benedict-erwin/weather-insight/internal/repository/influx"
	"github.com/benedict-erwin/weather-insight/internal/repository/sqlite"
	authService "github.com/benedict-erwin/weather-insight/internal/services/auth"
	"github.com/benedict-erwin/weather-insight/internal/services/collector"
	"github.com/benedict-erwin/weather-insight/internal/services/configdata"
	"github.com/benedict-erwin/weather-insight/internal/services/health"
	"github.com/benedict-erwin/weather-insight/internal/services/users"
	"github.com/benedict-erwin/weather-insight/internal/services/weather"
	pkgAsynq "github.com/benedict-erwin/weather-insight/pkg/asynq"
	"github.com/benedict-erwin/weather-insight/pkg/auth"
	"github.com/benedict-erwin/weather-insight/pkg/broker"
	"github.com/benedict-erwin/weather-insight/pkg/influxdb"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	"github.com/benedict-erwin/weather-insight/pkg/metrics"
	"github.com/benedict-erwin/weather-insight/pkg/redis"
)

type Container struct {
	Config   *config.Config
	Clock    clockwork.Clock
	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	DB        *sql.DB
	Influx    influxdb.Client  // nil unless storage.weather is influxdb
	Redis     redis.Client     // nil when redis is disabled
	Queue     *pkgAsynq.Client // nil when redis is disabled
	Publisher broker.Publisher

	Tokens     *auth.TokenIssuer
	Users      *users.Service
	Auth       *authService.Service
	Weather    *weather.Service
	ConfigData *configdata.Service
	Collector  *collector.Service
	Health     *health.Service
}

// New connects every configured backend and builds the services. A partially
// built container is closed before an error is returned.
func New(ctx context.Context, cfg *config.Config) (*Container, error) {
	c := &Container{
		Config:    cfg,
		Clock:     clockwork.NewRealClock(),
		Registry:  prometheus.NewRegistry(),
		Publisher: broker.NopPublisher{},
	}
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.NewMetrics(c.Registry)

	if err := c.connect(ctx); err != nil {
		_ = c.Close()
		return nil, err
	}
	if err := c.build(); err != nil {
		_ = c.Close()
		return nil, err
	}
	return c, nil
}

func (c *Container) connect(ctx context.Context) error {
	cfg := c.Config

	db, err := sqlite.Open(ctx, cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("sqlite: %w", err)
	}
	c.DB = db

	if cfg.Storage.Weather == config.WeatherStorageInfluxDB {
		client, err := influxdb.Init(influxdb.ConfigFrom(cfg))
		if err != nil {
			return fmt.Errorf("influxdb: %w", err)
		}
		c.Influx = client
	}

	if cfg.Redis.Enabled {
		client, err := redis.Init(ctx, cfg.Redis)
		if err != nil {
			return fmt.Errorf("redis: %w", err)
		}
		c.Redis = client
		c.Queue = pkgAsynq.NewClient(pkgAsynq.RedisOpt(cfg), cfg.Asynq.MaxRetry)
	}

	if cfg.Kafka.Enabled {
		publisher, err := broker.NewKafkaPublisher(cfg.Kafka.Brokers, cfg.Kafka.ConfigTopic)
		if err != nil {
			return fmt.Errorf("kafka: %w", err)
		}
		c.Publisher = publisher
	}
	return nil
}

func (c *Container) build() error {
	cfg := c.Config

	tokens, err := auth.NewTokenIssuer(cfg.Auth.JWTSecret, cfg.Auth.JWTExpiry, cfg.App.Name, c.Clock)
	if err != nil {
		return err
	}
	c.Tokens = tokens

	var weatherRepo weather.Repository = sqlite.NewWeatherRepository(c.DB)
	if c.Influx != nil {
		weatherRepo = influxRepo.NewWeatherRepository(c.Influx)
	}

	var cache configdata.Cache
	if c.Redis != nil {
		cache = c.Redis
	}

	c.Users = users.NewService(sqlite.NewUserRepository(c.DB), c.Clock)
	c.Auth = authService.NewService(c.Users, tokens)
	c.Weather = weather.NewService(weatherRepo, c.Clock, cfg.Weather.InsightsTTL, c.Metrics)
	c.ConfigData = configdata.NewService(
		sqlite.NewConfigRepository(c.DB),
		cache,
		c.Publisher,
		c.Clock,
		configdata.Defaults{
			City:      cfg.Monitoring.City,
			Latitude:  cfg.Monitoring.Latitude,
			Longitude: cfg.Monitoring.Longitude,
		},
		c.Metrics,
	)

	var sink collector.Sink = c.DirectSink()
	if c.Queue != nil {
		sink = weathercollect.NewQueueSink(c.Queue)
	}
	c.Collector = c.NewCollector(sink)

	c.Health = health.NewService(cfg.App.Version, cfg.Database.Path, c.Clock, c.healthChecks()...)
	return nil
}

// DirectSink stores collected readings without going through the queue
func (c *Container) DirectSink() collector.Sink {
	return collector.SinkFunc(func(ctx context.Context, req *weatherEntity.CreateLogRequest) error {
		_, err := c.Weather.CreateLog(weather.WithSource(ctx, weather.SourceCollector), req)
		return err
	})
}

// NewCollector builds a collector that hands readings to sink
func (c *Container) NewCollector(sink collector.Sink) *collector.Service {
	fetcher := collector.NewOpenMeteoClient(c.Config.Monitoring.OpenMeteoURL, c.Config.Monitoring.Timeout)
	return collector.NewService(c.ConfigData, fetcher, sink, c.Clock, c.Metrics)
}

func (c *Container) healthChecks() []health.Check {
	checks := []health.Check{
		{Name: "sqlite", Probe: c.DB.PingContext},
	}
	if c.Influx != nil {
		checks = append(checks, health.Check{Name: "influxdb", Probe: c.Weather.Ping})
	}
	if c.Redis != nil {
		checks = append(checks, health.Check{Name: "redis", Probe: c.Redis.Health})
	}
	if c.Queue != nil {
		checks = append(checks, health.Check{
			Name:     "asynq",
			Probe:    func(context.Context) error { return c.Queue.Ping() },
			Optional: true,
		})
	}
	return checks
}

// EnsureDefaultAdmin creates the configured admin account when missing
func (c *Container) EnsureDefaultAdmin(ctx context.Context) error {
	return c.Users.EnsureDefaultAdmin(ctx, c.Config.Auth.Admin.Email, c.Config.Auth.Admin.Password)
}

// Close releases every connection the container opened
func (c *Container) Close() error {
	var errs []error
	if c.Publisher != nil {
		errs = append(errs, c.Publisher.Close())
	}
	if c.Queue != nil {
		errs = append(errs, c.Queue.Close())
	}
	if c.Redis != nil {
		errs = append(errs, redis.Close())
	}
	if c.Influx != nil {
		c.Influx.Close()
	}
	if c.DB != nil {
		errs = append(errs, c.DB.Close())
	}

	err := errors.Join(errs...)
	if err != nil {
		logger.WithScope("app").Warn().Err(err).Msg("Errors while closing resources")
	}
	return err
}

// NewForTesting builds a Redis-less container on a SQLite file at dbPath with
// default settings and a fixed JWT secret.
func NewForTesting(ctx context.Context, dbPath string) (*Container, error) {
	v := viper.New()
	v.Set("auth.jwt_secret", "test-secret")
	v.Set("database.path", dbPath)
	v.Set("redis.enabled", false)
	v.Set("kafka.enabled", false)
	v.Set("storage.weather", config.WeatherStorageSQLite)

	cfg, err := config.Load(v)
	if err != nil {
		return nil, err
	}
	return New(ctx, cfg)
}
