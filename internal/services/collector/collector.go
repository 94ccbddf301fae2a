package collector

import (
	"context"
	"fmt"

	"github.com/jonboulle/clockwork"

	configEntity "github.com/benedict-erwin/weather-insight/internal/entities/configdata"
	weatherEntity "github.com/benedict-erwin/weather-insight/internal/entities/weather"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	"github.com/benedict-erwin/weather-insight/pkg/metrics"
)

// ConfigProvider returns the location to poll
type ConfigProvider interface {
	GetConfig(ctx context.Context) (*configEntity.Document, error)
}

// Fetcher reads current conditions for coordinates
type Fetcher interface {
	Current(ctx context.Context, latitude, longitude string) (*Reading, error)
}

// Sink receives each collected reading
type Sink interface {
	Submit(ctx context.Context, req *weatherEntity.CreateLogRequest) error
}

// SinkFunc adapts a function to Sink
type SinkFunc func(ctx context.Context, req *weatherEntity.CreateLogRequest) error

func (f SinkFunc) Submit(ctx context.Context, req *weatherEntity.CreateLogRequest) error {
	return f(ctx, req)
}

type Service struct {
	config  ConfigProvider
	fetcher Fetcher
	sink    Sink
	clock   clockwork.Clock
	metrics *metrics.Metrics
}

func NewService(config ConfigProvider, fetcher Fetcher, sink Sink, clock clockwork.Clock, m *metrics.Metrics) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	return &Service{config: config, fetcher: fetcher, sink: sink, clock: clock, metrics: m}
}

// Collect polls the configured location once and submits the reading
func (s *Service) Collect(ctx context.Context) (*weatherEntity.CreateLogRequest, error) {
	log := logger.WithScope("collector")

	cfg, err := s.config.GetConfig(ctx)
	if err != nil {
		return nil, fmt.Errorf("load monitoring config: %w", err)
	}

	reading, err := s.fetcher.Current(ctx, cfg.Latitude, cfg.Longitude)
	if err != nil {
		s.count("error")
		log.Error().Err(err).Str("city", cfg.City).Msg("Weather fetch failed")
		return nil, err
	}
	s.count("success")

	req := &weatherEntity.CreateLogRequest{
		City:        cfg.City,
		Temperature: &reading.Temperature,
		Humidity:    &reading.Humidity,
		WindSpeed:   &reading.WindSpeed,
		Condition:   ConditionFromCode(reading.WeatherCode),
		Timestamp:   s.clock.Now().Unix(),
	}

	if err := s.sink.Submit(ctx, req); err != nil {
		return nil, fmt.Errorf("submit reading: %w", err)
	}

	log.Info().
		Str("city", req.City).
		Float64("temperature", reading.Temperature).
		Str("condition", req.Condition).
		Msg("Weather collected")
	return req, nil
}

func (s *Service) count(outcome string) {
	if s.metrics != nil {
		s.metrics.CollectorFetches.WithLabelValues(outcome).Inc()
	}
}
