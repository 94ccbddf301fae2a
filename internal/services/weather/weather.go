package weather

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/jonboulle/clockwork"

	weatherEntity "github.com/benedict-erwin/weather-insight/internal/entities/weather"
	"github.com/benedict-erwin/weather-insight/pkg/apperror"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	"github.com/benedict-erwin/weather-insight/pkg/metrics"
	"github.com/benedict-erwin/weather-insight/pkg/utils"
)

// Ingestion sources, used as the metrics label
const (
	SourceAPI       = "api"
	SourceJob       = "job"
	SourceCollector = "collector"
)

const insightsKey = "insights"

// maxClockSkew bounds how far ahead of now a reading's timestamp may be
const maxClockSkew = 24 * time.Hour

// Insight thresholds in °C
const (
	hotAbove  = 30.0
	coldBelow = 15.0
)

// Repository is the weather log storage
type Repository interface {
	Save(ctx context.Context, l *weatherEntity.Log) error
	FindAll(ctx context.Context) ([]weatherEntity.Log, error)
	Ping(ctx context.Context) error
}

type sourceKey struct{}

// WithSource tags ctx with where a log came from
func WithSource(ctx context.Context, source string) context.Context {
	return context.WithValue(ctx, sourceKey{}, source)
}

// SourceFrom returns the source tagged by WithSource, api when untagged
func SourceFrom(ctx context.Context) string {
	if s, ok := ctx.Value(sourceKey{}).(string); ok {
		return s
	}
	return SourceAPI
}

type Service struct {
	repo    Repository
	clock   clockwork.Clock
	cache   *expirable.LRU[string, weatherEntity.Insight]
	metrics *metrics.Metrics

	// gen is bumped on every write; insights computed under an older gen are not cached
	mu  sync.Mutex
	gen uint64
}

// NewService builds the service; ttl <= 0 disables the insights cache
func NewService(repo Repository, clock clockwork.Clock, ttl time.Duration, m *metrics.Metrics) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	s := &Service{repo: repo, clock: clock, metrics: m}
	if ttl > 0 {
		s.cache = expirable.NewLRU[string, weatherEntity.Insight](1, nil, ttl)
	}
	return s
}

// CreateLog stores a reading. A zero timestamp means now.
func (s *Service) CreateLog(ctx context.Context, req *weatherEntity.CreateLogRequest) (*weatherEntity.Log, error) {
	if strings.TrimSpace(req.City) == "" || strings.TrimSpace(req.Condition) == "" {
		return nil, apperror.Validation("city and condition are required")
	}
	if req.Temperature == nil || req.Humidity == nil || req.WindSpeed == nil {
		return nil, apperror.Validation("temperature, humidity and windSpeed are required")
	}

	now := s.clock.Now()
	ts := now
	if req.Timestamp < 0 {
		return nil, apperror.Validation("timestamp must not be negative")
	}
	if req.Timestamp > 0 {
		ts = time.Unix(req.Timestamp, 0)
		if ts.After(now.Add(maxClockSkew)) {
			return nil, apperror.Validation("timestamp must be unix seconds and not in the future")
		}
	}

	l := &weatherEntity.Log{
		ID:          utils.CreateRecordID(strconv.FormatInt(ts.UnixNano(), 10), uuid.NewString()),
		City:        req.City,
		Temperature: *req.Temperature,
		Humidity:    *req.Humidity,
		WindSpeed:   *req.WindSpeed,
		Condition:   req.Condition,
		Timestamp:   ts,
	}

	if err := s.repo.Save(ctx, l); err != nil {
		return nil, apperror.Internal(fmt.Errorf("save weather log: %w", err))
	}

	s.invalidate()
	source := SourceFrom(ctx)
	if s.metrics != nil {
		s.metrics.WeatherLogsIngested.WithLabelValues(source).Inc()
	}

	logger.WithScope("weather").Info().
		Str("id", l.ID).
		Str("city", l.City).
		Float64("temperature", l.Temperature).
		Str("source", source).
		Msg("Weather log stored")
	return l, nil
}

// GetAllLogs returns every log, newest first
func (s *Service) GetAllLogs(ctx context.Context) ([]weatherEntity.Log, error) {
	logs, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("list weather logs: %w", err))
	}
	if logs == nil {
		logs = []weatherEntity.Log{}
	}
	return logs, nil
}

// GetInsights summarises the logs, serving from cache while fresh
func (s *Service) GetInsights(ctx context.Context) (*weatherEntity.Insight, error) {
	if s.cache != nil {
		if cached, ok := s.cache.Get(insightsKey); ok {
			s.countCache("hit")
			return &cached, nil
		}
		s.countCache("miss")
	}

	gen := s.generation()
	logs, err := s.GetAllLogs(ctx)
	if err != nil {
		return nil, err
	}

	insight := BuildInsight(logs)
	if s.cache != nil {
		s.mu.Lock()
		if s.gen == gen {
			s.cache.Add(insightsKey, insight)
		}
		s.mu.Unlock()
	}
	return &insight, nil
}

func (s *Service) generation() uint64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.gen
}

func (s *Service) invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.gen++
	if s.cache != nil {
		s.cache.Purge()
	}
}

// Ping checks the underlying storage
func (s *Service) Ping(ctx context.Context) error {
	return s.repo.Ping(ctx)
}

func (s *Service) countCache(result string) {
	if s.metrics != nil {
		s.metrics.InsightsCache.WithLabelValues(result).Inc()
	}
}

// BuildInsight derives the summary from logs ordered newest first
func BuildInsight(logs []weatherEntity.Log) weatherEntity.Insight {
	if len(logs) == 0 {
		return weatherEntity.Insight{Message: weatherEntity.NoDataMessage}
	}

	latest := logs[0]

	var sum float64
	for _, l := range logs {
		sum += l.Temperature
	}
	avg := utils.Round(sum/float64(len(logs)), 1)

	var text string
	switch {
	case latest.Temperature > hotAbove:
		text = "It is very hot! Stay hydrated."
	case latest.Temperature < coldBelow:
		text = "It is cold! Wear a jacket."
	default:
		text = "Conditions are stable."
	}
	if strings.Contains(strings.ToLower(latest.Condition), "rain") {
		text += " High chance of rain."
	}

	return weatherEntity.Insight{
		LatestCondition: latest.Condition,
		CurrentTemp:     latest.Temperature,
		AverageTemp:     avg,
		Insight:         text,
	}
}
