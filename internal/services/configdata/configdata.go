package configdata

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jonboulle/clockwork"

	configEntity "github.com/benedict-erwin/weather-insight/internal/entities/configdata"
	"github.com/benedict-erwin/weather-insight/pkg/apperror"
	"github.com/benedict-erwin/weather-insight/pkg/broker"
	"github.com/benedict-erwin/weather-insight/pkg/logger"
	"github.com/benedict-erwin/weather-insight/pkg/metrics"
	"github.com/benedict-erwin/weather-insight/pkg/redis"
)

const (
	cacheKey       = "configdata:latest"
	cacheTTL       = time.Hour
	publishTimeout = 5 * time.Second
)

// Repository is the config document storage
type Repository interface {
	Save(ctx context.Context, d *configEntity.Document) error
	Latest(ctx context.Context) (*configEntity.Document, error)
}

// Cache is the subset of the Redis client the service uses
type Cache interface {
	SetJSON(ctx context.Context, key string, value any, expiration time.Duration) error
	GetJSON(ctx context.Context, key string, dest any) error
}

// Defaults is served when no document has been saved
type Defaults struct {
	City      string
	Latitude  string
	Longitude string
}

type Service struct {
	repo      Repository
	cache     Cache
	publisher broker.Publisher
	clock     clockwork.Clock
	defaults  Defaults
	metrics   *metrics.Metrics
}

// NewService builds the service. cache may be nil; a nil publisher drops events.
func NewService(repo Repository, cache Cache, publisher broker.Publisher, clock clockwork.Clock, defaults Defaults, m *metrics.Metrics) *Service {
	if clock == nil {
		clock = clockwork.NewRealClock()
	}
	if publisher == nil {
		publisher = broker.NopPublisher{}
	}
	return &Service{repo: repo, cache: cache, publisher: publisher, clock: clock, defaults: defaults, metrics: m}
}

// GetConfig returns the latest document or the configured defaults
func (s *Service) GetConfig(ctx context.Context) (*configEntity.Document, error) {
	log := logger.WithScope("configdata")

	if s.cache != nil {
		var cached configEntity.Document
		err := s.cache.GetJSON(ctx, cacheKey, &cached)
		if err == nil {
			return &cached, nil
		}
		if !errors.Is(err, redis.ErrNil) {
			log.Warn().Err(err).Msg("Config cache read failed")
		}
	}

	doc, err := s.repo.Latest(ctx)
	if err != nil {
		return nil, apperror.Internal(fmt.Errorf("load config: %w", err))
	}
	if doc == nil {
		return &configEntity.Document{
			City:      s.defaults.City,
			Latitude:  s.defaults.Latitude,
			Longitude: s.defaults.Longitude,
		}, nil
	}

	s.storeCache(ctx, doc)
	return doc, nil
}

// UpdateConfig saves a new document and announces it. Event delivery
// failures are logged and never fail the update.
func (s *Service) UpdateConfig(ctx context.Context, req *configEntity.UpdateRequest) (*configEntity.Document, error) {
	doc := &configEntity.Document{
		ID:        uuid.NewString(),
		City:      req.City,
		Latitude:  req.Latitude,
		Longitude: req.Longitude,
		CreatedAt: s.clock.Now(),
	}

	if err := s.repo.Save(ctx, doc); err != nil {
		return nil, apperror.Internal(fmt.Errorf("save config: %w", err))
	}
	s.storeCache(ctx, doc)
	s.publish(ctx, doc)

	logger.WithScope("configdata").Info().
		Str("id", doc.ID).
		Str("city", doc.City).
		Str("latitude", doc.Latitude).
		Str("longitude", doc.Longitude).
		Msg("Config updated")
	return doc, nil
}

func (s *Service) storeCache(ctx context.Context, doc *configEntity.Document) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, cacheKey, doc, cacheTTL); err != nil {
		logger.WithScope("configdata").Warn().Err(err).Msg("Config cache write failed")
	}
}

func (s *Service) publish(ctx context.Context, doc *configEntity.Document) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	err := s.publisher.Publish(ctx, broker.Message{
		Key:        doc.City,
		EventType:  configEntity.EventConfigUpdated,
		Value:      doc.ToEvent(),
		OccurredAt: doc.CreatedAt,
	})

	outcome := "published"
	switch {
	case errors.Is(err, broker.ErrDisabled):
		outcome = "skipped"
	case err != nil:
		outcome = "failed"
		logger.WithScope("configdata").Error().Err(err).Str("city", doc.City).Msg("Failed to publish config_updated")
	}
	if s.metrics != nil {
		s.metrics.ConfigEvents.WithLabelValues(outcome).Inc()
	}
}
