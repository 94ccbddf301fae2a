package v3core

import (
	"context"
	"fmt"
	"time"

	"github.com/InfluxCommunity/influxdb3-go/v2/influxdb3"

	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// Config represents InfluxDB v3 Core configuration
type Config struct {
	Host       string
	Port       int
	Token      string
	AuthScheme string
	Database   string
}

// Client implements the InfluxDB v3 Core client
type Client struct {
	client *influxdb3.Client
	config Config
}

// Point wraps influxdb3.Point
type Point struct {
	*influxdb3.Point
}

// QueryIterator wraps influxdb3.QueryIterator
type QueryIterator struct {
	it *influxdb3.QueryIterator
}

// New returns an uninitialised client
func New(host string, port int, token, authScheme, database string) *Client {
	return &Client{config: Config{Host: host, Port: port, Token: token, AuthScheme: authScheme, Database: database}}
}

// NewPoint creates a new Point
func NewPoint(measurement string, tags map[string]string, fields map[string]any, ts time.Time) *Point {
	return &Point{Point: influxdb3.NewPoint(measurement, tags, fields, ts)}
}

func (qi *QueryIterator) Next() bool {
	return qi.it.Next()
}

func (qi *QueryIterator) Record() map[string]any {
	value := qi.it.Value()
	if value == nil {
		return nil
	}
	out := make(map[string]any, len(value))
	for k, v := range value {
		out[k] = v
	}
	return out
}

func (qi *QueryIterator) Err() error {
	return qi.it.Err()
}

// Close is a no-op; the iterator releases its stream when exhausted
func (qi *QueryIterator) Close() error {
	return nil
}

// Init connects the client
func (c *Client) Init() error {
	cfg := c.config
	if cfg.Host == "" || cfg.Token == "" || cfg.Database == "" {
		logger.Error().Msg("InfluxDB v3-core config missing host, token, or database")
		return fmt.Errorf("incomplete InfluxDB v3-core configuration")
	}

	if c.client != nil {
		_ = c.client.Close()
	}

	host := cfg.Host
	if cfg.Port > 0 {
		host = fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)
	}

	client, err := influxdb3.New(influxdb3.ClientConfig{
		Host:       host,
		Token:      cfg.Token,
		Database:   cfg.Database,
		AuthScheme: cfg.AuthScheme,
	})
	if err != nil {
		return fmt.Errorf("failed to initialize InfluxDB v3-core client: %w", err)
	}
	c.client = client

	logger.WithScope("influxdb").Info().
		Str("host", host).
		Str("database", cfg.Database).
		Str("version", "v3-core").
		Msg("InfluxDB client initialized")
	return nil
}

// Bucket returns the configured database
func (c *Client) Bucket() string {
	return c.config.Database
}

func (c *Client) WritePoint(ctx context.Context, point any) error {
	return c.WritePoints(ctx, []any{point})
}

func (c *Client) WritePoints(ctx context.Context, points []any) error {
	if c.client == nil {
		return fmt.Errorf("InfluxDB v3-core client not initialized")
	}

	native := make([]*influxdb3.Point, len(points))
	for i, point := range points {
		p, ok := point.(*Point)
		if !ok {
			return fmt.Errorf("invalid point type for v3-core: %T", point)
		}
		native[i] = p.Point
	}

	if err := c.client.WritePoints(ctx, native); err != nil {
		return fmt.Errorf("failed to write points: %w", err)
	}

	logger.WithScope("influxdb").Debug().Int("count", len(points)).Msg("Points written to InfluxDB v3-core")
	return nil
}

// Query runs an SQL query
func (c *Client) Query(ctx context.Context, query string) (*QueryIterator, error) {
	if c.client == nil {
		return nil, fmt.Errorf("InfluxDB v3-core client not initialized")
	}

	it, err := c.client.Query(ctx, query)
	if err != nil {
		logger.WithScope("influxdb").Error().Err(err).Str("query", query).Msg("Failed to execute InfluxDB v3-core query")
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &QueryIterator{it: it}, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("InfluxDB v3-core client not initialized")
	}
	_, err := c.client.Query(ctx, "SELECT 1")
	return err
}

func (c *Client) Close() {
	if c.client != nil {
		_ = c.client.Close()
		c.client = nil
		logger.Info().Msg("InfluxDB v3-core client closed")
	}
}
