package v2oss

import (
	"context"
	"fmt"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	"github.com/benedict-erwin/weather-insight/pkg/logger"
)

// Config represents InfluxDB v2 OSS configuration
type Config struct {
	URL    string
	Token  string
	Org    string
	Bucket string
}

// Client implements the InfluxDB v2 OSS client
type Client struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	queryAPI api.QueryAPI
	config   Config
}

// Point wraps write.Point
type Point struct {
	*write.Point
}

// QueryIterator walks a Flux table result
type QueryIterator struct {
	result *api.QueryTableResult
	closed bool
}

// New returns an uninitialised client
func New(url, token, org, bucket string) *Client {
	return &Client{config: Config{URL: url, Token: token, Org: org, Bucket: bucket}}
}

// NewPoint creates a new Point
func NewPoint(measurement string, tags map[string]string, fields map[string]any, ts time.Time) *Point {
	return &Point{Point: write.NewPoint(measurement, tags, fields, ts)}
}

func (qi *QueryIterator) Next() bool {
	if qi.closed || qi.result == nil {
		return false
	}
	return qi.result.Next()
}

// Record flattens the current Flux record. After a pivot every field is
// its own column; _time is always present.
func (qi *QueryIterator) Record() map[string]any {
	if qi.closed || qi.result == nil || qi.result.Record() == nil {
		return nil
	}
	record := qi.result.Record()

	out := make(map[string]any, len(record.Values())+1)
	for key, value := range record.Values() {
		out[key] = value
	}
	out["_time"] = record.Time()
	return out
}

func (qi *QueryIterator) Err() error {
	if qi.result == nil {
		return nil
	}
	return qi.result.Err()
}

func (qi *QueryIterator) Close() error {
	if qi.closed {
		return nil
	}
	qi.closed = true
	if qi.result != nil {
		return qi.result.Close()
	}
	return nil
}

// Init connects the client
func (c *Client) Init() error {
	cfg := c.config
	if cfg.URL == "" || cfg.Token == "" || cfg.Bucket == "" || cfg.Org == "" {
		logger.Error().Msg("InfluxDB v2-oss config missing url, token, bucket, or org")
		return fmt.Errorf("incomplete InfluxDB v2-oss configuration")
	}

	if c.client != nil {
		c.client.Close()
	}

	c.client = influxdb2.NewClient(cfg.URL, cfg.Token)
	c.writeAPI = c.client.WriteAPIBlocking(cfg.Org, cfg.Bucket)
	c.queryAPI = c.client.QueryAPI(cfg.Org)

	logger.WithScope("influxdb").Info().
		Str("url", cfg.URL).
		Str("org", cfg.Org).
		Str("bucket", cfg.Bucket).
		Str("version", "v2-oss").
		Msg("InfluxDB client initialized")
	return nil
}

// Bucket returns the configured bucket
func (c *Client) Bucket() string {
	return c.config.Bucket
}

func (c *Client) WritePoint(ctx context.Context, point any) error {
	return c.WritePoints(ctx, []any{point})
}

func (c *Client) WritePoints(ctx context.Context, points []any) error {
	if c.writeAPI == nil {
		return fmt.Errorf("InfluxDB v2-oss client not initialized")
	}

	native := make([]*write.Point, len(points))
	for i, point := range points {
		p, ok := point.(*Point)
		if !ok {
			return fmt.Errorf("invalid point type for v2-oss: %T", point)
		}
		native[i] = p.Point
	}

	if err := c.writeAPI.WritePoint(ctx, native...); err != nil {
		return fmt.Errorf("failed to write points: %w", err)
	}

	logger.WithScope("influxdb").Debug().Int("count", len(points)).Msg("Points written to InfluxDB v2-oss")
	return nil
}

// Query runs a Flux query. The result streams from ctx, so callers must keep
// ctx alive until the iterator is closed.
func (c *Client) Query(ctx context.Context, query string) (*QueryIterator, error) {
	if c.queryAPI == nil {
		return nil, fmt.Errorf("InfluxDB v2-oss client not initialized")
	}

	result, err := c.queryAPI.Query(ctx, query)
	if err != nil {
		logger.WithScope("influxdb").Error().Err(err).Str("query", query).Msg("Failed to execute InfluxDB v2-oss query")
		return nil, fmt.Errorf("failed to execute query: %w", err)
	}
	return &QueryIterator{result: result}, nil
}

func (c *Client) HealthCheck(ctx context.Context) error {
	if c.client == nil {
		return fmt.Errorf("InfluxDB v2-oss client not initialized")
	}

	health, err := c.client.Health(ctx)
	if err != nil {
		return fmt.Errorf("InfluxDB v2-oss health check failed: %w", err)
	}
	if health.Status != "pass" {
		return fmt.Errorf("InfluxDB v2-oss is not healthy: %s", health.Status)
	}
	return nil
}

func (c *Client) Close() {
	if c.client != nil {
		c.client.Close()
		c.client = nil
		c.writeAPI = nil
		c.queryAPI = nil
		logger.Info().Msg("InfluxDB v2-oss client closed")
	}
}
