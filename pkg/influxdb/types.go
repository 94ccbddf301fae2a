package influxdb

import (
	"context"
	"time"
)

// QueryIterator walks query results one row at a time
type QueryIterator interface {
	Next() bool
	Record() map[string]any
	Err() error
	Close() error
}

// Client is the version-independent InfluxDB client
type Client interface {
	Init() error
	Close()
	HealthCheck(ctx context.Context) error

	// NewPoint builds a point of the client's native type
	NewPoint(measurement string, tags map[string]string, fields map[string]any, ts time.Time) any
	WritePoint(ctx context.Context, point any) error
	WritePoints(ctx context.Context, points []any) error

	// Query runs Flux on v2-oss and SQL on v3-core
	Query(ctx context.Context, query string) (QueryIterator, error)

	Version() Version
	Bucket() string
}

// Version is a supported InfluxDB flavour
type Version string

const (
	VersionV2OSS  Version = "v2-oss"
	VersionV3Core Version = "v3-core"
)

// Config holds the connection settings for either version
type Config struct {
	Version Version

	// v2-oss
	URL string
	Org string

	Token  string
	Bucket string

	// v3-core
	Host       string
	Port       int
	AuthScheme string
}
