package influx

import (
	"context"
	"fmt"

	"github.com/benedict-erwin/weather-insight/internal/entities/weather"
	"github.com/benedict-erwin/weather-insight/pkg/influxdb"
	v2oss "github.com/benedict-erwin/weather-insight/pkg/influxdb/v2-oss"
	v3core "github.com/benedict-erwin/weather-insight/pkg/influxdb/v3-core"
)

// WeatherRepository stores weather logs as points in the weather_logs measurement
type WeatherRepository struct {
	client influxdb.Client
}

func NewWeatherRepository(client influxdb.Client) *WeatherRepository {
	return &WeatherRepository{client: client}
}

func (r *WeatherRepository) Save(ctx context.Context, l *weather.Log) error {
	point := r.client.NewPoint(weather.Measurement, l.Tags(), l.Fields(), l.Timestamp)
	if err := r.client.WritePoint(ctx, point); err != nil {
		return fmt.Errorf("write weather log: %w", err)
	}
	return nil
}

// FindAll returns every log, newest first
func (r *WeatherRepository) FindAll(ctx context.Context) ([]weather.Log, error) {
	query, err := r.buildQuery()
	if err != nil {
		return nil, err
	}

	it, err := r.client.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query weather logs: %w", err)
	}
	defer it.Close()

	var out []weather.Log
	for it.Next() {
		out = append(out, weather.MapRecord(it.Record()))
	}
	if err := it.Err(); err != nil {
		return nil, fmt.Errorf("read weather logs: %w", err)
	}
	return out, nil
}

// Ping reports whether InfluxDB is reachable
func (r *WeatherRepository) Ping(ctx context.Context) error {
	return r.client.HealthCheck(ctx)
}

func (r *WeatherRepository) buildQuery() (string, error) {
	switch r.client.Version() {
	case influxdb.VersionV3Core:
		return v3core.SelectQuery{Table: weather.Measurement, Columns: weather.Columns()}.Build()
	default:
		return v2oss.RangeQuery{
			Bucket:      r.client.Bucket(),
			Measurement: weather.Measurement,
			Columns:     weather.Columns(),
		}.Build()
	}
}
