package influx

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/benedict-erwin/weather-insight/internal/entities/weather"
	"github.com/benedict-erwin/weather-insight/pkg/influxdb"
)

type fakePoint struct {
	measurement string
	tags        map[string]string
	fields      map[string]any
	ts          time.Time
}

type fakeIterator struct {
	rows []map[string]any
	pos  int
	err  error
}

func (it *fakeIterator) Next() bool {
	if it.pos >= len(it.rows) {
		return false
	}
	it.pos++
	return true
}
func (it *fakeIterator) Record() map[string]any { return it.rows[it.pos-1] }
func (it *fakeIterator) Err() error             { return it.err }
func (it *fakeIterator) Close() error           { return nil }

type fakeClient struct {
	version influxdb.Version
	written []any
	queries []string
	rows    []map[string]any
	iterErr error
}

func (f *fakeClient) Init() error                       { return nil }
func (f *fakeClient) Close()                            {}
func (f *fakeClient) HealthCheck(context.Context) error { return nil }
func (f *fakeClient) Version() influxdb.Version         { return f.version }
func (f *fakeClient) Bucket() string                    { return "weather" }
func (f *fakeClient) WritePoints(ctx context.Context, p []any) error {
	f.written = append(f.written, p...)
	return nil
}
func (f *fakeClient) WritePoint(ctx context.Context, p any) error {
	return f.WritePoints(ctx, []any{p})
}
func (f *fakeClient) NewPoint(m string, tags map[string]string, fields map[string]any, ts time.Time) any {
	return fakePoint{measurement: m, tags: tags, fields: fields, ts: ts}
}
func (f *fakeClient) Query(_ context.Context, q string) (influxdb.QueryIterator, error) {
	f.queries = append(f.queries, q)
	return &fakeIterator{rows: f.rows, err: f.iterErr}, nil
}

func TestSave_WritesPoint(t *testing.T) {
	client := &fakeClient{version: influxdb.VersionV2OSS}
	repo := NewWeatherRepository(client)

	ts := time.Unix(1700000000, 0)
	require.NoError(t, repo.Save(context.Background(), &weather.Log{
		ID: "id-1", City: "Quito", Temperature: 14, Humidity: 80, WindSpeed: 2, Condition: "Fog and depositing rime fog", Timestamp: ts,
	}))

	require.Len(t, client.written, 1)
	p := client.written[0].(fakePoint)
	assert.Equal(t, weather.Measurement, p.measurement)
	assert.Equal(t, "Quito", p.tags["city"])
	assert.Equal(t, "id-1", p.tags["log_id"])
	assert.Equal(t, 14.0, p.fields["temperature"])
	assert.Equal(t, ts, p.ts)
}

func TestSave_SameSecondReadingsAreDistinctSeries(t *testing.T) {
	client := &fakeClient{version: influxdb.VersionV2OSS}
	repo := NewWeatherRepository(client)

	ts := time.Unix(1700000000, 0)
	require.NoError(t, repo.Save(context.Background(), &weather.Log{ID: "id-1", City: "Quito", Condition: "Clear sky", Timestamp: ts}))
	require.NoError(t, repo.Save(context.Background(), &weather.Log{ID: "id-2", City: "Quito", Condition: "Rain", Timestamp: ts}))

	require.Len(t, client.written, 2)
	first, second := client.written[0].(fakePoint), client.written[1].(fakePoint)
	assert.Equal(t, first.ts, second.ts)
	assert.NotEqual(t, first.tags, second.tags)
}

func TestFindAll_V2UsesFlux(t *testing.T) {
	client := &fakeClient{
		version: influxdb.VersionV2OSS,
		rows: []map[string]any{
			{"_time": time.Unix(200, 0), "city": "Quito", "temperature": 15.0},
			{"_time": time.Unix(100, 0), "city": "Quito", "temperature": 12.0},
		},
	}
	logs, err := NewWeatherRepository(client).FindAll(context.Background())
	require.NoError(t, err)

	require.Len(t, logs, 2)
	assert.Equal(t, 15.0, logs[0].Temperature)
	require.Len(t, client.queries, 1)
	assert.Contains(t, client.queries[0], `from(bucket: "weather")`)
	assert.Contains(t, client.queries[0], `r["_measurement"] == "weather_logs"`)
}

func TestFindAll_V3UsesSQL(t *testing.T) {
	client := &fakeClient{version: influxdb.VersionV3Core}
	logs, err := NewWeatherRepository(client).FindAll(context.Background())
	require.NoError(t, err)
	assert.Empty(t, logs)
	require.Len(t, client.queries, 1)
	assert.Contains(t, client.queries[0], `FROM "weather_logs" ORDER BY "time" DESC`)
}

func TestFindAll_IteratorError(t *testing.T) {
	client := &fakeClient{version: influxdb.VersionV2OSS, iterErr: errors.New("stream broken")}
	_, err := NewWeatherRepository(client).FindAll(context.Background())
	assert.ErrorContains(t, err, "stream broken")
}
