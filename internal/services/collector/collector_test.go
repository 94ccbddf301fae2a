package collector

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	configEntity "github.com/benedict-erwin/weather-insight/internal/entities/configdata"
	weatherEntity "github.com/benedict-erwin/weather-insight/internal/entities/weather"
	"github.com/benedict-erwin/weather-insight/pkg/metrics"
)

func TestConditionFromCode(t *testing.T) {
	tests := map[int]string{
		0:   "Clear sky",
		1:   "Mainly clear, partly cloudy, and overcast",
		3:   "Mainly clear, partly cloudy, and overcast",
		45:  "Fog and depositing rime fog",
		48:  "Fog and depositing rime fog",
		53:  "Drizzle: Light, moderate, and dense intensity",
		61:  "Rain: Slight, moderate and heavy intensity",
		65:  "Rain: Slight, moderate and heavy intensity",
		73:  "Snow fall: Slight, moderate, and heavy intensity",
		95:  "Thunderstorm: Slight or moderate",
		96:  "Thunderstorm with slight and heavy hail",
		99:  "Thunderstorm with slight and heavy hail",
		999: "Unknown",
		-1:  "Unknown",
	}
	for code, want := range tests {
		assert.Equal(t, want, ConditionFromCode(code), "code %d", code)
	}
}

func TestOpenMeteoClient_Current(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/forecast", r.URL.Path)
		assert.Equal(t, "-23.5505", r.URL.Query().Get("latitude"))
		assert.Equal(t, "-46.6333", r.URL.Query().Get("longitude"))
		assert.Equal(t, "true", r.URL.Query().Get("current_weather"))
		assert.Equal(t, "relativehumidity_2m", r.URL.Query().Get("hourly"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"current_weather": {"temperature": 25.5, "windspeed": 12.3, "weathercode": 0, "time": "2024-01-01T12:00"},
			"hourly": {"time": ["2024-01-01T12:00", "2024-01-01T13:00"], "relativehumidity_2m": [65, 70]}
		}`))
	}))
	defer srv.Close()

	reading, err := NewOpenMeteoClient(srv.URL+"/", time.Second).Current(context.Background(), "-23.5505", "-46.6333")
	require.NoError(t, err)
	assert.Equal(t, &Reading{Temperature: 25.5, WindSpeed: 12.3, Humidity: 65, WeatherCode: 0}, reading)
}

func TestOpenMeteoClient_MissingHumidity(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"current_weather": {"temperature": 25.5, "windspeed": 12.3, "weathercode": 0}, "hourly": {}}`))
	}))
	defer srv.Close()

	reading, err := NewOpenMeteoClient(srv.URL, time.Second).Current(context.Background(), "0", "0")
	require.NoError(t, err)
	assert.Equal(t, DefaultHumidity, reading.Humidity)
}

func TestOpenMeteoClient_Errors(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Query().Get("latitude") {
		case "500":
			http.Error(w, "upstream exploded", http.StatusInternalServerError)
		case "empty":
			_, _ = w.Write([]byte(`{}`))
		default:
			_, _ = w.Write([]byte(`not json`))
		}
	}))
	defer srv.Close()

	client := NewOpenMeteoClient(srv.URL, time.Second)
	for _, lat := range []string{"500", "empty", "garbage"} {
		_, err := client.Current(context.Background(), lat, "0")
		assert.Error(t, err, lat)
	}
}

type staticConfig struct {
	doc *configEntity.Document
	err error
}

func (s staticConfig) GetConfig(context.Context) (*configEntity.Document, error) { return s.doc, s.err }

type stubFetcher struct {
	reading *Reading
	err     error
	lat     string
}

func (f *stubFetcher) Current(_ context.Context, lat, _ string) (*Reading, error) {
	f.lat = lat
	return f.reading, f.err
}

func TestCollect(t *testing.T) {
	clock := clockwork.NewFakeClockAt(time.Unix(1700000000, 0))
	m := metrics.NewMetricsForTesting()
	fetcher := &stubFetcher{reading: &Reading{Temperature: 18, WindSpeed: 3, Humidity: 77, WeatherCode: 63}}

	var submitted *weatherEntity.CreateLogRequest
	sink := SinkFunc(func(_ context.Context, req *weatherEntity.CreateLogRequest) error {
		submitted = req
		return nil
	})

	svc := NewService(staticConfig{doc: &configEntity.Document{City: "Curitiba", Latitude: "-25.43", Longitude: "-49.27"}}, fetcher, sink, clock, m)
	req, err := svc.Collect(context.Background())
	require.NoError(t, err)

	assert.Same(t, req, submitted)
	assert.Equal(t, "-25.43", fetcher.lat)
	assert.Equal(t, "Curitiba", req.City)
	assert.Equal(t, 18.0, *req.Temperature)
	assert.Equal(t, 77.0, *req.Humidity)
	assert.Equal(t, "Rain: Slight, moderate and heavy intensity", req.Condition)
	assert.Equal(t, int64(1700000000), req.Timestamp)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CollectorFetches.WithLabelValues("success")))
}

func TestCollect_FetchError(t *testing.T) {
	m := metrics.NewMetricsForTesting()
	sink := SinkFunc(func(context.Context, *weatherEntity.CreateLogRequest) error {
		t.Fatal("sink must not be called")
		return nil
	})
	svc := NewService(staticConfig{doc: &configEntity.Document{City: "X"}}, &stubFetcher{err: errors.New("timeout")}, sink, nil, m)

	_, err := svc.Collect(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.CollectorFetches.WithLabelValues("error")))
}

func TestCollect_SinkError(t *testing.T) {
	sink := SinkFunc(func(context.Context, *weatherEntity.CreateLogRequest) error { return errors.New("queue down") })
	svc := NewService(staticConfig{doc: &configEntity.Document{City: "X"}}, &stubFetcher{reading: &Reading{}}, sink, nil, nil)

	_, err := svc.Collect(context.Background())
	assert.ErrorContains(t, err, "queue down")
}
