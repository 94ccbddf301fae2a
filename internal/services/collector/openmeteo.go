package collector

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
)

// DefaultHumidity is used when the forecast carries no hourly humidity
const DefaultHumidity = 50.0

// Reading is the current weather at one location
type Reading struct {
	Temperature float64
	WindSpeed   float64
	Humidity    float64
	WeatherCode int
}

type forecastResponse struct {
	CurrentWeather *struct {
		Temperature float64 `json:"temperature"`
		WindSpeed   float64 `json:"windspeed"`
		WeatherCode int     `json:"weathercode"`
	} `json:"current_weather"`
	Hourly struct {
		RelativeHumidity []float64 `json:"relativehumidity_2m"`
	} `json:"hourly"`
}

// OpenMeteoClient reads current conditions from the Open-Meteo forecast API
type OpenMeteoClient struct {
	httpClient *http.Client
	baseURL    string
}

func NewOpenMeteoClient(baseURL string, timeout time.Duration) *OpenMeteoClient {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &OpenMeteoClient{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
	}
}

// Current fetches the reading for the coordinates
func (c *OpenMeteoClient) Current(ctx context.Context, latitude, longitude string) (*Reading, error) {
	q := url.Values{}
	q.Set("latitude", latitude)
	q.Set("longitude", longitude)
	q.Set("current_weather", "true")
	q.Set("hourly", "relativehumidity_2m")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/v1/forecast?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("build forecast request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("forecast request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("forecast request: unexpected status %s: %s", resp.Status, strings.TrimSpace(string(body)))
	}

	var out forecastResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("decode forecast: %w", err)
	}
	if out.CurrentWeather == nil {
		return nil, fmt.Errorf("forecast response has no current_weather")
	}

	reading := &Reading{
		Temperature: out.CurrentWeather.Temperature,
		WindSpeed:   out.CurrentWeather.WindSpeed,
		WeatherCode: out.CurrentWeather.WeatherCode,
		Humidity:    DefaultHumidity,
	}
	if len(out.Hourly.RelativeHumidity) > 0 {
		reading.Humidity = out.Hourly.RelativeHumidity[0]
	}
	return reading, nil
}

// ConditionFromCode maps a WMO weather code to its description
func ConditionFromCode(code int) string {
	switch code {
	case 0:
		return "Clear sky"
	case 1, 2, 3:
		return "Mainly clear, partly cloudy, and overcast"
	case 45, 48:
		return "Fog and depositing rime fog"
	case 51, 53, 55:
		return "Drizzle: Light, moderate, and dense intensity"
	case 61, 63, 65:
		return "Rain: Slight, moderate and heavy intensity"
	case 71, 73, 75:
		return "Snow fall: Slight, moderate, and heavy intensity"
	case 95:
		return "Thunderstorm: Slight or moderate"
	case 96, 99:
		return "Thunderstorm with slight and heavy hail"
	default:
		return "Unknown"
	}
}
