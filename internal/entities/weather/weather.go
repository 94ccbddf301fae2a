package weather

import (
	"time"

	"github.com/goccy/go-json"
)

// Measurement is the InfluxDB measurement holding weather logs
const Measurement = "weather_logs"

// NoDataMessage is returned by insights when nothing has been logged yet
const NoDataMessage = "No data available for insights."

type (
	Log struct {
		ID          string
		City        string
		Temperature float64
		Humidity    float64
		WindSpeed   float64
		Condition   string
		Timestamp   time.Time
	}

	// CreateLogRequest uses pointers so a missing reading is distinguishable from 0
	CreateLogRequest struct {
		City        string   `json:"city" validate:"required"`
		Temperature *float64 `json:"temperature" validate:"required"`
		Humidity    *float64 `json:"humidity" validate:"required"`
		WindSpeed   *float64 `json:"windSpeed" validate:"required"`
		Condition   string   `json:"condition" validate:"required"`
		Timestamp   int64    `json:"timestamp,omitempty" validate:"min=0"` // unix seconds, 0 means now
	}

	LogResponse struct {
		ID          string  `json:"id"`
		City        string  `json:"city"`
		Temperature float64 `json:"temperature"`
		Humidity    float64 `json:"humidity"`
		WindSpeed   float64 `json:"windSpeed"`
		Condition   string  `json:"condition"`
		Timestamp   int64   `json:"timestamp"`
	}

	// Insight carries either the summary or Message when there is no data
	Insight struct {
		LatestCondition string  `json:"latestCondition"`
		CurrentTemp     float64 `json:"currentTemp"`
		AverageTemp     float64 `json:"averageTemp"`
		Insight         string  `json:"insight"`
		Message         string  `json:"-"`
	}
)

// MarshalJSON renders {"message": ...} alone for the no-data case
func (i Insight) MarshalJSON() ([]byte, error) {
	if i.Message != "" {
		return json.Marshal(struct {
			Message string `json:"message"`
		}{i.Message})
	}
	type plain Insight
	return json.Marshal(plain(i))
}

// ToResponse maps a log to its API shape
func (l *Log) ToResponse() LogResponse {
	return LogResponse{
		ID:          l.ID,
		City:        l.City,
		Temperature: l.Temperature,
		Humidity:    l.Humidity,
		WindSpeed:   l.WindSpeed,
		Condition:   l.Condition,
		Timestamp:   l.Timestamp.Unix(),
	}
}

// ToResponses maps a list of logs
func ToResponses(logs []Log) []LogResponse {
	out := make([]LogResponse, len(logs))
	for i := range logs {
		out[i] = logs[i].ToResponse()
	}
	return out
}

// Tags returns the InfluxDB tag set. log_id is part of the series key so
// readings for one city sharing a timestamp stay distinct points.
func (l *Log) Tags() map[string]string {
	return map[string]string{
		"city":   safeString(l.City),
		"log_id": safeString(l.ID),
	}
}

// Fields returns the InfluxDB field set
func (l *Log) Fields() map[string]any {
	return map[string]any{
		"temperature": l.Temperature,
		"humidity":    l.Humidity,
		"wind_speed":  l.WindSpeed,
		"condition":   l.Condition,
	}
}

// Columns lists the columns read back from InfluxDB
func Columns() []string {
	return []string{"city", "log_id", "temperature", "humidity", "wind_speed", "condition"}
}

// safeString ensures tag values are never empty (InfluxDB requirement)
func safeString(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

// MapRecord converts a raw InfluxDB row into a Log. v2 rows carry "_time",
// v3 rows carry "time".
func MapRecord(record map[string]any) Log {
	var l Log

	for _, key := range []string{"_time", "time"} {
		if v, ok := record[key]; ok {
			switch t := v.(type) {
			case time.Time:
				l.Timestamp = t
			case string:
				if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
					l.Timestamp = parsed
				}
			}
			break
		}
	}

	if v, ok := record["log_id"].(string); ok {
		l.ID = v
	}
	if v, ok := record["city"].(string); ok && v != "-" {
		l.City = v
	}
	if v, ok := record["condition"].(string); ok {
		l.Condition = v
	}
	l.Temperature = toFloat(record["temperature"])
	l.Humidity = toFloat(record["humidity"])
	l.WindSpeed = toFloat(record["wind_speed"])

	return l
}

func toFloat(v any) float64 {
	switch n := v.(type) {
	case float64:
		return n
	case float32:
		return float64(n)
	case int64:
		return float64(n)
	case int:
		return float64(n)
	case uint64:
		return float64(n)
	}
	return 0
}
