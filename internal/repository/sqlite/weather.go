package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/benedict-erwin/weather-insight/internal/entities/weather"
)

// WeatherRepository stores weather logs in the weather_logs table
type WeatherRepository struct {
	db *sql.DB
}

func NewWeatherRepository(db *sql.DB) *WeatherRepository {
	return &WeatherRepository{db: db}
}

func (r *WeatherRepository) Save(ctx context.Context, l *weather.Log) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO weather_logs (id, city, temperature, humidity, wind_speed, condition, timestamp)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		l.ID, l.City, l.Temperature, l.Humidity, l.WindSpeed, l.Condition, l.Timestamp.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert weather log: %w", err)
	}
	return nil
}

// FindAll returns every log, newest first
func (r *WeatherRepository) FindAll(ctx context.Context) ([]weather.Log, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, city, temperature, humidity, wind_speed, condition, timestamp
		 FROM weather_logs ORDER BY timestamp DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("list weather logs: %w", err)
	}
	defer rows.Close()

	var out []weather.Log
	for rows.Next() {
		var (
			l  weather.Log
			ts int64
		)
		if err := rows.Scan(&l.ID, &l.City, &l.Temperature, &l.Humidity, &l.WindSpeed, &l.Condition, &ts); err != nil {
			return nil, fmt.Errorf("scan weather log: %w", err)
		}
		l.Timestamp = time.Unix(0, ts)
		out = append(out, l)
	}
	return out, rows.Err()
}

// Ping reports whether the database is reachable
func (r *WeatherRepository) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
