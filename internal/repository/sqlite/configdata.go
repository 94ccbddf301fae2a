package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/benedict-erwin/weather-insight/internal/entities/configdata"
)

// ConfigRepository keeps every saved config document; the newest wins
type ConfigRepository struct {
	db *sql.DB
}

func NewConfigRepository(db *sql.DB) *ConfigRepository {
	return &ConfigRepository{db: db}
}

func (r *ConfigRepository) Save(ctx context.Context, d *configdata.Document) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO config_documents (id, city, latitude, longitude, created_at) VALUES (?, ?, ?, ?, ?)`,
		d.ID, d.City, d.Latitude, d.Longitude, d.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("insert config document: %w", err)
	}
	return nil
}

// Latest returns nil, nil when nothing has been saved
func (r *ConfigRepository) Latest(ctx context.Context) (*configdata.Document, error) {
	var (
		d       configdata.Document
		created int64
	)
	err := r.db.QueryRowContext(ctx,
		`SELECT id, city, latitude, longitude, created_at FROM config_documents
		 ORDER BY created_at DESC, rowid DESC LIMIT 1`,
	).Scan(&d.ID, &d.City, &d.Latitude, &d.Longitude, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("latest config document: %w", err)
	}
	d.CreatedAt = time.Unix(0, created)
	return &d, nil
}
