package configdata

import "time"

// EventConfigUpdated is emitted after a config document is saved
const EventConfigUpdated = "config_updated"

type (
	// Document is the city/coordinates the collector polls. Defaults carry
	// no ID and a zero CreatedAt.
	Document struct {
		ID        string    `json:"id,omitempty"`
		City      string    `json:"city"`
		Latitude  string    `json:"latitude"`
		Longitude string    `json:"longitude"`
		CreatedAt time.Time `json:"created_at"`
	}

	DocumentResponse struct {
		ID        string     `json:"id,omitempty"`
		City      string     `json:"city"`
		Latitude  string     `json:"latitude"`
		Longitude string     `json:"longitude"`
		UpdatedAt *time.Time `json:"updated_at,omitempty"`
	}

	UpdateRequest struct {
		City      string `json:"city" validate:"required"`
		Latitude  string `json:"latitude" validate:"required"`
		Longitude string `json:"longitude" validate:"required"`
	}

	Event struct {
		City      string    `json:"city"`
		Latitude  string    `json:"latitude"`
		Longitude string    `json:"longitude"`
		UpdatedAt time.Time `json:"updated_at"`
	}
)

// IsDefault reports whether d came from configuration rather than storage
func (d *Document) IsDefault() bool {
	return d.ID == ""
}

// ToResponse maps the document to its API shape
func (d *Document) ToResponse() DocumentResponse {
	r := DocumentResponse{ID: d.ID, City: d.City, Latitude: d.Latitude, Longitude: d.Longitude}
	if !d.CreatedAt.IsZero() {
		t := d.CreatedAt
		r.UpdatedAt = &t
	}
	return r
}

// ToEvent builds the config_updated payload
func (d *Document) ToEvent() Event {
	return Event{City: d.City, Latitude: d.Latitude, Longitude: d.Longitude, UpdatedAt: d.CreatedAt}
}
