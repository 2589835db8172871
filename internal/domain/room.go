package domain

import "time"

type Room struct {
	ID          int64    `json:"id"`
	HomestayID  int64    `json:"homestay_id"`
	Name        string   `json:"name" validate:"required"`
	Capacity    int      `json:"capacity" validate:"gte=1"`
	DefaultRate *float64 `json:"default_rate,omitempty"`
	// OTAICalURL points at a read-only external calendar feed (Airbnb,
	// Booking.com) mirrored into the availability check. Empty when the
	// room is not listed on any OTA channel.
	OTAICalURL string `json:"ota_ical_url,omitempty"`
	ImageURL   string `json:"image_url,omitempty"`
}

type Homestay struct {
	ID        int64     `json:"id"`
	OwnerID   int64     `json:"owner_id"`
	Name      string    `json:"name" validate:"required"`
	Address   string    `json:"address,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
