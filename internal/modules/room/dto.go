package room

import "github.com/netfirms/staycal/internal/domain"

type CreateRoomRequest struct {
	Name        string   `json:"name" binding:"required" validate:"required"`
	Capacity    int      `json:"capacity" validate:"gte=1"`
	DefaultRate *float64 `json:"default_rate" validate:"omitempty,gte=0"`
	OTAICalURL  string   `json:"ota_ical_url" validate:"omitempty,url"`
	ImageURL    string   `json:"image_url"`
}

type UpdateRoomRequest struct {
	Name        *string  `json:"name"`
	Capacity    *int     `json:"capacity"`
	DefaultRate *float64 `json:"default_rate"`
	OTAICalURL  *string  `json:"ota_ical_url" validate:"omitempty,url"`
	ImageURL    *string  `json:"image_url"`
}

type RoomResponse struct {
	ID          int64    `json:"id"`
	Name        string   `json:"name"`
	Capacity    int      `json:"capacity"`
	DefaultRate *float64 `json:"default_rate,omitempty"`
	OTAICalURL  string   `json:"ota_ical_url,omitempty"`
	ImageURL    string   `json:"image_url,omitempty"`
}

func toRoomResponse(r domain.Room) RoomResponse {
	return RoomResponse{
		ID:          r.ID,
		Name:        r.Name,
		Capacity:    r.Capacity,
		DefaultRate: r.DefaultRate,
		OTAICalURL:  r.OTAICalURL,
		ImageURL:    r.ImageURL,
	}
}
