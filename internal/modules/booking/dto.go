package booking

import "github.com/netfirms/staycal/internal/domain"

// Dates travel as "2006-01-02" strings; the service parses and validates
// them before any overlap logic runs.

type CreateBookingRequest struct {
	RoomID       int64    `json:"room_id" binding:"required"`
	GuestName    string   `json:"guest_name" binding:"required"`
	GuestContact string   `json:"guest_contact"`
	StartDate    string   `json:"start_date" binding:"required"`
	EndDate      string   `json:"end_date" binding:"required"`
	Price        *float64 `json:"price"`
	Status       string   `json:"status"`
	Comment      string   `json:"comment"`
}

type UpdateBookingRequest struct {
	RoomID       *int64   `json:"room_id"`
	GuestName    *string  `json:"guest_name"`
	GuestContact *string  `json:"guest_contact"`
	StartDate    *string  `json:"start_date"`
	EndDate      *string  `json:"end_date"`
	Price        *float64 `json:"price"`
	Status       *string  `json:"status"`
	Comment      *string  `json:"comment"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type BookingResponse struct {
	ID           int64    `json:"id"`
	RoomID       int64    `json:"room_id"`
	GuestName    string   `json:"guest_name"`
	GuestContact string   `json:"guest_contact,omitempty"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date"`
	Nights       int      `json:"nights"`
	Price        *float64 `json:"price,omitempty"`
	Status       string   `json:"status"`
	Comment      string   `json:"comment,omitempty"`
	ImageURL     string   `json:"image_url,omitempty"`
}

func toBookingResponse(b domain.Booking) BookingResponse {
	return BookingResponse{
		ID:           b.ID,
		RoomID:       b.RoomID,
		GuestName:    b.GuestName,
		GuestContact: b.GuestContact,
		StartDate:    b.StartDate.Format(dateLayout),
		EndDate:      b.EndDate.Format(dateLayout),
		Nights:       b.Nights(),
		Price:        b.Price,
		Status:       string(b.Status),
		Comment:      b.Comment,
		ImageURL:     b.ImageURL,
	}
}
