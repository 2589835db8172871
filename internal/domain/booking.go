package domain

import "time"

type BookingStatus string

const (
	BookingTentative  BookingStatus = "tentative"
	BookingConfirmed  BookingStatus = "confirmed"
	BookingCheckedIn  BookingStatus = "checked_in"
	BookingCheckedOut BookingStatus = "checked_out"
	BookingCancelled  BookingStatus = "cancelled"
)

// ActiveStatuses are the statuses that occupy a room: they participate in
// the overlap check and are eligible for auto-checkout. cancelled and
// checked_out are terminal and excluded.
var ActiveStatuses = []BookingStatus{
	BookingTentative,
	BookingConfirmed,
	BookingCheckedIn,
}

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingTentative, BookingConfirmed, BookingCheckedIn, BookingCheckedOut, BookingCancelled:
		return true
	}
	return false
}

type Booking struct {
	ID           int64         `json:"id"`
	RoomID       int64         `json:"room_id" validate:"required"`
	GuestName    string        `json:"guest_name" validate:"required"`
	GuestContact string        `json:"guest_contact,omitempty"`
	StartDate    time.Time     `json:"start_date" validate:"required"`
	EndDate      time.Time     `json:"end_date" validate:"required"`
	Price        *float64      `json:"price,omitempty"`
	Status       BookingStatus `json:"status"`
	Comment      string        `json:"comment,omitempty"`
	ImageURL     string        `json:"image_url,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// Nights returns the length of the stay. The interval is half-open, so the
// checkout date itself is not counted.
func (b Booking) Nights() int {
	return int(b.EndDate.Sub(b.StartDate).Hours() / 24)
}
