package availability

import (
	"context"

	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/ical"
)

// BookingStore supplies a room's bookings for the overlap check.
type BookingStore interface {
	ListByRoom(ctx context.Context, roomID int64, excludeID int64, statuses []domain.BookingStatus) ([]domain.Booking, error)
}

// RoomStore resolves the room under check, mainly for its OTA feed URL.
type RoomStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// FeedCache is the OTA feed source. Implementations cache aggressively and
// signal fetch failures with ical.ErrFeedUnavailable; the checker treats
// those as "no external events".
type FeedCache interface {
	GetEvents(ctx context.Context, url string) ([]ical.Event, error)
}
