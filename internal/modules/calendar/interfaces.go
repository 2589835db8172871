package calendar

import (
	"context"
	"time"

	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/ical"
)

type BookingStore interface {
	ListForMonth(ctx context.Context, roomID int64, monthStart, monthEnd time.Time) ([]domain.Booking, error)
}

type RoomStore interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
	ListByHomestay(ctx context.Context, homestayID int64) ([]domain.Room, error)
}

type FeedCache interface {
	GetEvents(ctx context.Context, url string) ([]ical.Event, error)
}

type Sweeper interface {
	RunQuietly(ctx context.Context)
}
