package booking

import (
	"context"

	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/modules/availability"
	"github.com/netfirms/staycal/internal/repository"
)

// BookingRepository defines the persistence surface for bookings.
type BookingRepository interface {
	Create(ctx context.Context, b *domain.Booking) error
	GetByID(ctx context.Context, id int64) (*domain.Booking, error)
	Update(ctx context.Context, b *domain.Booking) error
	Delete(ctx context.Context, id int64) error
	UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error
	ListForHomestay(ctx context.Context, homestayID int64, f repository.BookingFilter) ([]domain.Booking, error)
}

// RoomRepository resolves rooms for homestay scoping.
type RoomRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Room, error)
}

// AvailabilityChecker decides whether a proposed stay may be created.
type AvailabilityChecker interface {
	Check(ctx context.Context, req availability.CheckRequest) (*availability.Decision, error)
}

// Sweeper runs the auto-checkout pass before listings; it never fails the
// surrounding request.
type Sweeper interface {
	RunQuietly(ctx context.Context)
}

// ChangeNotifier fans booking mutations out to open calendar views.
type ChangeNotifier interface {
	NotifyBookingChanged(homestayID, roomID, bookingID int64, action string)
}
