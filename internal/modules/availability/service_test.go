package availability

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/ical"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) ListByRoom(ctx context.Context, roomID int64, excludeID int64, statuses []domain.BookingStatus) ([]domain.Booking, error) {
	args := m.Called(ctx, roomID, excludeID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockRoomStore struct {
	mock.Mock
}

func (m *MockRoomStore) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockFeedCache struct {
	mock.Mock
}

func (m *MockFeedCache) GetEvents(ctx context.Context, url string) ([]ical.Event, error) {
	args := m.Called(ctx, url)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]ical.Event), args.Error(1)
}

func d(y int, mo time.Month, day int) time.Time {
	return time.Date(y, mo, day, 0, 0, 0, 0, time.UTC)
}

func TestCheck_InternalConflict(t *testing.T) {
	bookings := new(MockBookingStore)
	rooms := new(MockRoomStore)
	feeds := new(MockFeedCache)

	rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7}, nil)
	bookings.On("ListByRoom", mock.Anything, int64(7), int64(0), domain.ActiveStatuses).Return([]domain.Booking{
		{ID: 1, RoomID: 7, StartDate: d(2025, 10, 7), EndDate: d(2025, 10, 10), Status: domain.BookingConfirmed},
	}, nil)

	service := NewService(bookings, rooms, feeds)

	decision, err := service.Check(context.Background(), CheckRequest{
		RoomID: 7,
		Start:  d(2025, 10, 9),
		End:    d(2025, 10, 12),
	})

	assert.NoError(t, err)
	assert.False(t, decision.OK)
	assert.Equal(t, ReasonInternalConflict, decision.Reason)
	assert.Len(t, decision.Conflicts, 1)
	assert.Equal(t, int64(1), decision.Conflicts[0].ID)
}

func TestCheck_TouchingStaysDoNotConflict(t *testing.T) {
	bookings := new(MockBookingStore)
	rooms := new(MockRoomStore)
	feeds := new(MockFeedCache)

	rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7}, nil)
	bookings.On("ListByRoom", mock.Anything, int64(7), int64(0), domain.ActiveStatuses).Return([]domain.Booking{
		{ID: 1, RoomID: 7, StartDate: d(2025, 10, 7), EndDate: d(2025, 10, 10), Status: domain.BookingConfirmed},
	}, nil)

	service := NewService(bookings, rooms, feeds)

	// New stay starts on the existing checkout date.
	decision, err := service.Check(context.Background(), CheckRequest{
		RoomID: 7,
		Start:  d(2025, 10, 10),
		End:    d(2025, 10, 12),
	})

	assert.NoError(t, err)
	assert.True(t, decision.OK)
}

func TestCheck_EditExcludesSelf(t *testing.T) {
	bookings := new(MockBookingStore)
	rooms := new(MockRoomStore)
	feeds := new(MockFeedCache)

	rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7}, nil)
	// The store already filtered out booking 42; saving it over its own
	// dates must pass.
	bookings.On("ListByRoom", mock.Anything, int64(7), int64(42), domain.ActiveStatuses).Return([]domain.Booking{}, nil)

	service := NewService(bookings, rooms, feeds)

	decision, err := service.Check(context.Background(), CheckRequest{
		RoomID:           7,
		Start:            d(2025, 10, 7),
		End:              d(2025, 10, 10),
		ExcludeBookingID: 42,
	})

	assert.NoError(t, err)
	assert.True(t, decision.OK)
	bookings.AssertExpectations(t)
}

func TestCheck_ExternalConflict(t *testing.T) {
	bookings := new(MockBookingStore)
	rooms := new(MockRoomStore)
	feeds := new(MockFeedCache)

	rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7, OTAICalURL: "https://ota.example/cal.ics"}, nil)
	bookings.On("ListByRoom", mock.Anything, int64(7), int64(0), domain.ActiveStatuses).Return([]domain.Booking{}, nil)
	feeds.On("GetEvents", mock.Anything, "https://ota.example/cal.ics").Return([]ical.Event{
		{Start: d(2025, 11, 1), End: d(2025, 11, 5), Title: "Reserved"},
	}, nil)

	service := NewService(bookings, rooms, feeds)

	decision, err := service.Check(context.Background(), CheckRequest{
		RoomID: 7,
		Start:  d(2025, 11, 2),
		End:    d(2025, 11, 3),
	})

	assert.NoError(t, err)
	assert.False(t, decision.OK)
	assert.Equal(t, ReasonExternalConflict, decision.Reason)
	assert.Equal(t, "Reserved", decision.ExternalTitle)
}

func TestCheck_FeedFailureDegradesToAvailable(t *testing.T) {
	bookings := new(MockBookingStore)
	rooms := new(MockRoomStore)
	feeds := new(MockFeedCache)

	rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7, OTAICalURL: "https://ota.example/down.ics"}, nil)
	bookings.On("ListByRoom", mock.Anything, int64(7), int64(0), domain.ActiveStatuses).Return([]domain.Booking{}, nil)
	feeds.On("GetEvents", mock.Anything, "https://ota.example/down.ics").
		Return(nil, fmt.Errorf("%w: timeout", ical.ErrFeedUnavailable))

	service := NewService(bookings, rooms, feeds)

	decision, err := service.Check(context.Background(), CheckRequest{
		RoomID: 7,
		Start:  d(2025, 11, 2),
		End:    d(2025, 11, 3),
	})

	assert.NoError(t, err)
	assert.True(t, decision.OK)
}

func TestCheck_NoFeedURLSkipsExternalLookup(t *testing.T) {
	bookings := new(MockBookingStore)
	rooms := new(MockRoomStore)
	feeds := new(MockFeedCache)

	rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7}, nil)
	bookings.On("ListByRoom", mock.Anything, int64(7), int64(0), domain.ActiveStatuses).Return([]domain.Booking{}, nil)

	service := NewService(bookings, rooms, feeds)

	decision, err := service.Check(context.Background(), CheckRequest{
		RoomID: 7,
		Start:  d(2025, 11, 2),
		End:    d(2025, 11, 3),
	})

	assert.NoError(t, err)
	assert.True(t, decision.OK)
	feeds.AssertNotCalled(t, "GetEvents", mock.Anything, mock.Anything)
}

func TestCheck_InternalConflictWinsOverExternal(t *testing.T) {
	bookings := new(MockBookingStore)
	rooms := new(MockRoomStore)
	feeds := new(MockFeedCache)

	rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7, OTAICalURL: "https://ota.example/cal.ics"}, nil)
	bookings.On("ListByRoom", mock.Anything, int64(7), int64(0), domain.ActiveStatuses).Return([]domain.Booking{
		{ID: 1, RoomID: 7, StartDate: d(2025, 11, 1), EndDate: d(2025, 11, 4), Status: domain.BookingConfirmed},
	}, nil)

	service := NewService(bookings, rooms, feeds)

	decision, err := service.Check(context.Background(), CheckRequest{
		RoomID: 7,
		Start:  d(2025, 11, 2),
		End:    d(2025, 11, 3),
	})

	assert.NoError(t, err)
	assert.Equal(t, ReasonInternalConflict, decision.Reason)
	feeds.AssertNotCalled(t, "GetEvents", mock.Anything, mock.Anything)
}

func TestCheck_InvalidRange(t *testing.T) {
	service := NewService(new(MockBookingStore), new(MockRoomStore), new(MockFeedCache))

	_, err := service.Check(context.Background(), CheckRequest{
		RoomID: 7,
		Start:  d(2025, 11, 3),
		End:    d(2025, 11, 3),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = service.Check(context.Background(), CheckRequest{
		RoomID: 7,
		Start:  d(2025, 11, 3),
		End:    d(2025, 11, 1),
	})
	assert.ErrorIs(t, err, ErrInvalidRange)

	_, err = service.Check(context.Background(), CheckRequest{RoomID: 7})
	assert.ErrorIs(t, err, ErrInvalidRange)
}

func TestCheck_CustomStatusUniverse(t *testing.T) {
	bookings := new(MockBookingStore)
	rooms := new(MockRoomStore)
	feeds := new(MockFeedCache)

	all := []domain.BookingStatus{
		domain.BookingTentative, domain.BookingConfirmed, domain.BookingCheckedIn,
		domain.BookingCheckedOut, domain.BookingCancelled,
	}

	rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7}, nil)
	bookings.On("ListByRoom", mock.Anything, int64(7), int64(0), all).Return([]domain.Booking{
		{ID: 3, RoomID: 7, StartDate: d(2025, 12, 1), EndDate: d(2025, 12, 5), Status: domain.BookingCancelled},
	}, nil)

	service := NewService(bookings, rooms, feeds)

	decision, err := service.Check(context.Background(), CheckRequest{
		RoomID:   7,
		Start:    d(2025, 12, 2),
		End:      d(2025, 12, 3),
		Statuses: all,
	})

	assert.NoError(t, err)
	assert.Equal(t, ReasonInternalConflict, decision.Reason)
}

func TestCheck_StoreErrorPropagates(t *testing.T) {
	bookings := new(MockBookingStore)
	rooms := new(MockRoomStore)
	feeds := new(MockFeedCache)

	rooms.On("GetByID", mock.Anything, int64(7)).Return(&domain.Room{ID: 7}, nil)
	bookings.On("ListByRoom", mock.Anything, int64(7), int64(0), domain.ActiveStatuses).
		Return(nil, errors.New("connection reset"))

	service := NewService(bookings, rooms, feeds)

	_, err := service.Check(context.Background(), CheckRequest{
		RoomID: 7,
		Start:  d(2025, 11, 2),
		End:    d(2025, 11, 3),
	})
	assert.Error(t, err)
}
