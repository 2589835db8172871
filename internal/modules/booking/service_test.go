package booking

import (
	"context"
	"testing"
	"time"

	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/modules/availability"
	"github.com/netfirms/staycal/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingRepository struct {
	mock.Mock
}

func (m *MockBookingRepository) Create(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	if b != nil && args.Error(0) == nil {
		b.ID = 999 // simulate DB insert
	}
	return args.Error(0)
}

func (m *MockBookingRepository) GetByID(ctx context.Context, id int64) (*domain.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Booking), args.Error(1)
}

func (m *MockBookingRepository) Update(ctx context.Context, b *domain.Booking) error {
	args := m.Called(ctx, b)
	return args.Error(0)
}

func (m *MockBookingRepository) Delete(ctx context.Context, id int64) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *MockBookingRepository) UpdateStatus(ctx context.Context, id int64, status domain.BookingStatus) error {
	args := m.Called(ctx, id, status)
	return args.Error(0)
}

func (m *MockBookingRepository) ListForHomestay(ctx context.Context, homestayID int64, f repository.BookingFilter) ([]domain.Booking, error) {
	args := m.Called(ctx, homestayID, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Booking), args.Error(1)
}

type MockRoomRepository struct {
	mock.Mock
}

func (m *MockRoomRepository) GetByID(ctx context.Context, id int64) (*domain.Room, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Room), args.Error(1)
}

type MockChecker struct {
	mock.Mock
}

func (m *MockChecker) Check(ctx context.Context, req availability.CheckRequest) (*availability.Decision, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*availability.Decision), args.Error(1)
}

type MockSweeper struct {
	mock.Mock
}

func (m *MockSweeper) RunQuietly(ctx context.Context) {
	m.Called(ctx)
}

type MockNotifier struct {
	mock.Mock
}

func (m *MockNotifier) NotifyBookingChanged(homestayID, roomID, bookingID int64, action string) {
	m.Called(homestayID, roomID, bookingID, action)
}

func d(y int, mo time.Month, day int) time.Time {
	return time.Date(y, mo, day, 0, 0, 0, 0, time.UTC)
}

func newServiceForTest() (*Service, *MockBookingRepository, *MockRoomRepository, *MockChecker, *MockSweeper, *MockNotifier) {
	bookings := new(MockBookingRepository)
	rooms := new(MockRoomRepository)
	checker := new(MockChecker)
	sweeper := new(MockSweeper)
	notifs := new(MockNotifier)
	return NewService(bookings, rooms, checker, sweeper, notifs), bookings, rooms, checker, sweeper, notifs
}

func TestCreate_Success(t *testing.T) {
	service, bookings, rooms, checker, _, notifs := newServiceForTest()

	rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{ID: 101, HomestayID: 10}, nil)
	checker.On("Check", mock.Anything, mock.MatchedBy(func(req availability.CheckRequest) bool {
		return req.RoomID == 101 && req.Start.Equal(d(2025, 10, 7)) && req.End.Equal(d(2025, 10, 10)) && req.ExcludeBookingID == 0
	})).Return(&availability.Decision{OK: true}, nil)
	bookings.On("Create", mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyBookingChanged", int64(10), int64(101), int64(999), "created").Return()

	b, err := service.Create(context.Background(), 10, CreateBookingRequest{
		RoomID:    101,
		GuestName: "  Jane Doe ",
		StartDate: "2025-10-07",
		EndDate:   "2025-10-10",
	})

	assert.NoError(t, err)
	assert.Equal(t, "Jane Doe", b.GuestName)
	assert.Equal(t, domain.BookingConfirmed, b.Status)
	assert.Equal(t, 3, b.Nights())
	notifs.AssertExpectations(t)
}

func TestCreate_InternalConflict(t *testing.T) {
	service, _, rooms, checker, _, _ := newServiceForTest()

	rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{ID: 101, HomestayID: 10}, nil)
	checker.On("Check", mock.Anything, mock.Anything).Return(&availability.Decision{
		OK:     false,
		Reason: availability.ReasonInternalConflict,
	}, nil)

	_, err := service.Create(context.Background(), 10, CreateBookingRequest{
		RoomID:    101,
		GuestName: "Jane",
		StartDate: "2025-10-09",
		EndDate:   "2025-10-12",
	})
	assert.ErrorIs(t, err, ErrInternalConflict)
}

func TestCreate_ExternalConflict(t *testing.T) {
	service, _, rooms, checker, _, _ := newServiceForTest()

	rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{ID: 101, HomestayID: 10}, nil)
	checker.On("Check", mock.Anything, mock.Anything).Return(&availability.Decision{
		OK:            false,
		Reason:        availability.ReasonExternalConflict,
		ExternalTitle: "Reserved",
	}, nil)

	_, err := service.Create(context.Background(), 10, CreateBookingRequest{
		RoomID:    101,
		GuestName: "Jane",
		StartDate: "2025-11-02",
		EndDate:   "2025-11-03",
	})
	assert.ErrorIs(t, err, ErrExternalConflict)
}

func TestCreate_InvalidDateAndStatus(t *testing.T) {
	service, _, _, _, _, _ := newServiceForTest()

	_, err := service.Create(context.Background(), 10, CreateBookingRequest{
		RoomID:    101,
		GuestName: "Jane",
		StartDate: "07/10/2025",
		EndDate:   "2025-10-10",
	})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = service.Create(context.Background(), 10, CreateBookingRequest{
		RoomID:    101,
		GuestName: "Jane",
		StartDate: "2025-10-07",
		EndDate:   "2025-10-10",
		Status:    "teleported",
	})
	assert.ErrorIs(t, err, ErrValidation)
}

func TestCreate_RoomOutsideHomestay(t *testing.T) {
	service, _, rooms, _, _, _ := newServiceForTest()

	rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{ID: 101, HomestayID: 77}, nil)

	_, err := service.Create(context.Background(), 10, CreateBookingRequest{
		RoomID:    101,
		GuestName: "Jane",
		StartDate: "2025-10-07",
		EndDate:   "2025-10-10",
	})
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestCreate_ConstraintBackstopMapsToConflict(t *testing.T) {
	service, bookings, rooms, checker, _, _ := newServiceForTest()

	rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{ID: 101, HomestayID: 10}, nil)
	checker.On("Check", mock.Anything, mock.Anything).Return(&availability.Decision{OK: true}, nil)
	// Two requests raced past the check; the exclusion constraint fired.
	bookings.On("Create", mock.Anything, mock.Anything).Return(&pgconn.PgError{Code: "23P01"})

	_, err := service.Create(context.Background(), 10, CreateBookingRequest{
		RoomID:    101,
		GuestName: "Jane",
		StartDate: "2025-10-07",
		EndDate:   "2025-10-10",
	})
	assert.ErrorIs(t, err, ErrInternalConflict)
}

func TestUpdate_ExcludesSelfFromConflictCheck(t *testing.T) {
	service, bookings, rooms, checker, _, notifs := newServiceForTest()

	existing := &domain.Booking{
		ID: 42, RoomID: 101, GuestName: "Jane",
		StartDate: d(2025, 10, 7), EndDate: d(2025, 10, 10),
		Status: domain.BookingConfirmed,
	}
	bookings.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)
	rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{ID: 101, HomestayID: 10}, nil)
	checker.On("Check", mock.Anything, mock.MatchedBy(func(req availability.CheckRequest) bool {
		return req.ExcludeBookingID == 42
	})).Return(&availability.Decision{OK: true}, nil)
	bookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyBookingChanged", int64(10), int64(101), int64(42), "updated").Return()

	// Saving the booking over its own dates must not conflict with itself.
	b, err := service.Update(context.Background(), 10, 42, UpdateBookingRequest{})

	assert.NoError(t, err)
	assert.Equal(t, d(2025, 10, 7), b.StartDate)
	checker.AssertExpectations(t)
}

func TestUpdate_MergesPatchFields(t *testing.T) {
	service, bookings, rooms, checker, _, notifs := newServiceForTest()

	existing := &domain.Booking{
		ID: 42, RoomID: 101, GuestName: "Jane",
		StartDate: d(2025, 10, 7), EndDate: d(2025, 10, 10),
		Status: domain.BookingConfirmed,
	}
	bookings.On("GetByID", mock.Anything, int64(42)).Return(existing, nil)
	rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{ID: 101, HomestayID: 10}, nil)
	checker.On("Check", mock.Anything, mock.Anything).Return(&availability.Decision{OK: true}, nil)
	bookings.On("Update", mock.Anything, mock.Anything).Return(nil)
	notifs.On("NotifyBookingChanged", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return()

	newEnd := "2025-10-11"
	newStatus := "checked_in"
	b, err := service.Update(context.Background(), 10, 42, UpdateBookingRequest{
		EndDate: &newEnd,
		Status:  &newStatus,
	})

	assert.NoError(t, err)
	assert.Equal(t, d(2025, 10, 11), b.EndDate)
	assert.Equal(t, domain.BookingCheckedIn, b.Status)
	assert.Equal(t, "Jane", b.GuestName)
}

func TestList_RunsSweeperFirst(t *testing.T) {
	service, bookings, _, _, sweeper, _ := newServiceForTest()

	sweeper.On("RunQuietly", mock.Anything).Return()
	bookings.On("ListForHomestay", mock.Anything, int64(10), mock.Anything).Return([]domain.Booking{}, nil)

	_, err := service.List(context.Background(), 10, ListFilter{})

	assert.NoError(t, err)
	sweeper.AssertExpectations(t)
}

func TestDelete_ScopedToHomestay(t *testing.T) {
	service, bookings, rooms, _, _, _ := newServiceForTest()

	bookings.On("GetByID", mock.Anything, int64(42)).Return(&domain.Booking{ID: 42, RoomID: 101}, nil)
	rooms.On("GetByID", mock.Anything, int64(101)).Return(&domain.Room{ID: 101, HomestayID: 77}, nil)

	err := service.Delete(context.Background(), 10, 42)
	assert.ErrorIs(t, err, ErrNotFound)
	bookings.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	service, _, _, _, _, _ := newServiceForTest()

	_, err := service.UpdateStatus(context.Background(), 10, 42, "gone")
	assert.ErrorIs(t, err, ErrValidation)
}
