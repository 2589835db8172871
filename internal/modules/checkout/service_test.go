package checkout

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/netfirms/staycal/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockBookingStore struct {
	mock.Mock
}

func (m *MockBookingStore) CheckoutPastDue(ctx context.Context, today time.Time, statuses []domain.BookingStatus) (int64, error) {
	args := m.Called(ctx, today, statuses)
	return args.Get(0).(int64), args.Error(1)
}

func TestRun_SweepsActiveStatusesOnly(t *testing.T) {
	store := new(MockBookingStore)
	today := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	store.On("CheckoutPastDue", mock.Anything, today, domain.ActiveStatuses).Return(int64(3), nil)

	service := NewService(store)
	n, err := service.Run(context.Background(), today)

	assert.NoError(t, err)
	assert.Equal(t, int64(3), n)
	store.AssertExpectations(t)
}

func TestRun_SecondRunSameDayAffectsNothing(t *testing.T) {
	store := new(MockBookingStore)
	today := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	store.On("CheckoutPastDue", mock.Anything, today, domain.ActiveStatuses).Return(int64(2), nil).Once()
	store.On("CheckoutPastDue", mock.Anything, today, domain.ActiveStatuses).Return(int64(0), nil).Once()

	service := NewService(store)

	first, err := service.Run(context.Background(), today)
	assert.NoError(t, err)
	assert.Equal(t, int64(2), first)

	second, err := service.Run(context.Background(), today)
	assert.NoError(t, err)
	assert.Equal(t, int64(0), second)
}

func TestRun_NormalizesTodayToDate(t *testing.T) {
	store := new(MockBookingStore)
	noon := time.Date(2025, 1, 2, 12, 30, 0, 0, time.UTC)
	midnight := time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC)

	store.On("CheckoutPastDue", mock.Anything, midnight, domain.ActiveStatuses).Return(int64(0), nil)

	service := NewService(store)
	_, err := service.Run(context.Background(), noon)

	assert.NoError(t, err)
	store.AssertExpectations(t)
}

func TestRun_StoreErrorPropagates(t *testing.T) {
	store := new(MockBookingStore)
	store.On("CheckoutPastDue", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("database is locked"))

	service := NewService(store)
	_, err := service.Run(context.Background(), time.Date(2025, 1, 2, 0, 0, 0, 0, time.UTC))

	assert.Error(t, err)
}

func TestRunQuietly_SwallowsErrors(t *testing.T) {
	store := new(MockBookingStore)
	store.On("CheckoutPastDue", mock.Anything, mock.Anything, mock.Anything).
		Return(int64(0), errors.New("database is locked"))

	service := NewService(store)
	assert.NotPanics(t, func() {
		service.RunQuietly(context.Background())
	})
}
