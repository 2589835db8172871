// Package checkout advances past-due stays to checked_out. There is no
// scheduler: callers run the sweep opportunistically before reads, and a
// failed sweep only means slightly stale statuses.
package checkout

import (
	"context"
	"log"
	"time"

	"github.com/netfirms/staycal/internal/domain"
	"github.com/netfirms/staycal/internal/interval"
	"github.com/netfirms/staycal/internal/metrics"
)

type BookingStore interface {
	CheckoutPastDue(ctx context.Context, today time.Time, statuses []domain.BookingStatus) (int64, error)
}

type Service struct {
	bookings BookingStore
}

func NewService(bookings BookingStore) *Service {
	return &Service{bookings: bookings}
}

// Run transitions every booking with end_date < today and an active status
// to checked_out, in one batch. Idempotent: a second run on the same day
// affects zero rows. cancelled and checked_out are never touched.
func (s *Service) Run(ctx context.Context, today time.Time) (int64, error) {
	if today.IsZero() {
		today = time.Now().UTC()
	}
	n, err := s.bookings.CheckoutPastDue(ctx, interval.DateOf(today), domain.ActiveStatuses)
	if err != nil {
		return 0, err
	}
	metrics.AddAutoCheckouts(n)
	return n, nil
}

// RunQuietly is the read-path entry point: sweep failures are logged and
// swallowed so a listing request proceeds with stale status data instead
// of failing.
func (s *Service) RunQuietly(ctx context.Context) {
	if _, err := s.Run(ctx, time.Time{}); err != nil {
		log.Printf("auto_checkout sweep_failed err=%v", err)
	}
}
