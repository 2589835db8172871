package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	availabilityChecks = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staycal",
			Name:      "availability_checks_total",
			Help:      "Count of availability checks by outcome.",
		},
		[]string{"outcome"},
	)

	otaFetches = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "staycal",
			Name:      "ota_feed_fetch_total",
			Help:      "Count of OTA iCal feed fetch attempts by result.",
		},
		[]string{"result"},
	)

	autoCheckouts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "staycal",
			Name:      "auto_checkout_total",
			Help:      "Count of bookings transitioned to checked_out by the sweeper.",
		},
	)
)

// Register registers metrics (idempotent).
func Register() {
	once.Do(func() {
		prometheus.MustRegister(availabilityChecks, otaFetches, autoCheckouts)
	})
}

func IncAvailabilityCheck(outcome string) {
	availabilityChecks.WithLabelValues(outcome).Inc()
}

func IncOTAFetch(result string) {
	otaFetches.WithLabelValues(result).Inc()
}

func AddAutoCheckouts(n int64) {
	if n > 0 {
		autoCheckouts.Add(float64(n))
	}
}
