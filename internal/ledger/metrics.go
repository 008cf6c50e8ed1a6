package ledger

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	metricBookings = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_bookings_total",
		Help: "Total confirmed bookings",
	})

	metricBookRejections = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_booking_rejections_total",
		Help: "Booking attempts rejected because the slot was unavailable",
	})

	metricCancellations = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_cancellations_total",
		Help: "Total cancelled bookings",
	})

	metricCancelMisses = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_cancel_misses_total",
		Help: "Cancellation attempts that matched no booked slot",
	})

	metricBadTimes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "ledger_unparsable_times_total",
		Help: "Book/cancel requests with an unparsable time string",
	})
)
