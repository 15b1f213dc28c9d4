package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classbook_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "classbook_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	ReservationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classbook_reservations_total",
			Help: "Total number of reservation attempts by outcome",
		},
		[]string{"outcome"},
	)

	ReservationPriceCents = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "classbook_reservation_price_cents",
			Help:    "Price charged at admission in cents",
			Buckets: []float64{7000, 8000, 10000, 11000, 12500, 14000, 16000},
		},
	)

	CancellationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "classbook_cancellations_total",
			Help: "Total number of reservation cancellations",
		},
	)

	RefundedCentsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "classbook_refunded_cents_total",
			Help: "Total cents refunded on cancellation",
		},
	)

	EmailsSentTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "classbook_emails_sent_total",
			Help: "Total number of emails sent",
		},
		[]string{"type", "status"},
	)

	EmailQueueLength = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "classbook_email_queue_length",
			Help: "Current length of email queue",
		},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordReservation counts one admission attempt. outcome is "created" or
// the rejection kind (member_not_found, class_full, ...).
func RecordReservation(outcome string) {
	ReservationsTotal.WithLabelValues(outcome).Inc()
}

func RecordReservationPrice(priceCents int64) {
	ReservationPriceCents.Observe(float64(priceCents))
}

func RecordCancellation(refundCents int64) {
	CancellationsTotal.Inc()
	RefundedCentsTotal.Add(float64(refundCents))
}

func RecordEmail(emailType, status string) {
	EmailsSentTotal.WithLabelValues(emailType, status).Inc()
}
