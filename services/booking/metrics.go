package booking

import (
	"errors"
	"time"

	"agendamento/utils"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Submission outcomes.
const (
	OutcomeCreated            = "created"
	OutcomeBadRequest         = "bad_request"
	OutcomePersistenceFailure = "persistence_failure"
)

var (
	BookingSubmissions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "booking_submissions_total",
			Help: "Total number of booking submissions by outcome",
		},
		[]string{"outcome"},
	)

	BookingSubmitDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "booking_submit_duration_seconds",
			Help: "Duration of booking submissions in seconds",
		},
		[]string{"outcome"},
	)

	OrphansSwept = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "booking_orphans_swept_total",
			Help: "Total number of appointments deleted because they had no service links",
		},
	)
)

// Outcome classifies the error returned by Submit.
func Outcome(err error) string {
	var verr *utils.ValidationError
	switch {
	case err == nil:
		return OutcomeCreated
	case errors.As(err, &verr):
		return OutcomeBadRequest
	default:
		return OutcomePersistenceFailure
	}
}

func observe(err error, started time.Time) {
	outcome := Outcome(err)
	BookingSubmissions.WithLabelValues(outcome).Inc()
	BookingSubmitDuration.WithLabelValues(outcome).Observe(time.Since(started).Seconds())
}
