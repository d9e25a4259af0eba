package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Check-in flow labels.
const (
	FlowSelf   = "self"
	FlowManual = "manual"
)

// Check-in outcome labels.
const (
	OutcomeSuccess      = "success"
	OutcomeAlreadyIn    = "already_checked_in"
	OutcomeWindowClosed = "window_closed"
	OutcomeInvalidToken = "invalid_token"
	OutcomeNotFound     = "not_found"
	OutcomeError        = "error"
)

var (
	checkInAttempts = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "clubportal_checkin_attempts_total",
			Help: "Check-in attempts by flow and outcome",
		},
		[]string{"flow", "outcome"},
	)

	uncheckIns = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "clubportal_uncheckins_total",
			Help: "Attendance records removed by admins",
		},
	)
)

// RecordCheckIn increments the attempt counter for a flow/outcome pair.
func RecordCheckIn(flow, outcome string) {
	checkInAttempts.WithLabelValues(flow, outcome).Inc()
}

// RecordUncheckIn increments the uncheck-in counter.
func RecordUncheckIn() {
	uncheckIns.Inc()
}
