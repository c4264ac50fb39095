package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	checkIns = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gympass_check_ins_total",
			Help: "Check-in attempts by outcome",
		},
		[]string{"outcome"},
	)

	validations = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gympass_check_in_validations_total",
			Help: "Check-in validation attempts by outcome",
		},
		[]string{"outcome"},
	)

	authentications = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "gympass_authentications_total",
			Help: "Login attempts by outcome",
		},
		[]string{"outcome"},
	)

	registrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "gympass_registrations_total",
			Help: "Successfully registered users",
		},
	)
)

// Outcome labels
const (
	OutcomeSuccess       = "success"
	OutcomeNotFound      = "not_found"
	OutcomeTooFar        = "too_far"
	OutcomeAlreadyToday  = "already_checked_in"
	OutcomeLate          = "late"
	OutcomeInvalid       = "invalid_credentials"
	OutcomeInternalError = "error"
)

func init() {
	prometheus.MustRegister(checkIns, validations, authentications, registrations)
}

func RecordCheckIn(outcome string) {
	checkIns.WithLabelValues(outcome).Inc()
}

func RecordValidation(outcome string) {
	validations.WithLabelValues(outcome).Inc()
}

func RecordAuthentication(outcome string) {
	authentications.WithLabelValues(outcome).Inc()
}

func RecordRegistration() {
	registrations.Inc()
}
