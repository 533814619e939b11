package metrics

import "github.com/prometheus/client_golang/prometheus"

var (
	// TimeSavedMinutesTotal counts minutes logged to the time saved ledger
	TimeSavedMinutesTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "expiestack",
		Name:      "time_saved_minutes_total",
		Help:      "Minutes saved logged to the ledger, by action type.",
	}, []string{"action_type"})

	// CannedResponseUsesTotal counts canned response usage increments
	CannedResponseUsesTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "expiestack",
		Name:      "canned_response_uses_total",
		Help:      "Canned responses used.",
	})

	// AutomationRunsTotal counts manual automation runs
	AutomationRunsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "expiestack",
		Name:      "automation_runs_total",
		Help:      "Automations run.",
	})

	// IntegrationCallsTotal counts calls to the AI and Slack capabilities
	IntegrationCallsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "expiestack",
		Name:      "integration_calls_total",
		Help:      "Calls to external integrations, by integration, operation and outcome.",
	}, []string{"integration", "operation", "outcome"})

	// IntegrationDurationSeconds observes integration latency
	IntegrationDurationSeconds = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "expiestack",
		Name:      "integration_duration_seconds",
		Help:      "Duration of integration calls.",
		Buckets:   []float64{0.01, 0.1, 0.5, 1, 2, 5},
	}, []string{"integration", "operation"})
)

// MustRegister registers every collector with reg
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		TimeSavedMinutesTotal,
		CannedResponseUsesTotal,
		AutomationRunsTotal,
		IntegrationCallsTotal,
		IntegrationDurationSeconds,
	)
}
