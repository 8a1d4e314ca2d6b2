// internal/common/metrics/metrics.go
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	EventsReceived = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_bot_events_received_total",
			Help: "Total number of inbound chat events by kind",
		},
		[]string{"kind"},
	)

	EventsFailed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_bot_events_failed_total",
			Help: "Total number of inbound events whose handling failed",
		},
		[]string{"error_code"},
	)

	EventDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "visa_bot_event_duration_seconds",
			Help:    "Duration of event handling in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"kind"},
	)

	FormStepsCompleted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_bot_form_steps_completed_total",
			Help: "Total number of questionnaire answers accepted per step",
		},
		[]string{"step"},
	)

	FormsCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "visa_bot_forms_cancelled_total",
			Help: "Total number of questionnaires cancelled before completion",
		},
	)

	PaymentsReported = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "visa_bot_payments_reported_total",
			Help: "Total number of applicant payment claims",
		},
	)

	PaymentsConfirmed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_bot_payments_confirmed_total",
			Help: "Total number of admin payment confirmations by path",
		},
		[]string{"path"},
	)

	FormsCompleted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "visa_bot_forms_completed_total",
			Help: "Total number of questionnaires completed through the photo step",
		},
	)

	ButtonAcks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_bot_button_acks_total",
			Help: "Total number of button press acknowledgements by outcome",
		},
		[]string{"outcome"},
	)

	OutboundSends = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_bot_outbound_sends_total",
			Help: "Total number of outbound transport calls by operation and outcome",
		},
		[]string{"operation", "outcome"},
	)

	FileForwardFallbacks = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "visa_bot_file_forward_fallbacks_total",
			Help: "Total number of file forwards that needed the alternate kind",
		},
		[]string{"primary"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "visa_bot_api_request_duration_seconds",
			Help:    "Duration of Bot API HTTP requests by method and status",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "status"},
	)
)
