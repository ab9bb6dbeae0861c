package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"eventregistration/internal/domain"
)

// Metrics holds the Prometheus collectors for registrations and the purge engine.
type Metrics struct {
	RegistrationsCreated *prometheus.CounterVec
	NotificationsFailed  prometheus.Counter
	RegistrationsPurged  *prometheus.CounterVec
	PurgeRuns            *prometheus.CounterVec
}

// New creates the collectors and registers them with reg.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		RegistrationsCreated: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registrations_created_total",
			Help: "Registrations created, by initial status.",
		}, []string{"status"}),
		NotificationsFailed: factory.NewCounter(prometheus.CounterOpts{
			Name: "registration_notifications_failed_total",
			Help: "New-registration manager notifications that could not be delivered.",
		}),
		RegistrationsPurged: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registrations_purged_total",
			Help: "Registrations changed by the purge engine, by pass.",
		}, []string{"pass"}),
		PurgeRuns: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "registration_purge_runs_total",
			Help: "Purge runs, by result.",
		}, []string{"result"}),
	}
}

// ObserveCreated counts a new registration.
func (m *Metrics) ObserveCreated(status domain.Status, notificationFailed bool) {
	m.RegistrationsCreated.WithLabelValues(string(status)).Inc()
	if notificationFailed {
		m.NotificationsFailed.Inc()
	}
}

// ObservePurge implements domain.PurgeMetrics.
func (m *Metrics) ObservePurge(result domain.PurgeResult, err error) {
	m.RegistrationsPurged.WithLabelValues("unsubmitted_deleted").Add(float64(result.UnsubmittedDeleted))
	m.RegistrationsPurged.WithLabelValues("unconfirmed_canceled").Add(float64(result.UnconfirmedCanceled))
	if err != nil {
		m.PurgeRuns.WithLabelValues("error").Inc()
		return
	}
	m.PurgeRuns.WithLabelValues("ok").Inc()
}
