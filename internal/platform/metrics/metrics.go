package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics for the application.
type Metrics struct {
	PersonsCreated       prometheus.Counter
	RelayBatches         prometheus.Counter
	EventsPublished      prometheus.Counter
	MutationsSkipped     prometheus.Counter
	RelayDecodeFailures  prometheus.Counter
	RelayPublishFailures prometheus.Counter
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		PersonsCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "person_service_persons_created_total",
			Help: "Total number of person records created",
		}),
		RelayBatches: promauto.NewCounter(prometheus.CounterOpts{
			Name: "person_service_relay_batches_total",
			Help: "Total number of change-stream batches the relay processed",
		}),
		EventsPublished: promauto.NewCounter(prometheus.CounterOpts{
			Name: "person_service_relay_events_published_total",
			Help: "Total number of person-created events published to the bus",
		}),
		MutationsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "person_service_relay_mutations_skipped_total",
			Help: "Total number of non-insert mutations the relay dropped",
		}),
		RelayDecodeFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "person_service_relay_decode_failures_total",
			Help: "Total number of record images the relay failed to decode",
		}),
		RelayPublishFailures: promauto.NewCounter(prometheus.CounterOpts{
			Name: "person_service_relay_publish_failures_total",
			Help: "Total number of failed bus publish calls",
		}),
	}
}
