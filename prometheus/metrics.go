package prometheus

import (
	"errors"
	"fmt"

	"github.com/abczzz13/realip"
	prom "github.com/prometheus/client_golang/prometheus"
)

const (
	extractionTotalName = "realip_extraction_total"
	securityEventsName  = "realip_security_events_total"
)

// Metrics is a Prometheus-backed implementation of realip.Metrics.
type Metrics struct {
	extractionTotal *prom.CounterVec
	securityEvents  *prom.CounterVec
}

var _ realip.Metrics = (*Metrics)(nil)

// WithMetrics returns a realip option that installs Prometheus-backed
// metrics using prom.DefaultRegisterer.
func WithMetrics() realip.Option {
	return WithRegisterer(prom.DefaultRegisterer)
}

// WithRegisterer returns a realip option that installs Prometheus-backed
// metrics using the provided registerer.
//
// Collectors are registered only once the extractor configuration has been
// validated. If registerer is nil, prom.DefaultRegisterer is used.
func WithRegisterer(registerer prom.Registerer) realip.Option {
	return realip.WithMetricsFactory(func() (realip.Metrics, error) {
		return NewWithRegisterer(registerer)
	})
}

// New creates Metrics and registers its collectors on prom.DefaultRegisterer.
func New() (*Metrics, error) {
	return NewWithRegisterer(prom.DefaultRegisterer)
}

// NewWithRegisterer creates Metrics and registers its collectors on the given
// registerer.
//
// If registerer is nil, prom.DefaultRegisterer is used. If the metrics are
// already registered, existing compatible collectors are reused.
func NewWithRegisterer(registerer prom.Registerer) (*Metrics, error) {
	if registerer == nil {
		registerer = prom.DefaultRegisterer
	}

	extractionTotal, err := registerCounterVec(registerer, prom.NewCounterVec(
		prom.CounterOpts{
			Name: extractionTotalName,
			Help: "Client IP extraction attempts by convention source and result (success, failure). Absent headers are not counted.",
		},
		[]string{"source", "result"},
	), extractionTotalName)
	if err != nil {
		return nil, err
	}

	securityEvents, err := registerCounterVec(registerer, prom.NewCounterVec(
		prom.CounterOpts{
			Name: securityEventsName,
			Help: "Security-relevant header conditions seen during client IP extraction, labeled by event.",
		},
		[]string{"event"},
	), securityEventsName)
	if err != nil {
		return nil, err
	}

	return &Metrics{
		extractionTotal: extractionTotal,
		securityEvents:  securityEvents,
	}, nil
}

func registerCounterVec(registerer prom.Registerer, collector *prom.CounterVec, metricName string) (*prom.CounterVec, error) {
	if err := registerer.Register(collector); err != nil {
		var alreadyRegistered prom.AlreadyRegisteredError
		if errors.As(err, &alreadyRegistered) {
			existing, ok := alreadyRegistered.ExistingCollector.(*prom.CounterVec)
			if ok {
				return existing, nil
			}
			return nil, fmt.Errorf("metric %q already registered with incompatible collector type %T", metricName, alreadyRegistered.ExistingCollector)
		}

		return nil, fmt.Errorf("register metric %q: %w", metricName, err)
	}

	return collector, nil
}

// RecordExtractionSuccess increments realip_extraction_total with
// result="success".
func (m *Metrics) RecordExtractionSuccess(source string) {
	m.extractionTotal.WithLabelValues(source, "success").Inc()
}

// RecordExtractionFailure increments realip_extraction_total with
// result="failure".
func (m *Metrics) RecordExtractionFailure(source string) {
	m.extractionTotal.WithLabelValues(source, "failure").Inc()
}

// RecordSecurityEvent increments realip_security_events_total.
func (m *Metrics) RecordSecurityEvent(event string) {
	m.securityEvents.WithLabelValues(event).Inc()
}
