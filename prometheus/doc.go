// Package prometheus provides a Prometheus adapter for
// github.com/abczzz13/realip.
//
// Counters:
//
//	realip_extraction_total{source, result}       result is "success" or "failure"
//	realip_security_events_total{event}
//
// WithMetrics and WithRegisterer return realip options; New and
// NewWithRegisterer build the Metrics value directly.
package prometheus
