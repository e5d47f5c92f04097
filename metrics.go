package realip

// Metrics records extraction outcomes and security events emitted by
// Extractor.
//
// Implementations should be safe for concurrent use.
type Metrics interface {
	// RecordExtractionSuccess is called when a convention yields a client IP.
	// source is the convention's source name, for example "x_real_ip".
	RecordExtractionSuccess(source string)
	// RecordExtractionFailure is called when a convention's header is present
	// but does not yield a client IP.
	RecordExtractionFailure(source string)
	// RecordSecurityEvent is called for repeated, non-ASCII, malformed or
	// undisclosed-address headers.
	RecordSecurityEvent(event string)
}

type noopMetrics struct{}

func (noopMetrics) RecordExtractionSuccess(string) {}

func (noopMetrics) RecordExtractionFailure(string) {}

func (noopMetrics) RecordSecurityEvent(string) {}
