package realip

import "net/http"

// SecurityMode controls fallback behavior after a present header fails to
// yield an address.
type SecurityMode int

const (
	// SecurityModeStrict fails closed: only an absent header falls through to
	// the next convention.
	SecurityModeStrict SecurityMode = iota + 1
	// SecurityModeLax falls through to the next convention on any failure.
	SecurityModeLax
)

// String returns the canonical text representation of m.
func (m SecurityMode) String() string {
	switch m {
	case SecurityModeStrict:
		return "strict"
	case SecurityModeLax:
		return "lax"
	default:
		return "unknown"
	}
}

// valid reports whether m is a supported security mode.
func (m SecurityMode) valid() bool {
	return m == SecurityModeStrict || m == SecurityModeLax
}

// Option configures an Extractor.
//
// Construct options using package-provided option builder functions.
type Option func(*config) error

// config holds extractor configuration state.
//
// It is mutated by Option functions during construction only.
type config struct {
	priority     []Convention
	securityMode SecurityMode

	logger  Logger
	metrics Metrics

	metricsFactory    func() (Metrics, error)
	useMetricsFactory bool

	// failureHandler answers requests the middleware could not resolve. Nil
	// passes them through to the next handler.
	failureHandler http.Handler
}

func defaultConfig() *config {
	return &config{
		securityMode: SecurityModeStrict,
		logger:       noopLogger{},
		metrics:      noopMetrics{},
	}
}

func applyOptions(c *config, opts ...Option) error {
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		if err := opt(c); err != nil {
			return err
		}
	}

	return nil
}

func configFromOptions(opts ...Option) (*config, error) {
	cfg := defaultConfig()

	if err := applyOptions(cfg, opts...); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	// The factory runs only once the rest of the configuration is known to be
	// valid, so a rejected config never registers collectors.
	if cfg.useMetricsFactory {
		metrics, err := cfg.metricsFactory()
		if err != nil {
			return nil, err
		}
		cfg.metrics = metrics

		if isNilMetrics(cfg.metrics) {
			return nil, errNilMetrics
		}
	}

	return cfg, nil
}

func cloneConventions(conventions []Convention) []Convention {
	if conventions == nil {
		return nil
	}
	cloned := make([]Convention, len(conventions))
	copy(cloned, conventions)
	return cloned
}
