package realip

import (
	"fmt"
	"net/http"
)

// Priority sets the conventions tried, in order, by the Extractor.
func Priority(conventions ...Convention) Option {
	conventions = cloneConventions(conventions)

	return func(c *config) error {
		c.priority = cloneConventions(conventions)
		return nil
	}
}

// PriorityNames is Priority with conventions named by source name or header
// name, as accepted by ParseConvention.
func PriorityNames(names ...string) Option {
	return func(c *config) error {
		conventions := make([]Convention, 0, len(names))
		for _, name := range names {
			convention, ok := ParseConvention(name)
			if !ok {
				return fmt.Errorf("unknown convention %q", name)
			}
			conventions = append(conventions, convention)
		}

		c.priority = conventions
		return nil
	}
}

// WithSecurityMode sets strict or lax fallback behavior after failures.
func WithSecurityMode(mode SecurityMode) Option {
	return func(c *config) error {
		c.securityMode = mode
		return nil
	}
}

// WithLogger sets the logger implementation used for warning events.
func WithLogger(logger Logger) Option {
	return func(c *config) error {
		c.logger = logger
		return nil
	}
}

// WithMetrics sets a concrete metrics implementation.
//
// If previously configured, a metrics factory is disabled.
func WithMetrics(metrics Metrics) Option {
	return func(c *config) error {
		c.metrics = metrics
		c.metricsFactory = nil
		c.useMetricsFactory = false
		return nil
	}
}

// WithMetricsFactory configures a lazy metrics constructor.
//
// The factory is invoked only for the final winning metrics option after
// option validation succeeds.
func WithMetricsFactory(factory func() (Metrics, error)) Option {
	return func(c *config) error {
		if factory == nil {
			return fmt.Errorf("metrics factory cannot be nil")
		}

		c.metricsFactory = factory
		c.useMetricsFactory = true
		return nil
	}
}

// WithFailureHandler sets the handler Middleware invokes when no address can
// be extracted. The extraction error is available through ErrorFromContext.
//
// Without one, Middleware calls the next handler and leaves the context
// without an Extraction.
func WithFailureHandler(handler http.Handler) Option {
	return func(c *config) error {
		if handler == nil {
			return fmt.Errorf("failure handler cannot be nil")
		}

		c.failureHandler = handler
		return nil
	}
}
