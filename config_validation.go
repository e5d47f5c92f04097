package realip

import (
	"errors"
	"fmt"
	"reflect"
)

var errNilMetrics = errors.New("metrics cannot be nil")

func (c *config) validate() error {
	if !c.securityMode.valid() {
		return fmt.Errorf("invalid security mode %d (must be SecurityModeStrict=1 or SecurityModeLax=2)", c.securityMode)
	}
	if len(c.priority) == 0 {
		return fmt.Errorf("at least one convention required in priority list")
	}

	if err := c.validatePriority(); err != nil {
		return err
	}

	if isNilLogger(c.logger) {
		return fmt.Errorf("logger cannot be nil")
	}
	if c.useMetricsFactory {
		if c.metricsFactory == nil {
			return fmt.Errorf("metrics factory cannot be nil")
		}
	} else if isNilMetrics(c.metrics) {
		return errNilMetrics
	}
	return nil
}

func (c *config) validatePriority() error {
	seen := make(map[Convention]struct{}, len(c.priority))

	for _, convention := range c.priority {
		if !convention.valid() {
			return fmt.Errorf("unsupported convention %d", int(convention))
		}

		if _, ok := seen[convention]; ok {
			return fmt.Errorf("duplicate convention %q in priority list", convention)
		}
		seen[convention] = struct{}{}
	}

	_, seenXFF := seen[ConventionXForwardedFor]
	_, seenForwarded := seen[conventionForwarded]
	if seenForwarded && seenXFF {
		return fmt.Errorf("priority cannot include both %q and %q; choose one proxy chain header", conventionForwarded, ConventionXForwardedFor)
	}

	return nil
}

func isNilLogger(logger Logger) bool {
	return isNilInterface(logger)
}

func isNilMetrics(metrics Metrics) bool {
	return isNilInterface(metrics)
}

func isNilInterface(v any) bool {
	if v == nil {
		return true
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Chan, reflect.Func, reflect.Interface, reflect.Map, reflect.Pointer, reflect.Slice:
		return rv.IsNil()
	default:
		return false
	}
}
