package realip

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/netip"
)

// Extractor resolves the client IP by trying a fixed priority list of header
// conventions.
//
// Extractor instances are immutable and safe for concurrent reuse.
type Extractor struct {
	config *config
}

// Extraction is the outcome of a successful extraction.
type Extraction struct {
	IP netip.Addr

	// Source is the source name of the convention that produced IP, for
	// example "cf_connecting_ip".
	Source string

	Convention Convention
}

// New creates an Extractor from one or more Option builders. A priority list
// is required.
func New(opts ...Option) (*Extractor, error) {
	cfg, err := configFromOptions(opts...)
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &Extractor{config: cfg}, nil
}

// Extract resolves the client IP and the convention that supplied it.
//
// Conventions are tried in priority order. An absent header always falls
// through to the next convention; any other failure stops in
// SecurityModeStrict and falls through in SecurityModeLax. When every
// convention fails, the last failure is returned, or the last absent-header
// error when no header was present.
func (e *Extractor) Extract(r *http.Request) (Extraction, error) {
	return e.ExtractFrom(requestInputFromHTTP(r))
}

// ExtractAddr resolves only the client IP address.
func (e *Extractor) ExtractAddr(r *http.Request) (netip.Addr, error) {
	extraction, err := e.Extract(r)
	if err != nil {
		return netip.Addr{}, err
	}

	return extraction.IP, nil
}

// ExtractFrom resolves the client IP from framework-agnostic request input.
func (e *Extractor) ExtractFrom(input RequestInput) (Extraction, error) {
	ctx := requestInputContext(input)

	var lastErr error
	for _, convention := range e.config.priority {
		// Check if context has been cancelled before attempting next convention
		if err := ctx.Err(); err != nil {
			return Extraction{}, err
		}

		ip, err := convention.Extract(input.Headers)
		if err == nil {
			e.config.metrics.RecordExtractionSuccess(convention.String())
			return Extraction{IP: ip, Source: convention.String(), Convention: convention}, nil
		}

		if errors.Is(err, ErrAbsentHeader) {
			if lastErr == nil || errors.Is(lastErr, ErrAbsentHeader) {
				lastErr = err
			}
			continue
		}
		lastErr = err

		e.config.metrics.RecordExtractionFailure(convention.String())
		e.reportSecurityEvent(ctx, input, convention, err)

		if e.config.securityMode == SecurityModeStrict {
			return Extraction{Source: convention.String(), Convention: convention}, err
		}
	}

	return Extraction{}, lastErr
}

// ExtractAddrFrom resolves only the client IP address from framework-agnostic
// request input.
func (e *Extractor) ExtractAddrFrom(input RequestInput) (netip.Addr, error) {
	extraction, err := e.ExtractFrom(input)
	if err != nil {
		return netip.Addr{}, err
	}

	return extraction.IP, nil
}

// ExtractWithOptions is a one-shot convenience helper.
//
// It constructs a temporary extractor from opts and resolves r.
func ExtractWithOptions(r *http.Request, opts ...Option) (Extraction, error) {
	extractor, err := New(opts...)
	if err != nil {
		return Extraction{}, err
	}

	return extractor.Extract(r)
}

// ExtractFromWithOptions is a one-shot convenience helper.
//
// It constructs a temporary extractor from opts and resolves input.
func ExtractFromWithOptions(input RequestInput, opts ...Option) (Extraction, error) {
	extractor, err := New(opts...)
	if err != nil {
		return Extraction{}, err
	}

	return extractor.ExtractFrom(input)
}

func (e *Extractor) reportSecurityEvent(ctx context.Context, input RequestInput, convention Convention, err error) {
	event, msg, ok := securityEventDetails(err)
	if !ok {
		return
	}

	e.config.metrics.RecordSecurityEvent(event)

	attrs := []any{
		"event", event,
		"source", convention.String(),
		"header", convention.Header(),
		"policy", convention.policy().String(),
		"path", input.Path,
		"remote_addr", input.RemoteAddr,
	}

	var malformedErr *MalformedValueError
	if errors.As(err, &malformedErr) {
		attrs = append(attrs, "value", malformedErr.Value)
	}

	attrs = append(attrs, forwardedLogAttrs(err)...)
	e.config.logger.WarnContext(ctx, msg, attrs...)
}
