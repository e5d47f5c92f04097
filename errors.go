package realip

import (
	"errors"
	"fmt"
)

var (
	// ErrAbsentHeader reports that the convention's header was not present.
	ErrAbsentHeader = errors.New("missing required header")

	// ErrNonASCIIHeaderValue reports that a selected header value contains
	// bytes outside visible ASCII and whitespace.
	ErrNonASCIIHeaderValue = errors.New("header value contains non-ASCII characters")

	// ErrSingleHeaderRequired reports that a header expected to occur once
	// occurred more than once.
	//
	// RFC 9110 Section 5.3: a sender must not generate multiple field lines
	// with the same name unless the field is defined as a comma-separated
	// list. A repeated single-value header is treated as an upstream proxy
	// misconfiguration.
	ErrSingleHeaderRequired = errors.New("multiple occurrences of the header aren't allowed")

	// ErrMalformedHeaderValue reports that the header value does not match
	// the convention's syntax.
	ErrMalformedHeaderValue = errors.New("malformed header value")
)

// ExtractionError is returned for every failed extraction. Err is one of the
// package sentinels and Header names the header that was inspected.
type ExtractionError struct {
	Err    error
	Header string
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Header)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// HeaderName returns the header the error refers to.
func (e *ExtractionError) HeaderName() string {
	return e.Header
}

// MalformedValueError carries the offending header value of an
// ErrMalformedHeaderValue failure.
type MalformedValueError struct {
	ExtractionError
	Value string
}

func (e *MalformedValueError) Error() string {
	return fmt.Sprintf("%v for %q: %s", e.Err, e.Header, e.Value)
}

func absentHeaderError(header string) error {
	return &ExtractionError{Err: ErrAbsentHeader, Header: header}
}

func nonASCIIHeaderError(header string) error {
	return &ExtractionError{Err: ErrNonASCIIHeaderValue, Header: header}
}

func singleHeaderRequiredError(header string) error {
	return &ExtractionError{Err: ErrSingleHeaderRequired, Header: header}
}

func malformedValueError(header, value string) error {
	return &MalformedValueError{
		ExtractionError: ExtractionError{Err: ErrMalformedHeaderValue, Header: header},
		Value:           value,
	}
}
