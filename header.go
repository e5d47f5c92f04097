package realip

import "net/http"

// HeaderValues provides access to request header values by name.
//
// Implementations must return one slice entry per received header line, in
// the order the lines were received, so repeated headers can be told apart
// from a single header.
//
// Header names are requested in canonical MIME format (for example
// "X-Forwarded-For").
//
// net/http's http.Header satisfies this interface directly.
type HeaderValues interface {
	Values(name string) []string
}

// HeaderValuesFunc adapts a function to the HeaderValues interface.
type HeaderValuesFunc func(name string) []string

// Values implements HeaderValues.
func (f HeaderValuesFunc) Values(name string) []string {
	if f == nil {
		return nil
	}

	return f(name)
}

var _ HeaderValues = http.Header(nil)

// selectionPolicy decides which occurrence of a header is trusted.
type selectionPolicy int

const (
	// requireSingle fails unless the header occurs exactly once.
	requireSingle selectionPolicy = iota + 1
	// takeLast trusts only the last occurrence and ignores earlier ones.
	takeLast
)

func (p selectionPolicy) String() string {
	switch p {
	case requireSingle:
		return "require_single"
	case takeLast:
		return "take_last"
	default:
		return "unknown"
	}
}

// headerField names a header both for lookup and for diagnostics.
type headerField struct {
	// name is the conventional spelling used in errors and logs.
	name string
	// key is the canonical MIME form passed to HeaderValues.
	key string
}

// selectHeaderValue returns the trusted occurrence of field under policy,
// validated as ASCII.
func selectHeaderValue(h HeaderValues, field headerField, policy selectionPolicy) (asciiHeaderValue, error) {
	var values []string
	if !isNilInterface(h) {
		values = h.Values(field.key)
	}

	if len(values) == 0 {
		return "", absentHeaderError(field.name)
	}

	if policy == requireSingle && len(values) > 1 {
		return "", singleHeaderRequiredError(field.name)
	}

	// Earlier occurrences are never inspected under takeLast.
	value, ok := validateASCII(values[len(values)-1])
	if !ok {
		return "", nonASCIIHeaderError(field.name)
	}

	return value, nil
}
