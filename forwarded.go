//go:build !realip_noforwarded

package realip

import (
	"errors"
	"fmt"
	"net/netip"

	"github.com/abczzz13/realip/forwarded"
)

var (
	// ErrForwardedNoFor reports that the trusted Forwarded stanza has no for
	// parameter.
	ErrForwardedNoFor = errors.New("forwarded header missing for directive")

	// ErrForwardedObfuscated reports an obfuscated for identifier
	// (RFC 7239 Section 6.3).
	ErrForwardedObfuscated = errors.New("forwarded header contains obfuscated identifier")

	// ErrForwardedUnknown reports the "unknown" for identifier
	// (RFC 7239 Section 6.2).
	ErrForwardedUnknown = errors.New("forwarded header contains unknown identifier")
)

// ConventionForwarded is the RFC 7239 Forwarded header. Builds with the
// realip_noforwarded tag omit it.
const ConventionForwarded = conventionForwarded

// ForwardedError describes a Forwarded header whose trusted stanza does not
// name a usable address.
type ForwardedError struct {
	ExtractionError
	// Value is the full header value.
	Value string
	// Stanza is the raw text of the stanza that was inspected.
	Stanza string
}

func (e *ForwardedError) Error() string {
	return fmt.Sprintf("%v: %s", e.Err, e.Stanza)
}

var forwardedExtractor extractFunc = RightmostForwarded

// RightmostForwarded extracts the client IP from the last stanza of the last
// Forwarded header.
//
// The rightmost stanza was written by the nearest proxy, the only hop whose
// claim is trusted. Ports are discarded; obfuscated and unknown identifiers
// are reported as errors rather than guessed at.
func RightmostForwarded(h HeaderValues) (netip.Addr, error) {
	value, err := selectHeaderValue(h, forwardedField, takeLast)
	if err != nil {
		return netip.Addr{}, err
	}

	return ipFromForwarded(forwardedField, value)
}

func ipFromForwarded(field headerField, value asciiHeaderValue) (netip.Addr, error) {
	stanzas, err := forwarded.Parse(string(value))
	if err != nil || len(stanzas) == 0 {
		return netip.Addr{}, malformedValueError(field.name, string(value))
	}

	stanza := stanzas[len(stanzas)-1]

	switch id := stanza.For.(type) {
	case nil:
		return netip.Addr{}, forwardedError(field, ErrForwardedNoFor, value, stanza)
	case forwarded.SocketAddr:
		return id.AddrPort.Addr(), nil
	case forwarded.IPAddr:
		return id.Addr, nil
	case forwarded.Obfuscated:
		return netip.Addr{}, forwardedError(field, ErrForwardedObfuscated, value, stanza)
	case forwarded.Unknown:
		return netip.Addr{}, forwardedError(field, ErrForwardedUnknown, value, stanza)
	default:
		return netip.Addr{}, malformedValueError(field.name, string(value))
	}
}

func forwardedError(field headerField, err error, value asciiHeaderValue, stanza forwarded.Stanza) error {
	return &ForwardedError{
		ExtractionError: ExtractionError{Err: err, Header: field.name},
		Value:           string(value),
		Stanza:          stanza.Raw,
	}
}

func forwardedEventDetails(err error) (event, msg string, ok bool) {
	switch {
	case errors.Is(err, ErrForwardedNoFor):
		return securityEventForwardedNoFor, "Forwarded header missing for directive", true
	case errors.Is(err, ErrForwardedObfuscated):
		return securityEventForwardedObfuscated, "Forwarded header contains obfuscated identifier", true
	case errors.Is(err, ErrForwardedUnknown):
		return securityEventForwardedUnknown, "Forwarded header contains unknown identifier", true
	default:
		return "", "", false
	}
}

func forwardedLogAttrs(err error) []any {
	var forwardedErr *ForwardedError
	if !errors.As(err, &forwardedErr) {
		return nil
	}

	return []any{"stanza", forwardedErr.Stanza}
}
