package realip

import (
	"errors"
)

const (
	securityEventMultipleHeaders     = "multiple_headers"
	securityEventNonASCIIHeader      = "non_ascii_header"
	securityEventMalformedHeader     = "malformed_header"
	securityEventForwardedNoFor      = "forwarded_no_for"
	securityEventForwardedObfuscated = "forwarded_obfuscated"
	securityEventForwardedUnknown    = "forwarded_unknown"
)

// securityEventDetails maps an extraction error to its security event and
// log message. Absent headers are not security events.
func securityEventDetails(err error) (event, msg string, ok bool) {
	switch {
	case errors.Is(err, ErrSingleHeaderRequired):
		return securityEventMultipleHeaders, "multiple single-IP headers received - possible spoofing attempt", true
	case errors.Is(err, ErrNonASCIIHeaderValue):
		return securityEventNonASCIIHeader, "header value contains non-ASCII bytes", true
	case errors.Is(err, ErrMalformedHeaderValue):
		return securityEventMalformedHeader, "malformed client IP header received", true
	default:
		return forwardedEventDetails(err)
	}
}
