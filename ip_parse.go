package realip

import (
	"net/netip"
	"strings"
)

// parseWholeIP parses the whole value as a single IP address.
//
// Only surrounding HTTP whitespace is tolerated: ports, brackets and IPv6
// zones are rejected, so "[::1]" and "1.2.3.4:80" are malformed here.
func parseWholeIP(field headerField, value asciiHeaderValue) (netip.Addr, error) {
	ip, ok := parseAddr(string(value))
	if !ok {
		return netip.Addr{}, malformedValueError(field.name, string(value))
	}

	return ip, nil
}

// parseTrailingPortIP parses "ip:port" where the port follows the last colon.
//
// CloudFront never brackets IPv6 addresses, so splitting at the last colon is
// what separates "1:23:4567:89ab:c:d:e:f:8000" into address and port. The
// port itself is not validated.
func parseTrailingPortIP(field headerField, value asciiHeaderValue) (netip.Addr, error) {
	colon := strings.LastIndexByte(string(value), ':')
	if colon < 0 {
		return netip.Addr{}, malformedValueError(field.name, string(value))
	}

	ip, ok := parseAddr(string(value[:colon]))
	if !ok {
		return netip.Addr{}, malformedValueError(field.name, string(value))
	}

	return ip, nil
}

// parseRightmostListIP parses the last entry of a comma-separated list.
//
// Entries before the last comma are not inspected; only the address
// appended by the nearest proxy is trusted.
func parseRightmostListIP(field headerField, value asciiHeaderValue) (netip.Addr, error) {
	last := string(value)
	if comma := strings.LastIndexByte(last, ','); comma >= 0 {
		last = last[comma+1:]
	}

	ip, ok := parseAddr(last)
	if !ok {
		return netip.Addr{}, malformedValueError(field.name, string(value))
	}

	return ip, nil
}

func parseAddr(s string) (netip.Addr, bool) {
	ip, err := netip.ParseAddr(trimHTTPWhitespace(s))
	if err != nil || ip.Zone() != "" {
		return netip.Addr{}, false
	}

	return ip, true
}
