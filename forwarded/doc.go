// Package forwarded parses RFC 7239 Forwarded header values.
//
// A header value is a comma-separated list of elements, one per proxy hop,
// each holding semicolon-separated name=value pairs:
//
//	Forwarded: for=192.0.2.60;proto=http;by=203.0.113.43, for="[2001:db8::1]:4711"
//
// Parse returns one Stanza per element. The for and by parameters are decoded
// into an Identifier, a closed set of node forms (SocketAddr, IPAddr,
// Obfuscated, Unknown) meant to be handled with an exhaustive type switch.
//
// The package performs no trust decisions; choosing which hop to believe is
// the caller's job.
package forwarded
