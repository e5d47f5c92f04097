// Package realip extracts the client IP address from the header set by a
// specific CDN or reverse proxy.
//
// Each supported convention has its own header, its own rule for repeated
// headers and its own value syntax. The package never guesses between them:
// callers pick the convention that matches their deployment.
//
// # Conventions
//
//   - CFConnectingIP: CF-Connecting-IP (Cloudflare); must occur once
//   - TrueClientIP: True-Client-IP (Akamai, Cloudflare); must occur once
//   - XRealIP: X-Real-IP (Nginx); must occur once
//   - FlyClientIP: Fly-Client-IP (Fly.io); must occur once
//   - CloudFrontViewerAddress: CloudFront-Viewer-Address (AWS CloudFront);
//     last occurrence, "ip:port"
//   - RightmostXForwardedFor: X-Forwarded-For; last occurrence, rightmost
//     list entry
//   - RightmostForwarded: RFC 7239 Forwarded; last occurrence, last stanza
//
// A single-occurrence header that repeats is an upstream misconfiguration
// and fails with ErrSingleHeaderRequired. For the other conventions only the
// last occurrence, written by the nearest proxy, is read.
//
// Forwarded support can be compiled out with the realip_noforwarded build
// tag, which removes RightmostForwarded, ConventionForwarded, ForwardedError
// and the Forwarded error sentinels.
//
// # Basic Usage
//
// The extractor functions are pure and take any HeaderValues, including
// http.Header:
//
//	ip, err := realip.CFConnectingIP(req.Header)
//	if err != nil {
//	    // realip.ErrAbsentHeader, realip.ErrMalformedHeaderValue, ...
//	}
//
// # Extractor
//
// Extractor tries a priority list of conventions and adds logging and
// metrics:
//
//	extractor, err := realip.New(
//	    realip.Priority(realip.ConventionXRealIP, realip.ConventionXForwardedFor),
//	    realip.WithLogger(slog.Default()),
//	)
//
//	extraction, err := extractor.Extract(req)
//
// An absent header always falls through to the next convention. Any other
// failure stops under SecurityModeStrict (the default) and falls through
// under SecurityModeLax.
//
// Middleware stores the result in the request context:
//
//	handler := extractor.Middleware(mux)
//	// in a handler:
//	extraction, ok := realip.FromContext(r.Context())
//
// # Observability
//
// The logger receives the request context, so trace and span IDs flow
// through. Adapters live in github.com/abczzz13/realip/prometheus and
// github.com/abczzz13/realip/zaplog.
//
// # Security Considerations
//
// The package trusts the configured header shape and nothing else. Make sure
// only your proxy can reach the application, or that the proxy overwrites
// the header, before relying on the result.
package realip
