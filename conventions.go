package realip

import (
	"net/netip"
	"strings"
)

// Convention identifies one supported client IP header convention.
type Convention int

const (
	// Start at 1 to avoid zero-value confusion and make invalid conventions
	// explicit.
	//
	// ConventionCFConnectingIP is Cloudflare's CF-Connecting-IP header.
	ConventionCFConnectingIP Convention = iota + 1
	// ConventionTrueClientIP is the True-Client-IP header set by Akamai and
	// Cloudflare Enterprise.
	ConventionTrueClientIP
	// ConventionXRealIP is the X-Real-IP header set by Nginx.
	ConventionXRealIP
	// ConventionFlyClientIP is Fly.io's Fly-Client-IP header.
	ConventionFlyClientIP
	// ConventionCloudFrontViewerAddress is AWS CloudFront's
	// CloudFront-Viewer-Address header.
	ConventionCloudFrontViewerAddress
	// ConventionXForwardedFor is the de-facto X-Forwarded-For header.
	ConventionXForwardedFor

	conventionForwarded

	conventionCount = conventionForwarded
)

type extractFunc func(HeaderValues) (netip.Addr, error)

type conventionEntry struct {
	field   headerField
	source  string
	policy  selectionPolicy
	extract extractFunc
}

var (
	cfConnectingIPField          = headerField{name: "CF-Connecting-IP", key: "Cf-Connecting-Ip"}
	trueClientIPField            = headerField{name: "True-Client-IP", key: "True-Client-Ip"}
	xRealIPField                 = headerField{name: "X-Real-IP", key: "X-Real-Ip"}
	flyClientIPField             = headerField{name: "Fly-Client-IP", key: "Fly-Client-Ip"}
	cloudFrontViewerAddressField = headerField{name: "CloudFront-Viewer-Address", key: "Cloudfront-Viewer-Address"}
	xForwardedForField           = headerField{name: "X-Forwarded-For", key: "X-Forwarded-For"}
	forwardedField               = headerField{name: "Forwarded", key: "Forwarded"}
)

// conventionTable fixes header, selection policy and decoder per convention.
// Index 0 is unused.
var conventionTable = [conventionCount + 1]conventionEntry{
	ConventionCFConnectingIP:          {field: cfConnectingIPField, source: "cf_connecting_ip", policy: requireSingle, extract: CFConnectingIP},
	ConventionTrueClientIP:            {field: trueClientIPField, source: "true_client_ip", policy: requireSingle, extract: TrueClientIP},
	ConventionXRealIP:                 {field: xRealIPField, source: "x_real_ip", policy: requireSingle, extract: XRealIP},
	ConventionFlyClientIP:             {field: flyClientIPField, source: "fly_client_ip", policy: requireSingle, extract: FlyClientIP},
	ConventionCloudFrontViewerAddress: {field: cloudFrontViewerAddressField, source: "cloudfront_viewer_address", policy: takeLast, extract: CloudFrontViewerAddress},
	ConventionXForwardedFor:           {field: xForwardedForField, source: "x_forwarded_for", policy: takeLast, extract: RightmostXForwardedFor},
	conventionForwarded:               {field: forwardedField, source: "forwarded", policy: takeLast, extract: forwardedExtractor},
}

// CFConnectingIP extracts the client IP from the CF-Connecting-IP
// (Cloudflare) header.
func CFConnectingIP(h HeaderValues) (netip.Addr, error) {
	return ipFromSingleHeader(h, cfConnectingIPField)
}

// TrueClientIP extracts the client IP from the True-Client-IP (Akamai,
// Cloudflare) header.
func TrueClientIP(h HeaderValues) (netip.Addr, error) {
	return ipFromSingleHeader(h, trueClientIPField)
}

// XRealIP extracts the client IP from the X-Real-IP (Nginx) header.
func XRealIP(h HeaderValues) (netip.Addr, error) {
	return ipFromSingleHeader(h, xRealIPField)
}

// FlyClientIP extracts the client IP from the Fly-Client-IP (Fly.io) header.
//
// Fly.io health checks do not carry the header; configure it through the
// check's headers setting when the extractor runs on a health check path.
func FlyClientIP(h HeaderValues) (netip.Addr, error) {
	return ipFromSingleHeader(h, flyClientIPField)
}

// CloudFrontViewerAddress extracts the client IP from the last
// CloudFront-Viewer-Address (AWS CloudFront) header, whose value has the
// form "ip:port".
func CloudFrontViewerAddress(h HeaderValues) (netip.Addr, error) {
	value, err := selectHeaderValue(h, cloudFrontViewerAddressField, takeLast)
	if err != nil {
		return netip.Addr{}, err
	}

	return parseTrailingPortIP(cloudFrontViewerAddressField, value)
}

// RightmostXForwardedFor extracts the rightmost IP address from the
// comma-separated list in the last X-Forwarded-For header.
func RightmostXForwardedFor(h HeaderValues) (netip.Addr, error) {
	value, err := selectHeaderValue(h, xForwardedForField, takeLast)
	if err != nil {
		return netip.Addr{}, err
	}

	return parseRightmostListIP(xForwardedForField, value)
}

// ipFromSingleHeader parses a header that must occur exactly once.
func ipFromSingleHeader(h HeaderValues, field headerField) (netip.Addr, error) {
	value, err := selectHeaderValue(h, field, requireSingle)
	if err != nil {
		return netip.Addr{}, err
	}

	return parseWholeIP(field, value)
}

// Conventions returns every convention compiled into this build, in
// declaration order.
func Conventions() []Convention {
	conventions := make([]Convention, 0, conventionCount)
	for c := ConventionCFConnectingIP; c <= conventionCount; c++ {
		if c.valid() {
			conventions = append(conventions, c)
		}
	}
	return conventions
}

// ParseConvention resolves a convention from its source name (for example
// "x_forwarded_for") or its header name (for example "X-Forwarded-For"),
// case-insensitively.
func ParseConvention(name string) (Convention, bool) {
	normalized := NormalizeSourceName(strings.TrimSpace(name))
	for _, c := range Conventions() {
		if conventionTable[c].source == normalized {
			return c, true
		}
	}
	return 0, false
}

// NormalizeSourceName lower-cases a header name and replaces dashes with
// underscores, producing the source name used in logs and metrics.
func NormalizeSourceName(headerName string) string {
	return strings.ToLower(strings.ReplaceAll(headerName, "-", "_"))
}

// String returns the source name of c, for example "cf_connecting_ip".
func (c Convention) String() string {
	if !c.known() {
		return "unknown"
	}
	return conventionTable[c].source
}

// Header returns the header name c reads, for example "CF-Connecting-IP".
func (c Convention) Header() string {
	if !c.known() {
		return ""
	}
	return conventionTable[c].field.name
}

// Extract runs the extractor function of c against h.
//
// An invalid convention, including one compiled out of this build, reports
// ErrAbsentHeader with an empty header name.
func (c Convention) Extract(h HeaderValues) (netip.Addr, error) {
	if !c.valid() {
		return netip.Addr{}, absentHeaderError("")
	}
	return conventionTable[c].extract(h)
}

func (c Convention) policy() selectionPolicy {
	return conventionTable[c].policy
}

// known reports whether c is in range, whether or not it is compiled in.
func (c Convention) known() bool {
	return c >= ConventionCFConnectingIP && c <= conventionCount
}

// valid reports whether c is in range and its extractor is compiled in.
func (c Convention) valid() bool {
	return c.known() && conventionTable[c].extract != nil
}
