//go:build realip_noforwarded

package realip

// forwardedExtractor is nil when Forwarded support is compiled out, which
// keeps the Forwarded convention out of Conventions and ParseConvention.
var forwardedExtractor extractFunc

func forwardedEventDetails(error) (event, msg string, ok bool) {
	return "", "", false
}

func forwardedLogAttrs(error) []any {
	return nil
}
