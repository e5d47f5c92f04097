package realip

// asciiHeaderValue is header text proven to hold only visible ASCII, SP and
// HTAB. Every parser in this package takes one, so byte offsets and
// characters always coincide.
type asciiHeaderValue string

// validateASCII reports whether raw holds only visible ASCII characters and
// HTTP whitespace.
func validateASCII(raw string) (asciiHeaderValue, bool) {
	for i := 0; i < len(raw); i++ {
		if !isVisibleASCII(raw[i]) {
			return "", false
		}
	}

	return asciiHeaderValue(raw), true
}

func isVisibleASCII(b byte) bool {
	return (b >= ' ' && b < 0x7f) || b == '\t'
}

// trimHTTPWhitespace removes leading and trailing SP and HTAB.
func trimHTTPWhitespace(s string) string {
	start, end := 0, len(s)
	for start < end && isHTTPWhitespace(s[start]) {
		start++
	}
	for end > start && isHTTPWhitespace(s[end-1]) {
		end--
	}

	return s[start:end]
}

func isHTTPWhitespace(b byte) bool {
	return b == ' ' || b == '\t'
}
