package forwarded

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidSyntax is wrapped by every error returned from Parse.
var ErrInvalidSyntax = errors.New("invalid Forwarded header")

// Stanza is one forwarded-element: the parameters contributed by a single
// proxy hop.
type Stanza struct {
	// Raw is the element text as it appeared in the header, trimmed.
	Raw string

	// For identifies the client-facing side of the hop. Nil when the
	// element has no for parameter.
	For Identifier
	// By identifies the proxy-facing interface. Nil when absent.
	By Identifier

	Host  string
	Proto string

	// Extensions holds parameters other than for, by, host and proto, keyed
	// by lower-cased name.
	Extensions map[string]string
}

// Parse splits a Forwarded header value into stanzas, leftmost (original
// client) first.
//
// Empty elements and empty pairs are skipped, so an empty value yields no
// stanzas and no error.
func Parse(value string) ([]Stanza, error) {
	var stanzas []Stanza

	err := scanSegments(value, ',', func(element string) error {
		stanza, err := parseElement(element)
		if err != nil {
			return err
		}

		stanzas = append(stanzas, stanza)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidSyntax, err)
	}

	return stanzas, nil
}

func parseElement(element string) (Stanza, error) {
	stanza := Stanza{Raw: element}
	seen := make(map[string]struct{}, 4)

	err := scanSegments(element, ';', func(pair string) error {
		eq := strings.IndexByte(pair, '=')
		if eq <= 0 {
			return fmt.Errorf("invalid forwarded pair %q", pair)
		}

		key := strings.ToLower(trimWhitespace(pair[:eq]))
		if !isToken(key) {
			return fmt.Errorf("invalid parameter name in %q", pair)
		}

		if _, duplicate := seen[key]; duplicate {
			return fmt.Errorf("duplicate %s parameter in element %q", key, element)
		}
		seen[key] = struct{}{}

		value, err := parseValue(trimWhitespace(pair[eq+1:]))
		if err != nil {
			return fmt.Errorf("parameter %s: %w", key, err)
		}

		switch key {
		// Quoted nodes may carry padding inside the quotes.
		case "for":
			stanza.For, err = ParseIdentifier(trimWhitespace(value))
		case "by":
			stanza.By, err = ParseIdentifier(trimWhitespace(value))
		case "host":
			stanza.Host = value
		case "proto":
			stanza.Proto = value
		default:
			if stanza.Extensions == nil {
				stanza.Extensions = make(map[string]string)
			}
			stanza.Extensions[key] = value
		}
		if err != nil {
			return fmt.Errorf("parameter %s: %w", key, err)
		}

		return nil
	})
	if err != nil {
		return Stanza{}, err
	}

	return stanza, nil
}

// parseValue accepts a quoted-string or an unquoted value.
//
// Unquoted values are accepted beyond the RFC token charset so that the
// common unquoted forms for=[2001:db8::1]:80 and for=2001:db8::1 parse.
func parseValue(value string) (string, error) {
	if value == "" {
		return "", errors.New("empty value")
	}

	if value[0] == '"' {
		return unquote(value)
	}

	for i := 0; i < len(value); i++ {
		ch := value[i]
		if ch == '"' || ch == ' ' || ch == '\t' {
			return "", fmt.Errorf("unexpected character %q in %q", ch, value)
		}
	}

	return value, nil
}

// scanSegments splits value by delimiter while respecting quoted segments
// and escape sequences inside quoted strings.
func scanSegments(value string, delimiter byte, onSegment func(string) error) error {
	start := 0
	inQuotes := false
	escaped := false

	for i := 0; i <= len(value); i++ {
		if i == len(value) {
			if inQuotes {
				return fmt.Errorf("unterminated quoted string in %q", value)
			}
		} else {
			ch := value[i]

			if escaped {
				escaped = false
				continue
			}

			if ch == '\\' && inQuotes {
				escaped = true
				continue
			}

			if ch == '"' {
				inQuotes = !inQuotes
				continue
			}

			if ch != delimiter || inQuotes {
				continue
			}
		}

		segment := trimWhitespace(value[start:i])
		if segment != "" {
			if err := onSegment(segment); err != nil {
				return err
			}
		}

		start = i + 1
	}

	return nil
}

// unquote removes surrounding quotes from a quoted-string and resolves
// backslash escapes.
func unquote(value string) (string, error) {
	if len(value) < 2 || value[0] != '"' || value[len(value)-1] != '"' {
		return "", fmt.Errorf("invalid quoted string %q", value)
	}

	inner := value[1 : len(value)-1]
	if strings.IndexByte(inner, '\\') == -1 {
		if strings.IndexByte(inner, '"') != -1 {
			return "", fmt.Errorf("unexpected quote in %q", value)
		}

		return inner, nil
	}

	var b strings.Builder
	b.Grow(len(inner))
	escaped := false

	for i := 0; i < len(inner); i++ {
		ch := inner[i]

		if escaped {
			b.WriteByte(ch)
			escaped = false
			continue
		}

		if ch == '\\' {
			escaped = true
			continue
		}

		if ch == '"' {
			return "", fmt.Errorf("unexpected quote in %q", value)
		}

		b.WriteByte(ch)
	}

	if escaped {
		return "", fmt.Errorf("unterminated escape in %q", value)
	}

	return b.String(), nil
}

func trimWhitespace(s string) string {
	return strings.Trim(s, " \t")
}

// isToken reports whether s is a non-empty RFC 9110 token.
func isToken(s string) bool {
	if s == "" {
		return false
	}

	for i := 0; i < len(s); i++ {
		if !isTokenChar(s[i]) {
			return false
		}
	}

	return true
}

func isTokenChar(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	}

	return strings.IndexByte("!#$%&'*+-.^_`|~", ch) >= 0
}
