package forwarded

import (
	"errors"
	"fmt"
	"net/netip"
	"strconv"
	"strings"
)

// Identifier is the node named by a for or by parameter (RFC 7239 Section
// 6). It is one of SocketAddr, IPAddr, Obfuscated or Unknown.
type Identifier interface {
	isIdentifier()
	String() string
}

// SocketAddr is an IP address with a numeric port.
type SocketAddr struct {
	AddrPort netip.AddrPort
}

// IPAddr is an IP address without a port, or with an obfuscated port.
type IPAddr struct {
	Addr netip.Addr
}

// Obfuscated is an obfuscated node identifier such as "_hidden".
type Obfuscated struct {
	Token string
}

// Unknown is the "unknown" identifier: the hop declined to disclose the
// address.
type Unknown struct{}

func (SocketAddr) isIdentifier() {}
func (IPAddr) isIdentifier()     {}
func (Obfuscated) isIdentifier() {}
func (Unknown) isIdentifier()    {}

func (s SocketAddr) String() string { return s.AddrPort.String() }
func (a IPAddr) String() string     { return a.Addr.String() }
func (o Obfuscated) String() string { return o.Token }
func (Unknown) String() string      { return "unknown" }

// ParseIdentifier parses an unquoted node value.
//
// Accepted forms are "unknown", obfuscated nodes ("_abc"), IPv4 with optional
// port, bracketed IPv6 with optional port and, leniently, bare IPv6. Ports
// may themselves be obfuscated ("_p1"); such nodes parse as IPAddr.
func ParseIdentifier(node string) (Identifier, error) {
	if node == "" {
		return nil, errors.New("empty node")
	}

	if ip, err := netip.ParseAddr(node); err == nil && ip.Zone() == "" {
		return IPAddr{Addr: ip}, nil
	}

	name, port, hasPort, err := splitNode(node)
	if err != nil {
		return nil, err
	}

	var id Identifier
	switch {
	case strings.EqualFold(name, "unknown"):
		id = Unknown{}
	case name[0] == '_':
		if !isObfuscated(name) {
			return nil, fmt.Errorf("invalid obfuscated node %q", name)
		}
		id = Obfuscated{Token: name}
	default:
		ip, err := netip.ParseAddr(name)
		if err != nil || ip.Zone() != "" {
			return nil, fmt.Errorf("invalid node %q", node)
		}
		id = IPAddr{Addr: ip}
	}

	if !hasPort {
		return id, nil
	}

	if port[0] == '_' {
		if !isObfuscated(port) {
			return nil, fmt.Errorf("invalid obfuscated port %q", port)
		}
		return id, nil
	}

	n, err := strconv.ParseUint(port, 10, 16)
	if err != nil {
		return nil, fmt.Errorf("invalid port %q", port)
	}

	if ipAddr, ok := id.(IPAddr); ok {
		return SocketAddr{AddrPort: netip.AddrPortFrom(ipAddr.Addr, uint16(n))}, nil
	}

	return id, nil
}

// splitNode separates a nodename from its optional port. Bracketed names
// have their brackets removed and must hold an IPv6 address.
func splitNode(node string) (name, port string, hasPort bool, err error) {
	if node[0] == '[' {
		end := strings.IndexByte(node, ']')
		if end < 0 {
			return "", "", false, fmt.Errorf("unterminated bracket in %q", node)
		}

		name = node[1:end]
		ip, parseErr := netip.ParseAddr(name)
		if parseErr != nil || !ip.Is6() || ip.Zone() != "" {
			return "", "", false, fmt.Errorf("invalid bracketed address %q", node)
		}

		rest := node[end+1:]
		switch {
		case rest == "":
			return name, "", false, nil
		case rest[0] == ':' && len(rest) > 1:
			return name, rest[1:], true, nil
		default:
			return "", "", false, fmt.Errorf("invalid node %q", node)
		}
	}

	colon := strings.LastIndexByte(node, ':')
	if colon < 0 {
		return node, "", false, nil
	}

	name, port = node[:colon], node[colon+1:]
	if name == "" || port == "" || strings.IndexByte(name, ':') >= 0 {
		return "", "", false, fmt.Errorf("invalid node %q", node)
	}

	return name, port, true, nil
}

// isObfuscated reports whether s matches "_" 1*( ALPHA / DIGIT / "." / "_" / "-" ).
func isObfuscated(s string) bool {
	if len(s) < 2 || s[0] != '_' {
		return false
	}

	for i := 1; i < len(s); i++ {
		ch := s[i]
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		case ch == '.', ch == '_', ch == '-':
		default:
			return false
		}
	}

	return true
}
