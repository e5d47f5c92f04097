//go:build realip_noforwarded

package realip

import (
	"net/netip"
	"testing"
)

func TestConventions_ForwardedCompiledOut(t *testing.T) {
	for _, c := range Conventions() {
		if c.Header() == "Forwarded" {
			t.Fatalf("Conventions() includes %v", c)
		}
	}

	if _, ok := ParseConvention("forwarded"); ok {
		t.Fatal("ParseConvention(forwarded) ok = true, want false")
	}

	if _, err := New(Priority(conventionForwarded)); err == nil {
		t.Fatal("New() error = nil, want unsupported convention error")
	}
}

func TestConvention_ExtractForwardedCompiledOut(t *testing.T) {
	_, err := conventionForwarded.Extract(headersOf("Forwarded", "for=1.2.3.4"))
	assertResult(t, netip.Addr{}, err, resultState{Err: ErrAbsentHeader})
}
