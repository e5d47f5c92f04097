package realip

import (
	"context"
	"errors"
	"net/http"
	"net/netip"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestExtract_PriorityAndSecurityMode(t *testing.T) {
	type extractionState struct {
		IP         string
		Source     string
		Convention Convention
		Err        error
	}

	tests := []struct {
		name    string
		opts    []Option
		headers http.Header
		want    extractionState
	}{
		{
			name:    "first convention present",
			opts:    []Option{Priority(ConventionCFConnectingIP, ConventionXForwardedFor)},
			headers: headersOf("CF-Connecting-IP", "1.1.1.1", "X-Forwarded-For", "2.2.2.2"),
			want:    extractionState{IP: "1.1.1.1", Source: "cf_connecting_ip", Convention: ConventionCFConnectingIP},
		},
		{
			name:    "absent header falls through in strict mode",
			opts:    []Option{Priority(ConventionCFConnectingIP, ConventionXForwardedFor)},
			headers: headersOf("X-Forwarded-For", "2.2.2.2"),
			want:    extractionState{IP: "2.2.2.2", Source: "x_forwarded_for", Convention: ConventionXForwardedFor},
		},
		{
			name:    "malformed header stops in strict mode",
			opts:    []Option{Priority(ConventionCFConnectingIP, ConventionXForwardedFor)},
			headers: headersOf("CF-Connecting-IP", "garbage", "X-Forwarded-For", "2.2.2.2"),
			want:    extractionState{Source: "cf_connecting_ip", Convention: ConventionCFConnectingIP, Err: ErrMalformedHeaderValue},
		},
		{
			name:    "repeated header stops in strict mode",
			opts:    []Option{Priority(ConventionXRealIP, ConventionXForwardedFor)},
			headers: headersOf("X-Real-IP", "1.1.1.1", "X-Real-IP", "1.1.1.1", "X-Forwarded-For", "2.2.2.2"),
			want:    extractionState{Source: "x_real_ip", Convention: ConventionXRealIP, Err: ErrSingleHeaderRequired},
		},
		{
			name:    "malformed header falls through in lax mode",
			opts:    []Option{Priority(ConventionCFConnectingIP, ConventionXForwardedFor), WithSecurityMode(SecurityModeLax)},
			headers: headersOf("CF-Connecting-IP", "garbage", "X-Forwarded-For", "2.2.2.2"),
			want:    extractionState{IP: "2.2.2.2", Source: "x_forwarded_for", Convention: ConventionXForwardedFor},
		},
		{
			name:    "lax mode returns last error when every convention fails",
			opts:    []Option{Priority(ConventionCFConnectingIP, ConventionTrueClientIP), WithSecurityMode(SecurityModeLax)},
			headers: headersOf("CF-Connecting-IP", "garbage", "True-Client-IP", "ф"),
			want:    extractionState{Err: ErrNonASCIIHeaderValue},
		},
		{
			name:    "lax mode prefers a failure over later absent headers",
			opts:    []Option{Priority(ConventionCFConnectingIP, ConventionTrueClientIP), WithSecurityMode(SecurityModeLax)},
			headers: headersOf("CF-Connecting-IP", "garbage"),
			want:    extractionState{Err: ErrMalformedHeaderValue},
		},
		{
			name:    "every header absent",
			opts:    []Option{Priority(ConventionCFConnectingIP, ConventionTrueClientIP)},
			headers: http.Header{},
			want:    extractionState{Err: ErrAbsentHeader},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			extractor := mustNewExtractor(t, tt.opts...)

			req := newTestRequest("10.0.0.1:443", "/")
			req.Header = tt.headers

			extraction, err := extractor.Extract(req)

			got := extractionState{
				Source:     extraction.Source,
				Convention: extraction.Convention,
				Err:        err,
			}
			if extraction.IP.IsValid() {
				got.IP = extraction.IP.String()
			}

			if diff := cmp.Diff(tt.want, got, equateErrors); diff != "" {
				t.Fatalf("Extract() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestExtract_LaxLastErrorIsFromLastConvention(t *testing.T) {
	extractor := mustNewExtractor(t,
		Priority(ConventionCFConnectingIP, ConventionTrueClientIP),
		WithSecurityMode(SecurityModeLax),
	)

	req := newTestRequest("10.0.0.1:443", "/")
	req.Header = headersOf("CF-Connecting-IP", "garbage", "True-Client-IP", "also-garbage")

	_, err := extractor.Extract(req)

	var malformedErr *MalformedValueError
	if !errors.As(err, &malformedErr) {
		t.Fatalf("error = %T, want *MalformedValueError", err)
	}
	if malformedErr.HeaderName() != "True-Client-IP" {
		t.Fatalf("HeaderName() = %q, want True-Client-IP", malformedErr.HeaderName())
	}
}

func TestExtractAddr(t *testing.T) {
	extractor := mustNewExtractor(t, PresetCloudFront())

	req := newTestRequest("10.0.0.1:443", "/")
	req.Header.Set("CloudFront-Viewer-Address", "2001:db8::1:8000")

	ip, err := extractor.ExtractAddr(req)
	if err != nil {
		t.Fatalf("ExtractAddr() error = %v", err)
	}
	if want := netip.MustParseAddr("2001:db8::1"); ip != want {
		t.Fatalf("ExtractAddr() = %v, want %v", ip, want)
	}

	req.Header.Set("CloudFront-Viewer-Address", "2001:db8::1")
	ip, err = extractor.ExtractAddr(req)
	if !errors.Is(err, ErrMalformedHeaderValue) {
		t.Fatalf("ExtractAddr() error = %v, want ErrMalformedHeaderValue", err)
	}
	if ip.IsValid() {
		t.Fatalf("ExtractAddr() = %v, want invalid address on error", ip)
	}
}

func TestExtract_NilRequest(t *testing.T) {
	extractor := mustNewExtractor(t, PresetCloudflare())

	_, err := extractor.Extract(nil)
	if !errors.Is(err, ErrAbsentHeader) {
		t.Fatalf("Extract(nil) error = %v, want ErrAbsentHeader", err)
	}
}

func TestExtractFrom(t *testing.T) {
	extractor := mustNewExtractor(t, PresetNginx())

	extraction, err := extractor.ExtractFrom(RequestInput{
		Headers: HeaderValuesFunc(func(name string) []string {
			if name == "X-Forwarded-For" {
				return []string{"198.51.100.1, 203.0.113.9"}
			}
			return nil
		}),
	})
	if err != nil {
		t.Fatalf("ExtractFrom() error = %v", err)
	}

	want := Extraction{
		IP:         netip.MustParseAddr("203.0.113.9"),
		Source:     "x_forwarded_for",
		Convention: ConventionXForwardedFor,
	}
	if diff := cmp.Diff(want, extraction, cmp.Comparer(func(a, b netip.Addr) bool { return a == b })); diff != "" {
		t.Fatalf("ExtractFrom() mismatch (-want +got):\n%s", diff)
	}
}

func TestExtractAddrFrom(t *testing.T) {
	extractor := mustNewExtractor(t, PresetFly())

	ip, err := extractor.ExtractAddrFrom(RequestInput{
		Headers: headersOf("Fly-Client-IP", "203.0.113.9"),
	})
	if err != nil {
		t.Fatalf("ExtractAddrFrom() error = %v", err)
	}
	if ip.String() != "203.0.113.9" {
		t.Fatalf("ExtractAddrFrom() = %v, want 203.0.113.9", ip)
	}

	_, err = extractor.ExtractAddrFrom(RequestInput{})
	if !errors.Is(err, ErrAbsentHeader) {
		t.Fatalf("ExtractAddrFrom() error = %v, want ErrAbsentHeader", err)
	}
}

func TestExtractFrom_CanceledContext(t *testing.T) {
	extractor := mustNewExtractor(t, PresetCloudflare())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := extractor.ExtractFrom(RequestInput{
		Context: ctx,
		Headers: headersOf("CF-Connecting-IP", "1.1.1.1"),
	})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("ExtractFrom() error = %v, want context.Canceled", err)
	}
}

func TestExtractWithOptions(t *testing.T) {
	req := newTestRequest("10.0.0.1:443", "/")
	req.Header.Set("True-Client-IP", "1.1.1.1")

	extraction, err := ExtractWithOptions(req, PresetAkamai())
	if err != nil {
		t.Fatalf("ExtractWithOptions() error = %v", err)
	}
	if extraction.Source != "true_client_ip" || extraction.IP.String() != "1.1.1.1" {
		t.Fatalf("ExtractWithOptions() = %+v", extraction)
	}

	if _, err := ExtractWithOptions(req); err == nil {
		t.Fatal("ExtractWithOptions() without priority error = nil, want configuration error")
	}
}

func TestExtractFromWithOptions(t *testing.T) {
	extraction, err := ExtractFromWithOptions(
		RequestInput{Headers: headersOf("X-Real-IP", "1.1.1.1")},
		PriorityNames("x-real-ip"),
	)
	if err != nil {
		t.Fatalf("ExtractFromWithOptions() error = %v", err)
	}
	if extraction.Convention != ConventionXRealIP {
		t.Fatalf("Convention = %v, want %v", extraction.Convention, ConventionXRealIP)
	}

	if _, err := ExtractFromWithOptions(RequestInput{}, PriorityNames("remote_addr")); err == nil {
		t.Fatal("ExtractFromWithOptions() error = nil, want unknown convention error")
	}
}
