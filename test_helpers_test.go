package realip

import (
	"errors"
	"net/http"
	"net/netip"
	"net/url"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

// resultState flattens an extraction result for cmp.Diff. Err is compared
// with errors.Is semantics through equateErrors.
type resultState struct {
	IP     string
	Err    error
	Header string
}

var equateErrors = cmpopts.EquateErrors()

// equateFailures compares two independently produced errors: they match when
// they wrap the same sentinel and render the same text.
var equateFailures = cmp.Comparer(func(x, y error) bool {
	if x == nil || y == nil {
		return x == nil && y == nil
	}

	sentinel := errors.Unwrap(x)
	if sentinel == nil {
		sentinel = x
	}

	return errors.Is(y, sentinel) && x.Error() == y.Error()
})

func resultStateOf(ip netip.Addr, err error) resultState {
	state := resultState{Err: err}
	if ip.IsValid() {
		state.IP = ip.String()
	}

	var extractionErr interface{ HeaderName() string }
	if errors.As(err, &extractionErr) {
		state.Header = extractionErr.HeaderName()
	}

	return state
}

func assertResult(t *testing.T, ip netip.Addr, err error, want resultState) {
	t.Helper()

	if diff := cmp.Diff(want, resultStateOf(ip, err), equateErrors); diff != "" {
		t.Fatalf("result mismatch (-want +got):\n%s", diff)
	}
}

func mustNewExtractor(t *testing.T, opts ...Option) *Extractor {
	t.Helper()

	extractor, err := New(opts...)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	return extractor
}

func newTestRequest(remoteAddr, path string) *http.Request {
	req := &http.Request{
		RemoteAddr: remoteAddr,
		Header:     make(http.Header),
	}

	if path != "" {
		req.URL = &url.URL{Path: path}
	}

	return req
}

// headersOf builds an http.Header from (name, value) pairs, adding one value
// per pair so repeated names become repeated header lines.
func headersOf(pairs ...string) http.Header {
	h := make(http.Header)
	for i := 0; i+1 < len(pairs); i += 2 {
		h.Add(pairs[i], pairs[i+1])
	}
	return h
}
