package realip

import (
	"context"
	"net/http"
)

// RequestInput provides framework-agnostic request data for extraction.
//
// Context defaults to context.Background() when nil. RemoteAddr and Path are
// used only as log attributes.
//
// For Headers, preserve duplicate header lines as separate values for each
// header name (for example two X-Real-IP lines should yield a slice with
// length 2).
type RequestInput struct {
	Context    context.Context
	RemoteAddr string
	Path       string
	Headers    HeaderValues
}

func requestInputContext(input RequestInput) context.Context {
	if input.Context == nil {
		return context.Background()
	}

	return input.Context
}

// requestInputFromHTTP adapts r without copying its headers.
func requestInputFromHTTP(r *http.Request) RequestInput {
	if r == nil {
		return RequestInput{}
	}

	input := RequestInput{
		Context:    r.Context(),
		RemoteAddr: r.RemoteAddr,
	}
	if r.URL != nil {
		input.Path = r.URL.Path
	}
	if r.Header != nil {
		input.Headers = r.Header
	}

	return input
}
