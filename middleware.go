package realip

import (
	"context"
	"net/http"
)

type extractionContextKey struct{}

type extractionErrorContextKey struct{}

// Middleware resolves the client IP once per request and stores the
// Extraction in the request context, where FromContext retrieves it.
//
// When extraction fails the error is stored instead (see ErrorFromContext)
// and the request is handed to the failure handler configured with
// WithFailureHandler, or to next when none is configured.
func (e *Extractor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		extraction, err := e.Extract(r)
		if err != nil {
			r = r.WithContext(context.WithValue(r.Context(), extractionErrorContextKey{}, err))
			if e.config.failureHandler != nil {
				e.config.failureHandler.ServeHTTP(w, r)
				return
			}

			next.ServeHTTP(w, r)
			return
		}

		r = r.WithContext(context.WithValue(r.Context(), extractionContextKey{}, extraction))
		next.ServeHTTP(w, r)
	})
}

// FromContext returns the Extraction stored by Middleware.
func FromContext(ctx context.Context) (Extraction, bool) {
	extraction, ok := ctx.Value(extractionContextKey{}).(Extraction)
	return extraction, ok
}

// ErrorFromContext returns the extraction error stored by Middleware.
func ErrorFromContext(ctx context.Context) error {
	err, _ := ctx.Value(extractionErrorContextKey{}).(error)
	return err
}
