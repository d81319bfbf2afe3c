// internal/middleware/security.go
//
// Response-header middleware for the JSON API.
//
// Injects headers suited to a machine-facing service on every response:
//
//   • Cache-Control            –  validation reports are never cached
//   • Content-Security-Policy  –  nothing may be loaded from a response
//   • X-Frame-Options          –  responses are never framed
//   • X-Content-Type-Options   –  MIME-sniffing defence
//   • Referrer-Policy          –  no Referer leaves the service
//
// Notes
// -----
// • Headers are set *before* next.ServeHTTP, since a header written after
//   the first body byte is silently dropped.  Handlers may still override
//   any of them.
// • Two spaces after periods.

package middleware

import "net/http"

// APIHeaders sets protective headers for every response.
func APIHeaders(next http.Handler) http.Handler {
	const (
		cache = "no-store"
		csp   = "default-src 'none'; frame-ancestors 'none'"
		xfo   = "DENY"
		nosn  = "nosniff"
		refer = "no-referrer"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("Cache-Control", cache)
		h.Set("Content-Security-Policy", csp)
		h.Set("X-Frame-Options", xfo)
		h.Set("X-Content-Type-Options", nosn)
		h.Set("Referrer-Policy", refer)

		next.ServeHTTP(w, r)
	})
}
