// internal/server/timeouts.go
//
// HTTP server helper with robust timeouts.
//
// Production hardening recommends:
//
//   • ReadHeaderTimeout – abort slow-loris headers (5 s)
//   • ReadTimeout       – cap upload of large exported records (30 s)
//   • WriteTimeout      – cap total response time, including a cold
//                         requirement fetch (60 s)
//   • IdleTimeout       – close keep-alives on idle clients (120 s)
//
// This helper centralises those defaults so cmd/reqvalidator doesn't
// repeat boilerplate.
//

package server

import (
	"net/http"
	"time"
)

// New constructs an *http.Server with the defaults above.
func New(addr string, handler http.Handler) *http.Server {
	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}
}
