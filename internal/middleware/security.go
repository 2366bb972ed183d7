// internal/middleware/security.go
//
// Security-header middleware.
//
// Injects standard headers on every response:
//
//   • Content-Security-Policy  –  the API serves no documents, so deny all
//   • X-Frame-Options          –  click-jacking defence
//   • X-Content-Type-Options   –  MIME-sniffing defence
//   • Referrer-Policy          –  drops path/query from Referer
//
// Notes
// -----
// • Headers are set before next.ServeHTTP so they reach the client even
//   when the handler writes the status line; existing values are kept.
// • HSTS is added only for TLS requests; the order API usually listens on
//   plain HTTP at localhost.

package middleware

import "net/http"

// Security sets security headers for every response.
func Security(next http.Handler) http.Handler {
	const (
		hsts  = "max-age=63072000; includeSubDomains"
		csp   = "default-src 'none'; frame-ancestors 'none'"
		xfo   = "DENY"
		nosn  = "nosniff"
		refer = "strict-origin-when-cross-origin"
	)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		setDefault := func(k, v string) {
			if h.Get(k) == "" {
				h.Set(k, v)
			}
		}

		if r.TLS != nil {
			setDefault("Strict-Transport-Security", hsts)
		}
		setDefault("Content-Security-Policy", csp)
		setDefault("X-Frame-Options", xfo)
		setDefault("X-Content-Type-Options", nosn)
		setDefault("Referrer-Policy", refer)

		next.ServeHTTP(w, r)
	})
}
