// internal/requestinfo/middleware.go
//
// HTTP middleware that tags each order API request with *Client.
//
/*
Context
--------
This handler sits after chi's RealIP, so r.RemoteAddr already holds the
left-most forwarded address.  For every request it:

  1. Parses the User-Agent header and Accept-Language list.
  2. Performs an optional GeoLite2 country lookup.
  3. Stores a `*Client` in `request.Context` under an unexported key, so
     the order handlers can label metrics and log lines without
     reparsing.

Notes
-----
  • The GeoLite2 reader is optional.  Without one, Country stays empty.
  • Reads on *geoip2.Reader are safe for concurrent use.
*/
package requestinfo

import (
	"context"
	"net"
	"net/http"
	"strings"

	"github.com/oschwald/geoip2-golang"
	"go.uber.org/zap"

	"github.com/yanizio/pizzaorder/internal/ua"
)

// Client describes who placed a request.  It holds no handles, so it is
// safe to log or JSON-encode.
type Client struct {
	IP      net.IP  `json:"ip,omitempty"`
	Country string  `json:"country,omitempty"` // ISO code, "" when unknown
	Lang    string  `json:"lang,omitempty"`    // first Accept-Language tag
	UA      ua.Info `json:"ua"`
}

type ctxKey struct{}

// FromContext returns the *Client stored by Tag, or nil when the
// middleware has not run.
func FromContext(ctx context.Context) *Client {
	c, _ := ctx.Value(ctxKey{}).(*Client)
	return c
}

// OpenGeo opens a GeoLite2 Country or City database.
func OpenGeo(path string) (*geoip2.Reader, error) {
	return geoip2.Open(path)
}

// Tag returns middleware that attaches *Client to every request.  geo may
// be nil.
func Tag(geo *geoip2.Reader) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			c := &Client{
				IP:   clientIP(r),
				Lang: primaryLang(r.Header.Get("Accept-Language")),
				UA:   ua.Parse(r.UserAgent()),
			}
			c.Country = lookupCountry(geo, c.IP)

			zap.S().Debugw("request client",
				"ip", c.IP,
				"country", c.Country,
				"browser", c.UA.Browser,
				"device", c.UA.Device,
				"bot", c.UA.IsBot,
			)

			ctx := context.WithValue(r.Context(), ctxKey{}, c)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// clientIP reads r.RemoteAddr, which may be "ip:port" or a bare IP after
// RealIP rewrote it.
func clientIP(r *http.Request) net.IP {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return net.ParseIP(host)
	}
	return net.ParseIP(strings.TrimSpace(r.RemoteAddr))
}

// primaryLang extracts the first language tag before any ";q=" rule.
func primaryLang(al string) string {
	if al == "" {
		return ""
	}
	tag := strings.TrimSpace(strings.Split(al, ",")[0])
	if i := strings.Index(tag, ";"); i != -1 {
		tag = tag[:i]
	}
	return strings.ToLower(tag)
}

func lookupCountry(geo *geoip2.Reader, ip net.IP) string {
	if geo == nil || ip == nil {
		return ""
	}
	rec, err := geo.Country(ip)
	if err != nil {
		return ""
	}
	return rec.Country.IsoCode
}
