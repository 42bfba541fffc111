package upstream

import "time"

const (
	// defaultHost is the platform's season-independent API host. League
	// requests may be served by numbered hosts resolved per league after
	// login.
	defaultHost = "api.myfantasyleague.com"

	// defaultUserAgent is the registered client identifier required by the
	// upstream's rate-limiting policy. Requests without it are throttled
	// aggressively.
	defaultUserAgent = "FFLGATEWAY"

	// SessionCookie is the cookie name carrying the session token.
	SessionCookie = "SESSION"

	defaultHTTPTimeout = 10 * time.Second
	defaultSessionTTL  = 24 * time.Hour

	commandLogin  = "login"
	commandExport = "export"
)
