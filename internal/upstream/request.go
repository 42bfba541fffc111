package upstream

import (
	"fmt"
	"net/url"
	"strings"
)

// BuildURL assembles an upstream request URL of the form
// https://{host}/{year}/{command}?{args}. Pure string assembly: no I/O, no
// side effects. Args pass through url.Values, so keys serialize in sorted
// order and a map guarantees last-write-wins on duplicates.
func BuildURL(host string, year int, command string, args map[string]string) string {
	u := url.URL{
		Scheme: "https",
		Host:   normalizeHost(host),
		Path:   fmt.Sprintf("/%d/%s", year, command),
	}
	if len(args) > 0 {
		q := url.Values{}
		for key, value := range args {
			q.Set(key, value)
		}
		u.RawQuery = q.Encode()
	}
	return u.String()
}

// normalizeHost strips any scheme or trailing slash so league hosts
// resolved from upstream metadata (often full base URLs) slot in cleanly.
func normalizeHost(host string) string {
	host = strings.TrimSpace(host)
	host = strings.TrimPrefix(host, "https://")
	host = strings.TrimPrefix(host, "http://")
	return strings.TrimSuffix(host, "/")
}
