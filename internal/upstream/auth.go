package upstream

import (
	"context"
	"net/url"
	"regexp"
	"strings"
)

// LoginResult is the uniform outcome of a login attempt. Login never
// returns an error: transport failures and unparsable responses are folded
// into a failed result so callers can render every failure the same way.
type LoginResult struct {
	Success bool   `json:"success"`
	Error   string `json:"error,omitempty"`
}

// The upstream answers the login command with quasi-XML fragments that are
// not reliably well-formed, so they are pattern-matched rather than parsed.
// Kept as an isolated adapter: a real XML parser could replace these without
// touching the LoginResult contract.
var (
	loginOKPattern     = regexp.MustCompile(`<status[^>]*\bsession_id="([^"]*)"[^>]*>\s*OK\s*</status>`)
	loginErrorPattern  = regexp.MustCompile(`<error[^>]*>([^<]*)</error>`)
	loginStatusPattern = regexp.MustCompile(`<status[^>]*>([^<]*)</status>`)
)

// Login submits credentials to the upstream login command over HTTPS on the
// default host and arms the client's session on success. The token is stored
// raw; percent-encoding happens once, at the point the cookie header is
// attached, so tokens containing +, / or = survive the round trip.
func (c *Client) Login(ctx context.Context, username, password string) LoginResult {
	form := url.Values{}
	form.Set("USERNAME", username)
	form.Set("PASSWORD", password)
	form.Set("XML", "1")

	body, err := c.PostForm(ctx, commandLogin, form)
	if err != nil {
		c.logWarn("login request failed", "error", err)
		return LoginResult{Error: err.Error()}
	}

	text := body.Text()
	if m := loginOKPattern.FindStringSubmatch(text); m != nil && m[1] != "" {
		c.armSession(username, m[1])
		return LoginResult{Success: true}
	}
	if m := loginErrorPattern.FindStringSubmatch(text); m != nil {
		if msg := strings.TrimSpace(m[1]); msg != "" {
			return LoginResult{Error: msg}
		}
	}
	if m := loginStatusPattern.FindStringSubmatch(text); m != nil {
		if status := strings.TrimSpace(m[1]); status != "" && status != "OK" {
			return LoginResult{Error: status}
		}
	}
	return LoginResult{Error: "invalid response from login service"}
}

// Logout discards the session. The upstream keeps no server-side state worth
// revoking, so this is purely local.
func (c *Client) Logout() {
	c.ClearSession()
}
