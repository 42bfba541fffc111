package upstream

import "time"

// Session is an authenticated upstream session. The token is unexported:
// nothing outside this package reads or writes it, and it only leaves the
// process as the percent-encoded cookie the client attaches to requests.
// The upstream never declares an expiry, so the lifetime is bounded
// client-side by ExpiresAt.
type Session struct {
	Username  string
	IssuedAt  time.Time
	ExpiresAt time.Time
	token     string
}

// Active reports whether the session is usable at the given instant.
func (s *Session) Active(now time.Time) bool {
	return s != nil && s.token != "" && now.Before(s.ExpiresAt)
}

// IsAuthenticated reports whether the client holds a live session.
func (c *Client) IsAuthenticated() bool {
	_, ok := c.sessionToken()
	return ok
}

// CurrentSession returns a copy of the active session, if any.
func (c *Client) CurrentSession() (Session, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.session == nil || !c.session.Active(c.now()) {
		return Session{}, false
	}
	return *c.session, true
}

// ClearSession drops the active session. Subsequent requests go out
// unauthenticated, with no cookie header at all.
func (c *Client) ClearSession() {
	c.mu.Lock()
	c.session = nil
	c.mu.Unlock()
}

func (c *Client) armSession(username, token string) {
	now := c.now()
	c.mu.Lock()
	c.session = &Session{
		Username:  username,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.sessionTTL),
		token:     token,
	}
	c.mu.Unlock()
}
