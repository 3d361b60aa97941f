// auth.go
// -------
// Session tracking and the 401-driven token refresh. The backend
// keeps credentials in httpOnly cookies (access_token plus
// refresh_token), so the client's cookie jar carries them; what the
// client tracks here is the access token expiry, read from the jwt
// exp claim without signature verification.
//
// Refresh is a side effect of observing a 401, never a retry wrapper:
// the 401 response is still delivered to its caller. Concurrent
// observers share a single in-flight refresh call through
// singleflight, and anyone who wants to wait for the outcome can join
// the same flight via RefreshSession.
package tradebridge

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"go.uber.org/zap"
)

const (
	refreshEndpoint   = "/auth/token"
	accessTokenCookie = "access_token"
)

type session struct {
	mu        sync.Mutex
	expiresAt time.Time
}

func (s *session) setExpiry(t time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.expiresAt = t
}

func (s *session) expiry() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.expiresAt
}

// tokenExpiry extracts the exp claim without verifying the signature.
// The client only needs the timing; the backend enforces validity.
func tokenExpiry(token string) (time.Time, error) {
	claims := jwt.RegisteredClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, &claims); err != nil {
		return time.Time{}, err
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, fmt.Errorf("token has no exp claim")
	}
	return claims.ExpiresAt.Time, nil
}

// SessionExpiresAt returns the expiry of the current access token, or
// the zero time when no session has been observed yet.
func (c *Client) SessionExpiresAt() time.Time {
	return c.session.expiry()
}

// SessionExpiringWithin reports whether the access token expires
// within d. Callers can use it to refresh proactively instead of
// waiting for a 401.
func (c *Client) SessionExpiringWithin(d time.Duration) bool {
	exp := c.session.expiry()
	return !exp.IsZero() && time.Until(exp) < d
}

// triggerRefresh starts the shared refresh flight without waiting for
// its outcome. Called when a 401 is observed; while a flight is
// already outstanding no second refresh call is issued.
func (c *Client) triggerRefresh() {
	go func() {
		if err := c.RefreshSession(context.Background()); err != nil {
			c.logger.Debug("token refresh failed", zap.Error(err))
		}
	}()
}

// RefreshSession exchanges the refresh-token cookie for a new access
// token. Concurrent callers share one in-flight refresh call; a
// canceled context detaches the caller without aborting the shared
// flight.
func (c *Client) RefreshSession(ctx context.Context) error {
	ch := c.refresh.DoChan("refresh", func() (any, error) {
		return nil, c.doRefresh()
	})
	select {
	case <-ctx.Done():
		return ctx.Err()
	case res := <-ch:
		return res.Err
	}
}

func (c *Client) doRefresh() error {
	ctx, cancel := context.WithTimeout(context.Background(), c.cfg.Timeout)
	defer cancel()

	u := c.endpointURL(refreshEndpoint, nil)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, u, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", c.cfg.UserAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("refresh session: %w", err)
	}
	defer resp.Body.Close()
	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return &HTTPError{StatusCode: resp.StatusCode, Method: http.MethodPost, Endpoint: refreshEndpoint}
	}

	c.captureSession()
	c.metrics.refreshed()
	c.logger.Debug("session refreshed", zap.Time("expires_at", c.session.expiry()))
	return nil
}

// captureSession re-reads the access token cookie from the jar and
// records its expiry.
func (c *Client) captureSession() {
	if c.http.Jar == nil {
		return
	}
	for _, ck := range c.http.Jar.Cookies(c.baseURL) {
		if ck.Name != accessTokenCookie {
			continue
		}
		if exp, err := tokenExpiry(ck.Value); err == nil {
			c.session.setExpiry(exp)
		}
		return
	}
}
