package dida

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"

	"dida-sync/internal/task/repository"
	pkgLog "dida-sync/pkg/log"
)

// sessionManager owns the authenticated session against one API host.
// A sign-on is performed lazily on first use and again after the fixed
// validity window elapses. Concurrent callers hitting an expired session
// share a single sign-on via singleflight.
type sessionManager struct {
	apiHost    string
	username   string
	password   string
	httpClient *http.Client
	l          pkgLog.Logger

	mu           sync.Mutex
	cookieHeader string
	expiresAt    time.Time

	group singleflight.Group
}

func newSessionManager(apiHost, username, password string, httpClient *http.Client, l pkgLog.Logger) *sessionManager {
	return &sessionManager{
		apiHost:    apiHost,
		username:   username,
		password:   password,
		httpClient: httpClient,
		l:          l,
	}
}

// header returns the Cookie header for an authenticated request, signing on
// first if the cached session is missing or expired.
func (s *sessionManager) header(ctx context.Context) (string, error) {
	s.mu.Lock()
	if s.cookieHeader != "" && time.Now().Before(s.expiresAt) {
		h := s.cookieHeader
		s.mu.Unlock()
		return h, nil
	}
	s.mu.Unlock()

	v, err, _ := s.group.Do("signon", func() (any, error) {
		return s.signOn(ctx)
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// invalidate drops the cached session so the next call signs on again.
func (s *sessionManager) invalidate() {
	s.mu.Lock()
	s.cookieHeader = ""
	s.expiresAt = time.Time{}
	s.mu.Unlock()
}

func (s *sessionManager) signOn(ctx context.Context) (string, error) {
	body, err := json.Marshal(signOnRequest{
		Username: s.username,
		Password: s.password,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal sign-on request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, s.apiHost+signOnPath, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to build sign-on request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-device", deviceHeader)

	resp, err := s.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("sign-on request failed: %v: %w", err, repository.ErrAuthentication)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		raw, _ := io.ReadAll(resp.Body)
		return "", fmt.Errorf("sign-on rejected with status %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(raw)), repository.ErrAuthentication)
	}

	cookies := resp.Cookies()
	if len(cookies) == 0 {
		return "", fmt.Errorf("sign-on response carried no session cookie: %w", repository.ErrAuthentication)
	}

	pairs := make([]string, 0, len(cookies))
	for _, ck := range cookies {
		pairs = append(pairs, ck.Name+"="+ck.Value)
	}
	header := strings.Join(pairs, "; ")

	expiresAt := time.Now().Add(sessionTTL)
	s.mu.Lock()
	s.cookieHeader = header
	s.expiresAt = expiresAt
	s.mu.Unlock()

	s.l.Debugf(ctx, "dida session: signed on to %s, session valid until %s", s.apiHost, expiresAt.Format(time.RFC3339))
	return header, nil
}
