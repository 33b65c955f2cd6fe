package dida

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"dida-sync/internal/task/repository"
	pkgLog "dida-sync/pkg/log"
)

// Options configures a Client for one deployment of the todo service.
type Options struct {
	Username string
	Password string
	APIHost  string // default: DidaAPIHost

	CompletedLimit    int // max completed items per window fetch, default 999
	RequestsPerMinute int // outbound throttle, default 60
}

func (o Options) withDefaults() Options {
	if o.APIHost == "" {
		o.APIHost = DidaAPIHost
	}
	if o.CompletedLimit <= 0 {
		o.CompletedLimit = defaultCompletedLimit
	}
	if o.RequestsPerMinute <= 0 {
		o.RequestsPerMinute = defaultRequestsPerMinute
	}
	return o
}

// Client is the HTTP wrapper for the todo service v2 API. All data calls are
// authenticated through the session manager and throttled by a shared
// limiter.
type Client struct {
	opts       Options
	httpClient *http.Client
	session    *sessionManager
	limiter    *rate.Limiter
	l          pkgLog.Logger
}

// NewClient creates a new API client.
func NewClient(opts Options, l pkgLog.Logger) *Client {
	opts = opts.withDefaults()
	httpClient := &http.Client{Timeout: 30 * time.Second}
	return &Client{
		opts:       opts,
		httpClient: httpClient,
		session:    newSessionManager(opts.APIHost, opts.Username, opts.Password, httpClient, l),
		limiter:    rate.NewLimiter(rate.Limit(float64(opts.RequestsPerMinute)/60.0), opts.RequestsPerMinute),
		l:          l,
	}
}

// OpenItems fetches every currently open item via the batch check endpoint.
func (c *Client) OpenItems(ctx context.Context) ([]Item, error) {
	var out batchCheckResponse
	if err := c.getJSON(ctx, c.opts.APIHost+batchCheckPath, &out); err != nil {
		return nil, err
	}
	return out.SyncTaskBean.Update, nil
}

// CompletedItems fetches items completed inside [from, to].
func (c *Client) CompletedItems(ctx context.Context, from, to time.Time) ([]Item, error) {
	url := fmt.Sprintf("%s%s?from=%s&to=%s&limit=%d",
		c.opts.APIHost, completedPath,
		windowTimestamp(from), windowTimestamp(to), c.opts.CompletedLimit)

	var out []Item
	if err := c.getJSON(ctx, url, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AttachmentBytes downloads the raw bytes of one attachment.
func (c *Client) AttachmentBytes(ctx context.Context, projectID, taskID, attachmentID, ext string) ([]byte, error) {
	url := fmt.Sprintf("%s%s/%s/%s/%s%s", c.opts.APIHost, attachmentPath, projectID, taskID, attachmentID, ext)

	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("attachment fetch error %d: %s: %w", resp.StatusCode, strings.TrimSpace(string(raw)), repository.ErrRetrieval)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment body: %v: %w", err, repository.ErrRetrieval)
	}
	return data, nil
}

func (c *Client) getJSON(ctx context.Context, url string, out any) error {
	resp, err := c.do(ctx, http.MethodGet, url)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		if resp.StatusCode == http.StatusUnauthorized {
			// Session went stale server-side; the next call signs on again.
			c.session.invalidate()
		}
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("API error %d from %s: %s: %w", resp.StatusCode, url, strings.TrimSpace(string(raw)), repository.ErrRetrieval)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response from %s: %v: %w", url, err, repository.ErrRetrieval)
	}
	return nil
}

func (c *Client) do(ctx context.Context, method, url string) (*http.Response, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("request throttled: %v: %w", err, repository.ErrRetrieval)
	}

	header, err := c.session.header(ctx)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, method, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %v: %w", err, repository.ErrRetrieval)
	}
	req.Header.Set("Cookie", header)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request to %s failed: %v: %w", url, err, repository.ErrRetrieval)
	}
	return resp, nil
}

// windowTimestamp renders t for the completed-items query. The endpoint wants
// "YYYY-MM-DD HH:mm:ss" and rejects '+'-encoded spaces, so the space is
// percent-encoded by hand.
func windowTimestamp(t time.Time) string {
	return strings.ReplaceAll(t.Format("2006-01-02 15:04:05"), " ", "%20")
}
