package provider

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"time"

	"github.com/rxtech-lab/pricefeed/pkg/errors"
	"golang.org/x/net/publicsuffix"
)

const (
	// DefaultUserAgent is sent on every Yahoo request; the endpoints reject Go's default agent.
	DefaultUserAgent = "Mozilla/5.0"
	// DefaultTimeout bounds a single HTTP request.
	DefaultTimeout = 10 * time.Second

	maxBodyBytes = 32 << 20
)

// NewHTTPClient builds the client shared by the Yahoo sources: fixed timeout, a cookie
// jar for the session handshake, and an optional proxy.
func NewHTTPClient(timeout time.Duration, proxyURL string) (*http.Client, error) {
	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("failed to create cookie jar: %w", err)
	}

	transport := http.DefaultTransport.(*http.Transport).Clone()
	if proxyURL != "" {
		u, err := url.Parse(proxyURL)
		if err != nil {
			return nil, errors.Wrapf(errors.ErrCodeInvalidConfiguration, err, "invalid proxy url %q", proxyURL)
		}

		transport.Proxy = http.ProxyURL(u)
	}

	if timeout <= 0 {
		timeout = DefaultTimeout
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
		Jar:       jar,
	}, nil
}

// statusError carries a non-200 response.
type statusError struct {
	StatusCode int
	Body       string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("unexpected status %d: %s", e.StatusCode, e.Body)
}

func isUnauthorized(err error) bool {
	var se *statusError
	if errors.As(err, &se) {
		return se.StatusCode == http.StatusUnauthorized || se.StatusCode == http.StatusForbidden
	}

	return false
}

// get performs a GET and returns the body of a 200 response.
func get(ctx context.Context, client *http.Client, rawURL string, userAgent string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to build request", err)
	}

	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/json")

	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeMarketDataFetchFailed, "failed to read response body", err)
	}

	if resp.StatusCode != http.StatusOK {
		snippet := string(body)
		if len(snippet) > 256 {
			snippet = snippet[:256]
		}

		code := errors.ErrCodeMarketDataStatus
		if resp.StatusCode == http.StatusNotFound {
			code = errors.ErrCodeSymbolNotFound
		}

		return nil, errors.Wrap(code, "unexpected response", &statusError{StatusCode: resp.StatusCode, Body: snippet})
	}

	return body, nil
}
