package provider

import (
	"context"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/rxtech-lab/pricefeed/internal/logger"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
	"go.uber.org/zap"
)

const (
	defaultYahooCookieURL = "https://fc.yahoo.com"
	yahooCrumbPath        = "/v1/test/getcrumb"
)

// YahooSession holds the cookie and crumb some Yahoo endpoints require.
// The handshake runs lazily once; a failed handshake leaves the crumb empty and requests
// go out without it. Invalidate forces a new handshake on the next request.
type YahooSession struct {
	client    *http.Client
	userAgent string
	cookieURL string
	crumbURL  string
	logger    *logger.Logger

	mu    sync.Mutex
	crumb string
	tried bool
}

// NewYahooSession creates a session on the given client. The client needs a cookie jar.
// The crumb is requested from the first of DefaultYahooHosts until WithCrumbHost picks
// another host.
func NewYahooSession(client *http.Client, userAgent string, log *logger.Logger) *YahooSession {
	if log == nil {
		log = logger.NewNop()
	}

	return &YahooSession{
		client:    client,
		userAgent: userAgent,
		cookieURL: defaultYahooCookieURL,
		crumbURL:  crumbEndpoint(DefaultYahooHosts[0]),
		logger:    log,
		crumb:     "",
		tried:     false,
	}
}

// WithEndpoints overrides the handshake URLs.
func (s *YahooSession) WithEndpoints(cookieURL, crumbURL string) *YahooSession {
	s.cookieURL = cookieURL
	s.crumbURL = crumbURL

	return s
}

// WithCrumbHost requests the crumb from host, given as a base URL like the Yahoo hosts.
func (s *YahooSession) WithCrumbHost(host string) *YahooSession {
	s.crumbURL = crumbEndpoint(host)

	return s
}

func crumbEndpoint(host string) string {
	return strings.TrimRight(host, "/") + yahooCrumbPath
}

// Crumb returns the session crumb, running the handshake on first use.
func (s *YahooSession) Crumb(ctx context.Context) string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.tried {
		return s.crumb
	}

	s.tried = true

	crumb, err := s.handshake(ctx)
	if err != nil {
		s.logger.Debug("yahoo session handshake failed", zap.Error(err))

		return ""
	}

	s.crumb = crumb

	return s.crumb
}

// Invalidate drops the crumb so the next Crumb call repeats the handshake.
func (s *YahooSession) Invalidate() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.crumb = ""
	s.tried = false
}

func (s *YahooSession) handshake(ctx context.Context) (string, error) {
	// The cookie endpoint usually answers 404 but still sets the cookie.
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.cookieURL, nil)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSessionFailed, "failed to build cookie request", err)
	}

	req.Header.Set("User-Agent", s.userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSessionFailed, "cookie request failed", err)
	}

	_, _ = io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	body, err := get(ctx, s.client, s.crumbURL, s.userAgent)
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeSessionFailed, "crumb request failed", err)
	}

	crumb := strings.TrimSpace(string(body))
	if crumb == "" || strings.Contains(crumb, "<") {
		return "", errors.New(errors.ErrCodeSessionFailed, "crumb response is not a crumb")
	}

	return crumb, nil
}
