package provider

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/rxtech-lab/pricefeed/pkg/errors"
)

// sectorPaths are probed in order; equities carry assetProfile, some listings only
// summaryProfile.
var sectorPaths = []string{
	"$.quoteSummary.result[0].assetProfile.sector",
	"$.quoteSummary.result[0].summaryProfile.sector",
}

// YahooProfileSource reads the sector of a symbol from the quoteSummary endpoint.
type YahooProfileSource struct {
	baseURL   string
	client    *http.Client
	userAgent string
	session   *YahooSession
}

// NewYahooProfileSource creates a sector source for baseURL. session may be nil.
func NewYahooProfileSource(baseURL string, client *http.Client, userAgent string, session *YahooSession) *YahooProfileSource {
	if userAgent == "" {
		userAgent = DefaultUserAgent
	}

	return &YahooProfileSource{
		baseURL:   strings.TrimRight(baseURL, "/"),
		client:    client,
		userAgent: userAgent,
		session:   session,
	}
}

// Name implements SectorSource.
func (s *YahooProfileSource) Name() string {
	return string(ProviderYahooProfile) + ":" + hostOf(s.baseURL)
}

// FetchSector implements SectorSource.
func (s *YahooProfileSource) FetchSector(ctx context.Context, symbol string) (string, error) {
	q := url.Values{}
	q.Set("modules", "assetProfile,summaryProfile")

	if s.session != nil {
		if crumb := s.session.Crumb(ctx); crumb != "" {
			q.Set("crumb", crumb)
		}
	}

	endpoint := s.baseURL + "/v10/finance/quoteSummary/" + url.PathEscape(symbol) + "?" + q.Encode()

	body, err := get(ctx, s.client, endpoint, s.userAgent)
	if err != nil {
		if s.session != nil && isUnauthorized(err) {
			s.session.Invalidate()
		}

		return "", err
	}

	var doc any
	if err := json.Unmarshal(body, &doc); err != nil {
		return "", errors.Wrap(errors.ErrCodeMarketDataParseFailed, "failed to decode quoteSummary response", err)
	}

	return sectorFromDocument(doc), nil
}

// sectorFromDocument returns the first non-empty string found at sectorPaths.
func sectorFromDocument(doc any) string {
	for _, path := range sectorPaths {
		v, err := jsonpath.Get(path, doc)
		if err != nil {
			continue
		}

		// jsonpath may wrap a single match in a list
		if list, ok := v.([]any); ok {
			if len(list) == 0 {
				continue
			}

			v = list[0]
		}

		if sector, ok := v.(string); ok && strings.TrimSpace(sector) != "" {
			return strings.TrimSpace(sector)
		}
	}

	return ""
}
