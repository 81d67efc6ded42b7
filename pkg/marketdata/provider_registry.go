package marketdata

import (
	"fmt"
	"sort"

	"github.com/rxtech-lab/pricefeed/pkg/marketdata/provider"
)

// ProviderInfo contains metadata about a market data strategy.
type ProviderInfo struct {
	Name         string `json:"name"`
	DisplayName  string `json:"displayName"`
	Description  string `json:"description"`
	RequiresAuth bool   `json:"requiresAuth"`
	Batch        bool   `json:"batch"`
	Sector       bool   `json:"sector"`
}

// providerRegistry holds metadata about all supported strategies.
var providerRegistry = map[provider.ProviderType]ProviderInfo{
	provider.ProviderYahooChart: {
		Name:         string(provider.ProviderYahooChart),
		DisplayName:  "Yahoo Finance chart",
		Description:  "Daily adjusted closes for one symbol, tried on every configured host",
		RequiresAuth: false,
		Batch:        false,
		Sector:       false,
	},
	provider.ProviderYahooSpark: {
		Name:         string(provider.ProviderYahooSpark),
		DisplayName:  "Yahoo Finance spark",
		Description:  "Daily closes for up to 20 symbols per request",
		RequiresAuth: false,
		Batch:        true,
		Sector:       false,
	},
	provider.ProviderYahooProfile: {
		Name:         string(provider.ProviderYahooProfile),
		DisplayName:  "Yahoo Finance quote summary",
		Description:  "Sector classification from the asset or summary profile",
		RequiresAuth: false,
		Batch:        false,
		Sector:       true,
	},
	provider.ProviderFinanceGo: {
		Name:         string(provider.ProviderFinanceGo),
		DisplayName:  "finance-go",
		Description:  "Chart bars through the piquette/finance-go client",
		RequiresAuth: false,
		Batch:        false,
		Sector:       false,
	},
	provider.ProviderPolygon: {
		Name:         string(provider.ProviderPolygon),
		DisplayName:  "Polygon.io",
		Description:  "Adjusted US aggregates, enabled when an API key is configured",
		RequiresAuth: true,
		Batch:        false,
		Sector:       false,
	},
}

// GetSupportedProviders returns the names of all supported strategies, sorted.
func GetSupportedProviders() []string {
	providers := make([]string, 0, len(providerRegistry))
	for providerType := range providerRegistry {
		providers = append(providers, string(providerType))
	}

	sort.Strings(providers)

	return providers
}

// GetProviderInfo returns metadata for a specific strategy.
func GetProviderInfo(providerName string) (ProviderInfo, error) {
	info, exists := providerRegistry[provider.ProviderType(providerName)]
	if !exists {
		return ProviderInfo{}, fmt.Errorf("unsupported provider: %s", providerName)
	}

	return info, nil
}
