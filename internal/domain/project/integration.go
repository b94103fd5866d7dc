package project

import "fmt"

// IntegrationName identifies one of the supported integrations.
type IntegrationName string

const (
	IntegrationWebhook   IntegrationName = "Webhook"
	IntegrationOAuth2    IntegrationName = "OAuth 2.0"
	IntegrationREST      IntegrationName = "REST API"
	IntegrationGraphQL   IntegrationName = "GraphQL"
	IntegrationWebSocket IntegrationName = "WebSocket"
)

// catalog is the closed, ordered set of integrations with their draft defaults.
var catalog = []Integration{
	{Name: IntegrationWebhook, Enabled: false},
	{Name: IntegrationOAuth2, Enabled: false},
	{Name: IntegrationREST, Enabled: true},
	{Name: IntegrationGraphQL, Enabled: false},
	{Name: IntegrationWebSocket, Enabled: false},
}

// Catalog returns a copy of the integration catalog with default toggles.
func Catalog() []Integration {
	out := make([]Integration, len(catalog))
	copy(out, catalog)
	return out
}

// ParseIntegrationName validates a name against the catalog.
func ParseIntegrationName(s string) (IntegrationName, error) {
	for _, in := range catalog {
		if string(in.Name) == s {
			return in.Name, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownIntegration, s)
}

func catalogIndex(name IntegrationName) int {
	for i, in := range catalog {
		if in.Name == name {
			return i
		}
	}
	return -1
}

// EnabledOnly returns the enabled entries in catalog order, dropping duplicates.
func EnabledOnly(list []Integration) []Integration {
	seen := make(map[IntegrationName]bool, len(list))
	for _, in := range list {
		if in.Enabled {
			seen[in.Name] = true
		}
	}
	out := make([]Integration, 0, len(seen))
	for _, in := range catalog {
		if seen[in.Name] {
			out = append(out, Integration{Name: in.Name, Enabled: true})
		}
	}
	return out
}
