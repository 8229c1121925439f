package catalog

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/cavok/wxbrief/internal/domain"
)

// ProviderBases holds the base URLs of the two upstream providers. Injected
// from configuration so tests can point resolution at a local server.
type ProviderBases struct {
	AWC   string // aviationweather.gov data API, e.g. https://aviationweather.gov/api
	DATIS string // FAA Digital ATIS API, e.g. https://datis.clowd.io/api
}

// Resolve maps a validated tool request to its single upstream endpoint.
// Pure: no side effects, no network. Resolution is total over validated
// input: every parameter the validator can emit has an explicit mapping
// here, either a query key in the ParamSpec table or a path/endpoint role
// handled below.
func Resolve(bases ProviderBases, tool string, validated map[string]string) domain.UpstreamEndpoint {
	spec := Tools[tool]

	base := bases.AWC
	if spec.Provider == domain.ProviderDATIS {
		base = bases.DATIS
	}

	path := spec.Path
	if tool == domain.ToolGetSIGMET {
		// Scope selects among the two SIGMET endpoints; it is never serialized.
		if validated["scope"] == "international" {
			path = "/data/isigmet"
		} else {
			path = "/data/airsigmet"
		}
	}

	query := url.Values{}
	for key, vals := range spec.Fixed {
		for _, v := range vals {
			query.Add(key, v)
		}
	}
	for name, value := range validated {
		ps := spec.Params[name]
		placeholder := "{" + name + "}"
		if strings.Contains(path, placeholder) {
			path = strings.ReplaceAll(path, placeholder, url.PathEscape(value))
			continue
		}
		if ps.QueryKey != "" {
			query.Set(ps.QueryKey, value)
		}
	}

	return domain.UpstreamEndpoint{
		Provider: spec.Provider,
		BaseURL:  strings.TrimRight(base, "/"),
		Path:     path,
		Method:   http.MethodGet,
		Query:    query,
	}
}
