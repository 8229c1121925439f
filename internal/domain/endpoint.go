package domain

import "net/url"

// Provider identifies which upstream service an endpoint targets.
type Provider string

const (
	// ProviderAWC is the aviationweather.gov data API.
	ProviderAWC Provider = "aviationweather"
	// ProviderDATIS is the FAA Digital ATIS API.
	ProviderDATIS Provider = "datis"
)

// UpstreamEndpoint is a fully resolved upstream request: derived
// deterministically from a validated ToolRequest, with no identity or
// lifecycle beyond the call. All provider calls are GETs.
type UpstreamEndpoint struct {
	Provider Provider
	BaseURL  string
	Path     string
	Method   string
	Query    url.Values
}

// URL renders the complete request URL with the encoded query string.
// Query keys are encoded in sorted order, so equal endpoints render equal
// strings.
func (e UpstreamEndpoint) URL() string {
	u := e.BaseURL + e.Path
	if len(e.Query) > 0 {
		u += "?" + e.Query.Encode()
	}
	return u
}
