// Package catalog holds the static tool catalog: per-tool parameter schemas,
// the upstream query-key mapping, and endpoint resolution. Everything here is
// declarative data driving generic routines; nothing is mutated at runtime.
package catalog

import (
	"net/url"

	"github.com/cavok/wxbrief/internal/domain"
)

// ParamType is the wire type expected for a parameter value.
type ParamType int

const (
	// TypeString is a free or enumerated string.
	TypeString ParamType = iota
	// TypeIdent is an ICAO-style station/airport identifier. Case-normalized
	// to uppercase during validation.
	TypeIdent
	// TypeInt is a non-negative integer with an inclusive upper bound.
	TypeInt
	// TypeDate is a timestamp in yyyymmdd_hhmm or RFC3339 form.
	TypeDate
)

// ParamSpec describes one legal parameter of a tool.
type ParamSpec struct {
	Type     ParamType
	Required bool
	Enum     []string // allowed values (TypeString); compared case-insensitively
	Max      int      // inclusive upper bound (TypeInt)
	Default  string   // applied when the caller omits the parameter
	Desc     string

	// QueryKey is the provider's query-string key for this parameter. The
	// mapping is explicit and total: an empty key means the value is consumed
	// during resolution (path substitution or endpoint selection) and never
	// serialized as a query parameter.
	QueryKey string
}

// ToolSpec is the full static description of one tool: its parameter schema
// plus where and how it calls upstream.
type ToolSpec struct {
	Name     string
	Desc     string
	Provider domain.Provider

	// Path is the provider path. Segments of the form {param} are replaced
	// with the validated value of that parameter during resolution.
	Path string

	Params map[string]ParamSpec

	// Fixed query parameters always sent regardless of caller input.
	Fixed url.Values
}

// FormatOf returns the format encoded in the validated parameter map. Tools
// without a format parameter report FormatJSON, which is what both providers
// emit when no selector exists.
func (s ToolSpec) FormatOf(validated map[string]string) domain.Format {
	if f, ok := validated["format"]; ok {
		return domain.Format(f)
	}
	return domain.FormatJSON
}

// ToolOrder is the registration order for the MCP server.
var ToolOrder = []string{
	domain.ToolGetMETAR,
	domain.ToolGetTAF,
	domain.ToolGetPIREP,
	domain.ToolGetAirportInfo,
	domain.ToolGetATIS,
	domain.ToolGetSIGMET,
	domain.ToolGetStationInfo,
	domain.ToolGetATISStations,
}

const (
	maxHoursBack = 336   // 14 days of history
	maxAge       = 96    // hours
	maxDistance  = 1000  // nautical miles
	maxLevel     = 60000 // feet
)

// Tools is the complete tool catalog keyed by tool name.
var Tools = map[string]ToolSpec{
	domain.ToolGetMETAR: {
		Name:     domain.ToolGetMETAR,
		Desc:     "Get METAR (routine surface weather observation) data for a single aviation weather station.",
		Provider: domain.ProviderAWC,
		Path:     "/data/metar",
		Params: map[string]ParamSpec{
			"station_id": {Type: TypeIdent, Required: true, QueryKey: "ids",
				Desc: "Station identifier (e.g. KJFK, CYYZ)"},
			"format": {Type: TypeString, Enum: []string{"raw", "json", "geojson", "xml", "html"},
				Default: "json", QueryKey: "format",
				Desc: "Output format: raw, json, geojson, xml, html (default json)"},
			"hours_back": {Type: TypeInt, Max: maxHoursBack, QueryKey: "hours",
				Desc: "Hours back to search for historical observations"},
			"date": {Type: TypeDate, QueryKey: "date",
				Desc: "Timestamp in yyyymmdd_hhmm or yyyy-mm-ddThh:mm:ssZ form"},
		},
		// The provider can fold TAFs into a METAR response; never do that here.
		Fixed: url.Values{"taf": {"false"}},
	},
	domain.ToolGetTAF: {
		Name:     domain.ToolGetTAF,
		Desc:     "Get TAF (terminal aerodrome forecast) data for a single aviation weather station.",
		Provider: domain.ProviderAWC,
		Path:     "/data/taf",
		Params: map[string]ParamSpec{
			"station_id": {Type: TypeIdent, Required: true, QueryKey: "ids",
				Desc: "Station identifier (e.g. KJFK, CYYZ)"},
			"format": {Type: TypeString, Enum: []string{"raw", "json", "geojson", "xml", "html"},
				Default: "json", QueryKey: "format",
				Desc: "Output format: raw, json, geojson, xml, html (default json)"},
			"time": {Type: TypeString, Enum: []string{"valid", "issue"},
				Default: "valid", QueryKey: "time",
				Desc: "Select forecasts by valid time or issue time (default valid)"},
			"date": {Type: TypeDate, QueryKey: "date",
				Desc: "Timestamp in yyyymmdd_hhmm or yyyy-mm-ddThh:mm:ssZ form"},
		},
		Fixed: url.Values{"metar": {"false"}},
	},
	domain.ToolGetPIREP: {
		Name:     domain.ToolGetPIREP,
		Desc:     "Get PIREP (pilot weather report) data. Without a station the provider returns all recent reports.",
		Provider: domain.ProviderAWC,
		Path:     "/data/pirep",
		Params: map[string]ParamSpec{
			"station_id": {Type: TypeIdent, QueryKey: "id",
				Desc: "Station identifier to center the search on"},
			"format": {Type: TypeString, Enum: []string{"raw", "json", "geojson", "xml"},
				Default: "raw", QueryKey: "format",
				Desc: "Output format: raw, json, geojson, xml (default raw)"},
			"age": {Type: TypeInt, Max: maxAge, QueryKey: "age",
				Desc: "Maximum report age in hours"},
			"distance": {Type: TypeInt, Max: maxDistance, QueryKey: "distance",
				Desc: "Search radius in nautical miles"},
			"level": {Type: TypeInt, Max: maxLevel, QueryKey: "level",
				Desc: "Altitude in feet; matches reports within 3000 ft"},
			"intensity": {Type: TypeString, Enum: []string{"lgt", "mod", "sev"}, QueryKey: "inten",
				Desc: "Minimum intensity: lgt, mod, sev"},
			"date": {Type: TypeDate, QueryKey: "date",
				Desc: "Timestamp in yyyymmdd_hhmm or yyyy-mm-ddThh:mm:ssZ form"},
		},
	},
	domain.ToolGetAirportInfo: {
		Name:     domain.ToolGetAirportInfo,
		Desc:     "Get information about a single airport: runways, frequencies, location.",
		Provider: domain.ProviderAWC,
		Path:     "/data/airport",
		Params: map[string]ParamSpec{
			"airport_id": {Type: TypeIdent, Required: true, QueryKey: "ids",
				Desc: "Airport identifier (e.g. KJFK, CYYZ)"},
			"format": {Type: TypeString, Enum: []string{"decoded", "json", "geojson"},
				Default: "json", QueryKey: "format",
				Desc: "Output format: decoded, json, geojson (default json)"},
		},
	},
	domain.ToolGetATIS: {
		Name:     domain.ToolGetATIS,
		Desc:     "Get D-ATIS (digital automatic terminal information service) data for a specific airport.",
		Provider: domain.ProviderDATIS,
		Path:     "/{airport_id}",
		Params: map[string]ParamSpec{
			"airport_id": {Type: TypeIdent, Required: true,
				Desc: "Airport identifier (e.g. KLAX, KJFK)"},
		},
	},
	domain.ToolGetSIGMET: {
		Name:     domain.ToolGetSIGMET,
		Desc:     "Get SIGMET (significant meteorological information) advisories, domestic or international.",
		Provider: domain.ProviderAWC,
		Path:     "", // chosen from scope during resolution
		Params: map[string]ParamSpec{
			"scope": {Type: TypeString, Enum: []string{"domestic", "international"},
				Default: "domestic",
				Desc: "Advisory scope: domestic (US) or international (default domestic)"},
			"format": {Type: TypeString, Enum: []string{"raw", "json", "xml"},
				Default: "json", QueryKey: "format",
				Desc: "Output format: raw, json, xml (default json)"},
			"hazard": {Type: TypeString, Enum: []string{"conv", "turb", "ice", "ifr"}, QueryKey: "hazard",
				Desc: "Hazard filter: conv, turb, ice, ifr"},
			"level": {Type: TypeInt, Max: maxLevel, QueryKey: "level",
				Desc: "Altitude in feet; matches advisories within 3000 ft"},
			"date": {Type: TypeDate, QueryKey: "date",
				Desc: "Timestamp in yyyymmdd_hhmm or yyyy-mm-ddThh:mm:ssZ form"},
		},
	},
	domain.ToolGetStationInfo: {
		Name:     domain.ToolGetStationInfo,
		Desc:     "Get reporting-station metadata: location, elevation, site name.",
		Provider: domain.ProviderAWC,
		Path:     "/data/stationinfo",
		Params: map[string]ParamSpec{
			"station_id": {Type: TypeIdent, Required: true, QueryKey: "ids",
				Desc: "Station identifier (e.g. KJFK, CYYZ)"},
			"format": {Type: TypeString, Enum: []string{"raw", "json", "geojson", "xml"},
				Default: "json", QueryKey: "format",
				Desc: "Output format: raw, json, geojson, xml (default json)"},
		},
	},
	domain.ToolGetATISStations: {
		Name:     domain.ToolGetATISStations,
		Desc:     "List all airports that publish a D-ATIS.",
		Provider: domain.ProviderDATIS,
		Path:     "/stations",
		Params:   map[string]ParamSpec{},
	},
}
