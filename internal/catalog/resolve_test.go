package catalog_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cavok/wxbrief/internal/catalog"
	"github.com/cavok/wxbrief/internal/domain"
)

var testBases = catalog.ProviderBases{
	AWC:   "https://aviationweather.gov/api",
	DATIS: "https://datis.clowd.io/api",
}

// validateAndResolve runs the two pure pipeline stages together, the way the
// dispatcher does.
func validateAndResolve(t *testing.T, tool string, args map[string]any) domain.UpstreamEndpoint {
	t.Helper()
	validated, err := catalog.Validate(tool, args)
	require.NoError(t, err)
	return catalog.Resolve(testBases, tool, validated)
}

func TestResolveMETAR(t *testing.T) {
	ep := validateAndResolve(t, domain.ToolGetMETAR, map[string]any{
		"station_id": "kjfk",
		"hours_back": float64(3),
		"date":       "20240101_1200",
	})

	assert.Equal(t, domain.ProviderAWC, ep.Provider)
	assert.Equal(t, "/data/metar", ep.Path)
	assert.Equal(t, "GET", ep.Method)
	// Provider query keys, not tool parameter names.
	assert.Equal(t, "KJFK", ep.Query.Get("ids"))
	assert.Equal(t, "3", ep.Query.Get("hours"))
	assert.Equal(t, "20240101_1200", ep.Query.Get("date"))
	assert.Equal(t, "json", ep.Query.Get("format"))
	// METAR responses never fold in TAFs.
	assert.Equal(t, "false", ep.Query.Get("taf"))
}

func TestResolveCaseNormalization(t *testing.T) {
	lower := validateAndResolve(t, domain.ToolGetMETAR, map[string]any{"station_id": "kjfk"})
	upper := validateAndResolve(t, domain.ToolGetMETAR, map[string]any{"station_id": "KJFK"})
	assert.Equal(t, upper.URL(), lower.URL())
}

func TestResolveTAFTimeSelectors(t *testing.T) {
	issue := validateAndResolve(t, domain.ToolGetTAF, map[string]any{"station_id": "CYYZ", "time": "issue"})
	valid := validateAndResolve(t, domain.ToolGetTAF, map[string]any{"station_id": "CYYZ", "time": "valid"})

	assert.Equal(t, "issue", issue.Query.Get("time"))
	assert.Equal(t, "valid", valid.Query.Get("time"))
	assert.NotEqual(t, issue.URL(), valid.URL())

	// The endpoints differ only in the time selector.
	issue.Query.Del("time")
	valid.Query.Del("time")
	assert.Equal(t, issue.URL(), valid.URL())

	// Unspecified selector takes the documented default.
	defaulted := validateAndResolve(t, domain.ToolGetTAF, map[string]any{"station_id": "CYYZ"})
	assert.Equal(t, "valid", defaulted.Query.Get("time"))
	assert.Equal(t, "false", defaulted.Query.Get("metar"))
}

func TestResolvePIREPQueryKeyMapping(t *testing.T) {
	ep := validateAndResolve(t, domain.ToolGetPIREP, map[string]any{
		"station_id": "KDEN",
		"age":        float64(2),
		"distance":   float64(150),
		"level":      float64(30000),
		"intensity":  "mod",
	})

	assert.Equal(t, "/data/pirep", ep.Path)
	// PIREP uses "id", not "ids", and "inten", not "intensity".
	assert.Equal(t, "KDEN", ep.Query.Get("id"))
	assert.Empty(t, ep.Query.Get("ids"))
	assert.Equal(t, "mod", ep.Query.Get("inten"))
	assert.Empty(t, ep.Query.Get("intensity"))
	assert.Equal(t, "2", ep.Query.Get("age"))
	assert.Equal(t, "150", ep.Query.Get("distance"))
	assert.Equal(t, "30000", ep.Query.Get("level"))
	assert.Equal(t, "raw", ep.Query.Get("format"))
}

func TestResolveATIS(t *testing.T) {
	ep := validateAndResolve(t, domain.ToolGetATIS, map[string]any{"airport_id": "klax"})

	assert.Equal(t, domain.ProviderDATIS, ep.Provider)
	assert.Equal(t, "https://datis.clowd.io/api", ep.BaseURL)
	assert.Equal(t, "/KLAX", ep.Path)
	assert.Empty(t, ep.Query)
	assert.Equal(t, "https://datis.clowd.io/api/KLAX", ep.URL())
}

func TestResolveATISStations(t *testing.T) {
	ep := validateAndResolve(t, domain.ToolGetATISStations, map[string]any{})
	assert.Equal(t, domain.ProviderDATIS, ep.Provider)
	assert.Equal(t, "https://datis.clowd.io/api/stations", ep.URL())
}

func TestResolveSIGMETScope(t *testing.T) {
	domestic := validateAndResolve(t, domain.ToolGetSIGMET, map[string]any{})
	international := validateAndResolve(t, domain.ToolGetSIGMET, map[string]any{"scope": "international"})

	assert.Equal(t, "/data/airsigmet", domestic.Path)
	assert.Equal(t, "/data/isigmet", international.Path)
	// Scope selects the endpoint; it is never serialized as a query param.
	assert.Empty(t, domestic.Query.Get("scope"))
	assert.Empty(t, international.Query.Get("scope"))
}

func TestResolveStationInfo(t *testing.T) {
	ep := validateAndResolve(t, domain.ToolGetStationInfo, map[string]any{"station_id": "cyyz"})
	assert.Equal(t, "/data/stationinfo", ep.Path)
	assert.Equal(t, "CYYZ", ep.Query.Get("ids"))
}

// Every validated parameter must have an explicit serialization: a query key
// in its ParamSpec or a path/endpoint role. Nothing may fall through
// silently.
func TestQueryKeyMappingIsTotal(t *testing.T) {
	for name, spec := range catalog.Tools {
		for param, ps := range spec.Params {
			if ps.QueryKey != "" {
				continue
			}
			switch {
			case param == "scope" && name == domain.ToolGetSIGMET:
				// endpoint selector
			case param == "airport_id" && name == domain.ToolGetATIS:
				// path parameter
			default:
				t.Errorf("tool %s parameter %s has no upstream mapping", name, param)
			}
		}
	}
}

func TestDefinitionsCoverCatalog(t *testing.T) {
	defs := catalog.Definitions()
	require.Len(t, defs, len(catalog.ToolOrder))
	for i, name := range catalog.ToolOrder {
		assert.Equal(t, name, defs[i].Name)
	}
}
