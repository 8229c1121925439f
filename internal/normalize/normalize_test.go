package normalize_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cavok/wxbrief/internal/domain"
	"github.com/cavok/wxbrief/internal/normalize"
)

func resp(body string) *domain.UpstreamResponse {
	return &domain.UpstreamResponse{StatusCode: 200, Body: []byte(body)}
}

func TestResultJSONObject(t *testing.T) {
	result, err := normalize.Result("get_atis_data", domain.FormatJSON, resp(`{"airport":"KLAX","datis":"KLAX ATIS INFO B"}`))
	require.NoError(t, err)

	assert.True(t, result.OK)
	assert.Equal(t, domain.FormatJSON, result.Format)
	payload, ok := result.Payload.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "KLAX", payload["airport"])
	assert.Nil(t, result.Count)
}

func TestResultJSONArrayCarriesCount(t *testing.T) {
	result, err := normalize.Result("get_metar_data", domain.FormatJSON, resp(`[{"icaoId":"KJFK"},{"icaoId":"KLGA"}]`))
	require.NoError(t, err)

	assert.True(t, result.OK)
	require.NotNil(t, result.Count)
	assert.Equal(t, 2, *result.Count)
}

func TestResultEmptyListIsSuccess(t *testing.T) {
	// Zero matching records is a success with an explicitly empty payload,
	// never an error.
	for _, body := range []string{`[]`, ``, "  \n"} {
		result, err := normalize.Result("get_pirep_data", domain.FormatJSON, resp(body))
		require.NoError(t, err, "body %q", body)
		assert.True(t, result.OK)
		require.NotNil(t, result.Count)
		assert.Equal(t, 0, *result.Count)
		assert.Equal(t, []any{}, result.Payload)
	}
}

func TestResultMalformedJSON(t *testing.T) {
	_, err := normalize.Result("get_metar_data", domain.FormatJSON, resp(`<html>It works!</html>`))
	require.Error(t, err)

	ie, ok := domain.AsInvocationError(err)
	require.True(t, ok)
	assert.Equal(t, domain.ErrKindMalformedResponse, ie.Kind)
	assert.Contains(t, err.Error(), "get_metar_data")
}

func TestResultGeoJSONParsed(t *testing.T) {
	result, err := normalize.Result("get_metar_data", domain.FormatGeoJSON, resp(`{"type":"FeatureCollection","features":[]}`))
	require.NoError(t, err)
	assert.Equal(t, domain.FormatGeoJSON, result.Format)
	_, ok := result.Payload.(map[string]any)
	assert.True(t, ok)
}

func TestResultOpaqueFormatsPassThrough(t *testing.T) {
	tests := []struct {
		format domain.Format
		body   string
	}{
		{domain.FormatRaw, "KJFK 011251Z 31008KT 10SM FEW250 M04/M16 A3020"},
		{domain.FormatXML, `<?xml version="1.0"?><response><data num_results="1"/></response>`},
		{domain.FormatHTML, `<html><body>METAR</body></html>`},
		{domain.FormatDecoded, "JFK weather, decoded"},
		// Not valid JSON; opaque formats must not attempt to parse.
		{domain.FormatRaw, `{"broken":`},
	}
	for _, tt := range tests {
		result, err := normalize.Result("get_metar_data", tt.format, resp(tt.body))
		require.NoError(t, err)
		assert.True(t, result.OK)
		assert.Equal(t, tt.format, result.Format)
		assert.Equal(t, tt.body, result.Payload)
	}
}
