// Package normalize shapes raw upstream bodies into the uniform tool-result
// envelope. Structured formats are parsed; everything else passes through as
// opaque text tagged with the format the caller asked for.
package normalize

import (
	"bytes"
	"encoding/json"

	"github.com/cavok/wxbrief/internal/domain"
)

// Result builds the outward ToolResult for a transport-successful upstream
// response. A body that cannot be parsed in a structured format is a
// malformed_upstream_response error: the call succeeded transport-wise but
// returned unusable content, which must not look like an upstream HTTP
// failure and must never pass through unparsed.
func Result(tool string, format domain.Format, resp *domain.UpstreamResponse) (domain.ToolResult, error) {
	if !format.Structured() {
		return domain.ToolResult{
			OK:      true,
			Tool:    tool,
			Format:  format,
			Payload: string(resp.Body),
		}, nil
	}

	body := bytes.TrimSpace(resp.Body)
	if len(body) == 0 {
		// Valid request, zero matching records. An explicit empty success,
		// never an error.
		return emptyResult(tool, format), nil
	}

	var payload any
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.ToolResult{}, &domain.InvocationError{
			Kind: domain.ErrKindMalformedResponse,
			Tool: tool,
			Msg:  "upstream body is not valid " + string(format),
			Err:  err,
		}
	}

	result := domain.ToolResult{
		OK:      true,
		Tool:    tool,
		Format:  format,
		Payload: payload,
	}
	if list, ok := payload.([]any); ok {
		n := len(list)
		result.Count = &n
	}
	return result, nil
}

func emptyResult(tool string, format domain.Format) domain.ToolResult {
	n := 0
	return domain.ToolResult{
		OK:      true,
		Tool:    tool,
		Format:  format,
		Payload: []any{},
		Count:   &n,
	}
}
