package domain

// Format is the output format a caller requested for a tool result.
type Format string

const (
	FormatRaw     Format = "raw"
	FormatJSON    Format = "json"
	FormatGeoJSON Format = "geojson"
	FormatXML     Format = "xml"
	FormatHTML    Format = "html"
	FormatDecoded Format = "decoded"
)

// Structured reports whether the format is parsed into structured data
// rather than passed through as opaque text.
func (f Format) Structured() bool {
	return f == FormatJSON || f == FormatGeoJSON
}

// UpstreamResponse is the raw outcome of a successful transport-level call.
// Produced by the upstream client, consumed by the normalizer. Body is kept
// byte-for-byte as the provider sent it.
type UpstreamResponse struct {
	StatusCode  int
	Body        []byte
	ContentType string
}

// ToolResult is the only value that crosses the system boundary outward.
// Either OK with a payload in the requested format, or a typed failure.
// The Format field always matches what the caller requested, never a
// silent substitution.
type ToolResult struct {
	OK        bool           `json:"ok"`
	Tool      string         `json:"tool"`
	Format    Format         `json:"format,omitempty"`
	Payload   any            `json:"payload,omitempty"`
	Count     *int           `json:"count,omitempty"`
	Metadata  map[string]any `json:"metadata,omitempty"`
	ErrorKind ErrorKind      `json:"error_kind,omitempty"`
	Message   string         `json:"message,omitempty"`
}

// FailureResult maps an invocation error into the outward envelope.
func FailureResult(tool string, err error) ToolResult {
	if ie, ok := AsInvocationError(err); ok {
		return ToolResult{
			OK:        false,
			Tool:      tool,
			ErrorKind: ie.Kind,
			Message:   ie.Error(),
		}
	}
	// The pipeline only produces InvocationErrors; anything else is a
	// server-side fault and is labeled as such.
	return ToolResult{
		OK:        false,
		Tool:      tool,
		ErrorKind: ErrKindInternal,
		Message:   err.Error(),
	}
}
