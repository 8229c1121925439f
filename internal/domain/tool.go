package domain

// Tool names exposed over MCP. The catalog package holds the parameter
// schema and upstream mapping for each.
const (
	ToolGetMETAR        = "get_metar_data"
	ToolGetTAF          = "get_taf_data"
	ToolGetPIREP        = "get_pirep_data"
	ToolGetAirportInfo  = "get_airport_information"
	ToolGetATIS         = "get_atis_data"
	ToolGetSIGMET       = "get_sigmet_data"
	ToolGetStationInfo  = "get_station_info"
	ToolGetATISStations = "get_atis_stations"
)

// ToolRequest is one inbound invocation: a tool name plus the raw,
// string-keyed argument mapping from the transport. Built per call,
// never mutated, discarded when the call completes.
type ToolRequest struct {
	Tool string
	Args map[string]any
}
