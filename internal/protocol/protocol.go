package protocol

// ChairCount is one chair type with its count, in presentation order.
type ChairCount struct {
	Type  string `json:"type"`
	Count int    `json:"count"`
}

// RoomLite is one resolved room for the viewer.
type RoomLite struct {
	Name   string       `json:"name"`
	Counts []ChairCount `json:"counts"`
}

// IssueLite is one unresolvable region for the viewer.
type IssueLite struct {
	Code   string   `json:"code"`
	Bounds [4]int   `json:"bounds"` // minRow, minCol, maxRow, maxCol
	Labels []string `json:"labels,omitempty"`
}

// PlanSnapshot is the full viewer state served with the report page.
type PlanSnapshot struct {
	Path            string       `json:"path"`
	Rows            int          `json:"rows"`
	Cols            int          `json:"cols"`
	Total           []ChairCount `json:"total"`
	Rooms           []RoomLite   `json:"rooms"`
	Issues          []IssueLite  `json:"issues,omitempty"`
	ProtocolVersion string       `json:"protocolVersion"`
}

// PatchEnvelope wraps every message pushed over the stream.
type PatchEnvelope struct {
	Sequence uint64 `json:"seq"`
	Type     string `json:"type"`
	Payload  any    `json:"payload"`
}

// TallyChanged is broadcast after the plan file changes on disk.
type TallyChanged struct {
	Total  []ChairCount `json:"total"`
	Rooms  []RoomLite   `json:"rooms"`
	Issues []IssueLite  `json:"issues,omitempty"`
}

// AnalysisFailed is broadcast when a re-analysis of the changed plan
// cannot produce a report.
type AnalysisFailed struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}
