package snapshot

// Tick is the NDJSON wire form of one input line: a tracker ID plus the
// snapshot and raw-sensor fields, flattened.
type Tick struct {
	TrackerID string `json:"trackerId"`
	Snapshot
	Extras
}
